package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationQueryNormalize(t *testing.T) {
	cases := []struct {
		name        string
		in          PaginationQuery
		wantPage    int
		wantPerPage int
	}{
		{"defaults zero values", PaginationQuery{}, 1, 10},
		{"negative page", PaginationQuery{Page: -3, PerPage: 20}, 1, 20},
		{"per_page too large", PaginationQuery{Page: 2, PerPage: 500}, 2, 10},
		{"valid unchanged", PaginationQuery{Page: 3, PerPage: 50}, 3, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Normalize()
			assert.Equal(t, tc.wantPage, tc.in.Page)
			assert.Equal(t, tc.wantPerPage, tc.in.PerPage)
		})
	}
}

func TestNewPaginationResult(t *testing.T) {
	result := NewPaginationResult(25, 2, 10)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 10, result.PerPage)
	assert.Equal(t, int64(3), result.TotalPages)

	empty := NewPaginationResult(0, 1, 10)
	assert.Equal(t, int64(0), empty.TotalPages)
}
