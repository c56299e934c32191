package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:30:15")
	require.NoError(t, err)
	assert.Equal(t, 8, tod.Hour)
	assert.Equal(t, 30, tod.Minute)
	assert.Equal(t, 15, tod.Second)
	assert.Equal(t, "08:30:15", tod.String())
}

func TestParseTimeOfDayInvalid(t *testing.T) {
	cases := []string{"", "8:00", "25:00:00", "08:61:00", "abc", "08-00-00"}
	for _, input := range cases {
		_, err := ParseTimeOfDay(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestTimeOfDaySub(t *testing.T) {
	in, err := ParseTimeOfDay("08:00:00")
	require.NoError(t, err)
	out, err := ParseTimeOfDay("17:30:00")
	require.NoError(t, err)

	assert.True(t, in.Before(out))
	assert.False(t, out.Before(in))
	assert.InDelta(t, 9.5, out.Sub(in).Hours(), 1e-9)
}
