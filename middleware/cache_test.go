package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedRouter(hits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/cached", Cache(nil, time.Minute), func(c *gin.Context) {
		*hits++
		c.JSON(http.StatusOK, gin.H{"hits": *hits})
	})
	r.POST("/cached", Cache(nil, time.Minute), func(c *gin.Context) {
		*hits++
		c.JSON(http.StatusOK, gin.H{"hits": *hits})
	})
	return r
}

func TestCacheServesSecondGetFromCache(t *testing.T) {
	PurgeCache()
	hits := 0
	r := newCachedRouter(&hits)

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/cached?q=1", nil))
	require.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, 1, hits)

	// 第二次相同请求命中缓存，处理函数不再执行
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/cached?q=1", nil))
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, 1, hits)
	assert.Equal(t, w1.Body.String(), w2.Body.String())
}

func TestCacheKeyIncludesQueryParams(t *testing.T) {
	PurgeCache()
	hits := 0
	r := newCachedRouter(&hits)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cached?q=1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cached?q=2", nil))
	assert.Equal(t, 2, hits)
}

func TestCacheSkipsNonGet(t *testing.T) {
	PurgeCache()
	hits := 0
	r := newCachedRouter(&hits)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/cached", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/cached", nil))
	assert.Equal(t, 2, hits)
}
