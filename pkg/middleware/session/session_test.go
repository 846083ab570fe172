package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(Options{CookieName: "sid", TTL: time.Hour}))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, ID(c))
	})
	return r
}

func TestMiddlewareMintsSession(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	_, err := uuid.Parse(rec.Body.String())
	require.NoError(t, err)
	assert.Equal(t, rec.Body.String(), rec.Header().Get(HeaderKey))
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "sid="+rec.Body.String())
}

func TestMiddlewareReusesCookie(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: id})

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, id, rec.Body.String())
}

func TestMiddlewareHeaderWinsOverCookie(t *testing.T) {
	headerID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderKey, headerID)
	req.AddCookie(&http.Cookie{Name: "sid", Value: uuid.NewString()})

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, headerID, rec.Body.String())
}

func TestMiddlewareRejectsMalformedID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderKey, "not-a-uuid")

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	assert.NotEqual(t, "not-a-uuid", rec.Body.String())
	_, err := uuid.Parse(rec.Body.String())
	assert.NoError(t, err)
}

func TestShort(t *testing.T) {
	assert.Equal(t, "abc", Short("abc"))
	assert.Equal(t, "12345678", Short("123456789abc"))
}
