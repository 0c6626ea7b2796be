package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trust-fund.backend/internal/interfaces/http/middleware"
	"trust-fund.backend/pkg/redis"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())

	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = c.GetString(middleware.RequestIDKey)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
}

func TestRequestIDMiddleware_KeepsIncomingID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "upstream-id", w.Header().Get("X-Request-ID"))
}

func TestMetricsMiddleware_DoesNotBreakRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.MetricsMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", middleware.MetricsHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func setupIdempotencyRouter(t *testing.T) (*gin.Engine, *int) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	gin.SetMode(gin.TestMode)
	calls := 0
	r := gin.New()
	// Same order as production: forged identity headers are gone before the
	// idempotency scope is computed.
	r.Use(middleware.StripInboundIdentity())
	r.Use(middleware.IdempotencyMiddleware())
	r.POST("/send", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"success": true, "call": calls})
	})
	r.POST("/fail", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusBadGateway, gin.H{"success": false})
	})
	return r, &calls
}

func postWithKey(r *gin.Engine, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if key != "" {
		req.Header.Set(middleware.IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyMiddleware_ReplaysResponse(t *testing.T) {
	r, calls := setupIdempotencyRouter(t)

	first := postWithKey(r, "/send", "key-1")
	require.Equal(t, http.StatusOK, first.Code)

	second := postWithKey(r, "/send", "key-1")
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, 1, *calls)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
}

func TestIdempotencyMiddleware_DistinctKeysProcessSeparately(t *testing.T) {
	r, calls := setupIdempotencyRouter(t)

	postWithKey(r, "/send", "key-a")
	postWithKey(r, "/send", "key-b")
	assert.Equal(t, 2, *calls)
}

func TestIdempotencyMiddleware_NoKeyPassesThrough(t *testing.T) {
	r, calls := setupIdempotencyRouter(t)

	postWithKey(r, "/send", "")
	postWithKey(r, "/send", "")
	assert.Equal(t, 2, *calls)
}

func TestIdempotencyMiddleware_ForgedUserHeaderCannotChangeScope(t *testing.T) {
	r, calls := setupIdempotencyRouter(t)

	// An attacker supplying someone else's user id must not be able to carve
	// out (or poison) that user's idempotency slot; the header is stripped
	// and both requests fall back to the same client-IP scope.
	first := httptest.NewRequest(http.MethodPost, "/send", nil)
	first.Header.Set(middleware.IdempotencyHeader, "key-1")
	first.Header.Set(middleware.UserIDHeader, "victim-user-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, first)
	require.Equal(t, http.StatusOK, w.Code)

	second := httptest.NewRequest(http.MethodPost, "/send", nil)
	second.Header.Set(middleware.IdempotencyHeader, "key-1")
	second.Header.Set(middleware.UserIDHeader, "another-forged-id")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, second)
	require.Equal(t, http.StatusOK, w2.Code)

	assert.Equal(t, 1, *calls)
	assert.Equal(t, "true", w2.Header().Get("X-Idempotency-Hit"))
}

func TestIdempotencyMiddleware_FailureAllowsRetry(t *testing.T) {
	r, calls := setupIdempotencyRouter(t)

	first := postWithKey(r, "/fail", "key-f")
	require.Equal(t, http.StatusBadGateway, first.Code)

	second := postWithKey(r, "/fail", "key-f")
	require.Equal(t, http.StatusBadGateway, second.Code)
	assert.Equal(t, 2, *calls)
}
