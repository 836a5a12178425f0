package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/config"
	"github.com/sangkips/pos-api/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestClientRateLimiter(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Hour,
		EntryTTL:          time.Minute,
	})
	defer rl.Stop()

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/lookup", func(c *gin.Context) { c.Status(http.StatusOK) })

	fromIP := func(ip string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/lookup", nil)
		req.RemoteAddr = ip + ":5000"
		return req
	}

	assert.Equal(t, http.StatusOK, serve(r, fromIP("10.0.0.1")).Code)
	assert.Equal(t, http.StatusOK, serve(r, fromIP("10.0.0.1")).Code)

	w := serve(r, fromIP("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	// Another terminal has its own bucket.
	assert.Equal(t, http.StatusOK, serve(r, fromIP("10.0.0.2")).Code)
	assert.Equal(t, 2, rl.ActiveClients())

	rl.cleanup(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, rl.ActiveClients())
}

func TestClientRateLimiter_ZeroBurstDisables(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfigFromSettings(0, 60))
	defer rl.Stop()

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
	assert.Equal(t, 0, rl.ActiveClients())
}

func TestRateLimiterConfigFromSettings(t *testing.T) {
	cfg := RateLimiterConfigFromSettings(120, 60)
	assert.Equal(t, 2.0, cfg.RequestsPerSecond)
	assert.Equal(t, 120, cfg.BurstSize)
}

func TestLoggerMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	var seenInContext string
	r := gin.New()
	r.Use(LoggerMiddleware(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) {
		seenInContext = logger.GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	t.Run("propagates incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok?barcode=1", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		w := serve(r, req)

		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "req-123", seenInContext)

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-123", fields["request_id"])
		assert.Equal(t, "/ok?barcode=1", fields["path"])
		assert.EqualValues(t, http.StatusOK, fields["status"])
	})

	t.Run("generates request id and warns on 4xx", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	r := gin.New()
	r.Use(RecoveryMiddleware(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) { panic("printer on fire") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")

	entries := logs.FilterMessage("Panic recovered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "printer on fire", entries[0].ContextMap()["panic"])
}

func TestCORSMiddleware(t *testing.T) {
	newRouter := func(cfg *config.CORSConfig) *gin.Engine {
		r := gin.New()
		r.Use(CORSMiddleware(cfg))
		r.POST("/transactions", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	preflight := func(origin string) *http.Request {
		req := httptest.NewRequest(http.MethodOptions, "/transactions", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		return req
	}

	t.Run("credentialed preflight lists methods and headers", func(t *testing.T) {
		r := newRouter(&config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:3001"},
			AllowedMethods: []string{"*"},
			AllowedHeaders: []string{"*"},
		})
		req := preflight("http://localhost:3000")
		req.Header.Set("Access-Control-Request-Headers", "content-type,authorization")
		w := serve(r, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

		methods := w.Header().Get("Access-Control-Allow-Methods")
		assert.NotContains(t, methods, "*")
		assert.Contains(t, methods, http.MethodPost)

		headers := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
		assert.NotContains(t, headers, "*")
		assert.Contains(t, headers, "content-type")
		assert.Contains(t, headers, "authorization")
		assert.Contains(t, headers, "x-request-id")
	})

	t.Run("explicit lists are kept", func(t *testing.T) {
		r := newRouter(&config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"Content-Type"},
		})
		w := serve(r, preflight("http://localhost:3000"))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.NotContains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
	})

	t.Run("rejects other origins", func(t *testing.T) {
		r := newRouter(&config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}})
		w := serve(r, preflight("http://evil.example.com"))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard origin drops credentials", func(t *testing.T) {
		r := newRouter(&config.CORSConfig{AllowedOrigins: []string{"*"}})
		w := serve(r, preflight("http://anywhere.example.com"))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})
}
