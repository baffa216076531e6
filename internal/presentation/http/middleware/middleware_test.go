package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/config"
	"github.com/sangkips/billbook-api/internal/infrastructure/database/dbtest"
	"github.com/sangkips/billbook-api/internal/infrastructure/repository"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAPIKeyMiddleware(t *testing.T) {
	newRouter := func(key string) *gin.Engine {
		r := gin.New()
		r.Use(APIKeyMiddleware(&config.SecurityConfig{APIKey: key}))
		r.GET("/api/products", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
		return r
	}

	tests := []struct {
		name       string
		serverKey  string
		header     string
		wantStatus int
		wantError  string
	}{
		{"missing header", "s3cret", "", http.StatusUnauthorized, "Unauthorized"},
		{"wrong key", "s3cret", "guess", http.StatusUnauthorized, "Unauthorized"},
		{"server key unset", "", "s3cret", http.StatusInternalServerError, "API key not configured on server"},
		{"matching key", "s3cret", "s3cret", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}
			w := httptest.NewRecorder()
			newRouter(tt.serverKey).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError == "" {
				assert.Equal(t, "ok", w.Body.String())
				return
			}
			body := decodeError(t, w)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}

func TestIdempotencyReplaysSuccessfulPost(t *testing.T) {
	repo := repository.NewIdempotencyRepository(dbtest.New(t))

	var calls atomic.Int32
	r := gin.New()
	r.POST("/api/bills", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		n := calls.Add(1)
		c.JSON(http.StatusCreated, gin.H{"call": n})
	})

	send := func(key, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/bills", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := send("key-1", `{"customerName":"A"}`)
	require.Equal(t, http.StatusCreated, first.Code)

	replay := send("key-1", `{"customerName":"A"}`)
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), replay.Body.String())
	assert.Equal(t, int32(1), calls.Load())

	mismatch := send("key-1", `{"customerName":"B"}`)
	assert.Equal(t, http.StatusConflict, mismatch.Code)
	assert.Equal(t, int32(1), calls.Load())

	send("", `{"customerName":"A"}`)
	send("", `{"customerName":"A"}`)
	assert.Equal(t, int32(3), calls.Load())
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	repo := repository.NewIdempotencyRepository(dbtest.New(t))

	var calls atomic.Int32
	r := gin.New()
	r.POST("/api/bills", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		if calls.Add(1) == 1 {
			response.BadRequest(c, "customerName is required")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/bills", strings.NewReader(`{}`))
		req.Header.Set(IdempotencyKeyHeader, "retry-me")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientRateLimiter(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	t.Cleanup(rl.Close)

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/api/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.2"))
}

func TestRateLimiterConfigFrom(t *testing.T) {
	cfg := RateLimiterConfigFrom(120, 60)
	assert.InDelta(t, 2.0, cfg.RequestsPerSecond, 0.0001)
	assert.Equal(t, 120, cfg.BurstSize)

	def := RateLimiterConfigFrom(0, 0)
	assert.Equal(t, 100, def.BurstSize)
}

func TestCORSAllowsAPIKeyHeader(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(&config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}))
	r.GET("/api/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", APIKeyHeader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Allow-Headers")), strings.ToLower(APIKeyHeader))
}
