package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"voice-booking-webhook/internal/middleware"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func limitedRouter(rl *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RateLimit(rl, zap.NewNop()))
	r.Handle("/api/create-web-call", ok).Methods(http.MethodGet)
	r.Handle("/vapi-webhook", ok).Methods(http.MethodPost)
	r.Handle("/retell-webhook", ok).Methods(http.MethodPost)
	return r
}

func hit(h http.Handler, method, path, remote, fwd string) int {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = remote
	if fwd != "" {
		req.Header.Set("X-Forwarded-For", fwd)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimit(t *testing.T) {
	h := limitedRouter(middleware.NewRateLimiter(0.001, 2, false))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, hit(h, http.MethodGet, "/api/create-web-call", "10.0.0.1:5555", ""))
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// other clients have their own bucket
	assert.Equal(t, http.StatusOK, hit(h, http.MethodGet, "/api/create-web-call", "10.0.0.2:5555", ""))
}

func TestRateLimitSkipsWebhooks(t *testing.T) {
	h := limitedRouter(middleware.NewRateLimiter(10, 20, false))

	counts := map[int]int{}
	for i := 0; i < 30; i++ {
		counts[hit(h, http.MethodPost, "/vapi-webhook", "198.51.100.9:443", "")]++
		counts[hit(h, http.MethodPost, "/retell-webhook", "198.51.100.9:443", "")]++
	}
	assert.Equal(t, map[int]int{http.StatusOK: 60}, counts)
}

func TestRateLimitIgnoresForwardedForByDefault(t *testing.T) {
	h := limitedRouter(middleware.NewRateLimiter(0.001, 1, false))

	assert.Equal(t, http.StatusOK, hit(h, http.MethodGet, "/api/create-web-call", "10.0.0.1:5555", "203.0.113.1"))
	// a fresh XFF value does not buy a fresh bucket
	assert.Equal(t, http.StatusTooManyRequests, hit(h, http.MethodGet, "/api/create-web-call", "10.0.0.1:5555", "203.0.113.2"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", middleware.ClientIP(req, true))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", middleware.ClientIP(req, true))
	assert.Equal(t, "192.0.2.1", middleware.ClientIP(req, false))
}

func TestRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var seen string
	h := middleware.RequestID(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFrom(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(middleware.RequestIDHeader))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.Equal(t, "/health", fields["path"])

	// caller-supplied ids are kept
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}
