package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masterblog/app/services"
	"masterblog/app/storage"
)

func newTestAuth(t *testing.T) *services.AuthService {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return services.NewAuthService(store, "test-secret", time.Hour)
}

func TestAuthRequired(t *testing.T) {
	auth := newTestAuth(t)
	_, err := auth.Register("alice", "pw")
	require.NoError(t, err)
	token, err := auth.Login("alice", "pw")
	require.NoError(t, err)

	var gotIdentity string
	handler := AuthRequired(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity = Identity(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	// No header.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/posts", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")

	// Garbage token.
	req := httptest.NewRequest("POST", "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token reaches the handler with the identity attached.
	req = httptest.NewRequest("POST", "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "alice", gotIdentity)
}

func TestIdentityDefaultsToEmpty(t *testing.T) {
	assert.Equal(t, "", Identity(httptest.NewRequest("GET", "/", nil)))
}

func TestRateLimitDeniesExcessRequests(t *testing.T) {
	limit, err := RateLimit(1, 0)
	require.NoError(t, err)

	handler := limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/posts", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rate limit exceeded")
}

func TestRateLimitVariesByPath(t *testing.T) {
	limit, err := RateLimit(1, 0)
	require.NoError(t, err)

	handler := limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	a := httptest.NewRequest("GET", "/api/posts", nil)
	a.RemoteAddr = "10.0.0.1:1234"
	b := httptest.NewRequest("GET", "/api/posts/search", nil)
	b.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, a)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A different route has its own bucket.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, b)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContentTypeJSON(t *testing.T) {
	handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/posts", nil))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/index.html", nil))
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

func TestRecovererTurnsPanicsInto500(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	handler := Recoverer(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
