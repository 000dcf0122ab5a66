package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"bookreviews/internal/app"
	"bookreviews/internal/ratelimit"
	"bookreviews/pkg/store"
)

func newRateLimitedServer(t *testing.T, signupPerMinute int) *httptest.Server {
	t.Helper()
	redisSrv := miniredis.RunT(t)
	limiter, err := ratelimit.NewRedisFixedWindowLimiter(redisSrv.Addr(), "", "test:ratelimit", signupPerMinute, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	sessions, err := store.NewJWTSessionStore("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	a, err := app.New(app.Config{
		Store:    store.NewMemoryStore(),
		Sessions: sessions,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	srv, err := New(Config{App: a, SignupLimiter: limiter})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestSignupRateLimit(t *testing.T) {
	ts := newRateLimitedServer(t, 2)

	for i := 0; i < 2; i++ {
		status, body := doJSON(t, ts, http.MethodPost, "/api/auth/signup", "", map[string]any{
			"name":     "User",
			"email":    "user" + string(rune('a'+i)) + "@example.com",
			"password": "LongPassword1",
		})
		if status != http.StatusCreated {
			t.Fatalf("request %d status = %d, body = %v", i, status, body)
		}
	}

	status, body := doJSON(t, ts, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name":     "User",
		"email":    "userz@example.com",
		"password": "LongPassword1",
	})
	if status != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", status)
	}
	if body["message"] != "Too many requests, please try again later" {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestLoginWithoutLimiterUnaffected(t *testing.T) {
	ts := newRateLimitedServer(t, 5)
	signup(t, ts, "Alice", "alice@example.com")

	// The login route has no limiter configured, so repeated attempts pass.
	for i := 0; i < 10; i++ {
		status, _ := doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "alice@example.com",
			"password": "LongPassword1",
		})
		if status != http.StatusOK {
			t.Fatalf("attempt %d status = %d", i, status)
		}
	}
}
