package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareAllowsWithinBurst(t *testing.T) {
	limiter := NewLimiter(1, 3)
	wrapped := Middleware(limiter, nil)(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/usage/increment", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		wrapped.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}
}

func TestMiddlewareRejectsOverBurst(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	wrapped := Middleware(limiter, nil)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/usage/increment", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Fatalf("expected a Retry-After hint")
	}
}

func TestMiddlewareKeysClientsSeparately(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	wrapped := Middleware(limiter, nil)(okHandler())

	first := httptest.NewRequest(http.MethodPost, "/usage/increment", nil)
	first.RemoteAddr = "10.0.0.3:1234"
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, first)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/usage/increment", nil)
	second.RemoteAddr = "10.0.0.4:1234"
	rr = httptest.NewRecorder()
	wrapped.ServeHTTP(rr, second)
	if rr.Code != http.StatusOK {
		t.Fatalf("distinct client should have its own bucket, got %d", rr.Code)
	}
}

func TestRemoteAddrKeyPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if key := RemoteAddrKey(req); key != "203.0.113.9" {
		t.Fatalf("expected forwarded client ip, got %q", key)
	}

	req.Header.Del("X-Forwarded-For")
	if key := RemoteAddrKey(req); key != "10.0.0.5" {
		t.Fatalf("expected remote host, got %q", key)
	}
}
