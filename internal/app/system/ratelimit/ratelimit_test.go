// internal/app/system/ratelimit/ratelimit_test.go
package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/volunteerconnect/volunteerconnect/internal/app/system/ratelimit"
)

func TestLimiterAllowsUpToLimit(t *testing.T) {
	l := ratelimit.New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("key") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("key") {
		t.Fatal("fourth request should be blocked")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := ratelimit.New(1, time.Minute)

	if !l.Allow("a") {
		t.Fatal("first request for a should be allowed")
	}
	if !l.Allow("b") {
		t.Fatal("first request for b should be allowed")
	}
	if l.Allow("a") {
		t.Fatal("second request for a should be blocked")
	}
}

func TestLimiterWindowExpires(t *testing.T) {
	l := ratelimit.New(1, 20*time.Millisecond)

	if !l.Allow("key") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("key") {
		t.Fatal("second request should be blocked")
	}

	time.Sleep(30 * time.Millisecond)

	if !l.Allow("key") {
		t.Fatal("request after window expiry should be allowed")
	}
}

func TestLimiterReset(t *testing.T) {
	l := ratelimit.New(1, time.Minute)

	l.Allow("key")
	if l.Allow("key") {
		t.Fatal("second request should be blocked")
	}

	l.Reset("key")

	if !l.Allow("key") {
		t.Fatal("request after reset should be allowed")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "203.0.113.7:52110",
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for wins",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ratelimit.ClientIP(r); got != tt.want {
				t.Fatalf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginLimiterBlocksRepeatedUser(t *testing.T) {
	ll := ratelimit.NewLoginLimiter()

	for i := 0; i < 5; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		r.RemoteAddr = "203.0.113.7:1000"
		allowed, _ := ll.Check(r, "Alice")
		if !allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	r := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	r.RemoteAddr = "198.51.100.4:2000"
	allowed, reason := ll.Check(r, "alice")
	if allowed {
		t.Fatal("sixth attempt for the same username should be blocked")
	}
	if reason == "" {
		t.Fatal("expected a block reason")
	}
}

func TestLoginLimiterResetUser(t *testing.T) {
	ll := ratelimit.NewLoginLimiter()

	for i := 0; i < 5; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		r.RemoteAddr = "203.0.113.7:1000"
		ll.Check(r, "bob")
	}

	ll.ResetUser("BOB")

	r := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	r.RemoteAddr = "203.0.113.8:1000"
	if allowed, _ := ll.Check(r, "bob"); !allowed {
		t.Fatal("attempt after reset should be allowed")
	}
}
