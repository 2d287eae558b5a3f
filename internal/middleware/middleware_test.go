package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pet-qr-tracker/internal/ports/auth"
)

func TestClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"cloudflare wins", map[string]string{"CF-Connecting-IP": "1.1.1.1", "X-Forwarded-For": "2.2.2.2"}, "9.9.9.9:1234", "1.1.1.1"},
		{"true client ip", map[string]string{"True-Client-IP": "3.3.3.3", "X-Real-IP": "4.4.4.4"}, "9.9.9.9:1234", "3.3.3.3"},
		{"first forwarded entry", map[string]string{"X-Forwarded-For": " 5.5.5.5 , 6.6.6.6"}, "9.9.9.9:1234", "5.5.5.5"},
		{"real ip", map[string]string{"X-Real-IP": "7.7.7.7"}, "9.9.9.9:1234", "7.7.7.7"},
		{"empty forwarded falls through", map[string]string{"X-Forwarded-For": " , 6.6.6.6", "X-Real-IP": "7.7.7.7"}, "9.9.9.9:1234", "7.7.7.7"},
		{"remote addr without port", nil, "9.9.9.9:1234", "9.9.9.9"},
		{"ipv6 remote", nil, "[2001:db8::1]:443", "2001:db8::1"},
		{"remote without port", nil, "10.0.0.1", "10.0.0.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, ClientIP(r))
		})
	}
}

func TestIPRateLimiter(t *testing.T) {
	assert.Nil(t, NewIPRateLimiter(0))
	var nilLim *IPRateLimiter
	assert.True(t, nilLim.Allow("x"))

	lim := NewIPRateLimiter(2)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lim.now = func() time.Time { return now }

	assert.True(t, lim.Allow("1.1.1.1"))
	assert.True(t, lim.Allow("1.1.1.1"))
	assert.False(t, lim.Allow("1.1.1.1"))
	assert.True(t, lim.Allow("2.2.2.2"), "other IPs have their own bucket")

	now = now.Add(30 * time.Second)
	assert.True(t, lim.Allow("1.1.1.1"), "one token refills every 30s")
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	lim := NewIPRateLimiter(1)
	h := lim.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func() int {
		r := httptest.NewRequest(http.MethodPost, "/api/location/frida", nil)
		r.Header.Set("X-Real-IP", "8.8.8.8")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}
	assert.Equal(t, http.StatusNoContent, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}

type fakeVerifier struct{}

func (fakeVerifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if token == "good" {
		return auth.Claims{Subject: "owner", Admin: true}, nil
	}
	return auth.Claims{}, errors.New("bad token")
}

func TestAuthContextAndRequireAdmin(t *testing.T) {
	protected := AuthContext(fakeVerifier{})(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, _ := GetClaims(r.Context())
		_, _ = w.Write([]byte(c.Subject))
	})))

	do := func(authz string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/admin/pets", nil)
		if authz != "" {
			r.Header.Set("Authorization", authz)
		}
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, do("").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer bad").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Basic good").Code)

	w := do("Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "owner", w.Body.String())
}

func TestAuthContext_DevMode(t *testing.T) {
	h := AuthContext(nil)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	r := httptest.NewRequest(http.MethodGet, "/admin/pets", nil)
	r.Header.Set("X-Debug-User-ID", "dev")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}
