package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"pet-qr-tracker/internal/metrics"
)

const limiterIdleTTL = 10 * time.Minute

// IPRateLimiter es un token bucket por IP para los endpoints públicos de escritura.
type IPRateLimiter struct {
	mu      sync.Mutex
	perMin  int
	entries map[string]*limiterEntry
	now     func() time.Time
}

type limiterEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// NewIPRateLimiter con perMinute <= 0 devuelve nil (sin límite).
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &IPRateLimiter{
		perMin:  perMinute,
		entries: make(map[string]*limiterEntry),
		now:     time.Now,
	}
}

// Allow consume un token de la IP.
func (l *IPRateLimiter) Allow(ip string) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[ip]
	if !ok {
		// burst = perMin: un humano que recarga varias veces no queda bloqueado
		e = &limiterEntry{lim: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMin)), l.perMin)}
		l.entries[ip] = e
	}
	e.seen = now

	if len(l.entries) > 1024 {
		l.sweep(now)
	}
	return e.lim.AllowN(now, 1)
}

func (l *IPRateLimiter) sweep(now time.Time) {
	for ip, e := range l.entries {
		if now.Sub(e.seen) > limiterIdleTTL {
			delete(l.entries, ip)
		}
	}
}

// Middleware responde 429 JSON cuando la IP agotó sus tokens.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(ClientIP(r)) {
			metrics.HTTPRateLimited.Inc()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "rate_limited"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
