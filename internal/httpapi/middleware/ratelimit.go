package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// window counts requests from one client inside the current minute.
type window struct {
	start time.Time
	count int
}

type limiter struct {
	rpm int

	mu        sync.Mutex
	m         map[string]*window
	lastSweep time.Time
}

func (l *limiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Drop expired windows at most once a minute so churned client IPs
	// don't accumulate forever in a long-running daemon.
	if now.Sub(l.lastSweep) >= time.Minute {
		for k, w := range l.m {
			if now.Sub(w.start) >= time.Minute {
				delete(l.m, k)
			}
		}
		l.lastSweep = now
	}

	w := l.m[key]
	if w == nil || now.Sub(w.start) >= time.Minute {
		l.m[key] = &window{start: now, count: 1}
		return true
	}
	w.count++
	return w.count <= l.rpm
}

// RateLimit enforces a fixed-window per-IP limit of rpm requests per minute.
// rpm <= 0 disables limiting.
func RateLimit(rpm int) func(http.Handler) http.Handler {
	l := &limiter{rpm: rpm, m: make(map[string]*window)}
	return func(next http.Handler) http.Handler {
		if rpm <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientIP(r), time.Now()) {
				w.Header().Set("Retry-After", "60")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limited"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
