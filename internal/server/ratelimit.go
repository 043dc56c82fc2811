package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ipLimiter throttles mutating requests per client IP. Buckets are created
// lazily and idle ones are swept whenever a new client shows up, so the map
// stays bounded without a background goroutine.
type ipLimiter struct {
	mu    sync.Mutex
	limit rate.Limit
	burst int
	ttl   time.Duration
	seen  map[string]*ipBucket
}

type ipBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(limit rate.Limit, burst int, ttl time.Duration) *ipLimiter {
	return &ipLimiter{
		limit: limit,
		burst: burst,
		ttl:   ttl,
		seen:  make(map[string]*ipBucket),
	}
}

func (l *ipLimiter) allowRequest(r *http.Request) bool {
	return l.allow(clientIP(r))
}

func (l *ipLimiter) allow(ip string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.seen[ip]
	if b == nil {
		l.sweep(now)
		b = &ipBucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.seen[ip] = b
	}
	b.lastSeen = now
	return b.lim.Allow()
}

// sweep drops buckets idle for longer than ttl. Caller holds mu.
func (l *ipLimiter) sweep(now time.Time) {
	for ip, b := range l.seen {
		if now.Sub(b.lastSeen) > l.ttl {
			delete(l.seen, ip)
		}
	}
}

func clientIP(r *http.Request) string {
	xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
