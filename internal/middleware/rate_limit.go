package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segyhp/finance-tracker/pkg/response"
	"golang.org/x/time/rate"
)

const (
	// CleanupInterval is the interval for cleaning up stale limiters
	CleanupInterval = 5 * time.Minute
	// LimiterTTL is the time-to-live for inactive limiters
	LimiterTTL = 10 * time.Minute
)

// RateLimiter manages per-client rate limiting keyed by remote IP
type RateLimiter struct {
	limiters          map[string]*limiterEntry
	trustedProxies    []netip.Prefix
	mu                sync.Mutex
	requestsPerMinute int
	rateLimit         float64
	burstSize         int
	stopCh            chan struct{}
	stopOnce          sync.Once
	now               func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter and starts its cleanup loop.
// X-Forwarded-For is only honoured for requests arriving from trustedProxies.
func NewRateLimiter(requestsPerMinute, burstSize int, trustedProxies ...netip.Prefix) *RateLimiter {
	rl := &RateLimiter{
		limiters:          make(map[string]*limiterEntry),
		trustedProxies:    trustedProxies,
		requestsPerMinute: requestsPerMinute,
		rateLimit:         float64(requestsPerMinute) / 60.0,
		burstSize:         burstSize,
		stopCh:            make(chan struct{}),
		now:               time.Now,
	}

	go rl.cleanup()

	return rl
}

// Allow checks if a request from the given client is allowed
func (r *RateLimiter) Allow(client string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	entry, exists := r.limiters[client]
	if !exists {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Limit(r.rateLimit), r.burstSize),
		}
		r.limiters[client] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// retryAfter estimates how long until the client gets one token back
func (r *RateLimiter) retryAfter() int {
	if r.rateLimit <= 0 {
		return 60
	}
	seconds := int(1 / r.rateLimit)
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

// cleanup periodically removes stale limiters to prevent memory leaks
func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictStale()
		case <-r.stopCh:
			return
		}
	}
}

func (r *RateLimiter) evictStale() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	evicted := 0
	for client, entry := range r.limiters {
		if now.Sub(entry.lastSeen) > LimiterTTL {
			delete(r.limiters, client)
			evicted++
		}
	}

	if evicted > 0 {
		log.Debug().Int("evicted", evicted).Msg("Cleaned up stale rate limiters")
	}
	return evicted
}

// Stop stops the cleanup goroutine
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// Middleware rejects clients that exceed their budget with a 429
func (r *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		client := r.clientIP(req)

		if !r.Allow(client) {
			retryAfter := r.retryAfter()

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", r.requestsPerMinute))
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))

			log.Warn().
				Str("client", client).
				Int("retry_after", retryAfter).
				Msg("Rate limit exceeded")

			response.TooManyRequests(w, fmt.Sprintf("Too many requests. Please retry after %d seconds.", retryAfter))
			return
		}

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", r.requestsPerMinute))
		next.ServeHTTP(w, req)
	})
}

// clientIP keys on RemoteAddr unless the peer is a trusted proxy. Behind one,
// X-Forwarded-For is walked from the right and the first untrusted hop wins,
// so a client cannot pick its own key by prepending addresses.
func (r *RateLimiter) clientIP(req *http.Request) string {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		host = req.RemoteAddr
	}

	if !r.trusted(host) {
		return host
	}

	hops := strings.Split(req.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if _, err := netip.ParseAddr(hop); err != nil {
			// anything left of a garbled entry is client controlled
			break
		}
		if !r.trusted(hop) {
			return hop
		}
		host = hop
	}

	return host
}

func (r *RateLimiter) trusted(ip string) bool {
	if len(r.trustedProxies) == 0 {
		return false
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, prefix := range r.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
