package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// maxLimiters caps how many per-client limiters are kept.
	maxLimiters = 10000
	// limiterIdle is how long a client must be quiet before its bucket may be evicted.
	limiterIdle = 10 * time.Minute
)

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// clientLimiter hands out one token bucket per client IP. The key is the
// request's RemoteAddr; it only reflects X-Forwarded-For style headers when
// the router trusts a proxy (see SetTrustProxy).
type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	max      int
	idle     time.Duration
	now      func() time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	return &clientLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(rps),
		burst:    burst,
		max:      maxLimiters,
		idle:     limiterIdle,
		now:      time.Now,
	}
}

func (cl *clientLimiter) get(key string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	now := cl.now()
	if e, ok := cl.limiters[key]; ok {
		e.lastSeen = now
		return e.lim
	}
	if len(cl.limiters) >= cl.max {
		cl.evict(now)
	}
	e := &limiterEntry{lim: rate.NewLimiter(cl.rate, cl.burst), lastSeen: now}
	cl.limiters[key] = e
	return e.lim
}

// evict drops idle clients. When nobody is idle, the least recently seen
// client goes, so active buckets are never refilled wholesale.
func (cl *clientLimiter) evict(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
	)
	for k, e := range cl.limiters {
		if now.Sub(e.lastSeen) >= cl.idle {
			delete(cl.limiters, k)
			continue
		}
		if oldestKey == "" || e.lastSeen.Before(oldest) {
			oldestKey, oldest = k, e.lastSeen
		}
	}
	if len(cl.limiters) >= cl.max && oldestKey != "" {
		delete(cl.limiters, oldestKey)
	}
}

func (cl *clientLimiter) size() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.limiters)
}

// Handler rejects requests over the client's budget with 429.
func (cl *clientLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(key); err == nil {
			key = host
		}
		if !cl.get(key).Allow() {
			IncrementBackpressure("rate_limit")
			writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
