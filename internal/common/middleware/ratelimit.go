package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Mustafaygt66/EMKO/internal/common/errors"
)

const minLimiterIdle = 10 * time.Minute

// IPRateLimiter keeps one token bucket per client IP. Buckets idle long
// enough to have refilled are dropped by a sweep that runs at most once
// per idle window.
type IPRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*ipBucket
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(perSecond float64, burst int) *IPRateLimiter {
	idle := minLimiterIdle
	if perSecond > 0 {
		if refill := time.Duration(float64(burst) / perSecond * float64(time.Second)); refill > idle {
			idle = refill
		}
	}
	return &IPRateLimiter{
		limiters:  make(map[string]*ipBucket),
		limit:     rate.Limit(perSecond),
		burst:     burst,
		idle:      idle,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *IPRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	b, ok := l.limiters[ip]
	if !ok {
		b = &ipBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = b
	}
	b.lastSeen = now
	return b.limiter
}

// sweep must be called with mu held.
func (l *IPRateLimiter) sweep(now time.Time) {
	for ip, b := range l.limiters {
		if now.Sub(b.lastSeen) >= l.idle {
			delete(l.limiters, ip)
		}
	}
	l.lastSweep = now
}

// Len reports how many IPs currently hold a bucket.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// Allow consumes one token for ip.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.get(ip).Allow()
}

// RateLimit rejects requests over the per-IP budget with TOO_MANY_REQUESTS.
func RateLimit(scope string, limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			retryAfter := time.Minute
			if limiter.limit > 0 {
				retryAfter = time.Duration(float64(time.Second) / float64(limiter.limit))
			}
			RespondError(c, errors.NewRateLimitError(scope, retryAfter))
			return
		}
		c.Next()
	}
}
