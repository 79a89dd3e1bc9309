package middleware

import (
	"net/http"
	"sync"
	"time"

	"go-timetrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Idle limiters are dropped so the per-key map cannot grow unbounded under
// an address spray.
const (
	limiterIdleTTL       = 10 * time.Minute
	limiterSweepInterval = time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type keyedLimiter struct {
	entries   map[string]*limiterEntry
	mu        sync.Mutex
	r         rate.Limit
	b         int
	lastSweep time.Time
}

func newKeyedLimiter(r rate.Limit, b int) *keyedLimiter {
	return &keyedLimiter{
		entries:   make(map[string]*limiterEntry),
		r:         r,
		b:         b,
		lastSweep: time.Now(),
	}
}

func (k *keyedLimiter) get(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := time.Now()
	if now.Sub(k.lastSweep) >= limiterSweepInterval {
		for addr, e := range k.entries {
			if now.Sub(e.lastSeen) >= limiterIdleTTL {
				delete(k.entries, addr)
			}
		}
		k.lastSweep = now
	}

	e, exists := k.entries[key]
	if !exists {
		e = &limiterEntry{limiter: rate.NewLimiter(k.r, k.b)}
		k.entries[key] = e
	}
	e.lastSeen = now

	return e.limiter
}

// RateLimitByIP bounds credential-guessing attempts per client address.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := newKeyedLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			c.Abort()
			response.Error(c, http.StatusTooManyRequests, "Too many requests from this IP", nil)
			return
		}
		c.Next()
	}
}
