package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LoginRateLimiter throttles credential-guessing per client IP. Idle
// limiters are evicted after an hour.
type LoginRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rps      rate.Limit
	burst    int
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLoginRateLimiter(cfg config.RateLimitConfig) *LoginRateLimiter {
	return &LoginRateLimiter{
		limiters: make(map[string]*ipLimiter),
		rps:      rate.Limit(cfg.LoginRPS),
		burst:    cfg.LoginBurst,
	}
}

func (l *LoginRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many login attempts, try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (l *LoginRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now

	if len(l.limiters) > 1000 {
		l.evictIdleLocked(now)
	}

	return entry.limiter.Allow()
}

func (l *LoginRateLimiter) evictIdleLocked(now time.Time) {
	for ip, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > time.Hour {
			delete(l.limiters, ip)
		}
	}
}
