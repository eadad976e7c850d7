package middleware

import (
	"context"
	"sync"
	"time"

	"anoa.com/bookcommunity/pkg/apperror"
	"anoa.com/bookcommunity/pkg/response"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter is a token bucket per client IP.
type IPRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
	ttl     time.Duration
}

func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
		ttl:     3 * time.Minute,
	}
}

func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, found := l.clients[ip]
	if !found {
		c = &client{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()

	return c.limiter.Allow()
}

// Run evicts idle clients every minute until ctx is done.
func (l *IPRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.evict(time.Now())
		}
	}
}

func (l *IPRateLimiter) evict(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > l.ttl {
			delete(l.clients, ip)
		}
	}
}

func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.rps <= 0 {
			c.Next()
			return
		}
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			response.ResponseError(c, apperror.ErrRateLimitExceeded)
			c.Abort()
			return
		}
		c.Next()
	}
}
