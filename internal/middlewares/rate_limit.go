package middlewares

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/metrics"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/responses"
)

var errRateLimited = errors.New("rate limit exceeded")

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client.
type RateLimiter struct {
	perMinute int
	burst     int
	idle      time.Duration

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	if burst <= 0 {
		burst = 10
	}
	return &RateLimiter{
		perMinute: perMinute,
		burst:     burst,
		idle:      5 * time.Minute,
		clients:   make(map[string]*clientLimiter),
	}
}

func (rl *RateLimiter) limiterFor(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// drop idle clients while we hold the lock
	for k, cl := range rl.clients {
		if now.Sub(cl.lastSeen) > rl.idle {
			delete(rl.clients, k)
		}
	}

	cl, ok := rl.clients[key]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rl.perMinute)), rl.burst),
		}
		rl.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// clientKey prefers the authenticated user over the remote address.
func clientKey(c *gin.Context) string {
	if userID, ok := c.Get("userId"); ok {
		if s, ok := userID.(interface{ String() string }); ok {
			return "user:" + s.String()
		}
	}
	return "ip:" + c.ClientIP()
}

// Handler rejects requests over the limit with 429.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.limiterFor(clientKey(c), time.Now())
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.perMinute))

		if !limiter.Allow() {
			metrics.RateLimited.Inc()
			c.Header("Retry-After", "60")
			responses.Abort(c, http.StatusTooManyRequests, errRateLimited, "Too many requests, please slow down")
			return
		}
		c.Next()
	}
}
