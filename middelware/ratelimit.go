package middelware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"gearguard-backend/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	staleClientAfter = 3 * time.Minute
	cleanupInterval  = time.Minute
)

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	r       rate.Limit
	burst   int
	now     func() time.Time
}

// NewRateLimiter allows requestsPerMinute per client with an equal burst.
// A non-positive value disables limiting.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		r:       rate.Inf,
		now:     time.Now,
	}
	if requestsPerMinute > 0 {
		rl.r = rate.Every(time.Minute / time.Duration(requestsPerMinute))
		rl.burst = requestsPerMinute
	}
	return rl
}

// RunCleanup drops stale clients every minute until ctx is done
func (rl *RateLimiter) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *RateLimiter) cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	removed := 0
	for ip, c := range rl.clients {
		if rl.now().Sub(c.seen) > staleClientAfter {
			delete(rl.clients, ip)
			removed++
		}
	}
	return removed
}

func (rl *RateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if c, ok := rl.clients[ip]; ok {
		c.seen = rl.now()
		return c.lim
	}
	l := rate.NewLimiter(rl.r, rl.burst)
	rl.clients[ip] = &client{lim: l, seen: rl.now()}
	return l
}

// Middleware rejects clients over their budget with 429
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.get(c.ClientIP()).Allow() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, models.APIResponse{
			Status:  "error",
			Code:    http.StatusTooManyRequests,
			Message: "Too many requests",
			Error: &models.APIError{
				Type:    string(models.KindRateLimited),
				Details: "Rate limit exceeded, retry later",
			},
		})
	}
}
