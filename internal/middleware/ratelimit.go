package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// client is one IP's request count inside the current window.
type client struct {
	windowStart time.Time
	count       int
}

type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time
}

// RateLimiter allows up to limit requests per client IP in each fixed window.
// Further requests get 429 until the window rolls over. A limit <= 0 disables
// the check.
//
// State is in memory and per process.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newRateLimiter(limit, window, time.Now).handle
}

func newRateLimiter(limit int, window time.Duration, now func() time.Time) *rateLimiter {
	return &rateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		now:     now,
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok || now.Sub(cl.windowStart) >= rl.window {
		rl.clients[ip] = &client{windowStart: now, count: 1}
		rl.evict(now)
		return true
	}
	cl.count++
	return cl.count <= rl.limit
}

// evict drops clients whose window ended; called with mu held.
func (rl *rateLimiter) evict(now time.Time) {
	for ip, cl := range rl.clients {
		if now.Sub(cl.windowStart) >= rl.window {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) handle(c *gin.Context) {
	if rl.limit <= 0 || rl.allow(c.ClientIP()) {
		c.Next()
		return
	}
	c.Header("Retry-After", strconv.Itoa(max(int(rl.window/time.Second), 1)))
	AbortWithError(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
}
