package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LoginRateLimit 按来源 IP 限制登录尝试频率
func LoginRateLimit(r float64, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	get := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[ip]
		if !ok {
			l = rate.NewLimiter(rate.Limit(r), burst)
			limiters[ip] = l
		}
		return l
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost && !get(c.ClientIP()).Allow() {
			c.String(http.StatusTooManyRequests, "too many login attempts")
			c.Abort()
			return
		}
		c.Next()
	}
}
