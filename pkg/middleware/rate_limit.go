package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeisme/sitevault/pkg/configs"
)

// limiterPool 按键分配 limiter，条目过多时整体重建.
type limiterPool struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

func newLimiterPool(rps float64, burst int) *limiterPool {
	p := &limiterPool{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}

	go p.janitor()

	return p
}

func (p *limiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if l, ok := p.limiters[key]; ok {
		return l
	}

	l := rate.NewLimiter(rate.Limit(p.rps), p.burst)
	p.limiters[key] = l

	return l
}

// janitor 没有逐键的访问时间统计，map 超限时直接重建
func (p *limiterPool) janitor() {
	const (
		interval   = 10 * time.Minute
		maxEntries = 10000
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		p.mu.Lock()

		if len(p.limiters) > maxEntries {
			p.limiters = make(map[string]*rate.Limiter)
		}

		p.mu.Unlock()
	}
}

// RateLimitMiddleware 按配置限流：global / ip / header:<name> 三种键模式.
func RateLimitMiddleware(cfg configs.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	mode := strings.ToLower(strings.TrimSpace(cfg.Key))

	if mode == "" || mode == "global" {
		shared := rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)

		return func(c *gin.Context) {
			if !shared.Allow() {
				rejectRateLimited(c)
				return
			}

			c.Next()
		}
	}

	pool := newLimiterPool(cfg.RPS, cfg.Burst)

	return func(c *gin.Context) {
		key := limiterKey(c, mode)

		if !pool.get(key).Allow() {
			rejectRateLimited(c)
			return
		}

		c.Next()
	}
}

func rejectRateLimited(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
}

// limiterKey 解析限流键；header 模式下空头回退到客户端 IP.
func limiterKey(c *gin.Context, mode string) string {
	var key string

	if name, ok := strings.CutPrefix(mode, "header:"); ok {
		key = c.GetHeader(name)
	}

	if key == "" {
		key = clientIP(c)
	}

	if key == "" {
		key = "unknown"
	}

	return key
}

func clientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}

	return c.Request.RemoteAddr
}
