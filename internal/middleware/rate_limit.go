package middleware

import (
	"context"
	"net/http"
	"pixel-gallery-server/internal/common/httpx"
	"pixel-gallery-server/internal/config"
	"pixel-gallery-server/internal/service"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type IPRateLimiter struct {
	ips sync.Map
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		r: r,
		b: b,
	}

	go i.cleanupLoop()

	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double check
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	i.ips.Store(ip, &client{limiter: limiter, lastSeen: time.Now()})

	return limiter
}

func (i *IPRateLimiter) cleanupLoop() {
	for {
		time.Sleep(1 * time.Minute)
		i.ips.Range(func(key, value interface{}) bool {
			client := value.(*client)
			if time.Since(client.lastSeen) > 3*time.Minute {
				i.ips.Delete(key)
			}
			return true
		})
	}
}

// AuthRateLimitMiddleware 认证接口的按 IP 限流。
// 配置了 Redis 时使用固定窗口计数器实现多实例共享配额，
// 否则退回进程内令牌桶。
func AuthRateLimitMiddleware() gin.HandlerFunc {
	var limiter *IPRateLimiter
	var once sync.Once

	return func(c *gin.Context) {
		cfg := config.Get()
		if !cfg.RateLimit.Enabled {
			c.Next()
			return
		}

		currentRPS := cfg.RateLimit.AuthRPS
		currentBurst := cfg.RateLimit.AuthBurst
		if currentRPS <= 0 {
			currentRPS = 5
		}
		if currentBurst <= 0 {
			currentBurst = 10
		}

		ip := c.ClientIP()

		if redisClient := service.GetRedisClient(); redisClient != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			key := service.RedisKey("rate", "auth", ip)
			count, err := redisClient.Incr(ctx, key).Result()
			if err == nil {
				if count == 1 {
					_ = redisClient.Expire(ctx, key, time.Second).Err()
				}
				if count > int64(currentBurst) {
					httpx.Fail(c, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
					c.Abort()
					return
				}
				c.Next()
				return
			}
			// Redis 出错时退回内存限流
		}

		once.Do(func() {
			limiter = NewIPRateLimiter(rate.Limit(currentRPS), currentBurst)
		})

		l := limiter.getLimiter(ip)

		// 动态更新 limit 和 burst (如果配置发生变更)
		if l.Limit() != rate.Limit(currentRPS) {
			l.SetLimit(rate.Limit(currentRPS))
		}
		if l.Burst() != currentBurst {
			l.SetBurst(currentBurst)
		}

		if !l.Allow() {
			httpx.Fail(c, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}
		c.Next()
	}
}
