package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/apperr"
)

// RateLimit is a fixed-window per-IP limiter backed by Redis. The window key
// expires with the window, so a Redis restart just resets counters.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix()/int64(window.Seconds()))

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			// Limiter failure must not take the API down.
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(c.Request.Context(), key, window)
		}

		if count > int64(limit) {
			Fail(c, apperr.RateLimitedErr("Too many requests. Try again shortly."))
			return
		}
		c.Next()
	}
}
