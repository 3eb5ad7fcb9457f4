package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	domainerrors "payzen.backend/internal/domain/errors"
	"payzen.backend/pkg/redis"
)

var (
	redisIncr   = redis.Incr
	redisExpire = redis.Expire
)

// RateLimitMiddleware caps requests per client IP over a fixed window,
// counted in redis so the limit holds across replicas. Guards the public
// auth endpoints against challenge/registration floods. Fails open when
// redis is unreachable.
func RateLimitMiddleware(window time.Duration, max int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())
		ctx := c.Request.Context()

		count, err := redisIncr(ctx, key)
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			_ = redisExpire(ctx, key, window)
		}

		if count > int64(max) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "too many requests, try again later",
				"code":    domainerrors.CodeRateLimited,
			})
			return
		}

		c.Next()
	}
}
