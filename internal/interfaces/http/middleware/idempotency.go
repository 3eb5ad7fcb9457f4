package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	domainerrors "payzen.backend/internal/domain/errors"
	"payzen.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration bounds how long a key stays locked if the first request
	// never finishes.
	LockDuration = 30 * time.Second
	// RetentionDuration is how long a completed response is replayable
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response for a repeated
// Idempotency-Key instead of re-running the mutation. Keys are scoped per
// wallet so clients cannot collide with each other. Requests without the
// header pass through untouched.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		wallet, _ := GetWalletAddress(c)
		storageKey := fmt.Sprintf("idempotency:%s:%s", wallet, key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == processingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"success": false,
					"error":   "request already in progress",
					"code":    domainerrors.CodeIdempotencyConflict,
				})
				return
			}

			status, body := decodeStoredResponse(val)
			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Hit", "true")
			c.String(status, body)
			c.Abort()
			return
		}
		if !strings.Contains(err.Error(), "redis: nil") {
			// Redis down: serve the request rather than block payments.
			c.Next()
			return
		}

		locked, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !locked {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "request already in progress",
				"code":    domainerrors.CodeIdempotencyConflict,
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		// Only successful mutations are replayable; failures release the
		// key so the client can retry. The original status is stored with
		// the body so a replayed 201 stays a 201.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			stored := fmt.Sprintf("%d|%s", c.Writer.Status(), w.body.String())
			_ = redisSet(ctx, storageKey, stored, RetentionDuration)
		} else {
			_ = redisDel(ctx, storageKey)
		}
	}
}

// decodeStoredResponse splits a "<status>|<body>" record. Values written
// before the status prefix existed fall back to 200 with the raw body.
func decodeStoredResponse(val string) (int, string) {
	prefix, body, found := strings.Cut(val, "|")
	if !found {
		return http.StatusOK, val
	}
	status, err := strconv.Atoi(prefix)
	if err != nil || status < 100 || status > 599 {
		return http.StatusOK, val
	}
	return status, body
}
