package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"payzen.backend/pkg/logger"
)

const RequestIDKey = "request_id"

// RequestIDMiddleware propagates or generates a per-request id, exposing
// it on the response and in the request context for the logger
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)

		// Same string key the logger reads with WithContext.
		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, id) //nolint:staticcheck
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
