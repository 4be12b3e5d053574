package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/piwi3910/plycut/internal/logger"
)

// requestIDHeader is the HTTP header name for the request ID.
const requestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key for the request ID.
const requestIDKey = "request_id"

// requestID ensures each request carries a unique ID. A client-supplied
// X-Request-ID header is kept; otherwise a new UUID is generated.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// getRequestID retrieves the request ID from the gin context.
func getRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// recovery recovers from handler panics and returns a 500 error, logging
// the panic with the request ID.
func recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				l := logger.Logger()
				l.Error().
					Str("request_id", getRequestID(c)).
					Interface("panic", err).
					Msg("PANIC recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
					Error: "An unexpected error occurred",
				})
			}
		}()
		c.Next()
	}
}

// requestLogger emits one structured log line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l := logger.Logger()
		l.Info().
			Str("request_id", getRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	}
}
