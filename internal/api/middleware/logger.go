package middleware

import (
	"log/slog"
	"time"

	"bess-dashboard/internal/log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// Logger tags each request with an ID, attaches a logger carrying it to the
// request context and logs the request once it completes.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		ctx := c.Request.Context()
		l := log.Ctx(ctx).With(slog.String("request_id", id))
		c.Request = c.Request.WithContext(log.With(ctx, l))

		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		}
		l.Log(c.Request.Context(), level, "request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Int("bytes", c.Writer.Size()),
			slog.Duration("latency", time.Since(start)),
		)
		for _, err := range c.Errors {
			l.Error("handler error", slog.Any("error", err.Err))
		}
	}
}
