package middleware

import (
	"log/slog"
	"time"

	"Radio_Community/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger 每个请求一条日志
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}
		if id, ok := c.Get(ContextUserIDKey); ok {
			attrs = append(attrs, "user_id", id)
		}
		logger.Log.Log(c.Request.Context(), level, "http request", attrs...)
	}
}
