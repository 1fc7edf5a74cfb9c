package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
)

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		if status >= 500 {
			log.Error("HTTP request failed",
				"method", c.Request.Method, "path", c.FullPath(), "status", status, "duration", duration.String())
		} else {
			log.Info("HTTP request completed",
				"method", c.Request.Method, "path", c.FullPath(), "status", status, "duration", duration.String())
		}
	}
}
