package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/waste3d/courseplatform-api/pkg/logger"
)

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"user_id", c.GetString(UserIDKey),
		}
		if c.Writer.Status() >= 500 {
			log.Error("http request", kv...)
			return
		}
		log.Info("http request", kv...)
	}
}
