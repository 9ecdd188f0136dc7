package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
)

// RequestLogger logs every API call with the acting player attached, so a
// user's economy and combat actions can be traced end to end.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		requestID := ""
		if id, exists := c.Get("request_id"); exists {
			requestID = id.(string)
		}
		userID := ""
		if id, exists := c.Get("user_id"); exists {
			userID = id.(string)
		}

		log.WithRequest(
			requestID,
			userID,
			c.Request.Method,
			c.Request.URL.Path,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(start),
			c.Writer.Size(),
		).Info("Request processed")
	}
}
