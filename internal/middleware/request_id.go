package middleware

import (
	"salon_reports_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const maxRequestIDLength = 128

// RequestID reuses the caller's X-Request-Id or assigns a new one, and echoes it
// on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(utils.RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = utils.NewRequestID()
		}
		c.Set(utils.RequestIDKey, id)
		c.Header(utils.RequestIDHeader, id)
		c.Next()
	}
}
