package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

// Logger logs one line per request through logrus and tags it with a request id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		c.Next()

		entry := logrus.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
		})
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("control request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("control request rejected")
		default:
			entry.Debug("control request")
		}
	}
}
