package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// CustomLoggerMiddleware creates a custom logging middleware that logs HTTP requests in simple text format
func CustomLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Start timer
		start := time.Now()

		// Process request
		c.Next()

		latency := time.Since(start)

		// Session ID is set by handlers that resolve one
		sessionID := "-"
		if id, exists := c.Get(SessionIDKey); exists {
			if s, ok := id.(string); ok {
				sessionID = s
			}
		}

		fmt.Printf("[API] %s | %s | %d | %s | %s | Session: %s\n",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			latency.String(),
			c.ClientIP(),
			sessionID,
		)
	}
}

// SessionIDKey is the gin context key under which handlers record the
// session a request worked on.
const SessionIDKey = "session_id"
