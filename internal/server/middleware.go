package server

import (
	"time"

	"github.com/Abhijit03/auction-app/services/auction/helpers"
	"github.com/Abhijit03/auction-app/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// IdentityMiddleware copies the externally-authenticated user id from the
// request headers into the gin context. Authentication happens upstream;
// handlers that need an actor reject requests without one.
func IdentityMiddleware(c *gin.Context) {
	if userID := c.GetHeader(helpers.UserIDHeader); userID != "" {
		c.Set(helpers.UserIDKey, userID)
	}
	c.Next()
}
