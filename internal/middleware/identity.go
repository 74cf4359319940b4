package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jeroginaca/threads/internal/util"
)

// RequireIdentity reads the caller's external identity from the X-User-ID
// header set by the auth proxy. Requests without one are rejected before any
// handler runs.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			util.RespondUnauthorized(c, "missing identity")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
