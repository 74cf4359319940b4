package util

import "github.com/gin-gonic/gin"

// GetUserIDFromContext returns the external user id the identity middleware
// stashed on the request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
