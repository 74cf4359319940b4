package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeroginaca/threads/internal/dto"
	"github.com/jeroginaca/threads/internal/util"
)

// GetActivity returns the replies others have left on the caller's threads,
// newest first
// GET /api/v1/users/me/activity
func (h *Handlers) GetActivity(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		util.RespondUnauthorized(c, "missing identity")
		return
	}

	replies, err := h.activity.GetActivity(c.Request.Context(), userID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activity": dto.NewThreadResponses(replies),
	})
}
