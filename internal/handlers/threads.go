package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeroginaca/threads/internal/dto"
	"github.com/jeroginaca/threads/internal/util"
)

// CreateThread creates a top-level thread authored by the caller
// POST /api/v1/threads
func (h *Handlers) CreateThread(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		util.RespondUnauthorized(c, "missing identity")
		return
	}

	var req dto.CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}

	thread, err := h.threads.Create(c.Request.Context(), req.Text, userID, req.CommunityID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	h.invalidatePath(c.Request.Context(), req.Path)

	c.JSON(http.StatusCreated, dto.NewThreadResponse(thread))
}

// GetThread returns a thread with its replies and replies-to-replies
// GET /api/v1/threads/:id
func (h *Handlers) GetThread(c *gin.Context) {
	thread, err := h.threads.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewThreadResponse(thread))
}

// AddComment attaches a reply to an existing thread
// POST /api/v1/threads/:id/comments
func (h *Handlers) AddComment(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		util.RespondUnauthorized(c, "missing identity")
		return
	}

	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}

	comment, err := h.threads.AddComment(c.Request.Context(), c.Param("id"), req.Text, userID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	h.invalidatePath(c.Request.Context(), req.Path)

	c.JSON(http.StatusCreated, dto.NewThreadResponse(comment))
}
