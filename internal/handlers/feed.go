package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeroginaca/threads/internal/dto"
	"github.com/jeroginaca/threads/internal/service"
	"github.com/jeroginaca/threads/internal/util"
)

// GetFeed returns a page of the main feed, newest first
// GET /api/v1/feed?page=&page_size=
func (h *Handlers) GetFeed(c *gin.Context) {
	page := util.ParseInt(c.Query("page"), 1)
	pageSize := util.ParseInt(c.Query("page_size"), service.DefaultPageSize)
	if pageSize > 100 {
		pageSize = 100
	}

	feedPage, err := h.feed.FetchFeed(c.Request.Context(), page, pageSize)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    dto.NewThreadResponses(feedPage.Posts),
		"has_more": feedPage.HasMore,
	})
}
