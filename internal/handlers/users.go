package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeroginaca/threads/internal/dto"
	"github.com/jeroginaca/threads/internal/store"
	"github.com/jeroginaca/threads/internal/util"
)

// UpsertUser creates or updates the caller's profile
// PUT /api/v1/users
func (h *Handlers) UpsertUser(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		util.RespondUnauthorized(c, "missing identity")
		return
	}

	var req dto.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}

	user, err := h.users.Upsert(c.Request.Context(), store.UpsertParams{
		ExternalID: userID,
		Username:   req.Username,
		Name:       req.Name,
		Bio:        req.Bio,
		Image:      req.Image,
	})
	if err != nil {
		util.RespondError(c, err)
		return
	}

	h.invalidatePath(c.Request.Context(), req.Path)

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// GetMe returns the caller's own profile
// GET /api/v1/users/me
func (h *Handlers) GetMe(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		util.RespondUnauthorized(c, "missing identity")
		return
	}

	user, err := h.users.GetByExternalID(c.Request.Context(), userID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// GetUser returns a profile by external id
// GET /api/v1/users/:id
func (h *Handlers) GetUser(c *gin.Context) {
	user, err := h.users.GetByExternalID(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// SearchUsers returns a page of users matching the query, never including
// the caller
// GET /api/v1/users/search?q=&page=&page_size=&sort=
func (h *Handlers) SearchUsers(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		util.RespondUnauthorized(c, "missing identity")
		return
	}

	page := util.ParseInt(c.Query("page"), 1)
	pageSize := util.ParseInt(c.Query("page_size"), 20)
	if pageSize > 100 {
		pageSize = 100
	}
	sortDesc := c.DefaultQuery("sort", "desc") != "asc"

	users, hasMore, err := h.users.Search(c.Request.Context(), store.SearchParams{
		ExcludeExternalID: userID,
		Query:             c.Query("q"),
		Page:              page,
		PageSize:          pageSize,
		SortDesc:          sortDesc,
	})
	if err != nil {
		util.RespondError(c, err)
		return
	}

	results := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		results = append(results, dto.NewUserResponse(&users[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"users":    results,
		"has_more": hasMore,
	})
}

// GetUserThreads returns a user's profile with their top-level threads,
// newest first, each with one level of replies
// GET /api/v1/users/:id/threads
func (h *Handlers) GetUserThreads(c *gin.Context) {
	user, err := h.users.GetByExternalID(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.RespondError(c, err)
		return
	}

	threads, err := h.threads.ListByAuthor(c.Request.Context(), user.ID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    dto.NewUserResponse(user),
		"threads": dto.NewThreadResponses(threads),
	})
}
