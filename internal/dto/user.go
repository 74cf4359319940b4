package dto

import (
	"time"

	"github.com/jeroginaca/threads/internal/models"
)

// UserResponse is the public user representation
type UserResponse struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Bio        string    `json:"bio"`
	Image      string    `json:"image"`
	Onboarded  bool      `json:"onboarded"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewUserResponse converts a user model to its API shape
func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		ExternalID: u.ExternalID,
		Username:   u.Username,
		Name:       u.Name,
		Bio:        u.Bio,
		Image:      u.Image,
		Onboarded:  u.Onboarded,
		CreatedAt:  u.CreatedAt,
	}
}

// UpsertUserRequest carries the mutable profile fields. Path is the opaque
// stale-path token forwarded to the invalidation collaborator.
type UpsertUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name" binding:"omitempty,max=100"`
	Bio      string `json:"bio" binding:"omitempty,max=1000"`
	Image    string `json:"image" binding:"omitempty,url"`
	Path     string `json:"path"`
}
