package dto

import (
	"time"

	"github.com/jeroginaca/threads/internal/models"
)

// AuthorSummary is the minimal author projection attached to thread reads
type AuthorSummary struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
}

// ThreadResponse is a thread node with however many reply levels the read
// path materialized. Author is nil when the reference no longer resolves;
// readers skip it rather than fail.
type ThreadResponse struct {
	ID          string            `json:"id"`
	Text        string            `json:"text"`
	ParentID    *string           `json:"parent_id,omitempty"`
	CommunityID *string           `json:"community_id,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	Author      *AuthorSummary    `json:"author,omitempty"`
	Children    []*ThreadResponse `json:"children"`
}

// NewThreadResponse converts a thread model and its preloaded descendants
func NewThreadResponse(t *models.Thread) *ThreadResponse {
	resp := &ThreadResponse{
		ID:          t.ID,
		Text:        t.Text,
		ParentID:    t.ParentID,
		CommunityID: t.CommunityID,
		CreatedAt:   t.CreatedAt,
		Children:    make([]*ThreadResponse, 0, len(t.Children)),
	}

	// A zero-value author means the reference dangles; leave it out.
	if t.Author.ID != "" {
		resp.Author = &AuthorSummary{
			ID:         t.Author.ID,
			ExternalID: t.Author.ExternalID,
			Name:       t.Author.Name,
			Image:      t.Author.Image,
		}
	}

	for _, child := range t.Children {
		resp.Children = append(resp.Children, NewThreadResponse(child))
	}
	return resp
}

// NewThreadResponses converts a slice of threads
func NewThreadResponses(threads []models.Thread) []*ThreadResponse {
	out := make([]*ThreadResponse, 0, len(threads))
	for i := range threads {
		out = append(out, NewThreadResponse(&threads[i]))
	}
	return out
}

// CreateThreadRequest creates a top-level thread
type CreateThreadRequest struct {
	Text        string  `json:"text"`
	CommunityID *string `json:"community_id,omitempty"`
	Path        string  `json:"path"`
}

// AddCommentRequest attaches a reply to an existing thread
type AddCommentRequest struct {
	Text string `json:"text"`
	Path string `json:"path"`
}
