package service

import (
	"context"

	"github.com/jeroginaca/threads/internal/models"
	"github.com/jeroginaca/threads/internal/store"
)

// DefaultPageSize is used when a caller omits or zeroes the page size
const DefaultPageSize = 20

// FeedService serves reverse-chronological pages of top-level threads with
// one level of reply previews.
type FeedService struct {
	threads *store.ThreadStore
}

// NewFeedService creates a feed service over the thread store
func NewFeedService(threads *store.ThreadStore) *FeedService {
	return &FeedService{threads: threads}
}

// FeedPage is one page of the main feed
type FeedPage struct {
	Posts   []models.Thread `json:"posts"`
	HasMore bool            `json:"has_more"`
}

// FetchFeed returns page pageNumber of the feed. Page numbers below 1 are
// treated as 1; a skip past the end yields an empty page with HasMore false.
func (s *FeedService) FetchFeed(ctx context.Context, pageNumber, pageSize int) (*FeedPage, error) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	skip := (pageNumber - 1) * pageSize

	posts, err := s.threads.ListTopLevel(ctx, skip, pageSize)
	if err != nil {
		return nil, err
	}

	total, err := s.threads.CountTopLevel(ctx)
	if err != nil {
		return nil, err
	}

	return &FeedPage{
		Posts:   posts,
		HasMore: total > int64(skip+len(posts)),
	}, nil
}
