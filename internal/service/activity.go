package service

import (
	"context"

	"github.com/jeroginaca/threads/internal/models"
	"github.com/jeroginaca/threads/internal/store"
)

// ActivityService computes the replies a user has received on their own
// threads, excluding replies they wrote themselves.
type ActivityService struct {
	users   *store.UserDirectory
	threads *store.ThreadStore
}

// NewActivityService creates an activity service over both stores
func NewActivityService(users *store.UserDirectory, threads *store.ThreadStore) *ActivityService {
	return &ActivityService{users: users, threads: threads}
}

// GetActivity returns replies attached one level under the user's threads,
// authored by others, with authors expanded. A user with no threads or no
// qualifying replies gets an empty list, not an error.
func (s *ActivityService) GetActivity(ctx context.Context, userExternalID string) ([]models.Thread, error) {
	user, err := s.users.GetByExternalID(ctx, userExternalID)
	if err != nil {
		return nil, err
	}

	return s.threads.RepliesReceived(ctx, user.ID)
}
