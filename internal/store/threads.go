package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	apierrors "github.com/jeroginaca/threads/internal/errors"
	"github.com/jeroginaca/threads/internal/models"
	"gorm.io/gorm"
)

// ThreadStore owns thread records and the reply-tree edges. The reply edge is
// the child's parent_id column only; children are resolved at query time, so
// every mutation is a single atomic insert.
type ThreadStore struct {
	db      *gorm.DB
	users   *UserDirectory
	timeout time.Duration
}

// NewThreadStore creates a thread store backed by db. The user directory is
// used only to resolve author references.
func NewThreadStore(db *gorm.DB, users *UserDirectory) *ThreadStore {
	return &ThreadStore{db: db, users: users, timeout: DefaultQueryTimeout}
}

// WithTimeout overrides the per-call store timeout
func (s *ThreadStore) WithTimeout(timeout time.Duration) *ThreadStore {
	s.timeout = timeout
	return s
}

// childrenInCreationOrder keeps reply expansion deterministic
func childrenInCreationOrder(db *gorm.DB) *gorm.DB {
	return db.Order("threads.created_at ASC")
}

// Create persists a new top-level thread and returns it
func (s *ThreadStore) Create(ctx context.Context, text, authorExternalID string, communityID *string) (*models.Thread, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apierrors.ValidationError("text", "thread text is required")
	}

	author, err := s.users.GetByExternalID(ctx, authorExternalID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	thread := models.Thread{
		ID:          uuid.New().String(),
		Text:        text,
		AuthorID:    author.ID,
		CommunityID: communityID,
	}
	if err := s.db.WithContext(ctx).Create(&thread).Error; err != nil {
		return nil, storeError("create thread", err)
	}

	thread.Author = *author
	return &thread, nil
}

// AddComment persists a reply to parentID and returns it
func (s *ThreadStore) AddComment(ctx context.Context, parentID, text, authorExternalID string) (*models.Thread, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apierrors.ValidationError("text", "comment text is required")
	}

	author, err := s.users.GetByExternalID(ctx, authorExternalID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var parent models.Thread
	err = s.db.WithContext(ctx).Select("id").First(&parent, "id = ?", parentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("thread")
		}
		return nil, storeError("add comment", err)
	}

	comment := models.Thread{
		ID:       uuid.New().String(),
		Text:     text,
		AuthorID: author.ID,
		ParentID: &parent.ID,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, storeError("add comment", err)
	}

	comment.Author = *author
	return &comment, nil
}

// GetByID returns the thread with exactly three levels materialized: the
// thread itself, its replies, and replies-to-replies, each with its author.
// Deeper descendants are never loaded; a consumer needing them re-invokes
// per node.
func (s *ThreadStore) GetByID(ctx context.Context, id string) (*models.Thread, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var thread models.Thread
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Children", childrenInCreationOrder).
		Preload("Children.Author").
		Preload("Children.Children", childrenInCreationOrder).
		Preload("Children.Children.Author").
		First(&thread, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("thread")
		}
		return nil, storeError("get thread", err)
	}

	return &thread, nil
}

// CountTopLevel counts threads with no parent
func (s *ThreadStore) CountTopLevel(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var total int64
	err := s.db.WithContext(ctx).Model(&models.Thread{}).
		Where("parent_id IS NULL").
		Count(&total).Error
	if err != nil {
		return 0, storeError("count threads", err)
	}
	return total, nil
}

// ListTopLevel returns top-level threads newest-first with one level of
// replies and their authors — the feed primitive. Kept separate from the
// feed paginator so other callers get raw top-level listing.
func (s *ThreadStore) ListTopLevel(ctx context.Context, skip, limit int) ([]models.Thread, error) {
	if skip < 0 {
		skip = 0
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	threads := make([]models.Thread, 0, limit)
	err := s.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Preload("Author").
		Preload("Children", childrenInCreationOrder).
		Preload("Children.Author").
		Find(&threads).Error
	if err != nil {
		return nil, storeError("list threads", err)
	}
	return threads, nil
}

// ListByAuthor returns the user's top-level threads newest-first, each with
// its replies and their authors (two levels)
func (s *ThreadStore) ListByAuthor(ctx context.Context, authorID string) ([]models.Thread, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var threads []models.Thread
	err := s.db.WithContext(ctx).
		Where("author_id = ? AND parent_id IS NULL", authorID).
		Order("created_at DESC").
		Preload("Children", childrenInCreationOrder).
		Preload("Children.Author").
		Find(&threads).Error
	if err != nil {
		return nil, storeError("list user threads", err)
	}
	return threads, nil
}

// RepliesReceived returns replies attached one level under any thread the
// user authored, excluding the user's own replies, newest-first with authors
// expanded. Replies-to-replies are reachable because the user's reply
// threads count as authored threads too.
func (s *ThreadStore) RepliesReceived(ctx context.Context, authorID string) ([]models.Thread, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ownThreadIDs := s.db.Model(&models.Thread{}).
		Select("id").
		Where("author_id = ?", authorID)

	replies := make([]models.Thread, 0)
	err := s.db.WithContext(ctx).
		Where("parent_id IN (?)", ownThreadIDs).
		Where("author_id <> ?", authorID).
		Order("created_at DESC").
		Preload("Author").
		Find(&replies).Error
	if err != nil {
		return nil, storeError("list replies", err)
	}
	return replies, nil
}
