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

// DefaultQueryTimeout bounds every call against the backing store. A blown
// deadline surfaces as the TIMEOUT failure kind, distinct from other store
// failures.
const DefaultQueryTimeout = 5 * time.Second

// UserDirectory owns user records: upsert keyed by external id, lookup, and
// paginated substring search.
type UserDirectory struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewUserDirectory creates a user directory backed by db
func NewUserDirectory(db *gorm.DB) *UserDirectory {
	return &UserDirectory{db: db, timeout: DefaultQueryTimeout}
}

// WithTimeout overrides the per-call store timeout
func (d *UserDirectory) WithTimeout(timeout time.Duration) *UserDirectory {
	d.timeout = timeout
	return d
}

// UpsertParams are the mutable profile fields written by Upsert
type UpsertParams struct {
	ExternalID string
	Username   string
	Name       string
	Bio        string
	Image      string
}

// Upsert creates the record if absent (keyed by external id) or updates the
// mutable fields. The username is lowercased before it is written, and
// onboarding is marked complete on either path.
func (d *UserDirectory) Upsert(ctx context.Context, params UpsertParams) (*models.User, error) {
	if params.ExternalID == "" {
		return nil, apierrors.ValidationError("external_id", "external id is required")
	}
	username := strings.ToLower(strings.TrimSpace(params.Username))
	if username == "" {
		return nil, apierrors.ValidationError("username", "username is required")
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	// Reject usernames already held by a different account before touching
	// the row; the unique index is the backstop under concurrent writes.
	var taken int64
	err := d.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? AND external_id <> ?", username, params.ExternalID).
		Count(&taken).Error
	if err != nil {
		return nil, storeError("upsert user", err)
	}
	if taken > 0 {
		return nil, apierrors.ValidationError("username", "username already taken")
	}

	var user models.User
	err = d.db.WithContext(ctx).Where("external_id = ?", params.ExternalID).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			ID:         uuid.New().String(),
			ExternalID: params.ExternalID,
			Username:   username,
			Name:       params.Name,
			Bio:        params.Bio,
			Image:      params.Image,
			Onboarded:  true,
		}
		if err := d.db.WithContext(ctx).Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apierrors.ValidationError("username", "username already taken")
			}
			return nil, storeError("upsert user", err)
		}
		return &user, nil
	case err != nil:
		return nil, storeError("upsert user", err)
	}

	updates := map[string]interface{}{
		"username":  username,
		"name":      params.Name,
		"bio":       params.Bio,
		"image":     params.Image,
		"onboarded": true,
	}
	if err := d.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierrors.ValidationError("username", "username already taken")
		}
		return nil, storeError("upsert user", err)
	}
	return &user, nil
}

// GetByExternalID fetches a user by the externally-issued id
func (d *UserDirectory) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var user models.User
	err := d.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("user")
		}
		return nil, storeError("get user", err)
	}
	return &user, nil
}

// SearchParams control a user directory search
type SearchParams struct {
	ExcludeExternalID string
	Query             string
	Page              int
	PageSize          int
	SortDesc          bool
}

// Search matches the query as a case-insensitive substring of username OR
// name (empty query matches everyone), always excluding the caller's own
// record. Results are ordered by creation time.
func (d *UserDirectory) Search(ctx context.Context, params SearchParams) ([]models.User, bool, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20
	}
	offset := (params.Page - 1) * params.PageSize

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	query := d.db.WithContext(ctx).Model(&models.User{}).
		Where("external_id <> ?", params.ExcludeExternalID)

	// LOWER + LIKE rather than ILIKE so the same query plans on postgres
	// and sqlite.
	if q := strings.TrimSpace(params.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, false, storeError("search users", err)
	}

	order := "created_at ASC"
	if params.SortDesc {
		order = "created_at DESC"
	}

	users := make([]models.User, 0, params.PageSize)
	err := query.Order(order).Offset(offset).Limit(params.PageSize).Find(&users).Error
	if err != nil {
		return nil, false, storeError("search users", err)
	}

	hasMore := total > int64(offset+len(users))
	return users, hasMore, nil
}

// storeError tags a backing-store failure with the logical operation,
// keeping deadline expiry distinct from other I/O failures.
func storeError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apierrors.Timeout(op, err)
	}
	return apierrors.StoreFailure(op, err)
}
