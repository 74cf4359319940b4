package models

import (
	"time"
)

// User represents a Threads account. Identity is issued by the external auth
// provider; ExternalID is that provider's immutable user id and is distinct
// from our own primary key.
type User struct {
	ID         string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ExternalID string `gorm:"uniqueIndex;not null" json:"external_id"`
	Username   string `gorm:"uniqueIndex;not null" json:"username"`
	Name       string `gorm:"not null" json:"name"`
	Bio        string `gorm:"type:text" json:"bio"`
	Image      string `json:"image"`
	Onboarded  bool   `gorm:"default:false" json:"onboarded"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Thread is a single post. A thread with a nil ParentID is top-level and
// appears in the main feed; a thread with ParentID set is a reply to that
// parent.
//
// Children is a query-time view over parent_id. The reply edge lives in
// exactly one place (the child row), so creating a reply is a single insert
// and parent/child can never disagree.
type Thread struct {
	ID       string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	AuthorID string `gorm:"type:varchar(36);not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	// Community is a schema stub; never populated or queried in scope.
	CommunityID *string `gorm:"type:varchar(36);index" json:"community_id,omitempty"`

	ParentID *string   `gorm:"type:varchar(36);index" json:"parent_id,omitempty"`
	Children []*Thread `gorm:"foreignKey:ParentID" json:"children,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// IsTopLevel reports whether the thread has no parent.
func (t *Thread) IsTopLevel() bool {
	return t.ParentID == nil
}

// Community exists only as a foreign-key stub for Thread.CommunityID.
// Membership logic is out of scope and the table is never populated.
type Community struct {
	ID        string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Name      string `gorm:"not null" json:"name"`
	Image     string `json:"image"`
	Bio       string `gorm:"type:text" json:"bio"`
	CreatedBy string `gorm:"type:varchar(36)" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
}
