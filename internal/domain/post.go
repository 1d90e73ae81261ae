package domain

import "time"

// PostStatus is the publication state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post is a board entry owned by a member and assigned to a leaf category.
// Slug is unique within its category.
type Post struct {
	ID         string     `json:"id" db:"id"`
	AuthorID   string     `json:"author_id" db:"author_id"`
	CategoryID string     `json:"category_id" db:"category_id"`
	Slug       string     `json:"slug" db:"slug"`
	Title      string     `json:"title" db:"title"`
	Body       string     `json:"body" db:"body"`
	Status     PostStatus `json:"status" db:"status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt  *time.Time `json:"-" db:"deleted_at"`
}

// ValidStatus reports whether s is a known publication state.
func ValidStatus(s PostStatus) bool {
	return s == PostStatusDraft || s == PostStatusPublished
}
