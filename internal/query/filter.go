package query

import (
	"time"

	"github.com/talkboard/board-service/internal/domain"
)

// PostFilter maps the optional fields of a post listing request onto
// predicate clauses. Every set field contributes exactly one clause;
// zero-valued fields contribute none.
type PostFilter struct {
	CategoryID string
	AuthorID   string
	Status     domain.PostStatus
	Search     string
	From       *time.Time
	To         *time.Time

	// None marks a filter whose referenced lookup value did not resolve.
	None bool
}

// Apply compiles the filter into b. Soft-deleted rows are always excluded.
func (f PostFilter) Apply(b *Builder) {
	b.Where("deleted_at IS NULL")

	if f.None {
		b.MatchNone()
		return
	}
	if f.CategoryID != "" {
		b.Where("category_id = ?", f.CategoryID)
	}
	if f.AuthorID != "" {
		b.Where("author_id = ?", f.AuthorID)
	}
	if f.Status != "" {
		b.Where("status = ?", string(f.Status))
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		b.Where("(title ILIKE ? OR body ILIKE ?)", pattern, pattern)
	}
	if f.From != nil {
		b.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		b.Where("created_at <= ?", *f.To)
	}
}
