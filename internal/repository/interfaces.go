package repository

import (
	"context"

	"github.com/talkboard/board-service/internal/domain"
)

// MemberRepository defines methods for member operations
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	UpdateLastLogin(ctx context.Context, memberID string) error
	Deactivate(ctx context.Context, memberID string) error
}

// TokenRepository defines methods for refresh token records
type TokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, tokenID string) error
	RevokeAllForMember(ctx context.Context, memberID string) error
	DeleteExpired(ctx context.Context) error
}

// CategoryRepository defines methods for category operations
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	HasChildren(ctx context.Context, id string) (bool, error)
	HasPosts(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// PostRepository defines methods for post operations. List and Count take a
// compiled predicate (condition plus positional args) so the same filter
// drives both queries.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, cond string, args []any, orderBy string, limit, offset int) ([]domain.Post, error)
	Count(ctx context.Context, cond string, args []any) (int64, error)
}
