package service

import (
	"context"

	"github.com/talkboard/board-service/internal/domain"
	"github.com/talkboard/board-service/internal/dto"
)

// AuthService defines methods for the auth lifecycle
type AuthService interface {
	Join(ctx context.Context, req *dto.JoinRequest) (*dto.AuthorizedResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthorizedResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthorizedResponse, error)
	Logout(ctx context.Context, memberID, refreshToken string) error
	GetMember(ctx context.Context, memberID string) (*dto.MemberResponse, error)
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// PostService defines the post list provider and mutation providers
type PostService interface {
	Create(ctx context.Context, claims *domain.TokenClaims, req *dto.CreatePostRequest) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, q *dto.ListPostsQuery) (*dto.PostPage, error)
	Update(ctx context.Context, claims *domain.TokenClaims, id string, req *dto.UpdatePostRequest) (*domain.Post, error)
	Delete(ctx context.Context, claims *domain.TokenClaims, id string) error
}

// CategoryService defines category mutations and listing
type CategoryService interface {
	Create(ctx context.Context, req *dto.CreateCategoryRequest) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Delete(ctx context.Context, id string) error
}
