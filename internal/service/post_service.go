package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/talkboard/board-service/internal/domain"
	"github.com/talkboard/board-service/internal/dto"
	"github.com/talkboard/board-service/internal/query"
	"github.com/talkboard/board-service/internal/repository"
	"github.com/talkboard/board-service/internal/utils"
)

// postService implements PostService interface
type postService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	defaultLimit int
	maxLimit     int
}

// NewPostService creates a new post service
func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	defaultLimit, maxLimit int,
) PostService {
	return &postService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Create validates the referenced category (it must exist and be a leaf)
// and writes the post. The slug is unique within the category.
func (s *postService) Create(ctx context.Context, claims *domain.TokenClaims, req *dto.CreatePostRequest) (*domain.Post, error) {
	if !utils.ValidateSlug(req.Slug) {
		return nil, fmt.Errorf("invalid slug %q: %w", req.Slug, domain.ErrInvalid)
	}

	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("category %s: %w", req.CategoryID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	hasChildren, err := s.categoryRepo.HasChildren(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category children: %w", err)
	}
	if hasChildren {
		return nil, fmt.Errorf("category %s is not a leaf: %w", category.Name, domain.ErrInvalid)
	}

	status := domain.PostStatus(req.Status)
	if status == "" {
		status = domain.PostStatusPublished
	}

	post := &domain.Post{
		AuthorID:   claims.MemberID,
		CategoryID: category.ID,
		Slug:       req.Slug,
		Title:      req.Title,
		Body:       req.Body,
		Status:     status,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return nil, fmt.Errorf("slug %s already used in category: %w", req.Slug, domain.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// Get returns a single non-deleted post
func (s *postService) Get(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// List compiles the filter, clamps pagination, and runs the count and page
// queries concurrently before assembling the envelope.
func (s *postService) List(ctx context.Context, q *dto.ListPostsQuery) (*dto.PostPage, error) {
	filter, err := s.buildFilter(ctx, q)
	if err != nil {
		return nil, err
	}

	var b query.Builder
	filter.Apply(&b)
	cond, args := b.SQL()

	page := query.NewPageRequest(q.Page, q.Limit, s.defaultLimit, s.maxLimit)
	orderBy := query.PostOrderBy(q.Sort, q.Order)

	type countResult struct {
		total int64
		err   error
	}
	counts := make(chan countResult, 1)

	go func() {
		total, err := s.postRepo.Count(ctx, cond, args)
		counts <- countResult{total: total, err: err}
	}()

	posts, listErr := s.postRepo.List(ctx, cond, args, orderBy, page.Limit, page.Skip())
	count := <-counts

	if listErr != nil {
		return nil, fmt.Errorf("failed to list posts: %w", listErr)
	}
	if count.err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", count.err)
	}

	return &dto.PostPage{
		Pagination: dto.Pagination{
			Current: page.Page,
			Limit:   page.Limit,
			Records: count.total,
			Pages:   page.Pages(count.total),
		},
		Data: posts,
	}, nil
}

// buildFilter translates the request into a predicate. A category name that
// does not resolve yields a none-match filter, not an error.
func (s *postService) buildFilter(ctx context.Context, q *dto.ListPostsQuery) (query.PostFilter, error) {
	filter := query.PostFilter{
		CategoryID: q.CategoryID,
		AuthorID:   q.AuthorID,
		Status:     domain.PostStatus(q.Status),
		Search:     q.Search,
	}

	if q.From != "" {
		from, err := time.Parse(time.RFC3339, q.From)
		if err != nil {
			return filter, fmt.Errorf("invalid 'from' timestamp: %w", domain.ErrInvalid)
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(time.RFC3339, q.To)
		if err != nil {
			return filter, fmt.Errorf("invalid 'to' timestamp: %w", domain.ErrInvalid)
		}
		filter.To = &to
	}

	if q.CategoryName != "" && q.CategoryID == "" {
		category, err := s.categoryRepo.GetByName(ctx, q.CategoryName)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				filter.None = true
				return filter, nil
			}
			return filter, fmt.Errorf("failed to resolve category name: %w", err)
		}
		filter.CategoryID = category.ID
	}

	return filter, nil
}

// Update applies a partial update. Only the owner may modify a post; fields
// absent from the payload stay unchanged.
func (s *postService) Update(ctx context.Context, claims *domain.TokenClaims, id string, req *dto.UpdatePostRequest) (*domain.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != claims.MemberID {
		return nil, fmt.Errorf("post %s belongs to another member: %w", id, domain.ErrForbidden)
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.Status != nil {
		status := domain.PostStatus(*req.Status)
		if !domain.ValidStatus(status) {
			return nil, fmt.Errorf("invalid status %q: %w", *req.Status, domain.ErrInvalid)
		}
		post.Status = status
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

// Delete soft-deletes a post. The owner or an admin may delete.
func (s *postService) Delete(ctx context.Context, claims *domain.TokenClaims, id string) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if post.AuthorID != claims.MemberID && claims.Role != domain.RoleAdmin {
		return fmt.Errorf("post %s belongs to another member: %w", id, domain.ErrForbidden)
	}

	if err := s.postRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}
