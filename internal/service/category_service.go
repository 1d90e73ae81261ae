package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/talkboard/board-service/internal/domain"
	"github.com/talkboard/board-service/internal/dto"
	"github.com/talkboard/board-service/internal/repository"
)

// categoryService implements CategoryService interface
type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// Create validates the parent reference and writes the category. Names are
// unique among siblings; a duplicate signals a conflict.
func (s *categoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*domain.Category, error) {
	if req.ParentID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("parent category %s: %w", *req.ParentID, domain.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to get parent category: %w", err)
		}
	}

	category := &domain.Category{
		ParentID: req.ParentID,
		Name:     req.Name,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateCategory) {
			return nil, fmt.Errorf("category %s already exists under the same parent: %w", req.Name, domain.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// List returns all categories
func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Delete removes a category. Only empty leaves may go: a category with
// children or posts signals a conflict.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to get category: %w", err)
	}

	hasChildren, err := s.categoryRepo.HasChildren(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category children: %w", err)
	}
	if hasChildren {
		return fmt.Errorf("category %s has child categories: %w", id, domain.ErrConflict)
	}

	hasPosts, err := s.categoryRepo.HasPosts(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category posts: %w", err)
	}
	if hasPosts {
		return fmt.Errorf("category %s still has posts: %w", id, domain.ErrConflict)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
