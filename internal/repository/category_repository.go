package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/talkboard/board-service/internal/domain"
	"github.com/talkboard/board-service/pkg/database"
)

// categoryRepository implements CategoryRepository interface
type categoryRepository struct {
	db *database.Postgres
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *database.Postgres) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a new category. Sibling name uniqueness is enforced by the
// database; a violation surfaces as ErrDuplicateCategory.
func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, parent_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if category.ID == "" {
		category.ID = uuid.New().String()
	}

	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	if category.UpdatedAt.IsZero() {
		category.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		category.ID,
		category.ParentID,
		category.Name,
		category.CreatedAt,
		category.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("category %s already exists under the same parent: %w", category.Name, ErrDuplicateCategory)
			}
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `
		SELECT id, parent_id, name, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	return r.scanOne(r.db.DB.QueryRowContext(ctx, query, id), fmt.Sprintf("category with id %s", id))
}

// GetByName retrieves a category by name
func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `
		SELECT id, parent_id, name, created_at, updated_at
		FROM categories
		WHERE name = $1
		ORDER BY created_at
		LIMIT 1
	`

	return r.scanOne(r.db.DB.QueryRowContext(ctx, query, name), fmt.Sprintf("category with name %s", name))
}

func (r *categoryRepository) scanOne(row *sql.Row, desc string) (*domain.Category, error) {
	category := &domain.Category{}
	var parentID sql.NullString

	err := row.Scan(
		&category.ID,
		&parentID,
		&category.Name,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s not found: %w", desc, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", desc, err)
	}

	if parentID.Valid {
		category.ParentID = &parentID.String
	}

	return category, nil
}

// List retrieves all categories ordered by name
func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, parent_id, name, created_at, updated_at
		FROM categories
		ORDER BY name
	`

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		var parentID sql.NullString

		if err := rows.Scan(
			&category.ID,
			&parentID,
			&category.Name,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		if parentID.Valid {
			category.ParentID = &parentID.String
		}

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

// HasChildren reports whether the category has at least one child
func (r *categoryRepository) HasChildren(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE parent_id = $1)`

	var exists bool
	if err := r.db.DB.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category children: %w", err)
	}

	return exists, nil
}

// HasPosts reports whether any non-deleted post is assigned to the category
func (r *categoryRepository) HasPosts(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM posts WHERE category_id = $1 AND deleted_at IS NULL)`

	var exists bool
	if err := r.db.DB.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category posts: %w", err)
	}

	return exists, nil
}

// Delete deletes a category by ID
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("category with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}
