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

const postColumns = `id, author_id, category_id, slug, title, body, status, created_at, updated_at, deleted_at`

// postRepository implements PostRepository interface
type postRepository struct {
	db *database.Postgres
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *database.Postgres) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new post. Slug uniqueness within the category is enforced
// by the database; a violation surfaces as ErrDuplicateSlug.
func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (id, author_id, category_id, slug, title, body, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	if post.ID == "" {
		post.ID = uuid.New().String()
	}

	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		post.ID,
		post.AuthorID,
		post.CategoryID,
		post.Slug,
		post.Title,
		post.Body,
		post.Status,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("post with slug %s already exists in category: %w", post.Slug, ErrDuplicateSlug)
			}
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetByID retrieves a non-deleted post by ID
func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE id = $1 AND deleted_at IS NULL
	`

	post, err := scanPost(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

// Update writes the full post row. Partial-update semantics are applied by
// the service before calling this.
func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	query := `
		UPDATE posts
		SET title = $2, body = $3, status = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL
	`

	post.UpdatedAt = time.Now()

	result, err := r.db.DB.ExecContext(ctx, query,
		post.ID,
		post.Title,
		post.Body,
		post.Status,
		post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post with id %s not found: %w", post.ID, ErrNotFound)
	}

	return nil
}

// SoftDelete stamps deleted_at on a post
func (r *postRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE posts
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`

	result, err := r.db.DB.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

// List retrieves one page of posts matching the compiled predicate
func (r *postRepository) List(ctx context.Context, cond string, args []any, orderBy string, limit, offset int) ([]domain.Post, error) {
	query := fmt.Sprintf(`
		SELECT `+postColumns+`
		FROM posts
		WHERE %s
		ORDER BY %s
		LIMIT %d OFFSET %d
	`, cond, orderBy, limit, offset)

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// Count returns the total number of posts matching the compiled predicate
func (r *postRepository) Count(ctx context.Context, cond string, args []any) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM posts WHERE %s`, cond)

	var total int64
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	post := &domain.Post{}
	var deletedAt sql.NullTime

	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.CategoryID,
		&post.Slug,
		&post.Title,
		&post.Body,
		&post.Status,
		&post.CreatedAt,
		&post.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if deletedAt.Valid {
		post.DeletedAt = &deletedAt.Time
	}

	return post, nil
}
