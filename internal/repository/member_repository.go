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

// memberRepository implements MemberRepository interface
type memberRepository struct {
	db *database.Postgres
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *database.Postgres) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new member in the database
func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	query := `
		INSERT INTO members (id, email, display_name, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if member.ID == "" {
		member.ID = uuid.New().String()
	}

	now := time.Now()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	if member.UpdatedAt.IsZero() {
		member.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		member.ID,
		member.Email,
		member.DisplayName,
		member.PasswordHash,
		member.Role,
		member.IsActive,
		member.CreatedAt,
		member.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("member with email %s already exists: %w", member.Email, ErrDuplicateEmail)
			}
		}
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

// GetByEmail retrieves a member by email
func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	query := `
		SELECT id, email, display_name, password_hash, role, is_active, created_at, updated_at, last_login_at, deleted_at
		FROM members
		WHERE email = $1
	`

	return r.scanOne(r.db.DB.QueryRowContext(ctx, query, email), fmt.Sprintf("member with email %s", email))
}

// GetByID retrieves a member by ID
func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `
		SELECT id, email, display_name, password_hash, role, is_active, created_at, updated_at, last_login_at, deleted_at
		FROM members
		WHERE id = $1
	`

	return r.scanOne(r.db.DB.QueryRowContext(ctx, query, id), fmt.Sprintf("member with id %s", id))
}

func (r *memberRepository) scanOne(row *sql.Row, desc string) (*domain.Member, error) {
	member := &domain.Member{}
	var lastLoginAt, deletedAt sql.NullTime

	err := row.Scan(
		&member.ID,
		&member.Email,
		&member.DisplayName,
		&member.PasswordHash,
		&member.Role,
		&member.IsActive,
		&member.CreatedAt,
		&member.UpdatedAt,
		&lastLoginAt,
		&deletedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s not found: %w", desc, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", desc, err)
	}

	if lastLoginAt.Valid {
		member.LastLoginAt = &lastLoginAt.Time
	}
	if deletedAt.Valid {
		member.DeletedAt = &deletedAt.Time
	}

	return member, nil
}

// UpdateLastLogin updates the last login timestamp for a member
func (r *memberRepository) UpdateLastLogin(ctx context.Context, memberID string) error {
	query := `
		UPDATE members
		SET last_login_at = $1, updated_at = $1
		WHERE id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query, time.Now(), memberID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("member with id %s not found: %w", memberID, ErrNotFound)
	}

	return nil
}

// Deactivate suspends a member. Login and refresh both fail afterwards.
func (r *memberRepository) Deactivate(ctx context.Context, memberID string) error {
	query := `
		UPDATE members
		SET is_active = FALSE, updated_at = $1
		WHERE id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query, time.Now(), memberID)
	if err != nil {
		return fmt.Errorf("failed to deactivate member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("member with id %s not found: %w", memberID, ErrNotFound)
	}

	return nil
}
