package domain

import "time"

// Role is the principal's role tag, embedded in token claims.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Member represents a registered principal of the board
type Member struct {
	ID           string     `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	DisplayName  string     `json:"display_name" db:"display_name"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         Role       `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
	DeletedAt    *time.Time `json:"deleted_at" db:"deleted_at"`
}

// CanAuthenticate reports whether login and refresh are allowed for the member.
// Suspended and soft-deleted accounts fail both.
func (m Member) CanAuthenticate() bool {
	return m.IsActive && m.DeletedAt == nil
}
