package domain

import "time"

// TokenClaims is the validated payload of an access token.
// It is parsed once at the boundary; business code never re-checks fields.
type TokenClaims struct {
	MemberID string `json:"id"`
	Role     Role   `json:"type"`
	Exp      int64  `json:"exp"`
	Iat      int64  `json:"iat"`
}

// RefreshToken is the persisted record of one issued refresh token.
// Only the SHA-256 hash of the raw token is stored.
type RefreshToken struct {
	ID        string     `json:"id" db:"id"`
	MemberID  string     `json:"member_id" db:"member_id"`
	TokenHash string     `json:"-" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RevokedAt *time.Time `json:"revoked_at" db:"revoked_at"`
}

// Usable reports whether the record may satisfy a refresh call:
// not revoked and not past its expiry.
func (t RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
