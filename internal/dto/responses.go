package dto

import "github.com/talkboard/board-service/internal/domain"

// TokenBundle is the token part of an authorization response.
// RefreshableUntil is always after ExpiredAt.
type TokenBundle struct {
	Access           string `json:"access"`
	Refresh          string `json:"refresh"`
	ExpiredAt        string `json:"expired_at"`
	RefreshableUntil string `json:"refreshable_until"`
}

// AuthorizedResponse is returned by join, login and refresh.
type AuthorizedResponse struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name"`
	Role        domain.Role `json:"role"`
	Token       TokenBundle `json:"token"`
}

// MemberResponse represents a member profile response
type MemberResponse struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name"`
	Role        domain.Role `json:"role"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	LastLoginAt *string     `json:"last_login_at"`
}

// Pagination is the envelope metadata of every list response.
type Pagination struct {
	Current int   `json:"current"`
	Limit   int   `json:"limit"`
	Records int64 `json:"records"`
	Pages   int   `json:"pages"`
}

// PostPage is the paginated post listing response.
type PostPage struct {
	Pagination Pagination    `json:"pagination"`
	Data       []domain.Post `json:"data"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
