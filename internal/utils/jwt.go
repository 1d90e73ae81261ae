package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/talkboard/board-service/internal/domain"
)

// Issuer is the fixed issuer claim of every token this service signs.
const Issuer = "board-service"

const refreshTokenType = "refresh"

// signedClaims is the strictly-typed payload of both token kinds. Access and
// refresh tokens differ only in TokenType and expiry. It is parsed and
// validated once; callers receive domain.TokenClaims and never inspect the
// raw payload again.
type signedClaims struct {
	MemberID  string      `json:"id"`
	Role      domain.Role `json:"type"`
	TokenType string      `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager manages JWT token operations
type JWTManager struct {
	secret             []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, accessTokenExpiry, refreshTokenExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:             []byte(secret),
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
	}
}

// GenerateAccessToken generates a new access token and returns it with its expiry
func (j *JWTManager) GenerateAccessToken(memberID string, role domain.Role) (string, time.Time, error) {
	return j.generate(memberID, role, "", j.accessTokenExpiry)
}

// GenerateRefreshToken generates a new refresh token and returns it with its expiry
func (j *JWTManager) GenerateRefreshToken(memberID string, role domain.Role) (string, time.Time, error) {
	return j.generate(memberID, role, refreshTokenType, j.refreshTokenExpiry)
}

func (j *JWTManager) generate(memberID string, role domain.Role, tokenType string, expiry time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expiry)

	claims := signedClaims{
		MemberID:  memberID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateAccessToken validates an access token and returns its claims
func (j *JWTManager) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.TokenType == refreshTokenType {
		return nil, fmt.Errorf("refresh token presented as access token")
	}

	return &domain.TokenClaims{
		MemberID: claims.MemberID,
		Role:     claims.Role,
		Exp:      claims.ExpiresAt.Unix(),
		Iat:      claims.IssuedAt.Unix(),
	}, nil
}

// ValidateRefreshToken validates a refresh token and returns the member ID
func (j *JWTManager) ValidateRefreshToken(tokenString string) (string, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return "", err
	}

	if claims.TokenType != refreshTokenType {
		return "", fmt.Errorf("invalid token type")
	}

	return claims.MemberID, nil
}

// parse verifies signature, signing method, issuer and expiry in one pass.
func (j *JWTManager) parse(tokenString string) (*signedClaims, error) {
	claims := &signedClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.MemberID == "" {
		return nil, fmt.Errorf("missing member id in token")
	}

	return claims, nil
}
