package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/talkboard/board-service/internal/domain"
	"github.com/talkboard/board-service/internal/dto"
	"github.com/talkboard/board-service/internal/repository"
	"github.com/talkboard/board-service/internal/utils"
)

// authService implements AuthService interface
type authService struct {
	memberRepo         repository.MemberRepository
	tokenRepo          repository.TokenRepository
	jwtManager         *utils.JWTManager
	blacklistService   *TokenBlacklistService
	bcryptCost         int
	refreshTokenExpiry time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	memberRepo repository.MemberRepository,
	tokenRepo repository.TokenRepository,
	jwtManager *utils.JWTManager,
	blacklistService *TokenBlacklistService,
	bcryptCost int,
	refreshTokenExpiry time.Duration,
) AuthService {
	return &authService{
		memberRepo:         memberRepo,
		tokenRepo:          tokenRepo,
		jwtManager:         jwtManager,
		blacklistService:   blacklistService,
		bcryptCost:         bcryptCost,
		refreshTokenExpiry: refreshTokenExpiry,
	}
}

// Join registers a new member and issues the initial token pair
func (s *authService) Join(ctx context.Context, req *dto.JoinRequest) (*dto.AuthorizedResponse, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, fmt.Errorf("invalid email format: %w", domain.ErrInvalid)
	}

	if !utils.ValidatePassword(req.Password) {
		return nil, fmt.Errorf("password must be at least 8 characters long and contain uppercase, lowercase, and number: %w", domain.ErrInvalid)
	}

	email := utils.SanitizeEmail(req.Email)

	_, err := s.memberRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("member with email %s already exists: %w", email, domain.ErrConflict)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check member existence: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := &domain.Member{
		Email:        email,
		DisplayName:  req.DisplayName,
		PasswordHash: passwordHash,
		Role:         domain.RoleMember,
		IsActive:     true,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Lost the race against a concurrent join with the same email
			return nil, fmt.Errorf("member with email %s already exists: %w", email, domain.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return s.issueTokenPair(ctx, member)
}

// Login authenticates a member and issues a new token pair. Prior sessions
// stay valid, so a member can hold sessions on several devices.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthorizedResponse, error) {
	member, err := s.memberRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Do not reveal which of email or password was wrong
			return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	if !member.CanAuthenticate() {
		return nil, fmt.Errorf("member account is not active: %w", domain.ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(req.Password, member.PasswordHash) {
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}

	// Not fatal for the login itself
	_ = s.memberRepo.UpdateLastLogin(ctx, member.ID)

	return s.issueTokenPair(ctx, member)
}

// Refresh verifies a presented refresh token and rotates it: the old record
// is revoked and blacklisted, and a fresh pair is issued. Every failure mode
// signals the same unauthorized kind without distinguishing cause.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthorizedResponse, error) {
	memberID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}

	tokenHash := utils.HashToken(refreshToken)

	record, err := s.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to get token record: %w", err)
	}

	if record.MemberID != memberID || !record.Usable(time.Now()) {
		return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}

	isBlacklisted, err := s.blacklistService.IsTokenBlacklisted(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if isBlacklisted {
		return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	if !member.CanAuthenticate() {
		return nil, fmt.Errorf("member account is not active: %w", domain.ErrUnauthorized)
	}

	// Rotate-on-use: revoke the presented token before issuing the new pair.
	// The revoke and the create are separate statements; a crash between them
	// forces a full re-login, never a double-usable token.
	_ = s.blacklistService.AddToken(ctx, refreshToken, s.refreshTokenExpiry)
	if err := s.tokenRepo.Revoke(ctx, record.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke token: %w", err)
	}

	_ = s.memberRepo.UpdateLastLogin(ctx, member.ID)

	return s.issueTokenPair(ctx, member)
}

// Logout revokes the presented refresh token if it belongs to the member
func (s *authService) Logout(ctx context.Context, memberID, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	tokenHash := utils.HashToken(refreshToken)

	record, err := s.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil || record.MemberID != memberID {
		return nil
	}

	_ = s.blacklistService.AddToken(ctx, refreshToken, s.refreshTokenExpiry)
	if err := s.tokenRepo.Revoke(ctx, record.ID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// GetMember returns the profile of a member
func (s *authService) GetMember(ctx context.Context, memberID string) (*dto.MemberResponse, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("member %s: %w", memberID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	response := &dto.MemberResponse{
		ID:          member.ID,
		Email:       member.Email,
		DisplayName: member.DisplayName,
		Role:        member.Role,
		CreatedAt:   member.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   member.UpdatedAt.Format(time.RFC3339),
	}

	if member.LastLoginAt != nil {
		lastLogin := member.LastLoginAt.Format(time.RFC3339)
		response.LastLoginAt = &lastLogin
	}

	return response, nil
}

// ValidateToken validates an access token
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	isBlacklisted, err := s.blacklistService.IsTokenBlacklisted(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if isBlacklisted {
		return nil, fmt.Errorf("token is blacklisted: %w", domain.ErrUnauthorized)
	}

	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}

	return claims, nil
}
