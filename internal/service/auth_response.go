package service

import (
	"context"
	"fmt"
	"time"

	"github.com/talkboard/board-service/internal/domain"
	"github.com/talkboard/board-service/internal/dto"
	"github.com/talkboard/board-service/internal/utils"
)

// issueTokenPair signs a new access/refresh pair, persists the refresh
// record (hash only) and assembles the authorization envelope.
func (s *authService) issueTokenPair(ctx context.Context, member *domain.Member) (*dto.AuthorizedResponse, error) {
	accessToken, accessExpiresAt, err := s.jwtManager.GenerateAccessToken(member.ID, member.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtManager.GenerateRefreshToken(member.ID, member.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	record := &domain.RefreshToken{
		MemberID:  member.ID,
		TokenHash: utils.HashToken(refreshToken),
		ExpiresAt: refreshExpiresAt,
	}

	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &dto.AuthorizedResponse{
		ID:          member.ID,
		Email:       member.Email,
		DisplayName: member.DisplayName,
		Role:        member.Role,
		Token: dto.TokenBundle{
			Access:           accessToken,
			Refresh:          refreshToken,
			ExpiredAt:        accessExpiresAt.Format(time.RFC3339),
			RefreshableUntil: refreshExpiresAt.Format(time.RFC3339),
		},
	}, nil
}
