package acceptance

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/talkboard/board-service/internal/dto"
)

func (s *Suite) TestJoin_Success() {
	resp := s.postJSON("/api/v1/auth/join", "", dto.JoinRequest{
		Email:       "test@example.com",
		DisplayName: "Tester",
		Password:    "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)

	var authResp dto.AuthorizedResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))

	s.NotEmpty(authResp.ID)
	s.Equal("test@example.com", authResp.Email)
	s.Equal("Tester", authResp.DisplayName)
	s.EqualValues("member", authResp.Role)
	s.NotEmpty(authResp.Token.Access)
	s.NotEmpty(authResp.Token.Refresh)

	expiredAt, err := time.Parse(time.RFC3339, authResp.Token.ExpiredAt)
	s.Require().NoError(err)
	refreshableUntil, err := time.Parse(time.RFC3339, authResp.Token.RefreshableUntil)
	s.Require().NoError(err)
	s.True(expiredAt.Before(refreshableUntil), "access expiry should precede refresh expiry")
}

func (s *Suite) TestJoin_DuplicateEmail() {
	s.join("duplicate@example.com", "First", "Password123")

	resp := s.postJSON("/api/v1/auth/join", "", dto.JoinRequest{
		Email:       "duplicate@example.com",
		DisplayName: "Second",
		Password:    "Password456",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusConflict, resp.StatusCode)

	var errResp dto.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)
	s.Equal("Conflict", errResp.Error)
}

func (s *Suite) TestJoin_InvalidEmail() {
	resp := s.postJSON("/api/v1/auth/join", "", dto.JoinRequest{
		Email:       "invalid-email",
		DisplayName: "Tester",
		Password:    "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestJoin_WeakPassword() {
	resp := s.postJSON("/api/v1/auth/join", "", dto.JoinRequest{
		Email:       "weak@example.com",
		DisplayName: "Tester",
		Password:    "lowercaseonly",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)
	s.Equal("Bad request", errResp.Error)
}

func (s *Suite) TestLogin_Success() {
	s.join("login@example.com", "Login", "Password123")

	resp := s.postJSON("/api/v1/auth/login", "", dto.LoginRequest{
		Email:    "login@example.com",
		Password: "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var authResp dto.AuthorizedResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))
	s.Equal("login@example.com", authResp.Email)
	s.NotEmpty(authResp.Token.Access)
	s.NotEmpty(authResp.Token.Refresh)
}

func (s *Suite) TestLogin_WrongPassword() {
	s.join("wrongpass@example.com", "Wrong", "CorrectPassword123")

	resp := s.postJSON("/api/v1/auth/login", "", dto.LoginRequest{
		Email:    "wrongpass@example.com",
		Password: "WrongPassword123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var errResp dto.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)
	s.Equal("Unauthorized", errResp.Error)
}

func (s *Suite) TestLogin_UnknownEmail() {
	resp := s.postJSON("/api/v1/auth/login", "", dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestRefresh_RotatesToken() {
	authResp := s.join("refresh@example.com", "Refresher", "Password123")

	resp := s.postJSON("/api/v1/auth/refresh", "", map[string]string{
		"refresh": authResp.Token.Refresh,
	})
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var rotated dto.AuthorizedResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&rotated))
	s.NotEmpty(rotated.Token.Access)
	s.NotEmpty(rotated.Token.Refresh)
	s.NotEqual(authResp.Token.Refresh, rotated.Token.Refresh, "refresh token should rotate")
}

func (s *Suite) TestRefresh_ReplayRejected() {
	authResp := s.join("replay@example.com", "Replayer", "Password123")

	first := s.postJSON("/api/v1/auth/refresh", "", map[string]string{
		"refresh": authResp.Token.Refresh,
	})
	first.Body.Close()
	s.Require().Equal(http.StatusOK, first.StatusCode)

	// the rotated-out token must not work a second time
	second := s.postJSON("/api/v1/auth/refresh", "", map[string]string{
		"refresh": authResp.Token.Refresh,
	})
	defer second.Body.Close()

	s.Equal(http.StatusUnauthorized, second.StatusCode)
}

func (s *Suite) TestRefresh_GarbageToken() {
	resp := s.postJSON("/api/v1/auth/refresh", "", map[string]string{
		"refresh": "not-a-jwt",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestRefresh_MissingBody() {
	resp := s.postJSON("/api/v1/auth/refresh", "", map[string]string{})
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestGetMe_Success() {
	authResp := s.join("getme@example.com", "Me", "Password123")

	resp := s.doJSON(http.MethodGet, "/api/v1/auth/me", authResp.Token.Access, nil)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var memberResp dto.MemberResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&memberResp))
	s.Equal(authResp.ID, memberResp.ID)
	s.Equal("getme@example.com", memberResp.Email)
	s.Equal("Me", memberResp.DisplayName)
	s.NotEmpty(memberResp.CreatedAt)
}

func (s *Suite) TestGetMe_NoToken() {
	resp := s.doJSON(http.MethodGet, "/api/v1/auth/me", "", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetMe_InvalidToken() {
	resp := s.doJSON(http.MethodGet, "/api/v1/auth/me", "invalid-token", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestLogout_RevokesRefreshToken() {
	authResp := s.join("logout@example.com", "Leaver", "Password123")

	resp := s.postJSON("/api/v1/auth/logout", authResp.Token.Access, map[string]string{
		"refresh": authResp.Token.Refresh,
	})
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var successResp dto.SuccessResponse
	json.NewDecoder(resp.Body).Decode(&successResp)
	s.Equal("Logged out successfully", successResp.Message)

	refreshResp := s.postJSON("/api/v1/auth/refresh", "", map[string]string{
		"refresh": authResp.Token.Refresh,
	})
	defer refreshResp.Body.Close()
	s.Equal(http.StatusUnauthorized, refreshResp.StatusCode)
}

func (s *Suite) TestLogout_NoToken() {
	resp := s.postJSON("/api/v1/auth/logout", "", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestCompleteFlow() {
	authResp := s.join("complete@example.com", "Complete", "Password123")

	meResp := s.doJSON(http.MethodGet, "/api/v1/auth/me", authResp.Token.Access, nil)
	meResp.Body.Close()
	s.Equal(http.StatusOK, meResp.StatusCode)

	refreshResp := s.postJSON("/api/v1/auth/refresh", "", map[string]string{
		"refresh": authResp.Token.Refresh,
	})
	defer refreshResp.Body.Close()
	s.Require().Equal(http.StatusOK, refreshResp.StatusCode)

	var rotated dto.AuthorizedResponse
	s.Require().NoError(json.NewDecoder(refreshResp.Body).Decode(&rotated))

	logoutResp := s.postJSON("/api/v1/auth/logout", rotated.Token.Access, map[string]string{
		"refresh": rotated.Token.Refresh,
	})
	logoutResp.Body.Close()
	s.Equal(http.StatusOK, logoutResp.StatusCode)

	replayResp := s.postJSON("/api/v1/auth/refresh", "", map[string]string{
		"refresh": rotated.Token.Refresh,
	})
	defer replayResp.Body.Close()
	s.Equal(http.StatusUnauthorized, replayResp.StatusCode)
}
