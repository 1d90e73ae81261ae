package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/talkboard/board-service/internal/domain"
	"github.com/talkboard/board-service/internal/dto"
	"github.com/talkboard/board-service/internal/service"
)

const claimsContextKey = "claims"

// AuthMiddleware validates the bearer token and stores the parsed claims in
// the request context. Handlers behind it read claims via MustClaims and
// never re-inspect the token.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Authorization header is required",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated member carries the role.
// Must run after AuthMiddleware.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := MustClaims(c)
		if claims.Role != role {
			c.JSON(http.StatusForbidden, dto.ErrorResponse{
				Error:   "Forbidden",
				Message: "Insufficient role for this action",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// MustClaims returns the claims stored by AuthMiddleware. It panics if
// called outside an authenticated route, which is a routing bug.
func MustClaims(c *gin.Context) *domain.TokenClaims {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		panic("claims missing from context: route is not behind AuthMiddleware")
	}
	return value.(*domain.TokenClaims)
}
