package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog/internal/infrastructure/sam"
	"catalog/internal/shared/constants"
	"catalog/internal/shared/logger"
	"catalog/internal/shared/utils"
)

// IdentityVerifier resolves a bearer token to a registered caller.
type IdentityVerifier interface {
	GetUserStatus(ctx context.Context, token string) (*sam.UserStatus, error)
}

// AuthMiddleware extracts the caller's bearer token and, when a verifier is
// configured, confirms the token belongs to a registered user. Tokens stay
// opaque to the catalog; the permission service and the storage systems
// re-validate them on every downstream call.
type AuthMiddleware struct {
	verifier IdentityVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier IdentityVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// RequireAuth rejects requests without a bearer token and stashes the token
// in the request context for the usecases.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}
		token := parts[1]

		if m.verifier != nil {
			if _, err := m.verifier.GetUserStatus(c.Request.Context(), token); err != nil {
				utils.ErrorResponseWithError(c, err)
				c.Abort()
				return
			}
		}

		c.Set(constants.ContextKeyBearerToken, token)
		c.Next()
	}
}

// BearerToken returns the token RequireAuth stored for this request.
func BearerToken(c *gin.Context) string {
	return c.GetString(constants.ContextKeyBearerToken)
}
