package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kimurazver67/sport-transformation-app-sub000/internal/types"
)

const (
	userIDKey     = "user_id"
	telegramIDKey = "telegram_id"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that validates JWT tokens
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			AbortWithError(c, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			AbortWithError(c, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			AbortWithError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(telegramIDKey, claims.TelegramID)
		c.Next()
	}
}

// UserIDFrom returns the authenticated user set by AuthMiddleware.
func UserIDFrom(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// RequireSelf rejects requests whose path parameter names a different user
// than the token.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserIDFrom(c)
		if !ok {
			AbortWithError(c, http.StatusUnauthorized, "user not authenticated")
			return
		}

		pathID, err := uuid.Parse(c.Param(param))
		if err != nil {
			AbortWithError(c, http.StatusBadRequest, "invalid user id")
			return
		}
		if pathID != userID {
			AbortWithError(c, http.StatusForbidden, "access to another user's data is forbidden")
			return
		}
		c.Next()
	}
}
