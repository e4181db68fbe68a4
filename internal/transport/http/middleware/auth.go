package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arklim/social-platform-api/internal/core/domain"
	"github.com/arklim/social-platform-api/internal/usecase"
)

// errorBody matches the handlers error envelope: the message rides in "status".
type errorBody struct {
	Status string `json:"status"`
}

// RequireAuth validates the Authorization header and stores the caller's
// identity on the request context. Tokens are accepted as "bearer <token>"
// with a case-insensitive scheme.
func RequireAuth(auth *usecase.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Status: "Authentication required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Status: "Authentication required"})
			return
		}

		token := strings.TrimSpace(parts[1])
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Status: "Authentication required"})
			return
		}

		claims, err := auth.Authenticate(token)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrExpiredAccessToken):
				c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Status: "Token expired"})
			default:
				c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Status: "Invalid token"})
			}
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserRoleKey, claims.Role)

		c.Next()
	}
}

// RequireRole rejects callers whose token role differs from the required one.
// It must run after RequireAuth.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRole, ok := CallerRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Status: "Authentication required"})
			return
		}
		if callerRole != role {
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody{Status: "Not authorized"})
			return
		}
		c.Next()
	}
}
