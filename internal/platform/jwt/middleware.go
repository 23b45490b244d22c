package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codex_backend/internal/api"
	"codex_backend/internal/feature/auth/domain/entity"
	"codex_backend/internal/feature/auth/usecase"
)

// ContextUser is the gin context key holding the authenticated *entity.User.
const ContextUser = "currentUser"

// Authenticator resolves a bearer token to a stored user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthRequired returns a Gin middleware function that validates session tokens
// and restricts access to authenticated users only.
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token", Code: api.CodeInvalidToken})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		user, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			status, body := authError(err)
			if status == http.StatusInternalServerError {
				slog.Error("authentication failed", "error", err, "remote_addr", c.ClientIP())
			}
			c.AbortWithStatusJSON(status, body)
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired. Non-admin users get 403.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required", Code: api.CodeInvalidToken})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: "admin access required", Code: api.CodeNotAdmin})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok && user != nil
}

func authError(err error) (int, api.ErrorResponse) {
	switch {
	case errors.Is(err, usecase.ErrExpiredToken):
		return http.StatusUnauthorized, api.ErrorResponse{Error: "token expired", Code: api.CodeExpiredToken}
	case errors.Is(err, usecase.ErrInvalidToken):
		return http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token", Code: api.CodeInvalidToken}
	case errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusUnauthorized, api.ErrorResponse{Error: "user not found", Code: api.CodeUserNotFound}
	default:
		return http.StatusInternalServerError, api.Internal()
	}
}
