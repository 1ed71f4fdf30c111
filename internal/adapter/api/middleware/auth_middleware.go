package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"gretastore/internal/domain/entity"
	"gretastore/pkg/errors"
	"gretastore/pkg/response"
)

// SessionVerifier resolves a bearer id token to the signed-in user.
type SessionVerifier interface {
	VerifySession(ctx context.Context, idToken string) (*entity.User, error)
}

type AuthMiddleware struct {
	verifier SessionVerifier
}

func NewAuthMiddleware(verifier SessionVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// Authenticate requires "Authorization: Bearer <id token>" for the active
// session and stores the user under "user" and their ID under "uid".
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
		}

		user, err := m.verifier.VerifySession(c.Request().Context(), parts[1])
		if err != nil {
			return response.Error(c, err)
		}

		c.Set("uid", user.ID)
		c.Set("user", user)
		return next(c)
	}
}
