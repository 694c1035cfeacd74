// Package middleware contains the HTTP middlewares for authentication and
// error handling.
package middleware

import (
	"strings"
	"time"

	"agrimap/internal/domain/entity"
	domainerrors "agrimap/internal/domain/errors"
	"agrimap/internal/domain/repository"
	"agrimap/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// keyRequester is the echo.Context key the authenticated user is stored under.
const keyRequester = "requester"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenSvc  service.TokenService
	TokenRepo repository.AccessTokenRepository
}

// AuthMiddleware authenticates requests by their bearer token. A token must
// both carry a valid signature and exist unexpired in the token store; a
// signed token that was never issued through login is rejected.
type AuthMiddleware struct {
	tokenSvc  service.TokenService
	tokenRepo repository.AccessTokenRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:  params.TokenSvc,
		tokenRepo: params.TokenRepo,
	}
}

// Authenticate validates the bearer token and resolves the requesting user.
// Every failure mode maps to the same 401 so callers cannot probe which
// tokens exist.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrUnauthorized.WrapMessage("missing authorization header")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return domainerrors.ErrUnauthorized.WrapMessage("malformed authorization header")
		}

		if _, err := m.tokenSvc.ValidateToken(tokenString); err != nil {
			return domainerrors.ErrUnauthorized.WrapMessage("invalid token signature")
		}

		accessToken, err := m.tokenRepo.FindByToken(c.Request().Context(), tokenString)
		if err != nil {
			return domainerrors.ErrUnauthorized.WrapMessage("unknown token")
		}

		if accessToken.Expired(time.Now()) {
			return domainerrors.ErrUnauthorized.WrapMessage("expired token")
		}
		if accessToken.User == nil {
			return domainerrors.ErrUnauthorized.WrapMessage("token has no user")
		}

		// Set the resolved user on the context for handlers to use.
		c.Set(keyRequester, accessToken.User)

		return next(c)
	}
}

// GetRequester extracts the authenticated user set by Authenticate.
func GetRequester(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(keyRequester).(*entity.User)

	return user, ok
}

// SetRequester stores the authenticated user on the context. Exposed for
// handler tests.
func SetRequester(c echo.Context, user *entity.User) {
	c.Set(keyRequester, user)
}
