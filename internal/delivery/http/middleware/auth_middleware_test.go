package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agrimap/internal/domain/entity"
	domainerrors "agrimap/internal/domain/errors"
	"agrimap/internal/domain/repository"
	"agrimap/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokenService struct {
	validateErr error
}

func (s *stubTokenService) GenerateToken(uuid.UUID, string) (string, time.Time, error) {
	panic("not used")
}

func (s *stubTokenService) ValidateToken(string) (*service.Claims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}

	return &service.Claims{}, nil
}

type stubTokenRepo struct {
	token *entity.AccessToken
}

func (s *stubTokenRepo) Create(context.Context, *entity.AccessToken) error { panic("not used") }

func (s *stubTokenRepo) FindByToken(context.Context, string) (*entity.AccessToken, error) {
	if s.token == nil {
		return nil, repository.ErrAccessTokenNotFound
	}

	return s.token, nil
}

func (s *stubTokenRepo) DeleteExpired(context.Context) error { panic("not used") }

func runAuthenticate(t *testing.T, authHeader string, tokenSvc service.TokenService, tokenRepo repository.AccessTokenRepository) (echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/farms", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	m := NewAuthMiddleware(AuthMiddlewareParams{TokenSvc: tokenSvc, TokenRepo: tokenRepo})
	next := func(echo.Context) error { return nil }

	return c, m.Authenticate(next)(c)
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
	assert.Equal(t, "Unauthorized user.", appErr.Message())
}

func TestAuthenticate_Success(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "farmer@example.com"}
	tokenRepo := &stubTokenRepo{token: &entity.AccessToken{
		UserID:    user.ID,
		User:      user,
		Token:     "valid-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}}

	c, err := runAuthenticate(t, "Bearer valid-token", &stubTokenService{}, tokenRepo)
	require.NoError(t, err)

	requester, ok := GetRequester(c)
	require.True(t, ok)
	assert.Equal(t, user.ID, requester.ID)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	_, err := runAuthenticate(t, "", &stubTokenService{}, &stubTokenRepo{})
	assertUnauthorized(t, err)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	_, err := runAuthenticate(t, "Token abc", &stubTokenService{}, &stubTokenRepo{})
	assertUnauthorized(t, err)
}

func TestAuthenticate_InvalidSignature(t *testing.T) {
	_, err := runAuthenticate(t, "Bearer forged",
		&stubTokenService{validateErr: assert.AnError}, &stubTokenRepo{})
	assertUnauthorized(t, err)
}

func TestAuthenticate_UnknownToken(t *testing.T) {
	// Valid signature but never issued through login.
	_, err := runAuthenticate(t, "Bearer never-issued", &stubTokenService{}, &stubTokenRepo{})
	assertUnauthorized(t, err)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	user := &entity.User{ID: uuid.New()}
	tokenRepo := &stubTokenRepo{token: &entity.AccessToken{
		UserID:    user.ID,
		User:      user,
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}}

	_, err := runAuthenticate(t, "Bearer stale-token", &stubTokenService{}, tokenRepo)
	assertUnauthorized(t, err)
}
