package auth

import (
	"time"

	"agrimap/config"
	"agrimap/internal/domain/service"
	"agrimap/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultTokenTTL = 24 * time.Hour

// jwtService implements service.TokenService using HS256-signed JWTs.
type jwtService struct {
	secretKey []byte
	tokenTTL  time.Duration
}

// NewJWTService creates the token service from configuration. The signing
// secret is mandatory; refusing to start beats issuing forgeable tokens.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg == nil || cfg.Auth == nil || cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwtSecret is required")
	}

	tokenTTL := cfg.Auth.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}

	return &jwtService{
		secretKey: []byte(cfg.Auth.JWTSecret),
		tokenTTL:  tokenTTL,
	}, nil
}

// GenerateToken creates a signed access token for the given user.
func (s *jwtService) GenerateToken(userID uuid.UUID, email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := service.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign access token")
	}

	return signed, expiresAt, nil
}

// ValidateToken checks signature and expiry and returns the parsed claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := new(service.Claims)

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return s.secretKey, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse access token")
	}
	if !token.Valid {
		return nil, errors.New("invalid access token")
	}

	if claims.UserID == uuid.Nil && claims.Subject != "" {
		userID, parseErr := uuid.Parse(claims.Subject)
		if parseErr != nil {
			return nil, errors.Wrap(parseErr, "invalid subject claim")
		}
		claims.UserID = userID
	}

	return claims, nil
}
