// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "agrimap/internal/delivery/context"
	"agrimap/internal/domain/entity"
	domainerrors "agrimap/internal/domain/errors"
	"agrimap/internal/domain/repository"
	"agrimap/internal/domain/service"
	"agrimap/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	tokenRepo repository.AccessTokenRepository
	hasher    service.PasswordHasher
	tokenSvc  service.TokenService
	geocoder  service.Geocoder
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	TokenRepo repository.AccessTokenRepository
	Hasher    service.PasswordHasher
	TokenSvc  service.TokenService
	Geocoder  service.Geocoder
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		tokenRepo: params.TokenRepo,
		hasher:    params.Hasher,
		tokenSvc:  params.TokenSvc,
		geocoder:  params.Geocoder,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete user registration process. The address
// is geocoded exactly once here; stored coordinates are immutable afterwards.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.UserView, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	// Geocode and hash outside the transaction; both are independent of
	// database state and bcrypt is CPU-bound.
	point, err := srv.geocoder.Geocode(ctx, input.Address)
	if err != nil {
		srv.log(ctx).Warn("Failed to geocode registration address", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to geocode registration address")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:        input.Email,
		PasswordHash: passwordHash,
		Address:      input.Address,
		Coordinates:  point,
	}

	// Uniqueness check and insert share one transaction to close the race
	// between two concurrent registrations for the same email.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, findErr := userRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return domainerrors.ErrEmailAlreadyExists.WrapMessage("registration rejected")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check email uniqueness")
		}

		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return userView(newUser), nil
}

// Login verifies credentials, issues a signed token and persists it as an
// AccessToken record bound to the user.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same message for unknown email and wrong password.
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, expiresAt, err := srv.tokenSvc.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	accessToken := &entity.AccessToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := srv.tokenRepo.Create(ctx, accessToken); err != nil {
		return nil, errors.Wrap(err, "failed to store access token")
	}

	// Opportunistic cleanup of expired tokens; a failure never blocks login.
	if err := srv.tokenRepo.DeleteExpired(ctx); err != nil {
		srv.log(ctx).Warn("Failed to delete expired access tokens", slog.Any("error", err))
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// userView projects a user to its public shape.
func userView(user *entity.User) *usecase.UserView {
	return &usecase.UserView{
		ID:        user.ID,
		Email:     user.Email,
		Address:   user.Address,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
