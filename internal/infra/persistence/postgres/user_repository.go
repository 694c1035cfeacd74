package postgres

import (
	"context"
	"log/slog"

	"agrimap/internal/domain/entity"
	domainerrors "agrimap/internal/domain/errors"
	"agrimap/internal/domain/repository"
	"agrimap/internal/errors"
	"agrimap/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// userRepository implements repository.UserRepository on GORM.
type userRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewUserRepository creates a new user repository bound to the given
// connection or transaction handle.
func NewUserRepository(db *gorm.DB, logger *slog.Logger) repository.UserRepository {
	return &userRepository{db: db, logger: logger}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userModel model.UserModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return userModel.ToDomain(), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.UserModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return userModel.ToDomain(), nil
}

// Create persists a new user. A unique-constraint violation on the email
// column maps to the duplicate-email domain error, closing the race the
// application-level check cannot.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.UserModelFromDomain(user)
	if userModel.ID == uuid.Nil {
		userModel.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(userModel).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyExists.WrapMessage(err.Error())
		}

		return errors.Wrap(err, "failed to create user")
	}

	user.ID = userModel.ID
	user.CreatedAt = userModel.CreatedAt
	user.UpdatedAt = userModel.UpdatedAt

	return nil
}
