package postgres

import (
	"context"
	"log/slog"
	"time"

	"agrimap/internal/domain/entity"
	"agrimap/internal/domain/repository"
	"agrimap/internal/errors"
	"agrimap/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// accessTokenRepository implements repository.AccessTokenRepository on GORM.
type accessTokenRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewAccessTokenRepository creates a new access token repository bound to the
// given connection or transaction handle.
func NewAccessTokenRepository(db *gorm.DB, logger *slog.Logger) repository.AccessTokenRepository {
	return &accessTokenRepository{db: db, logger: logger}
}

// Create persists a newly issued access token.
func (repo *accessTokenRepository) Create(ctx context.Context, token *entity.AccessToken) error {
	tokenModel := model.AccessTokenModelFromDomain(token)
	if tokenModel.ID == uuid.Nil {
		tokenModel.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(tokenModel).Error; err != nil {
		return errors.Wrap(err, "failed to create access token")
	}

	token.ID = tokenModel.ID
	token.CreatedAt = tokenModel.CreatedAt

	return nil
}

// FindByToken retrieves a token record by its raw token string with the
// owning user eagerly joined, so the auth middleware resolves the requester
// in one query.
func (repo *accessTokenRepository) FindByToken(ctx context.Context, token string) (*entity.AccessToken, error) {
	var tokenModel model.AccessTokenModel
	err := repo.db.WithContext(ctx).
		Joins("User").
		Where("access_tokens.token = ?", token).
		First(&tokenModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrAccessTokenNotFound)
		}

		return nil, errors.Wrap(err, "failed to find access token")
	}

	return tokenModel.ToDomain(), nil
}

// DeleteExpired removes every token whose expiry has passed.
func (repo *accessTokenRepository) DeleteExpired(ctx context.Context) error {
	err := repo.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&model.AccessTokenModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete expired access tokens")
	}

	return nil
}
