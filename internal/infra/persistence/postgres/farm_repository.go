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

// farmRepository implements repository.FarmRepository on GORM.
type farmRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewFarmRepository creates a new farm repository bound to the given
// connection or transaction handle.
func NewFarmRepository(db *gorm.DB, logger *slog.Logger) repository.FarmRepository {
	return &farmRepository{db: db, logger: logger}
}

// FindByID retrieves a single farm by its unique ID.
func (repo *farmRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Farm, error) {
	var farmModel model.FarmModel
	err := repo.db.WithContext(ctx).
		Joins("Owner").
		Where("farms.id = ?", id).
		First(&farmModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrFarmNotFound)
		}

		return nil, errors.Wrap(err, "failed to find farm by id")
	}

	return farmModel.ToDomain(), nil
}

// ListWithOwners retrieves every farm with the owning user joined in the
// same query. Ordering by insertion time (id as tiebreaker) keeps the
// storage order stable so downstream stable sorts are deterministic.
func (repo *farmRepository) ListWithOwners(ctx context.Context) ([]*entity.Farm, error) {
	var farmModels []model.FarmModel
	err := repo.db.WithContext(ctx).
		Joins("Owner").
		Order("farms.created_at ASC").
		Order("farms.id ASC").
		Find(&farmModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list farms with owners")
	}

	farms := make([]*entity.Farm, 0, len(farmModels))
	for i := range farmModels {
		farms = append(farms, farmModels[i].ToDomain())
	}

	return farms, nil
}

// ExistsByAddressAndName reports whether a farm with the exact
// (address, name) pair already exists for any owner.
func (repo *farmRepository) ExistsByAddressAndName(ctx context.Context, address, name string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.FarmModel{}).
		Where("address = ? AND name = ?", address, name).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check farm existence")
	}

	return count > 0, nil
}

// Create persists a new farm. The composite unique index on (address, name)
// maps to the duplicate-farm domain error; a missing owner row maps to a
// plain error since it indicates a bug, not user input.
func (repo *farmRepository) Create(ctx context.Context, farm *entity.Farm) error {
	farmModel := model.FarmModelFromDomain(farm)
	if farmModel.ID == uuid.Nil {
		farmModel.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(farmModel).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrFarmAlreadyExists.WrapMessage(err.Error())
		}
		if isForeignKeyConstraintViolation(err) {
			return errors.Wrap(err, "farm references a missing user")
		}

		return errors.Wrap(err, "failed to create farm")
	}

	farm.ID = farmModel.ID
	farm.CreatedAt = farmModel.CreatedAt
	farm.UpdatedAt = farmModel.UpdatedAt

	return nil
}

// Delete removes a farm by its ID.
func (repo *farmRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.FarmModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete farm")
	}
	if result.RowsAffected == 0 {
		return errors.WithStack(repository.ErrFarmNotFound)
	}

	return nil
}
