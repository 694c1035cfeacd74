package model

import (
	"time"

	"agrimap/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// FarmModel is the GORM model for the farms table. The composite unique
// index enforces the system-wide (address, name) uniqueness rule at the
// storage level, backing up the application-level check.
type FarmModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Address   string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_farms_address_name"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_farms_address_name"`
	Size      float64   `gorm:"type:numeric(7,2);not null"`
	Yield     float64   `gorm:"type:numeric(7,2);not null"`
	Longitude float64   `gorm:"type:double precision;not null"`
	Latitude  float64   `gorm:"type:double precision;not null"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`

	Owner *UserModel `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the FarmModel.
func (FarmModel) TableName() string {
	return "farms"
}

// ToDomain converts the persistence model to a domain entity.
func (m *FarmModel) ToDomain() *entity.Farm {
	farm := &entity.Farm{
		ID:          m.ID,
		UserID:      m.UserID,
		Address:     m.Address,
		Name:        m.Name,
		Size:        m.Size,
		Yield:       m.Yield,
		Coordinates: orb.Point{m.Longitude, m.Latitude},
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Owner != nil {
		farm.Owner = m.Owner.ToDomain()
	}

	return farm
}

// FarmModelFromDomain converts a domain entity to the persistence model.
// The owner relation is intentionally not mapped; associations are managed
// through UserID alone.
func FarmModelFromDomain(farm *entity.Farm) *FarmModel {
	return &FarmModel{
		ID:        farm.ID,
		UserID:    farm.UserID,
		Address:   farm.Address,
		Name:      farm.Name,
		Size:      farm.Size,
		Yield:     farm.Yield,
		Longitude: farm.Coordinates.Lon(),
		Latitude:  farm.Coordinates.Lat(),
		CreatedAt: farm.CreatedAt,
		UpdatedAt: farm.UpdatedAt,
	}
}
