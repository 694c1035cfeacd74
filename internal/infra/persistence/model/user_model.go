// Package model defines the GORM persistence models. Models stay separate
// from domain entities so database concerns never leak into the domain layer.
package model

import (
	"time"

	"agrimap/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Address      string    `gorm:"type:varchar(255);not null"`
	Longitude    float64   `gorm:"type:double precision;not null"`
	Latitude     float64   `gorm:"type:double precision;not null"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`

	Farms []FarmModel `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain entity.
func (m *UserModel) ToDomain() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Address:      m.Address,
		Coordinates:  orb.Point{m.Longitude, m.Latitude},
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// UserModelFromDomain converts a domain entity to the persistence model.
func UserModelFromDomain(user *entity.User) *UserModel {
	return &UserModel{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Address:      user.Address,
		Longitude:    user.Coordinates.Lon(),
		Latitude:     user.Coordinates.Lat(),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}
