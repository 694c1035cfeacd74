package model

import (
	"time"

	"agrimap/internal/domain/entity"

	"github.com/google/uuid"
)

// AccessTokenModel is the GORM model for the access_tokens table. The token
// column is indexed because every authenticated request looks it up.
type AccessTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:text;not null;uniqueIndex:uq_access_tokens_token"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`

	User *UserModel `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the AccessTokenModel.
func (AccessTokenModel) TableName() string {
	return "access_tokens"
}

// ToDomain converts the persistence model to a domain entity.
func (m *AccessTokenModel) ToDomain() *entity.AccessToken {
	token := &entity.AccessToken{
		ID:        m.ID,
		UserID:    m.UserID,
		Token:     m.Token,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
	if m.User != nil {
		token.User = m.User.ToDomain()
	}

	return token
}

// AccessTokenModelFromDomain converts a domain entity to the persistence model.
func AccessTokenModelFromDomain(token *entity.AccessToken) *AccessTokenModel {
	return &AccessTokenModel{
		ID:        token.ID,
		UserID:    token.UserID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}
}
