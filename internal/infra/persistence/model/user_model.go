package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via gen_random_uuid().
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	Name      string    `gorm:"type:varchar(100)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Reset-pending state. Both columns are null when no reset is pending.
	ResetToken        *string `gorm:"type:varchar(64);index"`
	ResetTokenExpires *time.Time

	Hearts          []UserHeartModel      `gorm:"foreignKey:UserID"`
	Authentications []AuthenticationModel `gorm:"foreignKey:UserID"`
	RefreshTokens   []RefreshTokenModel   `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// UserHeartModel mirrors the 'user_hearts' join table. One row per
// (user, store) favorite pair; the composite primary key gives set semantics.
type UserHeartModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserHeartModel) TableName() string {
	return "user_hearts"
}
