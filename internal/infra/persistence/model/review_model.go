package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel mirrors the 'reviews' table. The rating bound is enforced at
// the database as a last line of defense behind the use-case check.
type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Text      string    `gorm:"type:text"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	CreatedAt time.Time

	Author *UserModel `gorm:"foreignKey:AuthorID"`
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
