package model

import (
	"time"

	"github.com/google/uuid"
)

// StoreModel mirrors the 'stores' table. The location columns are kept flat
// so bounding-box scans hit the composite index directly.
type StoreModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Slug        string    `gorm:"type:varchar(255);unique;not null"`
	Description string    `gorm:"type:text"`
	Longitude   float64   `gorm:"not null;index:idx_stores_location"`
	Latitude    float64   `gorm:"not null;index:idx_stores_location"`
	Address     string    `gorm:"type:varchar(255)"`
	Photo       string    `gorm:"type:varchar(255)"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Tags    []StoreTagModel `gorm:"foreignKey:StoreID"`
	Reviews []ReviewModel   `gorm:"foreignKey:StoreID"`
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}

// StoreTagModel mirrors the 'store_tags' join table. One row per tag on a
// store; the composite primary key keeps the tag set duplicate-free.
type StoreTagModel struct {
	StoreID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Tag     string    `gorm:"type:varchar(100);primaryKey;index"`
}

// TableName explicitly sets the table name for GORM.
func (StoreTagModel) TableName() string {
	return "store_tags"
}
