// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"

	"storemap/internal/domain/entity"
)

// --- Input DTOs ---

// PhotoUpload carries an uploaded image stream and its declared MIME type.
type PhotoUpload struct {
	Reader      io.Reader
	ContentType string
}

// CreateStoreInput defines the data required to create a new store.
type CreateStoreInput struct {
	AuthorID    uuid.UUID
	Name        string
	Description string
	Tags        []string
	Location    entity.Location
	Photo       *PhotoUpload // nil when no photo was uploaded
}

// UpdateStoreInput defines the data for editing an existing store.
type UpdateStoreInput struct {
	StoreID     uuid.UUID
	EditorID    uuid.UUID
	Name        string
	Description string
	Tags        []string
	Location    entity.Location
	Photo       *PhotoUpload // nil keeps the current photo
}

// --- Output DTOs ---

// StorePage is one page of the store listing.
type StorePage struct {
	Stores []*entity.Store
	Page   int
	Pages  int
	Total  int64
}

// TagPage is the tag navigation view: every tag with its store count plus
// the stores carrying the selected tag.
type TagPage struct {
	Tag    string
	Tags   []*entity.TagCount
	Stores []*entity.Store
}

// StoreUsecase defines the interface for store-related business operations.
type StoreUsecase interface {
	CreateStore(ctx context.Context, input CreateStoreInput) (*entity.Store, error)
	UpdateStore(ctx context.Context, input UpdateStoreInput) (*entity.Store, error)
	GetStoreBySlug(ctx context.Context, slug string) (*entity.Store, error)
	GetStoreForEdit(ctx context.Context, storeID, editorID uuid.UUID) (*entity.Store, error)
	ListStores(ctx context.Context, page int) (*StorePage, error)
	StoresByTag(ctx context.Context, tag string) (*TagPage, error)
	TopStores(ctx context.Context) ([]*entity.RankedStore, error)
	NearbyStores(ctx context.Context, lng, lat float64) ([]*entity.NearbyStore, error)
	SearchStores(ctx context.Context, query string) ([]*entity.Store, error)
}
