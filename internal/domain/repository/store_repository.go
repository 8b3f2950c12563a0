// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"storemap/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStoreNotFound is a domain-specific error returned when a store is not found.
var ErrStoreNotFound = errors.New("store not found")

// StoreRepository defines the standard operations for store persistence,
// including the read-side aggregates that drive navigation and ranking.
type StoreRepository interface {
	// Create persists a new store entity, tags included.
	Create(ctx context.Context, store *entity.Store) error

	// Update modifies an existing store entity, replacing its tag set.
	Update(ctx context.Context, store *entity.Store) error

	// FindByID retrieves a single store by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// FindBySlug retrieves a single store by its slug, reviews joined in.
	FindBySlug(ctx context.Context, slug string) (*entity.Store, error)

	// FindByIDs retrieves the stores whose IDs are in the given set.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Store, error)

	// List returns one page of stores ordered by creation time descending,
	// along with the total store count.
	List(ctx context.Context, offset, limit int) ([]*entity.Store, int64, error)

	// FindByTag returns all stores carrying the given tag. An empty tag
	// matches stores carrying any tag at all.
	FindByTag(ctx context.Context, tag string) ([]*entity.Store, error)

	// CountSlugMatches counts stores whose slug matches
	// ^slug(-[0-9]*)?$ case-insensitively, excluding the given store ID
	// (uuid.Nil for creations).
	CountSlugMatches(ctx context.Context, slug string, excludeID uuid.UUID) (int64, error)

	// TagCounts computes the distinct tags across all stores with the
	// number of stores per tag, count descending.
	TagCounts(ctx context.Context) ([]*entity.TagCount, error)

	// TopStores ranks stores with at least minReviews reviews by mean
	// rating descending, up to limit rows.
	TopStores(ctx context.Context, minReviews, limit int) ([]*entity.RankedStore, error)

	// FindWithinBox returns stores whose location falls inside the given
	// coordinate bounds. The precise distance filter runs on the caller.
	FindWithinBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]*entity.Store, error)

	// Search returns up to limit stores matching the free-text query over
	// name and description, relevance descending.
	Search(ctx context.Context, query string, limit int) ([]*entity.Store, error)
}
