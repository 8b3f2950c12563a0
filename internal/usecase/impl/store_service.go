package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/gosimple/slug"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"storemap/config"
	deliverycontext "storemap/internal/delivery/context"
	"storemap/internal/domain/entity"
	domainerrors "storemap/internal/domain/errors"
	"storemap/internal/domain/repository"
	"storemap/internal/domain/service"
	"storemap/internal/usecase"

	"github.com/google/uuid"
)

// topStoresMinReviews is the review floor for the top-stores ranking.
const topStoresMinReviews = 2

// metersPerDegreeLat is the approximate ground distance of one degree of
// latitude, used to size the bounding box of the proximity query.
const metersPerDegreeLat = 111320.0

// storeService implements the StoreUsecase interface.
type storeService struct {
	txManager repository.TransactionManager
	storeRepo repository.StoreRepository
	photos    service.PhotoService
	discovery config.DiscoveryConfig
	logger    *slog.Logger
}

// StoreServiceParams holds dependencies for storeService, injected by Fx.
type StoreServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	StoreRepo repository.StoreRepository
	Photos    service.PhotoService
	Config    *config.Config
	Logger    *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(params StoreServiceParams) usecase.StoreUsecase {
	discovery := config.DiscoveryConfig{
		NearMaxDistance:  10000,
		NearMaxResults:   10,
		SearchMaxResults: 5,
		StoresPageSize:   4,
		TopStoresLimit:   10,
	}
	if params.Config.Discovery != nil {
		discovery = *params.Config.Discovery
	}

	return &storeService{
		txManager: params.TxManager,
		storeRepo: params.StoreRepo,
		photos:    params.Photos,
		discovery: discovery,
		logger:    params.Logger,
	}
}

func (srv *storeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateStore creates a new store with a unique slug derived from its name.
// The photo, when present, is staged to storage before the record is written.
func (srv *storeService) CreateStore(ctx context.Context, input usecase.CreateStoreInput) (*entity.Store, error) {
	photo, err := srv.stagePhoto(ctx, input.Photo)
	if err != nil {
		return nil, err
	}

	store := &entity.Store{
		Name:        input.Name,
		Description: input.Description,
		Tags:        dedupeTags(input.Tags),
		Location:    input.Location,
		Photo:       photo,
		AuthorID:    input.AuthorID,
	}

	// Slug assignment and insert share a transaction to narrow the window
	// for duplicate suffixes under concurrent creates.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()

		assigned, slugErr := assignSlug(ctx, storeRepo, store.Name, uuid.Nil)
		if slugErr != nil {
			return slugErr
		}
		store.Slug = assigned

		return storeRepo.Create(ctx, store)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Store created",
		slog.Any("storeID", store.ID),
		slog.String("slug", store.Slug),
	)

	return store, nil
}

// UpdateStore edits an existing store. Only the author may edit, and the
// slug is recomputed only when the name actually changed.
func (srv *storeService) UpdateStore(ctx context.Context, input usecase.UpdateStoreInput) (*entity.Store, error) {
	photo, err := srv.stagePhoto(ctx, input.Photo)
	if err != nil {
		return nil, err
	}

	var updated *entity.Store
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()

		store, findErr := storeRepo.FindByID(ctx, input.StoreID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrStoreNotFound) {
				return domainerrors.ErrStoreNotFound
			}

			return errors.Wrap(findErr, "failed to find store for update")
		}

		if !store.OwnedBy(input.EditorID) {
			return domainerrors.ErrNotStoreOwner
		}

		if input.Name != store.Name {
			assigned, slugErr := assignSlug(ctx, storeRepo, input.Name, store.ID)
			if slugErr != nil {
				return slugErr
			}
			store.Slug = assigned
		}

		store.Name = input.Name
		store.Description = input.Description
		store.Tags = dedupeTags(input.Tags)
		store.Location = input.Location
		if photo != "" {
			store.Photo = photo
		}

		if updateErr := storeRepo.Update(ctx, store); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update store")
		}

		updated = store

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Store updated",
		slog.Any("storeID", updated.ID),
		slog.String("slug", updated.Slug),
	)

	return updated, nil
}

// GetStoreBySlug retrieves a single store by its slug, reviews included.
func (srv *storeService) GetStoreBySlug(ctx context.Context, slugValue string) (*entity.Store, error) {
	store, err := srv.storeRepo.FindBySlug(ctx, slugValue)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by slug")
	}

	return store, nil
}

// GetStoreForEdit retrieves a store for its edit form, enforcing ownership.
func (srv *storeService) GetStoreForEdit(ctx context.Context, storeID, editorID uuid.UUID) (*entity.Store, error) {
	store, err := srv.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store for edit")
	}

	if !store.OwnedBy(editorID) {
		return nil, domainerrors.ErrNotStoreOwner
	}

	return store, nil
}

// ListStores returns one page of stores, newest first.
func (srv *storeService) ListStores(ctx context.Context, page int) (*usecase.StorePage, error) {
	if page < 1 {
		page = 1
	}

	limit := srv.discovery.StoresPageSize
	offset := (page - 1) * limit

	stores, total, err := srv.storeRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	pages := int(math.Ceil(float64(total) / float64(limit)))

	return &usecase.StorePage{
		Stores: stores,
		Page:   page,
		Pages:  pages,
		Total:  total,
	}, nil
}

// StoresByTag returns the tag navigation view: all tag counts plus the
// stores carrying the selected tag (or any tag when none is selected).
func (srv *storeService) StoresByTag(ctx context.Context, tag string) (*usecase.TagPage, error) {
	tags, err := srv.storeRepo.TagCounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate tags")
	}

	stores, err := srv.storeRepo.FindByTag(ctx, tag)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find stores by tag")
	}

	return &usecase.TagPage{
		Tag:    tag,
		Tags:   tags,
		Stores: stores,
	}, nil
}

// TopStores ranks stores by mean review rating.
func (srv *storeService) TopStores(ctx context.Context) ([]*entity.RankedStore, error) {
	ranked, err := srv.storeRepo.TopStores(ctx, topStoresMinReviews, srv.discovery.TopStoresLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to rank stores")
	}

	return ranked, nil
}

// NearbyStores returns the stores closest to a point, nearest first. A
// coarse bounding-box query narrows the candidates, then the precise
// haversine distance filters and orders them.
func (srv *storeService) NearbyStores(ctx context.Context, lng, lat float64) ([]*entity.NearbyStore, error) {
	maxDistance := srv.discovery.NearMaxDistance

	latDelta := maxDistance / metersPerDegreeLat
	lngDelta := latDelta
	if cosLat := math.Cos(lat * math.Pi / 180); cosLat > 0.01 {
		lngDelta = latDelta / cosLat
	}

	candidates, err := srv.storeRepo.FindWithinBox(ctx, lng-lngDelta, lat-latDelta, lng+lngDelta, lat+latDelta)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find nearby candidates")
	}

	origin := orb.Point{lng, lat}

	type scored struct {
		store    *entity.Store
		distance float64
	}

	within := make([]scored, 0, len(candidates))
	for _, store := range candidates {
		distance := geo.DistanceHaversine(origin, store.Location.Point())
		if distance <= maxDistance {
			within = append(within, scored{store: store, distance: distance})
		}
	}

	sort.Slice(within, func(i, j int) bool {
		return within[i].distance < within[j].distance
	})

	limit := srv.discovery.NearMaxResults
	if len(within) > limit {
		within = within[:limit]
	}

	nearby := make([]*entity.NearbyStore, 0, len(within))
	for _, candidate := range within {
		nearby = append(nearby, &entity.NearbyStore{
			Slug:        candidate.store.Slug,
			Name:        candidate.store.Name,
			Description: candidate.store.Description,
			Location:    candidate.store.Location,
			Photo:       candidate.store.Photo,
		})
	}

	return nearby, nil
}

// SearchStores runs the free-text search over store names and descriptions.
func (srv *storeService) SearchStores(ctx context.Context, query string) ([]*entity.Store, error) {
	if query == "" {
		return []*entity.Store{}, nil
	}

	stores, err := srv.storeRepo.Search(ctx, query, srv.discovery.SearchMaxResults)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search stores")
	}

	return stores, nil
}

// stagePhoto processes an uploaded photo and returns the stored filename,
// or "" when no photo was uploaded.
func (srv *storeService) stagePhoto(ctx context.Context, upload *usecase.PhotoUpload) (string, error) {
	if upload == nil {
		return "", nil
	}

	filename, err := srv.photos.Process(ctx, upload.Reader, upload.ContentType)
	if err != nil {
		return "", err
	}

	return filename, nil
}

// assignSlug derives a slug from the store name and disambiguates it with a
// numeric suffix when other stores already match the slug family.
func assignSlug(ctx context.Context, storeRepo repository.StoreRepository, name string, excludeID uuid.UUID) (string, error) {
	base := slug.Make(name)

	count, err := storeRepo.CountSlugMatches(ctx, base, excludeID)
	if err != nil {
		return "", errors.Wrap(err, "failed to count slug matches")
	}
	if count == 0 {
		return base, nil
	}

	return fmt.Sprintf("%s-%d", base, count+1), nil
}

// dedupeTags drops repeated tags while keeping first-seen order. The tag
// rows share a composite key with the store, so a repeated submission must
// collapse before the write.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return tags
	}

	seen := make(map[string]struct{}, len(tags))
	deduped := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		deduped = append(deduped, tag)
	}

	return deduped
}
