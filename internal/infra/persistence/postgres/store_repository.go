// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storemap/internal/domain/entity"
	domainerrors "storemap/internal/domain/errors"
	"storemap/internal/domain/repository"
	"storemap/internal/infra/persistence/model"
)

// searchVector is the expression full-text search runs against. Name and
// description are weighted so name hits rank first.
const searchVector = "setweight(to_tsvector('english', coalesce(stores.name, '')), 'A') || " +
	"setweight(to_tsvector('english', coalesce(stores.description, '')), 'B')"

// storeRepository implements the domain's StoreRepository interface using GORM.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{db: db}
}

// Create persists a new store entity, tags included.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Create(storeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			// Lost a slug race; the caller recomputes and retries.
			return domainerrors.NewDatabaseExecuteError(err, "slug already taken")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	store.ID = storeM.ID
	store.CreatedAt = storeM.CreatedAt
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// Update modifies an existing store entity, replacing its tag set. Tag rows
// are rewritten wholesale; callers run this inside a transaction when the
// update must be atomic with other writes.
func (repo *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Omit("Tags", "Reviews").Save(storeM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update store")
	}

	if err := repo.db.WithContext(ctx).
		Where("store_id = ?", store.ID).
		Delete(&model.StoreTagModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear store tags")
	}

	if len(storeM.Tags) > 0 {
		if err := repo.db.WithContext(ctx).Create(&storeM.Tags).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to write store tags")
		}
	}

	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// FindByID retrieves a single store by its unique ID, tags included.
func (repo *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var storeM model.StoreModel
	err := repo.db.WithContext(ctx).
		Preload("Tags").
		Where("id = ?", id).
		First(&storeM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by id")
	}

	return toStoreDomain(&storeM), nil
}

// FindBySlug retrieves a single store by its slug with its reviews and
// their authors joined in, newest review first.
func (repo *storeRepository) FindBySlug(ctx context.Context, slug string) (*entity.Store, error) {
	var storeM model.StoreModel
	err := repo.db.WithContext(ctx).
		Preload("Tags").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.created_at DESC")
		}).
		Preload("Reviews.Author").
		Where("slug = ?", slug).
		First(&storeM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by slug")
	}

	return toStoreDomain(&storeM), nil
}

// FindByIDs retrieves the stores whose IDs are in the given set.
func (repo *storeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Store, error) {
	if len(ids) == 0 {
		return []*entity.Store{}, nil
	}

	var storeMs []model.StoreModel
	err := repo.db.WithContext(ctx).
		Preload("Tags").
		Where("id IN ?", ids).
		Find(&storeMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find stores by ids")
	}

	return toStoreDomains(storeMs), nil
}

// List returns one page of stores ordered by creation time descending,
// along with the total store count.
func (repo *storeRepository) List(ctx context.Context, offset, limit int) ([]*entity.Store, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.StoreModel{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count stores")
	}

	var storeMs []model.StoreModel
	err := repo.db.WithContext(ctx).
		Preload("Tags").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&storeMs).Error

	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list stores")
	}

	return toStoreDomains(storeMs), total, nil
}

// FindByTag returns all stores carrying the given tag, newest first. An
// empty tag matches stores carrying any tag at all.
func (repo *storeRepository) FindByTag(ctx context.Context, tag string) ([]*entity.Store, error) {
	query := repo.db.WithContext(ctx).
		Preload("Tags").
		Distinct("stores.*").
		Joins("JOIN store_tags ON store_tags.store_id = stores.id").
		Order("stores.created_at DESC")
	if tag != "" {
		query = query.Where("store_tags.tag = ?", tag)
	}

	var storeMs []model.StoreModel
	err := query.Find(&storeMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find stores by tag")
	}

	return toStoreDomains(storeMs), nil
}

// CountSlugMatches counts stores whose slug is the given slug or a numbered
// variant of it, excluding the given store ID (uuid.Nil for creations).
func (repo *storeRepository) CountSlugMatches(ctx context.Context, slug string, excludeID uuid.UUID) (int64, error) {
	pattern := fmt.Sprintf("^%s(-[0-9]*)?$", regexp.QuoteMeta(slug))

	query := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Where("slug ~* ?", pattern)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count slug matches")
	}

	return count, nil
}

// TagCounts computes the distinct tags across all stores with the number of
// stores per tag, count descending.
func (repo *storeRepository) TagCounts(ctx context.Context) ([]*entity.TagCount, error) {
	var rows []*entity.TagCount
	err := repo.db.WithContext(ctx).
		Model(&model.StoreTagModel{}).
		Select("tag, COUNT(*) AS count").
		Group("tag").
		Order("count DESC, tag ASC").
		Scan(&rows).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate tag counts")
	}

	return rows, nil
}

// TopStores ranks stores with at least minReviews reviews by mean rating
// descending, up to limit rows.
func (repo *storeRepository) TopStores(ctx context.Context, minReviews, limit int) ([]*entity.RankedStore, error) {
	var rows []*entity.RankedStore
	err := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Select("stores.id, stores.name, stores.slug, stores.photo, "+
			"COUNT(reviews.id) AS review_count, AVG(reviews.rating) AS average_rating").
		Joins("JOIN reviews ON reviews.store_id = stores.id").
		Group("stores.id").
		Having("COUNT(reviews.id) >= ?", minReviews).
		Order("average_rating DESC").
		Limit(limit).
		Scan(&rows).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to rank top stores")
	}

	return rows, nil
}

// FindWithinBox returns stores whose location falls inside the given
// coordinate bounds. The precise distance filter runs on the caller.
func (repo *storeRepository) FindWithinBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]*entity.Store, error) {
	var storeMs []model.StoreModel
	err := repo.db.WithContext(ctx).
		Where("longitude BETWEEN ? AND ?", minLng, maxLng).
		Where("latitude BETWEEN ? AND ?", minLat, maxLat).
		Find(&storeMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find stores within box")
	}

	return toStoreDomains(storeMs), nil
}

// Search returns up to limit stores matching the free-text query over name
// and description, relevance descending.
func (repo *storeRepository) Search(ctx context.Context, query string, limit int) ([]*entity.Store, error) {
	var storeMs []model.StoreModel
	err := repo.db.WithContext(ctx).
		Where(searchVector+" @@ plainto_tsquery('english', ?)", query).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "ts_rank(" + searchVector + ", plainto_tsquery('english', ?)) DESC",
			Vars:               []any{query},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&storeMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to search stores")
	}

	return toStoreDomains(storeMs), nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toStoreDomain converts a GORM StoreModel to a domain Store entity.
func toStoreDomain(data *model.StoreModel) *entity.Store {
	if data == nil {
		return nil
	}

	tags := make([]string, 0, len(data.Tags))
	for _, tag := range data.Tags {
		tags = append(tags, tag.Tag)
	}

	reviews := make([]*entity.Review, 0, len(data.Reviews))
	for i := range data.Reviews {
		reviews = append(reviews, toReviewDomain(&data.Reviews[i]))
	}

	return &entity.Store{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		Description: data.Description,
		Tags:        tags,
		Location: entity.Location{
			Longitude: data.Longitude,
			Latitude:  data.Latitude,
			Address:   data.Address,
		},
		Photo:     data.Photo,
		AuthorID:  data.AuthorID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
		Reviews:   reviews,
	}
}

func toStoreDomains(data []model.StoreModel) []*entity.Store {
	stores := make([]*entity.Store, 0, len(data))
	for i := range data {
		stores = append(stores, toStoreDomain(&data[i]))
	}

	return stores
}

// fromStoreDomain converts a domain Store entity to a GORM StoreModel for persistence.
// Reviews are a read-time join and never written through the store.
func fromStoreDomain(data *entity.Store) *model.StoreModel {
	if data == nil {
		return nil
	}

	tags := make([]model.StoreTagModel, 0, len(data.Tags))
	for _, tag := range data.Tags {
		tags = append(tags, model.StoreTagModel{StoreID: data.ID, Tag: tag})
	}

	return &model.StoreModel{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		Description: data.Description,
		Longitude:   data.Location.Longitude,
		Latitude:    data.Location.Latitude,
		Address:     data.Location.Address,
		Photo:       data.Photo,
		AuthorID:    data.AuthorID,
		CreatedAt:   data.CreatedAt,
		Tags:        tags,
	}
}
