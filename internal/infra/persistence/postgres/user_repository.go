// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storemap/internal/domain/entity"
	domainerrors "storemap/internal/domain/errors"
	"storemap/internal/domain/repository"
	"storemap/internal/infra/persistence/model"
)

// userRepository implements the domain's UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, hearts included.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Hearts").
		Where("id = ?", id).
		First(&userM).Error

	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their normalized email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Hearts").
		Where("email = ?", entity.NormalizeEmail(email)).
		First(&userM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// FindByResetToken retrieves the user holding the given reset token with an
// expiry after the given instant. Unknown and expired tokens are
// indistinguishable to the caller.
func (repo *userRepository) FindByResetToken(ctx context.Context, token string, after time.Time) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Hearts").
		Where("reset_token = ? AND reset_token_expires > ?", token, after).
		First(&userM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by reset token")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user entity, reset-token fields included.
// Save writes every column, so clearing a pending reset persists as NULL.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Omit("Hearts").Save(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// AddHeart adds a store to the user's favorite set. The conflict clause on
// the composite key makes re-adding a present store a no-op.
func (repo *userRepository) AddHeart(ctx context.Context, userID, storeID uuid.UUID) error {
	heart := model.UserHeartModel{UserID: userID, StoreID: storeID}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&heart).Error

	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrStoreNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add heart")
	}

	return nil
}

// RemoveHeart removes a store from the user's favorite set.
func (repo *userRepository) RemoveHeart(ctx context.Context, userID, storeID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Delete(&model.UserHeartModel{}).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to remove heart")
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	hearts := make([]uuid.UUID, 0, len(data.Hearts))
	for _, heart := range data.Hearts {
		hearts = append(hearts, heart.StoreID)
	}

	user := &entity.User{
		ID:        data.ID,
		Email:     data.Email,
		Name:      data.Name,
		Hearts:    hearts,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}

	if data.ResetToken != nil {
		user.ResetToken = *data.ResetToken
	}
	if data.ResetTokenExpires != nil {
		user.ResetTokenExpires = *data.ResetTokenExpires
	}

	return user
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	userM := &model.UserModel{
		ID:        data.ID,
		Email:     entity.NormalizeEmail(data.Email),
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
	}

	if data.ResetToken != "" {
		token := data.ResetToken
		expires := data.ResetTokenExpires
		userM.ResetToken = &token
		userM.ResetTokenExpires = &expires
	}

	return userM
}
