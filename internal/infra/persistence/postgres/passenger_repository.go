package postgres

import (
	"context"

	"rideauth/internal/domain/entity"
	domainerrors "rideauth/internal/domain/errors"
	"rideauth/internal/domain/repository"
	"rideauth/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// passengerRepository implements the domain PassengerRepository interface
// using GORM.
type passengerRepository struct {
	db *gorm.DB
}

// NewPassengerRepository is the constructor for passengerRepository. It
// returns the repository as a domain interface, adhering to dependency
// inversion.
func NewPassengerRepository(db *gorm.DB) repository.PassengerRepository {
	return &passengerRepository{db: db}
}

// FindByEmail retrieves a single passenger by their email address.
func (repo *passengerRepository) FindByEmail(ctx context.Context, email string) (*entity.Passenger, error) {
	var passengerM model.PassengerModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&passengerM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPassengerNotFound
		}

		return nil, errors.Wrap(err, "failed to find passenger by email")
	}

	return toPassengerDomain(&passengerM), nil
}

// Create persists a new passenger entity. Uniqueness conflicts on the email
// column are converted into the domain EmailTaken error so concurrent
// signups surface as a conflict, not a crash.
func (repo *passengerRepository) Create(ctx context.Context, passenger *entity.Passenger) error {
	passengerM := fromPassengerDomain(passenger)

	if err := repo.db.WithContext(ctx).Create(passengerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrPassengerCreationFailed.WrapMessage("missing required passenger information")
		}

		return errors.Wrap(err, "failed to create passenger")
	}

	// Propagate the generated ID and timestamps back to the entity.
	passenger.ID = passengerM.ID
	passenger.CreatedAt = passengerM.CreatedAt
	passenger.UpdatedAt = passengerM.UpdatedAt

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

func toPassengerDomain(data *model.PassengerModel) *entity.Passenger {
	if data == nil {
		return nil
	}

	return &entity.Passenger{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		PhoneNumber:  data.PhoneNumber,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromPassengerDomain(data *entity.Passenger) *model.PassengerModel {
	if data == nil {
		return nil
	}

	return &model.PassengerModel{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		PhoneNumber:  data.PhoneNumber,
	}
}
