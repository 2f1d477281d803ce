package repositories

import (
	"context"

	"github.com/google/uuid"

	"dragon-roster.backend/internal/domain/entities"
)

type LocationRepository interface {
	Create(ctx context.Context, location *entities.Location) error
	// GetByID honours UnitOfWork.WithLock on the context
	GetByID(ctx context.Context, id int64) (*entities.Location, error)
	List(ctx context.Context, filter entities.LocationFilter) ([]*entities.Location, int64, error)
	Update(ctx context.Context, location *entities.Location) error
	// Delete fails with a conflict while trainings still use the location
	Delete(ctx context.Context, id int64) error
}

type TrainingRepository interface {
	Create(ctx context.Context, training *entities.Training) error
	GetByID(ctx context.Context, id int64) (*entities.Training, error)
	List(ctx context.Context, filter entities.TrainingFilter) ([]*entities.Training, int64, error)
	Update(ctx context.Context, training *entities.Training) error
	// Delete removes the training together with its lineup and seats
	Delete(ctx context.Context, id int64) error
	// CountByLocationOutsideTeam counts trainings at locationID whose team differs from teamID
	CountByLocationOutsideTeam(ctx context.Context, locationID int64, teamID uuid.UUID) (int64, error)
}
