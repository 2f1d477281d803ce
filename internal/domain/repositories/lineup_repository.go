package repositories

import (
	"context"

	"github.com/google/uuid"

	"dragon-roster.backend/internal/domain/entities"
)

// LineupRepository defines lineup header operations. Reads return the
// training and the ordered seat chart.
type LineupRepository interface {
	Create(ctx context.Context, lineup *entities.Lineup) error
	GetByID(ctx context.Context, id int64) (*entities.Lineup, error)
	ExistsForTraining(ctx context.Context, trainingID int64) (bool, error)
	List(ctx context.Context, filter entities.LineupFilter) ([]*entities.Lineup, int64, error)
	UpdateState(ctx context.Context, id int64, state entities.LineupState) error
	Delete(ctx context.Context, id int64) error
}

// LineupSeatRepository defines seat operations
type LineupSeatRepository interface {
	Create(ctx context.Context, seat *entities.LineupSeat) error
	// GetByID honours UnitOfWork.WithLock on the context
	GetByID(ctx context.Context, id int64) (*entities.LineupSeat, error)
	List(ctx context.Context, filter entities.LineupSeatFilter) ([]*entities.LineupSeat, int64, error)
	// ListByLineup returns seats ordered by side then seat number
	ListByLineup(ctx context.Context, lineupID int64) ([]*entities.LineupSeat, error)
	Update(ctx context.Context, seat *entities.LineupSeat) error
	Delete(ctx context.Context, id int64) error

	SeatTaken(ctx context.Context, lineupID int64, side entities.SeatSide, seatNumber int, excludeID *int64) (bool, error)
	PersonSeated(ctx context.Context, lineupID int64, personID uuid.UUID, excludeID *int64) (bool, error)
	// SetPerson replaces the occupant of a seat; nil frees it
	SetPerson(ctx context.Context, seatID int64, personID *uuid.UUID) error
	// ClearPerson frees every seat of the lineup held by personID except exceptSeatID
	ClearPerson(ctx context.Context, lineupID int64, personID uuid.UUID, exceptSeatID int64) error
}
