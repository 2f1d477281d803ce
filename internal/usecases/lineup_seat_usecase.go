package usecases

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dragon-roster.backend/internal/domain/entities"
	domainerrors "dragon-roster.backend/internal/domain/errors"
	"dragon-roster.backend/internal/domain/repositories"
	"dragon-roster.backend/pkg/logger"
)

// LineupSeatUsecase enforces the seat rules of a lineup: a seat position is
// taken once and a person sits at most once per lineup.
type LineupSeatUsecase struct {
	seatRepo   repositories.LineupSeatRepository
	lineupRepo repositories.LineupRepository
	personRepo repositories.PersonRepository
	uow        repositories.UnitOfWork
}

func NewLineupSeatUsecase(
	seatRepo repositories.LineupSeatRepository,
	lineupRepo repositories.LineupRepository,
	personRepo repositories.PersonRepository,
	uow repositories.UnitOfWork,
) *LineupSeatUsecase {
	return &LineupSeatUsecase{
		seatRepo:   seatRepo,
		lineupRepo: lineupRepo,
		personRepo: personRepo,
		uow:        uow,
	}
}

func (u *LineupSeatUsecase) Create(ctx context.Context, input *entities.LineupSeatInput) (*entities.LineupSeat, error) {
	seat := &entities.LineupSeat{}
	if err := u.apply(ctx, seat, input, false); err != nil {
		return nil, err
	}
	if err := u.checkFree(ctx, seat, nil); err != nil {
		return nil, err
	}
	if err := u.seatRepo.Create(ctx, seat); err != nil {
		return nil, u.rejected(ctx, seat, err)
	}
	return u.seatRepo.GetByID(ctx, seat.ID)
}

func (u *LineupSeatUsecase) Get(ctx context.Context, id int64) (*entities.LineupSeat, error) {
	return u.seatRepo.GetByID(ctx, id)
}

func (u *LineupSeatUsecase) List(ctx context.Context, filter entities.LineupSeatFilter) ([]*entities.LineupSeat, int64, error) {
	return u.seatRepo.List(ctx, filter)
}

// Update moves or re-occupies a seat. A null person clears the seat without
// deleting it.
func (u *LineupSeatUsecase) Update(ctx context.Context, id int64, input *entities.LineupSeatInput, partial bool) (*entities.LineupSeat, error) {
	seat, err := u.seatRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.apply(ctx, seat, input, partial); err != nil {
		return nil, err
	}
	if err := u.checkFree(ctx, seat, &seat.ID); err != nil {
		return nil, err
	}
	if err := u.seatRepo.Update(ctx, seat); err != nil {
		return nil, u.rejected(ctx, seat, err)
	}
	return u.seatRepo.GetByID(ctx, id)
}

func (u *LineupSeatUsecase) Delete(ctx context.Context, id int64) error {
	return u.seatRepo.Delete(ctx, id)
}

// Assign seats a person here, first vacating any other seat they hold in the
// same lineup. Both writes share one transaction.
func (u *LineupSeatUsecase) Assign(ctx context.Context, id int64, input *entities.SeatAssignInput) (*entities.LineupSeat, error) {
	seat, err := u.seatRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := fieldErrors{}
	errs.requirePresent("person", input.Person.Set, true)
	if input.Person.Value != nil {
		if _, err := resolveRef(errs, "person", *input.Person.Value, func() (*entities.Person, error) {
			return u.personRepo.GetByID(ctx, *input.Person.Value)
		}); err != nil {
			return nil, err
		}
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	personID := input.Person.Value
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if personID != nil {
			if err := u.seatRepo.ClearPerson(txCtx, seat.LineupID, *personID, seat.ID); err != nil {
				return err
			}
		}
		return u.seatRepo.SetPerson(txCtx, seat.ID, personID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Seat assigned",
		zap.Int64("seat_id", seat.ID),
		zap.Int64("lineup_id", seat.LineupID),
		zap.Bool("cleared", personID == nil),
	)
	return u.seatRepo.GetByID(ctx, id)
}

// Swap exchanges the occupants of two seats of one lineup. Both seats are
// re-read under lock inside the transaction, then the first seat is emptied
// before the second is written so the person index never sees a duplicate.
func (u *LineupSeatUsecase) Swap(ctx context.Context, input *entities.SeatSwapInput) ([]*entities.LineupSeat, error) {
	errs := fieldErrors{}
	errs.requirePresent("first", input.First != nil, true)
	errs.requirePresent("second", input.Second != nil, true)
	var first, second *entities.LineupSeat
	var err error
	if input.First != nil {
		if first, err = resolveRef(errs, "first", *input.First, func() (*entities.LineupSeat, error) {
			return u.seatRepo.GetByID(ctx, *input.First)
		}); err != nil {
			return nil, err
		}
	}
	if input.Second != nil {
		if second, err = resolveRef(errs, "second", *input.Second, func() (*entities.LineupSeat, error) {
			return u.seatRepo.GetByID(ctx, *input.Second)
		}); err != nil {
			return nil, err
		}
	}
	if err := errs.err(); err != nil {
		return nil, err
	}
	if first.ID == second.ID {
		return nil, domainerrors.Validation("second", domainerrors.MsgSeatsDistinct)
	}
	if first.LineupID != second.LineupID {
		return nil, domainerrors.Validation("second", domainerrors.MsgSeatsSameLineup)
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)
		a, err := u.seatRepo.GetByID(lockCtx, first.ID)
		if err != nil {
			return err
		}
		b, err := u.seatRepo.GetByID(lockCtx, second.ID)
		if err != nil {
			return err
		}
		if a.LineupID != b.LineupID {
			return domainerrors.Validation("second", domainerrors.MsgSeatsSameLineup)
		}

		if err := u.seatRepo.SetPerson(txCtx, a.ID, nil); err != nil {
			return err
		}
		if err := u.seatRepo.SetPerson(txCtx, b.ID, a.PersonID); err != nil {
			return err
		}
		return u.seatRepo.SetPerson(txCtx, a.ID, b.PersonID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Seats swapped",
		zap.Int64("lineup_id", first.LineupID),
		zap.Int64("first", first.ID),
		zap.Int64("second", second.ID),
	)
	out := make([]*entities.LineupSeat, 0, 2)
	for _, id := range []int64{first.ID, second.ID} {
		s, err := u.seatRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (u *LineupSeatUsecase) apply(ctx context.Context, seat *entities.LineupSeat, input *entities.LineupSeatInput, partial bool) error {
	errs := fieldErrors{}
	errs.requirePresent("lineup", input.Lineup != nil, !partial)
	errs.requirePresent("side", input.Side != nil, !partial)
	errs.requirePresent("seat_number", input.SeatNumber != nil, !partial)
	if input.Side != nil && !input.Side.IsValid() {
		errs.add("side", domainerrors.MsgInvalidChoice(string(*input.Side)))
	}
	if input.SeatNumber != nil {
		switch {
		case *input.SeatNumber < 1:
			errs.add("seat_number", domainerrors.MsgMinValue(1))
		case *input.SeatNumber > maxSmallInt:
			errs.add("seat_number", domainerrors.MsgMaxValue(maxSmallInt))
		}
	}

	if input.Lineup != nil {
		if _, err := resolveRef(errs, "lineup", *input.Lineup, func() (*entities.Lineup, error) {
			return u.lineupRepo.GetByID(ctx, *input.Lineup)
		}); err != nil {
			return err
		}
	}
	if input.Person.Value != nil {
		if _, err := resolveRef(errs, "person", *input.Person.Value, func() (*entities.Person, error) {
			return u.personRepo.GetByID(ctx, *input.Person.Value)
		}); err != nil {
			return err
		}
	}
	if err := errs.err(); err != nil {
		return err
	}

	if input.Lineup != nil {
		seat.LineupID = *input.Lineup
	}
	if input.Side != nil {
		seat.Side = *input.Side
	}
	if input.SeatNumber != nil {
		seat.SeatNumber = *input.SeatNumber
	}
	if input.Person.Set {
		seat.PersonID = input.Person.Value
		seat.Person = nil
	}
	return nil
}

// checkFree runs the seat rules in order: the position first, then the
// person. excludeID skips the seat being updated.
func (u *LineupSeatUsecase) checkFree(ctx context.Context, seat *entities.LineupSeat, excludeID *int64) error {
	taken, err := u.seatRepo.SeatTaken(ctx, seat.LineupID, seat.Side, seat.SeatNumber, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return u.rejected(ctx, seat, domainerrors.Conflict(domainerrors.MsgSeatOccupied))
	}
	if seat.PersonID == nil {
		return nil
	}
	seated, err := u.PersonSeated(ctx, seat.LineupID, *seat.PersonID, excludeID)
	if err != nil {
		return err
	}
	if seated {
		return u.rejected(ctx, seat, domainerrors.Conflict(domainerrors.MsgPersonSeated))
	}
	return nil
}

// PersonSeated reports whether personID already holds a seat in the lineup.
func (u *LineupSeatUsecase) PersonSeated(ctx context.Context, lineupID int64, personID uuid.UUID, excludeID *int64) (bool, error) {
	return u.seatRepo.PersonSeated(ctx, lineupID, personID, excludeID)
}

func (u *LineupSeatUsecase) rejected(ctx context.Context, seat *entities.LineupSeat, err error) error {
	if appErr, ok := domainerrors.As(err); ok && appErr.Code == domainerrors.CodeConflict {
		logger.Warn(ctx, "Seat rejected",
			zap.Int64("lineup_id", seat.LineupID),
			zap.String("side", string(seat.Side)),
			zap.Int("seat_number", seat.SeatNumber),
			zap.String("reason", appErr.Message),
		)
	}
	return err
}
