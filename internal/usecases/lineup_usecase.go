package usecases

import (
	"context"

	"go.uber.org/zap"

	"dragon-roster.backend/internal/config"
	"dragon-roster.backend/internal/domain/entities"
	domainerrors "dragon-roster.backend/internal/domain/errors"
	"dragon-roster.backend/internal/domain/repositories"
	"dragon-roster.backend/pkg/logger"
	"dragon-roster.backend/pkg/metrics"
)

// LineupUsecase owns the lineup lifecycle: one lineup per training, moving
// between Draft and Published.
type LineupUsecase struct {
	lineupRepo   repositories.LineupRepository
	trainingRepo repositories.TrainingRepository
	seatRepo     repositories.LineupSeatRepository
	rules        config.RosterConfig
}

func NewLineupUsecase(
	lineupRepo repositories.LineupRepository,
	trainingRepo repositories.TrainingRepository,
	seatRepo repositories.LineupSeatRepository,
	rules config.RosterConfig,
) *LineupUsecase {
	return &LineupUsecase{
		lineupRepo:   lineupRepo,
		trainingRepo: trainingRepo,
		seatRepo:     seatRepo,
		rules:        rules,
	}
}

func (u *LineupUsecase) Create(ctx context.Context, input *entities.LineupInput) (*entities.Lineup, error) {
	errs := fieldErrors{}
	errs.requirePresent("training", input.Training != nil, true)
	if input.State != nil && !input.State.IsValid() {
		errs.add("state", domainerrors.MsgInvalidChoice(int(*input.State)))
	}
	if input.Training != nil {
		if _, err := resolveRef(errs, "training", *input.Training, func() (*entities.Training, error) {
			return u.trainingRepo.GetByID(ctx, *input.Training)
		}); err != nil {
			return nil, err
		}
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	exists, err := u.lineupRepo.ExistsForTraining(ctx, *input.Training)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.Conflict(domainerrors.MsgLineupExists)
	}

	lineup := &entities.Lineup{
		TrainingID: *input.Training,
		State:      entities.LineupStateDraft,
	}
	if input.State != nil {
		lineup.State = *input.State
	}
	if err := u.lineupRepo.Create(ctx, lineup); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Lineup created",
		zap.Int64("lineup_id", lineup.ID),
		zap.Int64("training_id", lineup.TrainingID),
		zap.String("state", lineup.State.String()),
	)
	return u.lineupRepo.GetByID(ctx, lineup.ID)
}

func (u *LineupUsecase) Get(ctx context.Context, id int64) (*entities.Lineup, error) {
	return u.lineupRepo.GetByID(ctx, id)
}

func (u *LineupUsecase) List(ctx context.Context, filter entities.LineupFilter) ([]*entities.Lineup, int64, error) {
	return u.lineupRepo.List(ctx, filter)
}

// Seats returns the seat chart of a lineup ordered by side then number.
func (u *LineupUsecase) Seats(ctx context.Context, id int64) ([]*entities.LineupSeat, error) {
	if _, err := u.lineupRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return u.seatRepo.ListByLineup(ctx, id)
}

// Update changes the lineup state. The training of a lineup is fixed and
// the seats are left untouched.
func (u *LineupUsecase) Update(ctx context.Context, id int64, input *entities.LineupInput, partial bool) (*entities.Lineup, error) {
	lineup, err := u.lineupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := fieldErrors{}
	errs.requirePresent("training", input.Training != nil, !partial)
	if input.Training != nil && *input.Training != lineup.TrainingID {
		errs.add("training", domainerrors.MsgTrainingFixed)
	}
	if input.State != nil && !lineup.State.CanTransitionTo(*input.State) {
		errs.add("state", domainerrors.MsgInvalidChoice(int(*input.State)))
	}
	if err := errs.err(); err != nil {
		return nil, err
	}
	if input.State == nil || *input.State == lineup.State {
		return lineup, nil
	}

	next := *input.State
	if next == entities.LineupStatePublished && u.rules.RequireFullOnPublish {
		if err := u.checkComplete(ctx, id); err != nil {
			return nil, err
		}
	}
	if err := u.lineupRepo.UpdateState(ctx, id, next); err != nil {
		return nil, err
	}

	metrics.IncLineupTransition(next.String())
	logger.Info(ctx, "Lineup state changed",
		zap.Int64("lineup_id", id),
		zap.String("from", lineup.State.String()),
		zap.String("to", next.String()),
	)
	return u.lineupRepo.GetByID(ctx, id)
}

// Delete removes the lineup and its seats.
func (u *LineupUsecase) Delete(ctx context.Context, id int64) error {
	return u.lineupRepo.Delete(ctx, id)
}

// checkComplete requires seats 1..SeatsPerSide on both sides to be occupied.
func (u *LineupUsecase) checkComplete(ctx context.Context, id int64) error {
	seats, err := u.seatRepo.ListByLineup(ctx, id)
	if err != nil {
		return err
	}
	occupied := make(map[entities.SeatSide]map[int]bool, 2)
	for _, s := range seats {
		if s.PersonID == nil {
			continue
		}
		if occupied[s.Side] == nil {
			occupied[s.Side] = map[int]bool{}
		}
		occupied[s.Side][s.SeatNumber] = true
	}

	missing := 0
	for _, side := range []entities.SeatSide{entities.SeatSideLeft, entities.SeatSideRight} {
		for n := 1; n <= u.rules.SeatsPerSide; n++ {
			if !occupied[side][n] {
				missing++
			}
		}
	}
	if missing > 0 {
		return domainerrors.Validation("state", domainerrors.MsgLineupIncomplete(missing))
	}
	return nil
}
