package usecases

import (
	"context"

	"github.com/google/uuid"

	"dragon-roster.backend/internal/domain/entities"
	domainerrors "dragon-roster.backend/internal/domain/errors"
	"dragon-roster.backend/internal/domain/repositories"
)

// TrainingUsecase handles training sessions
type TrainingUsecase struct {
	trainingRepo repositories.TrainingRepository
	teamRepo     repositories.TeamRepository
	locationRepo repositories.LocationRepository
	uow          repositories.UnitOfWork
}

func NewTrainingUsecase(
	trainingRepo repositories.TrainingRepository,
	teamRepo repositories.TeamRepository,
	locationRepo repositories.LocationRepository,
	uow repositories.UnitOfWork,
) *TrainingUsecase {
	return &TrainingUsecase{
		trainingRepo: trainingRepo,
		teamRepo:     teamRepo,
		locationRepo: locationRepo,
		uow:          uow,
	}
}

// ValidateLocation requires the location to belong to the training's team.
func ValidateLocation(teamID uuid.UUID, location *entities.Location) error {
	if location.TeamID != teamID {
		return domainerrors.Validation("location", domainerrors.MsgLocationWrongTeam)
	}
	return nil
}

func (u *TrainingUsecase) Create(ctx context.Context, input *entities.TrainingInput) (*entities.Training, error) {
	training := &entities.Training{}
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.apply(txCtx, training, input, false); err != nil {
			return err
		}
		return u.trainingRepo.Create(txCtx, training)
	})
	if err != nil {
		return nil, err
	}
	return u.trainingRepo.GetByID(ctx, training.ID)
}

func (u *TrainingUsecase) Get(ctx context.Context, id int64) (*entities.Training, error) {
	return u.trainingRepo.GetByID(ctx, id)
}

func (u *TrainingUsecase) List(ctx context.Context, filter entities.TrainingFilter) ([]*entities.Training, int64, error) {
	return u.trainingRepo.List(ctx, filter)
}

// Update checks the merged team/location pair, so patching either side alone
// is validated against the stored other side. The location row is locked
// until the write commits.
func (u *TrainingUsecase) Update(ctx context.Context, id int64, input *entities.TrainingInput, partial bool) (*entities.Training, error) {
	training, err := u.trainingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.apply(txCtx, training, input, partial); err != nil {
			return err
		}
		return u.trainingRepo.Update(txCtx, training)
	})
	if err != nil {
		return nil, err
	}
	return u.trainingRepo.GetByID(ctx, id)
}

// Delete removes the training together with its lineup and seats.
func (u *TrainingUsecase) Delete(ctx context.Context, id int64) error {
	return u.trainingRepo.Delete(ctx, id)
}

func (u *TrainingUsecase) apply(ctx context.Context, training *entities.Training, input *entities.TrainingInput, partial bool) error {
	errs := fieldErrors{}
	errs.requirePresent("team", input.Team != nil, !partial)
	errs.requirePresent("location", input.Location != nil, !partial)
	errs.requirePresent("start_at", input.StartAt != nil, !partial)

	if input.Team != nil {
		if _, err := resolveRef(errs, "team", *input.Team, func() (*entities.Team, error) {
			return u.teamRepo.GetByID(ctx, *input.Team)
		}); err != nil {
			return err
		}
	}

	locationID := training.LocationID
	if input.Location != nil {
		locationID = *input.Location
	}
	var location *entities.Location
	if locationID != 0 {
		loc, err := resolveRef(errs, "location", locationID, func() (*entities.Location, error) {
			return u.locationRepo.GetByID(u.uow.WithLock(ctx), locationID)
		})
		if err != nil {
			return err
		}
		location = loc
	}
	if err := errs.err(); err != nil {
		return err
	}

	if input.Team != nil {
		training.TeamID = *input.Team
	}
	if input.Location != nil {
		training.LocationID = *input.Location
	}
	if input.StartAt != nil {
		training.StartAt = input.StartAt.UTC()
	}
	if location != nil {
		return ValidateLocation(training.TeamID, location)
	}
	return nil
}
