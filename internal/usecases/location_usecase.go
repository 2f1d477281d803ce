package usecases

import (
	"context"

	"dragon-roster.backend/internal/domain/entities"
	domainerrors "dragon-roster.backend/internal/domain/errors"
	"dragon-roster.backend/internal/domain/repositories"
)

// LocationUsecase handles training venues
type LocationUsecase struct {
	locationRepo repositories.LocationRepository
	teamRepo     repositories.TeamRepository
	trainingRepo repositories.TrainingRepository
	uow          repositories.UnitOfWork
}

func NewLocationUsecase(
	locationRepo repositories.LocationRepository,
	teamRepo repositories.TeamRepository,
	trainingRepo repositories.TrainingRepository,
	uow repositories.UnitOfWork,
) *LocationUsecase {
	return &LocationUsecase{
		locationRepo: locationRepo,
		teamRepo:     teamRepo,
		trainingRepo: trainingRepo,
		uow:          uow,
	}
}

func (u *LocationUsecase) Create(ctx context.Context, input *entities.LocationInput) (*entities.Location, error) {
	location := &entities.Location{}
	if err := u.apply(ctx, location, input, false); err != nil {
		return nil, err
	}
	if err := u.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return u.locationRepo.GetByID(ctx, location.ID)
}

func (u *LocationUsecase) Get(ctx context.Context, id int64) (*entities.Location, error) {
	return u.locationRepo.GetByID(ctx, id)
}

func (u *LocationUsecase) List(ctx context.Context, filter entities.LocationFilter) ([]*entities.Location, int64, error) {
	return u.locationRepo.List(ctx, filter)
}

// Update refuses to move a location to another team while trainings of its
// current team still use it, which would break the training/location rule.
// The location row stays locked from the check to the write; training
// writes take the same lock.
func (u *LocationUsecase) Update(ctx context.Context, id int64, input *entities.LocationInput, partial bool) (*entities.Location, error) {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		location, err := u.locationRepo.GetByID(u.uow.WithLock(txCtx), id)
		if err != nil {
			return err
		}
		if err := u.apply(txCtx, location, input, partial); err != nil {
			return err
		}

		stranded, err := u.trainingRepo.CountByLocationOutsideTeam(txCtx, location.ID, location.TeamID)
		if err != nil {
			return err
		}
		if stranded > 0 {
			return domainerrors.Validation("team", domainerrors.MsgLocationTeamInUse)
		}
		return u.locationRepo.Update(txCtx, location)
	})
	if err != nil {
		return nil, err
	}
	return u.locationRepo.GetByID(ctx, id)
}

// Delete fails with a conflict while any training uses the location.
func (u *LocationUsecase) Delete(ctx context.Context, id int64) error {
	return u.locationRepo.Delete(ctx, id)
}

func (u *LocationUsecase) apply(ctx context.Context, location *entities.Location, input *entities.LocationInput, partial bool) error {
	errs := fieldErrors{}
	errs.requirePresent("team", input.Team != nil, !partial)
	errs.requireText("name", input.Name, !partial)
	errs.requirePresent("lat", input.Lat != nil, !partial)
	errs.requirePresent("lon", input.Lon != nil, !partial)
	checkRange(errs, "lat", input.Lat, -90, 90)
	checkRange(errs, "lon", input.Lon, -180, 180)

	if input.Team != nil {
		if _, err := resolveRef(errs, "team", *input.Team, func() (*entities.Team, error) {
			return u.teamRepo.GetByID(ctx, *input.Team)
		}); err != nil {
			return err
		}
	}
	if err := errs.err(); err != nil {
		return err
	}

	if input.Team != nil {
		location.TeamID = *input.Team
	}
	if input.Name != nil {
		location.Name = *input.Name
	}
	if input.Lat != nil {
		location.Lat = *input.Lat
	}
	if input.Lon != nil {
		location.Lon = *input.Lon
	}
	return nil
}

func checkRange(errs fieldErrors, field string, v *float64, lo, hi float64) {
	if v == nil {
		return
	}
	if *v < lo {
		errs.add(field, domainerrors.MsgMinValue(lo))
	}
	if *v > hi {
		errs.add(field, domainerrors.MsgMaxValue(hi))
	}
}
