package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"dragon-roster.backend/internal/domain/entities"
	domainerrors "dragon-roster.backend/internal/domain/errors"
	"dragon-roster.backend/internal/domain/repositories"
	"dragon-roster.backend/pkg/utils"
)

// TeamUsecase handles teams
type TeamUsecase struct {
	teamRepo          repositories.TeamRepository
	defaultMaxMembers int
}

// NewTeamUsecase creates a team usecase; defaultMaxMembers applies when a
// new team omits max_members.
func NewTeamUsecase(teamRepo repositories.TeamRepository, defaultMaxMembers int) *TeamUsecase {
	return &TeamUsecase{teamRepo: teamRepo, defaultMaxMembers: defaultMaxMembers}
}

func (u *TeamUsecase) Create(ctx context.Context, input *entities.TeamInput) (*entities.Team, error) {
	team := &entities.Team{
		ID:         utils.GenerateUUIDv7(),
		MaxMembers: u.defaultMaxMembers,
	}
	if err := applyTeamInput(team, input, false); err != nil {
		return nil, err
	}
	if err := u.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return u.teamRepo.GetByID(ctx, team.ID)
}

func (u *TeamUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	return u.teamRepo.GetByID(ctx, id)
}

func (u *TeamUsecase) List(ctx context.Context, filter entities.TeamFilter) ([]*entities.Team, int64, error) {
	return u.teamRepo.List(ctx, filter)
}

func (u *TeamUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.TeamInput, partial bool) (*entities.Team, error) {
	team, err := u.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyTeamInput(team, input, partial); err != nil {
		return nil, err
	}
	if err := u.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return u.teamRepo.GetByID(ctx, id)
}

// Delete removes the team with its memberships, locations and trainings.
func (u *TeamUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.teamRepo.Delete(ctx, id)
}

func applyTeamInput(team *entities.Team, input *entities.TeamInput, partial bool) error {
	errs := fieldErrors{}
	errs.requireText("name", input.Name, !partial)
	if input.MaxMembers != nil && *input.MaxMembers < 0 {
		errs.add("max_members", domainerrors.MsgMinValue(0))
	}
	if err := errs.err(); err != nil {
		return err
	}

	if input.Name != nil {
		team.Name = *input.Name
	}
	if input.City.Set {
		team.City = null.StringFromPtr(input.City.Value)
	}
	if input.MaxMembers != nil {
		team.MaxMembers = *input.MaxMembers
	}
	return nil
}
