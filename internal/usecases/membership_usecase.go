package usecases

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dragon-roster.backend/internal/domain/entities"
	domainerrors "dragon-roster.backend/internal/domain/errors"
	"dragon-roster.backend/internal/domain/repositories"
	"dragon-roster.backend/pkg/logger"
	"dragon-roster.backend/pkg/utils"
)

// MembershipUsecase links people to teams and guards team capacity
type MembershipUsecase struct {
	membershipRepo repositories.MembershipRepository
	personRepo     repositories.PersonRepository
	teamRepo       repositories.TeamRepository
	uow            repositories.UnitOfWork
}

func NewMembershipUsecase(
	membershipRepo repositories.MembershipRepository,
	personRepo repositories.PersonRepository,
	teamRepo repositories.TeamRepository,
	uow repositories.UnitOfWork,
) *MembershipUsecase {
	return &MembershipUsecase{
		membershipRepo: membershipRepo,
		personRepo:     personRepo,
		teamRepo:       teamRepo,
		uow:            uow,
	}
}

// ValidateCapacity fails when the team already holds max_members
// memberships, not counting excludeID. Call it inside a unit of work so the
// team row lock covers the following write.
func (u *MembershipUsecase) ValidateCapacity(ctx context.Context, teamID uuid.UUID, excludeID *uuid.UUID) error {
	team, err := u.teamRepo.GetByID(u.uow.WithLock(ctx), teamID)
	if err != nil {
		return err
	}
	count, err := u.membershipRepo.CountByTeam(ctx, teamID, excludeID)
	if err != nil {
		return err
	}
	if count >= int64(team.MaxMembers) {
		logger.Warn(ctx, "Team at capacity",
			zap.String("team_id", teamID.String()),
			zap.Int64("members", count),
			zap.Int("max_members", team.MaxMembers),
		)
		return domainerrors.Capacity(team.MaxMembers)
	}
	return nil
}

func (u *MembershipUsecase) Create(ctx context.Context, input *entities.MembershipInput) (*entities.Membership, error) {
	membership := &entities.Membership{
		ID:   utils.GenerateUUIDv7(),
		Role: entities.MembershipRolePlayer,
	}
	if err := u.apply(ctx, membership, input, false); err != nil {
		return nil, err
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.ValidateCapacity(txCtx, membership.TeamID, nil); err != nil {
			return err
		}
		return u.membershipRepo.Create(txCtx, membership)
	})
	if err != nil {
		return nil, err
	}
	return u.membershipRepo.GetByID(ctx, membership.ID)
}

func (u *MembershipUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Membership, error) {
	return u.membershipRepo.GetByID(ctx, id)
}

func (u *MembershipUsecase) List(ctx context.Context, filter entities.MembershipFilter) ([]*entities.Membership, int64, error) {
	return u.membershipRepo.List(ctx, filter)
}

func (u *MembershipUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.MembershipInput, partial bool) (*entities.Membership, error) {
	membership, err := u.membershipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.apply(ctx, membership, input, partial); err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.ValidateCapacity(txCtx, membership.TeamID, &membership.ID); err != nil {
			return err
		}
		return u.membershipRepo.Update(txCtx, membership)
	})
	if err != nil {
		return nil, err
	}
	return u.membershipRepo.GetByID(ctx, id)
}

func (u *MembershipUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.membershipRepo.Delete(ctx, id)
}

func (u *MembershipUsecase) apply(ctx context.Context, membership *entities.Membership, input *entities.MembershipInput, partial bool) error {
	errs := fieldErrors{}
	errs.requirePresent("person", input.Person != nil, !partial)
	errs.requirePresent("team", input.Team != nil, !partial)
	if input.Role != nil && !input.Role.IsValid() {
		errs.add("role", domainerrors.MsgInvalidChoice(int(*input.Role)))
	}

	if input.Person != nil {
		if _, err := resolveRef(errs, "person", *input.Person, func() (*entities.Person, error) {
			return u.personRepo.GetByID(ctx, *input.Person)
		}); err != nil {
			return err
		}
	}
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

	if input.Person != nil {
		membership.PersonID = *input.Person
	}
	if input.Team != nil {
		membership.TeamID = *input.Team
	}
	if input.Role != nil {
		membership.Role = *input.Role
	}
	return nil
}
