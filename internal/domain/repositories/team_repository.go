package repositories

import (
	"context"

	"github.com/google/uuid"

	"dragon-roster.backend/internal/domain/entities"
)

type TeamRepository interface {
	Create(ctx context.Context, team *entities.Team) error
	// GetByID honours UnitOfWork.WithLock on the context
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	List(ctx context.Context, filter entities.TeamFilter) ([]*entities.Team, int64, error)
	Update(ctx context.Context, team *entities.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MembershipRepository defines person-team link operations
type MembershipRepository interface {
	Create(ctx context.Context, membership *entities.Membership) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Membership, error)
	List(ctx context.Context, filter entities.MembershipFilter) ([]*entities.Membership, int64, error)
	Update(ctx context.Context, membership *entities.Membership) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountByTeam counts the team's memberships, ignoring excludeID when set
	CountByTeam(ctx context.Context, teamID uuid.UUID, excludeID *uuid.UUID) (int64, error)
}
