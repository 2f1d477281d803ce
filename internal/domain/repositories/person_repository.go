package repositories

import (
	"context"

	"github.com/google/uuid"

	"dragon-roster.backend/internal/domain/entities"
)

// PersonRepository defines person data operations
type PersonRepository interface {
	Create(ctx context.Context, person *entities.Person) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Person, error)
	List(ctx context.Context, filter entities.PersonFilter) ([]*entities.Person, int64, error)
	Update(ctx context.Context, person *entities.Person) error
	// Delete removes the person, cascading memberships and freeing seats
	Delete(ctx context.Context, id uuid.UUID) error
}
