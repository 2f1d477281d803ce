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

// PersonUsecase handles the athlete registry
type PersonUsecase struct {
	personRepo repositories.PersonRepository
}

func NewPersonUsecase(personRepo repositories.PersonRepository) *PersonUsecase {
	return &PersonUsecase{personRepo: personRepo}
}

func (u *PersonUsecase) Create(ctx context.Context, input *entities.PersonInput) (*entities.Person, error) {
	person := &entities.Person{
		ID:   utils.GenerateUUIDv7(),
		Side: entities.PersonSideBoth,
	}
	if err := applyPersonInput(person, input, false); err != nil {
		return nil, err
	}
	if err := u.personRepo.Create(ctx, person); err != nil {
		return nil, err
	}
	return u.personRepo.GetByID(ctx, person.ID)
}

func (u *PersonUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Person, error) {
	return u.personRepo.GetByID(ctx, id)
}

func (u *PersonUsecase) List(ctx context.Context, filter entities.PersonFilter) ([]*entities.Person, int64, error) {
	return u.personRepo.List(ctx, filter)
}

// Update replaces (partial=false) or patches the person.
func (u *PersonUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.PersonInput, partial bool) (*entities.Person, error) {
	person, err := u.personRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyPersonInput(person, input, partial); err != nil {
		return nil, err
	}
	if err := u.personRepo.Update(ctx, person); err != nil {
		return nil, err
	}
	return u.personRepo.GetByID(ctx, id)
}

// Delete removes the person; memberships go with it and seats are freed.
func (u *PersonUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.personRepo.Delete(ctx, id)
}

func applyPersonInput(person *entities.Person, input *entities.PersonInput, partial bool) error {
	errs := fieldErrors{}
	errs.requireText("name", input.Name, !partial)
	errs.requireText("phone", input.Phone, !partial)
	if input.Side != nil && !input.Side.IsValid() {
		errs.add("side", domainerrors.MsgInvalidChoice(int(*input.Side)))
	}
	checkMeasure(errs, "height", input.Height)
	checkMeasure(errs, "weight", input.Weight)
	if err := errs.err(); err != nil {
		return err
	}

	if input.Name != nil {
		person.Name = *input.Name
	}
	if input.Phone != nil {
		person.Phone = *input.Phone
	}
	if input.Height.Set {
		person.Height = null.IntFromPtr(input.Height.Value)
	}
	if input.Weight.Set {
		person.Weight = null.IntFromPtr(input.Weight.Value)
	}
	if input.Side != nil {
		person.Side = *input.Side
	}
	if input.ProfilePictureURL != nil {
		person.ProfilePictureURL = *input.ProfilePictureURL
	}
	return nil
}

func checkMeasure(errs fieldErrors, field string, v entities.Nullable[int]) {
	if !v.Set || v.Value == nil {
		return
	}
	switch {
	case *v.Value < 0:
		errs.add(field, domainerrors.MsgMinValue(0))
	case *v.Value > maxSmallInt:
		errs.add(field, domainerrors.MsgMaxValue(maxSmallInt))
	}
}
