package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"dragon-roster.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	m.Called(ctx)
	return ctx
}

// newPassThroughUnitOfWork runs every Do inline and hands ctx back from WithLock.
func newPassThroughUnitOfWork() *MockUnitOfWork {
	uow := new(MockUnitOfWork)
	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	uow.On("WithLock", mock.Anything).Return()
	return uow
}

// Mock PersonRepository
type MockPersonRepository struct {
	mock.Mock
}

func (m *MockPersonRepository) Create(ctx context.Context, person *entities.Person) error {
	args := m.Called(ctx, person)
	return args.Error(0)
}

func (m *MockPersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Person), args.Error(1)
}

func (m *MockPersonRepository) List(ctx context.Context, filter entities.PersonFilter) ([]*entities.Person, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Person), args.Get(1).(int64), args.Error(2)
}

func (m *MockPersonRepository) Update(ctx context.Context, person *entities.Person) error {
	args := m.Called(ctx, person)
	return args.Error(0)
}

func (m *MockPersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock TeamRepository
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, team *entities.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) List(ctx context.Context, filter entities.TeamFilter) ([]*entities.Team, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Team), args.Get(1).(int64), args.Error(2)
}

func (m *MockTeamRepository) Update(ctx context.Context, team *entities.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Create(ctx context.Context, membership *entities.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Membership), args.Error(1)
}

func (m *MockMembershipRepository) List(ctx context.Context, filter entities.MembershipFilter) ([]*entities.Membership, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Membership), args.Get(1).(int64), args.Error(2)
}

func (m *MockMembershipRepository) Update(ctx context.Context, membership *entities.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMembershipRepository) CountByTeam(ctx context.Context, teamID uuid.UUID, excludeID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, teamID, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Create(ctx context.Context, location *entities.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id int64) (*entities.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Location), args.Error(1)
}

func (m *MockLocationRepository) List(ctx context.Context, filter entities.LocationFilter) ([]*entities.Location, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Location), args.Get(1).(int64), args.Error(2)
}

func (m *MockLocationRepository) Update(ctx context.Context, location *entities.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock TrainingRepository
type MockTrainingRepository struct {
	mock.Mock
}

func (m *MockTrainingRepository) Create(ctx context.Context, training *entities.Training) error {
	args := m.Called(ctx, training)
	return args.Error(0)
}

func (m *MockTrainingRepository) GetByID(ctx context.Context, id int64) (*entities.Training, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Training), args.Error(1)
}

func (m *MockTrainingRepository) List(ctx context.Context, filter entities.TrainingFilter) ([]*entities.Training, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Training), args.Get(1).(int64), args.Error(2)
}

func (m *MockTrainingRepository) Update(ctx context.Context, training *entities.Training) error {
	args := m.Called(ctx, training)
	return args.Error(0)
}

func (m *MockTrainingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTrainingRepository) CountByLocationOutsideTeam(ctx context.Context, locationID int64, teamID uuid.UUID) (int64, error) {
	args := m.Called(ctx, locationID, teamID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock LineupRepository
type MockLineupRepository struct {
	mock.Mock
}

func (m *MockLineupRepository) Create(ctx context.Context, lineup *entities.Lineup) error {
	args := m.Called(ctx, lineup)
	return args.Error(0)
}

func (m *MockLineupRepository) GetByID(ctx context.Context, id int64) (*entities.Lineup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Lineup), args.Error(1)
}

func (m *MockLineupRepository) ExistsForTraining(ctx context.Context, trainingID int64) (bool, error) {
	args := m.Called(ctx, trainingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLineupRepository) List(ctx context.Context, filter entities.LineupFilter) ([]*entities.Lineup, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Lineup), args.Get(1).(int64), args.Error(2)
}

func (m *MockLineupRepository) UpdateState(ctx context.Context, id int64, state entities.LineupState) error {
	args := m.Called(ctx, id, state)
	return args.Error(0)
}

func (m *MockLineupRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock LineupSeatRepository
type MockLineupSeatRepository struct {
	mock.Mock
}

func (m *MockLineupSeatRepository) Create(ctx context.Context, seat *entities.LineupSeat) error {
	args := m.Called(ctx, seat)
	return args.Error(0)
}

func (m *MockLineupSeatRepository) GetByID(ctx context.Context, id int64) (*entities.LineupSeat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LineupSeat), args.Error(1)
}

func (m *MockLineupSeatRepository) List(ctx context.Context, filter entities.LineupSeatFilter) ([]*entities.LineupSeat, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.LineupSeat), args.Get(1).(int64), args.Error(2)
}

func (m *MockLineupSeatRepository) ListByLineup(ctx context.Context, lineupID int64) ([]*entities.LineupSeat, error) {
	args := m.Called(ctx, lineupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LineupSeat), args.Error(1)
}

func (m *MockLineupSeatRepository) Update(ctx context.Context, seat *entities.LineupSeat) error {
	args := m.Called(ctx, seat)
	return args.Error(0)
}

func (m *MockLineupSeatRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLineupSeatRepository) SeatTaken(ctx context.Context, lineupID int64, side entities.SeatSide, seatNumber int, excludeID *int64) (bool, error) {
	args := m.Called(ctx, lineupID, side, seatNumber, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLineupSeatRepository) PersonSeated(ctx context.Context, lineupID int64, personID uuid.UUID, excludeID *int64) (bool, error) {
	args := m.Called(ctx, lineupID, personID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLineupSeatRepository) SetPerson(ctx context.Context, seatID int64, personID *uuid.UUID) error {
	args := m.Called(ctx, seatID, personID)
	return args.Error(0)
}

func (m *MockLineupSeatRepository) ClearPerson(ctx context.Context, lineupID int64, personID uuid.UUID, exceptSeatID int64) error {
	args := m.Called(ctx, lineupID, personID, exceptSeatID)
	return args.Error(0)
}

func ptr[T any](v T) *T {
	return &v
}
