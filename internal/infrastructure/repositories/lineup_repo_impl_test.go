package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dragon-roster.backend/internal/domain/entities"
	domainerrors "dragon-roster.backend/internal/domain/errors"
)

type lineupFixture struct {
	team     *entities.Team
	location *entities.Location
	training *entities.Training
	lineup   *entities.Lineup
}

func newLineupFixture(t *testing.T, repoDB *gorm.DB) lineupFixture {
	t.Helper()
	team := seedTeam(t, repoDB, "Dragons", 22)
	loc := seedLocation(t, repoDB, team.ID, "Harbour")
	tr := seedTraining(t, repoDB, team.ID, loc.ID, testStart())
	return lineupFixture{team: team, location: loc, training: tr, lineup: seedLineup(t, repoDB, tr.ID)}
}

func TestLineupRepository_OnePerTraining(t *testing.T) {
	db := newRosterDB(t)
	f := newLineupFixture(t, db)
	repo := NewLineupRepository(db)
	ctx := context.Background()

	exists, err := repo.ExistsForTraining(ctx, f.training.ID)
	require.NoError(t, err)
	require.True(t, exists)

	err = repo.Create(ctx, &entities.Lineup{TrainingID: f.training.ID, State: entities.LineupStateDraft})
	require.ErrorIs(t, err, domainerrors.ErrConflict)
	appErr, _ := domainerrors.As(err)
	require.Equal(t, domainerrors.MsgLineupExists, appErr.Message)
}

func TestLineupRepository_SeatsOrderedIndependentOfInsertion(t *testing.T) {
	db := newRosterDB(t)
	f := newLineupFixture(t, db)
	ctx := context.Background()

	anna := seedPerson(t, db, "Anna")
	seedSeat(t, db, f.lineup.ID, entities.SeatSideRight, 2, nil)
	seedSeat(t, db, f.lineup.ID, entities.SeatSideLeft, 3, nil)
	seedSeat(t, db, f.lineup.ID, entities.SeatSideRight, 1, &anna.ID)
	seedSeat(t, db, f.lineup.ID, entities.SeatSideLeft, 1, nil)

	got, err := NewLineupRepository(db).GetByID(ctx, f.lineup.ID)
	require.NoError(t, err)
	require.Equal(t, "Draft", got.StateDisplay)
	require.Equal(t, f.training.ID, got.Training.ID)
	require.Equal(t, "Harbour", got.Training.Location.Name)

	var order []string
	for _, s := range got.Seats {
		order = append(order, string(s.Side)+string(rune('0'+s.SeatNumber)))
	}
	require.Equal(t, []string{"L1", "L3", "R1", "R2"}, order)
	require.Equal(t, "Anna", got.Seats[2].Person.Name)
	require.Nil(t, got.Seats[0].Person)

	seats, err := NewLineupSeatRepository(db).ListByLineup(ctx, f.lineup.ID)
	require.NoError(t, err)
	require.Len(t, seats, 4)
	require.Equal(t, entities.SeatSideLeft, seats[0].Side)
	require.Equal(t, 1, seats[0].SeatNumber)
}

func TestLineupRepository_StateRoundTripLeavesSeats(t *testing.T) {
	db := newRosterDB(t)
	f := newLineupFixture(t, db)
	repo := NewLineupRepository(db)
	ctx := context.Background()

	anna := seedPerson(t, db, "Anna")
	seedSeat(t, db, f.lineup.ID, entities.SeatSideLeft, 1, &anna.ID)
	seedSeat(t, db, f.lineup.ID, entities.SeatSideRight, 1, nil)

	require.NoError(t, repo.UpdateState(ctx, f.lineup.ID, entities.LineupStatePublished))
	got, err := repo.GetByID(ctx, f.lineup.ID)
	require.NoError(t, err)
	require.Equal(t, entities.LineupStatePublished, got.State)
	require.Equal(t, "Published", got.StateDisplay)

	require.NoError(t, repo.UpdateState(ctx, f.lineup.ID, entities.LineupStateDraft))
	got, err = repo.GetByID(ctx, f.lineup.ID)
	require.NoError(t, err)
	require.Equal(t, entities.LineupStateDraft, got.State)
	require.Len(t, got.Seats, 2)
	require.Equal(t, anna.ID, *got.Seats[0].PersonID)

	require.ErrorIs(t, repo.UpdateState(ctx, 4242, entities.LineupStateDraft), domainerrors.ErrNotFound)
}

func TestLineupRepository_ListFilters(t *testing.T) {
	db := newRosterDB(t)
	f := newLineupFixture(t, db)
	repo := NewLineupRepository(db)
	ctx := context.Background()

	other := seedTraining(t, db, f.team.ID, f.location.ID, testStart().Add(24*time.Hour))
	second := seedLineup(t, db, other.ID)
	require.NoError(t, repo.UpdateState(ctx, second.ID, entities.LineupStatePublished))

	items, total, err := repo.List(ctx, entities.LineupFilter{TrainingID: &f.training.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, f.lineup.ID, items[0].ID)

	state := entities.LineupStatePublished
	items, total, err = repo.List(ctx, entities.LineupFilter{State: &state})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, second.ID, items[0].ID)

	items, _, err = repo.List(ctx, entities.LineupFilter{Ordering: "id"})
	require.NoError(t, err)
	require.Equal(t, f.lineup.ID, items[0].ID)
}

func TestTrainingRepository_DeleteCascadesLineupAndSeats(t *testing.T) {
	db := newRosterDB(t)
	f := newLineupFixture(t, db)
	ctx := context.Background()

	people := make([]*entities.Person, 0, 4)
	for _, name := range []string{"Anna", "Bert", "Cleo", "Dirk"} {
		people = append(people, seedPerson(t, db, name))
	}
	for i, p := range people {
		side := entities.SeatSideLeft
		if i%2 == 1 {
			side = entities.SeatSideRight
		}
		seedSeat(t, db, f.lineup.ID, side, i/2+1, &p.ID)
	}
	require.Equal(t, int64(4), countRows(t, db, "lineup_seat"))

	require.NoError(t, NewTrainingRepository(db).Delete(ctx, f.training.ID))

	require.Equal(t, int64(0), countRows(t, db, "training"))
	require.Equal(t, int64(0), countRows(t, db, "lineup"))
	require.Equal(t, int64(0), countRows(t, db, "lineup_seat"))
	require.Equal(t, int64(4), countRows(t, db, "person"))
	require.Equal(t, int64(1), countRows(t, db, "team"))
	require.Equal(t, int64(1), countRows(t, db, "location"))
}
