package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dragon-roster.backend/internal/domain/entities"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

// newRosterDB returns an in-memory database carrying the roster schema with
// the same unique indexes as the PostgreSQL migrations.
func newRosterDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	createPersonTable(t, db)
	createTeamTable(t, db)
	createMembershipTable(t, db)
	createLocationTable(t, db)
	createTrainingTable(t, db)
	createLineupTable(t, db)
	createLineupSeatTable(t, db)
	return db
}

func createPersonTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE person (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		height INTEGER,
		weight INTEGER,
		side INTEGER NOT NULL DEFAULT 0,
		profile_picture_url TEXT NOT NULL DEFAULT '',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTeamTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE team (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		city TEXT,
		max_members INTEGER NOT NULL DEFAULT 22,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX uq_team_name ON team(name);`)
}

func createMembershipTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE person_team (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL,
		team_id TEXT NOT NULL,
		role INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX uq_person_team_once ON person_team(person_id, team_id);`)
}

func createLocationTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE location (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		team_id TEXT NOT NULL,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTrainingTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE training (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		team_id TEXT NOT NULL,
		location_id INTEGER NOT NULL,
		start_at DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createLineupTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE lineup (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		training_id INTEGER NOT NULL,
		state INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX uq_lineup_training ON lineup(training_id);`)
}

func createLineupSeatTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE lineup_seat (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		lineup_id INTEGER NOT NULL,
		person_id TEXT,
		side TEXT NOT NULL,
		seat_number INTEGER NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX uq_lineup_side_seat ON lineup_seat(lineup_id, side, seat_number);`)
	mustExec(t, db, `CREATE UNIQUE INDEX uq_lineup_person_once ON lineup_seat(lineup_id, person_id) WHERE person_id IS NOT NULL;`)
}

func seedPerson(t *testing.T, db *gorm.DB, name string) *entities.Person {
	t.Helper()
	p := &entities.Person{ID: uuid.Must(uuid.NewV7()), Name: name, Phone: "555-0100"}
	require.NoError(t, NewPersonRepository(db).Create(context.Background(), p))
	return p
}

func seedTeam(t *testing.T, db *gorm.DB, name string, maxMembers int) *entities.Team {
	t.Helper()
	team := &entities.Team{ID: uuid.Must(uuid.NewV7()), Name: name, MaxMembers: maxMembers}
	require.NoError(t, NewTeamRepository(db).Create(context.Background(), team))
	return team
}

func seedLocation(t *testing.T, db *gorm.DB, teamID uuid.UUID, name string) *entities.Location {
	t.Helper()
	loc := &entities.Location{TeamID: teamID, Name: name, Lat: 52.52, Lon: 13.40}
	require.NoError(t, NewLocationRepository(db).Create(context.Background(), loc))
	return loc
}

func seedTraining(t *testing.T, db *gorm.DB, teamID uuid.UUID, locationID int64, startAt time.Time) *entities.Training {
	t.Helper()
	tr := &entities.Training{TeamID: teamID, LocationID: locationID, StartAt: startAt}
	require.NoError(t, NewTrainingRepository(db).Create(context.Background(), tr))
	return tr
}

func seedLineup(t *testing.T, db *gorm.DB, trainingID int64) *entities.Lineup {
	t.Helper()
	l := &entities.Lineup{TrainingID: trainingID, State: entities.LineupStateDraft}
	require.NoError(t, NewLineupRepository(db).Create(context.Background(), l))
	return l
}

func seedSeat(t *testing.T, db *gorm.DB, lineupID int64, side entities.SeatSide, number int, personID *uuid.UUID) *entities.LineupSeat {
	t.Helper()
	s := &entities.LineupSeat{LineupID: lineupID, Side: side, SeatNumber: number, PersonID: personID}
	require.NoError(t, NewLineupSeatRepository(db).Create(context.Background(), s))
	return s
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}

func testStart() time.Time {
	return time.Date(2026, 5, 4, 18, 0, 0, 0, time.UTC)
}
