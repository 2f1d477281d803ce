package repositories

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	domainerrors "dragon-roster.backend/internal/domain/errors"
)

const (
	pgUniqueViolation  = "23505"
	sqliteUniquePrefix = "UNIQUE constraint failed: "
)

var uniqueConstraintMessages = map[string]string{
	"uq_lineup_side_seat":   domainerrors.MsgSeatOccupied,
	"uq_lineup_person_once": domainerrors.MsgPersonSeated,
	"uq_person_team_once":   domainerrors.MsgAlreadyMember,
	"uq_lineup_training":    domainerrors.MsgLineupExists,
	"uq_team_name":          domainerrors.MsgTeamNameTaken,
}

// SQLite reports the violated index by its column list.
var sqliteUniqueColumns = map[string]string{
	"lineup_seat.lineup_id, lineup_seat.side, lineup_seat.seat_number": "uq_lineup_side_seat",
	"lineup_seat.lineup_id, lineup_seat.person_id":                     "uq_lineup_person_once",
	"person_team.person_id, person_team.team_id":                       "uq_person_team_once",
	"lineup.training_id": "uq_lineup_training",
	"team.name":          "uq_team_name",
}

// translateError maps storage errors onto the domain taxonomy. Unique
// violations raised by concurrent writers become the same conflicts the
// pre-write checks report.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrNotFound
	}
	if name, ok := uniqueViolation(err); ok {
		if msg, known := uniqueConstraintMessages[name]; known {
			return domainerrors.Conflict(msg)
		}
		return domainerrors.Conflict(domainerrors.MsgDuplicateRecord)
	}
	return err
}

func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		return pgErr.ConstraintName, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) != pgUniqueViolation {
			return "", false
		}
		return pqErr.Constraint, true
	}

	msg := err.Error()
	idx := strings.Index(msg, sqliteUniquePrefix)
	if idx < 0 {
		return "", false
	}
	columns := strings.TrimSpace(msg[idx+len(sqliteUniquePrefix):])
	return sqliteUniqueColumns[columns], true
}
