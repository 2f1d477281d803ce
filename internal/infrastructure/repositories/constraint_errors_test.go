package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	domainerrors "dragon-roster.backend/internal/domain/errors"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), domainerrors.ErrNotFound)

	plain := errors.New("disk full")
	assert.Equal(t, plain, translateError(plain))

	cases := map[string]string{
		"uq_lineup_side_seat":   domainerrors.MsgSeatOccupied,
		"uq_lineup_person_once": domainerrors.MsgPersonSeated,
		"uq_person_team_once":   domainerrors.MsgAlreadyMember,
		"uq_lineup_training":    domainerrors.MsgLineupExists,
		"uq_team_name":          domainerrors.MsgTeamNameTaken,
		"uq_something_else":     domainerrors.MsgDuplicateRecord,
	}
	for constraint, want := range cases {
		pgErr := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraint}
		err := translateError(fmt.Errorf("insert: %w", pgErr))
		assert.ErrorIs(t, err, domainerrors.ErrConflict, constraint)
		appErr, ok := domainerrors.As(err)
		if assert.True(t, ok) {
			assert.Equal(t, want, appErr.Message, constraint)
		}
	}

	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "fk_training_location"}
	assert.Equal(t, error(fkErr), translateError(fkErr))
}

func TestTranslateError_LibPQ(t *testing.T) {
	err := translateError(&pq.Error{Code: pgUniqueViolation, Constraint: "uq_lineup_training"})
	appErr, ok := domainerrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, domainerrors.MsgLineupExists, appErr.Message)

	notNull := &pq.Error{Code: "23502", Column: "name"}
	assert.Equal(t, error(notNull), translateError(notNull))
}

func TestTranslateError_SQLiteColumns(t *testing.T) {
	err := translateError(errors.New("UNIQUE constraint failed: lineup_seat.lineup_id, lineup_seat.person_id"))
	appErr, ok := domainerrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, domainerrors.MsgPersonSeated, appErr.Message)

	err = translateError(errors.New("UNIQUE constraint failed: widget.code"))
	appErr, ok = domainerrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, domainerrors.MsgDuplicateRecord, appErr.Message)
}
