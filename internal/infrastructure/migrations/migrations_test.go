package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(files, dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	raw, err := fs.ReadFile(files, dir+"/"+entries[0].Name())
	require.NoError(t, err)
	body := string(raw)

	require.Contains(t, body, "-- +goose Up")
	require.Contains(t, body, "-- +goose Down")
	for _, name := range []string{
		"uq_team_name",
		"uq_person_team_once",
		"uq_lineup_training",
		"uq_lineup_side_seat",
		"uq_lineup_person_once",
	} {
		require.Contains(t, body, name)
	}
	require.True(t, strings.Contains(body, "WHERE person_id IS NOT NULL"), "person index must be partial")
	require.NotContains(t, strings.ToUpper(body), "ON DELETE", "deletes are driven by the repository policy table")
}

func TestSetupIsIdempotent(t *testing.T) {
	require.NoError(t, setup())
	require.NoError(t, setup())
}
