package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	var playersTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='players'").Scan(&playersTableName)
	require.NoError(t, err, "Querying for players table should not produce an error")
	assert.Equal(t, "players", playersTableName, "The 'players' table should be created")

	var scoresTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='scores'").Scan(&scoresTableName)
	require.NoError(t, err, "Querying for scores table should not produce an error")
	assert.Equal(t, "scores", scoresTableName, "The 'scores' table should be created")
}

func TestInitDB_CascadeDelete(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO players (id, name, total_shots, created_at, updated_at) VALUES ('p1', 'Jean', 10, 0, 0)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO scores (id, player_id, shot_number, value, recorded_at) VALUES ('s1', 'p1', 1, 9, 0)`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM players WHERE id = 'p1'`)
	require.NoError(t, err)

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM scores WHERE player_id = 'p1'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "deleting a player should cascade to their scores")
}
