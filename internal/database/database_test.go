package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/cardvault/internal/errors"
)

func TestConnect(t *testing.T) {
	t.Run("opens database at path", func(t *testing.T) {
		db, err := Connect(Config{Path: filepath.Join(t.TempDir(), "cards.db")})
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		assert.NoError(t, db.Ping())
	})

	t.Run("fails with storage init error on unwritable path", func(t *testing.T) {
		db, err := Connect(Config{Path: "/nonexistent-dir/sub/cards.db"})
		if db != nil {
			defer func() { _ = db.Close() }()
		}
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrStorageInit))
	})
}

func TestMigrate(t *testing.T) {
	db, err := Connect(Config{Path: filepath.Join(t.TempDir(), "cards.db")})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, Migrate(db))

	// Idempotent: a second run must not fail or reset data.
	_, err = db.Exec(
		`INSERT INTO cards (label, encrypted_payload, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		"card-6789", "blob",
	)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM cards`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestMigrateAssignsIncreasingIDs(t *testing.T) {
	db, err := Connect(Config{Path: filepath.Join(t.TempDir(), "cards.db")})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, Migrate(db))

	insert := func() int64 {
		res, err := db.Exec(
			`INSERT INTO cards (label, encrypted_payload, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
			nil, "blob",
		)
		require.NoError(t, err)
		id, err := res.LastInsertId()
		require.NoError(t, err)
		return id
	}

	first := insert()
	second := insert()
	assert.Greater(t, second, first)

	// Deleting the last row must not cause id reuse.
	_, err = db.Exec(`DELETE FROM cards WHERE id = ?`, second)
	require.NoError(t, err)
	third := insert()
	assert.Greater(t, third, second)
}
