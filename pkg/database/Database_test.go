package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectMigratesSchema(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")

	db, err := Connect(dsn)
	require.NoError(t, err)

	var tables []string

	err = db.Query(context.Background(), &tables, `SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	require.NoError(t, err)

	assert.Equal(t, []string{"album_photographs", "albums", "photographs", "services"}, tables)
}

func TestMigrateIsRepeatable(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")

	db, err := Connect(dsn)
	require.NoError(t, err)

	assert.NoError(t, Migrate(db))
}

func TestIsIgnorableError(t *testing.T) {
	assert.True(t, isIgnorableError(errors.New("SQL logic error: duplicate column name: poster_y_pos (1)")))
	assert.False(t, isIgnorableError(errors.New("no such table: albums")))
}
