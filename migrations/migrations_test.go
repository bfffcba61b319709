package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_ContainsGooseAnnotatedMigrations(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		data, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		assert.Contains(t, string(data), "-- +goose Up", name)
		assert.Contains(t, string(data), "-- +goose Down", name)
	}
}

func TestInitMigration_DefinesSlotUniqueness(t *testing.T) {
	data, err := fs.ReadFile(FS, "00001_init.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "PRIMARY KEY (slot_date, block, sub_block)")
}
