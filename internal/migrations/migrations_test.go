package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@host:5432/db?sslmode=disable", databaseURL("postgres://u:p@host:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://u@host/db", databaseURL("postgresql://u@host/db"))
	assert.Equal(t, "pgx5://already", databaseURL("pgx5://already"))
}

func TestFS_HasPairedMigrations(t *testing.T) {
	up, err := fs.Glob(FS, "*.up.sql")
	require.NoError(t, err)
	down, err := fs.Glob(FS, "*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, up)
	assert.Len(t, down, len(up))
}
