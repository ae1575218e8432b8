package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDBCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.db")

	db, err := NewDB(path)
	require.NoError(t, err)

	var tables []string
	require.NoError(t, db.Select(&tables, "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"))
	assert.Equal(t, []string{"badges", "case_files"}, tables)
	require.NoError(t, db.Close())

	// reopening an existing file keeps the schema
	db, err = NewDB(path)
	require.NoError(t, err)
	defer db.Close()
}
