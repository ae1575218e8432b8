package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, path, title string) {
	t.Helper()
	data := strings.Replace(tinyScenario, `"title": "Tiny"`, `"title": "`+title+`"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestLibraryList(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, filepath.Join(dir, "lodge.json"), "Lodge")
	writeScenario(t, filepath.Join(dir, "abbey.json"), "Abbey")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore"), 0o644))

	generated := filepath.Join(t.TempDir(), "scenario_generated.json")
	writeScenario(t, generated, "Generated")

	lib := NewLibrary(dir, generated, filepath.Join(dir, "missing.json"))
	entries := lib.List()

	ids := []string{}
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{DefaultScenarioID, "abbey", "lodge", "scenario_generated"}, ids)
	assert.Equal(t, "The Silent Estate", entries[0].Title)
	assert.Equal(t, 3, entries[0].Suspects)

	sc, err := lib.Load("lodge")
	require.NoError(t, err)
	assert.Equal(t, "Lodge", sc.Meta.Title)

	sc, err = lib.Load("")
	require.NoError(t, err)
	assert.Equal(t, "The Silent Estate", sc.Meta.Title)

	_, err = lib.Load("broken")
	assert.ErrorIs(t, err, ErrUnknownScenario)
}

func TestLibraryMissingDir(t *testing.T) {
	lib := NewLibrary(filepath.Join(t.TempDir(), "nope"))
	entries := lib.List()
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultScenarioID, entries[0].ID)
}
