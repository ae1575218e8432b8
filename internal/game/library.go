package game

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
)

// DefaultScenarioID names the built-in case in a Library.
const DefaultScenarioID = "default"

// LibraryEntry describes a scenario that can be started.
type LibraryEntry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Suspects int    `json:"suspects"`
	Path     string `json:"-"`
}

// Library lists the built-in case plus every JSON scenario found in a
// directory and any extra files, such as the last generated case.
type Library struct {
	dir    string
	extra  []string
	logger *logger.Log
}

func NewLibrary(dir string, extra ...string) *Library {
	return &Library{dir: dir, extra: extra, logger: logger.New()}
}

// List returns the built-in case first, then the rest sorted by id.
// Unreadable files are skipped with a warning.
func (l *Library) List() []LibraryEntry {
	entries := []LibraryEntry{}

	if sc, err := DefaultScenario(); err == nil {
		entries = append(entries, LibraryEntry{ID: DefaultScenarioID, Title: sc.Meta.Title, Suspects: len(sc.Suspects)})
	}

	seen := map[string]bool{DefaultScenarioID: true}
	var found []LibraryEntry
	for _, path := range l.paths() {
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if seen[id] {
			continue
		}

		sc, err := LoadScenario(path)
		if err != nil {
			l.logger.WithError(err).Warn("Skipping scenario " + path)
			continue
		}
		seen[id] = true
		found = append(found, LibraryEntry{ID: id, Title: sc.Meta.Title, Suspects: len(sc.Suspects), Path: path})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return append(entries, found...)
}

// Load returns a fresh copy of the scenario with the given id.
func (l *Library) Load(id string) (*Scenario, error) {
	if id == "" || id == DefaultScenarioID {
		return DefaultScenario()
	}

	for _, e := range l.List() {
		if e.ID == id {
			return LoadScenario(e.Path)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, id)
}

func (l *Library) paths() []string {
	var paths []string

	if l.dir != "" {
		files, err := os.ReadDir(l.dir)
		if err != nil && !os.IsNotExist(err) {
			l.logger.WithError(err).Warn("Failed to read scenarios directory " + l.dir)
		}
		for _, f := range files {
			if !f.IsDir() && strings.HasSuffix(f.Name(), ".json") {
				paths = append(paths, filepath.Join(l.dir, f.Name()))
			}
		}
	}

	for _, p := range l.extra {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			paths = append(paths, p)
		}
	}

	return paths
}
