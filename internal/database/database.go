package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/tahcohcat/gofigure-interrogation/internal/logger"
)

type DB struct {
	*sqlx.DB
}

// NewDB opens the case log database and creates its tables.
func NewDB(path string) (*DB, error) {
	if path == "" {
		path = "gofigure.db"
	}

	db, err := sqlx.Connect("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	dbWrapper := &DB{DB: db}
	if err := dbWrapper.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.New().Debug("Case log opened at " + path)
	return dbWrapper, nil
}

func (db *DB) createTables() error {
	casesTable := `
	CREATE TABLE IF NOT EXISTS case_files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT UNIQUE NOT NULL,
		title TEXT NOT NULL,
		status TEXT NOT NULL,
		score INTEGER DEFAULT 0,
		turns INTEGER DEFAULT 0,
		questions INTEGER DEFAULT 0,
		facts_revealed INTEGER DEFAULT 0,
		accused TEXT DEFAULT '',
		killer TEXT DEFAULT '',
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL
	);`

	badgesTable := `
	CREATE TABLE IF NOT EXISTS badges (
		badge_id TEXT PRIMARY KEY,
		case_id INTEGER NOT NULL,
		earned_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (case_id) REFERENCES case_files(id) ON DELETE CASCADE
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_case_files_status ON case_files(status);`,
		`CREATE INDEX IF NOT EXISTS idx_case_files_ended_at ON case_files(ended_at);`,
	}

	for _, query := range append([]string{casesTable, badgesTable}, indexes...) {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
