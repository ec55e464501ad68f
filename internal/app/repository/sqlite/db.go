package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS renames (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	source_path TEXT NOT NULL,
	source_name TEXT NOT NULL,
	file_hash TEXT NOT NULL DEFAULT '',
	output_name TEXT NOT NULL DEFAULT '',
	transcription TEXT NOT NULL DEFAULT '',
	word_count INTEGER NOT NULL DEFAULT 0,
	rung INTEGER NOT NULL DEFAULT 0,
	provider TEXT NOT NULL,
	language TEXT NOT NULL,
	has_error INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_renames_run_id ON renames(run_id);
CREATE INDEX IF NOT EXISTS idx_renames_created_at ON renames(created_at);`

// OpenDB opens (creating if needed) the history database at dbPath and
// makes sure the schema exists.
func OpenDB(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&mode=rwc", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitSchema creates the renames table and its indexes
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create renames table: %w", err)
	}
	return nil
}
