package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"voice-renamer/internal/app/model"
)

const selectColumns = `id, run_id, source_path, source_name, file_hash, output_name, transcription,
	word_count, rung, provider, language, has_error, error_message, created_at`

type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens the history database stored at dbFilePath
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	db, err := OpenDB(dbFilePath)
	if err != nil {
		return nil, err
	}
	return &SQLiteDB{db: db}, nil
}

// NewSQLiteDBWithConn wraps an open connection whose schema is already in place
func NewSQLiteDBWithConn(db *sql.DB) *SQLiteDB {
	return &SQLiteDB{db: db}
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) RecordRename(r model.RenameRecord) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	insertSQL := `INSERT INTO renames (run_id, source_path, source_name, file_hash, output_name, transcription, word_count, rung, provider, language, has_error, error_message, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	result, err := sdb.db.Exec(insertSQL, r.RunID, r.SourcePath, r.SourceName, r.FileHash, r.OutputName, r.Transcription,
		r.WordCount, r.Rung, r.Provider, r.Language, r.HasError, r.ErrorMessage, r.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert rename record: %w", err)
	}
	return result.LastInsertId()
}

func (sdb *SQLiteDB) GetByRun(runID string) ([]model.RenameRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM renames WHERE run_id = ? ORDER BY id ASC;`
	return sdb.query(query, runID)
}

func (sdb *SQLiteDB) GetRecent(limit int) ([]model.RenameRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + selectColumns + ` FROM renames ORDER BY created_at DESC, id DESC LIMIT ?;`
	return sdb.query(query, limit)
}

func (sdb *SQLiteDB) query(query string, args ...interface{}) ([]model.RenameRecord, error) {
	rows, err := sdb.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	records := make([]model.RenameRecord, 0)
	for rows.Next() {
		var r model.RenameRecord
		err = rows.Scan(&r.ID, &r.RunID, &r.SourcePath, &r.SourceName, &r.FileHash, &r.OutputName, &r.Transcription,
			&r.WordCount, &r.Rung, &r.Provider, &r.Language, &r.HasError, &r.ErrorMessage, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return records, nil
}
