package repository

import (
	"voice-renamer/internal/app/model"
)

// RenameDAO persists the outcome of every processed recording.
type RenameDAO interface {
	Close() error

	// RecordRename stores record and returns its id
	RecordRename(record model.RenameRecord) (int64, error)

	// GetByRun returns the records of one run in processing order
	GetByRun(runID string) ([]model.RenameRecord, error)

	// GetRecent returns up to limit records, newest first
	GetRecent(limit int) ([]model.RenameRecord, error)
}
