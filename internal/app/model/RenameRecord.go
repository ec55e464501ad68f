package model

import "time"

// RenameRecord is one history row: the outcome of renaming a single recording.
type RenameRecord struct {
	ID            int       `json:"id"`
	RunID         string    `json:"run_id"`
	SourcePath    string    `json:"source_path"`
	SourceName    string    `json:"source_name"`
	FileHash      string    `json:"file_hash,omitempty"`
	OutputName    string    `json:"output_name,omitempty"`
	Transcription string    `json:"transcription,omitempty"`
	WordCount     int       `json:"word_count"`
	Rung          int       `json:"rung"`
	Provider      string    `json:"provider"`
	Language      string    `json:"language"`
	HasError      int       `json:"has_error"` // 0 or 1
	ErrorMessage  string    `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Failed reports whether the rename did not produce an output file.
func (r *RenameRecord) Failed() bool {
	return r.HasError != 0
}
