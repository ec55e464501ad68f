package api

import "context"

// Transcriber defines a transcription interface for converting audio files to text.
// language is an ISO-639-1 code; an empty string lets the model detect it.
type Transcriber interface {
	Transcript(ctx context.Context, inputFilePath string, language string) (string, error)
}
