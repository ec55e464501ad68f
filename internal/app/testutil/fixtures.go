package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"voice-renamer/internal/app/audio"
	"voice-renamer/internal/app/model"
)

// FixtureSampleRate keeps generated recordings small
const FixtureSampleRate = 8000

// CreateTestWAV writes a mono PCM-16 recording of the given length to dir/name
func CreateTestWAV(t *testing.T, dir string, name string, duration time.Duration) string {
	t.Helper()
	samples := make([]int16, int(duration.Seconds()*FixtureSampleRate))
	for i := range samples {
		samples[i] = int16((i * 37) % 2000)
	}
	data, err := audio.EncodeWAV(samples, FixtureSampleRate, 1)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// CreateTestFile writes arbitrary content, for non-audio and corrupt inputs
func CreateTestFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// ListDir returns the names in dir, failing the test when it cannot be read
func ListDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// TestRenameRecords provides sample history rows for testing
var TestRenameRecords = []model.RenameRecord{
	{
		RunID:         "6f1c2a7e-0d7b-4b8e-9a55-2b1f0c9d8e01",
		SourcePath:    "/voice/memo-0001.m4a",
		SourceName:    "memo-0001.m4a",
		FileHash:      "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		OutputName:    "1_Купити_хліб_і_молоко_після_роботи.m4a",
		Transcription: "Купити хліб і молоко після роботи",
		WordCount:     6,
		Rung:          3,
		Provider:      "whisper_cpp",
		Language:      "uk",
		CreatedAt:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	},
	{
		RunID:         "6f1c2a7e-0d7b-4b8e-9a55-2b1f0c9d8e01",
		SourcePath:    "/voice/memo-0002.wav",
		SourceName:    "memo-0002.wav",
		FileHash:      "2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae",
		OutputName:    "2_Call_the_dentist_tomorrow_morning_about_the_appointment.wav",
		Transcription: "Call the dentist tomorrow morning about the appointment and reschedule",
		WordCount:     10,
		Rung:          1,
		Provider:      "openai",
		Language:      "en",
		CreatedAt:     time.Date(2024, 1, 15, 10, 31, 0, 0, time.UTC),
	},
	{
		RunID:        "6f1c2a7e-0d7b-4b8e-9a55-2b1f0c9d8e01",
		SourcePath:   "/voice/broken.ogg",
		SourceName:   "broken.ogg",
		HasError:     1,
		ErrorMessage: "unreadable audio: invalid data found when processing input",
		Provider:     "whisper_cpp",
		Language:     "uk",
		CreatedAt:    time.Date(2024, 1, 15, 10, 32, 0, 0, time.UTC),
	},
}
