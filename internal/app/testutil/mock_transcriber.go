package testutil

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"voice-renamer/internal/app/api"
	"voice-renamer/internal/app/audio"
)

// MockTranscriber is a testify mock of api.Transcriber that also records what
// it was given. Expectations are matched on (ctx, inputFilePath, language).
type MockTranscriber struct {
	mock.Mock
	mu sync.Mutex

	CallHistory []TranscriptionCall
}

// TranscriptionCall represents a single transcription call for tracking
type TranscriptionCall struct {
	InputFilePath string
	Language      string
	// AudioDuration is the length of the WAV file handed over, 0 for other formats
	AudioDuration time.Duration
	Response      string
	Error         error
}

// NewMockTranscriber creates a MockTranscriber without expectations
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// Transcript implements the api.Transcriber interface
func (m *MockTranscriber) Transcript(ctx context.Context, inputFilePath string, language string) (string, error) {
	call := TranscriptionCall{InputFilePath: inputFilePath, Language: language}
	if data, err := os.ReadFile(inputFilePath); err == nil {
		if _, d, err := audio.GetWAVInfo(data); err == nil {
			call.AudioDuration = d
		}
	}

	args := m.Called(ctx, inputFilePath, language)
	call.Response, call.Error = args.String(0), args.Error(1)

	m.mu.Lock()
	m.CallHistory = append(m.CallHistory, call)
	m.mu.Unlock()

	return call.Response, call.Error
}

// ExpectResponses queues one response per call, in order, for any input
func (m *MockTranscriber) ExpectResponses(responses ...string) *MockTranscriber {
	for _, response := range responses {
		m.On("Transcript", mock.Anything, mock.Anything, mock.Anything).Return(response, nil).Once()
	}
	return m
}

// ExpectError makes the next call fail with err
func (m *MockTranscriber) ExpectError(err error) *MockTranscriber {
	m.On("Transcript", mock.Anything, mock.Anything, mock.Anything).Return("", err).Once()
	return m
}

// ExpectTranscriptCall sets up an expectation for a specific transcript call
func (m *MockTranscriber) ExpectTranscriptCall(filePath string, response string, err error) *MockTranscriber {
	m.On("Transcript", mock.Anything, filePath, mock.Anything).Return(response, err)
	return m
}

// GetCallCount returns the total number of calls made
func (m *MockTranscriber) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CallHistory)
}

// GetCallHistory returns the complete call history
func (m *MockTranscriber) GetCallHistory() []TranscriptionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	history := make([]TranscriptionCall, len(m.CallHistory))
	copy(history, m.CallHistory)
	return history
}

// Interface compliance check
var _ api.Transcriber = (*MockTranscriber)(nil)
