package adaptive

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"voice-renamer/internal/app/api"
	"voice-renamer/internal/app/audio"
	apperrors "voice-renamer/internal/app/errors"
	"voice-renamer/internal/app/metrics"
)

// Options configures one TranscribeWithRetry call
type Options struct {
	// InitialDuration is the first rung; the second is twice as long and the
	// third is the whole recording. Must be positive.
	InitialDuration time.Duration
	// MinWords is the acceptance threshold; 0 accepts the first result.
	MinWords int
	Language string
	// TempDir receives trimmed copies. Empty means os.TempDir().
	TempDir string
}

// Result is the accepted transcription and the rung (1-based) that produced it
type Result struct {
	Text      string
	Rung      int
	WordCount int
}

// AdaptiveTranscriber transcribes as little audio as possible: it starts with
// a short prefix of the recording and only moves to longer prefixes while the
// transcription has too few words.
type AdaptiveTranscriber struct {
	source  audio.Source
	logger  *zap.Logger
	metrics *metrics.Recorder
}

// NewAdaptiveTranscriber creates a transcriber that trims through source.
// logger and recorder may be nil.
func NewAdaptiveTranscriber(source audio.Source, logger *zap.Logger, recorder *metrics.Recorder) *AdaptiveTranscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdaptiveTranscriber{source: source, logger: logger, metrics: recorder}
}

// Ladder returns the durations tried in order. Zero stands for the full recording.
func Ladder(initial time.Duration) []time.Duration {
	return []time.Duration{initial, 2 * initial, 0}
}

// CountWords counts whitespace-delimited tokens
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Accepts reports whether text is long enough
func Accepts(text string, minWords int) bool {
	return CountWords(text) >= minWords
}

// TranscribeWithRetry returns the first transcription along the duration
// ladder that has at least MinWords words. When even the full recording falls
// short its text is returned anyway, without error.
func (t *AdaptiveTranscriber) TranscribeWithRetry(ctx context.Context, audioPath string, model api.Transcriber, opts Options) (string, error) {
	result, err := t.Transcribe(ctx, audioPath, model, opts)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// Transcribe is TranscribeWithRetry reporting which rung was accepted.
func (t *AdaptiveTranscriber) Transcribe(ctx context.Context, audioPath string, model api.Transcriber, opts Options) (Result, error) {
	if err := validate(audioPath, model, opts); err != nil {
		return Result{}, err
	}
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}

	log := t.logger.With(zap.String("file", filepath.Base(audioPath)))
	ladder := Ladder(opts.InitialDuration)

	var clip *audio.Clip
	var result Result
	for i, limit := range ladder {
		rung := i + 1

		if limit > 0 && clip == nil {
			loaded, err := t.source.Load(ctx, audioPath)
			if err != nil {
				return Result{}, classify(err, apperrors.ErrUnreadableAudio)
			}
			clip = loaded
		}

		text, err := t.attempt(ctx, log, rung, audioPath, clip, limit, model, opts)
		if err != nil {
			return Result{}, err
		}

		result = Result{Text: text, Rung: rung, WordCount: CountWords(text)}
		if result.WordCount >= opts.MinWords {
			log.Debug("transcription accepted", zap.Int("rung", rung), zap.Int("words", result.WordCount))
			break
		}
		if rung == len(ladder) {
			log.Debug("full recording below word threshold, keeping it",
				zap.Int("words", result.WordCount), zap.Int("min_words", opts.MinWords))
		}
	}

	t.metrics.Accepted(result.Rung)
	return result, nil
}

// attempt transcribes the first limit of the recording (all of it when limit
// is 0). A trimmed copy is created in TempDir and removed before returning.
func (t *AdaptiveTranscriber) attempt(ctx context.Context, log *zap.Logger, rung int, audioPath string,
	clip *audio.Clip, limit time.Duration, model api.Transcriber, opts Options) (string, error) {

	trimStart := time.Now()
	input := audioPath
	if limit > 0 {
		sliced := t.source.Slice(clip, limit)
		// a prefix covering the whole recording is the recording itself
		if clip.Duration == 0 || sliced.Effective() < clip.Duration {
			trimmed, err := t.export(ctx, sliced, audioPath, limit, opts.TempDir)
			if trimmed != "" {
				defer os.Remove(trimmed)
			}
			if err != nil {
				return "", err
			}
			input = trimmed
		}
	}
	trimTime := time.Since(trimStart)

	modelStart := time.Now()
	text, err := model.Transcript(ctx, input, opts.Language)
	modelTime := time.Since(modelStart)
	t.metrics.RungAttempted(rung, trimTime, modelTime)
	if err != nil {
		log.Debug("speech model failed", zap.Int("rung", rung), zap.Error(err))
		return "", classify(err, apperrors.ErrTranscriptionFailure)
	}

	log.Debug("rung transcribed",
		zap.Int("rung", rung),
		zap.Duration("limit", limit),
		zap.Duration("trim_time", trimTime),
		zap.Duration("model_time", modelTime),
		zap.Int("words", CountWords(text)),
		zap.String("text", text))
	return text, nil
}

// export writes clip to a fresh file in tempDir and returns its path. The path
// is returned even on failure so the caller can remove it.
func (t *AdaptiveTranscriber) export(ctx context.Context, clip *audio.Clip, audioPath string, limit time.Duration, tempDir string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	base = strings.ReplaceAll(base, "*", "_")
	seconds := strconv.FormatFloat(limit.Seconds(), 'f', -1, 64)

	f, err := os.CreateTemp(tempDir, seconds+"sec_"+base+"_*.wav")
	if err != nil {
		return "", apperrors.Tag(apperrors.ErrInvalidConfiguration, fmt.Errorf("temp directory unusable: %w", err))
	}
	path := f.Name()
	f.Close()

	if err := t.source.Export(ctx, clip, path, audio.FormatWAV); err != nil {
		return path, classify(err, apperrors.ErrUnreadableAudio)
	}
	return path, nil
}

func validate(audioPath string, model api.Transcriber, opts Options) error {
	if model == nil {
		return apperrors.ErrModelNotLoaded
	}

	info, err := os.Stat(audioPath)
	if err != nil {
		return apperrors.Tag(apperrors.ErrAudioNotFound, err)
	}
	if info.IsDir() {
		return apperrors.Wrapf(apperrors.ErrAudioNotFound, "%s is a directory", audioPath)
	}

	if opts.InitialDuration <= 0 {
		return apperrors.InvalidField("initial_duration", fmt.Sprintf("must be positive, got %v", opts.InitialDuration))
	}
	if opts.MinWords < 0 {
		return apperrors.InvalidField("min_words", fmt.Sprintf("must not be negative, got %d", opts.MinWords))
	}
	return nil
}

var kinds = []error{
	apperrors.ErrModelNotLoaded,
	apperrors.ErrAudioNotFound,
	apperrors.ErrInvalidConfiguration,
	apperrors.ErrUnreadableAudio,
	apperrors.ErrTranscriptionFailure,
}

// classify keeps errors that already carry a failure kind and tags the rest
func classify(err error, fallback *apperrors.Error) error {
	for _, kind := range kinds {
		if stderrors.Is(err, kind) {
			return err
		}
	}
	return apperrors.Tag(fallback, err)
}
