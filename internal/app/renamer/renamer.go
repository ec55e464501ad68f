// Package renamer copies a directory of voice recordings into a sibling
// directory, naming every copy after the first words spoken in it.
package renamer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"voice-renamer/internal/app/adaptive"
	"voice-renamer/internal/app/api"
	apperrors "voice-renamer/internal/app/errors"
	"voice-renamer/internal/app/metrics"
	"voice-renamer/internal/app/model"
	"voice-renamer/internal/app/naming"
	"voice-renamer/internal/app/repository"
	"voice-renamer/internal/app/storage/objectstore"
	"voice-renamer/internal/app/util/files"
)

// Options controls one run
type Options struct {
	Extensions      []string
	InitialDuration time.Duration
	MinWords        int
	MaxNameWords    int
	Language        string
	Provider        string
	TempDir         string

	// DryRun computes the names without copying or recording anything
	DryRun bool
	// FailFast stops at the first file that cannot be renamed
	FailFast bool

	Progress       bool
	ProgressWriter io.Writer
	MetricsFile    string
}

// Summary is the outcome of a run
type Summary struct {
	RunID     string
	InputDir  string
	OutputDir string
	DryRun    bool
	Records   []model.RenameRecord
	// UploadErrors counts copies that were renamed locally but not uploaded
	UploadErrors int
}

func (s *Summary) Total() int {
	return len(s.Records)
}

func (s *Summary) Failed() int {
	return lo.CountBy(s.Records, func(r model.RenameRecord) bool { return r.Failed() })
}

func (s *Summary) Renamed() int {
	return s.Total() - s.Failed()
}

// Print writes the final report
func (s *Summary) Print(w io.Writer) {
	if s.DryRun {
		for _, r := range s.Records {
			if r.Failed() {
				fmt.Fprintf(w, "  %s: %s\n", r.SourceName, r.ErrorMessage)
				continue
			}
			fmt.Fprintf(w, "  %s -> %s\n", r.SourceName, r.OutputName)
		}
		fmt.Fprintf(w, "Dry run: %d file(s) would be renamed, %d failed\n", s.Renamed(), s.Failed())
		return
	}

	fmt.Fprintf(w, "Processed %d file(s): %d renamed, %d failed\n", s.Total(), s.Renamed(), s.Failed())
	if s.UploadErrors > 0 {
		fmt.Fprintf(w, "%d file(s) could not be uploaded\n", s.UploadErrors)
	}
	fmt.Fprintf(w, "Output directory: %s\n", s.OutputDir)
	fmt.Fprintf(w, "Run ID: %s\n", s.RunID)
}

// Renamer drives the adaptive transcriber over a directory
type Renamer struct {
	transcriber *adaptive.AdaptiveTranscriber
	model       api.Transcriber
	dao         repository.RenameDAO
	uploader    objectstore.Uploader
	metrics     *metrics.Recorder
	logger      *zap.Logger

	now func() time.Time
}

// NewRenamer wires a renamer. dao, uploader, recorder and logger may be nil.
func NewRenamer(transcriber *adaptive.AdaptiveTranscriber, model api.Transcriber, dao repository.RenameDAO,
	uploader objectstore.Uploader, recorder *metrics.Recorder, logger *zap.Logger) *Renamer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renamer{
		transcriber: transcriber,
		model:       model,
		dao:         dao,
		uploader:    uploader,
		metrics:     recorder,
		logger:      logger,
		now:         time.Now,
	}
}

// Close releases the history database
func (r *Renamer) Close() error {
	if r.dao == nil {
		return nil
	}
	return r.dao.Close()
}

// History exposes the rename history
func (r *Renamer) History() repository.RenameDAO {
	return r.dao
}

// Run renames every recording in inputDir, oldest first. Files that fail are
// reported in the summary and skipped, unless FailFast is set. The original
// recordings are never modified.
func (r *Renamer) Run(ctx context.Context, inputDir string, opts Options) (*Summary, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, apperrors.Tag(apperrors.ErrAudioNotFound, fmt.Errorf("input directory: %w", err))
	}
	if !info.IsDir() {
		return nil, apperrors.Wrapf(apperrors.ErrAudioNotFound, "%s is not a directory", inputDir)
	}

	recordings, err := files.ListAudioFiles(inputDir, opts.Extensions)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:     uuid.NewString(),
		InputDir:  inputDir,
		OutputDir: files.OutputDir(inputDir, r.now()),
		DryRun:    opts.DryRun,
	}
	log := r.logger.With(zap.String("run_id", summary.RunID))
	log.Info("starting run",
		zap.String("input_dir", inputDir),
		zap.Int("files", len(recordings)),
		zap.Bool("dry_run", opts.DryRun))

	if !opts.DryRun && len(recordings) > 0 {
		if err := files.EnsureDir(summary.OutputDir); err != nil {
			return nil, apperrors.Tag(apperrors.ErrFileWriteFailed, err)
		}
	}

	progress := NewProgressManager(ProgressConfig{
		Enabled: opts.Progress && len(recordings) > 0,
		Writer:  opts.ProgressWriter,
	})
	bar := progress.CreateBar(len(recordings), "Renaming")

	var runErr error
	for i, recording := range recordings {
		start := time.Now()
		record, err := r.processFile(ctx, log, summary, i+1, recording, opts)
		summary.Records = append(summary.Records, record)
		bar.Increment(start)

		if err != nil && opts.FailFast {
			bar.Abort()
			runErr = fmt.Errorf("stopped at %s: %w", recording.Name, err)
			break
		}
	}
	progress.Wait()

	if err := r.metrics.WriteTextfile(opts.MetricsFile); err != nil {
		log.Warn("failed to write metrics file", zap.String("path", opts.MetricsFile), zap.Error(err))
	}

	log.Info("run finished",
		zap.Int("renamed", summary.Renamed()),
		zap.Int("failed", summary.Failed()),
		zap.String("output_dir", summary.OutputDir))
	return summary, runErr
}

// processFile renames one recording. The returned record is complete even when
// err is not nil.
func (r *Renamer) processFile(ctx context.Context, log *zap.Logger, summary *Summary, index int,
	recording model.FileInfo, opts Options) (model.RenameRecord, error) {

	log = log.With(zap.Int("index", index), zap.String("file", recording.Name))
	record := model.RenameRecord{
		RunID:      summary.RunID,
		SourcePath: recording.FullPath,
		SourceName: recording.Name,
		Provider:   opts.Provider,
		Language:   opts.Language,
	}

	fail := func(err error) (model.RenameRecord, error) {
		log.Error("failed to rename", zap.Error(err))
		record.HasError = 1
		record.ErrorMessage = err.Error()
		r.metrics.FileProcessed(metrics.StatusFailed)
		if !opts.DryRun {
			r.saveRecord(log, record)
		}
		return record, err
	}

	if hash, err := files.CalculateFileHash(recording.FullPath); err != nil {
		log.Warn("failed to hash recording", zap.Error(err))
	} else {
		record.FileHash = hash
	}

	result, err := r.transcriber.Transcribe(ctx, recording.FullPath, r.model, adaptive.Options{
		InitialDuration: opts.InitialDuration,
		MinWords:        opts.MinWords,
		Language:        opts.Language,
		TempDir:         opts.TempDir,
	})
	if err != nil {
		return fail(err)
	}

	record.Transcription = result.Text
	record.WordCount = result.WordCount
	record.Rung = result.Rung
	record.OutputName = naming.SynthesizeName(index, result.Text, filepath.Ext(recording.Name), opts.MaxNameWords)

	if opts.DryRun {
		log.Info("would rename", zap.String("new_name", record.OutputName), zap.Int("rung", record.Rung))
		r.metrics.FileProcessed(metrics.StatusDryRun)
		return record, nil
	}

	target := filepath.Join(summary.OutputDir, record.OutputName)
	if err := files.CopyFile(recording.FullPath, target); err != nil {
		return fail(apperrors.Tag(apperrors.ErrFileWriteFailed, err))
	}
	log.Info("renamed", zap.String("new_name", record.OutputName), zap.Int("rung", record.Rung))

	if r.uploader != nil {
		key := r.uploader.Key(summary.OutputDir, record.OutputName)
		if url, err := r.uploader.Upload(ctx, target, key); err != nil {
			summary.UploadErrors++
			log.Warn("upload failed", zap.String("key", key), zap.Error(err))
		} else {
			log.Debug("uploaded copy", zap.String("url", url))
		}
	}

	r.metrics.FileProcessed(metrics.StatusRenamed)
	r.saveRecord(log, record)
	return record, nil
}

func (r *Renamer) saveRecord(log *zap.Logger, record model.RenameRecord) {
	if r.dao == nil {
		return
	}
	if _, err := r.dao.RecordRename(record); err != nil {
		log.Warn("failed to record history", zap.Error(err))
	}
}
