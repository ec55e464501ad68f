package app

import (
	"context"

	"go.uber.org/zap"

	"voice-renamer/internal/app/adaptive"
	"voice-renamer/internal/app/api"
	"voice-renamer/internal/app/api/provider"
	"voice-renamer/internal/app/audio"
	"voice-renamer/internal/app/metrics"
	"voice-renamer/internal/app/repository"
	"voice-renamer/internal/app/repository/sqlite"
	"voice-renamer/internal/app/storage/objectstore"
	"voice-renamer/internal/config"
)

// provideTranscriber builds the configured speech provider once per process.
// Provider packages register themselves when imported by the binary.
func provideTranscriber(settings *config.Settings, logger *zap.Logger) (api.Transcriber, error) {
	return provider.New(settings.Provider, settings, logger)
}

func provideAudioSource(settings *config.Settings) (audio.Source, error) {
	return audio.NewSource(settings.AudioBackend)
}

func provideMetrics() *metrics.Recorder {
	return metrics.NewRecorder()
}

func provideAdaptiveTranscriber(source audio.Source, logger *zap.Logger, recorder *metrics.Recorder) *adaptive.AdaptiveTranscriber {
	return adaptive.NewAdaptiveTranscriber(source, logger.Named("adaptive"), recorder)
}

func provideRenameDAO(settings *config.Settings) (repository.RenameDAO, error) {
	db, err := sqlite.NewSQLiteDB(settings.HistoryDB)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// provideUploader returns nil when uploads are disabled
func provideUploader(settings *config.Settings, logger *zap.Logger) (objectstore.Uploader, error) {
	if !settings.Upload.Enabled {
		return nil, nil
	}
	uploader, err := objectstore.NewMinioUploader(context.Background(), settings.Upload, logger.Named("upload"))
	if err != nil {
		return nil, err
	}
	return uploader, nil
}
