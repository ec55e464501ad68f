//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"voice-renamer/internal/app/renamer"
	"voice-renamer/internal/app/repository"
	"voice-renamer/internal/config"
)

// InitializeRenamer builds the full rename pipeline from settings
func InitializeRenamer(settings *config.Settings, logger *zap.Logger) (*renamer.Renamer, error) {
	wire.Build(
		provideTranscriber,
		provideAudioSource,
		provideMetrics,
		provideAdaptiveTranscriber,
		provideRenameDAO,
		provideUploader,
		renamer.NewRenamer,
	)
	return &renamer.Renamer{}, nil
}

// InitializeHistory opens the rename history only
func InitializeHistory(settings *config.Settings) (repository.RenameDAO, error) {
	wire.Build(provideRenameDAO)
	return nil, nil
}
