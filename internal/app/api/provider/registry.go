package provider

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	apperrors "voice-renamer/internal/app/errors"
	"voice-renamer/internal/config"
)

// ProviderCreator builds a provider from the runtime settings
type ProviderCreator func(settings *config.Settings, logger *zap.Logger) (TranscriptionProvider, error)

type registration struct {
	info    ProviderInfo
	creator ProviderCreator
}

// providerRegistry stores provider creation functions
var (
	providerRegistry = make(map[string]registration)
	registryMutex    sync.RWMutex
)

// RegisterProvider registers a provider creator function. Provider packages
// call it from init.
func RegisterProvider(providerType string, info ProviderInfo, creator ProviderCreator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	if info.Name == "" {
		info.Name = providerType
	}
	providerRegistry[providerType] = registration{info: info, creator: creator}
}

// GetProviderCreator returns the creator function for a provider type
func GetProviderCreator(providerType string) (ProviderCreator, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	reg, ok := providerRegistry[providerType]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrProviderNotFound, "provider type %s not registered", providerType)
	}
	return reg.creator, nil
}

// GetProviderInfo returns provider information without creating an instance
func GetProviderInfo(providerType string) (ProviderInfo, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	reg, ok := providerRegistry[providerType]
	if !ok {
		return ProviderInfo{}, apperrors.Wrapf(apperrors.ErrProviderNotFound, "provider type %s not registered", providerType)
	}
	return reg.info, nil
}

// ListRegisteredProviders returns all registered providers ordered by name
func ListRegisteredProviders() []ProviderInfo {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	providers := make([]ProviderInfo, 0, len(providerRegistry))
	for _, reg := range providerRegistry {
		providers = append(providers, reg.info)
	}
	sort.Slice(providers, func(i, j int) bool {
		return providers[i].Name < providers[j].Name
	})
	return providers
}

// New creates the provider named by providerType and validates its
// configuration. Configuration problems match ErrModelNotLoaded: without them
// no model can be loaded.
func New(providerType string, settings *config.Settings, logger *zap.Logger) (TranscriptionProvider, error) {
	creator, err := GetProviderCreator(providerType)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	p, err := creator(settings, logger.With(zap.String("provider", providerType)))
	if err != nil {
		return nil, apperrors.Tag(apperrors.ErrModelNotLoaded, fmt.Errorf("create %s provider: %w", providerType, err))
	}
	if err := p.ValidateConfiguration(); err != nil {
		return nil, apperrors.Tag(apperrors.ErrModelNotLoaded, fmt.Errorf("%s provider validation failed: %w", providerType, err))
	}
	return p, nil
}
