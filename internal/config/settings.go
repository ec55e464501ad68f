package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	apperrors "voice-renamer/internal/app/errors"
)

// Built-in defaults
const (
	DefaultProvider        = "whisper_cpp"
	DefaultLanguage        = "uk"
	DefaultInitialDuration = 8
	DefaultMinWords        = 8
	DefaultMaxNameWords    = 8
	DefaultAudioBackend    = "auto"

	DefaultWhisperCppTimeout = 300 * time.Second
	DefaultOpenAIModel       = "whisper-1"
	DefaultGeminiModel       = "gemini-2.5-flash"
)

// DefaultExtensions lists the recording formats picked up from the input directory
var DefaultExtensions = []string{".wav", ".mp3", ".m4a", ".flac", ".ogg"}

// Settings is the complete runtime configuration of v2n.
// Values come from defaults, then the YAML file, then command line flags.
type Settings struct {
	Provider string `yaml:"provider" validate:"required"`
	Language string `yaml:"language" validate:"required"`

	// InitialDuration is the first rung of the duration ladder, in seconds
	InitialDuration int `yaml:"initial_duration" validate:"gt=0"`
	MinWords        int `yaml:"min_words" validate:"gte=0"`
	MaxNameWords    int `yaml:"max_name_words" validate:"gt=0"`

	Extensions   []string `yaml:"extensions" validate:"min=1,dive,required"`
	AudioBackend string   `yaml:"audio_backend" validate:"oneof=auto ffmpeg native"`
	TempDir      string   `yaml:"temp_dir"`
	HistoryDB    string   `yaml:"history_db"`
	MetricsFile  string   `yaml:"metrics_file"`
	Debug        bool     `yaml:"debug"`

	WhisperCpp WhisperCppSettings `yaml:"whisper_cpp"`
	OpenAI     OpenAISettings     `yaml:"openai"`
	Gemini     GeminiSettings     `yaml:"gemini"`
	Upload     UploadSettings     `yaml:"upload"`

	APIKeys *APIKeys `yaml:"-" validate:"-"`
}

type WhisperCppSettings struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads" validate:"gte=0"`
	TimeoutSec int    `yaml:"timeout_sec" validate:"gte=0"`
}

type OpenAISettings struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
	Prompt  string `yaml:"prompt"`
}

type GeminiSettings struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
}

// UploadSettings configures the optional copy of every renamed file to an
// S3-compatible bucket.
type UploadSettings struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint" validate:"required_if=Enabled true"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket" validate:"required_if=Enabled true"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// DefaultSettings returns the built-in configuration
func DefaultSettings() *Settings {
	home, _ := os.UserHomeDir()
	return &Settings{
		Provider:        DefaultProvider,
		Language:        DefaultLanguage,
		InitialDuration: DefaultInitialDuration,
		MinWords:        DefaultMinWords,
		MaxNameWords:    DefaultMaxNameWords,
		Extensions:      append([]string(nil), DefaultExtensions...),
		AudioBackend:    DefaultAudioBackend,
		HistoryDB:       filepath.Join(home, ".v2n", "history.db"),
		WhisperCpp: WhisperCppSettings{
			BinaryPath: os.Getenv("WHISPER_CPP_BINARY"),
			ModelPath:  os.Getenv("WHISPER_CPP_MODEL"),
			TimeoutSec: int(DefaultWhisperCppTimeout / time.Second),
		},
		OpenAI: OpenAISettings{
			Model: DefaultOpenAIModel,
		},
		Gemini: GeminiSettings{
			Model: DefaultGeminiModel,
		},
		Upload: UploadSettings{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    os.Getenv("MINIO_BUCKET"),
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		},
	}
}

// DefaultConfigPath returns ~/.v2n/config.yaml
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".v2n", "config.yaml")
}

// LoadSettings overlays the YAML file at configPath on top of the defaults.
// An empty configPath means the default location, which may be absent;
// an explicit path must exist.
func LoadSettings(configPath string) (*Settings, error) {
	settings := DefaultSettings()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath()
	}
	configPath = os.ExpandEnv(configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			settings.normalize()
			return settings, nil
		}
		return nil, apperrors.Wrapf(err, "failed to read config file %s", configPath)
	}

	// ${VAR} references inside the file are expanded before parsing
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), settings); err != nil {
		return nil, apperrors.Tag(apperrors.ErrInvalidConfiguration,
			fmt.Errorf("failed to parse YAML %s: %w", configPath, err))
	}

	settings.normalize()
	return settings, nil
}

// SaveSettings writes settings as YAML, creating the parent directory
func SaveSettings(settings *Settings, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	return os.WriteFile(configPath, data, 0644)
}

// InitialDurationValue returns the first ladder rung as a time.Duration
func (s *Settings) InitialDurationValue() time.Duration {
	return time.Duration(s.InitialDuration) * time.Second
}

// WhisperCppTimeout returns the per-invocation timeout of the whisper.cpp binary
func (s *Settings) WhisperCppTimeout() time.Duration {
	if s.WhisperCpp.TimeoutSec <= 0 {
		return DefaultWhisperCppTimeout
	}
	return time.Duration(s.WhisperCpp.TimeoutSec) * time.Second
}

// ApplyModel selects the model of the configured provider: a ggml file for
// whisper_cpp, a model name for the remote providers.
func (s *Settings) ApplyModel(model string) {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "whisper_cpp":
		s.WhisperCpp.ModelPath = model
	case "openai":
		s.OpenAI.Model = model
	case "gemini":
		s.Gemini.Model = model
	}
}

// Validate checks the struct tags and reports the first violation as an
// invalid configuration error naming the YAML key.
func (s *Settings) Validate() error {
	s.normalize()

	err := newValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if stderrors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return apperrors.InvalidField(strings.TrimPrefix(fe.Namespace(), "Settings."), describe(fe))
	}
	return apperrors.Tag(apperrors.ErrInvalidConfiguration, err)
}

func (s *Settings) normalize() {
	s.Provider = strings.ToLower(strings.TrimSpace(s.Provider))
	s.AudioBackend = strings.ToLower(strings.TrimSpace(s.AudioBackend))
	for i, ext := range s.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.Extensions[i] = ext
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
