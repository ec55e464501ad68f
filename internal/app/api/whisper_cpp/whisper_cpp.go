package whisper_cpp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"voice-renamer/internal/app/audio"
	"voice-renamer/internal/app/util/files"
)

// LocalConfig holds the settings of a whisper.cpp installation
type LocalConfig struct {
	BinaryPath string
	ModelPath  string
	Prompt     string
	Threads    int
	Timeout    time.Duration
	TempDir    string
}

// LocalTranscriber implements local transcription, using local binary commands.
type LocalTranscriber struct {
	config LocalConfig
	logger *zap.Logger
}

// NewLocalTranscriber creates a new instance of LocalTranscriber.
func NewLocalTranscriber(config LocalConfig, logger *zap.Logger) *LocalTranscriber {
	if config.TempDir == "" {
		config.TempDir = os.TempDir()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalTranscriber{config: config, logger: logger}
}

// Transcript runs the whisper.cpp binary on inputFilePath and returns the text
// it writes to its -otxt output. Input that is not 16kHz PCM WAV is converted
// first; all intermediate files live in a per-call work directory.
func (lt *LocalTranscriber) Transcript(ctx context.Context, inputFilePath string, language string) (string, error) {
	workDir, err := os.MkdirTemp(lt.config.TempDir, "whisper_cpp_")
	if err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	// ffprobe failures fall through to the conversion, which reports them properly
	is16kHzWav, err := audio.Is16kHzWavFile(ctx, inputFilePath)
	if err != nil || !is16kHzWav {
		lt.logger.Debug("converting input to 16kHz WAV", zap.String("file", inputFilePath))
		inputFilePath, err = audio.ConvertTo16kHzWav(ctx, inputFilePath, workDir)
		if err != nil {
			return "", err
		}
	}

	if lt.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, lt.config.Timeout)
		defer cancel()
	}

	outputFile := filepath.Join(workDir, "transcript")
	args := lt.buildArgs(inputFilePath, outputFile, language)

	command := exec.CommandContext(ctx, lt.config.BinaryPath, args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr
	command.WaitDelay = time.Second

	lt.logger.Debug("running whisper.cpp",
		zap.String("command", lt.config.BinaryPath+" "+strings.Join(args, " ")))

	if err := command.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("whisper.cpp timed out after %v", lt.config.Timeout)
		}
		return "", fmt.Errorf("command execution error: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	output, err := files.ReadOutputFile(outputFile + ".txt")
	if err != nil {
		return "", fmt.Errorf("failed to read output file: %w", err)
	}

	// one segment per line
	return strings.Join(strings.Fields(output), " "), nil
}

func (lt *LocalTranscriber) buildArgs(inputFilePath, outputFile, language string) []string {
	if language == "" {
		language = "auto"
	}
	args := []string{
		"-m", lt.config.ModelPath,
		"-l", language,
		"-nt",
		"-otxt",
		"-f", inputFilePath,
		"-of", outputFile,
	}
	if lt.config.Prompt != "" {
		args = append(args, "--prompt", lt.config.Prompt)
	}
	if lt.config.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(lt.config.Threads))
	}
	return args
}

// ValidateConfiguration validates the provider configuration
func (lt *LocalTranscriber) ValidateConfiguration() error {
	if lt.config.BinaryPath == "" {
		return fmt.Errorf("whisper_cpp.binary_path is not set (or set WHISPER_CPP_BINARY)")
	}
	if lt.config.ModelPath == "" {
		return fmt.Errorf("whisper_cpp.model_path is not set (or set WHISPER_CPP_MODEL)")
	}
	if _, err := os.Stat(lt.config.BinaryPath); os.IsNotExist(err) {
		return fmt.Errorf("whisper.cpp binary not found at %s", lt.config.BinaryPath)
	}
	if _, err := os.Stat(lt.config.ModelPath); os.IsNotExist(err) {
		return fmt.Errorf("whisper model not found at %s", lt.config.ModelPath)
	}
	return nil
}

// HealthCheck performs a health check on the provider
func (lt *LocalTranscriber) HealthCheck(ctx context.Context) error {
	if err := lt.ValidateConfiguration(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
