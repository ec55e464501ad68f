package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "voice-renamer/internal/app/errors"
	"voice-renamer/internal/app/model"
)

func parseDurationOutput(output string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil {
		return 0, err
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative duration %v", seconds)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

func Is16kHzWavFile(ctx context.Context, filePath string) (bool, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "quiet", "-print_format", "json", "-show_streams", filePath)
	output, err := cmd.Output()
	if err != nil {
		return false, err
	}
	return parseProbeOutput(output)
}

func parseProbeOutput(output []byte) (bool, error) {
	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(output, &probeOutput); err != nil {
		return false, err
	}

	for _, stream := range probeOutput.Streams {
		if stream.CodecType == "audio" && stream.CodecName == "pcm_s16le" && stream.SampleRate == 16000 {
			return true, nil
		}
	}

	return false, nil
}

// ConvertTo16kHzWav writes a 16kHz mono PCM copy of inputFilePath into outputDir
// and returns its path. The caller owns the returned file.
func ConvertTo16kHzWav(ctx context.Context, inputFilePath string, outputDir string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(inputFilePath), filepath.Ext(inputFilePath))
	outputFilePath := filepath.Join(outputDir, base+"_16khz.wav")

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y", "-v", "error", "-i", inputFilePath,
		"-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", outputFilePath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.Remove(outputFilePath)
		return "", apperrors.Tag(apperrors.ErrUnreadableAudio,
			fmt.Errorf("FFmpeg error: %v, stderr: %s", err, strings.TrimSpace(stderr.String())))
	}

	return outputFilePath, nil
}
