package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	apperrors "voice-renamer/internal/app/errors"
)

// FFmpegSource decodes any container ffmpeg understands by shelling out to
// ffprobe and ffmpeg.
type FFmpegSource struct {
	ffmpegPath  string
	ffprobePath string
}

func NewFFmpegSource() *FFmpegSource {
	return &FFmpegSource{ffmpegPath: "ffmpeg", ffprobePath: "ffprobe"}
}

func (s *FFmpegSource) Load(ctx context.Context, path string) (*Clip, error) {
	cmd := exec.CommandContext(ctx, s.ffprobePath, "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, apperrors.Tag(apperrors.ErrUnreadableAudio,
			fmt.Errorf("ffprobe %s: %v, stderr: %s (make sure the necessary codecs are installed)", path, err, strings.TrimSpace(stderr.String())))
	}

	duration, err := parseDurationOutput(string(output))
	if err != nil {
		// some streams carry no container duration; ffmpeg can still cut them
		duration = 0
	}

	return &Clip{Path: path, Duration: duration}, nil
}

func (s *FFmpegSource) Slice(clip *Clip, d time.Duration) *Clip {
	return clip.Slice(d)
}

func (s *FFmpegSource) Export(ctx context.Context, clip *Clip, path string, format string) error {
	args := exportArgs(clip, path, format)

	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.Remove(path)
		return apperrors.Tag(apperrors.ErrUnreadableAudio,
			fmt.Errorf("FFmpeg error: %v, stderr: %s", err, strings.TrimSpace(stderr.String())))
	}
	return nil
}

func exportArgs(clip *Clip, path string, format string) []string {
	args := []string{"-y", "-v", "error", "-i", clip.Path}
	if clip.Limit > 0 {
		args = append(args, "-t", strconv.FormatFloat(clip.Limit.Seconds(), 'f', 3, 64))
	}
	args = append(args, "-vn")
	if format == FormatWAV {
		// whisper.cpp only reads 16kHz PCM, emit it directly
		args = append(args, "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1")
	}
	return append(args, "-f", format, path)
}
