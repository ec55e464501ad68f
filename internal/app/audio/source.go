package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Backend names accepted by NewSource
const (
	BackendAuto   = "auto"
	BackendFFmpeg = "ffmpeg"
	BackendNative = "native"
)

// FormatWAV is the only export format every backend supports
const FormatWAV = "wav"

// Source decodes recordings and writes trimmed copies of them.
type Source interface {
	// Load opens path and probes it. Decode failures match ErrUnreadableAudio.
	Load(ctx context.Context, path string) (*Clip, error)
	// Slice limits clip to its first d of audio. d <= 0 means the whole recording.
	Slice(clip *Clip, d time.Duration) *Clip
	// Export writes the (possibly limited) clip to path in the given format.
	Export(ctx context.Context, clip *Clip, path string, format string) error
}

// Clip is a handle on a loaded recording
type Clip struct {
	Path     string
	Duration time.Duration // total length, 0 when unknown
	Limit    time.Duration // 0 means no limit

	wav *wavLayout // set by the native backend
}

// Slice returns a copy of c limited to d
func (c *Clip) Slice(d time.Duration) *Clip {
	sliced := *c
	if d < 0 {
		d = 0
	}
	sliced.Limit = d
	return &sliced
}

// Effective returns the amount of audio an export of c will contain
func (c *Clip) Effective() time.Duration {
	if c.Limit > 0 && (c.Duration == 0 || c.Limit < c.Duration) {
		return c.Limit
	}
	return c.Duration
}

// NewSource returns the audio backend with the given name
func NewSource(backend string) (Source, error) {
	switch strings.ToLower(backend) {
	case "", BackendAuto:
		return NewAutoSource(NewNativeSource(), NewFFmpegSource()), nil
	case BackendFFmpeg:
		return NewFFmpegSource(), nil
	case BackendNative:
		return NewNativeSource(), nil
	default:
		return nil, fmt.Errorf("unknown audio backend: %s", backend)
	}
}

// AutoSource decodes WAV files natively and hands everything else, including
// WAV files the native reader rejects, to ffmpeg.
type AutoSource struct {
	native   *NativeSource
	fallback Source
}

func NewAutoSource(native *NativeSource, fallback Source) *AutoSource {
	return &AutoSource{native: native, fallback: fallback}
}

func (s *AutoSource) Load(ctx context.Context, path string) (*Clip, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		clip, err := s.native.Load(ctx, path)
		if err == nil {
			return clip, nil
		}
	}
	return s.fallback.Load(ctx, path)
}

func (s *AutoSource) Slice(clip *Clip, d time.Duration) *Clip {
	return clip.Slice(d)
}

func (s *AutoSource) Export(ctx context.Context, clip *Clip, path string, format string) error {
	if clip.wav != nil {
		return s.native.Export(ctx, clip, path, format)
	}
	return s.fallback.Export(ctx, clip, path, format)
}
