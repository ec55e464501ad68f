package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	apperrors "voice-renamer/internal/app/errors"
)

// NativeSource trims RIFF/WAV recordings in-process by copying a prefix of
// the data chunk. It never decodes samples, so every PCM layout works.
type NativeSource struct{}

func NewNativeSource() *NativeSource {
	return &NativeSource{}
}

func (s *NativeSource) Load(_ context.Context, path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Tag(apperrors.ErrUnreadableAudio, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, apperrors.Tag(apperrors.ErrUnreadableAudio, err)
	}

	layout, err := readWAVLayout(f, info.Size())
	if err != nil {
		return nil, apperrors.Tag(apperrors.ErrUnreadableAudio, fmt.Errorf("decode %s: %w", path, err))
	}

	return &Clip{Path: path, Duration: layout.duration(), wav: layout}, nil
}

func (s *NativeSource) Slice(clip *Clip, d time.Duration) *Clip {
	return clip.Slice(d)
}

func (s *NativeSource) Export(_ context.Context, clip *Clip, path string, format string) error {
	if format != FormatWAV {
		return fmt.Errorf("native audio backend cannot export %q, only %q", format, FormatWAV)
	}
	if clip.wav == nil {
		return fmt.Errorf("clip %s was not loaded by the native backend", clip.Path)
	}

	src, err := os.Open(clip.Path)
	if err != nil {
		return apperrors.Tag(apperrors.ErrUnreadableAudio, err)
	}
	defer src.Close()

	if _, err := src.Seek(clip.wav.dataOffset, io.SeekStart); err != nil {
		return apperrors.Tag(apperrors.ErrUnreadableAudio, err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return apperrors.Tag(apperrors.ErrFileWriteFailed, err)
	}

	size := clip.wav.payloadSize(clip.Limit)
	if err := writeWAV(dst, clip.wav.fmtChunk, src, size); err != nil {
		dst.Close()
		os.Remove(path)
		return apperrors.Tag(apperrors.ErrUnreadableAudio, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return apperrors.Tag(apperrors.ErrFileWriteFailed, err)
	}
	return nil
}
