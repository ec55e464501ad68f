package audio

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "voice-renamer/internal/app/errors"
)

func writeTestWAV(t *testing.T, dir string, name string, seconds int) string {
	t.Helper()
	data, err := EncodeWAV(generateSamples(8000*seconds), 8000, 1)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestNativeSource_LoadSliceExport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := writeTestWAV(t, dir, "voice.wav", 5)

	source := NewNativeSource()
	clip, err := source.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, clip.Duration)

	tests := []struct {
		name     string
		limit    time.Duration
		expected time.Duration
	}{
		{"first rung", 2 * time.Second, 2 * time.Second},
		{"longer than recording", 10 * time.Second, 5 * time.Second},
		{"no limit", 0, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.name+".wav")
			sliced := source.Slice(clip, tt.limit)
			assert.Equal(t, tt.expected, sliced.Effective())

			require.NoError(t, source.Export(ctx, sliced, out, FormatWAV))

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			_, duration, err := GetWAVInfo(data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, duration)
		})
	}

	// the source is untouched
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNativeSource_LoadUnreadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not audio"), 0644))

	_, err := NewNativeSource().Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrUnreadableAudio))
}

func TestNativeSource_ExportRejectsOtherFormats(t *testing.T) {
	dir := t.TempDir()
	path := writeTestWAV(t, dir, "voice.wav", 1)
	source := NewNativeSource()
	clip, err := source.Load(context.Background(), path)
	require.NoError(t, err)

	err = source.Export(context.Background(), clip, filepath.Join(dir, "out.mp3"), "mp3")
	assert.Error(t, err)
}

func TestAutoSource_RoutesWAVNatively(t *testing.T) {
	dir := t.TempDir()
	path := writeTestWAV(t, dir, "voice.WAV", 1)

	fallback := &countingSource{}
	source := NewAutoSource(NewNativeSource(), fallback)

	clip, err := source.Load(context.Background(), path)
	require.NoError(t, err)
	assert.NotNil(t, clip.wav)
	assert.Zero(t, fallback.loads)

	require.NoError(t, source.Export(context.Background(), source.Slice(clip, 500*time.Millisecond), filepath.Join(dir, "out.wav"), FormatWAV))
	assert.Zero(t, fallback.exports)
}

func TestAutoSource_FallsBack(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.wav")
	require.NoError(t, os.WriteFile(broken, []byte("RIFF"), 0644))
	mp3 := filepath.Join(dir, "voice.mp3")
	require.NoError(t, os.WriteFile(mp3, []byte("ID3"), 0644))

	fallback := &countingSource{}
	source := NewAutoSource(NewNativeSource(), fallback)

	for _, path := range []string{broken, mp3} {
		clip, err := source.Load(context.Background(), path)
		require.NoError(t, err)
		require.NoError(t, source.Export(context.Background(), clip, filepath.Join(dir, "out.wav"), FormatWAV))
	}
	assert.Equal(t, 2, fallback.loads)
	assert.Equal(t, 2, fallback.exports)
}

func TestNewSource(t *testing.T) {
	for _, backend := range []string{"", "auto", "ffmpeg", "native", "NATIVE"} {
		source, err := NewSource(backend)
		assert.NoError(t, err, backend)
		assert.NotNil(t, source, backend)
	}

	_, err := NewSource("sox")
	assert.Error(t, err)
}

func TestClip_Effective(t *testing.T) {
	clip := &Clip{Path: "a.mp3", Duration: 20 * time.Second}

	assert.Equal(t, 20*time.Second, clip.Effective())
	assert.Equal(t, 8*time.Second, clip.Slice(8*time.Second).Effective())
	assert.Equal(t, 20*time.Second, clip.Slice(30*time.Second).Effective())
	assert.Equal(t, 20*time.Second, clip.Slice(-1).Effective())

	unknown := &Clip{Path: "stream.ogg"}
	assert.Equal(t, 8*time.Second, unknown.Slice(8*time.Second).Effective())
	assert.Equal(t, time.Duration(0), clip.Limit, "Slice must not modify the receiver")
}

type countingSource struct {
	loads   int
	exports int
}

func (s *countingSource) Load(_ context.Context, path string) (*Clip, error) {
	s.loads++
	return &Clip{Path: path}, nil
}

func (s *countingSource) Slice(clip *Clip, d time.Duration) *Clip {
	return clip.Slice(d)
}

func (s *countingSource) Export(_ context.Context, clip *Clip, path string, format string) error {
	s.exports++
	return nil
}
