package audio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

// WAVFormat holds the fields of a "fmt " chunk shared by all PCM variants
type WAVFormat struct {
	AudioFormat   uint16 // 1 PCM, 3 IEEE float, 0xFFFE extensible
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

type riffHeader struct {
	ChunkID   [4]byte // "RIFF"
	ChunkSize uint32  // File size - 8 bytes
	Format    [4]byte // "WAVE"
}

type chunkHeader struct {
	ID   [4]byte
	Size uint32
}

// wavLayout locates the audio payload of a WAV file without reading it
type wavLayout struct {
	format     WAVFormat
	fmtChunk   []byte // raw "fmt " body, written back verbatim on export
	dataOffset int64
	dataSize   int64
}

// readWAVLayout walks the RIFF chunks of r up to the "data" chunk.
// Chunks other than "fmt " and "data" (LIST, fact, ...) are skipped.
func readWAVLayout(r io.ReadSeeker, fileSize int64) (*wavLayout, error) {
	var riff riffHeader
	if err := binary.Read(r, binary.LittleEndian, &riff); err != nil {
		return nil, fmt.Errorf("failed to read RIFF header: %w", err)
	}
	if string(riff.ChunkID[:]) != "RIFF" {
		return nil, errors.New("invalid WAV file: missing RIFF header")
	}
	if string(riff.Format[:]) != "WAVE" {
		return nil, errors.New("invalid WAV file: missing WAVE format")
	}

	layout := &wavLayout{}
	offset := int64(12)
	for {
		var ch chunkHeader
		if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, errors.New("invalid WAV file: missing data chunk")
			}
			return nil, fmt.Errorf("failed to read chunk header: %w", err)
		}
		offset += 8
		size := int64(ch.Size)
		pad := size & 1

		switch string(ch.ID[:]) {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("invalid WAV file: fmt chunk too short (%d bytes)", size)
			}
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("failed to read fmt chunk: %w", err)
			}
			if err := binary.Read(bytes.NewReader(body[:16]), binary.LittleEndian, &layout.format); err != nil {
				return nil, fmt.Errorf("failed to decode fmt chunk: %w", err)
			}
			if err := validateFormat(layout.format); err != nil {
				return nil, err
			}
			layout.fmtChunk = body
			if pad > 0 {
				if _, err := r.Seek(pad, io.SeekCurrent); err != nil {
					return nil, err
				}
			}
		case "data":
			if layout.fmtChunk == nil {
				return nil, errors.New("invalid WAV file: data chunk before fmt chunk")
			}
			// streaming writers leave the size at 0 or 0xFFFFFFFF
			if remaining := fileSize - offset; size == 0 || size > remaining {
				size = remaining
			}
			layout.dataOffset = offset
			layout.dataSize = size - size%int64(layout.format.BlockAlign)
			return layout, nil
		default:
			if _, err := r.Seek(size+pad, io.SeekCurrent); err != nil {
				return nil, err
			}
		}
		offset += size + pad
	}
}

func validateFormat(f WAVFormat) error {
	switch f.AudioFormat {
	case 1, 3, 0xFFFE:
	default:
		return fmt.Errorf("unsupported audio format: %d (only PCM and float are supported)", f.AudioFormat)
	}
	if f.NumChannels == 0 {
		return errors.New("invalid WAV file: zero channels")
	}
	if f.SampleRate == 0 {
		return errors.New("invalid sample rate: 0")
	}
	if f.BlockAlign == 0 {
		return errors.New("invalid WAV file: zero block align")
	}
	return nil
}

// duration of the whole payload
func (l *wavLayout) duration() time.Duration {
	frames := l.dataSize / int64(l.format.BlockAlign)
	return time.Duration(frames * int64(time.Second) / int64(l.format.SampleRate))
}

// payloadSize returns how many bytes of the payload cover the first d of audio.
// d <= 0 selects the whole payload.
func (l *wavLayout) payloadSize(d time.Duration) int64 {
	if d <= 0 {
		return l.dataSize
	}
	frames := int64(d) * int64(l.format.SampleRate) / int64(time.Second)
	size := frames * int64(l.format.BlockAlign)
	if size > l.dataSize {
		return l.dataSize
	}
	return size
}

// writeWAV writes a RIFF file holding fmtChunk and dataSize bytes read from data
func writeWAV(w io.Writer, fmtChunk []byte, data io.Reader, dataSize int64) error {
	fmtPad := int64(len(fmtChunk) & 1)
	dataPad := dataSize & 1
	riffSize := 4 + 8 + int64(len(fmtChunk)) + fmtPad + 8 + dataSize + dataPad
	if riffSize > 0xFFFFFFFF {
		return fmt.Errorf("WAV payload too large: %d bytes", dataSize)
	}

	bw := bufio.NewWriter(w)
	header := riffHeader{
		ChunkID:   [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize: uint32(riffSize),
		Format:    [4]byte{'W', 'A', 'V', 'E'},
	}
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("failed to write WAV header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, chunkHeader{ID: [4]byte{'f', 'm', 't', ' '}, Size: uint32(len(fmtChunk))}); err != nil {
		return err
	}
	if _, err := bw.Write(fmtChunk); err != nil {
		return err
	}
	if fmtPad > 0 {
		bw.WriteByte(0)
	}
	if err := binary.Write(bw, binary.LittleEndian, chunkHeader{ID: [4]byte{'d', 'a', 't', 'a'}, Size: uint32(dataSize)}); err != nil {
		return err
	}
	if _, err := io.CopyN(bw, data, dataSize); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	if dataPad > 0 {
		bw.WriteByte(0)
	}
	return bw.Flush()
}

// EncodeWAV encodes interleaved PCM-16 samples into WAV format
func EncodeWAV(samples []int16, sampleRate int, channels int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("channel count must be positive, got %d", channels)
	}

	format := WAVFormat{
		AudioFormat:   1,
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * channels * 2),
		BlockAlign:    uint16(channels * 2),
		BitsPerSample: 16,
	}
	var fmtChunk bytes.Buffer
	binary.Write(&fmtChunk, binary.LittleEndian, format)

	var payload bytes.Buffer
	if err := binary.Write(&payload, binary.LittleEndian, samples); err != nil {
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}

	var out bytes.Buffer
	if err := writeWAV(&out, fmtChunk.Bytes(), &payload, int64(payload.Len())); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// GetWAVInfo reads the format and duration of an in-memory WAV file
func GetWAVInfo(data []byte) (WAVFormat, time.Duration, error) {
	layout, err := readWAVLayout(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return WAVFormat{}, 0, err
	}
	return layout.format, layout.duration(), nil
}
