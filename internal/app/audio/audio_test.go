package audio

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
)

func writeWav(t *testing.T, path string, data []int, channels, rate int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

func TestDecodeWaveform_Mono(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.wav")
	writeWav(t, path, []int{0, 16384, -16384, 32767}, 1, 16000)

	w, err := DecodeWaveform(path)
	require.NoError(t, err)

	assert.Equal(t, 16000, w.SampleRate)
	require.Len(t, w.Samples, 4)
	assert.InDelta(t, 0.0, w.Samples[0], 1e-9)
	assert.InDelta(t, 0.5, w.Samples[1], 1e-4)
	assert.InDelta(t, -0.5, w.Samples[2], 1e-4)
	assert.InDelta(t, 1.0, w.Samples[3], 1e-3)
}

func TestDecodeWaveform_StereoAveraged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	// Frames: (16384, 0) and (-16384, -16384).
	writeWav(t, path, []int{16384, 0, -16384, -16384}, 2, 44100)

	w, err := DecodeWaveform(path)
	require.NoError(t, err)

	assert.Equal(t, 44100, w.SampleRate)
	require.Len(t, w.Samples, 2)
	assert.InDelta(t, 0.25, w.Samples[0], 1e-4)
	assert.InDelta(t, -0.5, w.Samples[1], 1e-4)
}

func TestDecodeWaveform_MissingFile(t *testing.T) {
	_, err := DecodeWaveform("/does/not/exist.wav")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}

func TestDecodeWaveform_NotAWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a riff header"), 0o644))

	_, err := DecodeWaveform(path)
	require.Error(t, err)
}
