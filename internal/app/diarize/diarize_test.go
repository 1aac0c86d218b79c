package diarize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
	"github.com/concord-consortium/audio-transcriber/internal/app/logger"
	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

type stubClusterer struct {
	labels []int
	err    error
}

func (s *stubClusterer) Cluster(vectors [][]float64, k int) ([]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.labels, nil
}

func TestSpeakerWindows_LabelsAndBoundaries(t *testing.T) {
	d := NewDiarizer(logger.NewNop(), &stubClusterer{labels: []int{2, 2, 1}}, 0.5, 6)

	windows := d.SpeakerWindows(sineWave(440, 1.5, 8000))
	require.Len(t, windows, 3)

	assert.Equal(t, model.SpeakerWindow{Start: 0, End: 0.5, Speaker: "2"}, windows[0])
	assert.Equal(t, model.SpeakerWindow{Start: 0.5, End: 1.0, Speaker: "2"}, windows[1])
	assert.Equal(t, model.SpeakerWindow{Start: 1.0, End: 1.5, Speaker: "1"}, windows[2])
	assert.Equal(t, 0, d.Warnings())
}

func TestSpeakerWindows_EmptyWaveformDegrades(t *testing.T) {
	d := NewDiarizer(logger.NewNop(), NewKMeans(1), 0.5, 6)

	windows := d.SpeakerWindows(model.Waveform{})
	assert.Nil(t, windows)
	assert.Equal(t, 1, d.Warnings())
}

func TestSpeakerWindows_ClusterFailureDegrades(t *testing.T) {
	d := NewDiarizer(logger.NewNop(), &stubClusterer{err: apperrors.ErrNoFeatures}, 0.5, 6)

	windows := d.SpeakerWindows(sineWave(440, 1.5, 8000))
	assert.Nil(t, windows)
	assert.Equal(t, 1, d.Warnings())
}

func TestDegrade_CountsWarnings(t *testing.T) {
	d := NewDiarizer(logger.NewNop(), NewKMeans(1), 0.5, 6)

	d.Degrade("decoding waveform failed", apperrors.ErrDecodeFailed)
	d.Degrade("decoding waveform failed", apperrors.ErrDecodeFailed)
	assert.Equal(t, 2, d.Warnings())
}

func TestNewDiarizer_Defaults(t *testing.T) {
	d := NewDiarizer(logger.NewNop(), NewKMeans(1), 0, 0)
	assert.Equal(t, DefaultWindowSeconds, d.windowSeconds)
	assert.Equal(t, DefaultSpeakers, d.speakers)
}

func TestSpeakerWindows_EndToEnd(t *testing.T) {
	d := NewDiarizer(logger.NewNop(), NewKMeans(42), 0.5, 6)

	windows := d.SpeakerWindows(sineWave(440, 3.0, 8000))
	require.Len(t, windows, 6)
	for i, w := range windows {
		assert.InDelta(t, float64(i)*0.5, w.Start, 1e-9)
		assert.InDelta(t, float64(i+1)*0.5, w.End, 1e-9)
		assert.NotEmpty(t, w.Speaker)
	}
	assert.Equal(t, 0, d.Warnings())
}
