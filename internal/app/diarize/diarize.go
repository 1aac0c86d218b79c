// Package diarize implements the local speaker heuristic: cheap
// spectral features per fixed time window, k-means clustering of the
// windows into pseudo-speaker labels, and lookup of a label for a
// transcript segment's start time. Labels are arbitrary cluster
// integers, not verified identities.
package diarize

import (
	"strconv"

	"github.com/concord-consortium/audio-transcriber/internal/app/logger"
	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

const (
	// DefaultWindowSeconds is the diarization window length.
	DefaultWindowSeconds = 0.5
	// DefaultSpeakers is the upper bound on detected speakers. It is
	// never inferred from the audio.
	DefaultSpeakers = 6
)

type Diarizer struct {
	log           *logger.Logger
	clusterer     Clusterer
	windowSeconds float64
	speakers      int
	warnings      int
}

func NewDiarizer(log *logger.Logger, clusterer Clusterer, windowSeconds float64, speakers int) *Diarizer {
	if windowSeconds <= 0 {
		windowSeconds = DefaultWindowSeconds
	}
	if speakers <= 0 {
		speakers = DefaultSpeakers
	}
	return &Diarizer{
		log:           log.With("component", "diarizer"),
		clusterer:     clusterer,
		windowSeconds: windowSeconds,
		speakers:      speakers,
	}
}

// SpeakerWindows labels fixed windows of the waveform with cluster
// speakers. It never fails the run: any error is logged as a warning
// and an empty list returned, which callers must treat as
// "diarization unavailable", not as an error. Transcription always has
// priority over speaker attribution.
func (d *Diarizer) SpeakerWindows(w model.Waveform) []model.SpeakerWindow {
	features, err := ExtractFeatures(w, d.windowSeconds)
	if err != nil {
		d.warn("feature extraction failed", err)
		return nil
	}

	labels, err := d.clusterer.Cluster(features, d.speakers)
	if err != nil {
		d.warn("clustering failed", err)
		return nil
	}

	windows := make([]model.SpeakerWindow, len(labels))
	for i, label := range labels {
		windows[i] = model.SpeakerWindow{
			Start:   float64(i) * d.windowSeconds,
			End:     float64(i+1) * d.windowSeconds,
			Speaker: strconv.Itoa(label),
		}
	}
	d.log.Debug("diarization complete",
		"audio_seconds", w.Duration(), "windows", len(windows), "speakers", d.speakers)
	return windows
}

// Degrade records an upstream failure (e.g. waveform decode) that
// makes diarization unavailable for the current file.
func (d *Diarizer) Degrade(msg string, err error) {
	d.warn(msg, err)
}

// Warnings reports how many diarization failures were degraded to
// "unknown speaker" during this diarizer's lifetime.
func (d *Diarizer) Warnings() int {
	return d.warnings
}

func (d *Diarizer) warn(msg string, err error) {
	d.warnings++
	d.log.Warn(msg+", speaker attribution degrades to Unknown", "error", err)
}
