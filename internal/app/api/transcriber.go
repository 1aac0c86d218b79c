package api

import (
	"context"

	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

// SegmentTranscriber converts an audio file into an ordered sequence
// of timestamped transcript segments. The recognizer is an external
// oracle: only its output shape matters here.
type SegmentTranscriber interface {
	Transcribe(ctx context.Context, inputFilePath string) ([]model.TranscriptSegment, error)
}
