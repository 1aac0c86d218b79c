// Package testutil provides configurable fakes for the pipeline's
// external dependencies.
package testutil

import (
	"context"
	"sync"

	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

// MockTranscriber is a configurable api.SegmentTranscriber for tests.
type MockTranscriber struct {
	mu sync.Mutex

	Segments []model.TranscriptSegment
	Err      error

	CallCount int
	LastInput string
}

func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// WithSegments sets the segments every call returns.
func (m *MockTranscriber) WithSegments(segments []model.TranscriptSegment) *MockTranscriber {
	m.Segments = segments
	return m
}

// WithError makes every call fail with err.
func (m *MockTranscriber) WithError(err error) *MockTranscriber {
	m.Err = err
	return m
}

func (m *MockTranscriber) Transcribe(ctx context.Context, inputFilePath string) ([]model.TranscriptSegment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastInput = inputFilePath
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Segments, nil
}
