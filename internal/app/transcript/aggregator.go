// Package transcript turns ordered transcript segments into merged,
// speaker-tagged output lines and streams them to one or more sinks.
package transcript

import (
	"strings"

	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

// Resolver maps a transcript segment to a speaker label. An empty
// result means the speaker is unknown.
type Resolver func(seg model.TranscriptSegment) string

// BySegmentSpeaker resolves from the speaker tag the provider put on
// the segment itself (cloud diarization).
func BySegmentSpeaker(seg model.TranscriptSegment) string {
	return seg.Speaker
}

// Aggregator merges consecutive same-speaker segments into single
// lines. It is a small state machine over (current speaker, current
// text, current start time): a speaker change flushes the accumulated
// line and starts a new one, and the final accumulator is flushed
// unconditionally at end of stream. Lines are written to every sink as
// they are produced, not buffered.
type Aggregator struct {
	sinks []Sink

	started    bool
	curSpeaker string
	curText    string
	curTime    float64

	lines        int
	unknownLines int
}

func NewAggregator(sinks ...Sink) *Aggregator {
	return &Aggregator{sinks: sinks}
}

// WriteHeader emits the header row to every sink.
func (a *Aggregator) WriteHeader() error {
	for _, s := range a.sinks {
		if err := s.WriteHeader(); err != nil {
			return err
		}
	}
	return nil
}

// Add feeds one segment through the state machine. The first segment
// always starts a new accumulator.
func (a *Aggregator) Add(seg model.TranscriptSegment, resolve Resolver) error {
	text := strings.TrimSpace(seg.Text)
	speaker := ""
	if resolve != nil {
		speaker = resolve(seg)
	}

	if !a.started || speaker != a.curSpeaker {
		if err := a.flush(); err != nil {
			return err
		}
		a.started = true
		a.curSpeaker = speaker
		a.curTime = seg.Start
		a.curText = text
		return nil
	}

	if text == "" {
		return nil
	}
	if a.curText == "" {
		a.curText = text
	} else {
		a.curText += " " + text
	}
	return nil
}

// Flush emits the pending line, if any. Must be called once after the
// last segment.
func (a *Aggregator) Flush() error {
	return a.flush()
}

// Consume runs the full aggregation pass: header, every segment, and
// the end-of-stream flush.
func (a *Aggregator) Consume(segments []model.TranscriptSegment, resolve Resolver) error {
	if err := a.WriteHeader(); err != nil {
		return err
	}
	for _, seg := range segments {
		if err := a.Add(seg, resolve); err != nil {
			return err
		}
	}
	return a.Flush()
}

// Lines reports how many transcript lines were emitted.
func (a *Aggregator) Lines() int { return a.lines }

// UnknownLines reports how many emitted lines had no resolved speaker.
func (a *Aggregator) UnknownLines() int { return a.unknownLines }

func (a *Aggregator) flush() error {
	if a.curText == "" {
		return nil
	}
	line := model.TranscriptLine{
		Time:    a.curTime,
		Speaker: a.curSpeaker,
		Text:    a.curText,
	}
	for _, s := range a.sinks {
		if err := s.WriteLine(line); err != nil {
			return err
		}
	}
	a.lines++
	if a.curSpeaker == "" {
		a.unknownLines++
	}
	a.curText = ""
	return nil
}
