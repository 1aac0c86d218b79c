package model

// TranscriptSegment is one timestamped unit of recognized speech, as
// produced by a transcription provider. Speaker is empty unless the
// provider labels speakers itself (e.g. Google Speech diarization).
type TranscriptSegment struct {
	Start   float64
	End     float64
	Text    string
	Speaker string
}

// SpeakerWindow is a fixed-length slice of the timeline attributed to
// one pseudo-speaker cluster. Windows are half-open [Start, End),
// contiguous and non-overlapping.
type SpeakerWindow struct {
	Start   float64
	End     float64
	Speaker string
}

// Contains reports whether t falls inside the window.
func (w SpeakerWindow) Contains(t float64) bool {
	return w.Start <= t && t < w.End
}

// TranscriptLine is the unit of final output: consecutive segments with
// the same resolved speaker merged into one row. An empty Speaker means
// the speaker could not be determined and is rendered as "Unknown".
type TranscriptLine struct {
	Time    float64
	Speaker string
	Text    string
}
