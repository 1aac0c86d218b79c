package diarize

import (
	"sort"

	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

// ResolveSpeaker returns the label of the speaker window containing
// startSec, or "" when no window covers it (empty window list, or a
// start time past the last window after rounding). Only a segment's
// start time is consulted: a segment spanning a window boundary keeps
// the speaker of its onset.
func ResolveSpeaker(startSec float64, windows []model.SpeakerWindow) string {
	// Windows partition the timeline in order, so the first window
	// whose end exceeds startSec is the only candidate.
	i := sort.Search(len(windows), func(i int) bool {
		return windows[i].End > startSec
	})
	if i < len(windows) && windows[i].Contains(startSec) {
		return windows[i].Speaker
	}
	return ""
}
