package transcript

import "fmt"

// UnknownSpeaker is the rendered label for segments whose speaker
// could not be resolved.
const UnknownSpeaker = "Unknown"

// FormatDuration formats elapsed seconds as HH:MM:SS.mmm with
// zero-padded fields. The format is an external contract shared by the
// console and CSV outputs and must not change.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := int(seconds) / 3600
	rem := seconds - float64(h*3600)
	m := int(rem) / 60
	s := rem - float64(m*60)
	return fmt.Sprintf("%02d:%02d:%06.3f", h, m, s)
}

func speakerOrUnknown(speaker string) string {
	if speaker == "" {
		return UnknownSpeaker
	}
	return speaker
}
