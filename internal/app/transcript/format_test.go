package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "00:00:00.000"},
		{"sub-second", 0.123, "00:00:00.123"},
		{"seconds only", 7.5, "00:00:07.500"},
		{"minutes", 65.25, "00:01:05.250"},
		{"hours", 3661.5, "01:01:01.500"},
		{"many hours", 7322.001, "02:02:02.001"},
		{"negative clamps to zero", -3, "00:00:00.000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.seconds))
		})
	}
}

func TestSpeakerOrUnknown(t *testing.T) {
	assert.Equal(t, "3", speakerOrUnknown("3"))
	assert.Equal(t, UnknownSpeaker, speakerOrUnknown(""))
}
