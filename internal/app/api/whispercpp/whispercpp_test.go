package whispercpp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
)

func TestParseOutput(t *testing.T) {
	raw := []byte(`{
		"transcription": [
			{"offsets": {"from": 0, "to": 2500}, "text": " Hello there."},
			{"offsets": {"from": 2500, "to": 4000}, "text": "   "},
			{"offsets": {"from": 4000, "to": 6120}, "text": " How are you?"}
		]
	}`)

	segments, err := ParseOutput(raw)
	require.NoError(t, err)
	require.Len(t, segments, 2, "blank segments are dropped")

	assert.Equal(t, 0.0, segments[0].Start)
	assert.Equal(t, 2.5, segments[0].End)
	assert.Equal(t, "Hello there.", segments[0].Text)

	assert.Equal(t, 4.0, segments[1].Start)
	assert.Equal(t, 6.12, segments[1].End)
	assert.Equal(t, "How are you?", segments[1].Text)
}

func TestParseOutput_Empty(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no transcription key", `{}`},
		{"empty transcription", `{"transcription": []}`},
		{"only blank segments", `{"transcription": [{"offsets": {"from": 0, "to": 100}, "text": " "}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOutput([]byte(tt.raw))
			assert.ErrorIs(t, err, apperrors.ErrEmptyTranscript)
		})
	}
}

func TestParseOutput_MalformedJSON(t *testing.T) {
	_, err := ParseOutput([]byte(`{"transcription": [`))
	assert.Error(t, err)
}
