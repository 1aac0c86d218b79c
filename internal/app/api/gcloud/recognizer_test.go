package gcloud

import (
	"testing"
	"time"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/durationpb"
)

func word(text, speakerLabel string, speakerTag int32, start, end time.Duration) *speechpb.WordInfo {
	return &speechpb.WordInfo{
		Word:         text,
		SpeakerLabel: speakerLabel,
		SpeakerTag:   speakerTag,
		StartTime:    durationpb.New(start),
		EndTime:      durationpb.New(end),
	}
}

func TestParseResponse_UsesLastResultOnly(t *testing.T) {
	resp := &speechpb.LongRunningRecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{{
				Words: []*speechpb.WordInfo{
					word("partial", "", 0, 0, time.Second),
				},
			}}},
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{{
				Words: []*speechpb.WordInfo{
					word("hello", "1", 0, 0, 500*time.Millisecond),
					word("there", "1", 0, 500*time.Millisecond, time.Second),
					word("hi", "2", 0, time.Second, 1500*time.Millisecond),
				},
			}}},
		},
	}

	segments := ParseResponse(resp)
	require.Len(t, segments, 3)

	assert.Equal(t, "hello", segments[0].Text)
	assert.Equal(t, "1", segments[0].Speaker)
	assert.Equal(t, 0.0, segments[0].Start)
	assert.Equal(t, 0.5, segments[0].End)

	assert.Equal(t, "there", segments[1].Text)
	assert.Equal(t, 0.5, segments[1].Start)

	assert.Equal(t, "hi", segments[2].Text)
	assert.Equal(t, "2", segments[2].Speaker)
}

func TestParseResponse_FallsBackToSpeakerTag(t *testing.T) {
	resp := &speechpb.LongRunningRecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{{
				Words: []*speechpb.WordInfo{
					word("tagged", "", 3, 0, time.Second),
					word("untagged", "", 0, time.Second, 2*time.Second),
				},
			}}},
		},
	}

	segments := ParseResponse(resp)
	require.Len(t, segments, 2)
	assert.Equal(t, "3", segments[0].Speaker)
	assert.Equal(t, "", segments[1].Speaker, "no label and no tag means unknown")
}

func TestParseResponse_Empty(t *testing.T) {
	assert.Nil(t, ParseResponse(nil))
	assert.Nil(t, ParseResponse(&speechpb.LongRunningRecognizeResponse{}))
	assert.Nil(t, ParseResponse(&speechpb.LongRunningRecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{{}},
	}))
}

func TestRetryable(t *testing.T) {
	assert.False(t, retryable(nil))
	assert.False(t, retryable(assert.AnError))
}
