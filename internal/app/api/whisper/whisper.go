package whisper

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai"

	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

// RemoteTranscriber implements remote transcription using the OpenAI
// Whisper API with segment-level timestamps.
type RemoteTranscriber struct {
	client *openai.Client
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client) *RemoteTranscriber {
	return &RemoteTranscriber{client: client}
}

// Transcribe requests a verbose-JSON transcription and maps its
// segments to the pipeline's segment type. Empty segments are skipped.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, inputFilePath string) ([]model.TranscriptSegment, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: inputFilePath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTranscriptionFailed, err.Error())
	}

	segments := make([]model.TranscriptSegment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		segments = append(segments, model.TranscriptSegment{
			Start: s.Start,
			End:   s.End,
			Text:  text,
		})
	}
	if len(segments) == 0 {
		return nil, apperrors.Wrapf(apperrors.ErrEmptyTranscript, "openai whisper on %s", inputFilePath)
	}
	return segments, nil
}
