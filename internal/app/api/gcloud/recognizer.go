// Package gcloud wraps Google Cloud Speech-to-Text long-running
// recognition with the API's own speaker diarization enabled.
package gcloud

import (
	"context"
	"strconv"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
	"github.com/concord-consortium/audio-transcriber/internal/app/logger"
	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

const (
	// Long recordings can take a while; the API allows up to roughly
	// half the audio duration for latest_long.
	recognizeTimeout = 30 * time.Minute
	maxRetries       = 4

	minSpeakerCount = 1
	maxSpeakerCount = 5
)

type Recognizer struct {
	log    *logger.Logger
	client *speech.Client
}

func NewRecognizer(ctx context.Context, log *logger.Logger, opts ...option.ClientOption) (*Recognizer, error) {
	c, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, apperrors.Wrap(err, "creating speech client")
	}
	return &Recognizer{
		log:    log.With("provider", "gcp_speech"),
		client: c,
	}, nil
}

func (r *Recognizer) Close() error {
	return r.client.Close()
}

// Recognize submits a staged gs:// FLAC object for long-running
// recognition and returns word-level segments carrying the API's
// speaker labels. Transient gRPC failures are retried with backoff.
func (r *Recognizer) Recognize(ctx context.Context, gcsURI string) ([]model.TranscriptSegment, error) {
	if !strings.HasPrefix(gcsURI, "gs://") {
		return nil, apperrors.Newf("gcsURI must be gs://..., got %q", gcsURI)
	}

	ctx, cancel := context.WithTimeout(ctx, recognizeTimeout)
	defer cancel()

	req := &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_FLAC,
			Model:                      "latest_long",
			LanguageCode:               "en-US",
			EnableAutomaticPunctuation: true,
			EnableWordTimeOffsets:      true,
			DiarizationConfig: &speechpb.SpeakerDiarizationConfig{
				EnableSpeakerDiarization: true,
				MinSpeakerCount:          minSpeakerCount,
				MaxSpeakerCount:          maxSpeakerCount,
			},
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{Uri: gcsURI},
		},
	}

	var resp *speechpb.LongRunningRecognizeResponse
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 2 * time.Second
			r.log.Warn("recognition attempt failed, retrying",
				"attempt", attempt, "backoff", backoff, "error", err)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var op *speech.LongRunningRecognizeOperation
		op, err = r.client.LongRunningRecognize(ctx, req)
		if err == nil {
			resp, err = op.Wait(ctx)
		}
		if err == nil {
			break
		}
		if !retryable(err) {
			break
		}
	}
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrTranscriptionFailed,
			"long-running recognize: %v", err)
	}

	segments := ParseResponse(resp)
	if len(segments) == 0 {
		return nil, apperrors.Wrapf(apperrors.ErrEmptyTranscript, "%s", gcsURI)
	}
	return segments, nil
}

// ParseResponse extracts word-level segments from a recognition
// response. Speaker tags are only complete on the final result, which
// repeats every word of the audio, so only that result is consulted.
func ParseResponse(resp *speechpb.LongRunningRecognizeResponse) []model.TranscriptSegment {
	if resp == nil || len(resp.Results) == 0 {
		return nil
	}
	last := resp.Results[len(resp.Results)-1]
	if last == nil || len(last.Alternatives) == 0 || last.Alternatives[0] == nil {
		return nil
	}

	var segments []model.TranscriptSegment
	for _, w := range last.Alternatives[0].Words {
		if w == nil {
			continue
		}
		word := strings.TrimSpace(w.Word)
		if word == "" {
			continue
		}
		speaker := strings.TrimSpace(w.SpeakerLabel)
		if speaker == "" && w.SpeakerTag != 0 {
			speaker = strconv.Itoa(int(w.SpeakerTag))
		}
		segments = append(segments, model.TranscriptSegment{
			Start:   w.StartTime.AsDuration().Seconds(),
			End:     w.EndTime.AsDuration().Seconds(),
			Text:    word,
			Speaker: speaker,
		})
	}
	return segments
}

func retryable(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Internal:
		return true
	default:
		return false
	}
}
