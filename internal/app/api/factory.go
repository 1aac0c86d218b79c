package api

import (
	"github.com/sashabaranov/go-openai"

	"github.com/concord-consortium/audio-transcriber/internal/app/api/whisper"
	"github.com/concord-consortium/audio-transcriber/internal/app/api/whispercpp"
	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
	"github.com/concord-consortium/audio-transcriber/internal/app/logger"
	"github.com/concord-consortium/audio-transcriber/internal/config"
)

// Provider names accepted by the local pipeline commands.
const (
	ProviderOpenAI     = "openai"
	ProviderWhisperCpp = "whispercpp"
)

// NewTranscriber builds the whisper oracle named by provider,
// validating only the settings that provider needs.
func NewTranscriber(log *logger.Logger, settings *config.Settings, provider string) (SegmentTranscriber, error) {
	switch provider {
	case ProviderOpenAI:
		if err := settings.RequireOpenAI(); err != nil {
			return nil, err
		}
		return whisper.NewRemoteTranscriber(openai.NewClient(settings.OpenAIKey)), nil
	case ProviderWhisperCpp:
		if err := settings.RequireWhisperCpp(); err != nil {
			return nil, err
		}
		return whispercpp.NewLocalTranscriber(log, settings.WhisperCppBinary, settings.WhisperCppModel), nil
	default:
		return nil, apperrors.Newf("unknown provider %q (expected %s or %s)",
			provider, ProviderOpenAI, ProviderWhisperCpp)
	}
}
