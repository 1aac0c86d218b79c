package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
)

// Settings holds everything the pipelines read from the environment.
type Settings struct {
	OpenAIKey        string
	GCSBucket        string
	GCPCredentials   string
	WhisperCppBinary string
	WhisperCppModel  string
	DBPath           string
}

const defaultDBPath = "data/transcriptions.db"

// LoadEnv loads variables from a .env file if one exists near the
// working directory. Missing files are not an error; system-wide
// environment variables may already be set.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return apperrors.Wrapf(err, "loading %s", envPath)
			}
			break
		}
	}
	return nil
}

// FromEnv reads settings without validating them; commands validate
// only what they actually need.
func FromEnv() *Settings {
	s := &Settings{
		OpenAIKey:        strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		GCSBucket:        strings.TrimSpace(os.Getenv("TRANSCRIBER_GCS_BUCKET")),
		GCPCredentials:   strings.TrimSpace(os.Getenv("TRANSCRIBER_GCP_CREDENTIALS")),
		WhisperCppBinary: strings.TrimSpace(os.Getenv("WHISPER_CPP_BINARY")),
		WhisperCppModel:  strings.TrimSpace(os.Getenv("WHISPER_CPP_MODEL")),
		DBPath:           strings.TrimSpace(os.Getenv("TRANSCRIBER_DB_PATH")),
	}
	if s.DBPath == "" {
		s.DBPath = defaultDBPath
	}
	return s
}

// RequireOpenAI validates the OpenAI key for the remote whisper provider.
func (s *Settings) RequireOpenAI() error {
	if s.OpenAIKey == "" {
		return apperrors.Wrap(apperrors.ErrMissingAPIKey, "OPENAI_API_KEY is not set")
	}
	if !strings.HasPrefix(s.OpenAIKey, "sk-") {
		return apperrors.New("invalid OPENAI_API_KEY format: must start with 'sk-'")
	}
	return nil
}

// RequireWhisperCpp validates the local whisper.cpp provider settings.
func (s *Settings) RequireWhisperCpp() error {
	if s.WhisperCppBinary == "" {
		return apperrors.New("WHISPER_CPP_BINARY environment variable must be set")
	}
	if s.WhisperCppModel == "" {
		return apperrors.New("WHISPER_CPP_MODEL environment variable must be set")
	}
	return nil
}

// ClientOptions builds the Google client options shared by the storage
// and speech clients. Without explicit credentials the clients fall
// back to application default credentials.
func (s *Settings) ClientOptions() []option.ClientOption {
	if s.GCPCredentials == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(s.GCPCredentials)}
}

// RequireBucket validates the GCS staging bucket for the cloud pipeline.
func (s *Settings) RequireBucket() error {
	if s.GCSBucket == "" {
		return apperrors.Wrap(apperrors.ErrMissingBucket, "TRANSCRIBER_GCS_BUCKET is not set")
	}
	return nil
}
