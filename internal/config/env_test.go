package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("TRANSCRIBER_GCS_BUCKET", "")
	t.Setenv("WHISPER_CPP_BINARY", "")
	t.Setenv("WHISPER_CPP_MODEL", "")
	t.Setenv("TRANSCRIBER_DB_PATH", "")
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	s := FromEnv()
	assert.Equal(t, "", s.OpenAIKey)
	assert.Equal(t, "", s.GCSBucket)
	assert.Equal(t, defaultDBPath, s.DBPath)
}

func TestFromEnv_ReadsAndTrims(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "  sk-test123  ")
	t.Setenv("TRANSCRIBER_GCS_BUCKET", "my-bucket")
	t.Setenv("TRANSCRIBER_DB_PATH", "/tmp/runs.db")

	s := FromEnv()
	assert.Equal(t, "sk-test123", s.OpenAIKey)
	assert.Equal(t, "my-bucket", s.GCSBucket)
	assert.Equal(t, "/tmp/runs.db", s.DBPath)
}

func TestClientOptions(t *testing.T) {
	assert.Empty(t, (&Settings{}).ClientOptions())
	assert.Len(t, (&Settings{GCPCredentials: "/secrets/sa.json"}).ClientOptions(), 1)
}

func TestRequireOpenAI(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid key", "sk-test123", false},
		{"missing key", "", true},
		{"wrong prefix", "api-test123", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Settings{OpenAIKey: tt.key}
			err := s.RequireOpenAI()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequireOpenAI_MissingKeySentinel(t *testing.T) {
	s := &Settings{}
	err := s.RequireOpenAI()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMissingAPIKey)
}

func TestRequireWhisperCpp(t *testing.T) {
	assert.Error(t, (&Settings{}).RequireWhisperCpp())
	assert.Error(t, (&Settings{WhisperCppBinary: "/usr/bin/whisper"}).RequireWhisperCpp())
	assert.NoError(t, (&Settings{
		WhisperCppBinary: "/usr/bin/whisper",
		WhisperCppModel:  "/models/ggml-base.en.bin",
	}).RequireWhisperCpp())
}

func TestRequireBucket(t *testing.T) {
	err := (&Settings{}).RequireBucket()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMissingBucket)

	assert.NoError(t, (&Settings{GCSBucket: "my-bucket"}).RequireBucket())
}
