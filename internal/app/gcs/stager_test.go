package gcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURI(t *testing.T) {
	tests := []struct {
		name       string
		uri        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{"simple", "gs://my-bucket/audio.flac", "my-bucket", "audio.flac", false},
		{"nested key", "gs://b/dir/sub/audio.flac", "b", "dir/sub/audio.flac", false},
		{"missing scheme", "my-bucket/audio.flac", "", "", true},
		{"http scheme", "http://my-bucket/audio.flac", "", "", true},
		{"no key", "gs://my-bucket", "", "", true},
		{"empty key", "gs://my-bucket/", "", "", true},
		{"empty bucket", "gs:///audio.flac", "", "", true},
		{"empty", "", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, err := ParseURI(tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
