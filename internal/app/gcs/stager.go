// Package gcs stages converted audio in a Google Cloud Storage bucket
// for the duration of one cloud recognition run.
package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
	"github.com/concord-consortium/audio-transcriber/internal/app/logger"
)

type Stager struct {
	log    *logger.Logger
	client *storage.Client
	bucket string
}

func NewStager(ctx context.Context, log *logger.Logger, bucket string, opts ...option.ClientOption) (*Stager, error) {
	if bucket == "" {
		return nil, apperrors.ErrMissingBucket
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, apperrors.Wrap(err, "creating storage client")
	}
	return &Stager{
		log:    log.With("component", "gcs", "bucket", bucket),
		client: client,
		bucket: bucket,
	}, nil
}

func (s *Stager) Close() error {
	return s.client.Close()
}

// Upload copies a local file into the staging bucket and returns its
// gs:// URI. The object is keyed by the file's base name.
func (s *Stager) Upload(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrFileNotFound, "%s: %v", localPath, err)
	}
	defer f.Close()

	key := filepath.Base(localPath)
	s.log.Info("uploading to Google Cloud Storage", "object", key)

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return "", apperrors.Wrapf(err, "uploading %s", key)
	}
	if err := w.Close(); err != nil {
		return "", apperrors.Wrapf(err, "finalizing upload of %s", key)
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, key), nil
}

// Remove deletes a staged object given its gs:// URI. Runs on every
// exit path once the upload has succeeded, so stale audio never
// accumulates in the bucket.
func (s *Stager) Remove(ctx context.Context, gsURI string) error {
	bucket, key, err := ParseURI(gsURI)
	if err != nil {
		return err
	}
	if err := s.client.Bucket(bucket).Object(key).Delete(ctx); err != nil {
		return apperrors.Wrapf(err, "deleting %s", gsURI)
	}
	s.log.Debug("removed staged object", "object", key)
	return nil
}

// ParseURI splits a gs://bucket/key URI into its parts.
func ParseURI(gsURI string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(gsURI, "gs://")
	if trimmed == gsURI {
		return "", "", apperrors.Newf("not a gs:// URI: %q", gsURI)
	}
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", apperrors.Newf("malformed gs:// URI: %q", gsURI)
	}
	return parts[0], parts[1], nil
}
