package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/concord-consortium/audio-transcriber/internal/app/api/gcloud"
	"github.com/concord-consortium/audio-transcriber/internal/app/audio"
	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
	"github.com/concord-consortium/audio-transcriber/internal/app/gcs"
	"github.com/concord-consortium/audio-transcriber/internal/app/logger"
	"github.com/concord-consortium/audio-transcriber/internal/app/repository"
	"github.com/concord-consortium/audio-transcriber/internal/app/transcript"
)

// CloudPipeline is the Google Speech flow: convert to FLAC, stage in
// GCS, run diarized long-running recognition, aggregate using the
// API's own speaker labels. The staged object is removed on every exit
// path once uploaded.
type CloudPipeline struct {
	log        *logger.Logger
	stager     *gcs.Stager
	recognizer *gcloud.Recognizer
	db         repository.RunDAO
	stdout     io.Writer
}

const cloudProvider = "gcp_speech"

func NewCloudPipeline(log *logger.Logger, stager *gcs.Stager, recognizer *gcloud.Recognizer,
	db repository.RunDAO) *CloudPipeline {
	return &CloudPipeline{
		log:        log.With("pipeline", "cloud", "provider", cloudProvider),
		stager:     stager,
		recognizer: recognizer,
		db:         db,
		stdout:     os.Stdout,
	}
}

func (p *CloudPipeline) Run(ctx context.Context, inputPath, csvPath string) error {
	p.log.Info("processing file", "file", inputPath)

	duration, err := audio.Duration(inputPath)
	if err != nil {
		p.record(inputPath, 0, 0, 0, err)
		return err
	}

	flacPath := filepath.Join(os.TempDir(),
		fmt.Sprintf("a2t-%d-%s.flac", time.Now().UnixNano(), flacBase(inputPath)))
	defer os.Remove(flacPath)

	p.log.Info("converting audio to FLAC")
	if err := audio.ConvertToFlac(inputPath, flacPath); err != nil {
		p.record(inputPath, duration, 0, 0, err)
		return err
	}

	gsURI, err := p.stager.Upload(ctx, flacPath)
	if err != nil {
		p.record(inputPath, duration, 0, 0, err)
		return err
	}
	defer func() {
		// Background context: the bucket must be cleaned even when the
		// run's context is already cancelled.
		if err := p.stager.Remove(context.Background(), gsURI); err != nil {
			p.log.Warn("removing staged object failed", "uri", gsURI, "error", err)
		}
	}()

	p.log.Info("transcribing audio", "uri", gsURI)
	segments, err := p.recognizer.Recognize(ctx, gsURI)
	if err != nil {
		p.record(inputPath, duration, 0, 0, err)
		return apperrors.Wrapf(err, "recognizing %s", gsURI)
	}

	lines, unknown, err := writeTranscript(p.stdout, segments, transcript.BySegmentSpeaker, csvPath)
	p.record(inputPath, duration, lines, unknown, err)
	if err != nil {
		return err
	}

	p.log.Info("transcript written", "csv", csvPath, "lines", lines, "unknown_lines", unknown)
	return nil
}

func (p *CloudPipeline) record(inputPath string, duration float64, lines, unknown int, runErr error) {
	recordRun(p.log, p.db, cloudProvider, inputPath, duration, lines, unknown, 0, runErr)
}

func flacBase(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
