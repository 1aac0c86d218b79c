// Package pipeline wires audio normalization, recognition, diarization
// and transcript aggregation into the sequential per-file runs behind
// the CLI commands. Each run owns its waveform and intermediate state
// exclusively and releases it when the run ends.
package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/concord-consortium/audio-transcriber/internal/app/api"
	"github.com/concord-consortium/audio-transcriber/internal/app/audio"
	"github.com/concord-consortium/audio-transcriber/internal/app/diarize"
	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
	"github.com/concord-consortium/audio-transcriber/internal/app/logger"
	"github.com/concord-consortium/audio-transcriber/internal/app/model"
	"github.com/concord-consortium/audio-transcriber/internal/app/repository"
	"github.com/concord-consortium/audio-transcriber/internal/app/transcript"
	"github.com/concord-consortium/audio-transcriber/internal/app/util/files"
)

// Pipeline is the local flow: normalize to 16kHz mono WAV, transcribe
// with a whisper oracle, diarize locally, aggregate.
type Pipeline struct {
	log         *logger.Logger
	transcriber api.SegmentTranscriber
	diarizer    *diarize.Diarizer
	db          repository.RunDAO
	provider    string
	stdout      io.Writer
}

func NewPipeline(log *logger.Logger, transcriber api.SegmentTranscriber, diarizer *diarize.Diarizer,
	db repository.RunDAO, provider string) *Pipeline {
	return &Pipeline{
		log:         log.With("pipeline", "local", "provider", provider),
		transcriber: transcriber,
		diarizer:    diarizer,
		db:          db,
		provider:    provider,
		stdout:      os.Stdout,
	}
}

// Run processes one input file start to finish. Diarization failure
// degrades speakers to Unknown; oracle and sink failures are fatal and
// recorded as failed runs.
func (p *Pipeline) Run(ctx context.Context, inputPath, csvPath string) error {
	p.log.Info("processing file", "file", inputPath)
	warningsBefore := p.diarizer.Warnings()

	duration, err := audio.Duration(inputPath)
	if err != nil {
		p.record(inputPath, 0, 0, 0, 0, err)
		return err
	}

	wavFile, err := os.CreateTemp("", "a2t-*.wav")
	if err != nil {
		p.record(inputPath, duration, 0, 0, 0, err)
		return apperrors.Wrap(err, "creating temp wav")
	}
	wavPath := wavFile.Name()
	wavFile.Close()
	defer os.Remove(wavPath)

	if err := audio.ConvertTo16kHzMonoWav(inputPath, wavPath); err != nil {
		p.record(inputPath, duration, 0, 0, 0, err)
		return err
	}

	var windows []model.SpeakerWindow
	waveform, err := audio.DecodeWaveform(wavPath)
	if err != nil {
		p.diarizer.Degrade("decoding waveform failed", err)
	} else {
		windows = p.diarizer.SpeakerWindows(waveform)
	}

	p.log.Info("transcribing audio")
	segments, err := p.transcriber.Transcribe(ctx, wavPath)
	if err != nil {
		p.record(inputPath, duration, 0, 0, p.diarizer.Warnings()-warningsBefore, err)
		return err
	}

	resolve := func(seg model.TranscriptSegment) string {
		return diarize.ResolveSpeaker(seg.Start, windows)
	}
	lines, unknown, err := writeTranscript(p.stdout, segments, resolve, csvPath)
	warnings := p.diarizer.Warnings() - warningsBefore
	p.record(inputPath, duration, lines, unknown, warnings, err)
	if err != nil {
		return err
	}

	p.log.Info("transcript written",
		"csv", csvPath, "lines", lines, "unknown_lines", unknown,
		"diarization_warnings", warnings)
	return nil
}

// RunDir processes matching files in a directory sequentially, oldest
// first, skipping files a prior successful run already covered. A
// failed file does not stop the batch.
func (p *Pipeline) RunDir(ctx context.Context, dir, extension string, limit int) error {
	fileInfos, err := files.GetAllFiles(dir, extension)
	if err != nil {
		return err
	}

	toProcess := p.filterUnprocessed(fileInfos, limit)
	if len(toProcess) == 0 {
		p.log.Info("no files to process", "dir", dir, "extension", extension)
		return nil
	}

	bar := newProgressBar(os.Stderr, len(toProcess), "Transcribing")
	var failed int
	for _, f := range toProcess {
		if err := p.Run(ctx, f.FullPath, files.OutputCSVPath(f.FullPath)); err != nil {
			p.log.Error("run failed", "file", f.Name, "error", err)
			failed++
		}
		bar.increment()
	}
	bar.wait()

	if failed > 0 {
		return apperrors.Newf("%d of %d files failed", failed, len(toProcess))
	}
	return nil
}

func (p *Pipeline) filterUnprocessed(fileInfos []model.FileInfo, limit int) []model.FileInfo {
	toProcess := make([]model.FileInfo, 0, len(fileInfos))
	for _, fi := range fileInfos {
		if id, err := p.db.CheckIfFileProcessed(fi.Name); err == nil {
			p.log.Info("file already processed, skipping", "file", fi.Name, "run_id", id)
			continue
		}
		toProcess = append(toProcess, fi)
		if limit > 0 && len(toProcess) >= limit {
			break
		}
	}
	return toProcess
}

func (p *Pipeline) record(inputPath string, duration float64, lines, unknown, warnings int, runErr error) {
	recordRun(p.log, p.db, p.provider, inputPath, duration, lines, unknown, warnings, runErr)
}

// writeTranscript runs the aggregation pass over the console and CSV
// sinks. The CSV file only appears at its final path after a clean
// Close.
func writeTranscript(stdout io.Writer, segments []model.TranscriptSegment,
	resolve transcript.Resolver, csvPath string) (lines, unknown int, err error) {

	csvSink, err := transcript.NewCSVSink(csvPath)
	if err != nil {
		return 0, 0, err
	}
	defer csvSink.Discard()

	agg := transcript.NewAggregator(transcript.NewConsoleSink(stdout), csvSink)
	if err := agg.Consume(segments, resolve); err != nil {
		return 0, 0, err
	}
	if err := csvSink.Close(); err != nil {
		return 0, 0, err
	}
	return agg.Lines(), agg.UnknownLines(), nil
}

func recordRun(log *logger.Logger, db repository.RunDAO, provider, inputPath string,
	duration float64, lines, unknown, warnings int, runErr error) {

	rec := model.RunRecord{
		FilePath:            inputPath,
		FileName:            filepath.Base(inputPath),
		Provider:            provider,
		AudioDuration:       duration,
		Lines:               lines,
		UnknownLines:        unknown,
		DiarizationWarnings: warnings,
		CompletedAt:         time.Now(),
	}
	if runErr != nil {
		rec.HasError = 1
		rec.ErrorMessage = runErr.Error()
	}
	if err := db.RecordRun(rec); err != nil {
		log.Error("recording run failed", "file", rec.FileName, "error", err)
	}
}
