package whispercpp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/concord-consortium/audio-transcriber/internal/app/audio"
	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
	"github.com/concord-consortium/audio-transcriber/internal/app/logger"
	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

// LocalTranscriber runs a local whisper.cpp binary and parses its JSON
// output into timestamped segments. The model itself is an opaque
// oracle; only its output file format is consumed here.
type LocalTranscriber struct {
	log        *logger.Logger
	binaryPath string
	modelPath  string
}

func NewLocalTranscriber(log *logger.Logger, binaryPath, modelPath string) *LocalTranscriber {
	return &LocalTranscriber{
		log:        log.With("provider", "whisper.cpp"),
		binaryPath: binaryPath,
		modelPath:  modelPath,
	}
}

func (lt *LocalTranscriber) Transcribe(ctx context.Context, inputFilePath string) ([]model.TranscriptSegment, error) {
	wavPath := inputFilePath
	is16k, err := audio.Is16kHzMonoWav(inputFilePath)
	if err != nil {
		return nil, apperrors.Wrap(err, "probing input file")
	}
	if !is16k {
		lt.log.Info("input is not 16kHz mono WAV, converting", "file", inputFilePath)
		converted := filepath.Join(os.TempDir(),
			fmt.Sprintf("whispercpp-%d.wav", time.Now().UnixNano()))
		if err := audio.ConvertTo16kHzMonoWav(inputFilePath, converted); err != nil {
			return nil, err
		}
		defer os.Remove(converted)
		wavPath = converted
	}

	outputBase := filepath.Join(os.TempDir(),
		fmt.Sprintf("whispercpp-out-%d", time.Now().UnixNano()))
	jsonPath := outputBase + ".json"
	defer os.Remove(jsonPath)

	args := []string{
		"-m", lt.modelPath,
		"-l", "en",
		"-oj",
		"-f", wavPath,
		"-of", outputBase,
	}

	command := exec.CommandContext(ctx, lt.binaryPath, args...)
	var stderr bytes.Buffer
	command.Stderr = &stderr

	lt.log.Debug("running whisper.cpp", "command", lt.binaryPath+" "+strings.Join(args, " "))
	if err := command.Run(); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrTranscriptionFailed,
			"whisper.cpp: %v, stderr: %s", err, stderr.String())
	}

	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, apperrors.Wrap(err, "reading whisper.cpp output")
	}
	return ParseOutput(raw)
}

type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// ParseOutput converts whisper.cpp's -oj JSON (millisecond offsets)
// into ordered transcript segments.
func ParseOutput(raw []byte) ([]model.TranscriptSegment, error) {
	var out whisperOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperrors.Wrap(err, "parsing whisper.cpp JSON")
	}

	segments := make([]model.TranscriptSegment, 0, len(out.Transcription))
	for _, t := range out.Transcription {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		segments = append(segments, model.TranscriptSegment{
			Start: float64(t.Offsets.From) / 1000.0,
			End:   float64(t.Offsets.To) / 1000.0,
			Text:  text,
		})
	}
	if len(segments) == 0 {
		return nil, apperrors.ErrEmptyTranscript
	}
	return segments, nil
}
