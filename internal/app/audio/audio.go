// Package audio shells out to ffmpeg/ffprobe for container conversion
// and decodes normalized WAV files into raw samples for the diarizer.
// Codec internals stay in ffmpeg; nothing here re-implements them.
package audio

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/go-audio/wav"

	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

// Duration returns the length of a media file in seconds via ffprobe.
func Duration(filePath string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, apperrors.Wrapf(err, "ffprobe duration of %s", filePath)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, apperrors.Wrap(err, "parsing ffprobe duration")
	}
	return duration, nil
}

// ConvertToFlac converts any audio/video input to FLAC, the format the
// cloud recognizer expects.
func ConvertToFlac(inputPath, outputPath string) error {
	return runFFmpeg(inputPath, outputPath,
		"-i", inputPath, "-vn", "-acodec", "flac", "-y", outputPath)
}

// ConvertTo16kHzMonoWav converts any audio/video input to 16kHz mono
// PCM WAV. Mono is required downstream: the feature extractor consumes
// a single channel, so ffmpeg downmixes here.
func ConvertTo16kHzMonoWav(inputPath, outputPath string) error {
	return runFFmpeg(inputPath, outputPath,
		"-i", inputPath, "-vn", "-acodec", "pcm_s16le",
		"-ar", "16000", "-ac", "1", "-y", outputPath)
}

func runFFmpeg(inputPath, outputPath string, args ...string) error {
	cmd := exec.Command("ffmpeg", args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return apperrors.Wrapf(apperrors.ErrConvertFailed,
			"ffmpeg %s -> %s: %v, stderr: %s", inputPath, outputPath, err, stderr.String())
	}
	return nil
}

// Is16kHzMonoWav probes whether a file is already in the normalized
// local-pipeline format, so conversion can be skipped.
func Is16kHzMonoWav(filePath string) (bool, error) {
	cmd := exec.Command("ffprobe", "-v", "quiet",
		"-print_format", "json", "-show_streams", filePath)
	output, err := cmd.Output()
	if err != nil {
		return false, apperrors.Wrapf(err, "ffprobe streams of %s", filePath)
	}

	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(output, &probeOutput); err != nil {
		return false, apperrors.Wrap(err, "parsing ffprobe output")
	}

	for _, stream := range probeOutput.Streams {
		if stream.CodecType == "audio" && stream.CodecName == "pcm_s16le" &&
			stream.SampleRate == 16000 && stream.Channels == 1 {
			return true, nil
		}
	}
	return false, nil
}

// DecodeWaveform reads a PCM WAV file into a mono float64 waveform.
// Multi-channel files are averaged across channels, samples normalized
// to [-1, 1].
func DecodeWaveform(filePath string) (model.Waveform, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return model.Waveform{}, apperrors.Wrapf(apperrors.ErrFileNotFound, "%s: %v", filePath, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return model.Waveform{}, apperrors.Wrapf(apperrors.ErrDecodeFailed, "%s: %v", filePath, err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return model.Waveform{}, apperrors.Wrapf(apperrors.ErrEmptyWaveform, "%s", filePath)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	scale := math.Pow(2, float64(dec.BitDepth-1))
	if scale <= 0 {
		scale = 1 << 15
	}

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch])
		}
		samples[i] = sum / float64(channels) / scale
	}

	return model.Waveform{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
	}, nil
}
