package transcript

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

// Sink receives transcript lines as they are produced. Sink failures
// are fatal for a run; the transcript is the product and partial
// output without persistence is not acceptable degradation.
type Sink interface {
	WriteHeader() error
	WriteLine(line model.TranscriptLine) error
	Close() error
}

var header = []string{"Time", "Speaker", "Text"}

func sinkErr(err error) error {
	return apperrors.Wrap(apperrors.ErrSinkWrite, err.Error())
}

// ConsoleSink writes semicolon-delimited transcript lines, one per
// row, preceded by a Time;Speaker;Text header.
type ConsoleSink struct {
	w io.Writer
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (c *ConsoleSink) WriteHeader() error {
	if _, err := fmt.Fprintln(c.w, "Time;Speaker;Text"); err != nil {
		return sinkErr(err)
	}
	return nil
}

func (c *ConsoleSink) WriteLine(line model.TranscriptLine) error {
	_, err := fmt.Fprintf(c.w, "%s;%s;%s\n",
		FormatDuration(line.Time), speakerOrUnknown(line.Speaker), line.Text)
	if err != nil {
		return sinkErr(err)
	}
	return nil
}

func (c *ConsoleSink) Close() error { return nil }

// CSVSink writes the same three columns to a CSV file. Rows go to a
// temporary file in the destination directory; Close flushes and
// atomically renames it into place, so a failed run never leaves a
// partial transcript at the final path.
type CSVSink struct {
	path    string
	tmpPath string
	f       *os.File
	w       *csv.Writer
	closed  bool
}

func NewCSVSink(path string) (*CSVSink, error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, sinkErr(err)
	}
	return &CSVSink{
		path:    path,
		tmpPath: f.Name(),
		f:       f,
		w:       csv.NewWriter(f),
	}, nil
}

func (c *CSVSink) WriteHeader() error {
	if err := c.w.Write(header); err != nil {
		return sinkErr(err)
	}
	return nil
}

func (c *CSVSink) WriteLine(line model.TranscriptLine) error {
	row := []string{FormatDuration(line.Time), speakerOrUnknown(line.Speaker), line.Text}
	if err := c.w.Write(row); err != nil {
		return sinkErr(err)
	}
	return nil
}

func (c *CSVSink) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.f.Close()
		os.Remove(c.tmpPath)
		return sinkErr(err)
	}
	if err := c.f.Close(); err != nil {
		os.Remove(c.tmpPath)
		return sinkErr(err)
	}
	if err := os.Rename(c.tmpPath, c.path); err != nil {
		os.Remove(c.tmpPath)
		return sinkErr(err)
	}
	return nil
}

// Discard drops the temporary file without finalizing. Safe to call
// after a successful Close.
func (c *CSVSink) Discard() {
	if c.closed {
		return
	}
	c.closed = true
	c.f.Close()
	os.Remove(c.tmpPath)
}
