package model

import "time"

// RunRecord is one completed (or failed) transcription run as stored
// in the local history database.
type RunRecord struct {
	ID                  int
	FilePath            string
	FileName            string
	Provider            string
	AudioDuration       float64
	Lines               int
	UnknownLines        int
	DiarizationWarnings int
	CompletedAt         time.Time
	HasError            int
	ErrorMessage        string
}
