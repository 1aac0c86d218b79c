package repository

import "github.com/concord-consortium/audio-transcriber/internal/app/model"

// RunDAO records completed transcription runs and answers whether a
// file was already processed (used by batch mode to skip reruns).
type RunDAO interface {
	CheckIfFileProcessed(fileName string) (int, error)
	RecordRun(rec model.RunRecord) error
	GetAll() ([]model.RunRecord, error)
	Close() error
}
