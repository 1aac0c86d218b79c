package testutil

import (
	"database/sql"
	"sync"

	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

// MockRunDAO is an in-memory repository.RunDAO for tests.
type MockRunDAO struct {
	mu sync.Mutex

	processed map[string]int
	Records   []model.RunRecord

	RecordErr error
	CloseErr  error
}

func NewMockRunDAO() *MockRunDAO {
	return &MockRunDAO{processed: make(map[string]int)}
}

// WithProcessedFile marks fileName as already successfully processed
// under the given run id.
func (m *MockRunDAO) WithProcessedFile(fileName string, id int) *MockRunDAO {
	m.processed[fileName] = id
	return m
}

func (m *MockRunDAO) CheckIfFileProcessed(fileName string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.processed[fileName]; ok {
		return id, nil
	}
	return 0, sql.ErrNoRows
}

func (m *MockRunDAO) RecordRun(rec model.RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RecordErr != nil {
		return m.RecordErr
	}
	m.Records = append(m.Records, rec)
	if rec.HasError == 0 {
		m.processed[rec.FileName] = len(m.Records)
	}
	return nil
}

func (m *MockRunDAO) GetAll() ([]model.RunRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.RunRecord, len(m.Records))
	copy(out, m.Records)
	return out, nil
}

func (m *MockRunDAO) Close() error {
	return m.CloseErr
}
