package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "data", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testRecord(fileName string, hasError int) model.RunRecord {
	rec := model.RunRecord{
		FilePath:      "/audio/" + fileName,
		FileName:      fileName,
		Provider:      "openai",
		AudioDuration: 12.5,
		Lines:         3,
		UnknownLines:  1,
		CompletedAt:   time.Now(),
		HasError:      hasError,
	}
	if hasError != 0 {
		rec.ErrorMessage = "boom"
	}
	return rec
}

func TestCheckIfFileProcessed(t *testing.T) {
	db := newTestDB(t)

	_, err := db.CheckIfFileProcessed("missing.mp3")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, db.RecordRun(testRecord("done.mp3", 0)))
	id, err := db.CheckIfFileProcessed("done.mp3")
	require.NoError(t, err)
	assert.Greater(t, id, 0)
}

func TestCheckIfFileProcessed_FailedRunDoesNotCount(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.RecordRun(testRecord("failed.mp3", 1)))
	_, err := db.CheckIfFileProcessed("failed.mp3")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestGetAll(t *testing.T) {
	db := newTestDB(t)

	first := testRecord("a.mp3", 0)
	first.CompletedAt = time.Now().Add(-time.Hour)
	second := testRecord("b.mp3", 1)
	second.CompletedAt = time.Now()
	second.DiarizationWarnings = 2

	require.NoError(t, db.RecordRun(first))
	require.NoError(t, db.RecordRun(second))

	records, err := db.GetAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "b.mp3", records[0].FileName, "newest first")
	assert.Equal(t, 1, records[0].HasError)
	assert.Equal(t, "boom", records[0].ErrorMessage)
	assert.Equal(t, 2, records[0].DiarizationWarnings)

	assert.Equal(t, "a.mp3", records[1].FileName)
	assert.Equal(t, 12.5, records[1].AudioDuration)
	assert.Equal(t, 3, records[1].Lines)
	assert.Equal(t, 1, records[1].UnknownLines)
}

func TestGetAll_EmptyDB(t *testing.T) {
	db := newTestDB(t)

	records, err := db.GetAll()
	require.NoError(t, err)
	assert.Empty(t, records)
}
