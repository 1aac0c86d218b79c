package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	file_path TEXT NOT NULL,
	file_name TEXT NOT NULL,
	provider TEXT NOT NULL,
	audio_duration REAL NOT NULL DEFAULT 0,
	lines INTEGER NOT NULL DEFAULT 0,
	unknown_lines INTEGER NOT NULL DEFAULT 0,
	diarization_warnings INTEGER NOT NULL DEFAULT 0,
	completed_at TIMESTAMP NOT NULL,
	has_error INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT ''
);`

type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (creating if necessary) the run-history database
// at dbFilePath and ensures the schema exists.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	if dir := filepath.Dir(dbFilePath); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, apperrors.Wrapf(err, "creating database directory %s", dir)
		}
	}
	db, err := sql.Open("sqlite3", dbFilePath)
	if err != nil {
		return nil, apperrors.Wrap(err, "opening database")
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, apperrors.Wrap(err, "creating runs table")
	}
	return &SQLiteDB{db: db}, nil
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

// CheckIfFileProcessed returns the id of a prior successful run for
// fileName, or sql.ErrNoRows when none exists.
func (sdb *SQLiteDB) CheckIfFileProcessed(fileName string) (int, error) {
	query := `SELECT id FROM runs WHERE file_name = ? AND has_error = 0`
	row := sdb.db.QueryRow(query, fileName)
	var id int
	err := row.Scan(&id)
	return id, err
}

func (sdb *SQLiteDB) RecordRun(rec model.RunRecord) error {
	insertSQL := `INSERT INTO runs
		(file_path, file_name, provider, audio_duration, lines, unknown_lines,
		 diarization_warnings, completed_at, has_error, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := sdb.db.Exec(insertSQL,
		rec.FilePath, rec.FileName, rec.Provider, rec.AudioDuration,
		rec.Lines, rec.UnknownLines, rec.DiarizationWarnings,
		rec.CompletedAt, rec.HasError, rec.ErrorMessage)
	if err != nil {
		return apperrors.Wrap(err, "inserting run record")
	}
	return nil
}

func (sdb *SQLiteDB) GetAll() ([]model.RunRecord, error) {
	query := `
		SELECT id, file_path, file_name, provider, audio_duration, lines,
		       unknown_lines, diarization_warnings, completed_at, has_error, error_message
		FROM runs
		ORDER BY completed_at DESC;`
	rows, err := sdb.db.Query(query)
	if err != nil {
		return nil, apperrors.Wrap(err, "query failed")
	}
	defer rows.Close()

	records := make([]model.RunRecord, 0)
	for rows.Next() {
		var r model.RunRecord
		err = rows.Scan(&r.ID, &r.FilePath, &r.FileName, &r.Provider,
			&r.AudioDuration, &r.Lines, &r.UnknownLines, &r.DiarizationWarnings,
			&r.CompletedAt, &r.HasError, &r.ErrorMessage)
		if err != nil {
			return nil, apperrors.Wrap(err, "db scan failed")
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
