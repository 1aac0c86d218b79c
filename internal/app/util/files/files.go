package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

// GetAllFiles lists files in inputDir with the given extension (no
// leading dot), sorted oldest-first by modification time.
func GetAllFiles(inputDir string, extension string) ([]model.FileInfo, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, apperrors.Wrapf(err, "reading directory %s", inputDir)
	}

	want := "." + strings.ToLower(strings.TrimPrefix(extension, "."))

	var fileInfos []model.FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) != want {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, apperrors.Wrapf(err, "stat %s", entry.Name())
		}
		fileInfos = append(fileInfos, model.FileInfo{
			FullPath: filepath.Join(inputDir, entry.Name()),
			ModTime:  info.ModTime(),
			Name:     entry.Name(),
		})
	}

	sort.Slice(fileInfos, func(i, j int) bool {
		return fileInfos[i].ModTime.Before(fileInfos[j].ModTime)
	})
	return fileInfos, nil
}

// OutputCSVPath derives the CSV sidecar path for an input media file:
// same directory, same base name, .csv extension.
func OutputCSVPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
}
