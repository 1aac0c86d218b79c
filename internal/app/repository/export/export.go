package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	apperrors "github.com/concord-consortium/audio-transcriber/internal/app/errors"
	"github.com/concord-consortium/audio-transcriber/internal/app/model"
)

// ToExcel writes the run history to an xlsx workbook.
func ToExcel(records []model.RunRecord, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Runs")
	if err != nil {
		return apperrors.Wrap(err, "adding sheet")
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "File"
	headerRow.AddCell().Value = "Provider"
	headerRow.AddCell().Value = "Audio Duration"
	headerRow.AddCell().Value = "Lines"
	headerRow.AddCell().Value = "Unknown Lines"
	headerRow.AddCell().Value = "Diarization Warnings"
	headerRow.AddCell().Value = "Completed At"
	headerRow.AddCell().Value = "Error Message"

	for _, r := range records {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(r.ID)
		row.AddCell().Value = r.FileName
		row.AddCell().Value = r.Provider
		row.AddCell().Value = fmt.Sprintf("%.2f", r.AudioDuration)
		row.AddCell().Value = fmt.Sprint(r.Lines)
		row.AddCell().Value = fmt.Sprint(r.UnknownLines)
		row.AddCell().Value = fmt.Sprint(r.DiarizationWarnings)
		row.AddCell().Value = r.CompletedAt.Format(time.RFC3339)
		row.AddCell().Value = r.ErrorMessage
	}

	if err := file.Save(outputFilePath); err != nil {
		return apperrors.Wrapf(err, "saving %s", outputFilePath)
	}
	return nil
}
