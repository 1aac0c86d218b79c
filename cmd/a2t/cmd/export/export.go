package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/concord-consortium/audio-transcriber/internal/app/repository/export"
	"github.com/concord-consortium/audio-transcriber/internal/app/repository/sqlite"
	"github.com/concord-consortium/audio-transcriber/internal/config"
)

var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "output", "o", "", "set the xlsx output path")

	Cmd.MarkFlagRequired("output")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the run history to excel",
	Long: `Export the run history to excel

- Every recorded run is exported, newest first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.FromEnv()
		db, err := sqlite.NewSQLiteDB(settings.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		records, err := db.GetAll()
		if err != nil {
			return err
		}

		if err := export.ToExcel(records, outputFilePath); err != nil {
			return err
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
		return nil
	},
}
