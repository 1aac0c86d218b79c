package cloud

import (
	"github.com/spf13/cobra"

	"github.com/concord-consortium/audio-transcriber/internal/app/api/gcloud"
	"github.com/concord-consortium/audio-transcriber/internal/app/gcs"
	"github.com/concord-consortium/audio-transcriber/internal/app/logger"
	"github.com/concord-consortium/audio-transcriber/internal/app/pipeline"
	"github.com/concord-consortium/audio-transcriber/internal/app/repository/sqlite"
	"github.com/concord-consortium/audio-transcriber/internal/app/util/files"
	"github.com/concord-consortium/audio-transcriber/internal/config"
)

var outputPath string

func init() {
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"CSV output path (default: input path with a .csv extension)")
}

// Cmd represents the cloud command
var Cmd = &cobra.Command{
	Use:   "cloud <input-file>",
	Short: "Transcribe one file with Google Cloud Speech-to-Text diarization",
	Long: `Transcribe one file with Google Cloud Speech-to-Text diarization

- Convert the input to FLAC via ffmpeg
- Stage the FLAC in the configured GCS bucket, removed again after the run
- Run long-running recognition with speaker diarization enabled
- Write 'Time;Speaker;Text' lines to stdout and a CSV file`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		log, err := logger.New(verbose)
		if err != nil {
			return err
		}
		defer log.Sync()

		settings := config.FromEnv()
		if err := settings.RequireBucket(); err != nil {
			return err
		}

		opts := settings.ClientOptions()
		stager, err := gcs.NewStager(cmd.Context(), log, settings.GCSBucket, opts...)
		if err != nil {
			return err
		}
		defer stager.Close()

		recognizer, err := gcloud.NewRecognizer(cmd.Context(), log, opts...)
		if err != nil {
			return err
		}
		defer recognizer.Close()

		db, err := sqlite.NewSQLiteDB(settings.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		p := pipeline.NewCloudPipeline(log, stager, recognizer, db)

		inputPath := args[0]
		csvPath := outputPath
		if csvPath == "" {
			csvPath = files.OutputCSVPath(inputPath)
		}
		return p.Run(cmd.Context(), inputPath, csvPath)
	},
}
