package batch

import (
	"github.com/spf13/cobra"

	"github.com/concord-consortium/audio-transcriber/internal/app/api"
	"github.com/concord-consortium/audio-transcriber/internal/app/diarize"
	"github.com/concord-consortium/audio-transcriber/internal/app/logger"
	"github.com/concord-consortium/audio-transcriber/internal/app/pipeline"
	"github.com/concord-consortium/audio-transcriber/internal/app/repository/sqlite"
	"github.com/concord-consortium/audio-transcriber/internal/config"
)

var (
	extension     string
	count         int
	provider      string
	speakers      int
	windowSeconds float64
	seed          int64
)

func init() {
	Cmd.Flags().StringVarP(&extension, "extension", "e", ".mp3",
		"file extension to match in the directory, example: .mp3 or .mp4")
	Cmd.Flags().IntVarP(&count, "count", "c", 500,
		"maximum number of unprocessed files to transcribe")
	Cmd.Flags().StringVarP(&provider, "provider", "p", api.ProviderOpenAI,
		"whisper oracle to use: openai or whispercpp")
	Cmd.Flags().IntVarP(&speakers, "speakers", "s", diarize.DefaultSpeakers,
		"number of speaker clusters to form")
	Cmd.Flags().Float64VarP(&windowSeconds, "window", "w", diarize.DefaultWindowSeconds,
		"diarization window length in seconds")
	Cmd.Flags().Int64Var(&seed, "seed", 42,
		"random seed for speaker clustering")
}

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Transcribe every unprocessed matching file in a directory",
	Long: `Transcribe every unprocessed matching file in a directory

- Iterate matching files oldest first
- Skip files a prior successful run already covered
- Each file gets a CSV next to it; one failure does not stop the batch`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		log, err := logger.New(verbose)
		if err != nil {
			return err
		}
		defer log.Sync()

		settings := config.FromEnv()
		transcriber, err := api.NewTranscriber(log, settings, provider)
		if err != nil {
			return err
		}

		db, err := sqlite.NewSQLiteDB(settings.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		diarizer := diarize.NewDiarizer(log, diarize.NewKMeans(seed), windowSeconds, speakers)
		p := pipeline.NewPipeline(log, transcriber, diarizer, db, provider)

		return p.RunDir(cmd.Context(), args[0], extension, count)
	},
}
