package local

import (
	"github.com/spf13/cobra"

	"github.com/concord-consortium/audio-transcriber/internal/app/api"
	"github.com/concord-consortium/audio-transcriber/internal/app/diarize"
	"github.com/concord-consortium/audio-transcriber/internal/app/logger"
	"github.com/concord-consortium/audio-transcriber/internal/app/pipeline"
	"github.com/concord-consortium/audio-transcriber/internal/app/repository/sqlite"
	"github.com/concord-consortium/audio-transcriber/internal/app/util/files"
	"github.com/concord-consortium/audio-transcriber/internal/config"
)

var (
	provider      string
	speakers      int
	windowSeconds float64
	seed          int64
	outputPath    string
)

func init() {
	Cmd.Flags().StringVarP(&provider, "provider", "p", api.ProviderOpenAI,
		"whisper oracle to use: openai or whispercpp")
	Cmd.Flags().IntVarP(&speakers, "speakers", "s", diarize.DefaultSpeakers,
		"number of speaker clusters to form")
	Cmd.Flags().Float64VarP(&windowSeconds, "window", "w", diarize.DefaultWindowSeconds,
		"diarization window length in seconds")
	Cmd.Flags().Int64Var(&seed, "seed", 42,
		"random seed for speaker clustering")
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"CSV output path (default: input path with a .csv extension)")
}

// Cmd represents the local command
var Cmd = &cobra.Command{
	Use:   "local <input-file>",
	Short: "Transcribe one file with a whisper oracle and local speaker clustering",
	Long: `Transcribe one file with a whisper oracle and local speaker clustering

- Normalize the input to 16kHz mono WAV via ffmpeg
- Transcribe with OpenAI whisper or a local whisper.cpp binary
- Attribute speakers by clustering spectral features of fixed windows
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

		inputPath := args[0]
		csvPath := outputPath
		if csvPath == "" {
			csvPath = files.OutputCSVPath(inputPath)
		}
		return p.Run(cmd.Context(), inputPath, csvPath)
	},
}
