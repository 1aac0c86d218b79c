package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/concord-consortium/audio-transcriber/cmd/a2t/cmd/batch"
	"github.com/concord-consortium/audio-transcriber/cmd/a2t/cmd/cloud"
	"github.com/concord-consortium/audio-transcriber/cmd/a2t/cmd/export"
	"github.com/concord-consortium/audio-transcriber/cmd/a2t/cmd/local"
	"github.com/concord-consortium/audio-transcriber/cmd/a2t/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "a2t",
	Short: "Convert audio/video recordings to timestamped, speaker-annotated transcripts",
	Long: `Convert audio/video recordings to timestamped, speaker-annotated transcripts.

- 'cloud' sends audio through Google Cloud Speech-to-Text with native diarization
- 'local' uses a whisper oracle plus a local spectral-clustering speaker heuristic
- Transcripts go to stdout and a CSV file; runs are recorded to sqlite.`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(cloud.Cmd)
	rootCmd.AddCommand(local.Cmd)
	rootCmd.AddCommand(batch.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
