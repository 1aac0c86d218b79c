package main

import (
	"fmt"
	"os"

	"github.com/concord-consortium/audio-transcriber/cmd/a2t/cmd"
	"github.com/concord-consortium/audio-transcriber/internal/config"
)

func main() {
	// Missing .env is fine; commands validate the settings they need.
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration warning: %v\n", err)
	}

	cmd.Execute()
}
