package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/mp3tagger/internal/config"
	"github.com/handiism/mp3tagger/internal/tui"
)

func main() {
	var (
		dirFlag      = flag.String("dir", ".", "Directory containing the audio files")
		configFlag   = flag.String("config", config.DefaultPath(), "Path to config file")
		playlistFlag = flag.Bool("playlist", false, "Create a playlist per album")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag   = flag.Bool("dry-run", false, "Show what would be done without writing anything")
	)
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}
	settings.DryRun = *dryRunFlag

	options := tui.Options{
		Dir:          *dirFlag,
		SettingsPath: *configFlag,
		Verbose:      *verboseFlag,
	}
	if *dryRunFlag {
		options.SettingsPath = ""
	}

	if err := tui.Run(settings, options); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
