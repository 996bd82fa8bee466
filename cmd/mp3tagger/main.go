package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/handiism/mp3tagger/internal/config"
	"github.com/handiism/mp3tagger/internal/model"
	"github.com/handiism/mp3tagger/internal/tagging"
	"github.com/handiism/mp3tagger/internal/tui"
)

func main() {
	// Command line flags
	var (
		templateFlag = flag.String("template", "", "Filename format, e.g. \"[tracknum] - [title]\" (defaults to the last one used)")
		artistFlag   = flag.String("artist", "", "Artist of every file")
		albumFlag    = flag.String("album", "", "Album of every file")
		yearFlag     = flag.String("year", "", "Year of every file (4 digits)")
		genreFlag    = flag.String("genre", "", "Genre of every file (ID3v1 genre name)")
		dirFlag      = flag.String("dir", ".", "Directory containing the audio files")
		configFlag   = flag.String("config", config.DefaultPath(), "Path to config file")
		playlistFlag = flag.Bool("playlist", false, "Create a playlist per album")
		coverFlag    = flag.String("cover", "", "Image to embed as cover art")
		noRenameFlag = flag.Bool("no-rename", false, "Write tags without renaming files")
		keepTagsFlag = flag.Bool("keep-tags", false, "Keep existing tag frames that are not overwritten")
		yesFlag      = flag.Bool("yes", false, "Do not ask for confirmation")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag   = flag.Bool("dry-run", false, "Show what would be done without writing anything")
	)

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "mp3tagger - Tag and rename MP3 files from their filenames")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  mp3tagger -template \"[tracknum] - [title]\" -artist <artist> -album <album> -year <year> -genre <genre>")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Markers: [title] [artist] [album] [year] [genre] [tracknum]")
		fmt.Fprintln(os.Stderr, "For interactive mode, use: mp3tagger-tui")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	// Load config
	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if *playlistFlag {
		settings.CreatePlaylist = true
	}
	if *coverFlag != "" {
		settings.CoverArtPath = *coverFlag
	}
	if *noRenameFlag {
		settings.RenameFiles = false
	}
	if *keepTagsFlag {
		settings.ClearExisting = false
	}
	settings.DryRun = *dryRunFlag

	template := *templateFlag
	if template == "" {
		template = settings.LastTemplate
	}

	common, err := commonTags(map[model.Field]string{
		model.FieldArtist: *artistFlag,
		model.FieldAlbum:  *albumFlag,
		model.FieldYear:   *yearFlag,
		model.FieldGenre:  *genreFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	manager := tagging.NewManager(settings, func(event tagging.ProgressEvent) {
		if event.Level == tagging.LevelVerbose && !*verboseFlag {
			return
		}
		fmt.Println(tui.RenderEvent(event))
	})

	fmt.Println("🎵 MP3 Tagger")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	state, err := manager.Initialize(*dirFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}

	state, err = state.WithTemplate(template)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	state, err = manager.Resolve(state.WithCommon(common))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if missing := tagging.Missing(state); len(missing) > 0 {
		fmt.Fprintln(os.Stderr, "Error: values missing, add them to the format or pass them as flags:")
		for _, m := range missing {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", m.File, m.Field)
		}
		os.Exit(1)
	}
	if invalid := tagging.Invalid(state); len(invalid) > 0 {
		fmt.Fprintln(os.Stderr, "Error: values cannot be written:")
		for _, v := range invalid {
			fmt.Fprintf(os.Stderr, "  %s: %s %q: %v\n", v.File, v.Field, v.Value, v.Err)
		}
		os.Exit(1)
	}

	renames, err := manager.Plan(state)
	fmt.Println()
	fmt.Println(tui.RenderSummary(state, renames, settings.RenameFiles))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !*yesFlag && !settings.DryRun && !confirm("Is this correct? (y/n) ") {
		fmt.Println("Nothing written.")
		return
	}

	if err := manager.Commit(ctx, state); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nTagging cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if settings.DryRun {
		fmt.Println("\n[Dry run - nothing written]")
		return
	}

	settings.LastTemplate = state.Template
	if err := settings.Save(*configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
	}

	done, total := manager.GetProgress()
	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! %d/%d steps for %d files\n", done, total, len(state.Tracks))
}

// commonTags validates the values given as flags.
func commonTags(values map[model.Field]string) (model.CommonTags, error) {
	common := model.CommonTags{}
	var errs []error
	for _, f := range model.CommonFields {
		value := model.Normalize(f, values[f])
		if err := model.Validate(f, value, false); err != nil {
			errs = append(errs, fmt.Errorf("-%s %q: %w", f, values[f], err))
			continue
		}
		if value != "" {
			common[f] = value
		}
	}
	return common, errors.Join(errs...)
}

// confirm asks a yes/no question on stdin until it gets an answer.
func confirm(question string) bool {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(question)
		if !scanner.Scan() {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}
