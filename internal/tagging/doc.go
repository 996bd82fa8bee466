// Package tagging orchestrates a batch of MP3 files from discovery to the
// final tag writes and renames.
//
// # Manager
//
// The Manager coordinates the whole process:
//
//  1. Discover the audio files of a directory
//  2. Resolve every file against the filename format and common tags
//  3. Plan the new file names
//  4. Write ID3 tags, verifying them by reading them back
//  5. Rename the files and write playlists (optional)
//
// # Basic Usage
//
//	manager := tagging.NewManager(settings, func(event tagging.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	state, err := manager.Initialize(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	state, err = state.WithTemplate("[tracknum] - [title]")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	state, err = manager.Resolve(state.WithCommon(common))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = manager.Commit(ctx, state)
//
// # Passes
//
// A BatchState is immutable. Every resolution pass returns a new state, and
// the tracks of the previous state become the defaults of the next pass, so
// values entered by the user survive a change of template.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// GetProgress returns the finished and total commit steps for progress bars.
package tagging
