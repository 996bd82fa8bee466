// Package config provides configuration management for mp3tagger.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to audio.TagConfig and audio.PlaylistFormat for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Tags .mp3 files, renames them, clears previous tags
//	// Verifies written tags by reading them back
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.LastTemplate = "[tracknum] - [title]"
//	err := settings.Save(config.DefaultPath())
//
// # Configuration Options
//
// Settings includes options for:
//   - Audio file extensions and the last filename format used
//   - Renaming and filename sanitization
//   - Tag clearing, ID3v1 removal and read-back verification
//   - Cover art embedding
//   - Playlist generation
package config
