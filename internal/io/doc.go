// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Discovering the audio files of a batch
//   - Renaming files without overwriting
//   - Filename sanitization for cross-platform compatibility
//   - Cover art resizing and format conversion
//
// # File Operations
//
//	// List the MP3 files of a directory in sorted order
//	files, err := ioutils.ListAudioFiles(".", []string{".mp3"})
//
//	// Rename, refusing to overwrite an existing file
//	err := ioutils.Rename(ctx, ".", "so what.mp3", "01-So What.mp3")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("01-Song: Part 1/2.mp3") // Returns "01-Song_ Part 1_2.mp3"
//
// # Image Processing
//
// The ImageService prepares cover art for embedding in tags:
//
//	svc := ioutils.NewImageService(1000, true)
//	art, err := svc.Load(ctx, ioutils.FindCoverArt("."))
package ioutils
