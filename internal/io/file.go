// Package ioutils provides file system utilities for mp3tagger.
//
// This package contains functions for:
//   - Audio file discovery
//   - File renaming
//   - File writing
//   - Filename sanitization
//
// All functions that accept a context.Context respect cancellation,
// though file operations themselves may not be interruptible.
package ioutils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ErrTargetExists is returned by Rename when the destination already exists.
var ErrTargetExists = errors.New("target file already exists")

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// ListAudioFiles returns the names of the regular files in dir whose
// extension is one of exts, sorted lexicographically.
//
// Extensions are compared case-insensitively and include the dot
// (".mp3"). Subdirectories are not searched. The returned names are
// relative to dir.
//
// Example:
//
//	files, err := ListAudioFiles(".", []string{".mp3"})
//	// ["01 - So What.mp3", "02 - Freddie Freeloader.mp3"]
func ListAudioFiles(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(ext)] = true
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if allowed[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

// Rename renames oldName to newName inside dir.
//
// Unlike os.Rename it never replaces an existing file: if newName already
// exists an error wrapping ErrTargetExists is returned. Renaming a file to
// its own name is a no-op.
//
// Example:
//
//	err := Rename(ctx, "/music/Kind of Blue", "so what.mp3", "01-So What.mp3")
func Rename(ctx context.Context, dir, oldName, newName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if oldName == newName {
		return nil
	}

	oldPath := filepath.Join(dir, oldName)
	newPath := filepath.Join(dir, newName)

	// Case-only renames on case-insensitive file systems report the target
	// as existing; it is the same file, so allow it.
	if info, err := os.Stat(newPath); err == nil {
		oldInfo, oldErr := os.Stat(oldPath)
		if oldErr != nil || !os.SameFile(info, oldInfo) {
			return fmt.Errorf("rename %s to %s: %w", oldName, newName, ErrTargetExists)
		}
	}

	return os.Rename(oldPath, newPath)
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CheckWritable verifies that path can be opened for writing without
// modifying it.
func CheckWritable(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	return f.Close()
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Example:
//
//	playlistContent := []byte("#EXTM3U\n...")
//	err := WriteFile(ctx, "/music/playlist.m3u", playlistContent)
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// This function ensures filenames are valid across different operating systems,
// particularly Windows which has the most restrictive naming rules.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// The extension is kept apart while cleaning, so "Intro....mp3" becomes
// "Intro.mp3" rather than losing its extension.
//
// Example:
//
//	SanitizeFileName("03-Song: Part 1/2.mp3") // Returns "03-Song_ Part 1_2.mp3"
//	SanitizeFileName("04-Track....mp3")      // Returns "04-Track.mp3"
func SanitizeFileName(name string) string {
	ext := filepath.Ext(name)
	if len(ext) <= 1 || invalidChars.MatchString(ext) {
		ext = ""
	}
	stem := strings.TrimSuffix(name, ext)

	stem = invalidChars.ReplaceAllString(stem, "_")
	stem = trailingDots.ReplaceAllString(stem, "")
	stem = repeatedSpaces.ReplaceAllString(stem, " ")
	stem = strings.TrimRight(stem, " ")

	return stem + ext
}
