package audio

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
	"github.com/handiism/mp3tagger/internal/model"
)

// FieldMismatch describes one field whose stored value differs from the
// value that was written.
type FieldMismatch struct {
	Field model.Field
	Want  string
	Got   string
}

// MismatchError is returned by Verifier.Verify when the tag read back
// from a file does not hold the values that were written.
type MismatchError struct {
	File       string
	Mismatches []FieldMismatch
}

func (e *MismatchError) Error() string {
	parts := make([]string, len(e.Mismatches))
	for i, m := range e.Mismatches {
		parts[i] = fmt.Sprintf("%s: want %q, got %q", m.Field, m.Want, m.Got)
	}
	return fmt.Sprintf("%s: tag mismatch (%s)", e.File, strings.Join(parts, "; "))
}

// Verifier reads tags back from written files and compares them with the
// resolved track values.
//
// Only fields the TagConfig writes (TagModify) are compared.
type Verifier struct {
	config *TagConfig
}

// NewVerifier creates a Verifier for tags written with config.
//
// If config is nil, DefaultTagConfig() is used.
func NewVerifier(config *TagConfig) *Verifier {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Verifier{config: config}
}

// Verify reads the tag of the file at path and checks it against track.
//
// Returns a *MismatchError listing every differing field, or the read
// error if the file has no readable tag.
func (v *Verifier) Verify(path string, track *model.Track) error {
	if !v.config.ModifyTags {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return fmt.Errorf("read tag: %w", err)
	}

	stored := map[model.Field]string{
		model.FieldTitle:    m.Title(),
		model.FieldArtist:   m.Artist(),
		model.FieldAlbum:    m.Album(),
		model.FieldGenre:    m.Genre(),
		model.FieldYear:     formatNumber(m.Year()),
		model.FieldTrackNum: formatNumber(trackOf(m)),
	}

	var mismatches []FieldMismatch
	for _, f := range model.AllFields {
		if v.config.action(f) != TagModify {
			continue
		}
		want := expectedValue(track, f)
		if got := stored[f]; got != want {
			mismatches = append(mismatches, FieldMismatch{Field: f, Want: want, Got: got})
		}
	}

	if len(mismatches) > 0 {
		return &MismatchError{File: path, Mismatches: mismatches}
	}
	return nil
}

// expectedValue returns the value of field f as it reads back from a tag.
// Numbers lose their leading zeros.
func expectedValue(track *model.Track, f model.Field) string {
	value := track.Get(f)
	switch f {
	case model.FieldTrackNum:
		if n, err := track.TrackNumber(); err == nil {
			return strconv.FormatUint(n, 10)
		}
	case model.FieldYear:
		if n, err := strconv.Atoi(value); err == nil {
			return formatNumber(n)
		}
	}
	return value
}

func trackOf(m tag.Metadata) int {
	n, _ := m.Track()
	return n
}

func formatNumber(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
