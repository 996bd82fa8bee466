package model

import (
	"fmt"
	"strconv"
)

// OutputExtension is the extension given to every generated filename.
const OutputExtension = ".mp3"

// FormatError reports a resolved value that cannot be used as a number.
//
// The track number may come from unconstrained filename text, so it is
// checked before any padding or renaming happens.
type FormatError struct {
	File  string
	Field Field
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s %q is not a non-negative integer", e.File, e.Field, e.Value)
}

// TrackNumber parses the track's tracknum as an unsigned integer.
func (t *Track) TrackNumber() (uint64, error) {
	raw := t.Get(FieldTrackNum)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, &FormatError{File: t.Source.Name(), Field: FieldTrackNum, Value: raw}
	}
	return n, nil
}

// BuildFileName returns the canonical output filename for t.
//
// The track number is zero-padded to width digits and joined to the title
// with a dash:
//
//	BuildFileName(track{tracknum: "3", title: "Intro"}, 2) // "03-Intro.mp3"
//
// Returns a *FormatError if the track number is not numeric.
func BuildFileName(t *Track, width int) (string, error) {
	n, err := t.TrackNumber()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d-%s%s", width, n, t.Title(), OutputExtension), nil
}
