package model

import (
	"path/filepath"
	"strconv"
)

// Origin records which source decided a resolved field value.
type Origin int

const (
	// OriginDefault is the field-specific fallback (position for tracknum, "" otherwise).
	OriginDefault Origin = iota

	// OriginFilename is text captured from the filename by the compiled template.
	OriginFilename

	// OriginCommon is the batch-wide Common Tags value.
	OriginCommon

	// OriginPrevious is the value resolved for the same file on an earlier pass.
	OriginPrevious

	// OriginInput is a value typed by the user for this file.
	OriginInput
)

// String returns a short name for the origin, used in summaries.
func (o Origin) String() string {
	switch o {
	case OriginFilename:
		return "filename"
	case OriginCommon:
		return "common"
	case OriginPrevious:
		return "previous"
	case OriginInput:
		return "input"
	default:
		return "default"
	}
}

// Source is one discovered audio file.
type Source struct {
	// Path is the file path as discovered (may be relative to the batch directory).
	Path string

	// Position is the 1-based index of the file in sorted discovery order.
	Position int
}

// Name returns the basename of the file.
func (s Source) Name() string {
	return filepath.Base(s.Path)
}

// Stem returns the basename with its extension removed.
func (s Source) Stem() string {
	name := s.Name()
	return name[:len(name)-len(filepath.Ext(name))]
}

// DefaultValue returns the lowest-precedence value for f.
//
// The track number defaults to the file's position in the batch; every other
// field defaults to empty, which forces the user to supply it.
func (s Source) DefaultValue(f Field) string {
	if f == FieldTrackNum {
		return strconv.Itoa(s.Position)
	}
	return ""
}

// Track is the resolved metadata for one audio file of the batch.
//
// A Track is created on the first resolution pass and replaced by a new
// value on every later pass; the previous Track then supplies defaults.
type Track struct {
	// Source is the file this record describes.
	Source Source

	// Values holds the resolved value of every Field.
	Values map[Field]string

	// Origins records where each value came from.
	Origins map[Field]Origin
}

// NewTrack creates an empty Track for src.
func NewTrack(src Source) *Track {
	return &Track{
		Source:  src,
		Values:  make(map[Field]string, len(AllFields)),
		Origins: make(map[Field]Origin, len(AllFields)),
	}
}

// Get returns the resolved value of f.
func (t *Track) Get(f Field) string {
	if t == nil {
		return ""
	}
	return t.Values[f]
}

// Origin returns where the value of f came from.
func (t *Track) Origin(f Field) Origin {
	if t == nil {
		return OriginDefault
	}
	return t.Origins[f]
}

// Set stores v for f with the given origin.
func (t *Track) Set(f Field, v string, o Origin) {
	t.Values[f] = v
	t.Origins[f] = o
}

// Title is shorthand for Get(FieldTitle).
func (t *Track) Title() string { return t.Get(FieldTitle) }

// Album is shorthand for Get(FieldAlbum).
func (t *Track) Album() string { return t.Get(FieldAlbum) }

// Clone returns a deep copy of t.
func (t *Track) Clone() *Track {
	if t == nil {
		return nil
	}
	c := NewTrack(t.Source)
	for k, v := range t.Values {
		c.Values[k] = v
	}
	for k, v := range t.Origins {
		c.Origins[k] = v
	}
	return c
}

// Equal reports whether t and other describe the same file with the same values and origins.
func (t *Track) Equal(other *Track) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Source != other.Source {
		return false
	}
	for _, f := range AllFields {
		if t.Get(f) != other.Get(f) || t.Origin(f) != other.Origin(f) {
			return false
		}
	}
	return true
}

// Missing returns the fields that are still empty.
func (t *Track) Missing() []Field {
	var missing []Field
	for _, f := range AllFields {
		if t.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// NeedsInput reports whether f was not determined by the filename or the
// Common Tags, meaning the prompt should offer it for editing.
func (t *Track) NeedsInput(f Field) bool {
	switch t.Origin(f) {
	case OriginFilename, OriginCommon:
		return false
	default:
		return true
	}
}
