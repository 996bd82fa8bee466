package tagging

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/mp3tagger/internal/io"
	"github.com/handiism/mp3tagger/internal/model"
)

// ErrUnresolved is returned by Plan for a state without a resolution pass.
var ErrUnresolved = errors.New("batch is not resolved")

// Rename is one planned file rename.
type Rename struct {
	Track *model.Track

	// From and To are file names relative to the batch directory.
	From string
	To   string
}

// Changed reports whether the rename moves the file.
func (r Rename) Changed() bool {
	return r.From != r.To
}

// CollisionError is returned when a planned file name is claimed by more
// than one track, or by an existing file that is not part of the batch.
type CollisionError struct {
	Target string
	Files  []string
}

func (e *CollisionError) Error() string {
	if len(e.Files) == 0 {
		return fmt.Sprintf("%s: a file with this name already exists", e.Target)
	}
	return fmt.Sprintf("%s: would be the new name of %s", e.Target, strings.Join(e.Files, ", "))
}

// MissingField names one empty field of one file.
type MissingField struct {
	File  string
	Field model.Field
}

// IncompleteError is returned by Commit when some fields are still empty.
type IncompleteError struct {
	Missing []MissingField
}

func (e *IncompleteError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		parts[i] = fmt.Sprintf("%s: %s", m.File, m.Field)
	}
	return "missing values: " + strings.Join(parts, ", ")
}

// Missing returns every field of every track that is still empty.
func Missing(state BatchState) []MissingField {
	var missing []MissingField
	for _, t := range state.Tracks {
		if t == nil {
			continue
		}
		for _, f := range t.Missing() {
			missing = append(missing, MissingField{File: t.Source.Name(), Field: f})
		}
	}
	return missing
}

// InvalidField names one value that cannot be written to a tag.
type InvalidField struct {
	File  string
	Field model.Field
	Value string
	Err   error
}

// InvalidError is returned by Commit when some values fail validation.
type InvalidError struct {
	Invalid []InvalidField
}

func (e *InvalidError) Error() string {
	parts := make([]string, len(e.Invalid))
	for i, v := range e.Invalid {
		parts[i] = fmt.Sprintf("%s: %s %q (%v)", v.File, v.Field, v.Value, v.Err)
	}
	return "invalid values: " + strings.Join(parts, ", ")
}

// checkedFields are validated before anything is written.
var checkedFields = []model.Field{model.FieldTrackNum, model.FieldYear, model.FieldGenre}

// Invalid returns every non-empty track number, year or genre that
// model.Validate rejects, wherever the value came from.
func Invalid(state BatchState) []InvalidField {
	var invalid []InvalidField
	for _, t := range state.Tracks {
		if t == nil {
			continue
		}
		for _, f := range checkedFields {
			value := t.Get(f)
			if err := model.Validate(f, value, false); err != nil {
				invalid = append(invalid, InvalidField{File: t.Source.Name(), Field: f, Value: value, Err: err})
			}
		}
	}
	return invalid
}

// Plan computes the new file name of every track.
//
// The pad width is computed per album from the current values. Returns a
// *model.FormatError for a non-numeric track number and a *CollisionError
// if two tracks map to the same name or a name is taken by a file outside
// the batch.
func Plan(state BatchState, sanitize bool) ([]Rename, error) {
	if !state.Resolved() {
		return nil, ErrUnresolved
	}

	renames := make([]Rename, len(state.Tracks))
	sources := make(map[string]bool, len(state.Sources))
	for _, src := range state.Sources {
		sources[src.Path] = true
	}

	claimed := make(map[string][]string)
	var order []string
	for i, t := range state.Tracks {
		name, err := model.BuildFileName(t, model.PadWidth(state.Tracks, t.Album()))
		if err != nil {
			return nil, err
		}
		if sanitize {
			name = ioutils.SanitizeFileName(name)
		}

		renames[i] = Rename{Track: t, From: t.Source.Path, To: name}
		if _, ok := claimed[name]; !ok {
			order = append(order, name)
		}
		claimed[name] = append(claimed[name], t.Source.Path)
	}

	for _, name := range order {
		if files := claimed[name]; len(files) > 1 {
			return nil, &CollisionError{Target: name, Files: files}
		}
		if !sources[name] && ioutils.Exists(filepath.Join(state.Dir, name)) {
			return nil, &CollisionError{Target: name}
		}
	}

	return renames, nil
}
