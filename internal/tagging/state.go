package tagging

import (
	"github.com/handiism/mp3tagger/internal/model"
	"github.com/handiism/mp3tagger/internal/pattern"
)

// BatchState is the state of one batch between resolution passes.
//
// A BatchState is never modified in place. The With* methods return a copy
// with one part replaced, so a state handed to the prompt or the committer
// stays valid while the next pass is being prepared.
type BatchState struct {
	// Dir is the directory the batch was discovered in.
	Dir string

	// Template is the filename format the Pattern was compiled from.
	Template string

	// Pattern is the compiled Template. Nil until a template is set.
	Pattern *pattern.Pattern

	// Common holds the values shared by every file of the batch.
	Common model.CommonTags

	// Sources lists the discovered files in sorted order.
	Sources []model.Source

	// Tracks holds the result of the last resolution pass, indexed like
	// Sources. Nil before the first pass.
	Tracks []*model.Track
}

// NewBatchState returns the state of a freshly discovered batch.
func NewBatchState(dir string, sources []model.Source) BatchState {
	return BatchState{
		Dir:     dir,
		Common:  model.CommonTags{},
		Sources: append([]model.Source(nil), sources...),
	}
}

// WithTemplate returns a copy of s using template, compiled.
func (s BatchState) WithTemplate(template string) (BatchState, error) {
	p, err := pattern.Compile(template)
	if err != nil {
		return s, err
	}
	return s.WithPattern(p), nil
}

// WithPattern returns a copy of s using the compiled pattern p.
func (s BatchState) WithPattern(p *pattern.Pattern) BatchState {
	s.Pattern = p
	s.Template = p.Template()
	return s
}

// WithCommon returns a copy of s with the given common tags.
func (s BatchState) WithCommon(common model.CommonTags) BatchState {
	s.Common = common.Clone()
	return s
}

// WithTracks returns a copy of s holding tracks.
func (s BatchState) WithTracks(tracks []*model.Track) BatchState {
	s.Tracks = cloneTracks(tracks)
	return s
}

// WithTrack returns a copy of s with the track at index i replaced.
func (s BatchState) WithTrack(i int, t *model.Track) BatchState {
	tracks := cloneTracks(s.Tracks)
	tracks[i] = t.Clone()
	s.Tracks = tracks
	return s
}

// Resolved reports whether every source has a resolved track.
func (s BatchState) Resolved() bool {
	if len(s.Tracks) != len(s.Sources) {
		return false
	}
	for _, t := range s.Tracks {
		if t == nil {
			return false
		}
	}
	return true
}

// pattern returns the compiled pattern, or the empty pattern if no
// template was set.
func (s BatchState) pattern() *pattern.Pattern {
	if s.Pattern == nil {
		return pattern.MustCompile("")
	}
	return s.Pattern
}

func cloneTracks(tracks []*model.Track) []*model.Track {
	if tracks == nil {
		return nil
	}
	out := make([]*model.Track, len(tracks))
	for i, t := range tracks {
		if t != nil {
			out[i] = t.Clone()
		}
	}
	return out
}
