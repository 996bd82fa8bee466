package tui

import (
	"fmt"

	"github.com/handiism/mp3tagger/internal/model"
	"github.com/handiism/mp3tagger/internal/tagging"
)

// commonTrack is the Prompt.Track value of a common tag prompt.
const commonTrack = -1

// trackFieldOrder is the order per-file values are asked in.
var trackFieldOrder = []model.Field{
	model.FieldTrackNum,
	model.FieldTitle,
	model.FieldArtist,
	model.FieldAlbum,
	model.FieldYear,
	model.FieldGenre,
}

// Prompt is one value the user is asked for.
type Prompt struct {
	// Track is the index of the track the value belongs to, or -1 for a
	// common tag.
	Track int

	Field    model.Field
	Label    string
	Value    string
	Required bool
}

// Common reports whether the prompt asks for a common tag.
func (p Prompt) Common() bool {
	return p.Track == commonTrack
}

// Validate checks value for the prompt's field.
func (p Prompt) Validate(value string) error {
	return model.Validate(p.Field, value, p.Required)
}

// CommonPrompts returns the prompts for the common tags of state,
// prefilled with the current values.
//
// Fields taken from the filename are skipped: an extracted value always
// wins over a common one.
func CommonPrompts(state tagging.BatchState) []Prompt {
	var prompts []Prompt
	for _, f := range model.CommonFields {
		if state.Pattern != nil && state.Pattern.Has(f) {
			continue
		}
		prompts = append(prompts, Prompt{
			Track: commonTrack,
			Field: f,
			Label: fmt.Sprintf("%s (leave empty to enter per file)", f.Label()),
			Value: state.Common.Get(f),
		})
	}
	return prompts
}

// TrackPrompts returns a prompt for every track field that was neither
// extracted from the filename nor set by a common tag. Each prompt is
// prefilled with the value of the previous pass or the default.
func TrackPrompts(state tagging.BatchState) []Prompt {
	var prompts []Prompt
	for i, t := range state.Tracks {
		if t == nil {
			continue
		}
		for _, f := range trackFieldOrder {
			if !t.NeedsInput(f) {
				continue
			}
			prompts = append(prompts, Prompt{
				Track:    i,
				Field:    f,
				Label:    f.Label(),
				Value:    t.Get(f),
				Required: true,
			})
		}
	}
	return prompts
}

// Apply stores value as the answer to p and returns the new state.
func Apply(state tagging.BatchState, p Prompt, value string) tagging.BatchState {
	if p.Common() {
		common := state.Common.Clone()
		if value == "" {
			delete(common, p.Field)
		} else {
			common[p.Field] = value
		}
		return state.WithCommon(common)
	}

	track := state.Tracks[p.Track].Clone()
	track.Set(p.Field, value, model.OriginInput)
	return state.WithTrack(p.Track, track)
}
