package resolver

import (
	"errors"
	"fmt"

	"github.com/handiism/mp3tagger/internal/model"
	"github.com/handiism/mp3tagger/internal/pattern"
)

// NoMatchError reports a filename that does not follow the filename format.
//
// No field values are guessed for such a file: the user has to fix the
// format or the filename and resolve again.
type NoMatchError struct {
	File     string
	Template string
	Pattern  string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("%s does not match filename format %q (pattern %s)", e.File, e.Template, e.Pattern)
}

// Resolve computes the metadata of one file.
//
// Each field is resolved independently, taking the first available of:
//
//  1. the text captured from the filename, if the field's marker is in the format
//  2. the Common Tags value, if not empty
//  3. the value resolved on the previous pass, if not empty
//  4. the default: the file position for tracknum, "" otherwise
//
// The filename is matched with its extension removed. A format without
// markers extracts nothing and is never matched. If the format has markers
// and the filename does not match, a *NoMatchError is returned.
//
// Resolve is a pure function of its inputs. Feeding the result back as
// previous yields the same values again, so repeated passes converge.
func Resolve(p *pattern.Pattern, src model.Source, common model.CommonTags, previous *model.Track) (*model.Track, error) {
	var captured map[model.Field]string
	if p.HasMarkers() {
		var ok bool
		captured, ok = p.Match(src.Stem())
		if !ok {
			return nil, &NoMatchError{File: src.Name(), Template: p.Template(), Pattern: p.String()}
		}
	}

	track := model.NewTrack(src)
	for _, f := range model.AllFields {
		value, origin := resolveField(f, p, captured, src, common, previous)
		track.Set(f, value, origin)
	}
	return track, nil
}

// resolveField applies the precedence rule to a single field.
func resolveField(f model.Field, p *pattern.Pattern, captured map[model.Field]string, src model.Source, common model.CommonTags, previous *model.Track) (string, model.Origin) {
	if p.Has(f) {
		return captured[f], model.OriginFilename
	}
	if v := common.Get(f); v != "" {
		return v, model.OriginCommon
	}
	if v := previous.Get(f); v != "" {
		return v, model.OriginPrevious
	}
	return src.DefaultValue(f), model.OriginDefault
}

// ResolveAll resolves every source of a batch.
//
// previous may be nil or shorter than sources; previous[i] is used as the
// earlier value of sources[i]. Every file is attempted: the errors of all
// files that fail to match are joined together, and the returned slice holds
// nil for those files.
func ResolveAll(p *pattern.Pattern, sources []model.Source, common model.CommonTags, previous []*model.Track) ([]*model.Track, error) {
	tracks := make([]*model.Track, len(sources))
	var errs []error
	for i, src := range sources {
		var prev *model.Track
		if i < len(previous) {
			prev = previous[i]
		}

		track, err := Resolve(p, src, common, prev)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tracks[i] = track
	}
	return tracks, errors.Join(errs...)
}
