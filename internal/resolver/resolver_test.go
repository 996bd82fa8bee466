package resolver

import (
	"errors"
	"strings"
	"testing"

	"github.com/handiism/mp3tagger/internal/model"
	"github.com/handiism/mp3tagger/internal/pattern"
)

func TestResolve_Scenario(t *testing.T) {
	p := pattern.MustCompile("[tracknum] - [title]")
	common := model.CommonTags{
		model.FieldArtist: "Duke Ellington",
		model.FieldAlbum:  "Solitude",
		model.FieldYear:   "1934",
	}

	track, err := Resolve(p, model.Source{Path: "04 - Solitude.mp3", Position: 1}, common, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := map[model.Field]struct {
		value  string
		origin model.Origin
	}{
		model.FieldTrackNum: {"04", model.OriginFilename},
		model.FieldTitle:    {"Solitude", model.OriginFilename},
		model.FieldArtist:   {"Duke Ellington", model.OriginCommon},
		model.FieldAlbum:    {"Solitude", model.OriginCommon},
		model.FieldYear:     {"1934", model.OriginCommon},
		model.FieldGenre:    {"", model.OriginDefault},
	}
	for f, w := range want {
		if got := track.Get(f); got != w.value {
			t.Errorf("%s = %q, want %q", f, got, w.value)
		}
		if got := track.Origin(f); got != w.origin {
			t.Errorf("%s origin = %s, want %s", f, got, w.origin)
		}
	}
}

func TestResolve_RoundTrip(t *testing.T) {
	templates := []string{
		"[tracknum] - [artist] - [album] - [year] - [genre] - [title]",
		"[artist]_[album]_([year])_[genre]_[tracknum]_[title]",
		"[year] {[genre]} [artist] -- [album] -- [tracknum]. [title]",
		"[title] by [artist] on [album] [[year]] [genre] #[tracknum]",
	}
	values := map[model.Field]string{
		model.FieldTitle:    "So What",
		model.FieldArtist:   "Miles Davis",
		model.FieldAlbum:    "Kind of Blue",
		model.FieldYear:     "1959",
		model.FieldGenre:    "Jazz",
		model.FieldTrackNum: "01",
	}

	for _, tmpl := range templates {
		t.Run(tmpl, func(t *testing.T) {
			name := tmpl
			for f, v := range values {
				name = strings.ReplaceAll(name, f.Marker(), v)
			}

			p := pattern.MustCompile(tmpl)
			track, err := Resolve(p, model.Source{Path: name + ".mp3", Position: 9}, nil, nil)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", name, err)
			}
			for f, v := range values {
				if got := track.Get(f); got != v {
					t.Errorf("%s = %q, want %q", f, got, v)
				}
			}
		})
	}
}

func TestResolve_Precedence(t *testing.T) {
	p := pattern.MustCompile("[title]")
	src := model.Source{Path: "Blue in Green.mp3", Position: 3}

	previous := model.NewTrack(src)
	previous.Set(model.FieldTitle, "Old Title", model.OriginInput)
	previous.Set(model.FieldArtist, "Prev Artist", model.OriginInput)
	previous.Set(model.FieldAlbum, "Prev Album", model.OriginInput)
	previous.Set(model.FieldTrackNum, "7", model.OriginInput)

	common := model.CommonTags{
		model.FieldTitle:  "Common Title",
		model.FieldArtist: "Common Artist",
		model.FieldAlbum:  "",
	}

	track, err := Resolve(p, src, common, previous)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	tests := []struct {
		field  model.Field
		value  string
		origin model.Origin
	}{
		// Extraction wins over both common and previous.
		{model.FieldTitle, "Blue in Green", model.OriginFilename},
		// Common wins over previous.
		{model.FieldArtist, "Common Artist", model.OriginCommon},
		// Empty common falls through to previous.
		{model.FieldAlbum, "Prev Album", model.OriginPrevious},
		{model.FieldTrackNum, "7", model.OriginPrevious},
		// Nothing anywhere: default.
		{model.FieldYear, "", model.OriginDefault},
		{model.FieldGenre, "", model.OriginDefault},
	}
	for _, tt := range tests {
		if got := track.Get(tt.field); got != tt.value {
			t.Errorf("%s = %q, want %q", tt.field, got, tt.value)
		}
		if got := track.Origin(tt.field); got != tt.origin {
			t.Errorf("%s origin = %s, want %s", tt.field, got, tt.origin)
		}
	}
}

func TestResolve_AbsentMarkerNeverUsesFilename(t *testing.T) {
	p := pattern.MustCompile("")
	src := model.Source{Path: "Artist - Title.mp3", Position: 5}

	track, err := Resolve(p, src, nil, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for _, f := range model.AllFields {
		want := ""
		if f == model.FieldTrackNum {
			want = "5"
		}
		if got := track.Get(f); got != want {
			t.Errorf("%s = %q, want %q", f, got, want)
		}
		if got := track.Origin(f); got != model.OriginDefault {
			t.Errorf("%s origin = %s, want default", f, got)
		}
	}
}

func TestResolve_MarkerFreeTemplateSkipsMatching(t *testing.T) {
	p := pattern.MustCompile("just literal text")
	if _, err := Resolve(p, model.Source{Path: "anything.mp3", Position: 1}, nil, nil); err != nil {
		t.Errorf("Resolve() error = %v, want nil for template without markers", err)
	}
}

func TestResolve_NoMatch(t *testing.T) {
	p := pattern.MustCompile("[tracknum] - [title]")
	track, err := Resolve(p, model.Source{Path: "dir/Solitude.mp3", Position: 1}, nil, nil)
	if track != nil {
		t.Errorf("Resolve() track = %+v, want nil", track)
	}

	var noMatch *NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("Resolve() error = %v, want *NoMatchError", err)
	}
	if noMatch.File != "Solitude.mp3" {
		t.Errorf("NoMatchError.File = %q, want %q", noMatch.File, "Solitude.mp3")
	}
	if noMatch.Template != "[tracknum] - [title]" {
		t.Errorf("NoMatchError.Template = %q", noMatch.Template)
	}
}

func TestResolve_ExtractionWinsEvenWhenEmpty(t *testing.T) {
	// [artist] captures lazily, so it is empty when directly followed by [title].
	p := pattern.MustCompile("[artist][title]")
	common := model.CommonTags{model.FieldArtist: "Common"}

	track, err := Resolve(p, model.Source{Path: "Song.mp3", Position: 1}, common, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := track.Get(model.FieldArtist); got != "" {
		t.Errorf("artist = %q, want empty capture", got)
	}
	if got := track.Origin(model.FieldArtist); got != model.OriginFilename {
		t.Errorf("artist origin = %s, want filename", got)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	p := pattern.MustCompile("[tracknum] [title]")
	src := model.Source{Path: "02 Freddie Freeloader.mp3", Position: 2}
	common := model.CommonTags{model.FieldArtist: "Miles Davis"}

	first, err := Resolve(p, src, common, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	second, err := Resolve(p, src, common, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("Resolve() is not idempotent: %+v != %+v", first, second)
	}
}

func TestResolve_FixedPoint(t *testing.T) {
	p := pattern.MustCompile("[title]")
	src := model.Source{Path: "Flamenco Sketches.mp3", Position: 5}
	common := model.CommonTags{model.FieldAlbum: "Kind of Blue"}

	first, err := Resolve(p, src, common, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	first.Set(model.FieldYear, "1959", model.OriginInput)

	second, err := Resolve(p, src, common, first)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	third, err := Resolve(p, src, common, second)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	for _, f := range model.AllFields {
		if second.Get(f) != third.Get(f) {
			t.Errorf("%s changed between passes: %q -> %q", f, second.Get(f), third.Get(f))
		}
	}
	if !second.Equal(third) {
		t.Error("third pass should equal second pass")
	}
	if got := second.Get(model.FieldYear); got != "1959" {
		t.Errorf("year = %q, want previous input %q", got, "1959")
	}
}

func TestResolveAll(t *testing.T) {
	p := pattern.MustCompile("[tracknum] - [title]")
	sources := []model.Source{
		{Path: "01 - So What.mp3", Position: 1},
		{Path: "bonus.mp3", Position: 2},
		{Path: "03 - Blue in Green.mp3", Position: 3},
		{Path: "hidden.mp3", Position: 4},
	}

	tracks, err := ResolveAll(p, sources, nil, nil)
	if err == nil {
		t.Fatal("ResolveAll() error = nil, want joined NoMatchErrors")
	}
	if !strings.Contains(err.Error(), "bonus.mp3") || !strings.Contains(err.Error(), "hidden.mp3") {
		t.Errorf("ResolveAll() error = %v, want both failing files", err)
	}
	if len(tracks) != 4 {
		t.Fatalf("ResolveAll() returned %d tracks, want 4", len(tracks))
	}
	if tracks[0] == nil || tracks[0].Title() != "So What" {
		t.Errorf("tracks[0] = %+v", tracks[0])
	}
	if tracks[1] != nil || tracks[3] != nil {
		t.Error("unmatched files should have nil tracks")
	}
}

func TestResolveAll_UsesPrevious(t *testing.T) {
	p := pattern.MustCompile("")
	sources := []model.Source{{Path: "a.mp3", Position: 1}, {Path: "b.mp3", Position: 2}}

	prev := model.NewTrack(sources[1])
	prev.Set(model.FieldTitle, "Bee", model.OriginInput)

	tracks, err := ResolveAll(p, sources, nil, []*model.Track{nil, prev})
	if err != nil {
		t.Fatalf("ResolveAll() error = %v", err)
	}
	if got := tracks[1].Title(); got != "Bee" {
		t.Errorf("tracks[1].Title() = %q, want %q", got, "Bee")
	}
	if got := tracks[0].Title(); got != "" {
		t.Errorf("tracks[0].Title() = %q, want empty", got)
	}
}
