package audio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhowden/tag"
	"github.com/handiism/mp3tagger/internal/model"
)

func TestTagger_SaveTags(t *testing.T) {
	path := writeTestMP3(t, true)
	track := testTrack("So What", "01")

	if err := NewTagger(DefaultTagConfig()).SaveTags(path, track, nil); err != nil {
		t.Fatalf("SaveTags() error = %v", err)
	}

	m := readTags(t, path)
	if m.Title() != "So What" {
		t.Errorf("Title() = %q, want %q", m.Title(), "So What")
	}
	if m.Artist() != "Miles Davis" {
		t.Errorf("Artist() = %q, want %q", m.Artist(), "Miles Davis")
	}
	if m.Album() != "Kind of Blue" {
		t.Errorf("Album() = %q, want %q", m.Album(), "Kind of Blue")
	}
	if m.Year() != 1959 {
		t.Errorf("Year() = %d, want 1959", m.Year())
	}
	if m.Genre() != "Jazz" {
		t.Errorf("Genre() = %q, want %q", m.Genre(), "Jazz")
	}
	if n, _ := m.Track(); n != 1 {
		t.Errorf("Track() = %d, want 1", n)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("TAGold")) {
		t.Error("ID3v1 trailer should have been removed")
	}
}

func TestTagger_ClearExisting(t *testing.T) {
	tests := []struct {
		name          string
		clearExisting bool
		wantArtist    string
	}{
		{"clear", true, ""},
		{"keep", false, "Miles Davis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestMP3(t, false)
			if err := NewTagger(nil).SaveTags(path, testTrack("So What", "1"), nil); err != nil {
				t.Fatalf("first SaveTags() error = %v", err)
			}

			cfg := DefaultTagConfig()
			cfg.ClearExisting = tt.clearExisting
			cfg.Artist = TagDoNotModify
			track := testTrack("Blue in Green", "3")
			track.Set(model.FieldArtist, "", model.OriginDefault)
			if err := NewTagger(cfg).SaveTags(path, track, nil); err != nil {
				t.Fatalf("second SaveTags() error = %v", err)
			}

			m := readTags(t, path)
			if m.Artist() != tt.wantArtist {
				t.Errorf("Artist() = %q, want %q", m.Artist(), tt.wantArtist)
			}
			if m.Title() != "Blue in Green" {
				t.Errorf("Title() = %q, want %q", m.Title(), "Blue in Green")
			}
		})
	}
}

func TestTagger_InvalidTrackNumber(t *testing.T) {
	path := writeTestMP3(t, false)

	err := NewTagger(nil).SaveTags(path, testTrack("So What", "one"), nil)

	var formatErr *model.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("SaveTags() error = %v, want *model.FormatError", err)
	}
}

func TestTagger_Artwork(t *testing.T) {
	path := writeTestMP3(t, false)
	artwork := []byte("\xff\xd8\xff\xe0fake-jpeg")

	if err := NewTagger(nil).SaveTags(path, testTrack("So What", "1"), artwork); err != nil {
		t.Fatalf("SaveTags() error = %v", err)
	}

	pic := readTags(t, path).Picture()
	if pic == nil {
		t.Fatal("Picture() = nil, want embedded artwork")
	}
	if pic.MIMEType != "image/jpeg" || !bytes.Equal(pic.Data, artwork) {
		t.Errorf("Picture() = %s %q, want image/jpeg %q", pic.MIMEType, pic.Data, artwork)
	}
}

func TestVerifier_Verify(t *testing.T) {
	path := writeTestMP3(t, false)
	written := testTrack("So What", "01")
	if err := NewTagger(nil).SaveTags(path, written, nil); err != nil {
		t.Fatalf("SaveTags() error = %v", err)
	}

	verifier := NewVerifier(nil)
	if err := verifier.Verify(path, written); err != nil {
		t.Errorf("Verify() error = %v, want nil", err)
	}

	other := testTrack("Flamenco Sketches", "01")
	err := verifier.Verify(path, other)
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Verify() error = %v, want *MismatchError", err)
	}
	if len(mismatch.Mismatches) != 1 || mismatch.Mismatches[0].Field != model.FieldTitle {
		t.Errorf("Mismatches = %+v, want only title", mismatch.Mismatches)
	}
}

func TestVerifier_SkipsUnmodifiedFields(t *testing.T) {
	path := writeTestMP3(t, false)
	if err := NewTagger(nil).SaveTags(path, testTrack("So What", "1"), nil); err != nil {
		t.Fatalf("SaveTags() error = %v", err)
	}

	cfg := DefaultTagConfig()
	cfg.TrackTitle = TagDoNotModify
	if err := NewVerifier(cfg).Verify(path, testTrack("Something Else", "1")); err != nil {
		t.Errorf("Verify() error = %v, want nil", err)
	}
}

func TestStripID3v1(t *testing.T) {
	tests := []struct {
		name    string
		trailer bool
		want    bool
	}{
		{"with trailer", true, true},
		{"without trailer", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestMP3(t, tt.trailer)
			before, _ := os.Stat(path)

			got, err := StripID3v1(path)
			if err != nil {
				t.Fatalf("StripID3v1() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("StripID3v1() = %v, want %v", got, tt.want)
			}

			after, _ := os.Stat(path)
			wantSize := before.Size()
			if tt.want {
				wantSize -= id3v1Size
			}
			if after.Size() != wantSize {
				t.Errorf("size = %d, want %d", after.Size(), wantSize)
			}
		})
	}
}

func TestStripID3v1_ShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.mp3")
	if err := os.WriteFile(path, []byte("TAG"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := StripID3v1(path)
	if err != nil || got {
		t.Errorf("StripID3v1() = %v, %v, want false, nil", got, err)
	}
}

// writeTestMP3 writes a file of placeholder audio data, optionally followed
// by an ID3v1 trailer.
func writeTestMP3(t *testing.T, withID3v1 bool) string {
	t.Helper()

	data := bytes.Repeat([]byte{0x00}, 512)
	if withID3v1 {
		trailer := make([]byte, id3v1Size)
		copy(trailer, "TAGold title")
		data = append(data, trailer...)
	}

	path := filepath.Join(t.TempDir(), "track.mp3")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testTrack(title, trackNum string) *model.Track {
	track := model.NewTrack(model.Source{Path: "track.mp3", Position: 1})
	track.Set(model.FieldTitle, title, model.OriginInput)
	track.Set(model.FieldArtist, "Miles Davis", model.OriginCommon)
	track.Set(model.FieldAlbum, "Kind of Blue", model.OriginCommon)
	track.Set(model.FieldYear, "1959", model.OriginCommon)
	track.Set(model.FieldGenre, "Jazz", model.OriginCommon)
	track.Set(model.FieldTrackNum, trackNum, model.OriginFilename)
	return track
}

func readTags(t *testing.T, path string) tag.Metadata {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		t.Fatalf("tag.ReadFrom() error = %v", err)
	}
	return m
}
