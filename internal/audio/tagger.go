package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bogem/id3v2"
	"github.com/handiism/mp3tagger/internal/model"
)

// id3v1Size is the size of an ID3v1 trailer at the end of an MP3 file.
const id3v1Size = 128

// TagEditAction defines how to handle individual ID3 tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the resolved track value.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags:    true,
//	    ClearExisting: false,
//	    Artist:        TagModify,      // Write the resolved artist
//	    Genre:         TagDoNotModify, // Keep whatever genre the file has
//	    Comments:      TagEmpty,       // Clear any existing comments
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, no text frames are written.
	ModifyTags bool

	// ClearExisting removes every existing ID3v2 frame before writing,
	// so no value from an earlier tag survives.
	ClearExisting bool

	// RemoveID3v1 strips an ID3v1 trailer from the end of the file.
	RemoveID3v1 bool

	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// Album controls the TALB (Album title) frame.
	Album TagEditAction

	// Year controls the TDRC (Recording time) frame.
	Year TagEditAction

	// Genre controls the TCON (Content type) frame.
	Genre TagEditAction

	// TrackNumber controls the TRCK (Track number) frame.
	TrackNumber TagEditAction

	// TrackTitle controls the TIT2 (Title) frame.
	TrackTitle TagEditAction

	// Comments controls the COMM (Comments) frame.
	Comments TagEditAction
}

// DefaultTagConfig returns the default tag configuration.
//
// Every previous tag generation is removed and all six fields are written.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:    true,
		ClearExisting: true,
		RemoveID3v1:   true,
		Artist:        TagModify,
		Album:         TagModify,
		Year:          TagModify,
		Genre:         TagModify,
		TrackNumber:   TagModify,
		TrackTitle:    TagModify,
		Comments:      TagEmpty,
	}
}

// action returns the configured action for a field.
func (c *TagConfig) action(f model.Field) TagEditAction {
	switch f {
	case model.FieldArtist:
		return c.Artist
	case model.FieldAlbum:
		return c.Album
	case model.FieldYear:
		return c.Year
	case model.FieldGenre:
		return c.Genre
	case model.FieldTrackNum:
		return c.TrackNumber
	case model.FieldTitle:
		return c.TrackTitle
	default:
		return TagDoNotModify
	}
}

// Tagger writes ID3 tags to MP3 files.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	if err := tagger.SaveTags(path, track, artworkBytes); err != nil {
//	    return fmt.Errorf("tag %s: %w", path, err)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// Config returns the tagger configuration.
func (t *Tagger) Config() *TagConfig {
	return t.config
}

// SaveTags writes the track's values as an ID3v2.4 tag to the file at path.
//
// This method:
//  1. Opens the file and parses any existing ID3v2 tag
//  2. Removes all existing frames if ClearExisting is set
//  3. Updates text frames based on TagConfig settings
//  4. Embeds cover art if artwork bytes are provided
//  5. Saves the tag and strips an ID3v1 trailer if RemoveID3v1 is set
//
// Returns a *model.FormatError if the track number is not numeric.
func (t *Tagger) SaveTags(path string, track *model.Track, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	if t.config.ClearExisting {
		tag.DeleteAllFrames()
	}
	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if t.config.ModifyTags {
		if err := t.updateTextFrames(tag, track); err != nil {
			return err
		}
	}

	if artwork != nil {
		t.updateArtwork(tag, artwork)
	}

	if err := tag.Save(); err != nil {
		return err
	}

	if t.config.RemoveID3v1 {
		if _, err := StripID3v1(path); err != nil {
			return fmt.Errorf("remove ID3v1 tag: %w", err)
		}
	}
	return nil
}

// updateTextFrames updates text-based ID3 frames based on configuration.
func (t *Tagger) updateTextFrames(tag *id3v2.Tag, track *model.Track) error {
	// Track Number (TRCK) is written as a plain number without padding.
	var trackNumber string
	if t.config.TrackNumber == TagModify {
		n, err := track.TrackNumber()
		if err != nil {
			return err
		}
		trackNumber = strconv.FormatUint(n, 10)
	}

	frames := []struct {
		field model.Field
		id    string
		value string
	}{
		{model.FieldArtist, tag.CommonID("Lead artist/Lead performer/Soloist/Performing group"), track.Get(model.FieldArtist)},
		{model.FieldAlbum, tag.CommonID("Album/Movie/Show title"), track.Get(model.FieldAlbum)},
		{model.FieldYear, tag.CommonID("Recording time"), track.Get(model.FieldYear)},
		{model.FieldGenre, tag.CommonID("Content type"), track.Get(model.FieldGenre)},
		{model.FieldTitle, tag.CommonID("Title/Songname/Content description"), track.Get(model.FieldTitle)},
		{model.FieldTrackNum, tag.CommonID("Track number/Position in set"), trackNumber},
	}

	for _, fr := range frames {
		switch t.config.action(fr.field) {
		case TagEmpty:
			tag.DeleteFrames(fr.id)
		case TagModify:
			tag.DeleteFrames(fr.id)
			if fr.value != "" {
				tag.AddTextFrame(fr.id, id3v2.EncodingUTF8, fr.value)
			}
		}
	}

	// Comments (COMM)
	if t.config.Comments == TagEmpty {
		tag.DeleteFrames(tag.CommonID("Comments"))
	}
	return nil
}

// updateArtwork embeds cover art as an attached picture frame.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte) {
	// Remove any existing cover pictures
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	mimeType := "image/jpeg"
	if bytes.HasPrefix(artwork, []byte("\x89PNG")) {
		mimeType = "image/png"
	}

	// Add new artwork as front cover (APIC frame)
	pic := id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    mimeType,
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	}
	tag.AddAttachedPicture(pic)
}

// StripID3v1 removes an ID3v1 trailer from the end of the file at path.
// It reports whether a trailer was found.
func StripID3v1(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	size := info.Size()
	if size < id3v1Size {
		return false, nil
	}

	header := make([]byte, 3)
	if _, err := f.ReadAt(header, size-id3v1Size); err != nil && err != io.EOF {
		return false, err
	}
	if string(header) != "TAG" {
		return false, nil
	}

	if err := f.Truncate(size - id3v1Size); err != nil {
		return false, err
	}
	return true, nil
}
