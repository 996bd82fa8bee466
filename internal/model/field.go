package model

// Field is one of the taggable metadata attributes of a track.
//
// The set of fields is closed; AllFields lists every one of them in the
// order they are resolved, prompted and displayed.
type Field string

const (
	FieldTitle    Field = "title"
	FieldArtist   Field = "artist"
	FieldAlbum    Field = "album"
	FieldYear     Field = "year"
	FieldGenre    Field = "genre"
	FieldTrackNum Field = "tracknum"
)

// AllFields contains every Field in display order.
var AllFields = []Field{
	FieldTitle,
	FieldArtist,
	FieldAlbum,
	FieldYear,
	FieldGenre,
	FieldTrackNum,
}

// CommonFields are the fields the user is asked for once per batch.
//
// Title and track number are inherently per-file, so they are only ever
// taken from the filename or asked for each track.
var CommonFields = []Field{
	FieldArtist,
	FieldAlbum,
	FieldYear,
	FieldGenre,
}

// Marker returns the template token standing for the field, e.g. "[title]".
func (f Field) Marker() string {
	return "[" + string(f) + "]"
}

// Label returns a human readable name for prompts and summaries.
func (f Field) Label() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldArtist:
		return "Artist"
	case FieldAlbum:
		return "Album"
	case FieldYear:
		return "Year"
	case FieldGenre:
		return "Genre"
	case FieldTrackNum:
		return "Track Number"
	default:
		return string(f)
	}
}

// Valid reports whether f is one of the known fields.
func (f Field) Valid() bool {
	for _, known := range AllFields {
		if f == known {
			return true
		}
	}
	return false
}

// ParseField converts a field name such as "artist" into a Field.
func ParseField(name string) (Field, bool) {
	f := Field(name)
	return f, f.Valid()
}

// CommonTags holds values entered once for the whole batch.
//
// An empty value means "not supplied": the field is then derived per file.
type CommonTags map[Field]string

// Get returns the value for f, or "" if none was supplied.
func (c CommonTags) Get(f Field) string {
	if c == nil {
		return ""
	}
	return c[f]
}

// Clone returns an independent copy of c.
func (c CommonTags) Clone() CommonTags {
	out := make(CommonTags, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
