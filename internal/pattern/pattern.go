package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/handiism/mp3tagger/internal/model"
)

// Capture sub-patterns substituted for markers.
const (
	textCapture     = `(.*?)`
	trackNumCapture = `(\S+)`
)

// TemplateError reports a template that could not be compiled.
type TemplateError struct {
	Template string
	Err      error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("invalid filename format %q: %v", e.Template, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// Pattern is a compiled filename format.
//
// It pairs an anchored, case-insensitive regular expression with a marker
// table giving the capture group position of every field that appears in
// the template. A Pattern is immutable once compiled and safe to share.
type Pattern struct {
	template  string
	re        *regexp.Regexp
	positions map[model.Field]int
}

// Compile turns a filename format into a Pattern.
//
// Literal text is escaped so it always matches itself; each marker such as
// [artist] or [tracknum] becomes a capture group. Markers are numbered by
// order of appearance; when a marker is used more than once the table keeps
// the position of its last occurrence.
//
// Example:
//
//	p, err := Compile("[tracknum] - [title]")
//	// p.String()                      == `(?i)^(\S+) - (.*?)$`
//	// p.Position(model.FieldTrackNum) == 1
//	// p.Position(model.FieldTitle)    == 2
//	// p.Position(model.FieldArtist)   == 0
//
// Returns a *TemplateError if the template is not valid UTF-8 or the
// resulting expression does not compile.
func Compile(template string) (*Pattern, error) {
	if !utf8.ValidString(template) {
		return nil, &TemplateError{Template: template, Err: errors.New("not valid UTF-8")}
	}

	positions := markerPositions(template)

	expr := regexp.QuoteMeta(template)
	for _, f := range model.AllFields {
		expr = strings.ReplaceAll(expr, regexp.QuoteMeta(f.Marker()), capture(f))
	}

	re, err := regexp.Compile("(?i)^" + expr + "$")
	if err != nil {
		return nil, &TemplateError{Template: template, Err: err}
	}

	return &Pattern{
		template:  template,
		re:        re,
		positions: positions,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(template string) *Pattern {
	p, err := Compile(template)
	if err != nil {
		panic(err)
	}
	return p
}

// capture returns the sub-pattern a field's marker is replaced with.
func capture(f model.Field) string {
	if f == model.FieldTrackNum {
		return trackNumCapture
	}
	return textCapture
}

type occurrence struct {
	offset int
	field  model.Field
}

// markerPositions scans the unescaped template and numbers every marker
// occurrence by order of appearance, starting at 1.
func markerPositions(template string) map[model.Field]int {
	var found []occurrence
	for _, f := range model.AllFields {
		marker := f.Marker()
		for start := 0; ; {
			i := strings.Index(template[start:], marker)
			if i < 0 {
				break
			}
			found = append(found, occurrence{offset: start + i, field: f})
			start += i + len(marker)
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].offset < found[j].offset })

	positions := make(map[model.Field]int, len(found))
	for i, o := range found {
		positions[o.field] = i + 1
	}
	return positions
}

// Template returns the filename format the pattern was compiled from.
func (p *Pattern) Template() string {
	return p.template
}

// String returns the compiled regular expression.
func (p *Pattern) String() string {
	return p.re.String()
}

// Position returns the capture group of f, or 0 if f is not in the template.
func (p *Pattern) Position(f model.Field) int {
	return p.positions[f]
}

// Has reports whether the template contains the marker of f.
func (p *Pattern) Has(f model.Field) bool {
	return p.positions[f] > 0
}

// HasMarkers reports whether the template contains any marker at all.
func (p *Pattern) HasMarkers() bool {
	return len(p.positions) > 0
}

// Fields returns the fields present in the template, in model.AllFields order.
func (p *Pattern) Fields() []model.Field {
	var fields []model.Field
	for _, f := range model.AllFields {
		if p.Has(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// Table returns a copy of the marker table: the capture position of every
// field, with 0 for fields absent from the template.
func (p *Pattern) Table() map[model.Field]int {
	table := make(map[model.Field]int, len(model.AllFields))
	for _, f := range model.AllFields {
		table[f] = p.positions[f]
	}
	return table
}

// Match matches name (a filename with its extension removed) against the
// whole pattern and returns the captured text of every field present in the
// template.
func (p *Pattern) Match(name string) (map[model.Field]string, bool) {
	groups := p.re.FindStringSubmatch(name)
	if groups == nil {
		return nil, false
	}

	values := make(map[model.Field]string, len(p.positions))
	for f, pos := range p.positions {
		if pos < len(groups) {
			values[f] = groups[pos]
		}
	}
	return values, true
}
