package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/mp3tagger/internal/model"
	"github.com/handiism/mp3tagger/internal/tagging"
)

var labelStyle = lipgloss.NewStyle().Width(10)

// RenderSummary renders what a commit of state will do: the filename
// format, the common tags and, per file, the new name and values.
//
// renames may be nil when planning failed; the files are then listed
// under their current names.
func RenderSummary(state tagging.BatchState, renames []tagging.Rename, renameFiles bool) string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Summary"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Format:"))
	b.WriteString(state.Template)
	b.WriteString("\n")
	for _, f := range model.CommonFields {
		value := state.Common.Get(f)
		if value == "" {
			value = dimStyle.Render("(per file)")
		}
		b.WriteString(labelStyle.Render(f.Label() + ":"))
		b.WriteString(value)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, t := range state.Tracks {
		if t == nil {
			continue
		}
		name := t.Source.Name()
		if renames != nil && renameFiles && renames[i].Changed() {
			name = fmt.Sprintf("%s → %s", renames[i].From, renames[i].To)
		}
		b.WriteString(fileStyle.Render(name))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("    " + describeTrack(t)))
		b.WriteString("\n")
	}

	return b.String()
}

// describeTrack returns the track's values on one line.
func describeTrack(t *model.Track) string {
	parts := []string{"#" + t.Get(model.FieldTrackNum), t.Title()}
	for _, f := range model.CommonFields {
		if v := t.Get(f); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " · ")
}
