package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/mp3tagger/internal/config"
	"github.com/handiism/mp3tagger/internal/model"
	"github.com/handiism/mp3tagger/internal/resolver"
	"github.com/handiism/mp3tagger/internal/tagging"
)

func TestModel_PromptFlow(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "1 - So What.mp3")
	writeFile(t, dir, "2 - Blue in Green.mp3")
	settingsPath := filepath.Join(t.TempDir(), "config.json")

	m := loadedModel(t, config.DefaultSettings(), Options{Dir: dir, SettingsPath: settingsPath})
	if m.State() != StateTemplate {
		t.Fatalf("State() = %v, want StateTemplate", m.State())
	}

	m = enter(t, m, "[tracknum] - [title]")
	if m.State() != StateCommon {
		t.Fatalf("State() = %v, want StateCommon (inputErr = %v)", m.State(), m.inputErr)
	}

	m = enter(t, m, "Miles Davis")
	m = enter(t, m, "Kind of Blue")

	m = enter(t, m, "59")
	if !errors.Is(m.inputErr, model.ErrInvalidYear) {
		t.Fatalf("inputErr = %v, want ErrInvalidYear", m.inputErr)
	}
	m = enter(t, m, "1959")
	m = enter(t, m, "jazz")

	if m.State() != StateSummary {
		t.Fatalf("State() = %v, want StateSummary", m.State())
	}
	if got := m.Batch().Common.Get(model.FieldGenre); got != "Jazz" {
		t.Errorf("genre = %q, want normalized %q", got, "Jazz")
	}
	if m.planErr != nil || len(m.renames) != 2 || m.renames[1].To != "02-Blue in Green.mp3" {
		t.Errorf("renames = %+v, planErr = %v", m.renames, m.planErr)
	}

	m = key(t, m, "y")
	if m.State() != StateCommitting {
		t.Fatalf("State() = %v, want StateCommitting", m.State())
	}

	m = update(t, m, CommitDoneMsg{})
	if m.State() != StateComplete {
		t.Fatalf("State() = %v, want StateComplete", m.State())
	}
	saved, err := config.Load(settingsPath)
	if err != nil {
		t.Fatal(err)
	}
	if saved.LastTemplate != "[tracknum] - [title]" {
		t.Errorf("saved LastTemplate = %q, want %q", saved.LastTemplate, "[tracknum] - [title]")
	}
}

func TestModel_TrackPrompts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "So What.mp3")

	m := loadedModel(t, config.DefaultSettings(), Options{Dir: dir})
	m = enter(t, m, "[title]")
	for _, v := range []string{"Miles Davis", "Kind of Blue", "1959", "Jazz"} {
		m = enter(t, m, v)
	}

	if m.State() != StateTrack {
		t.Fatalf("State() = %v, want StateTrack", m.State())
	}
	p := m.prompts[m.current]
	if p.Field != model.FieldTrackNum || m.input.Value() != "1" {
		t.Errorf("prompt = %s prefilled %q, want tracknum prefilled %q", p.Field, m.input.Value(), "1")
	}

	m = enter(t, m, "")
	if !errors.Is(m.inputErr, model.ErrEmptyValue) {
		t.Fatalf("inputErr = %v, want ErrEmptyValue", m.inputErr)
	}
	m = enter(t, m, "7")

	if m.State() != StateSummary {
		t.Fatalf("State() = %v, want StateSummary", m.State())
	}
	if got := m.renames[0].To; got != "07-So What.mp3" {
		t.Errorf("To = %q, want %q", got, "07-So What.mp3")
	}
}

func TestModel_NoMatchStaysOnTemplate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "1 - So What.mp3")
	writeFile(t, dir, "bonus.mp3")

	m := loadedModel(t, config.DefaultSettings(), Options{Dir: dir})
	m = enter(t, m, "[tracknum] - [title]")

	if m.State() != StateTemplate {
		t.Fatalf("State() = %v, want StateTemplate", m.State())
	}
	var noMatch *resolver.NoMatchError
	if !errors.As(m.inputErr, &noMatch) {
		t.Errorf("inputErr = %v, want *resolver.NoMatchError", m.inputErr)
	}
}

func TestModel_RedoKeepsValues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "1 - So What.mp3")

	m := loadedModel(t, config.DefaultSettings(), Options{Dir: dir})
	m = enter(t, m, "[tracknum] - [title]")
	for _, v := range []string{"Miles Davis", "Kind of Blue", "1959", "Jazz"} {
		m = enter(t, m, v)
	}

	m = key(t, m, "n")
	if m.State() != StateTemplate {
		t.Fatalf("State() = %v, want StateTemplate", m.State())
	}
	if m.input.Value() != "[tracknum] - [title]" {
		t.Errorf("template prefilled with %q", m.input.Value())
	}

	m = enter(t, m, "[tracknum] - [title]")
	if m.input.Value() != "Miles Davis" {
		t.Errorf("artist prefilled with %q, want %q", m.input.Value(), "Miles Davis")
	}
}

func TestModel_InitializeError(t *testing.T) {
	m := loadedModel(t, config.DefaultSettings(), Options{Dir: t.TempDir()})

	if m.State() != StateError || m.err == nil {
		t.Errorf("State() = %v, err = %v, want StateError", m.State(), m.err)
	}
}

// loadedModel returns a model that has discovered its directory.
func TestModel_SummaryRejectsInvalidExtractedYear(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "1959-03 - 01 - So What.mp3")

	m := loadedModel(t, config.DefaultSettings(), Options{Dir: dir})
	m = enter(t, m, "[year] - [tracknum] - [title]")
	for _, v := range []string{"Miles Davis", "Kind of Blue", "Jazz"} {
		m = enter(t, m, v)
	}

	if m.State() != StateSummary {
		t.Fatalf("State() = %v, want StateSummary", m.State())
	}
	var invalid *tagging.InvalidError
	if !errors.As(m.planErr, &invalid) {
		t.Fatalf("planErr = %v, want *tagging.InvalidError", m.planErr)
	}

	m = key(t, m, "y")
	if m.State() != StateSummary {
		t.Errorf("State() = %v, want StateSummary after confirming an invalid batch", m.State())
	}
}

func TestModel_CommitDoneAfterCancel(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		state State
	}{
		{"finished before cancel", nil, StateComplete},
		{"cancelled", context.Canceled, StateError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "1 - So What.mp3")

			m := loadedModel(t, config.DefaultSettings(), Options{Dir: dir})
			m = enter(t, m, "[tracknum] - [title]")
			for _, v := range []string{"Miles Davis", "Kind of Blue", "1959", "Jazz"} {
				m = enter(t, m, v)
			}
			m = key(t, m, "y")
			m.cancel()

			m = update(t, m, CommitDoneMsg{Err: tt.err})
			if m.State() != tt.state {
				t.Errorf("State() = %v, want %v", m.State(), tt.state)
			}
		})
	}
}

func loadedModel(t *testing.T, settings *config.Settings, options Options) Model {
	t.Helper()
	m := NewModel(settings, options)
	return update(t, m, m.initialize()())
}

func enter(t *testing.T, m Model, value string) Model {
	t.Helper()
	m.input.SetValue(value)
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func key(t *testing.T, m Model, k string) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), make([]byte, 512), 0644); err != nil {
		t.Fatal(err)
	}
}
