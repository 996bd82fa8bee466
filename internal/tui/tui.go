// Package tui provides a Bubble Tea terminal user interface for mp3tagger.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/mp3tagger/internal/config"
	"github.com/handiism/mp3tagger/internal/model"
	"github.com/handiism/mp3tagger/internal/tagging"
)

// maxLogs is the number of progress events kept on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateLoading State = iota
	StateTemplate
	StateCommon
	StateTrack
	StateSummary
	StateCommitting
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   tagging.ProgressLevel
}

// Options configures a Model.
type Options struct {
	// Dir is the directory whose audio files are tagged.
	Dir string

	// SettingsPath is where the last used template is saved after a
	// successful commit. Empty disables saving.
	SettingsPath string

	Verbose bool
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	input    textinput.Model
	spinner  spinner.Model
	progress progress.Model
	settings *config.Settings
	options  Options
	logs     []LogEntry
	err      error

	// Tagging manager and its progress events
	manager *tagging.Manager
	events  chan tagging.ProgressEvent

	// Batch being edited
	batch    tagging.BatchState
	prompts  []Prompt
	current  int
	inputErr error
	renames  []tagging.Rename
	planErr  error

	// Commit context
	ctx    context.Context
	cancel context.CancelFunc

	// Commit progress
	doneSteps  int32
	totalSteps int32

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings, options Options) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if options.Dir == "" {
		options.Dir = "."
	}

	ti := textinput.New()
	ti.Placeholder = "[tracknum] - [title]"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	events := make(chan tagging.ProgressEvent, 100)
	manager := tagging.NewManager(settings, func(event tagging.ProgressEvent) {
		select {
		case events <- event:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:    StateLoading,
		input:    ti,
		spinner:  sp,
		progress: prog,
		settings: settings,
		options:  options,
		logs:     make([]LogEntry, 0),
		manager:  manager,
		events:   events,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.initialize(), waitForEvent(m.events))
}

// Message types
type (
	// ProgressMsg is sent when the manager reports progress.
	ProgressMsg struct {
		Event tagging.ProgressEvent
	}

	// InitDoneMsg is sent when file discovery completes.
	InitDoneMsg struct {
		State tagging.BatchState
		Err   error
	}

	// CommitDoneMsg is sent when the commit finishes.
	CommitDoneMsg struct {
		Err error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Batch returns the batch being edited.
func (m Model) Batch() tagging.BatchState {
	return m.batch
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateTemplate, StateLoading:
				return m, tea.Quit
			case StateCommon, StateTrack, StateSummary:
				m.enterTemplate()
				return m, nil
			case StateCommitting:
				m.cancel()
				return m, nil
			}

		case "enter":
			switch m.state {
			case StateTemplate:
				m.submitTemplate()
				return m, nil
			case StateCommon, StateTrack:
				m.submitPrompt()
				return m, nil
			}

		case "y":
			if m.state == StateSummary && m.planErr == nil {
				cmd := m.startCommit()
				return m, cmd
			}

		case "n":
			if m.state == StateSummary {
				m.enterTemplate()
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError || m.state == StateSummary {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Rediscover: committed files carry new names.
				m.state = StateLoading
				m.logs = nil
				m.err = nil
				m.doneSteps = 0
				m.totalSteps = 0
				m.ctx, m.cancel = context.WithCancel(context.Background())
				return m, m.initialize()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m.addLog(msg.Event)
		cmds = append(cmds, waitForEvent(m.events))

	case InitDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.batch = msg.State
			m.enterTemplate()
		}

	case CommitDoneMsg:
		m.doneSteps, m.totalSteps = m.manager.GetProgress()
		switch {
		case errors.Is(msg.Err, context.Canceled):
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
			m.saveTemplate()
		}

	case TickMsg:
		if m.state == StateCommitting {
			m.doneSteps, m.totalSteps = m.manager.GetProgress()

			var percent float64
			if m.totalSteps > 0 {
				percent = float64(m.doneSteps) / float64(m.totalSteps)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.editing() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// editing reports whether the text input has focus.
func (m Model) editing() bool {
	return m.state == StateTemplate || m.state == StateCommon || m.state == StateTrack
}

// enterTemplate starts a pass by asking for the filename format, prefilled
// with the current one.
func (m *Model) enterTemplate() {
	m.state = StateTemplate
	m.prompts = nil
	m.current = 0
	m.input.Placeholder = "[tracknum] - [title]"
	m.input.ShowSuggestions = false
	m.input.SetSuggestions(nil)
	m.input.SetValue(m.batch.Template)
	m.input.CursorEnd()
	m.input.Focus()
}

// submitTemplate compiles the entered format and checks every file
// against it. On failure the format prompt stays open with the error.
func (m *Model) submitTemplate() {
	batch, err := m.batch.WithTemplate(m.input.Value())
	if err != nil {
		m.inputErr = err
		return
	}
	batch, err = m.manager.Resolve(batch)
	if err != nil {
		m.inputErr = err
		return
	}

	m.batch = batch
	m.inputErr = nil
	m.state = StateCommon
	m.prompts = CommonPrompts(m.batch)
	m.advance(0)
}

// submitPrompt validates and stores the answer to the current prompt.
func (m *Model) submitPrompt() {
	p := m.prompts[m.current]
	value := model.Normalize(p.Field, m.input.Value())
	if err := p.Validate(value); err != nil {
		m.inputErr = err
		return
	}

	m.batch = Apply(m.batch, p, value)
	m.inputErr = nil
	m.advance(m.current + 1)
}

// advance shows prompt i of the current stage, or moves to the next stage
// once every prompt is answered.
func (m *Model) advance(i int) {
	if i < len(m.prompts) {
		m.loadPrompt(i)
		return
	}

	if m.state == StateCommon {
		batch, err := m.manager.Resolve(m.batch)
		if err != nil {
			m.enterTemplate()
			m.inputErr = err
			return
		}
		m.batch = batch
		m.state = StateTrack
		m.prompts = TrackPrompts(m.batch)
		if len(m.prompts) > 0 {
			m.loadPrompt(0)
			return
		}
	}

	m.enterSummary()
}

// loadPrompt shows prompt i in the text input.
func (m *Model) loadPrompt(i int) {
	m.current = i
	p := m.prompts[i]

	m.input.Placeholder = ""
	m.input.SetValue(p.Value)
	m.input.CursorEnd()
	if p.Field == model.FieldGenre {
		m.input.ShowSuggestions = true
		m.input.SetSuggestions(model.Genres)
	} else {
		m.input.ShowSuggestions = false
		m.input.SetSuggestions(nil)
	}
}

// enterSummary plans the renames and shows the summary.
func (m *Model) enterSummary() {
	m.state = StateSummary
	m.input.Blur()
	m.renames, m.planErr = m.manager.Plan(m.batch)
	if invalid := tagging.Invalid(m.batch); len(invalid) > 0 && m.planErr == nil {
		m.planErr = &tagging.InvalidError{Invalid: invalid}
	}
}

// startCommit runs the commit in the background.
func (m *Model) startCommit() tea.Cmd {
	m.state = StateCommitting
	m.logs = nil

	manager, ctx, batch := m.manager, m.ctx, m.batch
	commit := func() tea.Msg {
		return CommitDoneMsg{Err: manager.Commit(ctx, batch)}
	}
	return tea.Batch(commit, tickProgress(), m.spinner.Tick)
}

// saveTemplate remembers the committed format for the next run.
func (m *Model) saveTemplate() {
	if m.options.SettingsPath == "" {
		return
	}
	m.settings.LastTemplate = m.batch.Template
	if err := m.settings.Save(m.options.SettingsPath); err != nil {
		m.addLog(tagging.ProgressEvent{Message: fmt.Sprintf("Error saving settings: %v", err), Level: tagging.LevelWarning})
	}
}

func (m *Model) addLog(event tagging.ProgressEvent) {
	// Filter verbose messages if not in verbose mode
	if event.Level == tagging.LevelVerbose && !m.options.Verbose {
		return
	}
	m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// initialize discovers the audio files of the directory.
func (m Model) initialize() tea.Cmd {
	manager, dir := m.manager, m.options.Dir
	return func() tea.Msg {
		state, err := manager.Initialize(dir)
		return InitDoneMsg{State: state, Err: err}
	}
}

// waitForEvent returns a command that delivers the next progress event.
func waitForEvent(events <-chan tagging.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		return ProgressMsg{Event: <-events}
	}
}

// tickProgress returns a command to tick progress updates.
func tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎵 MP3 Tagger"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Tag and rename the MP3 files in %s", m.options.Dir)))
	b.WriteString("\n\n")

	switch m.state {
	case StateLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Looking for audio files..."))
		b.WriteString("\n")
	case StateTemplate:
		b.WriteString(m.viewTemplate())
	case StateCommon, StateTrack:
		b.WriteString(m.viewPrompt())
	case StateSummary:
		b.WriteString(m.viewSummary())
	case StateCommitting:
		b.WriteString(m.viewCommitting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewTemplate() string {
	var b strings.Builder

	b.WriteString(infoStyle.Render(fmt.Sprintf("%d files:", len(m.batch.Sources))))
	b.WriteString("\n")
	for i, src := range m.batch.Sources {
		if i == 5 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  … and %d more", len(m.batch.Sources)-i)))
			b.WriteString("\n")
			break
		}
		b.WriteString(fileStyle.Render("  ♪ " + src.Name()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(subtitleStyle.Render("Filename format:"))
	b.WriteString("\n")
	markers := make([]string, len(model.AllFields))
	for i, f := range model.AllFields {
		markers[i] = f.Marker()
	}
	b.WriteString(dimStyle.Render("Markers: " + strings.Join(markers, " ")))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.viewInputError())

	return b.String()
}

func (m Model) viewPrompt() string {
	var b strings.Builder
	p := m.prompts[m.current]

	if p.Common() {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("Common tags (%d/%d)", m.current+1, len(m.prompts))))
	} else {
		t := m.batch.Tracks[p.Track]
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("File %d/%d", p.Track+1, len(m.batch.Tracks))))
		b.WriteString(" ")
		b.WriteString(fileStyle.Render(t.Source.Name()))
	}
	b.WriteString("\n\n")
	b.WriteString(infoStyle.Render(p.Label + ":"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.viewInputError())

	return b.String()
}

func (m Model) viewInputError() string {
	if m.inputErr == nil {
		return ""
	}
	return "\n" + errorStyle.Render(formatError(m.inputErr)) + "\n"
}

func (m Model) viewSummary() string {
	var b strings.Builder

	b.WriteString(RenderSummary(m.batch, m.renames, m.settings.RenameFiles))
	if m.planErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("✗ " + formatError(m.planErr)))
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("Is this correct? (y/n)"))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewCommitting() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Writing tags..."))
	b.WriteString("\n\n")

	var percent float64
	if m.totalSteps > 0 {
		percent = float64(m.doneSteps) / float64(m.totalSteps)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Steps: %d/%d", m.doneSteps, m.totalSteps)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	done := "✨ Tagging Complete!"
	if m.settings.DryRun {
		done = "✨ Dry run complete, nothing was written"
	}
	box := boxStyle.Render(fmt.Sprintf(
		"%s\n\n"+
			"Files: %d\n"+
			"Format: %s",
		done,
		len(m.batch.Tracks),
		m.batch.Template,
	))
	b.WriteString(box)
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", formatError(m.err)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		b.WriteString(RenderEvent(tagging.ProgressEvent{Message: log.Message, Level: log.Level}))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateTemplate:
		return "enter: continue • esc: quit"
	case StateCommon, StateTrack:
		if m.current < len(m.prompts) && m.prompts[m.current].Field == model.FieldGenre {
			return "enter: continue • tab: complete genre • esc: back to format"
		}
		return "enter: continue • esc: back to format"
	case StateSummary:
		if m.planErr != nil {
			return "n: start over • q: quit"
		}
		return "y: write tags • n: start over • q: quit"
	case StateLoading, StateCommitting:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: start again • q: quit"
	}
	return ""
}

// formatError renders joined errors one per line, showing at most five.
func formatError(err error) string {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return err.Error()
	}

	errs := joined.Unwrap()
	lines := make([]string, 0, 6)
	for i, e := range errs {
		if i == 5 {
			lines = append(lines, fmt.Sprintf("… and %d more", len(errs)-i))
			break
		}
		lines = append(lines, e.Error())
	}
	return strings.Join(lines, "\n")
}

// Run starts the TUI application.
func Run(settings *config.Settings, options Options) error {
	p := tea.NewProgram(NewModel(settings, options), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
