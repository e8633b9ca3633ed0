// Package tui provides a Bubble Tea terminal user interface for the
// collaboration pipeline.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"

	"github.com/billycemerson/Spotify-Collab/internal/collab"
	"github.com/billycemerson/Spotify-Collab/internal/config"
	"github.com/billycemerson/Spotify-Collab/internal/pipeline"
	events "github.com/billycemerson/Spotify-Collab/internal/progress"
	"github.com/billycemerson/Spotify-Collab/internal/spotify"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1DB954")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#1DB954")).
			Padding(1, 2)

	stageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is how many log lines stay on screen.
const maxLogs = 10

// errCancelled is reported when the user aborts a run.
var errCancelled = errors.New("cancelled by user")

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateRunning
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   events.Level
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	inputErr  error
	err       error

	// Run context
	ctx     context.Context
	cancel  context.CancelFunc
	eventCh chan events.Event

	runner   *pipeline.Runner
	stages   []pipeline.Stage
	stageIdx int
	started  time.Time
	elapsed  time.Duration

	// Fetch progress
	processed int32
	total     int32

	// Options
	nodeKey   collab.NodeKey
	weighted  bool
	solo      bool
	skipFetch bool
	verbose   bool

	width  int
	height int
}

// NewModel creates a new TUI model. Settings supply the default playlist
// and every option the screen does not expose.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = settings.PlaylistID
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#1DB954"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		eventCh:   make(chan events.Event, 64),
		nodeKey:   settings.ToGraphConfig().NodeKey,
		weighted:  settings.WeightedCentrality,
		solo:      settings.IncludeSoloArtists,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one pipeline progress event.
	ProgressMsg struct {
		Event events.Event
	}

	// StageDoneMsg is sent when a pipeline stage returns.
	StageDoneMsg struct {
		Stage pipeline.Stage
		Err   error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

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
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateRunning {
				m.cancel()
				m.state = StateError
				m.err = errCancelled
			}

		case "enter":
			if m.state == StateInput {
				return m.start()
			}

		// Option keys use ctrl so that they never collide with typed IDs.
		case "ctrl+o":
			if m.state == StateInput {
				m.nodeKey = toggleNodeKey(m.nodeKey)
			}
			return m, nil

		case "ctrl+t":
			if m.state == StateInput {
				m.weighted = !m.weighted
			}
			return m, nil

		case "ctrl+g":
			if m.state == StateInput {
				m.solo = !m.solo
			}
			return m, nil

		case "ctrl+x":
			if m.state == StateInput {
				m.skipFetch = !m.skipFetch
			}
			return m, nil

		case "ctrl+l":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}
			return m, nil

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.reset()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, m.waitForEvent())
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == events.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case StageDoneMsg:
		if m.state != StateRunning {
			break
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = errors.Wrapf(msg.Err, "%s stage", msg.Stage)
		default:
			m.stageIdx++
			if m.stageIdx >= len(m.stages) {
				m.state = StateComplete
				m.elapsed = time.Since(m.started)
				cmds = append(cmds, m.progress.SetPercent(1))
			} else {
				cmds = append(cmds, m.runStage(m.stages[m.stageIdx]))
			}
		}

	case TickMsg:
		if m.runner != nil && m.state == StateRunning {
			m.processed, m.total = m.runner.FetchProgress()
			cmds = append(cmds, m.progress.SetPercent(m.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// start validates the input and kicks off the first stage.
func (m Model) start() (tea.Model, tea.Cmd) {
	input := m.textInput.Value()
	if strings.TrimSpace(input) == "" {
		input = m.settings.PlaylistID
	}
	id, err := spotify.ParsePlaylistID(input)
	if err != nil {
		m.inputErr = err
		return m, nil
	}
	m.inputErr = nil

	settings := *m.settings
	settings.PlaylistID = id
	settings.NodeKey = string(m.nodeKey)
	settings.WeightedCentrality = m.weighted
	settings.IncludeSoloArtists = m.solo

	m.stages = pipeline.Stages()
	if m.skipFetch {
		m.stages = m.stages[1:]
	}

	ch := m.eventCh
	ctx := m.ctx
	m.runner = pipeline.NewRunner(&settings, func(e events.Event) {
		select {
		case ch <- e:
		case <-ctx.Done():
		}
	})
	m.stageIdx = 0
	m.started = time.Now()
	m.state = StateRunning

	return m, tea.Batch(
		m.runStage(m.stages[0]),
		m.waitForEvent(),
		m.tickProgress(),
		m.spinner.Tick,
	)
}

func (m *Model) reset() {
	// Releases the event listener of the previous run.
	m.cancel()

	m.state = StateInput
	m.logs = nil
	m.err = nil
	m.inputErr = nil
	m.runner = nil
	m.stages = nil
	m.stageIdx = 0
	m.processed = 0
	m.total = 0
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.eventCh = make(chan events.Event, 64)
	m.progress.SetPercent(0)
	m.textInput.SetValue("")
	m.textInput.Focus()
}

// percent is the share of finished stages plus the fetch progress of the
// current one.
func (m Model) percent() float64 {
	if len(m.stages) == 0 {
		return 0
	}
	done := float64(m.stageIdx)
	if m.stageIdx < len(m.stages) && m.stages[m.stageIdx] == pipeline.StageFetch && m.total > 0 {
		done += float64(m.processed) / float64(m.total)
	}
	return done / float64(len(m.stages))
}

func (m Model) currentStage() pipeline.Stage {
	if m.stageIdx < len(m.stages) {
		return m.stages[m.stageIdx]
	}
	return ""
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent blocks until the runner emits the next progress event or
// the run is cancelled.
func (m Model) waitForEvent() tea.Cmd {
	ch := m.eventCh
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case e := <-ch:
			return ProgressMsg{Event: e}
		case <-ctx.Done():
			return nil
		}
	}
}

// runStage executes one stage in the background.
func (m Model) runStage(stage pipeline.Stage) tea.Cmd {
	runner := m.runner
	ctx := m.ctx
	return func() tea.Msg {
		return StageDoneMsg{Stage: stage, Err: runner.Run(ctx, stage)}
	}
}

func toggleNodeKey(k collab.NodeKey) collab.NodeKey {
	if k == collab.NodeKeyName {
		return collab.NodeKeyID
	}
	return collab.NodeKeyName
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♫ Spotify Collab"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Artist collaboration networks from a Spotify playlist"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateRunning:
		b.WriteString(m.viewRunning())
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

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter playlist ID or link:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	if m.inputErr != nil {
		b.WriteString(errorStyle.Render("  " + m.inputErr.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Node key: %s (ctrl+o)\n", m.nodeKey))
	b.WriteString(fmt.Sprintf("  %s Weighted centrality (ctrl+t)\n", checkbox(m.weighted)))
	b.WriteString(fmt.Sprintf("  %s Include solo artists (ctrl+g)\n", checkbox(m.solo)))
	b.WriteString(fmt.Sprintf("  %s Skip fetch, reuse raw data (ctrl+x)\n", checkbox(m.skipFetch)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+l)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Data: %s | Results: %s", m.settings.DataPath, m.settings.ResultsPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	for i, stage := range m.stages {
		switch {
		case i < m.stageIdx:
			b.WriteString(successStyle.Render("  ✓ " + string(stage)))
		case i == m.stageIdx:
			b.WriteString(m.spinner.View())
			b.WriteString(" ")
			b.WriteString(stageStyle.Render(string(stage)))
		default:
			b.WriteString(dimStyle.Render("  · " + string(stage)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.progress.View())
	b.WriteString("\n")

	if m.currentStage() == pipeline.StageFetch {
		b.WriteString(infoStyle.Render(fmt.Sprintf("Tracks: %d/%d", m.processed, m.total)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	results := ""
	if m.runner != nil {
		results = m.runner.Paths().ResultsPath
	}
	box := boxStyle.Render(fmt.Sprintf(
		"✨ Pipeline Complete!\n\n"+
			"Stages: %d\n"+
			"Results: %s\n"+
			"Time: %s",
		len(m.stages),
		results,
		m.elapsed.Round(time.Millisecond),
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		if hints := errors.FlattenHints(m.err); hints != "" {
			b.WriteString("\n")
			b.WriteString(dimStyle.Render("  hint: " + hints))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case events.LevelError:
			style = errorStyle
			prefix = "✗"
		case events.LevelWarning:
			style = warningStyle
			prefix = "!"
		case events.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case events.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+o/t/g/x/l: options • esc: quit"
	case StateRunning:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
