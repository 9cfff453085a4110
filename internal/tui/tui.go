// Package tui provides a Bubble Tea terminal user interface for the name normalizer.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/handiism/musiclib/internal/config"
	"github.com/handiism/musiclib/internal/normalize"
	"github.com/handiism/musiclib/internal/progress"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
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
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// maxLogs is the number of progress lines kept on screen.
const maxLogs = 10

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
	Level   progress.Level
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	settings  *config.Settings
	logger    *zap.Logger
	logs      []LogEntry
	result    *normalize.Result
	renamed   int
	err       error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	// events carries progress and completion messages from the running walk.
	events chan tea.Msg

	// Options
	dryRun  bool
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model. A nil settings uses the defaults and a
// nil logger discards log output.
func NewModel(settings *config.Settings, logger *zap.Logger) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "/home/user/Music"
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		settings:  settings,
		logger:    logger,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		dryRun:    settings.DryRun,
		verbose:   settings.Verbose,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for every progress event of the running walk.
	ProgressMsg struct {
		Event progress.Event
	}

	// DoneMsg is sent when the walk finishes.
	DoneMsg struct {
		Result *normalize.Result
		Err    error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
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
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateRunning
				return m, tea.Batch(m.startRun(), m.spinner.Tick)
			}

		case "ctrl+n":
			if m.state == StateInput {
				m.dryRun = !m.dryRun
				return m, nil
			}

		case "ctrl+o":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

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
		if msg.Event.Level == progress.LevelInfo {
			m.renamed++
		}
		if msg.Event.Level != progress.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{
				Message: msg.Event.Message,
				Level:   msg.Event.Level,
			})
			if len(m.logs) > maxLogs {
				m.logs = m.logs[len(m.logs)-maxLogs:]
			}
		}
		cmds = append(cmds, m.waitForEvent())

	case DoneMsg:
		m.result = msg.Result
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// reset prepares the model for another run.
func (m *Model) reset() {
	m.state = StateInput
	m.logs = nil
	m.result = nil
	m.renamed = 0
	m.err = nil
	m.events = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
}

// startRun launches the normalizer in the background and returns the command
// that delivers its first message.
func (m *Model) startRun() tea.Cmd {
	root := strings.TrimSpace(m.textInput.Value())
	events := make(chan tea.Msg, 64)
	m.events = events

	// Once the run is cancelled nobody may be reading, so sends give up
	// instead of blocking on a full buffer.
	ctx := m.ctx
	n := normalize.New(normalize.Options{DryRun: m.dryRun}, m.logger, func(e progress.Event) {
		select {
		case events <- ProgressMsg{Event: e}:
		case <-ctx.Done():
		}
	})

	go func() {
		defer close(events)
		result, err := n.Run(ctx, root)
		done := DoneMsg{Result: result, Err: err}
		select {
		case events <- done:
		case <-ctx.Done():
			select {
			case events <- done:
			default:
			}
		}
	}()

	return m.waitForEvent()
}

// waitForEvent returns a command that blocks until the next message of the
// running walk arrives. A channel closed without a DoneMsg means the run was
// cancelled and its final message dropped.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return DoneMsg{Err: context.Canceled}
		}
		return msg
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Name Normalizer"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Repair file and folder names for cross-filesystem syncing"))
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

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter music folder:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	dryRunCheck := "[ ]"
	if m.dryRun {
		dryRunCheck = "[x]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[x]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Dry run, only show renames (ctrl+n)\n", dryRunCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+o)\n", verboseCheck))

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	if m.dryRun {
		b.WriteString(subtitleStyle.Render("Checking names..."))
	} else {
		b.WriteString(subtitleStyle.Render("Renaming..."))
	}
	b.WriteString("\n\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Items: %d", m.renamed)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	files, folders, skipped, conflicts := 0, 0, 0, 0
	if m.result != nil {
		files, folders = m.result.Files(), m.result.Folders()
		skipped, conflicts = len(m.result.Skipped), len(m.result.Conflicts)
	}

	heading := "Finished!"
	if m.dryRun {
		heading = "Finished (dry run, nothing renamed)"
	}
	summary := fmt.Sprintf(
		"%s\n\n"+
			"Files: %d\n"+
			"Folders: %d\n"+
			"Skipped: %d",
		heading, files, folders, skipped,
	)
	if conflicts > 0 {
		summary += fmt.Sprintf("\nConflicts: %d", conflicts)
	}
	box := boxStyle.Render(summary)
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case progress.LevelError:
			style = errorStyle
			prefix = "✗"
		case progress.LevelWarning:
			style = warningStyle
			prefix = "!"
		case progress.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case progress.LevelInfo:
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
		return "enter: start • ctrl+n: dry run • ctrl+o: verbose • esc: quit"
	case StateRunning:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: run again • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings, logger *zap.Logger) error {
	p := tea.NewProgram(NewModel(settings, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
