package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/niyyah/internal/progress"
	"github.com/julianstephens/niyyah/internal/scheduler"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateWriting
)

type Model struct {
	tracker   *progress.Tracker
	scheduler *scheduler.Scheduler
	clock     func() time.Time
	state     SessionState
	keys      KeyMap
	help      help.Model
	input     textinput.Model
	session   *progress.Session
	now       time.Time
	message   string
	errMsg    string
	quitting  bool
	width     int
	height    int
}

func NewModel(tr *progress.Tracker, sched *scheduler.Scheduler, clock func() time.Time) Model {
	if clock == nil {
		clock = time.Now
	}
	ti := textinput.New()
	ti.Placeholder = "Write the affirmation..."
	ti.Prompt = "› "
	ti.CharLimit = 0

	return Model{
		tracker:   tr,
		scheduler: sched,
		clock:     clock,
		state:     StateDashboard,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		input:     ti,
		now:       clock(),
	}
}

// State returns the screen currently shown.
func (m Model) State() SessionState { return m.state }

// Message returns the last status line.
func (m Model) Message() string { return m.message }

// Err returns the last error line.
func (m Model) Err() string { return m.errMsg }

func (m Model) ShortHelp() []key.Binding {
	if m.state == StateWriting {
		return []key.Binding{m.keys.Submit, m.keys.Back, m.keys.Help}
	}
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	if m.state == StateWriting {
		return [][]key.Binding{{m.keys.Submit, m.keys.Back}, {m.keys.Help}}
	}
	return m.keys.FullHelp()
}

type TickMsg time.Time

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg(m.clock())
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}
