// Package ui renders the interactive session view: a large countdown
// over a dark background with the pose position and state line, plus
// key bindings replacing the original control buttons. All session
// state mutation happens inside Update, so the core runs on a single
// logical thread.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atelierlibre/posecue/internal/format"
	"github.com/atelierlibre/posecue/internal/session"
	"github.com/atelierlibre/posecue/internal/timer"
)

// TickMsg carries a remaining-seconds update from the engine.
type TickMsg int

// PoseDoneMsg signals that the current pose's countdown completed.
type PoseDoneMsg struct{}

// sessionOverMsg fires after the completion pause to quit the program.
type sessionOverMsg struct{}

// sessionOverDelay keeps the final state on screen long enough to read
// before the program exits.
const sessionOverDelay = 1500 * time.Millisecond

type keyMap struct {
	Next key.Binding
	Auto key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Auto, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Auto, k.Quit}}
}

var defaultKeys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next pose"),
	),
	Auto: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "toggle auto-advance"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	displayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("0")).
			Padding(1, 6)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("0")).
			Padding(0, 2)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// Model drives one drawing session from start to completion.
type Model struct {
	controller *session.Controller
	engine     *timer.Engine

	remaining int
	keys      keyMap
	help      help.Model
	width     int
	height    int
	quitting  bool
}

// New creates the session view. The controller must already hold the
// pose list; the session starts when the program does.
func New(controller *session.Controller, engine *timer.Engine) Model {
	return Model{
		controller: controller,
		engine:     engine,
		keys:       defaultKeys,
		help:       help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	if !m.controller.StartSession() {
		return tea.Quit
	}
	return tea.Batch(waitForTick(m.engine.Ticks()), waitForDone(m.engine.Done()))
}

func waitForTick(ticks <-chan int) tea.Cmd {
	return func() tea.Msg { return TickMsg(<-ticks) }
}

func waitForDone(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return PoseDoneMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.remaining = int(msg)
		m.controller.HandleTick(int(msg))
		return m, waitForTick(m.engine.Ticks())

	case PoseDoneMsg:
		m.controller.PoseFinished()
		cmds := []tea.Cmd{waitForDone(m.engine.Done())}
		if m.controller.State() == session.StateSessionComplete {
			m.remaining = 0
			cmds = append(cmds, tea.Tick(sessionOverDelay, func(time.Time) tea.Msg {
				return sessionOverMsg{}
			}))
		}
		return m, tea.Batch(cmds...)

	case sessionOverMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.engine.Stop()
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.controller.NextPose()
			return m, nil
		case key.Matches(msg, m.keys.Auto):
			m.controller.SetAutoAdvance(!m.controller.AutoAdvance())
			return m, nil
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	display := displayStyle.Render(format.HHMMSS(m.remaining))
	info := infoStyle.Render(m.statusLine())

	auto := "auto-advance off"
	if m.controller.AutoAdvance() {
		auto = "auto-advance on"
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		display,
		info,
		dimStyle.Render(auto),
		m.help.View(m.keys),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m Model) statusLine() string {
	switch m.controller.State() {
	case session.StateSessionComplete:
		return "Session Complete"
	case session.StatePoseFinishedManual:
		return "Pose Finished (press n for next pose)"
	case session.StatePoseActive:
		pose, ok := m.controller.CurrentPose()
		if !ok {
			return ""
		}
		return fmt.Sprintf("Pose %d/%d (%s)",
			m.controller.CurrentIndex()+1, len(m.controller.Poses()), pose.Label())
	default:
		return "Idle"
	}
}
