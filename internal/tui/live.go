// Package tui provides a live terminal view of an integration run. It
// is presentation only: it drives the same stepper API as a batch run
// and renders the evolving trajectory with asciigraph inside a
// bubbletea program.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/odelab/internal/odecore"
)

const (
	graphWidth   = 72
	graphHeight  = 12
	historyLimit = 600
	stepsPerTick = 4
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model holds the stepping state and the rolling plot buffer.
type Model struct {
	rhs     odecore.RightHandSide
	stepper odecore.Stepper
	title   string

	y0      odecore.State
	y       odecore.State
	t0      float64
	t       float64
	dt      float64
	tf      float64
	step    int
	history []float64

	running bool
	done    bool
	err     error
}

func NewModel(rhs odecore.RightHandSide, stepper odecore.Stepper, y0 odecore.State, cfg odecore.Config, title string) Model {
	return Model{
		rhs:     rhs,
		stepper: stepper,
		title:   title,
		y0:      y0.Clone(),
		y:       y0.Clone(),
		t0:      cfg.T0,
		t:       cfg.T0,
		dt:      cfg.Dt,
		tf:      cfg.TF,
		history: []float64{y0.Norm()},
		running: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.y = m.y0.Clone()
			m.t = m.t0
			m.step = 0
			m.history = []float64{m.y0.Norm()}
			m.done = false
			m.err = nil
			m.running = true
		}
		return m, nil

	case TickMsg:
		if m.running && !m.done {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < stepsPerTick && !m.done; i++ {
		if m.t >= m.tf {
			m.done = true
			return
		}
		next, err := m.stepper.Advance(m.rhs, m.t, m.y, m.dt)
		if err != nil {
			m.err = err
			m.done = true
			return
		}
		if !next.IsFinite() {
			m.err = odecore.ErrNonFiniteState
			m.done = true
			return
		}
		m.y = next
		m.step++
		m.t = m.t0 + float64(m.step)*m.dt
		m.history = append(m.history, m.y.Norm())
		if len(m.history) > historyLimit {
			m.history = m.history[len(m.history)-historyLimit:]
		}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(m.title))
	b.WriteString("\n")

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("|y| vs step"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("t", fmt.Sprintf("%.4f / %.4f", m.t, m.tf))
	row("step", fmt.Sprintf("%d", m.step))
	row("|y|", fmt.Sprintf("%.6g", m.y.Norm()))

	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render(fmt.Sprintf("aborted: %v", m.err)))
		b.WriteString("\n")
	case m.done:
		b.WriteString(valueStyle.Render("finished"))
		b.WriteString("\n")
	case !m.running:
		b.WriteString(valueStyle.Render("paused"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · r reset · q quit"))
	return b.String()
}

// Run blocks until the viewer exits.
func Run(rhs odecore.RightHandSide, stepper odecore.Stepper, y0 odecore.State, cfg odecore.Config, title string) error {
	p := tea.NewProgram(NewModel(rhs, stepper, y0, cfg, title))
	_, err := p.Run()
	return err
}
