// Package tui provides a live terminal view of a running simulation:
// per-component contained mass bars and the cumulative release curve.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/repoworks/nucsim/internal/sim"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const barWidth = 40

type tickMsg time.Time

type Model struct {
	simulator *sim.Simulator
	duration  int
	interval  time.Duration

	step     int
	initial  float64
	released float64
	history  []float64
	err      error
	done     bool
	paused   bool
}

func NewModel(s *sim.Simulator, duration int, interval time.Duration) *Model {
	initial := 0.0
	for _, c := range s.Components() {
		initial += c.Model.ContainedMass()
	}
	return &Model{
		simulator: s,
		duration:  duration,
		interval:  interval,
		initial:   initial,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if !m.paused && !m.done {
				return m, m.tick()
			}
		}
	case tickMsg:
		if m.paused || m.done {
			return m, nil
		}
		if m.step >= m.duration {
			m.done = true
			return m, nil
		}
		res, err := m.simulator.Step(m.step + 1)
		if err != nil {
			m.err = err
			m.done = true
			return m, nil
		}
		m.step = res.Step
		m.released += res.Released
		m.history = append(m.history, m.released)
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render("nucsim") + dim.Render(fmt.Sprintf("  step %d/%d", m.step, m.duration)))
	b.WriteString("\n\n")

	for _, c := range m.simulator.Components() {
		kg := c.Model.ContainedMass()
		frac := 0.0
		if m.initial > 0 {
			frac = kg / m.initial
		}
		filled := int(frac * barWidth)
		if filled > barWidth {
			filled = barWidth
		}
		bar := green.Render(strings.Repeat("█", filled)) + dim.Render(strings.Repeat("░", barWidth-filled))
		b.WriteString(fmt.Sprintf("%-12s %s %s\n",
			white.Render(c.Name), bar, yellow.Render(fmt.Sprintf("%.3f kg", kg))))
	}

	b.WriteString(fmt.Sprintf("\n%-12s %s\n", white.Render("released"),
		yellow.Render(fmt.Sprintf("%.3f kg", m.released))))

	if len(m.history) > 1 {
		b.WriteString("\n")
		b.WriteString(asciigraph.Plot(m.history,
			asciigraph.Height(8), asciigraph.Width(60),
			asciigraph.Caption("cumulative release [kg]")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n" + yellow.Render("error: "+m.err.Error()) + "\n")
	}
	if m.done && m.err == nil {
		b.WriteString("\n" + dim.Render("run complete, press q to quit") + "\n")
	} else {
		b.WriteString("\n" + dim.Render("space pause/resume · q quit") + "\n")
	}
	return b.String()
}
