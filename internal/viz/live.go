// Package viz renders a live predator-prey trajectory in the terminal.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/alidh/modelab/internal/sim"
)

const historyWindow = 300

type tickMsg time.Time

// Live steps the system in real time and plots both populations. The
// simulation advances enough fixed steps per frame that simulated time tracks
// wall-clock time.
type Live struct {
	sys      sim.System
	integ    sim.Integrator
	x        sim.State
	t        float64
	dt       float64
	duration float64
	fps      int

	prey     []float64
	predator []float64
	clamped  bool
	paused   bool
	done     bool
	err      error
}

func NewLive(sys sim.System, integ sim.Integrator, x0 sim.State, dt, duration float64, fps int) *Live {
	return &Live{
		sys:      sys,
		integ:    integ,
		x:        x0.Clone(),
		dt:       dt,
		duration: duration,
		fps:      fps,
		prey:     []float64{x0[0]},
		predator: []float64{x0[1]},
	}
}

// Run blocks until the simulation finishes or the user quits.
func Run(sys sim.System, integ sim.Integrator, x0 sim.State, dt, duration float64, fps int) error {
	m := NewLive(sys, integ, x0, dt, duration, fps)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.err
}

func (m *Live) Init() tea.Cmd {
	return m.tick()
}

func (m *Live) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}

	case tickMsg:
		if !m.paused && !m.done {
			m.advance()
		}
		if m.done && m.err != nil {
			return m, tea.Quit
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *Live) advance() {
	steps := int(1.0 / (m.dt * float64(m.fps)))
	if steps < 1 {
		steps = 1
	}

	for i := 0; i < steps && m.t < m.duration; i++ {
		next := m.integ.Step(m.sys, m.x, m.t, m.dt)
		if !next.IsValid() {
			m.err = &sim.StepError{Time: m.t, Wrapped: sim.ErrNotFinite}
			m.done = true
			return
		}
		m.clamped = false
		for j, v := range next {
			if v < 0 {
				next[j] = 0
				m.clamped = true
			}
		}
		m.x = next
		m.t += m.dt
	}

	m.prey = append(m.prey, m.x[0])
	m.predator = append(m.predator, m.x[1])
	if len(m.prey) > historyWindow {
		m.prey = m.prey[1:]
		m.predator = m.predator[1:]
	}

	if m.t >= m.duration {
		m.done = true
	}
}

func (m *Live) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("lotka-volterra live"))
	b.WriteString("\n\n")

	graph := asciigraph.PlotMany(
		[][]float64{m.prey, m.predator},
		asciigraph.Height(14),
		asciigraph.Width(70),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.Caption("prey (green) / predator (red)"),
	)
	b.WriteString(PanelStyle.Render(graph))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		LabelStyle.Render("t:"), ValueStyle.Render(fmt.Sprintf("%.2f", m.t)),
		LabelStyle.Render("prey:"), ValueStyle.Render(fmt.Sprintf("%.3f", m.x[0])),
		LabelStyle.Render("predator:"), ValueStyle.Render(fmt.Sprintf("%.3f", m.x[1])),
	))

	switch {
	case m.err != nil:
		b.WriteString(ErrStyle.Render(fmt.Sprintf("diverged: %v", m.err)))
		b.WriteString("\n")
	case m.clamped:
		b.WriteString(WarnStyle.Render("population clamped at zero"))
		b.WriteString("\n")
	case m.done:
		b.WriteString(ValueStyle.Render("done"))
		b.WriteString("\n")
	case m.paused:
		b.WriteString(WarnStyle.Render("paused"))
		b.WriteString("\n")
	}

	b.WriteString(HintStyle.Render("space pause · q quit"))
	b.WriteString("\n")

	return b.String()
}
