package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/soham-b/orbitlab/internal/chaos"
)

const graphWidth = 70

type renormMsg struct {
	t      float64
	lambda float64
}

type doneMsg struct {
	err error
}

// Model renders a Lyapunov run as it converges: the running exponent
// series as a terminal graph plus a stats panel.
type Model struct {
	potential string
	updates   chan tea.Msg
	cancel    context.CancelFunc

	times   []float64
	series  []float64
	done    bool
	err     error
	renorms int
}

// RunLive executes the estimator while rendering its convergence live.
// It returns once the run finishes or the user quits (which cancels the
// run; the estimator then reports the partial series).
func RunLive(est *chaos.Estimator, req chaos.Request, potential string) (*chaos.Result, error) {
	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan tea.Msg, 64)

	req.Observer = chaos.ObserverFunc(func(t, lambda float64) {
		updates <- renormMsg{t: t, lambda: lambda}
	})

	var res *chaos.Result
	var runErr error
	finished := make(chan struct{})
	go func() {
		res, runErr = est.Run(ctx, req)
		close(finished)
		updates <- doneMsg{err: runErr}
	}()

	m := Model{
		potential: potential,
		updates:   updates,
		cancel:    cancel,
		renorms:   req.Renorms,
	}
	_, teaErr := tea.NewProgram(m).Run()
	cancel()

	// Drain observer messages until the run winds down, so a quit cannot
	// strand the estimator on a full channel.
	for {
		select {
		case <-updates:
		case <-finished:
			if teaErr != nil {
				return nil, teaErr
			}
			return res, runErr
		}
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg { return <-m.updates }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}

	case renormMsg:
		m.times = append(m.times, msg.t)
		m.series = append(m.series, msg.lambda)
		return m, m.waitForUpdate()

	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("lyapunov · %s", m.potential)))
	b.WriteString("\n")

	if len(m.series) > 1 {
		graph := asciigraph.Plot(m.series,
			asciigraph.Height(12),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("running exponent estimate"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	} else {
		b.WriteString(labelStyle.Render("waiting for first renormalization..."))
		b.WriteString("\n")
	}

	var stats []string
	stats = append(stats, fmt.Sprintf("%s %d/%d",
		labelStyle.Render("renorms"), len(m.series), m.renorms))
	if len(m.series) > 0 {
		stats = append(stats, fmt.Sprintf("%s %.6g",
			labelStyle.Render("t"), m.times[len(m.times)-1]))
		stats = append(stats, fmt.Sprintf("%s %.6g",
			labelStyle.Render("lambda"), m.series[len(m.series)-1]))
	}
	b.WriteString(statsStyle.Render(strings.Join(stats, "\n")))
	b.WriteString("\n")

	if m.done && m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("q: quit"))
	b.WriteString("\n")

	return b.String()
}
