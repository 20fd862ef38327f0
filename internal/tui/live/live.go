// Package live renders dispatch-phase progress for interactive terminals.
package live

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kantarabench/internal/bench"
	"kantarabench/internal/stats"
	"kantarabench/internal/tui/components"
	"kantarabench/internal/tui/styles"
)

// DoneMsg ends the live view once the benchmark flow has returned.
type DoneMsg struct {
	Result bench.Result
	Err    error
}

type Model struct {
	Total     int
	TargetURL string

	Stats    stats.Snapshot
	Progress progress.Model
	RpsLine  components.Sparkline

	StartTime  time.Time
	LastUpdate time.Time
	LastReqs   uint64

	Width int
	done  bool
}

func NewModel(total int, targetURL string) Model {
	return Model{
		Total:      total,
		TargetURL:  targetURL,
		Progress:   progress.New(progress.WithDefaultGradient()),
		RpsLine:    components.NewSparkline(40, "RPS (live)", styles.Active),
		StartTime:  time.Now(),
		LastUpdate: time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stats.Snapshot:
		now := time.Now()
		dt := now.Sub(m.LastUpdate).Seconds()
		if dt < 0.01 {
			dt = 0.01
		}

		deltaReqs := msg.Requests - m.LastReqs
		m.RpsLine.Add(uint64(float64(deltaReqs) / dt))

		m.Stats = msg
		m.LastReqs = msg.Requests
		m.LastUpdate = now

		pct := 0.0
		if m.Total > 0 {
			pct = float64(msg.Requests) / float64(m.Total)
		}
		if pct > 1.0 {
			pct = 1.0
		}
		return m, m.Progress.SetPercent(pct)

	case DoneMsg:
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// The dispatch still runs to completion; only the view closes.
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Progress.Width = msg.Width - 4
		w := msg.Width - 8
		if w < 10 {
			w = 10
		}
		if w > 60 {
			w = 60
		}
		m.RpsLine.Width = w
		return m, nil

	case progress.FrameMsg:
		prog, cmd := m.Progress.Update(msg)
		m.Progress = prog.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	if m.done {
		return ""
	}

	s := strings.Builder{}

	s.WriteString(styles.Title.Render("Benchmarking " + m.TargetURL))
	s.WriteString("\n\n")

	errStyle := styles.Active
	if m.Stats.Fail > 0 {
		errStyle = styles.Warn
	}

	col1 := fmt.Sprintf("SENT: %d / %d\nINF:  %d", m.Stats.Requests, m.Total, m.Stats.Inflight)
	col2 := fmt.Sprintf("OK:   %d\nFAIL: %d", m.Stats.Success, m.Stats.Fail)

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Box.Render(col1),
		styles.Box.Render(errStyle.Render(col2)),
	))
	s.WriteString("\n\n")

	s.WriteString(styles.Box.Render(m.RpsLine.View()))
	s.WriteString("\n\n")

	s.WriteString(m.Progress.View())
	s.WriteString("\n")
	s.WriteString(styles.Subtle.Render(fmt.Sprintf("elapsed %s", time.Since(m.StartTime).Round(100*time.Millisecond))))
	s.WriteString("\n")

	return s.String()
}
