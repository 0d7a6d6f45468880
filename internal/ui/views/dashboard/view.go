package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dashdto "endure/internal/modules/dashboard/dto"
	apperrors "endure/internal/platform/errors"
	"endure/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type DashboardPort interface {
	Fetch(ctx context.Context) (dashdto.SnapshotOutput, error)
	State(ctx context.Context) (dashdto.StateOutput, error)
	Regenerate(ctx context.Context) (dashdto.RecommendationOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SnapshotMsg struct {
	State dashdto.StateOutput
	Err   error
}

type RegeneratedMsg struct {
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port DashboardPort

	state        dashdto.StateOutput
	recErr       string
	regenerating bool
	spinner      spinner.Model
	loading      bool
	width        int
	height       int
}

func New(port DashboardPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

// Refresh triggers a fetch. A fetch already in flight is left alone; the
// running one will deliver its SnapshotMsg.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.Fetch(context.Background())
		if errors.Is(err, apperrors.ErrFetchInFlight) {
			return nil
		}
		state, stateErr := m.port.State(context.Background())
		if stateErr != nil {
			return SnapshotMsg{Err: stateErr}
		}
		return SnapshotMsg{State: state, Err: err}
	}
}

func (m Model) regenerateCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.Regenerate(context.Background())
		return RegeneratedMsg{Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		if m.loading || m.regenerating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case SnapshotMsg:
		m.loading = false
		if msg.Err == nil || msg.State.Snapshot != nil {
			m.state = msg.State
		} else {
			m.state.LastError = msg.Err.Error()
		}

	case RegeneratedMsg:
		m.regenerating = false
		if msg.Err != nil {
			// A failed regeneration touches only this widget; the rest of
			// the dashboard keeps rendering the held snapshot.
			m.recErr = msg.Err.Error()
			return m, nil
		}
		m.recErr = ""
		m.loading = true
		return m, tea.Batch(m.stateCmd(), m.spinner.Tick)

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, tea.Batch(m.Refresh(), m.spinner.Tick)
		case "g":
			if !m.regenerating {
				m.regenerating = true
				m.recErr = ""
				return m, tea.Batch(m.regenerateCmd(), m.spinner.Tick)
			}
		}
	}
	return m, nil
}

// stateCmd re-reads held state without triggering a fetch; the regenerate
// flow has already refetched by the time its message arrives.
func (m Model) stateCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.port.State(context.Background())
		return SnapshotMsg{State: state, Err: err}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.loading && m.state.Snapshot == nil {
		return theme.Pane.Render(m.spinner.View() + " loading dashboard…")
	}
	if m.state.Snapshot == nil {
		var b strings.Builder
		b.WriteString(theme.Danger.Render("dashboard unavailable") + "\n\n")
		if m.state.LastError != "" {
			b.WriteString(theme.Muted.Render(m.state.LastError) + "\n\n")
		}
		b.WriteString(theme.Muted.Render("r: retry"))
		return theme.Pane.Render(b.String())
	}

	snap := m.state.Snapshot
	sections := []string{
		m.renderTiles(snap.Metrics),
		m.renderRecommendation(snap.LatestRecommendation),
		m.renderRecent(snap),
	}
	if m.state.LastError != "" {
		banner := theme.Warning.Render("refresh failed: "+m.state.LastError) +
			theme.Muted.Render("  (showing last data, r: retry)")
		sections = append([]string{banner}, sections...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTiles(metrics dashdto.MetricsOutput) string {
	tiles := []string{
		tile("Fitness (CTL)", fmt.Sprintf("%.1f", metrics.CTL), theme.Accent),
		tile("Fatigue (ATL)", fmt.Sprintf("%.1f", metrics.ATL), theme.Accent),
		tile("Form (TSB)", fmt.Sprintf("%.1f %s", metrics.TSB, metrics.FormStatus),
			theme.BandStyle(metrics.FormBand)),
		tile("Recovery", fmt.Sprintf("%.0f", metrics.RecoveryScore),
			theme.BandStyle(metrics.RecoveryBand)),
		tile("Weekly load", fmt.Sprintf("%.0f", metrics.WeeklyLoad), theme.Accent),
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
	if metrics.RecoveryAdvice != "" {
		row = lipgloss.JoinVertical(lipgloss.Left, row, theme.Muted.Render(metrics.RecoveryAdvice))
	}
	return row
}

func tile(label, value string, style lipgloss.Style) string {
	body := theme.Muted.Render(label) + "\n" + style.Render(value)
	return theme.Pane.Render(body)
}

func (m Model) renderRecommendation(rec *dashdto.RecommendationOutput) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Today's recommendation") + "\n")
	switch {
	case m.regenerating:
		b.WriteString(m.spinner.View() + " generating…")
	case m.recErr != "":
		b.WriteString(theme.Danger.Render("recommendation failed: "+m.recErr) + "\n")
		b.WriteString(theme.Muted.Render("g: try again"))
	case rec == nil:
		b.WriteString(theme.Muted.Render("no recommendation yet  (g: generate)"))
	default:
		b.WriteString(fmt.Sprintf("%s, %d min, %s intensity\n",
			theme.Hot.Render(rec.WorkoutType), rec.DurationMinutes, rec.Intensity))
		if rec.Description != "" {
			b.WriteString(rec.Description + "\n")
		}
		for _, w := range rec.Warnings {
			b.WriteString(theme.Warning.Render("! "+w) + "\n")
		}
		if rec.Reasoning != "" {
			b.WriteString(theme.Muted.Render(rec.Reasoning) + "\n")
		}
		b.WriteString(theme.Muted.Render("g: regenerate"))
	}
	return theme.Pane.Render(b.String())
}

func (m Model) renderRecent(snap *dashdto.SnapshotOutput) string {
	var left strings.Builder
	left.WriteString(theme.Title.Render("Recent workouts") + "\n")
	if len(snap.RecentWorkouts) == 0 {
		left.WriteString(theme.Muted.Render("none logged"))
	}
	for _, w := range snap.RecentWorkouts {
		left.WriteString(fmt.Sprintf("%s  %-9s %4.0f min  load %.0f\n",
			w.Date.Format("Jan 02"), w.WorkoutType, w.Duration, w.TrainingLoadScore))
	}

	var right strings.Builder
	right.WriteString(theme.Title.Render("Recent sleep") + "\n")
	if len(snap.RecentSleep) == 0 {
		right.WriteString(theme.Muted.Render("none logged"))
	}
	for _, s := range snap.RecentSleep {
		right.WriteString(fmt.Sprintf("%s  %.1f h  quality %d/10\n",
			s.Date.Format("Jan 02"), s.Hours, s.QualityScore))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Render(left.String()),
		theme.Pane.Render(right.String()))
}
