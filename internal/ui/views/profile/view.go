package profile

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	dashdto "endure/internal/modules/dashboard/dto"
	"endure/internal/modules/session/dto"
	"endure/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type ProfilePort interface {
	UpdateProfile(ctx context.Context, input dto.UpdateProfileInput) (dto.ProfileOutput, error)
	ChangePassword(ctx context.Context, input dto.ChangePasswordInput) error
}

type ActivityPort interface {
	WeeklyActivity(ctx context.Context) ([]dashdto.WeeklyActivityOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SavedMsg struct {
	Profile dto.ProfileOutput
	Err     error
}

type PasswordChangedMsg struct{ Err error }

type ActivityMsg struct {
	Days []dashdto.WeeklyActivityOutput
	Err  error
}

// ─── model ───────────────────────────────────────────────────────────────────

type mode int

const (
	modeView mode = iota
	modeEdit
	modePassword
)

type Model struct {
	port     ProfilePort
	activity ActivityPort

	profile dto.ProfileOutput
	days    []dashdto.WeeklyActivityOutput
	mode    mode
	form    *huh.Form

	// edit buffers, parsed to typed pointers on submit
	name       string
	age        string
	heightCm   string
	weightKg   string
	sport      string
	experience string
	goal       string

	current string
	next    string

	status  string
	errText string
	busy    bool
	width   int
	height  int
}

func New(port ProfilePort, activity ActivityPort) Model {
	return Model{port: port, activity: activity}
}

func (m Model) Init() tea.Cmd {
	return m.loadActivityCmd()
}

// SetProfile replaces the displayed profile wholesale with the server's
// latest representation.
func (m *Model) SetProfile(p dto.ProfileOutput) {
	m.profile = p
}

func (m Model) loadActivityCmd() tea.Cmd {
	return func() tea.Msg {
		days, err := m.activity.WeeklyActivity(context.Background())
		return ActivityMsg{Days: days, Err: err}
	}
}

func (m *Model) beginEdit() tea.Cmd {
	p := m.profile
	m.name = p.Name
	m.age = formatOptInt(p.Age)
	m.heightCm = formatOptFloat(p.Height)
	m.weightKg = formatOptFloat(p.Weight)
	m.sport = p.Sport
	m.experience = p.ExperienceLevel
	m.goal = p.Goal
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Name").Value(&m.name),
			huh.NewInput().Key("age").Title("Age").Value(&m.age),
			huh.NewInput().Key("height").Title("Height, cm").Value(&m.heightCm),
			huh.NewInput().Key("weight").Title("Weight, kg").Value(&m.weightKg),
			huh.NewInput().Key("sport").Title("Primary sport").Value(&m.sport),
			huh.NewSelect[string]().Key("experience").Title("Experience").
				Options(
					huh.NewOption("Beginner", "beginner"),
					huh.NewOption("Intermediate", "intermediate"),
					huh.NewOption("Advanced", "advanced"),
				).Value(&m.experience),
			huh.NewInput().Key("goal").Title("Goal").Value(&m.goal),
		),
	).WithTheme(huh.ThemeCatppuccin()).WithShowHelp(false)
	m.mode = modeEdit
	return m.form.Init()
}

func (m *Model) beginPassword() tea.Cmd {
	m.current, m.next = "", ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("current").Title("Current password").
				EchoMode(huh.EchoModePassword).Value(&m.current),
			huh.NewInput().Key("next").Title("New password").
				EchoMode(huh.EchoModePassword).Value(&m.next),
		),
	).WithTheme(huh.ThemeCatppuccin()).WithShowHelp(false)
	m.mode = modePassword
	return m.form.Init()
}

// saveCmd reads the completed form by key; bubbletea copies the model on
// every update, so the Value pointers only seed the fields.
func (m Model) saveCmd() tea.Cmd {
	input := dto.UpdateProfileInput{
		Name:            strPtr(strings.TrimSpace(m.form.GetString("name"))),
		Sport:           strPtr(strings.TrimSpace(m.form.GetString("sport"))),
		ExperienceLevel: strPtr(m.form.GetString("experience")),
		Goal:            strPtr(strings.TrimSpace(m.form.GetString("goal"))),
	}
	if v, err := strconv.Atoi(strings.TrimSpace(m.form.GetString("age"))); err == nil {
		input.Age = &v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("height")), 64); err == nil {
		input.Height = &v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("weight")), 64); err == nil {
		input.Weight = &v
	}
	return func() tea.Msg {
		p, err := m.port.UpdateProfile(context.Background(), input)
		return SavedMsg{Profile: p, Err: err}
	}
}

func (m Model) changePasswordCmd() tea.Cmd {
	input := dto.ChangePasswordInput{
		CurrentPassword: m.form.GetString("current"),
		NewPassword:     m.form.GetString("next"),
	}
	return func() tea.Msg {
		return PasswordChangedMsg{Err: m.port.ChangePassword(context.Background(), input)}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ActivityMsg:
		if msg.Err == nil {
			m.days = msg.Days
		}
		return m, nil

	case SavedMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		// The server response is authoritative; no local merging.
		m.profile = msg.Profile
		m.mode = modeView
		m.status = "profile saved"
		m.errText = ""
		return m, nil

	case PasswordChangedMsg:
		m.busy = false
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.mode = modeView
		m.status = "password changed"
		m.errText = ""
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeView {
			switch msg.String() {
			case "e":
				return m, m.beginEdit()
			case "p":
				return m, m.beginPassword()
			case "w":
				return m, m.loadActivityCmd()
			}
			return m, nil
		}
		if msg.String() == "esc" {
			m.mode = modeView
			m.errText = ""
			return m, nil
		}
	}

	if m.mode == modeView || m.busy {
		return m, nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.busy = true
		m.errText = ""
		if m.mode == modeEdit {
			return m, m.saveCmd()
		}
		return m, m.changePasswordCmd()
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.mode != modeView {
		title := "Edit profile"
		if m.mode == modePassword {
			title = "Change password"
		}
		var b strings.Builder
		b.WriteString(theme.Title.Render(title) + "\n\n")
		if m.busy {
			b.WriteString(theme.Muted.Render("saving…"))
		} else {
			b.WriteString(m.form.View())
		}
		if m.errText != "" {
			b.WriteString("\n" + theme.Danger.Render(m.errText))
		}
		b.WriteString("\n\n" + theme.Muted.Render("esc: cancel"))
		return theme.Pane.Render(b.String())
	}

	var b strings.Builder
	p := m.profile
	b.WriteString(theme.Title.Render(p.Name) + "  " + theme.Muted.Render(p.Email) + "\n\n")
	b.WriteString(row("Age", formatOptInt(p.Age)))
	b.WriteString(row("Height", suffix(formatOptFloat(p.Height), " cm")))
	b.WriteString(row("Weight", suffix(formatOptFloat(p.Weight), " kg")))
	b.WriteString(row("Sport", p.Sport))
	b.WriteString(row("Experience", p.ExperienceLevel))
	b.WriteString(row("Goal", p.Goal))
	if m.status != "" {
		b.WriteString("\n" + theme.Success.Render(m.status))
	}
	if m.errText != "" {
		b.WriteString("\n" + theme.Danger.Render(m.errText))
	}
	left := theme.Pane.Render(b.String() + "\n\n" +
		theme.Muted.Render("e: edit  p: password  w: reload activity"))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderActivity())
}

func (m Model) renderActivity() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("This week") + "\n")
	if len(m.days) == 0 {
		b.WriteString(theme.Muted.Render("no activity data"))
	}
	for _, d := range m.days {
		bar := strings.Repeat("▇", int(d.Duration/15))
		b.WriteString(fmt.Sprintf("%-4s %s %3.0f min  load %.0f\n",
			d.Day, theme.Accent.Render(bar), d.Duration, d.TrainingLoad))
	}
	return theme.Pane.Render(b.String())
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func row(label, value string) string {
	if value == "" {
		value = theme.Muted.Render("not set")
	}
	return fmt.Sprintf("%-12s %s\n", label, value)
}

func suffix(s, unit string) string {
	if s == "" {
		return ""
	}
	return s + unit
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatOptInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
