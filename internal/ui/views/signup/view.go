package signup

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"endure/internal/modules/session/dto"
	"endure/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// SubmittedMsg carries the completed signup input up to the root model.
type SubmittedMsg struct {
	Input dto.SignupInput
}

// SwitchToLoginMsg asks the root model to show the login screen.
type SwitchToLoginMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	form *huh.Form

	email      string
	password   string
	name       string
	age        string
	height     string
	weight     string
	sport      string
	experience string
	goal       string

	errText string
	busy    bool
	winW int
	winH int
}

func New() Model {
	m := Model{}
	m.form = m.newForm()
	return m
}

func optionalNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func (m *Model) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("email").Title("Email").Value(&m.email),
			huh.NewInput().Key("password").Title("Password").
				EchoMode(huh.EchoModePassword).Value(&m.password),
			huh.NewInput().Key("name").Title("Name").Value(&m.name),
		),
		huh.NewGroup(
			huh.NewInput().Key("age").Title("Age (optional)").
				Value(&m.age).Validate(optionalNumber),
			huh.NewInput().Key("height").Title("Height, cm (optional)").
				Value(&m.height).Validate(optionalNumber),
			huh.NewInput().Key("weight").Title("Weight, kg (optional)").
				Value(&m.weight).Validate(optionalNumber),
			huh.NewInput().Key("sport").Title("Primary sport (optional)").Value(&m.sport),
			huh.NewSelect[string]().Key("experience").Title("Experience").
				Options(
					huh.NewOption("Beginner", "beginner"),
					huh.NewOption("Intermediate", "intermediate"),
					huh.NewOption("Advanced", "advanced"),
				).Value(&m.experience),
			huh.NewInput().Key("goal").Title("Goal (optional)").Value(&m.goal),
		),
	).WithTheme(huh.ThemeCatppuccin()).WithShowHelp(false)
}

func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m *Model) SetError(text string) tea.Cmd {
	m.errText = text
	m.busy = false
	m.password = ""
	m.form = m.newForm()
	return m.form.Init()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.winW = msg.Width
		m.winH = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			return m, func() tea.Msg { return SwitchToLoginMsg{} }
		}
	}
	if m.busy {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.busy = true
		m.errText = ""
		input := m.buildInput()
		return m, func() tea.Msg { return SubmittedMsg{Input: input} }
	}
	return m, cmd
}

// buildInput reads the completed form by key (model copies make the Value
// pointers seed-only) and converts the free-text optional fields to typed
// pointers exactly once; everything downstream works with numbers.
func (m Model) buildInput() dto.SignupInput {
	input := dto.SignupInput{
		Email:           strings.TrimSpace(m.form.GetString("email")),
		Password:        m.form.GetString("password"),
		Name:            strings.TrimSpace(m.form.GetString("name")),
		Sport:           strings.TrimSpace(m.form.GetString("sport")),
		ExperienceLevel: m.form.GetString("experience"),
		Goal:            strings.TrimSpace(m.form.GetString("goal")),
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
	return input
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Create account") + "\n\n")
	if m.busy {
		b.WriteString(theme.Muted.Render("creating account…") + "\n")
	} else {
		b.WriteString(m.form.View())
	}
	if m.errText != "" {
		b.WriteString("\n" + theme.Danger.Render(m.errText))
	}
	b.WriteString("\n\n" + theme.Muted.Render("ctrl+s: back to sign in"))

	pane := theme.Pane.Render(b.String())
	if m.winW == 0 {
		return pane
	}
	return lipgloss.Place(m.winW, max(m.winH, 1), lipgloss.Center, lipgloss.Center, pane)
}
