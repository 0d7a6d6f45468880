package login

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"endure/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// SubmittedMsg carries the completed credentials up to the root model,
// which owns the actual login call.
type SubmittedMsg struct {
	Email    string
	Password string
}

// SwitchToSignupMsg asks the root model to show the signup screen.
type SwitchToSignupMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	form     *huh.Form
	email    string
	password string
	errText  string
	busy     bool
	width    int
	height   int
}

func New() Model {
	m := Model{}
	m.form = m.newForm()
	return m
}

func (m *Model) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.email),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password),
		),
	).WithTheme(huh.ThemeCatppuccin()).WithShowHelp(false)
}

func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// SetError re-arms the form after a failed attempt, keeping the typed
// email so only the password needs re-entering.
func (m *Model) SetError(text string) tea.Cmd {
	m.errText = text
	m.busy = false
	m.email = strings.TrimSpace(m.form.GetString("email"))
	m.password = ""
	m.form = m.newForm()
	return m.form.Init()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			return m, func() tea.Msg { return SwitchToSignupMsg{} }
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
		// Values are read back by key: the model is copied on every
		// update, so the pointers given to Value only seed the fields.
		email := strings.TrimSpace(m.form.GetString("email"))
		password := m.form.GetString("password")
		return m, func() tea.Msg {
			return SubmittedMsg{Email: email, Password: password}
		}
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Sign in") + "\n\n")
	if m.busy {
		b.WriteString(theme.Muted.Render("signing in…") + "\n")
	} else {
		b.WriteString(m.form.View())
	}
	if m.errText != "" {
		b.WriteString("\n" + theme.Danger.Render(m.errText))
	}
	b.WriteString("\n\n" + theme.Muted.Render("ctrl+s: create an account"))

	pane := theme.Pane.Render(b.String())
	if m.width == 0 {
		return pane
	}
	return lipgloss.Place(m.width, max(m.height, 1), lipgloss.Center, lipgloss.Center, pane)
}
