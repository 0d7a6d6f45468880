package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dashdto "endure/internal/modules/dashboard/dto"
	"endure/internal/modules/session/dto"
	apperrors "endure/internal/platform/errors"
	"endure/internal/ui/theme"
	dashboardview "endure/internal/ui/views/dashboard"
	loginview "endure/internal/ui/views/login"
	logentryview "endure/internal/ui/views/logentry"
	profileview "endure/internal/ui/views/profile"
	signupview "endure/internal/ui/views/signup"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type sessionPort interface {
	Initialize(ctx context.Context) error
	Login(ctx context.Context, input dto.LoginInput) (dto.ProfileOutput, error)
	Signup(ctx context.Context, input dto.SignupInput) (dto.ProfileOutput, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, input dto.UpdateProfileInput) (dto.ProfileOutput, error)
	ChangePassword(ctx context.Context, input dto.ChangePasswordInput) error
	Status(ctx context.Context) (dto.StatusOutput, error)
	Profile(ctx context.Context) (dto.ProfileOutput, error)
}

type dashboardPort interface {
	Fetch(ctx context.Context) (dashdto.SnapshotOutput, error)
	State(ctx context.Context) (dashdto.StateOutput, error)
	Regenerate(ctx context.Context) (dashdto.RecommendationOutput, error)
	LogWorkout(ctx context.Context, input dashdto.WorkoutInput) (dashdto.WorkoutOutput, error)
	LogSleep(ctx context.Context, input dashdto.SleepInput) (dashdto.SleepOutput, error)
	LogNutrition(ctx context.Context, input dashdto.NutritionInput) (dashdto.NutritionOutput, error)
	WeeklyActivity(ctx context.Context) ([]dashdto.WeeklyActivityOutput, error)
	Reset(ctx context.Context) error
}

// ─── async messages ───────────────────────────────────────────────────────────

type initializedMsg struct {
	status dto.StatusOutput
	err    error
}

type loggedInMsg struct {
	profile dto.ProfileOutput
	err     error
}

type signedUpMsg struct {
	profile dto.ProfileOutput
	err     error
}

type loggedOutMsg struct{ err error }

type profileLoadedMsg struct {
	profile dto.ProfileOutput
	err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns route state and the session
// lifecycle; the route guard decides what each (status, route) pair shows.
// All business logic is delegated to port interfaces; all rendering is
// delegated to sub-views.
type Model struct {
	session   sessionPort
	dashboard dashboardPort

	route   Route
	status  dto.Status
	profile dto.ProfileOutput

	loginView loginview.Model
	signupV   signupview.Model
	dashView  dashboardview.Model
	profView  profileview.Model
	logView   logentryview.Model

	spinner    spinner.Model
	statusText string
	width      int
	height     int
}

func NewModel(session sessionPort, dashboard dashboardPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		session:   session,
		dashboard: dashboard,
		route:     RouteDashboard,
		status:    dto.StatusUnresolved,
		loginView: loginview.New(),
		signupV:   signupview.New(),
		dashView:  dashboardview.New(dashboardBridge{p: dashboard}),
		profView:  profileview.New(profileBridge{p: session}, activityBridge{p: dashboard}),
		spinner:   sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initializeCmd(), m.spinner.Tick)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.propagateSize()
		return m, nil

	case spinner.TickMsg:
		if m.status == dto.StatusUnresolved || m.status == dto.StatusAuthenticating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case initializedMsg:
		if msg.err != nil {
			// Initialize never fails on auth grounds; this is wiring trouble.
			m.statusText = "startup: " + msg.err.Error()
		}
		m.status = msg.status.Status
		if m.status == dto.StatusAuthenticated {
			m.statusText = "welcome back, " + msg.status.Name
			return m, m.enterAuthenticated()
		}
		m.route = RouteLogin
		return m, m.loginView.Init()

	case loggedInMsg:
		if msg.err != nil {
			m.status = dto.StatusUnauthenticated
			return m, m.loginView.SetError(loginErrorText(msg.err))
		}
		m.status = dto.StatusAuthenticated
		m.profile = msg.profile
		m.statusText = "signed in as " + msg.profile.Email
		return m, m.enterAuthenticated()

	case signedUpMsg:
		if msg.err != nil {
			m.status = dto.StatusUnauthenticated
			return m, m.signupV.SetError(loginErrorText(msg.err))
		}
		m.status = dto.StatusAuthenticated
		m.profile = msg.profile
		m.statusText = "account created"
		return m, m.enterAuthenticated()

	case loggedOutMsg:
		m.status = dto.StatusUnauthenticated
		m.profile = dto.ProfileOutput{}
		m.route = RouteLogin
		m.statusText = "signed out"
		m.loginView = loginview.New()
		return m, m.loginView.Init()

	case loginview.SubmittedMsg:
		m.status = dto.StatusAuthenticating
		return m, tea.Batch(m.loginCmd(msg.Email, msg.Password), m.spinner.Tick)

	case loginview.SwitchToSignupMsg:
		m.route = RouteSignup
		m.signupV = signupview.New()
		return m, m.signupV.Init()

	case signupview.SubmittedMsg:
		m.status = dto.StatusAuthenticating
		return m, tea.Batch(m.signupCmd(msg.Input), m.spinner.Tick)

	case signupview.SwitchToLoginMsg:
		m.route = RouteLogin
		m.loginView = loginview.New()
		return m, m.loginView.Init()

	case profileLoadedMsg:
		if msg.err == nil {
			m.profile = msg.profile
			m.profView.SetProfile(msg.profile)
		}
		return m, nil

	case profileview.SavedMsg:
		if msg.Err == nil {
			m.profile = msg.Profile
		}
		var cmd tea.Cmd
		m.profView, cmd = m.profView.Update(msg)
		return m, cmd

	// Fetch results land here even when the user has tabbed away; they
	// must reach the dashboard view regardless of the current route.
	case dashboardview.SnapshotMsg, dashboardview.RegeneratedMsg:
		var cmd tea.Cmd
		m.dashView, cmd = m.dashView.Update(msg)
		return m, cmd

	case profileview.ActivityMsg, profileview.PasswordChangedMsg:
		var cmd tea.Cmd
		m.profView, cmd = m.profView.Update(msg)
		return m, cmd

	case logentryview.SavedMsg:
		m.route = RouteDashboard
		m.statusText = "logged " + msg.Kind.String()
		// The usecase refreshed after the save; just re-read held state.
		return m, m.dashView.Refresh()

	case logentryview.CancelledMsg:
		m.route = RouteDashboard
		return m, nil

	case tea.KeyMsg:
		if model, cmd, handled := m.handleKey(msg); handled {
			return model, cmd
		}
	}

	return m.routeUpdate(msg)
}

// handleKey owns the global bindings. On the auth screens only ctrl+c is
// global so form typing is never swallowed.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}
	if Decide(m.status, m.route) != ShowRoute || m.route.Public() {
		return m, nil, false
	}

	switch msg.String() {
	case "q":
		if m.route == RouteDashboard {
			return m, tea.Quit, true
		}
	case "tab":
		if m.route == RouteProfile {
			m.route = RouteDashboard
		} else {
			m.route = RouteProfile
		}
		return m, nil, true
	case "W":
		return m.openLogForm(RouteLogWorkout, logentryview.KindWorkout)
	case "S":
		return m.openLogForm(RouteLogSleep, logentryview.KindSleep)
	case "N":
		return m.openLogForm(RouteLogNutrition, logentryview.KindNutrition)
	case "ctrl+l":
		return m, m.logoutCmd(), true
	}
	return m, nil, false
}

func (m Model) openLogForm(route Route, kind logentryview.Kind) (tea.Model, tea.Cmd, bool) {
	if m.route != RouteDashboard {
		return m, nil, false
	}
	m.route = route
	m.logView = logentryview.New(logBridge{p: m.dashboard}, kind)
	return m, m.logView.Init(), true
}

// routeUpdate forwards the message to whichever view the guard shows.
func (m Model) routeUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.effectiveRoute() {
	case RouteLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case RouteSignup:
		m.signupV, cmd = m.signupV.Update(msg)
	case RouteDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	case RouteProfile:
		m.profView, cmd = m.profView.Update(msg)
	case RouteLogWorkout, RouteLogSleep, RouteLogNutrition:
		m.logView, cmd = m.logView.Update(msg)
	}
	return m, cmd
}

// effectiveRoute applies the guard's redirects without mutating the
// requested route; Unresolved stays wherever it was, behind the loader.
func (m Model) effectiveRoute() Route {
	switch Decide(m.status, m.route) {
	case RedirectLogin:
		return RouteLogin
	case RedirectDashboard:
		return RouteDashboard
	default:
		return m.route
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var content string
	switch Decide(m.status, m.route) {
	case ShowLoading:
		content = lipgloss.Place(m.width, max(m.height-2, 1),
			lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" "+theme.Muted.Render("checking session…"))
	case RedirectLogin:
		content = m.loginView.View()
	case RedirectDashboard:
		content = m.dashView.View()
	default:
		content = m.currentView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())
}

func (m Model) currentView() string {
	switch m.route {
	case RouteLogin:
		return m.loginView.View()
	case RouteSignup:
		return m.signupV.View()
	case RouteProfile:
		return m.profView.View()
	case RouteLogWorkout, RouteLogSleep, RouteLogNutrition:
		return m.logView.View()
	}
	return m.dashView.View()
}

func (m Model) renderStatusBar() string {
	left := m.statusText
	if m.status == dto.StatusAuthenticated && m.profile.Email != "" {
		left = theme.Hot.Render("● "+m.profile.Email) + "  " + left
	}
	right := theme.Muted.Render(m.keyHints())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) keyHints() string {
	switch {
	case m.status != dto.StatusAuthenticated:
		return "ctrl+c:quit"
	case m.route == RouteDashboard:
		return "tab:profile  W:workout  S:sleep  N:nutrition  ctrl+l:sign out  q:quit"
	default:
		return "tab:dashboard  ctrl+l:sign out"
	}
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 2}
	m.loginView, _ = m.loginView.Update(sz)
	m.signupV, _ = m.signupV.Update(sz)
	m.dashView, _ = m.dashView.Update(sz)
	m.profView, _ = m.profView.Update(sz)
}

// enterAuthenticated starts the protected views once a session exists.
func (m *Model) enterAuthenticated() tea.Cmd {
	m.route = RouteDashboard
	m.profView.SetProfile(m.profile)
	return tea.Batch(m.dashView.Init(), m.profView.Init(), m.profileCmd())
}

func loginErrorText(err error) string {
	switch {
	case apperrors.IsAuth(err):
		return "invalid credentials"
	case apperrors.IsValidation(err):
		return err.Error()
	default:
		return "could not reach the server: " + err.Error()
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) initializeCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.session.Initialize(context.Background())
		status, statusErr := m.session.Status(context.Background())
		if err == nil {
			err = statusErr
		}
		return initializedMsg{status: status, err: err}
	}
}

func (m Model) profileCmd() tea.Cmd {
	return func() tea.Msg {
		profile, err := m.session.Profile(context.Background())
		return profileLoadedMsg{profile: profile, err: err}
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		profile, err := m.session.Login(context.Background(), dto.LoginInput{
			Email:    email,
			Password: password,
		})
		return loggedInMsg{profile: profile, err: err}
	}
}

func (m Model) signupCmd(input dto.SignupInput) tea.Cmd {
	return func() tea.Msg {
		profile, err := m.session.Signup(context.Background(), input)
		return signedUpMsg{profile: profile, err: err}
	}
}

// logoutCmd clears the session and drops dashboard state in one step so
// nothing personal survives into the next session.
func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.session.Logout(context.Background())
		if resetErr := m.dashboard.Reset(context.Background()); err == nil {
			err = resetErr
		}
		return loggedOutMsg{err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed
// by a specific sub-view, keeping view packages free of knowledge about the
// wider port surface.

type dashboardBridge struct{ p dashboardPort }

func (b dashboardBridge) Fetch(ctx context.Context) (dashdto.SnapshotOutput, error) {
	return b.p.Fetch(ctx)
}
func (b dashboardBridge) State(ctx context.Context) (dashdto.StateOutput, error) {
	return b.p.State(ctx)
}
func (b dashboardBridge) Regenerate(ctx context.Context) (dashdto.RecommendationOutput, error) {
	return b.p.Regenerate(ctx)
}

type profileBridge struct{ p sessionPort }

func (b profileBridge) UpdateProfile(ctx context.Context, input dto.UpdateProfileInput) (dto.ProfileOutput, error) {
	return b.p.UpdateProfile(ctx, input)
}
func (b profileBridge) ChangePassword(ctx context.Context, input dto.ChangePasswordInput) error {
	return b.p.ChangePassword(ctx, input)
}

type activityBridge struct{ p dashboardPort }

func (b activityBridge) WeeklyActivity(ctx context.Context) ([]dashdto.WeeklyActivityOutput, error) {
	return b.p.WeeklyActivity(ctx)
}

type logBridge struct{ p dashboardPort }

func (b logBridge) LogWorkout(ctx context.Context, input dashdto.WorkoutInput) (dashdto.WorkoutOutput, error) {
	return b.p.LogWorkout(ctx, input)
}
func (b logBridge) LogSleep(ctx context.Context, input dashdto.SleepInput) (dashdto.SleepOutput, error) {
	return b.p.LogSleep(ctx, input)
}
func (b logBridge) LogNutrition(ctx context.Context, input dashdto.NutritionInput) (dashdto.NutritionOutput, error) {
	return b.p.LogNutrition(ctx, input)
}
