package bootstrap

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	dashboardinadapter "endure/internal/modules/dashboard/adapter/in"
	dashboardoutadapter "endure/internal/modules/dashboard/adapter/out"
	dashboardin "endure/internal/modules/dashboard/port/in"
	dashboardservice "endure/internal/modules/dashboard/service"
	dashboardusecase "endure/internal/modules/dashboard/usecase"
	sessioninadapter "endure/internal/modules/session/adapter/in"
	sessionoutadapter "endure/internal/modules/session/adapter/out"
	sessionin "endure/internal/modules/session/port/in"
	sessionservice "endure/internal/modules/session/service"
	sessionusecase "endure/internal/modules/session/usecase"
	"endure/internal/platform/clock"
	"endure/internal/platform/config"
	"endure/internal/platform/id"
	"endure/internal/platform/logging"
	"endure/internal/platform/rest"
	uiapp "endure/internal/ui/app"
)

type App struct {
	Session   sessionin.Usecase
	Dashboard dashboardin.Usecase

	SessionCLI   sessioninadapter.CLIHandler
	DashboardCLI dashboardinadapter.CLIHandler

	closer io.Closer
}

// New wires the whole client. The session store doubles as the REST
// client's token source, so one shared client serves both modules and
// the login call simply goes out unauthenticated.
func New(cfg config.Config) (*App, error) {
	log, closer, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	clk := clock.SystemClock{}
	ids := id.UUID{}

	store := sessionservice.NewStore(log)
	client := rest.NewClient(cfg.BaseURL, cfg.HTTPTimeout(), store, ids, log)

	sessionUC := sessionusecase.NewInteractor(
		store,
		sessionoutadapter.NewHTTPAuthAPI(client),
		sessionoutadapter.NewFileTokenStore(cfg.TokenPath()),
		log,
	)

	holder := dashboardservice.NewHolder(clk, log)
	dashboardUC := dashboardusecase.NewInteractor(
		holder,
		dashboardoutadapter.NewHTTPAPI(client),
		log,
	)

	return &App{
		Session:      sessionUC,
		Dashboard:    dashboardUC,
		SessionCLI:   sessioninadapter.NewCLIHandler(sessionUC),
		DashboardCLI: dashboardinadapter.NewCLIHandler(dashboardUC),
		closer:       closer,
	}, nil
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Session, app.Dashboard)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
