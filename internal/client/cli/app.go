package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/employera/internal/client/client"
	"github.com/dmitrijs2005/employera/internal/client/config"
	"github.com/dmitrijs2005/employera/internal/client/gate"
	"github.com/dmitrijs2005/employera/internal/client/guard"
	"github.com/dmitrijs2005/employera/internal/client/output"
	"github.com/dmitrijs2005/employera/internal/client/services"
	"github.com/dmitrijs2005/employera/internal/client/storage"
	"github.com/dmitrijs2005/employera/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	store  *services.SessionStore
	theme  *services.ThemeService
	gate   *gate.Gate
	nav    *guard.Navigator
	out    *output.Printer
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stderr, c.LogLevel)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	out := output.NewPrinter(os.Stdout, os.Stderr, output.ResolveColors(c.NoColor))

	return newApp(c, logger, db, apiClient, out, os.Stdin), nil
}

// newApp wires the components around an already opened database and API
// client.
func newApp(c *config.Config, logger logging.Logger, db *sql.DB, api client.Client, out *output.Printer, in io.Reader) *App {
	store := services.NewSessionStore(api, db, logger)
	g := gate.New(store, logger)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		store:  store,
		theme:  services.NewThemeService(db),
		gate:   g,
		nav:    guard.NewNavigator(g),
		out:    out,
		reader: bufio.NewReader(in),
	}
}

// Run boots the session, opens the landing view and serves the REPL until
// the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	a.applyTheme(ctx)
	a.out.Info("Welcome to EmployEra (type 'help' for commands)")

	a.boot(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// boot runs the gate's startup sequence and reports its progress. It
// returns once the gate is no longer loading.
func (a *App) boot(ctx context.Context) {
	states, cancel := a.gate.Subscribe()
	defer cancel()

	hadSession := a.store.IsAuthenticated(ctx)
	if u := a.store.CachedUser(ctx); hadSession && u != nil {
		a.out.Print("Welcome back, %s. Verifying your session...", u.FullName())
	}

	done := a.gate.Boot(ctx)
	for {
		select {
		case s := <-states:
			a.logger.Debug(ctx, "session state", "phase", s.Phase.String(), "loading", s.Loading)
			if !s.Loading {
				a.settled(ctx, s, hadSession)
				return
			}
		case <-done:
			a.settled(ctx, a.gate.Snapshot(), hadSession)
			return
		}
	}
}

func (a *App) settled(ctx context.Context, s gate.State, hadSession bool) {
	switch {
	case s.IsAuthenticated():
		a.out.Success("Signed in as %s (%s)", s.User.Email, s.User.AccountType.Label())
		a.openDashboard(ctx)
	case hadSession:
		a.out.Warning("Your saved session is no longer valid. Please sign in again.")
		_ = a.Open(ctx, []string{guard.PathHome})
	default:
		_ = a.Open(ctx, []string{guard.PathHome})
	}
}

func (a *App) isLoggedIn() bool {
	return a.gate.Snapshot().IsAuthenticated()
}

func (a *App) getStatus() string {
	s := a.gate.Snapshot()
	switch {
	case s.Loading:
		return "(verifying)"
	case s.User == nil:
		return "(guest)"
	default:
		return fmt.Sprintf("(%s %s)", s.User.Email, s.User.AccountType)
	}
}

func (a *App) applyTheme(ctx context.Context) {
	if a.theme.Mode(ctx) == services.ThemeDark {
		a.out.SetPalette(output.PaletteDark)
	} else {
		a.out.SetPalette(output.PaletteLight)
	}
}
