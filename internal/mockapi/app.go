package mockapi

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/employera/internal/client/models"
	"github.com/dmitrijs2005/employera/internal/logging"
	"github.com/dmitrijs2005/employera/internal/mockapi/accounts"
	"github.com/dmitrijs2005/employera/internal/mockapi/config"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// DemoPassword is the password of the accounts created by -seed.
const DemoPassword = "password123"

// DemoAccounts are created when seeding is enabled.
func DemoAccounts() []models.RegisterRequest {
	return []models.RegisterRequest{
		{
			Email: "jobseeker@example.com", Password: DemoPassword, ConfirmPassword: DemoPassword,
			FirstName: "Jamie", LastName: "Seeker", AccountType: models.AccountJobSeeker,
		},
		{
			Email: "employer@example.com", Password: DemoPassword, ConfirmPassword: DemoPassword,
			FirstName: "Erin", LastName: "Boss", AccountType: models.AccountEmployer,
		},
	}
}

// Seed creates accounts directly, skipping the HTTP layer.
func (s *Server) Seed(ctx context.Context, reqs ...models.RegisterRequest) error {
	for _, r := range reqs {
		if _, err := s.users.create(ctx, r); err != nil {
			return fmt.Errorf("seed %s: %w", r.Email, err)
		}
	}
	return nil
}

type App struct {
	config *config.Config
	logger logging.Logger
	server *Server
	// db is set when accounts live in PostgreSQL.
	db *sql.DB
}

func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stderr, c.LogLevel)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	opts := Options{
		Secret:     []byte(c.SecretKey),
		AccessTTL:  c.AccessTokenTTL,
		RefreshTTL: c.RefreshTokenTTL,
		Logger:     logger,
	}

	var db *sql.DB
	if c.DatabaseDSN != "" {
		db, err = accounts.Open(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		opts.Accounts = accounts.NewPostgresRepository(db)
		opts.Blacklist = accounts.NewPostgresBlacklist(db)
	}

	srv := New(opts)

	if c.SeedDemo {
		for _, r := range DemoAccounts() {
			err := srv.Seed(ctx, r)
			if errors.Is(err, accounts.ErrEmailTaken) {
				logger.Info(ctx, "demo account already exists", "email", r.Email)
				continue
			}
			if err != nil {
				if db != nil {
					_ = db.Close()
				}
				return nil, err
			}
		}
	}

	return &App{config: c, logger: logger, server: srv, db: db}, nil
}

// Run serves until SIGINT/SIGTERM or ctx is cancelled, then shuts down.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if app.db != nil {
		defer app.db.Close()
	}

	app.logger.Info(ctx, "Starting mock API...",
		"addr", app.config.ListenAddr,
		"seeded", app.config.SeedDemo,
		"postgres", app.db != nil)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.server.Start(app.config.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		app.logger.Info(ctx, "shutting down mock API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
