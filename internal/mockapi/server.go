// Package mockapi implements the marketplace identity API over an
// in-memory or PostgreSQL account store. It backs cmd/mockapi for local
// development and the end-to-end tests of the client.
package mockapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/employera/internal/client/validation"
	"github.com/dmitrijs2005/employera/internal/logging"
	"github.com/dmitrijs2005/employera/internal/mockapi/accounts"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultAccessTTL  = 5 * time.Minute
	DefaultRefreshTTL = 24 * time.Hour
)

type Options struct {
	// Secret signs tokens. A random one is generated when empty.
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	// Accounts and Blacklist default to in-memory stores.
	Accounts  accounts.Repository
	Blacklist accounts.Blacklist
	Logger    logging.Logger
}

type Server struct {
	e        *echo.Echo
	users    *userStore
	tokens   *tokenIssuer
	validate *validation.Validator
	log      logging.Logger
}

func New(opts Options) *Server {
	if len(opts.Secret) == 0 {
		opts.Secret = []byte(uuid.NewString())
	}
	if opts.AccessTTL <= 0 {
		opts.AccessTTL = DefaultAccessTTL
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = DefaultRefreshTTL
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.Accounts == nil {
		opts.Accounts = accounts.NewMemoryRepository()
	}
	if opts.Blacklist == nil {
		opts.Blacklist = accounts.NewMemoryBlacklist()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	s := &Server{
		users:    newUserStore(opts.Accounts, opts.BcryptCost),
		tokens:   newTokenIssuer(opts.Secret, opts.AccessTTL, opts.RefreshTTL, opts.Blacklist),
		validate: validation.New(),
		log:      opts.Logger.With("component", "mockapi"),
	}
	s.e = s.routes()
	return s
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			if v.Error == nil {
				s.log.Info(ctx, "request completed",
					"request_id", v.RequestID,
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				s.log.Warn(ctx, "request failed",
					"request_id", v.RequestID,
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"error", v.Error.Error())
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	auth := e.Group("/api/auth")
	auth.POST("/register/", s.register)
	auth.POST("/login/", s.login)
	auth.GET("/check-email/", s.checkEmail)

	auth.POST("/logout/", s.logout, s.requireAuth)
	auth.GET("/verify-token/", s.verifyToken, s.requireAuth)
	auth.GET("/profile/", s.profile, s.requireAuth)
	auth.PATCH("/profile/", s.updateProfile, s.requireAuth)
	auth.PUT("/profile/", s.updateProfile, s.requireAuth)
	auth.PUT("/change-password/", s.changePassword, s.requireAuth)

	return e
}

// Handler exposes the API for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Start serves on addr until Shutdown. It returns http.ErrServerClosed
// after a clean shutdown.
func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// Revoke invalidates every token issued so far to email, as an
// administrator disabling a session would. It reports whether the user
// exists.
func (s *Server) Revoke(ctx context.Context, email string) (bool, error) {
	return s.users.revoke(ctx, email)
}
