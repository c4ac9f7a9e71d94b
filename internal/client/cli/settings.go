package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/employera/internal/client/services"
)

// Theme shows or changes the color theme. The preference is stored locally
// and kept across logins.
func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.out.Print("Theme: %s", a.theme.Mode(ctx))
		return nil
	}
	if len(args) > 1 {
		return errors.New("usage: theme [light|dark|toggle]")
	}

	var mode services.ThemeMode
	switch args[0] {
	case "toggle":
		m, err := a.theme.Toggle(ctx)
		if err != nil {
			return err
		}
		mode = m
	default:
		mode = services.ThemeMode(args[0])
		if err := a.theme.SetMode(ctx, mode); err != nil {
			return err
		}
	}

	a.applyTheme(ctx)
	a.out.Success("Theme set to %s", mode)
	return nil
}

// Status prints connection and session details.
func (a *App) Status(ctx context.Context) error {
	s := a.gate.Snapshot()

	a.out.Header("Status")
	a.out.Field("api", a.config.APIBaseURL)
	a.out.Field("database", a.config.DatabasePath)
	a.out.Field("session", s.Phase.String())

	if s.User != nil {
		a.out.Field("user", fmt.Sprintf("%s (%s)", s.User.Email, s.User.AccountType.Label()))
	} else {
		a.out.Field("user", "-")
	}

	if exp, ok := a.store.AccessTokenExpiry(ctx); ok {
		left := time.Until(exp).Round(time.Second)
		if left > 0 {
			a.out.Field("token expires", fmt.Sprintf("%s (in %s)", exp.Local().Format(time.DateTime), left))
		} else {
			a.out.Field("token expires", fmt.Sprintf("%s (expired)", exp.Local().Format(time.DateTime)))
		}
	}

	a.out.Field("theme", string(a.theme.Mode(ctx)))
	a.out.Field("view", a.nav.Current())
	return nil
}

// CheckEmail reports whether an email address is already registered.
func (a *App) CheckEmail(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: check-email <email>")
	}

	exists, err := a.store.CheckEmail(ctx, args[0])
	if err != nil {
		return err
	}
	if exists {
		a.out.Print("%s is already registered", args[0])
	} else {
		a.out.Print("%s is available", args[0])
	}
	return nil
}
