package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/employera/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errSignedIn = errors.New("already signed in, log out first")
var errSignedOut = errors.New("not signed in")

// Register prompts for the account details and creates an account. On
// success the user is signed in and taken to the dashboard of the chosen
// account type.
func (a *App) Register(ctx context.Context) error {
	if a.isLoggedIn() {
		return errSignedIn
	}

	w := a.out.Out()
	var req models.RegisterRequest
	var err error

	if req.Email, err = getSimpleText(a.reader, "Email", w); err != nil {
		return err
	}
	if req.FirstName, err = getSimpleText(a.reader, "First name", w); err != nil {
		return err
	}
	if req.LastName, err = getSimpleText(a.reader, "Last name", w); err != nil {
		return err
	}
	if req.Phone, err = getSimpleText(a.reader, "Phone (optional)", w); err != nil {
		return err
	}

	kind, err := getSimpleText(a.reader, accountTypePrompt(), w)
	if err != nil {
		return err
	}
	if req.AccountType, err = models.ParseAccountType(kind); err != nil {
		return err
	}

	if req.Password, err = getPassword(a.reader, "Password", w); err != nil {
		return err
	}
	if req.ConfirmPassword, err = getPassword(a.reader, "Confirm password", w); err != nil {
		return err
	}

	res := a.gate.Register(ctx, req)
	if !res.Success {
		return errors.New(res.Error)
	}

	a.out.Success("Welcome to EmployEra, %s!", res.User.FullName())
	a.openDashboard(ctx)
	return nil
}

// Login prompts for credentials and signs in. On success the dashboard of
// the user's account type is opened.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		return errSignedIn
	}

	w := a.out.Out()
	email, err := getSimpleText(a.reader, "Email", w)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", w)
	if err != nil {
		return err
	}

	res := a.gate.Login(ctx, email, password)
	if !res.Success {
		return errors.New(res.Error)
	}

	a.out.Success("Signed in as %s (%s)", res.User.Email, res.User.AccountType.Label())
	a.openDashboard(ctx)
	return nil
}

// Logout signs out and re-renders the current view, which sends the user
// back to the entry page when it is protected.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errSignedOut
	}

	a.gate.Logout(ctx)
	a.out.Success("Signed out")

	v, err := a.nav.Refresh()
	if err != nil {
		return err
	}
	a.render(v)
	return nil
}

// Passwd changes the password of the signed-in user.
func (a *App) Passwd(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errSignedOut
	}

	w := a.out.Out()
	var req models.ChangePasswordRequest
	var err error

	if req.OldPassword, err = getPassword(a.reader, "Current password", w); err != nil {
		return err
	}
	if req.NewPassword, err = getPassword(a.reader, "New password", w); err != nil {
		return err
	}
	if req.ConfirmPassword, err = getPassword(a.reader, "Confirm new password", w); err != nil {
		return err
	}

	res := a.gate.ChangePassword(ctx, req)
	if !res.Success {
		return errors.New(res.Error)
	}
	a.out.Success("Password changed")
	return nil
}

func accountTypePrompt() string {
	types := models.AccountTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return fmt.Sprintf("Account type (%s)", strings.Join(names, "/"))
}
