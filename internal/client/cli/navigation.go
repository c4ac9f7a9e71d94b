package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrijs2005/employera/internal/client/gate"
	"github.com/dmitrijs2005/employera/internal/client/guard"
	"github.com/dmitrijs2005/employera/internal/client/output"
)

// Open navigates to the path in args[0] and renders whatever view the
// guard admits.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: open <path>")
	}

	v, err := a.nav.Navigate(args[0])
	if err != nil {
		return err
	}
	a.render(v)
	return nil
}

// openDashboard opens the landing view of the signed-in user's account type.
func (a *App) openDashboard(ctx context.Context) {
	s := a.gate.Snapshot()
	if s.User == nil {
		return
	}
	if err := a.Open(ctx, []string{guard.DashboardPath(s.User.AccountType)}); err != nil {
		a.out.Error("%v", err)
	}
}

func (a *App) render(v guard.View) {
	if v.Outcome == guard.Pending {
		a.out.Print("%s", a.out.Dim("Loading..."))
		return
	}

	if len(v.Redirects) > 0 {
		a.out.Warning("%s is not available, redirected to %s", v.Requested, v.Path)
	}

	a.out.Header(v.Route.Title)
	a.out.Field("path", v.Path)
	for _, k := range slices.Sorted(maps.Keys(v.Params)) {
		a.out.Field(k, v.Params[k])
	}
	if s := a.gate.Snapshot(); s.User != nil {
		a.out.Field("signed in", fmt.Sprintf("%s (%s)", s.User.FullName(), s.User.AccountType.Label()))
	}
}

// Menu prints the navigation menu of the signed-in user's account type.
func (a *App) Menu(ctx context.Context) error {
	s := a.gate.Snapshot()
	if s.User == nil {
		return errSignedOut
	}

	items := guard.MenuFor(s.User.AccountType)
	if len(items) == 0 {
		return fmt.Errorf("no menu for account type %q", s.User.AccountType)
	}

	t := output.NewTable(a.out.Out(), "Item", "Path")
	for _, it := range items {
		t.AddRow(it.Label, it.Path)
	}
	return t.Render()
}

// Routes lists every view with the roles that may open it and whether the
// current user is admitted right now.
func (a *App) Routes(ctx context.Context) error {
	s := a.gate.Snapshot()

	t := output.NewTable(a.out.Out(), "Path", "View", "Access", "Allowed")
	for _, r := range guard.Routes() {
		t.AddRow(r.Pattern, r.Title, accessLabel(r), allowedLabel(s, r))
	}
	return t.Render()
}

func accessLabel(r guard.Route) string {
	switch {
	case r.Public:
		return "public"
	case len(r.Roles) == 0:
		return "signed in"
	}
	roles := r.Roles.Sorted()
	names := make([]string, len(roles))
	for i, t := range roles {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func allowedLabel(s gate.State, r guard.Route) string {
	if r.Public {
		return "yes"
	}
	switch guard.Decide(s, r.Roles).Outcome {
	case guard.Allow:
		return "yes"
	case guard.Pending:
		return "pending"
	default:
		return "no"
	}
}
