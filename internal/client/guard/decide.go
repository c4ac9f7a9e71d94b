// Package guard decides whether a view may be rendered for the current
// gate state. Decide is pure; Navigator applies it on every navigation.
package guard

import (
	"sort"

	"github.com/dmitrijs2005/employera/internal/client/gate"
	"github.com/dmitrijs2005/employera/internal/client/models"
)

const (
	PathHome               = "/"
	PathJobSeekerDashboard = "/jobseeker/dashboard"
	PathEmployerDashboard  = "/employer/dashboard"
)

type Outcome int

const (
	// Pending means the gate is still verifying; render nothing yet.
	Pending Outcome = iota
	Allow
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	default:
		return "invalid"
	}
}

// Decision is the guard's answer. Path is set only for Redirect.
type Decision struct {
	Outcome Outcome
	Path    string
}

// RoleSet is the set of account types admitted to a route. An empty set
// admits any signed-in user.
type RoleSet map[models.AccountType]struct{}

func Roles(types ...models.AccountType) RoleSet {
	rs := make(RoleSet, len(types))
	for _, t := range types {
		rs[t] = struct{}{}
	}
	return rs
}

func (rs RoleSet) Contains(t models.AccountType) bool {
	_, ok := rs[t]
	return ok
}

// Sorted lists the roles in a stable order.
func (rs RoleSet) Sorted() []models.AccountType {
	out := make([]models.AccountType, 0, len(rs))
	for t := range rs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DashboardPath is the landing view of each account type. Unknown types
// get the public entry point.
func DashboardPath(t models.AccountType) string {
	switch t {
	case models.AccountJobSeeker:
		return PathJobSeekerDashboard
	case models.AccountEmployer:
		return PathEmployerDashboard
	default:
		return PathHome
	}
}

// Decide admits a protected view or says where to go instead. A user of
// the wrong role is sent to their own dashboard, never to an error.
func Decide(state gate.State, required RoleSet) Decision {
	switch {
	case state.Loading:
		return Decision{Outcome: Pending}
	case state.User == nil:
		return Decision{Outcome: Redirect, Path: PathHome}
	case len(required) > 0 && !required.Contains(state.User.AccountType):
		return Decision{Outcome: Redirect, Path: DashboardPath(state.User.AccountType)}
	default:
		return Decision{Outcome: Allow}
	}
}
