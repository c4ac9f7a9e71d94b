package guard

import (
	"testing"

	"github.com/dmitrijs2005/employera/internal/client/gate"
	"github.com/dmitrijs2005/employera/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func userOf(t models.AccountType) *models.User {
	return &models.User{ID: 1, Email: "a@b.com", AccountType: t}
}

func TestDecide(t *testing.T) {
	seeker := userOf(models.AccountJobSeeker)
	employer := userOf(models.AccountEmployer)

	tests := []struct {
		name     string
		state    gate.State
		required RoleSet
		want     Decision
	}{
		{"loading anonymous", gate.State{Loading: true}, Roles(models.AccountEmployer), Decision{Outcome: Pending}},
		{"loading with stale user", gate.State{Loading: true, User: seeker}, Roles(models.AccountEmployer), Decision{Outcome: Pending}},
		{"loading no roles", gate.State{Loading: true}, nil, Decision{Outcome: Pending}},
		{"anonymous", gate.State{}, nil, Decision{Outcome: Redirect, Path: "/"}},
		{"anonymous with roles", gate.State{}, Roles(models.AccountJobSeeker), Decision{Outcome: Redirect, Path: "/"}},
		{"seeker on employer route", gate.State{User: seeker}, Roles(models.AccountEmployer), Decision{Outcome: Redirect, Path: PathJobSeekerDashboard}},
		{"employer on seeker route", gate.State{User: employer}, Roles(models.AccountJobSeeker), Decision{Outcome: Redirect, Path: PathEmployerDashboard}},
		{"seeker on seeker route", gate.State{User: seeker}, Roles(models.AccountJobSeeker), Decision{Outcome: Allow}},
		{"employer on shared route", gate.State{User: employer}, nil, Decision{Outcome: Allow}},
		{"either role", gate.State{User: employer}, Roles(models.AccountJobSeeker, models.AccountEmployer), Decision{Outcome: Allow}},
		{"unknown account type", gate.State{User: userOf("admin")}, Roles(models.AccountEmployer), Decision{Outcome: Redirect, Path: "/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.state, tt.required))
		})
	}
}

func TestDecide_RoleGatingNeverAllowsOtherRole(t *testing.T) {
	for _, own := range models.AccountTypes() {
		for _, other := range models.AccountTypes() {
			if own == other {
				continue
			}
			d := Decide(gate.State{User: userOf(own)}, Roles(other))
			assert.Equal(t, Redirect, d.Outcome, "%s against %s", own, other)
			assert.Equal(t, DashboardPath(own), d.Path)
		}
	}
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/jobseeker/dashboard", DashboardPath(models.AccountJobSeeker))
	assert.Equal(t, "/employer/dashboard", DashboardPath(models.AccountEmployer))
	assert.Equal(t, "/", DashboardPath(""))
}

func TestRoleSet_Sorted(t *testing.T) {
	assert.Equal(t,
		[]models.AccountType{models.AccountEmployer, models.AccountJobSeeker},
		Roles(models.AccountJobSeeker, models.AccountEmployer).Sorted())
	assert.Empty(t, RoleSet(nil).Sorted())
}

func TestMenuFor(t *testing.T) {
	emp := MenuFor(models.AccountEmployer)
	assert.Equal(t, MenuItem{Label: "Dashboard", Path: PathEmployerDashboard}, emp[0])
	assert.Len(t, emp, 6)

	js := MenuFor(models.AccountJobSeeker)
	assert.Equal(t, MenuItem{Label: "Dashboard", Path: PathJobSeekerDashboard}, js[0])
	assert.Contains(t, js, MenuItem{Label: "Find Jobs", Path: "/jobs"})

	assert.Nil(t, MenuFor("admin"))
}
