package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/employera/internal/client/models"
)

// WhoAmI prints the profile of the signed-in user.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.gate.Snapshot()
	if s.User == nil {
		return errSignedOut
	}
	u := s.User

	a.out.Header(u.FullName())
	a.out.Field("email", u.Email)
	a.out.Field("account", u.AccountType.Label())
	a.out.Field("session", s.Phase.String())
	if u.Phone != "" {
		a.out.Field("phone", u.Phone)
	}
	if u.Location != "" {
		a.out.Field("location", u.Location)
	}
	if u.Bio != "" {
		a.out.Field("bio", u.Bio)
	}

	if u.IsEmployer() {
		if u.CompanyName != "" {
			a.out.Field("company", u.CompanyName)
		}
		if u.CompanyDescription != "" {
			a.out.Field("about", u.CompanyDescription)
		}
	} else {
		if len(u.Skills) > 0 {
			a.out.Field("skills", strings.Join(u.Skills, ", "))
		}
		if u.HourlyRate != nil {
			a.out.Field("hourly rate", *u.HourlyRate)
		}
	}

	a.out.Field("rating", fmt.Sprintf("%s (%d reviews)", orDash(u.Rating), u.TotalReviews))
	if u.IsVerified {
		a.out.Field("verified", "yes")
	}
	return nil
}

// Edit applies "name=value" changes to the profile. Without arguments the
// changes are read interactively, one per line.
func (a *App) Edit(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errSignedOut
	}

	if len(args) == 0 {
		prompt := "Fields: " + strings.Join(models.EditableFields(), ", ")
		lines, err := GetKeyValues(a.reader, prompt, a.out.Out())
		if err != nil {
			return err
		}
		args = lines
	}

	upd, err := models.ParseProfileUpdate(args)
	if err != nil {
		return err
	}

	res := a.gate.UpdateProfile(ctx, upd)
	if !res.Success {
		return errors.New(res.Error)
	}
	a.out.Success("Profile updated")
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
