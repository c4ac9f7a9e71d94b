package guard

import "github.com/dmitrijs2005/employera/internal/client/models"

type MenuItem struct {
	Label string
	Path  string
}

// MenuFor returns the navigation menu of an account type. Some entries
// point at views that do not exist yet; opening them lands on the entry
// page like any unknown path.
func MenuFor(t models.AccountType) []MenuItem {
	switch t {
	case models.AccountEmployer:
		return []MenuItem{
			{Label: "Dashboard", Path: "/employer/dashboard"},
			{Label: "Post New Job", Path: "/employer/post-job"},
			{Label: "My Jobs", Path: "/employer/jobs"},
			{Label: "Workers", Path: "/employer/workers"},
			{Label: "History", Path: "/employer/history"},
			{Label: "Analytics", Path: "/employer/analytics"},
		}
	case models.AccountJobSeeker:
		return []MenuItem{
			{Label: "Dashboard", Path: "/jobseeker/dashboard"},
			{Label: "Find Jobs", Path: "/jobs"},
			{Label: "My Bids", Path: "/jobseeker/bids"},
			{Label: "Saved Jobs", Path: "/jobseeker/saved"},
			{Label: "My Crews", Path: "/jobseeker/crews"},
			{Label: "Reviews", Path: "/jobseeker/reviews"},
		}
	default:
		return nil
	}
}
