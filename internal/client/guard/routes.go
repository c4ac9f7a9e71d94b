package guard

import (
	"strings"

	"github.com/dmitrijs2005/employera/internal/client/models"
)

// Route is one entry of the view table. Pattern segments starting with
// ':' match any single segment.
type Route struct {
	Pattern string
	Title   string
	Public  bool
	Roles   RoleSet
}

var (
	jobSeekerOnly = Roles(models.AccountJobSeeker)
	employerOnly  = Roles(models.AccountEmployer)
)

var routes = []Route{
	{Pattern: "/", Title: "Sign in or register", Public: true},
	{Pattern: "/login", Title: "Sign in", Public: true},
	{Pattern: "/register", Title: "Register", Public: true},

	{Pattern: "/jobseeker/dashboard", Title: "Job seeker dashboard", Roles: jobSeekerOnly},
	{Pattern: "/jobseeker/bids", Title: "My bids", Roles: jobSeekerOnly},
	{Pattern: "/jobseeker/saved", Title: "Saved jobs", Roles: jobSeekerOnly},
	{Pattern: "/jobseeker/reviews", Title: "Reviews", Roles: jobSeekerOnly},
	{Pattern: "/jobseeker/availability", Title: "Availability", Roles: jobSeekerOnly},

	{Pattern: "/employer/dashboard", Title: "Employer dashboard", Roles: employerOnly},
	{Pattern: "/employer/post-job", Title: "Post a job", Roles: employerOnly},
	{Pattern: "/employer/jobs", Title: "My jobs", Roles: employerOnly},
	{Pattern: "/employer/analytics", Title: "Analytics", Roles: employerOnly},
	{Pattern: "/employer/jobs/:id", Title: "Job details", Roles: employerOnly},

	{Pattern: "/jobs", Title: "Find jobs"},
	{Pattern: "/jobs/:id", Title: "Job details"},
}

// Routes returns the view table in declaration order.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Match finds the route for path and extracts its parameters.
func Match(path string) (Route, map[string]string, bool) {
	segs := split(path)
	for _, r := range routes {
		if params, ok := matchPattern(split(r.Pattern), segs); ok {
			return r, params, true
		}
	}
	return Route{}, nil, false
}

func matchPattern(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	var params map[string]string
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if params == nil {
				params = make(map[string]string)
			}
			params[p[1:]] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}

// split drops the query string and empty segments, so "/jobs/" and
// "/jobs" are the same path.
func split(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
