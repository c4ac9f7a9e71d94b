package guard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/employera/internal/client/gate"
)

// maxRedirects bounds how many redirects one navigation may follow.
const maxRedirects = 5

var ErrTooManyRedirects = errors.New("too many redirects")

// StateSource is anything that can report the current gate state.
type StateSource interface {
	Snapshot() gate.State
}

// View is the result of a navigation.
type View struct {
	Outcome Outcome
	// Requested is the path the caller asked for.
	Requested string
	// Path is where the navigation ended up.
	Path   string
	Route  Route
	Params map[string]string
	// Redirects lists the paths passed through, in order.
	Redirects []string
}

// Navigator resolves paths to views. It keeps only the current location;
// every call consults the live gate state.
type Navigator struct {
	src StateSource

	mu      sync.Mutex
	current string
}

func NewNavigator(src StateSource) *Navigator {
	return &Navigator{src: src, current: PathHome}
}

// Current returns the last path that was rendered.
func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Navigate resolves path. A Pending view does not change the current
// location.
func (n *Navigator) Navigate(path string) (View, error) {
	v := View{Requested: path}
	state := n.src.Snapshot()

	for hop := 0; hop <= maxRedirects; hop++ {
		route, params, ok := Match(path)
		if !ok {
			v.Redirects = append(v.Redirects, path)
			path = PathHome
			continue
		}

		if !route.Public {
			d := Decide(state, route.Roles)
			switch d.Outcome {
			case Pending:
				v.Outcome = Pending
				v.Path = path
				v.Route = route
				return v, nil
			case Redirect:
				v.Redirects = append(v.Redirects, path)
				path = d.Path
				continue
			}
		}

		v.Outcome = Allow
		v.Path = path
		v.Route = route
		v.Params = params

		n.mu.Lock()
		n.current = path
		n.mu.Unlock()
		return v, nil
	}

	return v, fmt.Errorf("navigate %s: %w", v.Requested, ErrTooManyRedirects)
}

// Refresh re-evaluates the current location against the current state,
// for use after the state changed underneath a rendered view.
func (n *Navigator) Refresh() (View, error) {
	return n.Navigate(n.Current())
}
