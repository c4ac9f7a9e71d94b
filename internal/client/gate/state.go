package gate

import "github.com/dmitrijs2005/employera/internal/client/models"

// Phase says how far the Gate trusts State.User.
type Phase int

const (
	// PhaseUnknown is the state before Boot has looked at storage.
	PhaseUnknown Phase = iota
	// PhaseStale means User comes from the local cache and is being verified.
	PhaseStale
	// PhaseConfirmed means the API vouched for User.
	PhaseConfirmed
	// PhaseAnonymous means nobody is signed in.
	PhaseAnonymous
)

func (p Phase) String() string {
	switch p {
	case PhaseUnknown:
		return "unknown"
	case PhaseStale:
		return "stale"
	case PhaseConfirmed:
		return "confirmed"
	case PhaseAnonymous:
		return "anonymous"
	default:
		return "invalid"
	}
}

// State is what every protected view reads. It is only changed by Gate.
type State struct {
	User    *models.User
	Loading bool
	Error   string
	Phase   Phase
}

// IsAuthenticated is derived from User and never stored on its own.
func (s State) IsAuthenticated() bool {
	return s.User != nil
}

// Result is returned by the Gate's mutating operations.
type Result struct {
	Success bool
	User    *models.User
	Error   string
}
