// Package gate holds the Auth Gate: the single in-memory owner of the
// signed-in user. It turns Session Store calls into State changes that
// views and the route guard observe, and runs the boot-time revalidation
// of a cached session.
//
// One Gate is built at the application root and passed down.
package gate

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/employera/internal/client/client"
	"github.com/dmitrijs2005/employera/internal/client/models"
	"github.com/dmitrijs2005/employera/internal/client/validation"
	"github.com/dmitrijs2005/employera/internal/logging"
	"golang.org/x/sync/semaphore"
)

// ErrBusy is the Result.Error of an operation started while another one
// is still in flight.
const ErrBusy = "Another request is already in progress"

const (
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
	msgUpdateFailed   = "Profile update failed"
	msgPasswordFailed = "Password change failed"
)

// Store is the part of the Session Store the Gate drives.
type Store interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context)
	VerifySession(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error
	IsAuthenticated(ctx context.Context) bool
	CachedUser(ctx context.Context) *models.User
	Repair(ctx context.Context) (bool, error)
}

// Gate owns the authentication state of the client and publishes every change to subscribers.
type Gate struct {
	store Store
	log   logging.Logger

	// sem admits one mutating operation at a time.
	sem *semaphore.Weighted

	mu     sync.RWMutex
	state  State
	subs   map[int]chan State
	nextID int

	bootOnce sync.Once
	booted   chan struct{}
}

// New returns a Gate in the loading state. Call Boot to settle it.
func New(store Store, log logging.Logger) *Gate {
	return &Gate{
		store:  store,
		log:    log.With("component", "gate"),
		sem:    semaphore.NewWeighted(1),
		state:  State{Loading: true, Phase: PhaseUnknown},
		subs:   make(map[int]chan State),
		booted: make(chan struct{}),
	}
}

// Snapshot returns the current state.
func (g *Gate) Snapshot() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Subscribe returns a channel that receives every later state. A slow
// reader skips intermediate states but always ends up with the latest
// one. The returned func unsubscribes and closes the channel.
func (g *Gate) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.subs[id] = ch
	g.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.subs, id)
			g.mu.Unlock()
			close(ch)
		})
	}
}

func (g *Gate) update(fn func(*State)) State {
	g.mu.Lock()
	defer g.mu.Unlock()

	fn(&g.state)
	s := g.state
	for _, ch := range g.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
	return s
}

// Boot runs the startup sequence once and returns a channel that is
// closed when Loading turns false. Later calls return the same channel.
//
// Without a stored token the Gate settles immediately and no request is
// made. Otherwise the cached user is shown at once and then replaced by
// the API's answer. Any verification failure, network errors included,
// purges the session.
func (g *Gate) Boot(ctx context.Context) <-chan struct{} {
	g.bootOnce.Do(func() {
		// A mutation started before Boot keeps its slot; verification then runs unguarded.
		held := g.sem.TryAcquire(1)
		release := func() {
			if held {
				g.sem.Release(1)
			}
		}

		if repaired, err := g.store.Repair(ctx); err != nil {
			g.log.Warn(ctx, "boot: repair session", "error", err)
		} else if repaired {
			g.log.Warn(ctx, "boot: discarded partial session")
		}

		if !g.store.IsAuthenticated(ctx) {
			g.update(func(s *State) {
				*s = State{Phase: PhaseAnonymous}
			})
			release()
			close(g.booted)
			return
		}

		cached := g.store.CachedUser(ctx)
		g.update(func(s *State) {
			s.User = cached
			s.Phase = PhaseStale
		})

		go g.verify(ctx, release)
	})
	return g.booted
}

func (g *Gate) verify(ctx context.Context, release func()) {
	defer close(g.booted)
	defer release()

	user, err := g.store.VerifySession(ctx)
	if err != nil {
		g.log.Info(ctx, "boot: session rejected, signing out", "error", err)
		g.store.Logout(context.WithoutCancel(ctx))
		g.update(func(s *State) {
			*s = State{Phase: PhaseAnonymous}
		})
		return
	}

	g.log.Info(ctx, "boot: session verified", "email", user.Email)
	g.update(func(s *State) {
		*s = State{User: user, Phase: PhaseConfirmed}
	})
}

// Login signs in. On failure State.User is left as it was.
func (g *Gate) Login(ctx context.Context, email, password string) Result {
	return g.authenticate(ctx, msgLoginFailed, func() (*models.User, error) {
		return g.store.Login(ctx, email, password)
	})
}

// Register creates an account and signs in.
func (g *Gate) Register(ctx context.Context, req models.RegisterRequest) Result {
	return g.authenticate(ctx, msgRegisterFailed, func() (*models.User, error) {
		return g.store.Register(ctx, req)
	})
}

// UpdateProfile applies a partial update to the signed-in user.
func (g *Gate) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) Result {
	return g.authenticate(ctx, msgUpdateFailed, func() (*models.User, error) {
		return g.store.UpdateProfile(ctx, upd)
	})
}

// ChangePassword changes the password. State.User is not touched.
func (g *Gate) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) Result {
	if !g.sem.TryAcquire(1) {
		return Result{Error: ErrBusy}
	}
	defer g.sem.Release(1)

	g.update(func(s *State) { s.Error = "" })

	if err := g.store.ChangePassword(ctx, req); err != nil {
		msg := errorMessage(err, msgPasswordFailed)
		g.update(func(s *State) { s.Error = msg })
		return Result{Error: msg}
	}
	return Result{Success: true}
}

// Logout signs out. User and Error are cleared whatever the API says.
func (g *Gate) Logout(ctx context.Context) {
	if err := g.sem.Acquire(ctx, 1); err == nil {
		defer g.sem.Release(1)
	}

	g.store.Logout(ctx)
	g.update(func(s *State) {
		*s = State{Phase: PhaseAnonymous}
	})
}

func (g *Gate) authenticate(ctx context.Context, fallback string, call func() (*models.User, error)) Result {
	if !g.sem.TryAcquire(1) {
		return Result{Error: ErrBusy}
	}
	defer g.sem.Release(1)

	g.update(func(s *State) { s.Error = "" })

	user, err := call()
	if err != nil {
		msg := errorMessage(err, fallback)
		g.log.Debug(ctx, "request failed", "error", err)
		g.update(func(s *State) { s.Error = msg })
		return Result{Error: msg}
	}

	g.update(func(s *State) {
		s.User = user
		s.Phase = PhaseConfirmed
	})
	return Result{Success: true, User: user}
}

// errorMessage picks the text shown to the user. Messages from the API
// and from local validation are shown as is; transport failures and
// anything else get the generic fallback.
func errorMessage(err error, fallback string) string {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Error()
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && !errors.Is(err, client.ErrUnavailable) {
		return apiErr.Message
	}
	return fallback
}
