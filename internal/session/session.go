package session

import (
	"context"
	"log"
	"sync"
)

type State int

const (
	// StateLoading holds from construction until the bootstrap probe
	// resolves. Route guards must not redirect while it lasts.
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Snapshot is the read-only view handed to subscribers and returned by
// Current. Session and Profile are copies; mutating them changes nothing.
type Snapshot struct {
	State   State
	Session *Session
	Profile *Profile
}

// GuardDecision tells a route guard what to do with a protected navigation.
type GuardDecision int

const (
	// GuardPending: state still resolving, render nothing yet.
	GuardPending GuardDecision = iota
	// GuardRedirect: send the user to the login screen.
	GuardRedirect
	// GuardAllow: let the navigation through.
	GuardAllow
)

// Context is the authorization context: it tracks the current session and
// profile as one atomic unit and notifies subscribers on every transition.
//
// Authenticated always means both a session AND its profile are present;
// there is no half state where tokens exist but the profile does not.
type Context struct {
	mu         sync.Mutex
	identity   Identity
	configured bool

	state   State
	session *Session
	profile *Profile

	// epoch increments on every transition; in-flight profile fetches
	// capture it and drop their result if it moved on.
	epoch uint64

	subs []func(Snapshot)
}

// New builds a context in the Loading state. configured=false marks the
// identity service endpoint as absent: every auth operation then fails with
// ErrNotConfigured and the bootstrap probe resolves straight to
// Unauthenticated.
func New(identity Identity, configured bool) *Context {
	return &Context{
		identity:   identity,
		configured: configured,
		state:      StateLoading,
	}
}

// Subscribe registers fn for synchronous notification on every state
// transition. Subscribers run in registration order, after the transition
// is committed, with a read-only snapshot.
func (c *Context) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Current returns a snapshot of the present state.
func (c *Context) Current() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsAdmin, IsFaculty and IsStudent are mutually exclusive: at most one is
// true, and all are false outside Authenticated.
func (c *Context) IsAdmin() bool   { return c.hasRole("admin") }
func (c *Context) IsFaculty() bool { return c.hasRole("faculty") }
func (c *Context) IsStudent() bool { return c.hasRole("student") }

func (c *Context) hasRole(role string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateAuthenticated && c.profile != nil && c.profile.Role == role
}

// Guard decides what a route guard should do with a navigation to a
// protected view.
func (c *Context) Guard() GuardDecision {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateLoading:
		return GuardPending
	case StateAuthenticated:
		return GuardAllow
	default:
		return GuardRedirect
	}
}

// Bootstrap runs the startup probe: check for a persisted session, fetch
// its profile, and settle into Authenticated or Unauthenticated. The
// returned error is diagnostic; the state machine always settles.
func (c *Context) Bootstrap(ctx context.Context) error {
	if !c.configured {
		c.transition(StateUnauthenticated, nil, nil)
		return ErrNotConfigured
	}

	sess, err := c.identity.Bootstrap(ctx)
	if err != nil {
		c.transition(StateUnauthenticated, nil, nil)
		if err == ErrNoSession {
			return nil
		}
		return err
	}

	return c.resolveProfile(ctx, sess)
}

// SignIn validates locally, authenticates against the identity service and
// fetches the profile. On any failure the previous state is untouched.
func (c *Context) SignIn(ctx context.Context, email, password string) error {
	if !c.configured {
		return ErrNotConfigured
	}
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	sess, err := c.identity.SignIn(ctx, normalizeEmail(email), password)
	if err != nil {
		c.settleIfLoading()
		return err
	}
	return c.resolveProfile(ctx, sess)
}

// SignUp registers a new account and, on success, signs the user in.
func (c *Context) SignUp(ctx context.Context, email, password, fullName, role string) error {
	if !c.configured {
		return ErrNotConfigured
	}
	if err := validateSignUp(email, password, fullName, role); err != nil {
		return err
	}

	sess, err := c.identity.SignUp(ctx, normalizeEmail(email), password, fullName, role)
	if err != nil {
		c.settleIfLoading()
		return err
	}
	return c.resolveProfile(ctx, sess)
}

// SignOut clears local state unconditionally and revokes the remote session
// on a best-effort basis. It never fails: a dead network must not trap the
// user in a session.
func (c *Context) SignOut(ctx context.Context) {
	c.mu.Lock()
	token := ""
	if c.session != nil {
		token = c.session.AccessToken
	}
	c.mu.Unlock()

	c.transition(StateUnauthenticated, nil, nil)

	if token != "" {
		if err := c.identity.SignOut(ctx, token); err != nil {
			log.Println("remote sign-out failed (session cleared locally):", err)
		}
	}
}

// Watch folds asynchronous session events from the identity service into
// the state machine. It returns when ctx is done or the event channel
// closes. Call it from a dedicated goroutine.
func (c *Context) Watch(ctx context.Context) {
	events := c.identity.Events()
	if events == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.handleEvent(ctx, ev)
		}
	}
}

func (c *Context) handleEvent(ctx context.Context, ev Event) {
	switch ev.Type {
	case EventRevoked:
		c.transition(StateUnauthenticated, nil, nil)
	case EventRefreshed:
		if ev.Session == nil {
			return
		}
		c.mu.Lock()
		if c.state != StateAuthenticated {
			c.mu.Unlock()
			return
		}
		// Same user, rotated tokens: keep the profile, swap the session.
		sess := *ev.Session
		c.session = &sess
		c.epoch++
		subs, snap := c.notifyArgsLocked()
		c.mu.Unlock()
		for _, fn := range subs {
			fn(snap)
		}
	}
}

// resolveProfile completes a sign-in: fetch the profile for sess, then
// commit session+profile atomically. A fetch that resolves after the state
// has moved on (sign-out raced it) is discarded.
func (c *Context) resolveProfile(ctx context.Context, sess *Session) error {
	c.mu.Lock()
	fetchEpoch := c.epoch
	c.mu.Unlock()

	profile, err := c.identity.FetchProfile(ctx, sess)

	if err != nil {
		// A session without a resolvable profile is unusable: discard it
		// rather than expose a half-authenticated state.
		if c.commitIfEpoch(fetchEpoch, StateUnauthenticated, nil, nil) {
			return err
		}
		return nil
	}

	c.commitIfEpoch(fetchEpoch, StateAuthenticated, sess, profile)
	return nil
}

// commitIfEpoch commits a transition only if no other transition has landed
// since epoch was captured. The check and the commit share one critical
// section: a sign-out that wins the race can never be overwritten by a
// stale resolution committing just after it.
func (c *Context) commitIfEpoch(epoch uint64, state State, sess *Session, profile *Profile) bool {
	c.mu.Lock()
	if c.epoch != epoch {
		// Stale resolution; whatever transition won the race stands.
		c.mu.Unlock()
		return false
	}
	c.state = state
	c.session = sess
	c.profile = profile
	c.epoch++
	subs, snap := c.notifyArgsLocked()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return true
}

// settleIfLoading moves Loading to Unauthenticated after a failed auth
// attempt so guards stop reporting Pending, without disturbing an already
// settled state.
func (c *Context) settleIfLoading() {
	c.mu.Lock()
	if c.state != StateLoading {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.transition(StateUnauthenticated, nil, nil)
}

func (c *Context) transition(state State, sess *Session, profile *Profile) {
	c.mu.Lock()
	c.state = state
	c.session = sess
	c.profile = profile
	c.epoch++
	subs, snap := c.notifyArgsLocked()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (c *Context) notifyArgsLocked() ([]func(Snapshot), Snapshot) {
	subs := make([]func(Snapshot), len(c.subs))
	copy(subs, c.subs)
	return subs, c.snapshotLocked()
}

func (c *Context) snapshotLocked() Snapshot {
	snap := Snapshot{State: c.state}
	if c.session != nil {
		sess := *c.session
		snap.Session = &sess
	}
	if c.profile != nil {
		p := *c.profile
		snap.Profile = &p
	}
	return snap
}
