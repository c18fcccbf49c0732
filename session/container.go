package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mentorsphere/mentorsphere-go/store"
)

var (
	// ErrNilUser is returned when Login is invoked without a user record.
	// This is a programming error on the caller's side, not a runtime
	// condition.
	ErrNilUser = errors.New("session: nil user")
	// ErrEmptyToken is returned when Login is invoked without a token.
	ErrEmptyToken = errors.New("session: empty token")
	// ErrInvalidRole is returned when a user record carries a role tag
	// outside the closed role set.
	ErrInvalidRole = errors.New("session: invalid role")
	// ErrRoleImmutable is returned when an update would change the role
	// without re-authentication.
	ErrRoleImmutable = errors.New("session: role change requires re-authentication")
	// ErrNotAuthenticated is returned by mutations that require a present
	// session.
	ErrNotAuthenticated = errors.New("session: not authenticated")
)

// EventType identifies a container mutation for subscribers.
type EventType string

const (
	// EventLogin is emitted after a successful login write.
	EventLogin EventType = "login"
	// EventLogout is emitted after an explicit logout.
	EventLogout EventType = "logout"
	// EventUserUpdated is emitted after the cached user record changes.
	EventUserUpdated EventType = "user_updated"
	// EventUnauthorized is emitted when an API 401 forces a local clear.
	EventUnauthorized EventType = "unauthorized"
	// EventLoading is emitted when the transient loading flag changes.
	EventLoading EventType = "loading"
	// EventError is emitted when the transient error flag changes.
	EventError EventType = "error"
)

// Session is an immutable snapshot of the container state.
type Session struct {
	Token         string
	User          *store.UserRecord
	Role          string
	Authenticated bool
	Loading       bool
	Err           string
}

// Event is delivered to subscribers on every mutation.
type Event struct {
	Type    EventType
	Session Session
}

// UserUpdate is a shallow partial update of the cached user record. Nil
// fields are retained. A non-nil Role must equal the current role; role
// changes go through re-authentication.
type UserUpdate struct {
	Name       *string
	Avatar     *string
	Bio        *string
	Location   *string
	Phone      *string
	University *string
	Role       *string
}

// Container is the process-wide session state. Safe for concurrent use.
type Container struct {
	// writeMu serializes whole mutations, store write through in-memory
	// commit, so a concurrent clear cannot land between a mutation's
	// persist and its commit and leave the store holding a user record
	// with no token. mu alone only covers the in-memory fields.
	writeMu sync.Mutex
	mu      sync.Mutex
	store   store.Store

	token         string
	user          *store.UserRecord
	role          string
	authenticated bool
	loading       bool
	errMsg        string

	subs    map[int]func(Event)
	nextSub int
}

// New builds a container rehydrated from st. A store whose entries are
// mutually inconsistent (token without user, role disagreeing with the
// user record) is treated as absent and cleared rather than surfaced.
func New(ctx context.Context, st store.Store) (*Container, error) {
	if st == nil {
		return nil, errors.New("session: store required")
	}

	c := &Container{
		store: st,
		subs:  make(map[int]func(Event)),
	}

	token, err := st.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	user, err := st.GetUser(ctx)
	if err != nil {
		return nil, err
	}
	role, err := st.GetRole(ctx)
	if err != nil {
		return nil, err
	}

	if token == "" || user == nil || role == "" || role != user.Role || !ValidRole(role) {
		if token != "" || user != nil || role != "" {
			// Partial or corrupt persisted session; recover as absent.
			_ = st.ClearAll(ctx)
		}
		return c, nil
	}

	c.token = token
	c.user = user
	c.role = role
	c.authenticated = true
	return c, nil
}

// Snapshot returns a copy of the current state.
func (c *Container) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Container) snapshotLocked() Session {
	return Session{
		Token:         c.token,
		User:          c.user.Clone(),
		Role:          c.role,
		Authenticated: c.authenticated,
		Loading:       c.loading,
		Err:           c.errMsg,
	}
}

// Subscribe registers fn for change notifications and returns a cancel
// function. Notifications are delivered synchronously, outside the
// container lock, in mutation order per subscriber.
func (c *Container) Subscribe(fn func(Event)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Container) notifyLocked(t EventType) func() {
	event := Event{Type: t, Session: c.snapshotLocked()}
	fns := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	return func() {
		for _, fn := range fns {
			fn(event)
		}
	}
}

// Login writes the verified user+token pair through the store, then
// flips the in-memory state to fully present. The store writes complete
// before Authenticated flips, so any reader observing Authenticated sees
// consistent persisted data. A store failure mid-write rolls the store
// back to fully absent and leaves the in-memory state untouched.
func (c *Container) Login(ctx context.Context, user *store.UserRecord, token string) error {
	if user == nil {
		return ErrNilUser
	}
	if token == "" {
		return ErrEmptyToken
	}
	if !ValidRole(user.Role) {
		return fmt.Errorf("%w: %q", ErrInvalidRole, user.Role)
	}

	c.writeMu.Lock()
	if err := c.persistLogin(ctx, user, token); err != nil {
		c.writeMu.Unlock()
		return err
	}

	c.mu.Lock()
	c.user = user.Clone()
	c.token = token
	c.role = user.Role
	c.authenticated = true
	c.errMsg = ""
	notify := c.notifyLocked(EventLogin)
	c.mu.Unlock()
	c.writeMu.Unlock()

	notify()
	return nil
}

func (c *Container) persistLogin(ctx context.Context, user *store.UserRecord, token string) error {
	err := c.store.SetUser(ctx, user)
	if err == nil {
		err = c.store.SetToken(ctx, token)
	}
	if err == nil {
		err = c.store.SetRole(ctx, user.Role)
	}
	if err != nil {
		// No partial session may persist across a write.
		_ = c.store.ClearAll(ctx)
		return err
	}
	return nil
}

// Logout clears the store and resets the in-memory state to fully
// absent. The in-memory reset happens even when the store clear fails;
// local logout is never blocked by storage trouble.
func (c *Container) Logout(ctx context.Context) error {
	return c.clear(ctx, EventLogout)
}

// HandleUnauthorized is the 401 contract for API interceptors: it clears
// the session exactly like Logout but emits a distinct event so callers
// can redirect to login without showing an error banner.
func (c *Container) HandleUnauthorized(ctx context.Context) error {
	return c.clear(ctx, EventUnauthorized)
}

func (c *Container) clear(ctx context.Context, t EventType) error {
	c.writeMu.Lock()
	clearErr := c.store.ClearAll(ctx)

	c.mu.Lock()
	c.user = nil
	c.token = ""
	c.role = ""
	c.authenticated = false
	c.errMsg = ""
	notify := c.notifyLocked(t)
	c.mu.Unlock()
	c.writeMu.Unlock()

	notify()
	return clearErr
}

// UpdateUser shallow-merges update into the cached user record and
// re-persists it. Fields left nil are retained. An update that would
// change the role is rejected as a no-op with ErrRoleImmutable.
func (c *Container) UpdateUser(ctx context.Context, update UserUpdate) error {
	c.writeMu.Lock()

	c.mu.Lock()
	if !c.authenticated || c.user == nil {
		c.mu.Unlock()
		c.writeMu.Unlock()
		return ErrNotAuthenticated
	}
	if update.Role != nil && *update.Role != c.role {
		c.mu.Unlock()
		c.writeMu.Unlock()
		return ErrRoleImmutable
	}

	merged := c.user.Clone()
	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.Avatar != nil {
		merged.Avatar = *update.Avatar
	}
	if update.Bio != nil {
		merged.Bio = *update.Bio
	}
	if update.Location != nil {
		merged.Location = *update.Location
	}
	if update.Phone != nil {
		merged.Phone = *update.Phone
	}
	if update.University != nil {
		merged.University = *update.University
	}
	c.mu.Unlock()

	if err := c.store.SetUser(ctx, merged); err != nil {
		c.writeMu.Unlock()
		return err
	}

	c.mu.Lock()
	c.user = merged
	notify := c.notifyLocked(EventUserUpdated)
	c.mu.Unlock()
	c.writeMu.Unlock()

	notify()
	return nil
}

// ReplaceUser swaps the cached user record for a freshly fetched one.
// The incoming role must equal the cached role; a backend-side role
// change is forced through re-authentication instead.
func (c *Container) ReplaceUser(ctx context.Context, user *store.UserRecord) error {
	if user == nil {
		return ErrNilUser
	}

	c.writeMu.Lock()

	c.mu.Lock()
	if !c.authenticated {
		c.mu.Unlock()
		c.writeMu.Unlock()
		return ErrNotAuthenticated
	}
	if user.Role != c.role {
		c.mu.Unlock()
		c.writeMu.Unlock()
		return ErrRoleImmutable
	}
	c.mu.Unlock()

	if err := c.store.SetUser(ctx, user); err != nil {
		c.writeMu.Unlock()
		return err
	}

	c.mu.Lock()
	c.user = user.Clone()
	notify := c.notifyLocked(EventUserUpdated)
	c.mu.Unlock()
	c.writeMu.Unlock()

	notify()
	return nil
}

// SetLoading sets the transient in-flight flag. Not persisted.
func (c *Container) SetLoading(loading bool) {
	c.mu.Lock()
	if c.loading == loading {
		c.mu.Unlock()
		return
	}
	c.loading = loading
	notify := c.notifyLocked(EventLoading)
	c.mu.Unlock()

	notify()
}

// SetError sets the transient error message shown inline by auth views.
// An empty message clears it. Not persisted.
func (c *Container) SetError(msg string) {
	c.mu.Lock()
	if c.errMsg == msg {
		c.mu.Unlock()
		return
	}
	c.errMsg = msg
	notify := c.notifyLocked(EventError)
	c.mu.Unlock()

	notify()
}
