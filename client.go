package mentorsphere

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mentorsphere/mentorsphere-go/api"
	"github.com/mentorsphere/mentorsphere-go/guard"
	"github.com/mentorsphere/mentorsphere-go/internal/events"
	"github.com/mentorsphere/mentorsphere-go/internal/flows"
	"github.com/mentorsphere/mentorsphere-go/internal/metrics"
	"github.com/mentorsphere/mentorsphere-go/session"
	"github.com/mentorsphere/mentorsphere-go/store"
)

// Client is the MentorSphere session client. Build one per process via
// [Builder.Build]; all methods are safe for concurrent use.
type Client struct {
	cfg       Config
	store     store.Store
	container *session.Container
	api       *api.Client
	guard     guard.Guard
	flows     flows.Service
	logger    *slog.Logger

	dispatcher *events.Dispatcher
	metrics    *metrics.Metrics
	ownedRedis *redis.Client

	// authInFlight enforces single-flight login/register. Concurrent
	// attempts are rejected, never queued, so store writes from two
	// attempts cannot interleave.
	authInFlight atomic.Bool
}

// ready rejects use of a zero Client that skipped Builder.Build.
func (c *Client) ready() error {
	if c == nil || c.container == nil || !c.flows.Initialized() {
		return ErrClientNotReady
	}
	return nil
}

// Login authenticates against the backend and, on success, persists the
// session and returns the role-based landing path. A second attempt
// while one is outstanding fails with [ErrAuthInFlight].
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if !c.authInFlight.CompareAndSwap(false, true) {
		c.metrics.Inc(metrics.LoginRejectedInFlight)
		return nil, ErrAuthInFlight
	}
	defer c.authInFlight.Store(false)

	result, err := c.flows.Login(ctx, email, password)
	if err != nil {
		c.metrics.Inc(metrics.LoginFailure)
		c.emit(ctx, session.EventLogin, false, err)
		return nil, err
	}

	c.metrics.Inc(metrics.LoginSuccess)
	c.emit(ctx, session.EventLogin, true, nil)
	c.logger.Info("login succeeded", "user_id", result.User.ID, "role", result.User.Role)
	return result, nil
}

// Register creates an account and signs it in, sharing the login
// single-flight slot.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if !c.authInFlight.CompareAndSwap(false, true) {
		c.metrics.Inc(metrics.LoginRejectedInFlight)
		return nil, ErrAuthInFlight
	}
	defer c.authInFlight.Store(false)

	result, err := c.flows.Register(ctx, req)
	if err != nil {
		c.metrics.Inc(metrics.RegisterFailure)
		c.emit(ctx, session.EventLogin, false, err)
		return nil, err
	}

	c.metrics.Inc(metrics.RegisterSuccess)
	c.emit(ctx, session.EventLogin, true, nil)
	return result, nil
}

// Logout clears the session locally and tells the backend best effort.
// A dead backend never blocks logout; only a store failure is returned,
// and even then the in-memory session is already gone.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.ready(); err != nil {
		return err
	}
	err := c.flows.Logout(ctx)
	c.metrics.Inc(metrics.Logout)
	c.emit(ctx, session.EventLogout, err == nil, err)
	return err
}

// RefreshUser revalidates the cached user against the backend. A role
// change on the backend fails with [ErrRoleImmutable] and leaves the
// cache untouched.
func (c *Client) RefreshUser(ctx context.Context) (*UserRecord, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	user, err := c.flows.RefreshUser(ctx)
	if err != nil {
		return nil, err
	}
	c.metrics.Inc(metrics.UserRefresh)
	return user, nil
}

// UpdateProfile pushes a profile edit to the backend and caches the
// merged record it returns.
func (c *Client) UpdateProfile(ctx context.Context, change ProfileChange) (*UserRecord, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	user, err := c.flows.UpdateProfile(ctx, change)
	if err != nil {
		c.emit(ctx, session.EventUserUpdated, false, err)
		return nil, err
	}
	c.metrics.Inc(metrics.ProfileUpdate)
	c.emit(ctx, session.EventUserUpdated, true, nil)
	return user, nil
}

// UpdateUser shallow-merges a local-only update into the cached user
// record and re-persists it, without a backend round trip.
func (c *Client) UpdateUser(ctx context.Context, update UserUpdate) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := c.container.UpdateUser(ctx, update); err != nil {
		return err
	}
	c.metrics.Inc(metrics.ProfileUpdate)
	c.emit(ctx, session.EventUserUpdated, true, nil)
	return nil
}

// HandleUnauthorized applies the 401 contract for transports outside the
// bundled API client: clear the session locally and silently.
func (c *Client) HandleUnauthorized(ctx context.Context) error {
	err := c.container.HandleUnauthorized(ctx)
	c.metrics.Inc(metrics.UnauthorizedClear)
	c.emit(ctx, session.EventUnauthorized, err == nil, err)
	return err
}

// handleUnauthorized is the hook wired into the API client's 401 path.
func (c *Client) handleUnauthorized(ctx context.Context) {
	if err := c.HandleUnauthorized(ctx); err != nil {
		c.logger.Warn("store clear after 401 failed", "error", err)
	}
}

// Session returns a snapshot of the current session state.
func (c *Client) Session() Session {
	return c.container.Snapshot()
}

// Subscribe registers fn for session change notifications and returns a
// cancel function. Delivery is synchronous and in mutation order.
func (c *Client) Subscribe(fn func(SessionEvent)) func() {
	return c.container.Subscribe(fn)
}

// Guard returns the route guard built from the configured routes.
func (c *Client) Guard() guard.Guard {
	return c.guard
}

// Decide evaluates one navigation against the current session.
func (c *Client) Decide(allowedRoles []string, path string) guard.Decision {
	return c.guard.Decide(c.container.Snapshot(), allowedRoles, path)
}

// API exposes the REST services (courses, dashboards, reflections,
// interventions, profile) sharing this client's session.
func (c *Client) API() *api.Client {
	return c.api
}

// Store exposes the underlying session store.
func (c *Client) Store() store.Store {
	return c.store
}

// Metrics returns a point-in-time copy of the operation counters.
func (c *Client) Metrics() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// EventsDropped reports how many session events the dispatcher discarded
// because its buffer was full.
func (c *Client) EventsDropped() uint64 {
	return c.dispatcher.Dropped()
}

// Close drains the event dispatcher and releases any Redis connection
// the builder opened. The session store contents are left intact.
func (c *Client) Close() error {
	c.dispatcher.Close()
	if c.ownedRedis != nil {
		return c.ownedRedis.Close()
	}
	return nil
}

// emit forwards one session lifecycle record to the event dispatcher.
func (c *Client) emit(ctx context.Context, t session.EventType, success bool, opErr error) {
	if c.dispatcher == nil {
		return
	}
	snap := c.container.Snapshot()
	event := events.Event{
		Timestamp: time.Now().UTC(),
		EventType: string(t),
		Role:      snap.Role,
		Success:   success,
	}
	if snap.User != nil {
		event.UserID = snap.User.ID
	}
	if opErr != nil {
		event.Error = opErr.Error()
	}
	c.dispatcher.Emit(ctx, event)
}
