package mentorsphere

import (
	"errors"

	"github.com/mentorsphere/mentorsphere-go/api"
	"github.com/mentorsphere/mentorsphere-go/session"
	"github.com/mentorsphere/mentorsphere-go/store"
)

var (
	// ErrClientNotReady is returned when a Client method runs before
	// Build completed.
	ErrClientNotReady = errors.New("client not initialized")
	// ErrAuthInFlight rejects a login/register attempt while another is
	// outstanding. Attempts are rejected, not queued, so writes to the
	// persisted store never interleave.
	ErrAuthInFlight = errors.New("authentication attempt already in flight")

	// ErrUnauthorized re-exports the API layer's 401 sentinel.
	ErrUnauthorized = api.ErrUnauthorized
	// ErrBackendUnavailable re-exports the API transport sentinel.
	ErrBackendUnavailable = api.ErrUnavailable
	// ErrStoreUnavailable re-exports the persistence backend sentinel.
	ErrStoreUnavailable = store.ErrStoreUnavailable

	// ErrNilUser re-exports the container's fail-fast sentinel for a
	// missing user record.
	ErrNilUser = session.ErrNilUser
	// ErrEmptyToken re-exports the container's fail-fast sentinel for a
	// missing token.
	ErrEmptyToken = session.ErrEmptyToken
	// ErrInvalidRole re-exports the closed-role-set violation sentinel.
	ErrInvalidRole = session.ErrInvalidRole
	// ErrRoleImmutable re-exports the role-invariant violation sentinel.
	ErrRoleImmutable = session.ErrRoleImmutable
	// ErrNotAuthenticated re-exports the absent-session sentinel.
	ErrNotAuthenticated = session.ErrNotAuthenticated
)
