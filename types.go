package mentorsphere

import (
	"io"

	"github.com/mentorsphere/mentorsphere-go/internal/events"
	"github.com/mentorsphere/mentorsphere-go/internal/flows"
	"github.com/mentorsphere/mentorsphere-go/internal/metrics"
	"github.com/mentorsphere/mentorsphere-go/session"
	"github.com/mentorsphere/mentorsphere-go/store"
)

// Role tags form a closed set; see the session package.
const (
	RoleStudent = session.RoleStudent
	RoleMentor  = session.RoleMentor
)

// UserRecord is the cached user identity; see [store.UserRecord].
type UserRecord = store.UserRecord

// Session is an immutable snapshot of the container state.
type Session = session.Session

// SessionEvent is a synchronous container change notification delivered
// to [Client.Subscribe] callbacks.
type SessionEvent = session.Event

// UserUpdate is a shallow partial update of the cached user record.
type UserUpdate = session.UserUpdate

// LoginResult is returned by [Client.Login] and [Client.Register]. It
// carries the verified pair plus the role-based landing path; the SDK
// never navigates on the caller's behalf.
type LoginResult = flows.LoginResult

// RegisterRequest is the input for [Client.Register].
type RegisterRequest = flows.RegisterRequest

// ProfileChange is the editable, non-identity slice of the user record
// accepted by [Client.UpdateProfile].
type ProfileChange = flows.ProfileChange

// Event is a structured session lifecycle record emitted to the
// configured [Sink].
type Event = events.Event

// Sink receives [Event] values from the client's event dispatcher.
type Sink = events.Sink

// NoOpSink is a [Sink] that silently discards all events.
type NoOpSink = events.NoOpSink

// ChannelSink is a buffered channel-based [Sink].
type ChannelSink = events.ChannelSink

// JSONWriterSink is a [Sink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = events.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return events.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return events.NewJSONWriterSink(w)
}

// MetricID identifies a specific counter in the in-process metrics.
type MetricID = metrics.ID

const (
	MetricLoginSuccess          = metrics.LoginSuccess
	MetricLoginFailure          = metrics.LoginFailure
	MetricLoginRejectedInFlight = metrics.LoginRejectedInFlight
	MetricRegisterSuccess       = metrics.RegisterSuccess
	MetricRegisterFailure       = metrics.RegisterFailure
	MetricLogout                = metrics.Logout
	MetricUnauthorizedClear     = metrics.UnauthorizedClear
	MetricUserRefresh           = metrics.UserRefresh
	MetricProfileUpdate         = metrics.ProfileUpdate
)

// MetricsSnapshot is a point-in-time deep copy of all counters.
type MetricsSnapshot = metrics.Snapshot
