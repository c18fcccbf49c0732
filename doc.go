// Package mentorsphere is the Go client for the MentorSphere
// learning-mentorship platform. It implements the client-side session
// and access-control core (persisted session store, process-wide
// session state container, per-navigation route guard) plus thin REST
// services for the dashboard surfaces: courses, student and mentor
// dashboards, AI reflections, interventions, and profile.
//
// The package is designed around one [Client] built once at startup
// through [Builder.Build]; Client methods are safe to call from
// multiple goroutines.
//
// # Architecture boundaries
//
// mentorsphere is the public surface. It exposes [Client], [Builder],
// [Config], sentinel errors, and value types. Flow orchestration and
// the event dispatch pipeline live under internal/ and are never
// exported. Persistence backends, the session container, and the route
// guard are the sub-packages store, session, and guard.
//
// # What this package must NOT do
//
//   - Parse, validate, or otherwise inspect bearer tokens; the token is
//     an opaque credential owned by the backend.
//   - Verify credentials: Login sends them to the external
//     authentication service and trusts its answer.
//   - Compute risk scores or reflection text; those are opaque server
//     outputs consumed shape-only.
//   - Perform navigation: guard decisions and login results carry
//     destination paths, and acting on them belongs to the caller.
package mentorsphere
