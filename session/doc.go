// Package session holds the live authenticated identity for the current
// client process: bearer token, cached user record, and role tag, plus
// transient loading/error flags for in-flight auth operations.
//
// A [Container] is a single process-wide instance created once at startup
// and injected into the components that need it; it is never an ambient
// global. It rehydrates from a [store.Store] on construction and writes
// every mutation through to the store, so state survives a restart
// without a network round-trip.
//
// # Invariants
//
//   - Authenticated is true iff the token is non-empty.
//   - The session is fully absent (token, user, role all empty) or fully
//     present, with role always equal to user.Role. No partial state may
//     persist across a write: store writes complete before the in-memory
//     authenticated flag flips, and a failed write rolls the store back
//     to fully absent.
//   - Role is derived from the user record, never set independently. A
//     role change must go through re-authentication, not UpdateUser.
//
// The container performs no credential checking and no network I/O;
// Login must only be called with a user+token pair already verified by
// the external authentication service.
package session
