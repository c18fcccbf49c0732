// Package store provides durable key-value persistence for exactly three
// session entries: the bearer token, the cached user record, and the role
// tag. A [Store] survives process restarts so the session can be
// rehydrated without a network round-trip.
//
// # Contract
//
//   - Absent entries read as zero values ("" / nil) with a nil error.
//   - Malformed persisted user data reads as absent, never as an error;
//     corruption is recovered silently by treating the session as logged
//     out.
//   - Backend failures wrap [ErrStoreUnavailable].
//   - ClearAll removes all three entries atomically with respect to
//     subsequent reads: no reader may observe a partially cleared store
//     after it returns.
//
// # What this package must NOT do
//
//   - Inspect, parse, or validate token contents.
//   - Perform network calls other than its own storage backend.
//   - Hold derived state: the role entry is written by the session
//     container, which owns the role == user.role invariant.
package store
