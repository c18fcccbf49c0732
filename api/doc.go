// Package api is the thin REST layer over the MentorSphere backend.
// Every service is a stateless request/response pair: the [Client]
// attaches the bearer token from the persisted session store to each
// request, decodes the backend's {success, data, error} envelope, and
// surfaces server error messages verbatim without inspecting them.
//
// A 401 on any request invokes the configured unauthorized hook (session
// clear) before returning [ErrUnauthorized]. This is the session-expiry
// contract shared with explicit logout.
//
// # What this package must NOT do
//
//   - Parse or validate token contents (tokens are opaque credentials).
//   - Compute risk scores or reflection text (opaque server outputs,
//     shape only).
//   - Mutate session state beyond the unauthorized hook.
package api
