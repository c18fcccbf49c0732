// Package guard decides, per navigation, whether a session may see a
// protected view. The decision core is a pure function of (session,
// allowed roles, requested path): no side effects, no network calls,
// evaluated synchronously on every route transition.
//
// A role mismatch is a silent redirect to the role's home route, not an
// error page: an authenticated user on a foreign-role route is assumed
// to hold a stale bookmark, not to be attacking. This guard is a UX
// convenience only; the backend enforces the same rule independently and
// nothing here is a security boundary.
//
// [Middleware] adapts the decision to net/http for gateways that serve
// the dashboard shell.
package guard
