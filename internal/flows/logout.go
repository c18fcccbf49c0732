package flows

import "context"

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	// ServerLogout is the best-effort backend invalidation call.
	ServerLogout func(ctx context.Context) error
	// ClearLocal resets the session container and persisted store.
	ClearLocal func(ctx context.Context) error
}

// RunLogout clears the local session unconditionally. The server call is
// best effort: its failure never blocks the local clear and is not
// surfaced.
func RunLogout(ctx context.Context, deps LogoutDeps) error {
	if deps.ServerLogout != nil {
		_ = deps.ServerLogout(ctx)
	}
	return deps.ClearLocal(ctx)
}
