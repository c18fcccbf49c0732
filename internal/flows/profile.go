package flows

import (
	"context"

	"github.com/mentorsphere/mentorsphere-go/store"
)

// ProfileChange is the flow-local editable slice of the user record.
// Identity fields (email, role) are deliberately absent.
type ProfileChange struct {
	Name       string
	Bio        string
	Location   string
	Phone      string
	University string
}

// ProfileDeps captures user-refresh and profile-edit dependencies.
type ProfileDeps struct {
	// FetchUser is the optional getCurrentUser refresh call.
	FetchUser func(ctx context.Context) (*store.UserRecord, error)
	// UpdateRemote pushes a profile edit and returns the updated record.
	UpdateRemote func(ctx context.Context, change ProfileChange) (*store.UserRecord, error)
	// ReplaceUser swaps the cached record; it enforces the role
	// invariant and rejects a record whose role disagrees.
	ReplaceUser func(ctx context.Context, user *store.UserRecord) error
}

// RunRefreshUser revalidates the cached user against the backend. The
// replace step fails with the container's role-invariant error when the
// backend reports a different role, forcing re-authentication instead of
// a silent role switch.
func RunRefreshUser(ctx context.Context, deps ProfileDeps) (*store.UserRecord, error) {
	user, err := deps.FetchUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := deps.ReplaceUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RunUpdateProfile pushes the edit and caches the backend's view of the
// merged record.
func RunUpdateProfile(ctx context.Context, change ProfileChange, deps ProfileDeps) (*store.UserRecord, error) {
	user, err := deps.UpdateRemote(ctx, change)
	if err != nil {
		return nil, err
	}
	if err := deps.ReplaceUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
