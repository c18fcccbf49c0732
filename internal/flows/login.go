package flows

import (
	"context"

	"github.com/mentorsphere/mentorsphere-go/store"
)

// LoginResult carries the verified pair plus the role-based landing
// path. Navigation stays with the caller; the flow only computes the
// destination.
type LoginResult struct {
	User       *store.UserRecord
	Token      string
	RedirectTo string
}

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	// Authenticate is the external authentication service call.
	Authenticate func(ctx context.Context, email, password string) (*store.UserRecord, string, error)
	// Persist writes the verified pair through the session container.
	Persist func(ctx context.Context, user *store.UserRecord, token string) error
	// SetLoading and SetError drive the container's transient flags.
	SetLoading func(bool)
	SetError   func(string)
	// HomePath maps a role to its landing view.
	HomePath func(role string) string
}

// RunLogin performs one login attempt. A failed attempt sets the error
// flag with the server's message and leaves session state untouched; a
// network response arriving after the initiating view is gone is still
// applied, since the container outlives any view.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) (*LoginResult, error) {
	deps.SetLoading(true)
	defer deps.SetLoading(false)
	deps.SetError("")

	user, token, err := deps.Authenticate(ctx, email, password)
	if err != nil {
		deps.SetError(err.Error())
		return nil, err
	}

	if err := deps.Persist(ctx, user, token); err != nil {
		deps.SetError(err.Error())
		return nil, err
	}

	return &LoginResult{
		User:       user,
		Token:      token,
		RedirectTo: deps.HomePath(user.Role),
	}, nil
}

// RegisterRequest is the flow-local signup payload.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// RegisterDeps captures registration flow dependencies.
type RegisterDeps struct {
	CreateAccount func(ctx context.Context, req RegisterRequest) (*store.UserRecord, string, error)
	Persist       func(ctx context.Context, user *store.UserRecord, token string) error
	SetLoading    func(bool)
	SetError      func(string)
	HomePath      func(role string) string
}

// RunRegister mirrors RunLogin for account creation: the backend issues
// the same user+token pair shape on success.
func RunRegister(ctx context.Context, req RegisterRequest, deps RegisterDeps) (*LoginResult, error) {
	deps.SetLoading(true)
	defer deps.SetLoading(false)
	deps.SetError("")

	user, token, err := deps.CreateAccount(ctx, req)
	if err != nil {
		deps.SetError(err.Error())
		return nil, err
	}

	if err := deps.Persist(ctx, user, token); err != nil {
		deps.SetError(err.Error())
		return nil, err
	}

	return &LoginResult{
		User:       user,
		Token:      token,
		RedirectTo: deps.HomePath(user.Role),
	}, nil
}
