package flows

import (
	"context"

	"github.com/mentorsphere/mentorsphere-go/store"
)

// Service is the centralized flow runner built once by the root client.
type Service struct {
	deps Deps
}

// New returns a flow service with immutable dependency wiring.
func New(deps Deps) Service {
	return Service{deps: deps}
}

// Initialized reports whether the service has been wired with flow deps.
func (s Service) Initialized() bool {
	return s.deps.Login.Authenticate != nil
}

func (s Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	return RunLogin(ctx, email, password, s.deps.Login)
}

func (s Service) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	return RunRegister(ctx, req, s.deps.Register)
}

func (s Service) Logout(ctx context.Context) error {
	return RunLogout(ctx, s.deps.Logout)
}

func (s Service) RefreshUser(ctx context.Context) (*store.UserRecord, error) {
	return RunRefreshUser(ctx, s.deps.Profile)
}

func (s Service) UpdateProfile(ctx context.Context, change ProfileChange) (*store.UserRecord, error) {
	return RunUpdateProfile(ctx, change, s.deps.Profile)
}
