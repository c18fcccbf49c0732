package api

import (
	"context"

	"github.com/mentorsphere/mentorsphere-go/store"
)

// AuthService talks to the external authentication service. It verifies
// nothing itself: credentials go to the backend and the returned
// user+token pair is passed along untouched.
type AuthService struct {
	client *Client
}

// Login exchanges credentials for a verified user+token pair. Rejections
// surface the server's message verbatim via [Error].
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := s.client.post(ctx, "/auth/login", Credentials{Email: email, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account and returns the same pair shape as Login.
func (s *AuthService) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	var result AuthResult
	if err := s.client.post(ctx, "/auth/register", reg, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout asks the backend to invalidate the session. Best effort only:
// callers clear local state regardless of this call's outcome.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.post(ctx, "/auth/logout", nil, nil)
}

// Me fetches the current user record. Optional refresh; the persisted
// store remains the source of truth at startup.
func (s *AuthService) Me(ctx context.Context) (*store.UserRecord, error) {
	var user store.UserRecord
	if err := s.client.get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
