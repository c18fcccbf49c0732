package api

import (
	"context"
	"net/url"

	"github.com/mentorsphere/mentorsphere-go/store"
)

// UserService covers profile and settings for the signed-in user.
type UserService struct {
	client *Client
}

func (s *UserService) Profile(ctx context.Context) (*store.UserRecord, error) {
	var user store.UserRecord
	if err := s.client.get(ctx, "/user/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile edits non-identity fields only; role and email changes
// are not accepted here.
func (s *UserService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*store.UserRecord, error) {
	var user store.UserRecord
	if err := s.client.put(ctx, "/user/profile", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, avatarURL string) error {
	body := map[string]string{"avatar": avatarURL}
	return s.client.put(ctx, "/user/avatar", body, nil)
}

func (s *UserService) Settings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := s.client.get(ctx, "/user/settings", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings writes one settings section (notifications, appearance,
// privacy, learning).
func (s *UserService) UpdateSettings(ctx context.Context, section string, payload any) error {
	return s.client.put(ctx, "/user/settings/"+url.PathEscape(section), payload, nil)
}

// ChangePassword sends both passwords to the backend for verification.
// No checking happens client-side.
func (s *UserService) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	return s.client.put(ctx, "/user/password", body, nil)
}
