package api

import (
	"context"
	"net/url"
)

// MentorService serves the mentor-facing views: assigned students with
// their backend-computed risk scores, and notifications.
type MentorService struct {
	client *Client
}

func (s *MentorService) Dashboard(ctx context.Context) (*MentorDashboard, error) {
	var dashboard MentorDashboard
	if err := s.client.get(ctx, "/mentor/dashboard", &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (s *MentorService) Students(ctx context.Context) ([]RiskStudent, error) {
	var students []RiskStudent
	if err := s.client.get(ctx, "/mentor/students", &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (s *MentorService) StudentDetail(ctx context.Context, studentID string) (*RiskStudent, error) {
	var student RiskStudent
	if err := s.client.get(ctx, "/mentor/students/"+url.PathEscape(studentID), &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *MentorService) Notifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	if err := s.client.get(ctx, "/mentor/notifications", &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *MentorService) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return s.client.put(ctx, "/mentor/notifications/"+url.PathEscape(notificationID)+"/read", nil, nil)
}
