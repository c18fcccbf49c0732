package api

import (
	"context"
	"net/url"
)

// StudentService serves the student-facing dashboard views.
type StudentService struct {
	client *Client
}

func (s *StudentService) Dashboard(ctx context.Context) (*StudentDashboard, error) {
	var dashboard StudentDashboard
	if err := s.client.get(ctx, "/student/dashboard", &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (s *StudentService) Courses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := s.client.get(ctx, "/student/courses", &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Activity returns the learning activity log. period is a backend filter
// such as "week" or "month"; empty means the backend default.
func (s *StudentService) Activity(ctx context.Context, period string) ([]ActivityLog, error) {
	path := "/student/activity"
	if period != "" {
		path += "?period=" + url.QueryEscape(period)
	}
	var logs []ActivityLog
	if err := s.client.get(ctx, path, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
