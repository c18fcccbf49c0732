package api

import (
	"context"
	"net/url"
	"strconv"
)

// CourseService covers the course catalogue and per-module progress.
type CourseService struct {
	client *Client
}

func (s *CourseService) List(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := s.client.get(ctx, "/courses", &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *CourseService) Get(ctx context.Context, courseID string) (*Course, error) {
	var course Course
	if err := s.client.get(ctx, "/courses/"+url.PathEscape(courseID), &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *CourseService) Modules(ctx context.Context, courseID string) ([]Module, error) {
	var modules []Module
	if err := s.client.get(ctx, "/courses/"+url.PathEscape(courseID)+"/modules", &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

// UpdateModuleStatus moves a module through locked/in-progress/completed
// and records an optional quiz score.
func (s *CourseService) UpdateModuleStatus(ctx context.Context, courseID string, moduleID int, update ModuleStatusUpdate) error {
	path := "/courses/" + url.PathEscape(courseID) + "/modules/" + strconv.Itoa(moduleID)
	return s.client.put(ctx, path, update, nil)
}

func (s *CourseService) QuizSummary(ctx context.Context, courseID string) (*QuizSummary, error) {
	var summary QuizSummary
	if err := s.client.get(ctx, "/courses/"+url.PathEscape(courseID)+"/quiz-summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
