package api

import (
	"context"
	"net/url"
)

// InterventionService lets mentors send and track interventions for
// at-risk students.
type InterventionService struct {
	client *Client
}

func (s *InterventionService) List(ctx context.Context) ([]Intervention, error) {
	var interventions []Intervention
	if err := s.client.get(ctx, "/mentor/interventions", &interventions); err != nil {
		return nil, err
	}
	return interventions, nil
}

func (s *InterventionService) Create(ctx context.Context, req InterventionRequest) (*Intervention, error) {
	var created Intervention
	if err := s.client.post(ctx, "/mentor/interventions", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *InterventionService) Update(ctx context.Context, interventionID string, update InterventionUpdate) error {
	return s.client.put(ctx, "/mentor/interventions/"+url.PathEscape(interventionID), update, nil)
}
