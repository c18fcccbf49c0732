package api

import "context"

// ReflectionService fetches AI-generated reflections. The content is an
// opaque backend output; this service never computes or rewrites it.
type ReflectionService struct {
	client *Client
}

func (s *ReflectionService) Get(ctx context.Context) (*Reflection, error) {
	var reflection Reflection
	if err := s.client.get(ctx, "/reflections", &reflection); err != nil {
		return nil, err
	}
	return &reflection, nil
}

// Generate asks the backend to produce a fresh reflection bundle.
func (s *ReflectionService) Generate(ctx context.Context) (*Reflection, error) {
	var reflection Reflection
	if err := s.client.post(ctx, "/reflections/generate", nil, &reflection); err != nil {
		return nil, err
	}
	return &reflection, nil
}

func (s *ReflectionService) Daily(ctx context.Context) (*DailyReflection, error) {
	var daily DailyReflection
	if err := s.client.get(ctx, "/reflections/daily", &daily); err != nil {
		return nil, err
	}
	return &daily, nil
}

func (s *ReflectionService) Weekly(ctx context.Context) (*WeeklyInsight, error) {
	var weekly WeeklyInsight
	if err := s.client.get(ctx, "/reflections/weekly", &weekly); err != nil {
		return nil, err
	}
	return &weekly, nil
}

func (s *ReflectionService) LearningPath(ctx context.Context) (*LearningPath, error) {
	var path LearningPath
	if err := s.client.get(ctx, "/reflections/learning-path", &path); err != nil {
		return nil, err
	}
	return &path, nil
}

func (s *ReflectionService) RiskAssessment(ctx context.Context) (*RiskAssessment, error) {
	var risk RiskAssessment
	if err := s.client.get(ctx, "/reflections/risk-assessment", &risk); err != nil {
		return nil, err
	}
	return &risk, nil
}
