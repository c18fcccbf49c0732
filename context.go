package mentorsphere

import (
	"context"

	"github.com/mentorsphere/mentorsphere-go/api"
)

// WithRequestID attaches an explicit request ID to ctx for API call
// tracing. Without one, each request gets a fresh UUID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return api.WithRequestID(ctx, id)
}
