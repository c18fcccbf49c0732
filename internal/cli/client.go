package cli

import (
	"context"
	"log/slog"
	"os"

	mentorsphere "github.com/mentorsphere/mentorsphere-go"
)

// buildClient assembles the SDK client from the resolved configuration.
// Callers own the returned client and must Close it.
func buildClient(ctx context.Context) (*mentorsphere.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	builder := mentorsphere.New().WithConfig(cfg)
	if flagVerbose {
		builder.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	return builder.Build(ctx)
}
