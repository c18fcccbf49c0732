package mentorsphere

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/mentorsphere/mentorsphere-go/api"
	"github.com/mentorsphere/mentorsphere-go/guard"
	"github.com/mentorsphere/mentorsphere-go/internal/events"
	"github.com/mentorsphere/mentorsphere-go/internal/flows"
	"github.com/mentorsphere/mentorsphere-go/internal/metrics"
	"github.com/mentorsphere/mentorsphere-go/session"
	"github.com/mentorsphere/mentorsphere-go/store"
)

// Builder assembles a [Client]. Configure it once during startup; a
// builder is single use.
type Builder struct {
	config Config

	store      store.Store
	redis      redis.UniversalClient
	sink       Sink
	logger     *slog.Logger
	httpClient *http.Client

	built bool
}

// New returns a builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the entire configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL sets the backend root URL.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.API.BaseURL = baseURL
	return b
}

// WithStore injects a session store, overriding the configured backend.
func (b *Builder) WithStore(st store.Store) *Builder {
	b.store = st
	return b
}

// WithRedis injects a Redis client for the redis storage backend
// instead of dialing storage.redis.addr.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithSink sets the session event sink. Events must also be enabled in
// the configuration for the dispatcher to run.
func (b *Builder) WithSink(sink Sink) *Builder {
	b.sink = sink
	return b
}

// WithEventsEnabled toggles the async event dispatcher.
func (b *Builder) WithEventsEnabled(enabled bool) *Builder {
	b.config.Events.Enabled = enabled
	return b
}

// WithLogger sets the structured logger. Nil means discard.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithHTTPClient overrides the API transport, mainly for tests.
func (b *Builder) WithHTTPClient(httpClient *http.Client) *Builder {
	b.httpClient = httpClient
	return b
}

// Build validates the configuration, opens the session store, rehydrates
// the session container from it, and wires the API client, guard, and
// flows. The returned client is ready for concurrent use.
func (b *Builder) Build(ctx context.Context) (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	b.built = true

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	st := b.store
	var ownedRedis *redis.Client
	if st == nil {
		var err error
		st, ownedRedis, err = openStore(cfg.Storage, b.redis)
		if err != nil {
			return nil, err
		}
	}

	container, err := session.New(ctx, st)
	if err != nil {
		if ownedRedis != nil {
			_ = ownedRedis.Close()
		}
		return nil, fmt.Errorf("rehydrate session: %w", err)
	}

	c := &Client{
		cfg:        cfg,
		store:      st,
		container:  container,
		guard:      guard.New(guard.Routes(cfg.Routes)),
		logger:     logger,
		ownedRedis: ownedRedis,
		dispatcher: events.NewDispatcher(events.Config(cfg.Events), b.sink),
		metrics:    metrics.New(metrics.Config(cfg.Metrics)),
	}

	apiClient, err := api.NewClient(api.Options{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout.Std(),
		HTTPClient: b.httpClient,
		Store:      st,
		Logger:     logger.With("component", "api"),
		OnUnauthorized: func(ctx context.Context) {
			c.handleUnauthorized(ctx)
		},
	})
	if err != nil {
		c.Close()
		return nil, err
	}
	c.api = apiClient

	c.flows = flows.New(flows.Deps{
		Login: flows.LoginDeps{
			Authenticate: func(ctx context.Context, email, password string) (*store.UserRecord, string, error) {
				result, err := apiClient.Auth.Login(ctx, email, password)
				if err != nil {
					return nil, "", err
				}
				return result.User, result.Token, nil
			},
			Persist:    container.Login,
			SetLoading: container.SetLoading,
			SetError:   container.SetError,
			HomePath:   c.guard.Routes.Home,
		},
		Register: flows.RegisterDeps{
			CreateAccount: func(ctx context.Context, req flows.RegisterRequest) (*store.UserRecord, string, error) {
				result, err := apiClient.Auth.Register(ctx, api.Registration{
					Name:     req.Name,
					Email:    req.Email,
					Password: req.Password,
					Role:     req.Role,
				})
				if err != nil {
					return nil, "", err
				}
				return result.User, result.Token, nil
			},
			Persist:    container.Login,
			SetLoading: container.SetLoading,
			SetError:   container.SetError,
			HomePath:   c.guard.Routes.Home,
		},
		Logout: flows.LogoutDeps{
			ServerLogout: apiClient.Auth.Logout,
			ClearLocal:   container.Logout,
		},
		Profile: flows.ProfileDeps{
			FetchUser: apiClient.Auth.Me,
			UpdateRemote: func(ctx context.Context, change flows.ProfileChange) (*store.UserRecord, error) {
				return apiClient.User.UpdateProfile(ctx, api.ProfileUpdate{
					Name:       change.Name,
					Bio:        change.Bio,
					Location:   change.Location,
					Phone:      change.Phone,
					University: change.University,
				})
			},
			ReplaceUser: container.ReplaceUser,
		},
	})

	logger.Info("client built",
		"backend", string(cfg.Storage.Backend),
		"authenticated", container.Snapshot().Authenticated)
	return c, nil
}

// openStore builds the configured store backend. The returned redis
// client, when non-nil, is owned by the caller and closed on Close.
func openStore(cfg StorageConfig, injected redis.UniversalClient) (store.Store, *redis.Client, error) {
	switch cfg.Backend {
	case BackendMemory:
		return store.NewMemory(), nil, nil
	case BackendFile:
		dir := cfg.Dir
		if dir == "" {
			base, err := os.UserConfigDir()
			if err != nil {
				return nil, nil, fmt.Errorf("resolve config dir: %w", err)
			}
			dir = filepath.Join(base, cfg.Namespace)
		}
		st, err := store.NewFile(dir, cfg.Namespace)
		if err != nil {
			return nil, nil, err
		}
		return st, nil, nil
	case BackendRedis:
		if injected != nil {
			return store.NewRedis(injected, cfg.Namespace), nil, nil
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return store.NewRedis(client, cfg.Namespace), client, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
