package mentorsphere

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can spell timeouts as
// "10s" or "1m30s".
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %v", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// StorageBackend selects the persistence backend for the session store.
type StorageBackend string

const (
	// BackendMemory keeps the session in process memory only. Sessions do
	// not survive restarts; intended for tests and short-lived tools.
	BackendMemory StorageBackend = "memory"
	// BackendFile persists the session as a single JSON document on disk.
	BackendFile StorageBackend = "file"
	// BackendRedis persists the session in Redis.
	BackendRedis StorageBackend = "redis"
)

// Config is the full client configuration. Configure it before Build
// and treat it as immutable afterwards.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Routes  RoutesConfig  `yaml:"routes"`
	Events  EventsConfig  `yaml:"events"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// APIConfig configures the REST transport.
type APIConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

// StorageConfig selects and parameterizes the session store backend.
type StorageConfig struct {
	Backend StorageBackend `yaml:"backend"`
	// Namespace prefixes file names and Redis keys so multiple apps can
	// share a backend without colliding.
	Namespace string `yaml:"namespace"`
	// Dir is the file backend's directory. Empty means the user config
	// directory.
	Dir   string      `yaml:"dir"`
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig is used when Storage.Backend is BackendRedis and no
// client was injected through the builder.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// RoutesConfig overrides the guard's route table.
type RoutesConfig struct {
	Login       string `yaml:"login"`
	StudentHome string `yaml:"student_home"`
	MentorHome  string `yaml:"mentor_home"`
}

// EventsConfig configures the async session event dispatcher.
type EventsConfig struct {
	Enabled    bool `yaml:"enabled"`
	BufferSize int  `yaml:"buffer_size"`
	// DropIfFull makes Emit non-blocking; overflowing events are counted
	// and discarded instead of stalling auth flows.
	DropIfFull bool `yaml:"drop_if_full"`
}

// MetricsConfig toggles the in-process counters.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns the baseline configuration. The base URL has no
// default and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout: Duration(10 * time.Second),
		},
		Storage: StorageConfig{
			Backend:   BackendMemory,
			Namespace: "mentorsphere",
		},
		Routes: RoutesConfig{
			Login:       "/login",
			StudentHome: "/student/dashboard",
			MentorHome:  "/mentor/dashboard",
		},
		Events: EventsConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration for values Build cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.Timeout < 0 {
		return errors.New("api.timeout must not be negative")
	}
	switch c.Storage.Backend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if strings.TrimSpace(c.Storage.Redis.Addr) == "" {
			return errors.New("storage.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Namespace) == "" {
		return errors.New("storage.namespace must not be empty")
	}
	if c.Events.Enabled && c.Events.BufferSize <= 0 {
		return errors.New("events.buffer_size must be positive when events are enabled")
	}
	return nil
}

// LoadConfig reads a YAML config file and overlays it on DefaultConfig,
// so partial files only override what they mention.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(strings.NewReader(string(raw)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}
