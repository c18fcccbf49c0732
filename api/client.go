package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mentorsphere/mentorsphere-go/store"
)

var (
	// ErrUnauthorized matches any 401 rejection via errors.Is. When the
	// response envelope carries a message, callers receive an [*Error]
	// wrapping this sentinel so the server's text survives. The local
	// session has already been cleared via the unauthorized hook by the
	// time callers see it.
	ErrUnauthorized = errors.New("api: unauthorized")
	// ErrUnavailable wraps transport-level failures.
	ErrUnavailable = errors.New("api: backend unavailable")
)

// Error carries a backend rejection. Message is the server's text,
// surfaced verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api: request failed with status %d", e.Status)
}

// Unwrap maps a 401 rejection onto ErrUnauthorized so callers can match
// the sentinel with errors.Is while Error() stays the server's text.
func (e *Error) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// requestIDHeader matches the backend's tracing header.
const requestIDHeader = "X-Request-ID"

type requestIDContextKey struct{}

// WithRequestID attaches an explicit request ID to ctx. Without one,
// each request gets a fresh UUID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

// Options configures a [Client].
type Options struct {
	// BaseURL is the backend root, e.g. "http://localhost:3001/api".
	BaseURL string
	// Timeout applies when HTTPClient is nil.
	Timeout time.Duration
	// HTTPClient overrides the default transport.
	HTTPClient *http.Client
	// Store supplies the bearer token per request.
	Store store.Store
	// OnUnauthorized is invoked once per 401 response, before the
	// rejection is returned to the caller.
	OnUnauthorized func(ctx context.Context)
	// Logger defaults to a discard logger.
	Logger *slog.Logger
}

// Client is the HTTP client shared by all services.
type Client struct {
	baseURL        *url.URL
	httpClient     *http.Client
	store          store.Store
	onUnauthorized func(ctx context.Context)
	logger         *slog.Logger

	Auth          *AuthService
	User          *UserService
	Courses       *CourseService
	Student       *StudentService
	Mentor        *MentorService
	Reflections   *ReflectionService
	Interventions *InterventionService
}

// NewClient validates opts and wires the service set.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("api: base URL required")
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("api: invalid base URL: %w", err)
	}
	if opts.Store == nil {
		return nil, errors.New("api: session store required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Client{
		baseURL:        base,
		httpClient:     httpClient,
		store:          opts.Store,
		onUnauthorized: opts.OnUnauthorized,
		logger:         logger,
	}
	c.Auth = &AuthService{client: c}
	c.User = &UserService{client: c}
	c.Courses = &CourseService{client: c}
	c.Student = &StudentService{client: c}
	c.Mentor = &MentorService{client: c}
	c.Reflections = &ReflectionService{client: c}
	c.Interventions = &InterventionService{client: c}
	return c, nil
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// do executes one request. body is JSON-encoded when non-nil; out, when
// non-nil, receives the envelope's data payload.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return fmt.Errorf("api: invalid path %q: %w", path, err)
	}
	endpoint := c.baseURL.JoinPath(ref.Path)
	endpoint.RawQuery = ref.RawQuery

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), payload)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := requestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(requestIDHeader, requestID)

	// Bearer interceptor: the persisted store is the token source for
	// every authenticated call.
	token, err := c.store.GetToken(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Debug("request rejected by backend, clearing locally",
			"method", method, "path", path, "request_id", requestID)
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		// The backend distinguishes bad credentials from expired
		// sessions only through the envelope text, so keep it.
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil {
			msg := env.Error
			if msg == "" {
				msg = env.Message
			}
			if msg != "" {
				return &Error{Status: resp.StatusCode, Message: msg}
			}
		}
		return ErrUnauthorized
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &Error{Status: resp.StatusCode}
		}
		return fmt.Errorf("%w: malformed response", ErrUnavailable)
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: malformed response payload", ErrUnavailable)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}
