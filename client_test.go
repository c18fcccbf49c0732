package mentorsphere

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mentorsphere/mentorsphere-go/api"
	"github.com/mentorsphere/mentorsphere-go/store"
)

// fakeBackend is a minimal MentorSphere API double speaking the
// {success,data,error} envelope.
type fakeBackend struct {
	mu       sync.Mutex
	users    map[string]string // email -> password
	unauth   bool              // force 401 on authenticated routes
	loginGo  chan struct{}     // when non-nil, login blocks until closed
	loginHit chan struct{}     // signaled when login is reached
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", b.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if b.rejects(w) {
			return
		}
		writeData(w, store.UserRecord{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: "student"})
	})
	mux.HandleFunc("GET /api/courses", func(w http.ResponseWriter, r *http.Request) {
		if b.rejects(w) {
			return
		}
		writeData(w, []api.Course{{ID: "go-101", Title: "Go Basics", Progress: 40}})
	})
	mux.HandleFunc("PUT /api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		if b.rejects(w) {
			return
		}
		var update api.ProfileUpdate
		_ = json.NewDecoder(r.Body).Decode(&update)
		writeData(w, store.UserRecord{
			ID: "u1", Name: "Alice", Email: "alice@example.com", Role: "student",
			Bio: update.Bio,
		})
	})
	return mux
}

func (b *fakeBackend) rejects(w http.ResponseWriter) bool {
	b.mu.Lock()
	unauth := b.unauth
	b.mu.Unlock()
	if unauth {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "token expired"})
	}
	return unauth
}

func (b *fakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	if b.loginHit != nil {
		b.loginHit <- struct{}{}
	}
	if b.loginGo != nil {
		<-b.loginGo
	}

	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "bad payload"})
		return
	}
	if b.users[creds.Email] != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Email atau password salah"})
		return
	}
	writeData(w, api.AuthResult{
		User:  &store.UserRecord{ID: "u1", Name: "Alice", Email: creds.Email, Role: "student"},
		Token: "opaque-token-1",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func newTestBackend(t *testing.T) (*fakeBackend, string) {
	t.Helper()

	backend := &fakeBackend{users: map[string]string{"alice@example.com": "correct-horse"}}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return backend, srv.URL + "/api"
}

func buildTestClient(t *testing.T, baseURL string, st store.Store) *Client {
	t.Helper()

	builder := New().WithBaseURL(baseURL)
	if st != nil {
		builder.WithStore(st)
	}
	client, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestLoginPersistsSessionAndComputesRedirect(t *testing.T) {
	_, baseURL := newTestBackend(t)
	mem := store.NewMemory()
	client := buildTestClient(t, baseURL, mem)
	ctx := context.Background()

	result, err := client.Login(ctx, "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.RedirectTo != "/student/dashboard" {
		t.Fatalf("redirect = %q, want /student/dashboard", result.RedirectTo)
	}

	sess := client.Session()
	if !sess.Authenticated || sess.Role != RoleStudent {
		t.Fatalf("unexpected session: %+v", sess)
	}

	// Persisted through the store, not just in memory.
	token, err := mem.GetToken(ctx)
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if token != "opaque-token-1" {
		t.Fatalf("persisted token = %q", token)
	}

	snap := client.Metrics()
	if snap.Counters[MetricLoginSuccess] != 1 {
		t.Fatalf("login success counter = %d", snap.Counters[MetricLoginSuccess])
	}
}

func TestLoginFailureSetsTransientError(t *testing.T) {
	_, baseURL := newTestBackend(t)
	client := buildTestClient(t, baseURL, nil)

	// Bad credentials come back as a 401 with an envelope message, the
	// same shape the real backend uses.
	_, err := client.Login(context.Background(), "alice@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login rejection")
	}
	if err.Error() != "Email atau password salah" {
		t.Fatalf("error = %q, want the server message verbatim", err.Error())
	}
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("got %v, want an ErrUnauthorized match", err)
	}

	sess := client.Session()
	if sess.Authenticated {
		t.Fatal("failed login must not authenticate")
	}
	if sess.Err != "Email atau password salah" {
		t.Fatalf("session error = %q, want the server message verbatim", sess.Err)
	}
	if sess.Loading {
		t.Fatal("loading flag must reset")
	}

	if got := client.Metrics().Counters[MetricLoginFailure]; got != 1 {
		t.Fatalf("login failure counter = %d", got)
	}
}

func TestConcurrentLoginIsRejectedNotQueued(t *testing.T) {
	backend, baseURL := newTestBackend(t)
	backend.loginGo = make(chan struct{})
	backend.loginHit = make(chan struct{}, 1)
	client := buildTestClient(t, baseURL, nil)
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() {
		_, err := client.Login(ctx, "alice@example.com", "correct-horse")
		firstDone <- err
	}()

	// Wait until the first attempt is inside the backend call.
	select {
	case <-backend.loginHit:
	case <-time.After(5 * time.Second):
		t.Fatal("first login never reached the backend")
	}

	if _, err := client.Login(ctx, "alice@example.com", "correct-horse"); !errors.Is(err, ErrAuthInFlight) {
		t.Fatalf("second login: got %v, want ErrAuthInFlight", err)
	}

	close(backend.loginGo)
	if err := <-firstDone; err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	if !client.Session().Authenticated {
		t.Fatal("first login must win")
	}
	if got := client.Metrics().Counters[MetricLoginRejectedInFlight]; got != 1 {
		t.Fatalf("rejected counter = %d", got)
	}
}

func TestLogoutSucceedsLocallyWithDeadBackend(t *testing.T) {
	_, baseURL := newTestBackend(t)
	mem := store.NewMemory()
	client := buildTestClient(t, baseURL, mem)
	ctx := context.Background()

	if _, err := client.Login(ctx, "alice@example.com", "correct-horse"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// Point a second client with the same store at a dead address.
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL + "/api"
	dead.Close()

	offline := buildTestClient(t, deadURL, mem)
	if err := offline.Logout(ctx); err != nil {
		t.Fatalf("Logout must not surface the server failure, got %v", err)
	}

	if offline.Session().Authenticated {
		t.Fatal("session must be cleared")
	}
	token, _ := mem.GetToken(ctx)
	if token != "" {
		t.Fatal("store must be cleared")
	}
}

func Test401OnAPICallClearsSessionSilently(t *testing.T) {
	backend, baseURL := newTestBackend(t)
	mem := store.NewMemory()
	client := buildTestClient(t, baseURL, mem)
	ctx := context.Background()

	if _, err := client.Login(ctx, "alice@example.com", "correct-horse"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	backend.mu.Lock()
	backend.unauth = true
	backend.mu.Unlock()

	_, err := client.API().Courses.List(ctx)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}

	sess := client.Session()
	if sess.Authenticated {
		t.Fatal("session must be cleared after 401")
	}
	if sess.Err != "" {
		t.Fatalf("401 clear must be silent, error flag = %q", sess.Err)
	}

	token, _ := mem.GetToken(ctx)
	if token != "" {
		t.Fatal("persisted token must be cleared after 401")
	}
	if got := client.Metrics().Counters[MetricUnauthorizedClear]; got != 1 {
		t.Fatalf("unauthorized counter = %d", got)
	}
}

func TestSessionRehydratesAcrossClients(t *testing.T) {
	_, baseURL := newTestBackend(t)
	mem := store.NewMemory()
	client := buildTestClient(t, baseURL, mem)
	ctx := context.Background()

	if _, err := client.Login(ctx, "alice@example.com", "correct-horse"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// A second client over the same store starts authenticated.
	second := buildTestClient(t, baseURL, mem)
	sess := second.Session()
	if !sess.Authenticated || sess.User == nil || sess.User.Email != "alice@example.com" {
		t.Fatalf("rehydrated session = %+v", sess)
	}
}

func TestUpdateProfileRoundTrip(t *testing.T) {
	_, baseURL := newTestBackend(t)
	client := buildTestClient(t, baseURL, nil)
	ctx := context.Background()

	if _, err := client.Login(ctx, "alice@example.com", "correct-horse"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	user, err := client.UpdateProfile(ctx, ProfileChange{Bio: "Learning Go"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if user.Bio != "Learning Go" {
		t.Fatalf("bio = %q", user.Bio)
	}
	if client.Session().User.Bio != "Learning Go" {
		t.Fatal("cached record must carry the backend's merged view")
	}
}

func TestGuardUsesConfiguredRoutes(t *testing.T) {
	_, baseURL := newTestBackend(t)

	cfg := DefaultConfig()
	cfg.API.BaseURL = baseURL
	cfg.Routes.Login = "/signin"

	client, err := New().WithConfig(cfg).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	d := client.Decide(nil, "/courses")
	if d.Target != "/signin" {
		t.Fatalf("target = %q, want /signin", d.Target)
	}
}

func TestSessionEventsReachSink(t *testing.T) {
	_, baseURL := newTestBackend(t)

	sink := NewChannelSink(8)
	client, err := New().
		WithBaseURL(baseURL).
		WithEventsEnabled(true).
		WithSink(sink).
		Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if _, err := client.Login(context.Background(), "alice@example.com", "correct-horse"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	client.Close()

	select {
	case event := <-sink.Events():
		if event.EventType != "login" || !event.Success {
			t.Fatalf("unexpected event: %+v", event)
		}
		if event.UserID != "u1" || event.Role != "student" {
			t.Fatalf("event identity fields: %+v", event)
		}
	default:
		t.Fatal("no event delivered")
	}
}

func TestBuilderRejectsMissingBaseURLAndReuse(t *testing.T) {
	builder := New()
	if _, err := builder.Build(context.Background()); err == nil {
		t.Fatal("expected validation error without base URL")
	}
	if _, err := builder.Build(context.Background()); err == nil {
		t.Fatal("expected single-use builder error")
	}
}
