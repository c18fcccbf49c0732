package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestFile(t *testing.T) *File {
	t.Helper()

	st, err := NewFile(t.TempDir(), "test")
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	return st
}

func testUser() *UserRecord {
	return &UserRecord{
		ID:              "u1",
		Name:            "Alice Carter",
		Email:           "alice@example.com",
		Role:            "student",
		JoinedDate:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EnrolledCourses: []string{"go-101", "distributed-systems"},
	}
}

func TestFileAbsentIsZeroValue(t *testing.T) {
	st := newTestFile(t)
	ctx := context.Background()

	token, err := st.GetToken(ctx)
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}

	user, err := st.GetUser(ctx)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}

	role, err := st.GetRole(ctx)
	if err != nil {
		t.Fatalf("GetRole failed: %v", err)
	}
	if role != "" {
		t.Fatalf("expected empty role, got %q", role)
	}
}

func TestFileRoundTripSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	st, err := NewFile(dir, "test")
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}

	if err := st.SetToken(ctx, "tok-123"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if err := st.SetUser(ctx, testUser()); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}
	if err := st.SetRole(ctx, "student"); err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}

	reopened, err := NewFile(dir, "test")
	if err != nil {
		t.Fatalf("NewFile reopen failed: %v", err)
	}

	token, err := reopened.GetToken(ctx)
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("token = %q, want tok-123", token)
	}

	user, err := reopened.GetUser(ctx)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user == nil || user.Email != "alice@example.com" {
		t.Fatalf("unexpected user after reopen: %+v", user)
	}
	if len(user.EnrolledCourses) != 2 {
		t.Fatalf("enrolled courses lost: %+v", user.EnrolledCourses)
	}

	role, err := reopened.GetRole(ctx)
	if err != nil {
		t.Fatalf("GetRole failed: %v", err)
	}
	if role != "student" {
		t.Fatalf("role = %q, want student", role)
	}
}

func TestFileMalformedUserReadsAsAbsent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	st, err := NewFile(dir, "test")
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}

	doc := `{"token":"tok-123","user":"{not json","role":"student"}`
	if err := os.WriteFile(st.Path(), []byte(doc), 0o600); err != nil {
		t.Fatalf("write document: %v", err)
	}

	user, err := st.GetUser(ctx)
	if err != nil {
		t.Fatalf("GetUser on malformed payload must not error, got %v", err)
	}
	if user != nil {
		t.Fatalf("malformed user must read as absent, got %+v", user)
	}

	// The other entries are unaffected.
	token, err := st.GetToken(ctx)
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("token = %q, want tok-123", token)
	}
}

func TestFileCorruptDocumentReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	st, err := NewFile(dir, "test")
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	if err := os.WriteFile(st.Path(), []byte("not a json document"), 0o600); err != nil {
		t.Fatalf("write document: %v", err)
	}

	token, err := st.GetToken(ctx)
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if token != "" {
		t.Fatalf("corrupt document must read as empty, got token %q", token)
	}
}

func TestFileClearAllIsIdempotent(t *testing.T) {
	st := newTestFile(t)
	ctx := context.Background()

	if err := st.SetToken(ctx, "tok-123"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if err := st.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if err := st.ClearAll(ctx); err != nil {
		t.Fatalf("second ClearAll must succeed, got %v", err)
	}

	if _, err := os.Stat(st.Path()); !os.IsNotExist(err) {
		t.Fatalf("document must be removed, stat err = %v", err)
	}

	token, err := st.GetToken(ctx)
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if token != "" {
		t.Fatalf("token survived ClearAll: %q", token)
	}
}

func TestFileCreatesNamespaceFile(t *testing.T) {
	dir := t.TempDir()

	st, err := NewFile(dir, "myapp")
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	want := filepath.Join(dir, "myapp.json")
	if st.Path() != want {
		t.Fatalf("Path = %q, want %q", st.Path(), want)
	}
}
