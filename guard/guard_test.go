package guard

import (
	"testing"

	"github.com/mentorsphere/mentorsphere-go/session"
	"github.com/mentorsphere/mentorsphere-go/store"
)

func authedSession(role string) session.Session {
	return session.Session{
		Token:         "tok-123",
		User:          &store.UserRecord{ID: "u1", Role: role},
		Role:          role,
		Authenticated: true,
	}
}

func TestDecideUnauthenticatedRedirectsToLogin(t *testing.T) {
	g := New(Routes{})

	d := g.Decide(session.Session{}, []string{session.RoleStudent}, "/student/courses")
	if d.Action != ActionRedirect {
		t.Fatalf("action = %v, want redirect", d.Action)
	}
	if d.Reason != ReasonUnauthenticated {
		t.Fatalf("reason = %v, want unauthenticated", d.Reason)
	}
	if d.Target != "/login" {
		t.Fatalf("target = %q, want /login", d.Target)
	}
	if d.From != "/student/courses" {
		t.Fatalf("from = %q, want the requested path", d.From)
	}
}

func TestDecideRoleMismatchRedirectsHome(t *testing.T) {
	g := New(Routes{})

	// A student hitting a mentor view lands on the student dashboard.
	d := g.Decide(authedSession(session.RoleStudent), []string{session.RoleMentor}, "/mentor/dashboard")
	if d.Action != ActionRedirect || d.Reason != ReasonRoleMismatch {
		t.Fatalf("unexpected decision: %+v", d)
	}
	if d.Target != "/student/dashboard" {
		t.Fatalf("target = %q, want /student/dashboard", d.Target)
	}
	if d.From != "" {
		t.Fatalf("role mismatch must not carry a return path, got %q", d.From)
	}

	// And the other way around.
	d = g.Decide(authedSession(session.RoleMentor), []string{session.RoleStudent}, "/student/courses")
	if d.Target != "/mentor/dashboard" {
		t.Fatalf("target = %q, want /mentor/dashboard", d.Target)
	}
}

func TestDecideAllowedRenders(t *testing.T) {
	g := New(Routes{})

	d := g.Decide(authedSession(session.RoleStudent), []string{session.RoleStudent}, "/student/courses")
	if d.Action != ActionRender || d.Reason != ReasonAllowed {
		t.Fatalf("unexpected decision: %+v", d)
	}

	// A shared view open to both roles renders for either.
	d = g.Decide(authedSession(session.RoleMentor), []string{session.RoleStudent, session.RoleMentor}, "/profile")
	if d.Action != ActionRender {
		t.Fatalf("mentor on shared view: %+v", d)
	}
}

func TestDecideEmptyRolesMeansAnyAuthenticated(t *testing.T) {
	g := New(Routes{})

	for _, role := range []string{session.RoleStudent, session.RoleMentor} {
		d := g.Decide(authedSession(role), nil, "/settings")
		if d.Action != ActionRender {
			t.Fatalf("role %s: unexpected decision %+v", role, d)
		}
	}

	d := g.Decide(session.Session{}, nil, "/settings")
	if d.Action != ActionRedirect || d.Reason != ReasonUnauthenticated {
		t.Fatalf("unauthenticated must still redirect: %+v", d)
	}
}

func TestRoutesOverridesAndDefaults(t *testing.T) {
	g := New(Routes{Login: "/signin"})

	d := g.Decide(session.Session{}, nil, "/x")
	if d.Target != "/signin" {
		t.Fatalf("target = %q, want /signin", d.Target)
	}

	// Unset fields keep their defaults.
	if got := g.Routes.Home(session.RoleMentor); got != "/mentor/dashboard" {
		t.Fatalf("mentor home = %q", got)
	}
	if got := g.Routes.Home(session.RoleStudent); got != "/student/dashboard" {
		t.Fatalf("student home = %q", got)
	}
}

func TestHomeUnknownRoleFallsBackToStudent(t *testing.T) {
	if got := DefaultRoutes.Home(""); got != "/student/dashboard" {
		t.Fatalf("home for empty role = %q, want student dashboard", got)
	}
}
