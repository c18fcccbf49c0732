package guard

import (
	"slices"

	"github.com/mentorsphere/mentorsphere-go/session"
)

// Action is the outcome class of a guard decision.
type Action int

const (
	// ActionRender lets the requested view through.
	ActionRender Action = iota
	// ActionRedirect sends the navigation to Decision.Target instead.
	ActionRedirect
)

// Reason explains a redirect so callers that prefer a forbidden page
// over a silent redirect can branch on it.
type Reason int

const (
	// ReasonAllowed accompanies ActionRender.
	ReasonAllowed Reason = iota
	// ReasonUnauthenticated means no session was present.
	ReasonUnauthenticated
	// ReasonRoleMismatch means the session role is not in the allowed set.
	ReasonRoleMismatch
)

// Decision is the result of evaluating one navigation.
type Decision struct {
	Action Action
	Reason Reason

	// Target is the redirect destination when Action is ActionRedirect.
	Target string
	// From carries the originally requested path on an unauthenticated
	// redirect, so a successful login can return the user there.
	From string
}

// Routes names the redirect destinations. Zero values fall back to the
// defaults below.
type Routes struct {
	Login       string
	StudentHome string
	MentorHome  string
}

// DefaultRoutes are the dashboard paths used when Routes fields are
// left empty.
var DefaultRoutes = Routes{
	Login:       "/login",
	StudentHome: "/student/dashboard",
	MentorHome:  "/mentor/dashboard",
}

func (r Routes) withDefaults() Routes {
	if r.Login == "" {
		r.Login = DefaultRoutes.Login
	}
	if r.StudentHome == "" {
		r.StudentHome = DefaultRoutes.StudentHome
	}
	if r.MentorHome == "" {
		r.MentorHome = DefaultRoutes.MentorHome
	}
	return r
}

// Home returns the landing view for a role: mentors get the mentor
// dashboard, every other authenticated role the student dashboard.
func (r Routes) Home(role string) string {
	r = r.withDefaults()
	if role == session.RoleMentor {
		return r.MentorHome
	}
	return r.StudentHome
}

// Guard evaluates navigations against a route table.
type Guard struct {
	Routes Routes
}

// New returns a Guard over the given route table.
func New(routes Routes) Guard {
	return Guard{Routes: routes.withDefaults()}
}

// Decide evaluates one navigation. Rules, first match wins:
//
//  1. Unauthenticated → redirect to the login view, remembering path.
//  2. Non-empty allowedRoles missing the session role → redirect to the
//     role's home view. An empty allowedRoles set means any
//     authenticated role.
//  3. Otherwise render the requested view.
func (g Guard) Decide(sess session.Session, allowedRoles []string, path string) Decision {
	routes := g.Routes.withDefaults()

	if !sess.Authenticated {
		return Decision{
			Action: ActionRedirect,
			Reason: ReasonUnauthenticated,
			Target: routes.Login,
			From:   path,
		}
	}

	if len(allowedRoles) > 0 && !slices.Contains(allowedRoles, sess.Role) {
		return Decision{
			Action: ActionRedirect,
			Reason: ReasonRoleMismatch,
			Target: routes.Home(sess.Role),
		}
	}

	return Decision{Action: ActionRender, Reason: ReasonAllowed}
}
