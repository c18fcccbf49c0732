package guard

import (
	"net/http"
	"net/url"

	"github.com/mentorsphere/mentorsphere-go/session"
)

// FromParam is the query parameter carrying the originally requested
// path on a login redirect.
const FromParam = "from"

// Middleware wraps a protected view handler with a guard decision read
// from the container. allowedRoles empty means any authenticated role.
//
// Redirects are 302s mirroring the SPA behavior; this remains a UX
// convenience, not an authorization boundary.
func Middleware(c *session.Container, g Guard, allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := g.Decide(c.Snapshot(), allowedRoles, r.URL.Path)
			if decision.Action == ActionRender {
				next.ServeHTTP(w, r)
				return
			}

			target := decision.Target
			if decision.From != "" {
				target += "?" + FromParam + "=" + url.QueryEscape(decision.From)
			}
			http.Redirect(w, r, target, http.StatusFound)
		})
	}
}
