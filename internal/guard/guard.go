// Package guard decides where a navigation lands based on the current
// session. The decision is a synchronous predicate; no server check.
package guard

import "github.com/structura-app/structura-cli/internal/models"

// Decision is the outcome of a guarded navigation.
type Decision int

const (
	// Allow lets the navigation pass through.
	Allow Decision = iota
	// RedirectSignIn sends an unauthenticated visitor to sign-in.
	RedirectSignIn
	// RedirectAdmin sends a privileged user to the admin area.
	RedirectAdmin
)

func (d Decision) String() string {
	switch d {
	case RedirectSignIn:
		return "redirect: sign-in"
	case RedirectAdmin:
		return "redirect: admin"
	default:
		return "allow"
	}
}

// Decide applies the single guard rule: no session redirects to sign-in, an
// admin session redirects to the admin area, anything else passes.
func Decide(u *models.User) Decision {
	if u == nil || u.Token == "" {
		return RedirectSignIn
	}
	if u.IsAdmin {
		return RedirectAdmin
	}
	return Allow
}
