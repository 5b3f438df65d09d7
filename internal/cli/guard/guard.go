// Package guard implements the access decision consulted before any
// protected view. It is a pure function over externally-observed session
// state: the guard keeps no state of its own and reclassifies on every call.
package guard

import (
	"github.com/itemhub-dev/itemhub/internal/cli/session"
)

// Well-known navigation targets
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Action is the kind of decision the guard produces
type Action int

const (
	// Render means the protected view may be shown
	Render Action = iota
	// RenderNothing means show nothing: the caller is already at the
	// path a redirect would target
	RenderNothing
	// Redirect means navigate to Decision.Target instead of rendering
	Redirect
)

// Decision is the guard's verdict for a single navigation
type Decision struct {
	Action Action
	Target string
}

// Evaluate decides whether a protected view renders, given the credential
// and user from the session store, an optional role restriction, and the
// current path.
//
// A present credential with an unresolved user renders optimistically: it
// avoids a redirect loop while storage hydration races navigation, at the
// cost of briefly rendering for a token-holding visitor whose user record
// never resolves.
func Evaluate(token string, user *session.SessionUser, requiredRoles []string, currentPath string) Decision {
	// No credential anywhere: go to login
	if token == "" {
		if currentPath != LoginPath {
			return Decision{Action: Redirect, Target: LoginPath}
		}
		return Decision{Action: RenderNothing}
	}

	// Credential present, user not yet resolved
	if user == nil {
		return Decision{Action: Render}
	}

	// Role restriction: unauthorized roles go home
	if len(requiredRoles) > 0 && !containsRole(requiredRoles, user.Role) {
		if currentPath != HomePath {
			return Decision{Action: Redirect, Target: HomePath}
		}
		return Decision{Action: RenderNothing}
	}

	return Decision{Action: Render}
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
