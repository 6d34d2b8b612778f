// internal/domain/session/guard.go
package session

// Destinations used by the route policies
const (
	PathHome  = "/"
	PathLogin = "/login"
	PathAdmin = "/admin"
)

// Decision is the outcome of a route policy: either the request may
// proceed, or the shopper should be sent to RedirectTo.
type Decision struct {
	Allow      bool   `json:"allow"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// RequireAuth allows any valid session and sends the rest to login
func RequireAuth(valid bool, _ *User) Decision {
	if !valid {
		return Decision{RedirectTo: PathLogin}
	}
	return Decision{Allow: true}
}

// RequireAdmin allows only valid admin sessions. Signed-out shoppers go to
// login; signed-in non-admins go home.
func RequireAdmin(valid bool, user *User) Decision {
	if !valid {
		return Decision{RedirectTo: PathLogin}
	}
	if user == nil || !user.IsAdmin() {
		return Decision{RedirectTo: PathHome}
	}
	return Decision{Allow: true}
}

// RedirectIfAuthenticated keeps signed-in users off public-only pages such
// as login and signup, branching by role.
func RedirectIfAuthenticated(valid bool, user *User) Decision {
	if !valid {
		return Decision{Allow: true}
	}
	if user != nil && user.IsAdmin() {
		return Decision{RedirectTo: PathAdmin}
	}
	return Decision{RedirectTo: PathHome}
}
