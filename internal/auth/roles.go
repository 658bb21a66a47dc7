package auth

import "strings"

// Authorization roles. These gate access to mutating and report routes and
// are unrelated to the job-title Role entity.
const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

var Roles = []string{RoleAdmin, RoleHR, RoleEmployee}

// ParseRole normalizes raw input to a known role, or reports failure.
func ParseRole(raw string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for _, role := range Roles {
		if normalized == role {
			return role, true
		}
	}
	return "", false
}

// Authorize reports whether an actor with the given role may perform an
// operation restricted to the allowed roles. Pure and stateless; the
// boundary layer decides whether a denial is 401 or 403.
func Authorize(actorRole string, allowed ...string) bool {
	for _, role := range allowed {
		if actorRole == role {
			return true
		}
	}
	return false
}
