package auth

// CookieName is the session cookie the HTTP layer reads tokens from.
const CookieName = "auth_token"

// UserContext is the authenticated caller as seen by handlers.
type UserContext struct {
	UserID string
	Email  string
	Role   string
}
