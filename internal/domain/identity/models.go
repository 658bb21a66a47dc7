package identity

import "time"

// User is a login account. Role here is the authorization role, not the
// job-title entity.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         string    `json:"role"`
	GoogleID     string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// GoogleProfile is the subset of the OAuth userinfo payload the service
// needs for first-login provisioning.
type GoogleProfile struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
}
