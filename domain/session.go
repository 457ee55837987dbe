package domain

import "context"

// Session is the admin authentication state of this client.
type Session struct {
	LoggedIn bool
	Token    string
	Username string
}

// Credentials is the login form payload.
type Credentials struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,max=128"`
}

type AuthGateway interface {
	// Login returns the bearer token for the given credentials.
	Login(ctx context.Context, cred Credentials) (token string, err error)
	Logout(ctx context.Context) error
	// CheckSession reports whether the current token is still accepted.
	CheckSession(ctx context.Context) (bool, error)
}

// SessionUsecase owns the process-wide logged-in flag.
type SessionUsecase interface {
	Bootstrap(ctx context.Context) bool
	Login(ctx context.Context, cred Credentials) bool
	Logout(ctx context.Context)
	LoggedIn() bool
}
