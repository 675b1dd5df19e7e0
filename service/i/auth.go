package i

import (
	dmn "github.com/beka-birhanu/trailgen-api/domain"
)

// Authenticator handles account registration and sign-in.
type Authenticator interface {
	// Register creates an account for the given username and password.
	Register(username, password string) error

	// SignIn verifies the credentials and returns the user with a fresh
	// access token.
	SignIn(username, password string) (*dmn.User, string, error)
}
