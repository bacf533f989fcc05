package auth

import (
	"context"

	"github.com/bytebank/bytebank/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction keeps credential comparison behind a single seam so the
// scheme (bcrypt today) can be swapped without changing the service layer.
type Authenticator interface {
	// Register creates a new account. confirmPassword must match password;
	// the check lives here rather than in the UI so every caller gets it.
	// Returns the created user or an error if registration fails.
	Register(ctx context.Context, username, password, confirmPassword string) (*models.User, error)

	// Authenticate verifies the supplied credentials.
	// Returns (true, nil) only when the username exists and the password
	// matches; an unknown username or wrong password yields (false, nil),
	// not an error.
	Authenticate(ctx context.Context, username, password string) (bool, error)
}
