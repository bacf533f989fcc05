package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bytebank/bytebank/internal/models"
	"github.com/bytebank/bytebank/internal/storage"
)

var (
	ErrEmptyUsername    = errors.New("username is required")
	ErrEmptyPassword    = errors.New("password is required")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidUsername  = errors.New("username may only contain letters, digits, '.', '_' and '-'")
	ErrUsernameTaken    = errors.New("username already exists")
)

// Usernames name ledger files on the flat-file backend, so the allowed
// alphabet must be filesystem-safe.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	store storage.Store
}

// NewPasswordAuthenticator creates a new password-based authenticator backed
// by the given store.
func NewPasswordAuthenticator(store storage.Store) *PasswordAuthenticator {
	return &PasswordAuthenticator{store: store}
}

// Register creates a new account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, password, confirmPassword string) (*models.User, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().Unix(),
	}

	if err := a.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the username and password.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, password string) (bool, error) {
	user, err := a.store.GetUser(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return false, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}
