// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/bytebank/bytebank/internal/models"
)

// ErrUserExists is returned by CreateUser when the username is taken.
var ErrUserExists = errors.New("username already exists")

// Store defines the interface for account and ledger persistence.
// This abstraction allows swapping storage backends (flat JSON files,
// SQLite, etc.) without changing the service layer.
//
// Ledger persistence follows a snapshot contract: SaveTransactions replaces
// the user's entire ledger in one write. Callers read the full list, mutate
// it, and write it back; the store never performs partial updates.
type Store interface {
	// CreateUser persists a new user.
	// Returns ErrUserExists if the username is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by username.
	// Returns (nil, nil) if the user does not exist.
	GetUser(ctx context.Context, username string) (*models.User, error)

	// ListTransactions returns the user's ledger in insertion order.
	// A user with no ledger yields an empty slice, not an error.
	ListTransactions(ctx context.Context, username string) ([]models.Transaction, error)

	// SaveTransactions replaces the user's entire ledger with the given
	// snapshot, preserving slice order. An error means nothing was written.
	SaveTransactions(ctx context.Context, username string, transactions []models.Transaction) error

	// Close releases any resources held by the store.
	Close() error
}
