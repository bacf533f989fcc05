// Package jsonfile provides a flat-file implementation of the storage.Store
// interface, using the same layout as the original desktop application: one
// users.json holding the account map and one <username>_transactions.json
// per ledger, each rewritten as a full snapshot on every mutation.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytebank/bytebank/internal/models"
	"github.com/bytebank/bytebank/internal/storage"
)

// Ensure FileStore implements storage.Store
var _ storage.Store = (*FileStore)(nil)

const usersFile = "users.json"

// FileStore implements storage.Store on top of a directory of JSON files.
//
// The users file is guarded by a store-wide mutex because account creation
// is a read-modify-write over the whole map. Ledger files carry no lock
// here; the service layer serializes ledger access per username.
type FileStore struct {
	dir string

	mu sync.Mutex // guards users.json read-modify-write
}

// New creates a FileStore rooted at dir, creating the directory and an
// empty users file if they do not exist yet.
func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &FileStore{dir: dir}

	usersPath := filepath.Join(dir, usersFile)
	if _, err := os.Stat(usersPath); os.IsNotExist(err) {
		if err := writeSnapshot(usersPath, map[string]*models.User{}); err != nil {
			return nil, fmt.Errorf("failed to initialize users file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat users file: %w", err)
	}

	return s, nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *FileStore) Close() error {
	return nil
}

// CreateUser adds the user to the account map and rewrites the full map.
func (s *FileStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return err
	}

	if _, ok := users[user.Username]; ok {
		return storage.ErrUserExists
	}
	users[user.Username] = user

	if err := writeSnapshot(filepath.Join(s.dir, usersFile), users); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

// GetUser looks the user up in the account map. Returns (nil, nil) if the
// username is not registered.
func (s *FileStore) GetUser(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}

	user, ok := users[username]
	if !ok {
		return nil, nil
	}
	user.Username = username
	return user, nil
}

// ListTransactions reads the user's ledger file. A missing file is an empty
// ledger, not an error.
func (s *FileStore) ListTransactions(_ context.Context, username string) ([]models.Transaction, error) {
	data, err := os.ReadFile(s.ledgerPath(username))
	if os.IsNotExist(err) {
		return []models.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger for %s: %w", username, err)
	}

	var transactions []models.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode ledger for %s: %w", username, err)
	}
	return transactions, nil
}

// SaveTransactions rewrites the user's entire ledger file.
func (s *FileStore) SaveTransactions(_ context.Context, username string, transactions []models.Transaction) error {
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	if err := writeSnapshot(s.ledgerPath(username), transactions); err != nil {
		return fmt.Errorf("failed to save ledger for %s: %w", username, err)
	}
	return nil
}

func (s *FileStore) ledgerPath(username string) string {
	// Usernames are restricted to [A-Za-z0-9._-] at registration, so they
	// are safe to embed in a file name.
	return filepath.Join(s.dir, username+"_transactions.json")
}

func (s *FileStore) loadUsers() (map[string]*models.User, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, usersFile))
	if os.IsNotExist(err) {
		return map[string]*models.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	users := map[string]*models.User{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users file: %w", err)
	}
	return users, nil
}

// writeSnapshot marshals v and replaces path in one rename, so a failed
// write never leaves a truncated snapshot behind.
func writeSnapshot(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
