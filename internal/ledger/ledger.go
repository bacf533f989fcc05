// Package ledger implements the transaction ledger and summary engine:
// create, update, delete, list and aggregate the transactions of one user.
//
// Every mutation is a read-modify-write over the user's full ledger
// snapshot, serialized per username so interleaved writes cannot drop
// records within a single process.
package ledger

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bytebank/bytebank/internal/models"
	"github.com/bytebank/bytebank/internal/storage"
)

// Fields carries the caller-supplied values for an add or update. Amount
// arrives as the raw string the user typed; parsing it is part of
// validation. A blank Date means "today" on add and "keep the stored date"
// on update.
type Fields struct {
	Type          string
	Amount        string
	Description   string
	Category      string
	Date          string
	PaymentMethod string
	Notes         string
}

// Service provides CRUD and aggregation over per-user ledgers.
type Service struct {
	store  storage.Store
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a ledger service backed by the given store.
func NewService(store storage.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing ledger access for one username.
func (s *Service) userLock(username string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[username]
	if !ok {
		l = &sync.Mutex{}
		s.locks[username] = l
	}
	return l
}

// Add validates the fields, appends a new transaction to the end of the
// user's ledger and rewrites the snapshot. Returns the freshly assigned id.
func (s *Service) Add(ctx context.Context, username string, f Fields) (string, error) {
	t, err := buildTransaction(f)
	if err != nil {
		return "", err
	}
	if t.Date == "" {
		t.Date = time.Now().Format(models.DateLayout)
	}
	t.ID = uuid.New().String()

	lock := s.userLock(username)
	lock.Lock()
	defer lock.Unlock()

	transactions, err := s.store.ListTransactions(ctx, username)
	if err != nil {
		return "", err
	}
	transactions = append(transactions, t)

	if err := s.store.SaveTransactions(ctx, username, transactions); err != nil {
		return "", err
	}

	s.logger.Info("Transaction added", "username", username, "id", t.ID, "type", t.Type, "amount", t.Amount)
	return t.ID, nil
}

// Update replaces all fields except the id of an existing transaction,
// preserving its position in the ledger. A blank date keeps the stored one.
// Returns ErrNotFound if the user has no ledger or the id is unknown.
func (s *Service) Update(ctx context.Context, username, id string, f Fields) error {
	lock := s.userLock(username)
	lock.Lock()
	defer lock.Unlock()

	transactions, err := s.store.ListTransactions(ctx, username)
	if err != nil {
		return err
	}

	idx := -1
	for i := range transactions {
		if transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	t, err := buildTransaction(f)
	if err != nil {
		return err
	}
	if t.Date == "" {
		t.Date = transactions[idx].Date
	}
	t.ID = id
	transactions[idx] = t

	if err := s.store.SaveTransactions(ctx, username, transactions); err != nil {
		return err
	}

	s.logger.Info("Transaction updated", "username", username, "id", id)
	return nil
}

// Delete removes the transaction with the given id, preserving the order of
// the remaining entries. Returns ErrNotFound if the id is unknown.
func (s *Service) Delete(ctx context.Context, username, id string) error {
	lock := s.userLock(username)
	lock.Lock()
	defer lock.Unlock()

	transactions, err := s.store.ListTransactions(ctx, username)
	if err != nil {
		return err
	}

	kept := transactions[:0:0]
	for _, t := range transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(transactions) {
		return ErrNotFound
	}

	if err := s.store.SaveTransactions(ctx, username, kept); err != nil {
		return err
	}

	s.logger.Info("Transaction deleted", "username", username, "id", id)
	return nil
}

// List returns the user's ledger in insertion order. A missing ledger, or a
// ledger that fails to load, yields an empty slice: the caller is a display
// surface and must keep rendering.
func (s *Service) List(ctx context.Context, username string) []models.Transaction {
	transactions, err := s.store.ListTransactions(ctx, username)
	if err != nil {
		s.logger.Warn("Failed to load ledger, returning empty list", "username", username, "error", err)
		return []models.Transaction{}
	}
	return transactions
}

// Summary recomputes the aggregate totals over the user's full ledger.
// Any underlying read failure yields an all-zero summary rather than an
// error, so a summary refresh never fails.
func (s *Service) Summary(ctx context.Context, username string) models.Summary {
	return models.NewSummary(s.List(ctx, username))
}

// buildTransaction validates the fields and assembles a transaction without
// id; a blank date passes through for the caller to resolve.
func buildTransaction(f Fields) (models.Transaction, error) {
	var t models.Transaction

	if f.Type != models.TypeIncome && f.Type != models.TypeExpense {
		return t, invalidField("type", "must be Income or Expense")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
	if err != nil {
		return t, invalidField("amount", "must be a decimal number")
	}
	if !amount.IsPositive() {
		return t, invalidField("amount", "must be greater than zero")
	}

	description := strings.TrimSpace(f.Description)
	if description == "" {
		return t, invalidField("description", "is required")
	}
	if f.Category == "" {
		return t, invalidField("category", "is required")
	}
	if f.PaymentMethod == "" {
		return t, invalidField("payment_method", "is required")
	}

	date := strings.TrimSpace(f.Date)
	if date != "" {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			return t, invalidField("date", "must be YYYY-MM-DD")
		}
	}

	t = models.Transaction{
		Type:          f.Type,
		Amount:        amount,
		Description:   description,
		Category:      f.Category,
		Date:          date,
		PaymentMethod: f.PaymentMethod,
		Notes:         strings.TrimSpace(f.Notes),
	}
	return t, nil
}
