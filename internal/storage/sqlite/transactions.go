package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bytebank/bytebank/internal/models"
)

// ListTransactions returns the user's ledger in insertion order.
func (s *SQLiteStore) ListTransactions(ctx context.Context, username string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, amount, description, category, date, payment_method, notes
		FROM transactions
		WHERE username = ?
		ORDER BY position
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var amount string
		if err := rows.Scan(&t.ID, &t.Type, &amount, &t.Description, &t.Category, &t.Date, &t.PaymentMethod, &t.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// SaveTransactions replaces the user's entire ledger inside one SQL
// transaction, matching the snapshot contract of the flat-file backend.
// Slice order becomes the stored position.
func (s *SQLiteStore) SaveTransactions(ctx context.Context, username string, transactions []models.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions WHERE username = ?", username); err != nil {
		return fmt.Errorf("failed to clear ledger: %w", err)
	}

	for i, t := range transactions {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (id, username, position, type, amount, description, category, date, payment_method, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, t.ID, username, i, t.Type, t.Amount.String(), t.Description, t.Category, t.Date, t.PaymentMethod, t.Notes)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
