package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bytebank/bytebank/internal/models"
	"github.com/bytebank/bytebank/internal/storage"
	"github.com/bytebank/bytebank/internal/storage/jsonfile"
	"github.com/bytebank/bytebank/internal/storage/sqlite"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := jsonfile.New(dir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, logger), dir
}

func validFields() Fields {
	return Fields{
		Type:          models.TypeIncome,
		Amount:        "1000",
		Description:   "Salary",
		Category:      "Salary",
		Date:          "2025-01-15",
		PaymentMethod: "Bank Transfer",
	}
}

func TestAddAndList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.Add(ctx, "alice", validFields())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id == "" {
		t.Fatal("Expected a non-empty id")
	}

	transactions := svc.List(ctx, "alice")
	if len(transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(transactions))
	}

	got := transactions[0]
	if got.ID != id {
		t.Errorf("ID = %q, want %q", got.ID, id)
	}
	if got.Type != models.TypeIncome {
		t.Errorf("Type = %q, want %q", got.Type, models.TypeIncome)
	}
	if !got.Amount.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("Amount = %s, want 1000", got.Amount)
	}
	if got.Description != "Salary" {
		t.Errorf("Description = %q, want Salary", got.Description)
	}
	if got.Date != "2025-01-15" {
		t.Errorf("Date = %q, want 2025-01-15", got.Date)
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		id, err := svc.Add(ctx, "alice", validFields())
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if seen[id] {
			t.Fatalf("Duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestAddDefaultsDateToToday(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	f := validFields()
	f.Date = ""
	if _, err := svc.Add(ctx, "alice", f); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	transactions := svc.List(ctx, "alice")
	want := time.Now().Format(models.DateLayout)
	if transactions[0].Date != want {
		t.Errorf("Date = %q, want today (%s)", transactions[0].Date, want)
	}
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Fields)
		wantField string
	}{
		{"missing type", func(f *Fields) { f.Type = "" }, "type"},
		{"unknown type", func(f *Fields) { f.Type = "Transfer" }, "type"},
		{"negative amount", func(f *Fields) { f.Amount = "-5" }, "amount"},
		{"zero amount", func(f *Fields) { f.Amount = "0" }, "amount"},
		{"non-numeric amount", func(f *Fields) { f.Amount = "abc" }, "amount"},
		{"empty amount", func(f *Fields) { f.Amount = "" }, "amount"},
		{"empty description", func(f *Fields) { f.Description = "  " }, "description"},
		{"empty category", func(f *Fields) { f.Category = "" }, "category"},
		{"empty payment method", func(f *Fields) { f.PaymentMethod = "" }, "payment_method"},
		{"malformed date", func(f *Fields) { f.Date = "15/01/2025" }, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			ctx := context.Background()

			f := validFields()
			tt.mutate(&f)

			_, err := svc.Add(ctx, "alice", f)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}

			// No partial write on rejection
			if got := svc.List(ctx, "alice"); len(got) != 0 {
				t.Errorf("Ledger changed after rejected add: %d entries", len(got))
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Add(ctx, "alice", validFields())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	f := validFields()
	f.Type = models.TypeExpense
	f.Amount = "200"
	f.Description = "Groceries"
	f.Category = "Food"
	f.Date = "2025-02-01"
	second, err := svc.Add(ctx, "alice", f)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	update := Fields{
		Type:          models.TypeExpense,
		Amount:        "250.50",
		Description:   "Groceries and household",
		Category:      "Shopping",
		Date:          "", // blank keeps the stored date
		PaymentMethod: "Card",
		Notes:         "monthly run",
	}
	if err := svc.Update(ctx, "alice", second, update); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	transactions := svc.List(ctx, "alice")
	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
	if transactions[0].ID != first {
		t.Errorf("First entry moved: got %q, want %q", transactions[0].ID, first)
	}

	got := transactions[1]
	if got.ID != second {
		t.Errorf("Updated entry moved: got %q at position 1, want %q", got.ID, second)
	}
	if !got.Amount.Equal(decimal.RequireFromString("250.50")) {
		t.Errorf("Amount = %s, want 250.50", got.Amount)
	}
	if got.Description != "Groceries and household" {
		t.Errorf("Description = %q", got.Description)
	}
	if got.Category != "Shopping" {
		t.Errorf("Category = %q, want Shopping", got.Category)
	}
	if got.Date != "2025-02-01" {
		t.Errorf("Blank date must keep the stored value, got %q", got.Date)
	}
	if got.Notes != "monthly run" {
		t.Errorf("Notes = %q", got.Notes)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// No ledger at all
	if err := svc.Update(ctx, "alice", "missing-id", validFields()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for missing ledger, got %v", err)
	}

	// Ledger exists but id does not
	if _, err := svc.Add(ctx, "alice", validFields()); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := svc.Update(ctx, "alice", "missing-id", validFields()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown id, got %v", err)
	}
	if got := svc.List(ctx, "alice"); len(got) != 1 {
		t.Errorf("Ledger changed after failed update: %d entries", len(got))
	}
}

func TestUpdateValidationLeavesLedgerUntouched(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.Add(ctx, "alice", validFields())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	bad := validFields()
	bad.Amount = "-1"
	err = svc.Update(ctx, "alice", id, bad)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}

	got := svc.List(ctx, "alice")
	if !got[0].Amount.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("Amount changed after rejected update: %s", got[0].Amount)
	}
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, _ := svc.Add(ctx, "alice", validFields())
	second, _ := svc.Add(ctx, "alice", validFields())
	third, _ := svc.Add(ctx, "alice", validFields())

	if err := svc.Delete(ctx, "alice", second); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	transactions := svc.List(ctx, "alice")
	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
	if transactions[0].ID != first || transactions[1].ID != third {
		t.Errorf("Remaining order broken: got %q, %q", transactions[0].ID, transactions[1].ID)
	}
	for _, tr := range transactions {
		if tr.ID == second {
			t.Errorf("Deleted id %q still present", second)
		}
	}
}

func TestDeleteNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Delete(ctx, "alice", "missing-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for missing ledger, got %v", err)
	}

	svc.Add(ctx, "alice", validFields())
	if err := svc.Delete(ctx, "alice", "missing-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestListEmptyAndIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if got := svc.List(ctx, "nobody"); len(got) != 0 {
		t.Fatalf("Expected empty ledger for unknown user, got %d entries", len(got))
	}

	svc.Add(ctx, "alice", validFields())
	a := svc.List(ctx, "alice")
	b := svc.List(ctx, "alice")
	if len(a) != len(b) {
		t.Fatalf("List not idempotent: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Errorf("List order changed between calls at %d", i)
		}
	}
}

func TestSummary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	income := validFields() // Income 1000 Salary
	if _, err := svc.Add(ctx, "alice", income); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	expense := Fields{
		Type:          models.TypeExpense,
		Amount:        "200",
		Description:   "Food",
		Category:      "Food",
		Date:          "2025-01-16",
		PaymentMethod: "Cash",
	}
	if _, err := svc.Add(ctx, "alice", expense); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got := svc.Summary(ctx, "alice")
	if !got.TotalIncome.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("TotalIncome = %s, want 1000", got.TotalIncome)
	}
	if !got.TotalExpense.Equal(decimal.RequireFromString("200")) {
		t.Errorf("TotalExpense = %s, want 200", got.TotalExpense)
	}
	if !got.TotalSavings.Equal(decimal.RequireFromString("800")) {
		t.Errorf("TotalSavings = %s, want 800", got.TotalSavings)
	}
	if !got.CurrentBalance.Equal(got.TotalSavings) {
		t.Errorf("CurrentBalance = %s, want %s", got.CurrentBalance, got.TotalSavings)
	}
}

func TestSummaryEmptyLedger(t *testing.T) {
	svc, _ := newTestService(t)

	got := svc.Summary(context.Background(), "nobody")
	for name, v := range map[string]decimal.Decimal{
		"TotalIncome":    got.TotalIncome,
		"TotalExpense":   got.TotalExpense,
		"TotalSavings":   got.TotalSavings,
		"CurrentBalance": got.CurrentBalance,
	} {
		if !v.IsZero() {
			t.Errorf("%s = %s, want 0", name, v)
		}
	}
}

func TestSummarySwallowsCorruptLedger(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "alice", validFields()); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// Corrupt the snapshot on disk
	path := filepath.Join(dir, "alice_transactions.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to corrupt ledger: %v", err)
	}

	got := svc.Summary(ctx, "alice")
	if !got.TotalIncome.IsZero() || !got.CurrentBalance.IsZero() {
		t.Errorf("Expected all-zero summary on corrupt ledger, got %+v", got)
	}

	if list := svc.List(ctx, "alice"); len(list) != 0 {
		t.Errorf("Expected empty list on corrupt ledger, got %d entries", len(list))
	}
}

// The sqlite backend must honor the same snapshot semantics as the flat-file
// backend, so the core scenario runs against both.
func TestBackendParity(t *testing.T) {
	backends := map[string]func(t *testing.T) storage.Store{
		"jsonfile": func(t *testing.T) storage.Store {
			store, err := jsonfile.New(t.TempDir())
			if err != nil {
				t.Fatalf("Failed to create jsonfile store: %v", err)
			}
			return store
		},
		"sqlite": func(t *testing.T) storage.Store {
			store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
			if err != nil {
				t.Fatalf("Failed to create sqlite store: %v", err)
			}
			return store
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			store := open(t)
			defer store.Close()
			svc := NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
			ctx := context.Background()

			id, err := svc.Add(ctx, "bob", validFields())
			if err != nil {
				t.Fatalf("Add failed: %v", err)
			}

			expense := validFields()
			expense.Type = models.TypeExpense
			expense.Amount = "300.25"
			expense.Description = "Train"
			expense.Category = "Travel"
			if _, err := svc.Add(ctx, "bob", expense); err != nil {
				t.Fatalf("Add failed: %v", err)
			}

			summary := svc.Summary(ctx, "bob")
			if !summary.TotalSavings.Equal(decimal.RequireFromString("699.75")) {
				t.Errorf("TotalSavings = %s, want 699.75", summary.TotalSavings)
			}

			if err := svc.Delete(ctx, "bob", id); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if got := svc.List(ctx, "bob"); len(got) != 1 {
				t.Fatalf("Expected 1 transaction after delete, got %d", len(got))
			}
		})
	}
}
