package models

import "github.com/shopspring/decimal"

// Transaction types.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// Categories is the closed set presented by the UI. The store accepts any
// non-empty category so older data directories with retired categories keep
// loading.
var Categories = []string{"Food", "Travel", "Bills", "Shopping", "Salary", "Other"}

// PaymentMethods is the closed set presented by the UI.
var PaymentMethods = []string{"Cash", "Card", "UPI", "Bank Transfer"}

// DateLayout is the calendar-date format used throughout: YYYY-MM-DD.
const DateLayout = "2006-01-02"

// Transaction is one recorded income or expense event.
//
// JSON tags follow the original flat-file format so a data directory written
// by the desktop application remains readable.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	// Assigned at creation, never changed by updates.
	ID string `json:"id"`

	// Type is either TypeIncome or TypeExpense.
	Type string `json:"type"`

	// Amount is the transaction value, always > 0.
	Amount decimal.Decimal `json:"amount"`

	// Description is a short non-empty label for the transaction.
	Description string `json:"description"`

	// Category is one of Categories for new records.
	Category string `json:"category"`

	// Date is the calendar date in DateLayout format.
	Date string `json:"date"`

	// PaymentMethod is one of PaymentMethods for new records.
	PaymentMethod string `json:"payment_method"`

	// Notes is optional free text, may be empty.
	Notes string `json:"notes"`
}
