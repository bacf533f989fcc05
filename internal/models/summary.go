package models

import "github.com/shopspring/decimal"

// Summary holds the aggregate totals derived from one user's ledger. It is
// recomputed from the full transaction list on every request, never stored.
type Summary struct {
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalExpense   decimal.Decimal `json:"total_expense"`
	TotalSavings   decimal.Decimal `json:"total_savings"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// NewSummary computes the totals over the given transactions. Savings and
// balance are both income minus expense; they are kept as separate fields
// because the original application displays them separately.
func NewSummary(transactions []Transaction) Summary {
	var income, expense decimal.Decimal
	for _, t := range transactions {
		switch t.Type {
		case TypeIncome:
			income = income.Add(t.Amount)
		case TypeExpense:
			expense = expense.Add(t.Amount)
		}
	}
	savings := income.Sub(expense)
	return Summary{
		TotalIncome:    income,
		TotalExpense:   expense,
		TotalSavings:   savings,
		CurrentBalance: savings,
	}
}
