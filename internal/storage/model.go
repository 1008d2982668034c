package storage

import (
	"fmt"
	"time"

	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
	"github.com/shopspring/decimal"
)

// dbDateLayout is how entry dates are stored in SQL columns.
const dbDateLayout = "2006-01-02"

type dbIncome struct {
	Position  int
	ID        string
	Category  string
	Amount    decimal.Decimal
	EntryDate string
}

type dbExpense struct {
	Position    int
	ID          string
	Category    string
	Description string
	Amount      decimal.Decimal
	EntryDate   string
}

type dbSavingsGoal struct {
	Amount decimal.Decimal
	IsSet  bool
}

func (row dbIncome) toIncome() (ledger.Income, error) {
	date, err := time.Parse(dbDateLayout, row.EntryDate)
	if err != nil {
		return ledger.Income{}, fmt.Errorf("income %s has invalid date %q: %w", row.ID, row.EntryDate, err)
	}
	return ledger.Income{
		ID:       row.ID,
		Category: row.Category,
		Amount:   row.Amount,
		Date:     date,
	}, nil
}

func (row dbExpense) toExpense() (ledger.Expense, error) {
	date, err := time.Parse(dbDateLayout, row.EntryDate)
	if err != nil {
		return ledger.Expense{}, fmt.Errorf("expense %s has invalid date %q: %w", row.ID, row.EntryDate, err)
	}
	return ledger.Expense{
		ID:          row.ID,
		Category:    row.Category,
		Description: row.Description,
		Amount:      row.Amount,
		Date:        date,
	}, nil
}
