package budget

import (
	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
)

// snapshot is the state restored when persisting a mutating command fails.
type snapshot struct {
	incomes  []ledger.Income
	expenses []ledger.Expense
	goal     ledger.SavingsGoal
}

// Summary is a read-only view of the ledger totals.
type Summary struct {
	IncomeCount  int
	ExpenseCount int
	TotalIncome  string
	TotalExpense string
	Balance      string
	StorageType  string
}
