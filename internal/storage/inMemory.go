package storage

import (
	"context"
	"sync"

	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
)

type InMemoryStorage struct {
	mu       sync.Mutex
	incomes  []ledger.Income
	expenses []ledger.Expense
	goal     ledger.SavingsGoal
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{}
}

func (inMem *InMemoryStorage) GetStorageType() string {
	return "inmemory"
}

func (inMem *InMemoryStorage) LoadAll(ctx context.Context) ([]ledger.Income, []ledger.Expense, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	return append([]ledger.Income(nil), inMem.incomes...), append([]ledger.Expense(nil), inMem.expenses...), nil
}

func (inMem *InMemoryStorage) SaveAll(ctx context.Context, incomes []ledger.Income, expenses []ledger.Expense) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	inMem.incomes = append([]ledger.Income(nil), incomes...)
	inMem.expenses = append([]ledger.Expense(nil), expenses...)
	return nil
}

func (inMem *InMemoryStorage) LoadSavingsGoal(ctx context.Context) (ledger.SavingsGoal, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	return inMem.goal, nil
}

func (inMem *InMemoryStorage) SaveSavingsGoal(ctx context.Context, goal ledger.SavingsGoal) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()
	inMem.goal = goal
	return nil
}
