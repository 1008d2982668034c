package budget

import (
	"context"
	"fmt"
	"sync"

	appErrors "github.com/fatali-fataliyev/budget_ledger/customErrors"
	"github.com/fatali-fataliyev/budget_ledger/internal/command"
	"github.com/fatali-fataliyev/budget_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/budget_ledger/internal/events"
	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
	"github.com/fatali-fataliyev/budget_ledger/logging"
)

type Storage interface {
	LoadAll(ctx context.Context) ([]ledger.Income, []ledger.Expense, error)
	SaveAll(ctx context.Context, incomes []ledger.Income, expenses []ledger.Expense) error
	LoadSavingsGoal(ctx context.Context) (ledger.SavingsGoal, error)
	SaveSavingsGoal(ctx context.Context, goal ledger.SavingsGoal) error
	GetStorageType() string
}

// BudgetTracker owns the ledger and the savings goal and runs one command at a time.
type BudgetTracker struct {
	storage     Storage
	publisher   events.Publisher
	StorageType string

	mu     sync.Mutex
	ledger *ledger.Ledger
	goal   *ledger.SavingsGoal
}

func NewBudgetTracker(s Storage, p events.Publisher) *BudgetTracker {
	if p == nil {
		p = events.NoopPublisher{}
	}
	return &BudgetTracker{
		storage:     s,
		publisher:   p,
		StorageType: s.GetStorageType(),
		ledger:      ledger.New(nil, nil),
		goal:        &ledger.SavingsGoal{},
	}
}

// Load replaces the in-memory state with what the storage holds.
func (bt *BudgetTracker) Load(ctx context.Context) error {
	incomes, expenses, err := bt.storage.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	goal, err := bt.storage.LoadSavingsGoal(ctx)
	if err != nil {
		return fmt.Errorf("failed to load savings goal: %w", err)
	}

	bt.mu.Lock()
	defer bt.mu.Unlock()
	bt.ledger = ledger.New(incomes, expenses)
	*bt.goal = goal

	logging.Logger.Infof("[TraceID=%s] | loaded %d incomes and %d expenses from %s storage",
		contextutil.TraceIDFromContext(ctx), len(incomes), len(expenses), bt.StorageType)
	return nil
}

// Goal returns the session savings goal that the savings commands operate on.
func (bt *BudgetTracker) Goal() *ledger.SavingsGoal {
	return bt.goal
}

// Run executes cmd against the ledger. A successful mutating command is
// persisted and announced; if persisting fails the in-memory state is rolled
// back and nothing is announced.
func (bt *BudgetTracker) Run(ctx context.Context, cmd command.Command) (string, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	bt.mu.Lock()
	defer bt.mu.Unlock()

	before := bt.capture(cmd.Effect())

	msg, err := cmd.Execute(bt.ledger)
	if err != nil {
		logging.Logger.Debugf("[TraceID=%s] | %s rejected | Error: %v", traceID, cmd.Name(), err)
		return "", err
	}

	switch cmd.Effect() {
	case command.LedgerChanged:
		if err := bt.storage.SaveAll(ctx, bt.ledger.Incomes.Items(), bt.ledger.Expenses.Items()); err != nil {
			logging.Logger.Errorf("[TraceID=%s] | failed to save ledger after %s | Error: %v", traceID, cmd.Name(), err)
			bt.restore(before)
			return "", appErrors.New(appErrors.Internal, "Failed to save your changes, please try again.")
		}
	case command.GoalChanged:
		if err := bt.storage.SaveSavingsGoal(ctx, *bt.goal); err != nil {
			logging.Logger.Errorf("[TraceID=%s] | failed to save savings goal | Error: %v", traceID, err)
			bt.restore(before)
			return "", appErrors.New(appErrors.Internal, "Failed to save your savings goal, please try again.")
		}
	default:
		return msg, nil
	}

	if err := bt.publisher.Publish(ctx, events.NewLedgerChanged(cmd.Name(), msg, traceID)); err != nil {
		logging.Logger.Warnf("[TraceID=%s] | failed to publish %s event | Error: %v", traceID, cmd.Name(), err)
	}
	return msg, nil
}

func (bt *BudgetTracker) Summary() Summary {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	return Summary{
		IncomeCount:  bt.ledger.Incomes.Len(),
		ExpenseCount: bt.ledger.Expenses.Len(),
		TotalIncome:  ledger.FormatAmount(bt.ledger.Incomes.Total()),
		TotalExpense: ledger.FormatAmount(bt.ledger.Expenses.Total()),
		Balance:      ledger.FormatAmount(bt.ledger.Balance()),
		StorageType:  bt.StorageType,
	}
}

func (bt *BudgetTracker) capture(effect command.Effect) *snapshot {
	if effect == command.ReadOnly {
		return nil
	}
	return &snapshot{
		incomes:  bt.ledger.Incomes.Items(),
		expenses: bt.ledger.Expenses.Items(),
		goal:     *bt.goal,
	}
}

func (bt *BudgetTracker) restore(s *snapshot) {
	if s == nil {
		return
	}
	bt.ledger.Incomes = ledger.NewList(s.incomes)
	bt.ledger.Expenses = ledger.NewList(s.expenses)
	*bt.goal = s.goal
}
