package storage

import (
	"context"
	"database/sql"

	appErrors "github.com/fatali-fataliyev/budget_ledger/customErrors"
	"github.com/fatali-fataliyev/budget_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
	"github.com/fatali-fataliyev/budget_ledger/logging"
	"golang.org/x/sync/errgroup"
)

// sqlStorage holds the queries shared by the MySQL and SQLite backends.
// Both use '?' placeholders and the same schema.
type sqlStorage struct {
	db          *sql.DB
	storageType string
}

func (s *sqlStorage) GetStorageType() string {
	return s.storageType
}

func (s *sqlStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *sqlStorage) LoadAll(ctx context.Context) ([]ledger.Income, []ledger.Expense, error) {
	var incomes []ledger.Income
	var expenses []ledger.Expense

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incomes, err = s.loadIncomes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.loadExpenses(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return incomes, expenses, nil
}

func (s *sqlStorage) loadIncomes(ctx context.Context) ([]ledger.Income, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT position, id, category, amount, entry_date FROM income ORDER BY position;"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to query incomes in Storage.loadIncomes() function | Error: %v", traceID, err)
		return nil, appErrors.New(appErrors.Internal, "Failed to load incomes, try again later.")
	}
	defer rows.Close()

	incomes := make([]ledger.Income, 0)
	for rows.Next() {
		var row dbIncome
		if err := rows.Scan(&row.Position, &row.ID, &row.Category, &row.Amount, &row.EntryDate); err != nil {
			logging.Logger.Errorf("[TraceID=%s] | failed to scan row in Storage.loadIncomes() function | Error: %v", traceID, err)
			return nil, appErrors.New(appErrors.Internal, "Failed to load incomes, try again later.")
		}
		income, err := row.toIncome()
		if err != nil {
			logging.Logger.Warnf("[TraceID=%s] | skipping corrupted income row | Error: %v", traceID, err)
			continue
		}
		incomes = append(incomes, income)
	}
	if err := rows.Err(); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to iterate rows in Storage.loadIncomes() function | Error: %v", traceID, err)
		return nil, appErrors.New(appErrors.Internal, "Failed to load incomes, try again later.")
	}
	return incomes, nil
}

func (s *sqlStorage) loadExpenses(ctx context.Context) ([]ledger.Expense, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "SELECT position, id, category, description, amount, entry_date FROM expense ORDER BY position;"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to query expenses in Storage.loadExpenses() function | Error: %v", traceID, err)
		return nil, appErrors.New(appErrors.Internal, "Failed to load expenses, try again later.")
	}
	defer rows.Close()

	expenses := make([]ledger.Expense, 0)
	for rows.Next() {
		var row dbExpense
		if err := rows.Scan(&row.Position, &row.ID, &row.Category, &row.Description, &row.Amount, &row.EntryDate); err != nil {
			logging.Logger.Errorf("[TraceID=%s] | failed to scan row in Storage.loadExpenses() function | Error: %v", traceID, err)
			return nil, appErrors.New(appErrors.Internal, "Failed to load expenses, try again later.")
		}
		expense, err := row.toExpense()
		if err != nil {
			logging.Logger.Warnf("[TraceID=%s] | skipping corrupted expense row | Error: %v", traceID, err)
			continue
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to iterate rows in Storage.loadExpenses() function | Error: %v", traceID, err)
		return nil, appErrors.New(appErrors.Internal, "Failed to load expenses, try again later.")
	}
	return expenses, nil
}

// SaveAll replaces both tables in one transaction. Positions follow slice order.
func (s *sqlStorage) SaveAll(ctx context.Context, incomes []ledger.Income, expenses []ledger.Expense) error {
	traceID := contextutil.TraceIDFromContext(ctx)
	failed := appErrors.New(appErrors.Internal, "Failed to save the ledger, try again later.")

	txn, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to start transaction in Storage.SaveAll() function | Error: %v", traceID, err)
		return failed
	}

	if err := s.replaceRows(ctx, txn, incomes, expenses); err != nil {
		txn.Rollback()
		logging.Logger.Errorf("[TraceID=%s] | failed to write ledger rows in Storage.SaveAll() function | Error: %v", traceID, err)
		return failed
	}

	if err := txn.Commit(); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to commit transaction in Storage.SaveAll() function | Error: %v", traceID, err)
		return failed
	}
	return nil
}

func (s *sqlStorage) replaceRows(ctx context.Context, txn *sql.Tx, incomes []ledger.Income, expenses []ledger.Expense) error {
	if _, err := txn.ExecContext(ctx, "DELETE FROM income;"); err != nil {
		return err
	}
	if _, err := txn.ExecContext(ctx, "DELETE FROM expense;"); err != nil {
		return err
	}

	insertIncome := "INSERT INTO income (position, id, category, amount, entry_date) VALUES (?, ?, ?, ?, ?);"
	for i, income := range incomes {
		_, err := txn.ExecContext(ctx, insertIncome, i, income.ID, income.Category, income.Amount, income.Date.Format(dbDateLayout))
		if err != nil {
			return err
		}
	}

	insertExpense := "INSERT INTO expense (position, id, category, description, amount, entry_date) VALUES (?, ?, ?, ?, ?, ?);"
	for i, expense := range expenses {
		_, err := txn.ExecContext(ctx, insertExpense, i, expense.ID, expense.Category, expense.Description, expense.Amount, expense.Date.Format(dbDateLayout))
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *sqlStorage) LoadSavingsGoal(ctx context.Context) (ledger.SavingsGoal, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	var row dbSavingsGoal
	err := s.db.QueryRowContext(ctx, "SELECT amount, is_set FROM savings_goal WHERE id = 1;").Scan(&row.Amount, &row.IsSet)
	if err == sql.ErrNoRows {
		return ledger.SavingsGoal{}, nil
	}
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to get savings goal in Storage.LoadSavingsGoal() function | Error: %v", traceID, err)
		return ledger.SavingsGoal{}, appErrors.New(appErrors.Internal, "Failed to load the savings goal, try again later.")
	}
	return ledger.SavingsGoal{Amount: row.Amount, IsSet: row.IsSet}, nil
}

func (s *sqlStorage) SaveSavingsGoal(ctx context.Context, goal ledger.SavingsGoal) error {
	traceID := contextutil.TraceIDFromContext(ctx)
	failed := appErrors.New(appErrors.Internal, "Failed to save the savings goal, try again later.")

	txn, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to start transaction in Storage.SaveSavingsGoal() function | Error: %v", traceID, err)
		return failed
	}
	if _, err := txn.ExecContext(ctx, "DELETE FROM savings_goal WHERE id = 1;"); err != nil {
		txn.Rollback()
		logging.Logger.Errorf("[TraceID=%s] | failed to clear savings goal in Storage.SaveSavingsGoal() function | Error: %v", traceID, err)
		return failed
	}
	if _, err := txn.ExecContext(ctx, "INSERT INTO savings_goal (id, amount, is_set) VALUES (1, ?, ?);", goal.Amount, goal.IsSet); err != nil {
		txn.Rollback()
		logging.Logger.Errorf("[TraceID=%s] | failed to insert savings goal in Storage.SaveSavingsGoal() function | Error: %v", traceID, err)
		return failed
	}
	if err := txn.Commit(); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to commit transaction in Storage.SaveSavingsGoal() function | Error: %v", traceID, err)
		return failed
	}
	return nil
}
