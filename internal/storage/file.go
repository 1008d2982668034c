package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/budget_ledger/customErrors"
	"github.com/fatali-fataliyev/budget_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
	"github.com/fatali-fataliyev/budget_ledger/logging"
	"github.com/shopspring/decimal"
)

const (
	incomeFileName  = "incomes.txt"
	expenseFileName = "expenses.txt"
	goalFileName    = "savings_goal.txt"
	fileDelimiter   = '|'
)

// FileStorage keeps one '|'-delimited record per line. Field order follows
// the record's display form with the id appended:
//
//	income:  category|amount|DD-MM-YYYY|id
//	expense: category|description|amount|DD-MM-YYYY|id
//
// Corrupted lines are skipped on load.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) GetStorageType() string {
	return "file"
}

func (f *FileStorage) LoadAll(ctx context.Context) ([]ledger.Income, []ledger.Expense, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	incomeRows, err := f.readRecords(incomeFileName, 4)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to read %s in Storage.LoadAll() function | Error: %v", traceID, incomeFileName, err)
		return nil, nil, appErrors.New(appErrors.Internal, "Failed to load incomes, try again later.")
	}
	expenseRows, err := f.readRecords(expenseFileName, 5)
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to read %s in Storage.LoadAll() function | Error: %v", traceID, expenseFileName, err)
		return nil, nil, appErrors.New(appErrors.Internal, "Failed to load expenses, try again later.")
	}

	incomes := make([]ledger.Income, 0, len(incomeRows))
	for _, row := range incomeRows {
		amount, date, err := parseStoredAmountAndDate(row[1], row[2])
		if err != nil {
			logging.Logger.Warnf("[TraceID=%s] | skipping corrupted income line %q | Error: %v", traceID, strings.Join(row, "|"), err)
			continue
		}
		incomes = append(incomes, ledger.Income{ID: row[3], Category: row[0], Amount: amount, Date: date})
	}

	expenses := make([]ledger.Expense, 0, len(expenseRows))
	for _, row := range expenseRows {
		amount, date, err := parseStoredAmountAndDate(row[2], row[3])
		if err != nil {
			logging.Logger.Warnf("[TraceID=%s] | skipping corrupted expense line %q | Error: %v", traceID, strings.Join(row, "|"), err)
			continue
		}
		expenses = append(expenses, ledger.Expense{ID: row[4], Category: row[0], Description: row[1], Amount: amount, Date: date})
	}
	return incomes, expenses, nil
}

func (f *FileStorage) SaveAll(ctx context.Context, incomes []ledger.Income, expenses []ledger.Expense) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	incomeRows := make([][]string, 0, len(incomes))
	for _, i := range incomes {
		incomeRows = append(incomeRows, []string{i.Category, i.Amount.StringFixed(2), ledger.FormatDate(i.Date), i.ID})
	}
	expenseRows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		expenseRows = append(expenseRows, []string{e.Category, e.Description, e.Amount.StringFixed(2), ledger.FormatDate(e.Date), e.ID})
	}

	fail := func(stage string, err error) error {
		logging.Logger.Errorf("[TraceID=%s] | failed to %s in Storage.SaveAll() function | Error: %v", traceID, stage, err)
		return appErrors.New(appErrors.Internal, "Failed to save the ledger, try again later.")
	}

	// Both files are staged before either replaces its original.
	incomeTmp, err := f.stageRecords(incomeFileName, incomeRows)
	if err != nil {
		return fail("stage "+incomeFileName, err)
	}
	defer os.Remove(incomeTmp)
	expenseTmp, err := f.stageRecords(expenseFileName, expenseRows)
	if err != nil {
		return fail("stage "+expenseFileName, err)
	}
	defer os.Remove(expenseTmp)

	incomePath := filepath.Join(f.dir, incomeFileName)
	previous, err := os.ReadFile(incomePath)
	hadPrevious := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fail("back up "+incomeFileName, err)
	}

	if err := os.Rename(incomeTmp, incomePath); err != nil {
		return fail("replace "+incomeFileName, err)
	}
	if err := os.Rename(expenseTmp, filepath.Join(f.dir, expenseFileName)); err != nil {
		if restoreErr := restoreFile(incomePath, previous, hadPrevious); restoreErr != nil {
			logging.Logger.Errorf("[TraceID=%s] | failed to restore %s in Storage.SaveAll() function | Error: %v", traceID, incomeFileName, restoreErr)
		}
		return fail("replace "+expenseFileName, err)
	}
	return nil
}

// restoreFile puts back the content path had before a partial save.
func restoreFile(path string, previous []byte, existed bool) error {
	if !existed {
		return os.Remove(path)
	}
	return writeFileAtomic(path, previous)
}

func (f *FileStorage) LoadSavingsGoal(ctx context.Context) (ledger.SavingsGoal, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	data, err := os.ReadFile(filepath.Join(f.dir, goalFileName))
	if errors.Is(err, os.ErrNotExist) {
		return ledger.SavingsGoal{}, nil
	}
	if err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to read savings goal in Storage.LoadSavingsGoal() function | Error: %v", traceID, err)
		return ledger.SavingsGoal{}, appErrors.New(appErrors.Internal, "Failed to load the savings goal, try again later.")
	}

	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return ledger.SavingsGoal{}, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		logging.Logger.Warnf("[TraceID=%s] | ignoring corrupted savings goal %q | Error: %v", traceID, raw, err)
		return ledger.SavingsGoal{}, nil
	}
	return ledger.SavingsGoal{Amount: amount, IsSet: true}, nil
}

func (f *FileStorage) SaveSavingsGoal(ctx context.Context, goal ledger.SavingsGoal) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	content := ""
	if goal.IsSet {
		content = goal.Amount.StringFixed(2) + "\n"
	}
	if err := writeFileAtomic(filepath.Join(f.dir, goalFileName), []byte(content)); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to write savings goal in Storage.SaveSavingsGoal() function | Error: %v", traceID, err)
		return appErrors.New(appErrors.Internal, "Failed to save the savings goal, try again later.")
	}
	return nil
}

// readRecords returns the well-formed rows of name. A missing file is empty.
func (f *FileStorage) readRecords(name string, fields int) ([][]string, error) {
	file, err := os.Open(filepath.Join(f.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.Comma = fileDelimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				logging.Logger.Warnf("skipping unreadable line %d of %s | Error: %v", parseErr.Line, name, err)
				continue
			}
			return nil, err
		}
		if len(row) != fields {
			logging.Logger.Warnf("skipping line of %s with %d fields, want %d", name, len(row), fields)
			continue
		}
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// stageRecords writes rows to a temp file next to name and returns its path.
func (f *FileStorage) stageRecords(name string, rows [][]string) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = fileDelimiter
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return stageFile(filepath.Join(f.dir, name), []byte(sb.String()))
}

func stageFile(path string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := stageFile(path, data)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)
	return os.Rename(tmp, path)
}

func parseStoredAmountAndDate(rawAmount, rawDate string) (decimal.Decimal, time.Time, error) {
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("invalid amount %q: %w", rawAmount, err)
	}
	date, err := time.Parse(ledger.DateLayout, rawDate)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("invalid date %q: %w", rawDate, err)
	}
	return amount, date, nil
}
