package command

import (
	"time"

	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
	"github.com/fatali-fataliyev/budget_ledger/internal/parser"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var expenseTags = []string{parser.TagCategory, parser.TagDescription, parser.TagAmount, parser.TagDate}

type LogExpenseCommand struct {
	expense ledger.Expense
}

// NewLogExpense validates category, description, amount and date, in that
// order. Category and description must be letters and digits only.
func NewLogExpense(input string) (*LogExpenseCommand, error) {
	b, err := body(input, LogExpense)
	if err != nil {
		return nil, err
	}
	fields := parser.Extract(b, expenseTags...)

	rawCategory, _ := fields.Get(parser.TagCategory)
	category, err := parser.ValidateCategory(rawCategory, true)
	if err != nil {
		return nil, err
	}
	rawDescription, _ := fields.Get(parser.TagDescription)
	description, err := parser.ValidateDescription(rawDescription, true)
	if err != nil {
		return nil, err
	}
	rawAmount, _ := fields.Get(parser.TagAmount)
	amount, err := parser.ValidateAmount(rawAmount)
	if err != nil {
		return nil, err
	}
	rawDate, _ := fields.Get(parser.TagDate)
	date, err := parser.ValidateDate(rawDate)
	if err != nil {
		return nil, err
	}

	return &LogExpenseCommand{
		expense: ledger.Expense{
			ID:          uuid.New().String(),
			Category:    category,
			Description: description,
			Amount:      amount,
			Date:        date,
		},
	}, nil
}

func (c *LogExpenseCommand) Name() string   { return LogExpense }
func (c *LogExpenseCommand) Effect() Effect { return LedgerChanged }

func (c *LogExpenseCommand) Expense() ledger.Expense {
	return c.expense
}

func (c *LogExpenseCommand) Execute(l *ledger.Ledger) (string, error) {
	l.Expenses.Add(c.expense)
	return "Expense logged: " + c.expense.String(), nil
}

// UpdateExpenseCommand re-validates only the tags that are present. Category
// and description are checked for emptiness but not for the letters-and-digits
// rule that applies to new expenses.
type UpdateExpenseCommand struct {
	index       int
	category    *string
	description *string
	amount      *decimal.Decimal
	date        *time.Time
}

func NewUpdateExpense(input string) (*UpdateExpenseCommand, error) {
	b, err := body(input, UpdateExpense)
	if err != nil {
		return nil, err
	}
	fields := parser.Extract(b, expenseTags...)

	index, err := parser.ParseIndex(fields.Leading)
	if err != nil {
		return nil, err
	}
	cmd := &UpdateExpenseCommand{index: index}

	if raw, ok := fields.Get(parser.TagCategory); ok {
		category, err := parser.ValidateCategory(raw, false)
		if err != nil {
			return nil, err
		}
		cmd.category = &category
	}
	if raw, ok := fields.Get(parser.TagDescription); ok {
		description, err := parser.ValidateDescription(raw, false)
		if err != nil {
			return nil, err
		}
		cmd.description = &description
	}
	if raw, ok := fields.Get(parser.TagAmount); ok {
		amount, err := parser.ValidateAmount(raw)
		if err != nil {
			return nil, err
		}
		cmd.amount = &amount
	}
	if raw, ok := fields.Get(parser.TagDate); ok {
		date, err := parser.ValidateDate(raw)
		if err != nil {
			return nil, err
		}
		cmd.date = &date
	}
	return cmd, nil
}

func (c *UpdateExpenseCommand) Name() string   { return UpdateExpense }
func (c *UpdateExpenseCommand) Effect() Effect { return LedgerChanged }

func (c *UpdateExpenseCommand) Execute(l *ledger.Ledger) (string, error) {
	pos, err := parser.ResolveIndex(c.index, l.Expenses.Len())
	if err != nil {
		return "", err
	}
	updated, _ := l.Expenses.Get(pos)
	if c.category != nil {
		updated.Category = *c.category
	}
	if c.description != nil {
		updated.Description = *c.description
	}
	if c.amount != nil {
		updated.Amount = *c.amount
	}
	if c.date != nil {
		updated.Date = *c.date
	}
	l.Expenses.Replace(pos, updated)
	return "Expense updated: " + updated.String(), nil
}

type DeleteExpenseCommand struct {
	index int
}

func NewDeleteExpense(input string) (*DeleteExpenseCommand, error) {
	b, err := body(input, DeleteExpense)
	if err != nil {
		return nil, err
	}
	index, err := parser.ParseIndex(b)
	if err != nil {
		return nil, err
	}
	return &DeleteExpenseCommand{index: index}, nil
}

func (c *DeleteExpenseCommand) Name() string   { return DeleteExpense }
func (c *DeleteExpenseCommand) Effect() Effect { return LedgerChanged }

func (c *DeleteExpenseCommand) Execute(l *ledger.Ledger) (string, error) {
	pos, err := parser.ResolveIndex(c.index, l.Expenses.Len())
	if err != nil {
		return "", err
	}
	removed, _ := l.Expenses.Remove(pos)
	return "Expense deleted: " + removed.String(), nil
}

type ListExpenseCommand struct{}

func NewListExpense() *ListExpenseCommand {
	return &ListExpenseCommand{}
}

func (c *ListExpenseCommand) Name() string   { return ListExpense }
func (c *ListExpenseCommand) Effect() Effect { return ReadOnly }

func (c *ListExpenseCommand) Execute(l *ledger.Ledger) (string, error) {
	if l.Expenses.Len() == 0 {
		return "No expense entries found.", nil
	}
	return numbered(l.Expenses.Items()) + "\nTotal expenses: " + ledger.FormatAmount(l.Expenses.Total()), nil
}
