package command

import (
	"time"

	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
	"github.com/fatali-fataliyev/budget_ledger/internal/parser"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var incomeTags = []string{parser.TagCategory, parser.TagAmount, parser.TagDate}

type AddIncomeCommand struct {
	income ledger.Income
}

// NewAddIncome validates category, amount and date, in that order.
func NewAddIncome(input string) (*AddIncomeCommand, error) {
	b, err := body(input, AddIncome)
	if err != nil {
		return nil, err
	}
	fields := parser.Extract(b, incomeTags...)

	rawCategory, _ := fields.Get(parser.TagCategory)
	category, err := parser.ValidateCategory(rawCategory, false)
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

	return &AddIncomeCommand{
		income: ledger.Income{
			ID:       uuid.New().String(),
			Category: category,
			Amount:   amount,
			Date:     date,
		},
	}, nil
}

func (c *AddIncomeCommand) Name() string   { return AddIncome }
func (c *AddIncomeCommand) Effect() Effect { return LedgerChanged }

func (c *AddIncomeCommand) Income() ledger.Income {
	return c.income
}

func (c *AddIncomeCommand) Execute(l *ledger.Ledger) (string, error) {
	l.Incomes.Add(c.income)
	return "Income added: " + c.income.String(), nil
}

// UpdateIncomeCommand holds the staged values of the tags that were present.
// Absent tags keep the value of the existing record.
type UpdateIncomeCommand struct {
	index    int
	category *string
	amount   *decimal.Decimal
	date     *time.Time
}

func NewUpdateIncome(input string) (*UpdateIncomeCommand, error) {
	b, err := body(input, UpdateIncome)
	if err != nil {
		return nil, err
	}
	fields := parser.Extract(b, incomeTags...)

	index, err := parser.ParseIndex(fields.Leading)
	if err != nil {
		return nil, err
	}
	cmd := &UpdateIncomeCommand{index: index}

	if raw, ok := fields.Get(parser.TagCategory); ok {
		category, err := parser.ValidateCategory(raw, false)
		if err != nil {
			return nil, err
		}
		cmd.category = &category
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

func (c *UpdateIncomeCommand) Name() string   { return UpdateIncome }
func (c *UpdateIncomeCommand) Effect() Effect { return LedgerChanged }

func (c *UpdateIncomeCommand) Execute(l *ledger.Ledger) (string, error) {
	pos, err := parser.ResolveIndex(c.index, l.Incomes.Len())
	if err != nil {
		return "", err
	}
	updated, _ := l.Incomes.Get(pos)
	if c.category != nil {
		updated.Category = *c.category
	}
	if c.amount != nil {
		updated.Amount = *c.amount
	}
	if c.date != nil {
		updated.Date = *c.date
	}
	l.Incomes.Replace(pos, updated)
	return "Income updated: " + updated.String(), nil
}

type DeleteIncomeCommand struct {
	index int
}

func NewDeleteIncome(input string) (*DeleteIncomeCommand, error) {
	b, err := body(input, DeleteIncome)
	if err != nil {
		return nil, err
	}
	index, err := parser.ParseIndex(b)
	if err != nil {
		return nil, err
	}
	return &DeleteIncomeCommand{index: index}, nil
}

func (c *DeleteIncomeCommand) Name() string   { return DeleteIncome }
func (c *DeleteIncomeCommand) Effect() Effect { return LedgerChanged }

func (c *DeleteIncomeCommand) Execute(l *ledger.Ledger) (string, error) {
	pos, err := parser.ResolveIndex(c.index, l.Incomes.Len())
	if err != nil {
		return "", err
	}
	removed, _ := l.Incomes.Remove(pos)
	return "Income deleted: " + removed.String(), nil
}

type ListIncomeCommand struct{}

func NewListIncome() *ListIncomeCommand {
	return &ListIncomeCommand{}
}

func (c *ListIncomeCommand) Name() string   { return ListIncome }
func (c *ListIncomeCommand) Effect() Effect { return ReadOnly }

func (c *ListIncomeCommand) Execute(l *ledger.Ledger) (string, error) {
	if l.Incomes.Len() == 0 {
		return "No income entries found.", nil
	}
	return numbered(l.Incomes.Items()) + "\nTotal income: " + ledger.FormatAmount(l.Incomes.Total()), nil
}
