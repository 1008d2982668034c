package command

import (
	"fmt"
	"strings"

	appErrors "github.com/fatali-fataliyev/budget_ledger/customErrors"
	"github.com/fatali-fataliyev/budget_ledger/internal/daterange"
	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
	"github.com/shopspring/decimal"
)

type monthSpan struct {
	token string
	span  daterange.Range
}

// CompareCommand reports the total expenses of two months.
type CompareCommand struct {
	months [2]monthSpan
}

func NewCompare(input string) (*CompareCommand, error) {
	b, err := body(input, CompareExpense)
	if err != nil {
		return nil, err
	}
	tokens := strings.Fields(b)
	if len(tokens) != 2 {
		return nil, appErrors.Newf(appErrors.InvalidDateFormat, "Please provide exactly two months. Usage: %s", usages[CompareExpense])
	}

	cmd := &CompareCommand{}
	for i, token := range tokens {
		span, err := daterange.Month(token)
		if err != nil {
			return nil, err
		}
		cmd.months[i] = monthSpan{token: token, span: span}
	}
	return cmd, nil
}

func (c *CompareCommand) Name() string   { return CompareExpense }
func (c *CompareCommand) Effect() Effect { return ReadOnly }

// Totals returns the expense totals of the first and second month.
func (c *CompareCommand) Totals(l *ledger.Ledger) (decimal.Decimal, decimal.Decimal) {
	expenses := l.Expenses.Items()
	return daterange.Total(expenses, c.months[0].span), daterange.Total(expenses, c.months[1].span)
}

func (c *CompareCommand) Execute(l *ledger.Ledger) (string, error) {
	first, second := c.Totals(l)
	return fmt.Sprintf("Total expenses for %s: %s\nTotal expenses for %s: %s",
		c.months[0].token, ledger.FormatAmount(first),
		c.months[1].token, ledger.FormatAmount(second)), nil
}

type BalanceCommand struct{}

func NewBalance() *BalanceCommand {
	return &BalanceCommand{}
}

func (c *BalanceCommand) Name() string   { return Balance }
func (c *BalanceCommand) Effect() Effect { return ReadOnly }

func (c *BalanceCommand) Execute(l *ledger.Ledger) (string, error) {
	return fmt.Sprintf("Total income: %s\nTotal expenses: %s\nBalance: %s",
		ledger.FormatAmount(l.Incomes.Total()),
		ledger.FormatAmount(l.Expenses.Total()),
		ledger.FormatAmount(l.Balance())), nil
}
