package command

import (
	"fmt"

	appErrors "github.com/fatali-fataliyev/budget_ledger/customErrors"
	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
	"github.com/fatali-fataliyev/budget_ledger/internal/parser"
	"github.com/shopspring/decimal"
)

type SetSavingsGoalCommand struct {
	goal   *ledger.SavingsGoal
	amount decimal.Decimal
}

func NewSetSavingsGoal(input string, goal *ledger.SavingsGoal) (*SetSavingsGoalCommand, error) {
	b, err := body(input, SetSavingsGoal)
	if err != nil {
		return nil, err
	}
	fields := parser.Extract(b, parser.TagAmount)
	raw, _ := fields.Get(parser.TagAmount)
	amount, err := parser.ValidateAmount(raw)
	if err != nil {
		return nil, err
	}
	return &SetSavingsGoalCommand{goal: goal, amount: amount}, nil
}

func (c *SetSavingsGoalCommand) Name() string   { return SetSavingsGoal }
func (c *SetSavingsGoalCommand) Effect() Effect { return GoalChanged }

func (c *SetSavingsGoalCommand) Execute(_ *ledger.Ledger) (string, error) {
	c.goal.Set(c.amount)
	return "Savings goal set: " + ledger.FormatAmount(c.amount), nil
}

type ViewSavingsGoalCommand struct {
	goal *ledger.SavingsGoal
}

func NewViewSavingsGoal(goal *ledger.SavingsGoal) *ViewSavingsGoalCommand {
	return &ViewSavingsGoalCommand{goal: goal}
}

func (c *ViewSavingsGoalCommand) Name() string   { return ViewSavingsGoal }
func (c *ViewSavingsGoalCommand) Effect() Effect { return ReadOnly }

func (c *ViewSavingsGoalCommand) Execute(l *ledger.Ledger) (string, error) {
	if c.goal == nil || !c.goal.IsSet {
		return "", appErrors.Newf(appErrors.EntryNotFound, "No savings goal has been set. Usage: %s", usages[SetSavingsGoal])
	}
	saved := l.Balance()
	msg := fmt.Sprintf("Savings goal: %s\nCurrent savings: %s\nProgress: %s%%",
		ledger.FormatAmount(c.goal.Amount), ledger.FormatAmount(saved), c.goal.Progress(saved).StringFixed(2))
	if saved.GreaterThanOrEqual(c.goal.Amount) {
		msg += "\nCongratulations, you have reached your savings goal!"
	}
	return msg, nil
}
