package ledger

import (
	"github.com/shopspring/decimal"
)

// SavingsGoal is session state shared by the savings commands. It is loaded
// and saved on its own, independent of the income and expense lists.
type SavingsGoal struct {
	Amount decimal.Decimal
	IsSet  bool
}

func (g *SavingsGoal) Set(amount decimal.Decimal) {
	g.Amount = amount
	g.IsSet = true
}

// Progress returns saved/goal as a percentage, capped at 100.
func (g SavingsGoal) Progress(saved decimal.Decimal) decimal.Decimal {
	if !g.IsSet || !g.Amount.IsPositive() || !saved.IsPositive() {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	pct := saved.Div(g.Amount).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct.Round(2)
}
