package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "02-01-2006"

// Record is the read view shared by incomes and expenses.
type Record interface {
	GetCategory() string
	GetDescription() string
	GetAmount() decimal.Decimal
	GetDate() time.Time
	String() string
}

type Income struct {
	ID       string
	Category string
	Amount   decimal.Decimal
	Date     time.Time
}

type Expense struct {
	ID          string
	Category    string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
}

func (i Income) GetCategory() string        { return i.Category }
func (i Income) GetDescription() string     { return "" }
func (i Income) GetAmount() decimal.Decimal { return i.Amount }
func (i Income) GetDate() time.Time         { return i.Date }

// String renders the income as "category | $amount | date".
func (i Income) String() string {
	return fmt.Sprintf("%s | %s | %s", i.Category, FormatAmount(i.Amount), FormatDate(i.Date))
}

func (e Expense) GetCategory() string        { return e.Category }
func (e Expense) GetDescription() string     { return e.Description }
func (e Expense) GetAmount() decimal.Decimal { return e.Amount }
func (e Expense) GetDate() time.Time         { return e.Date }

// String renders the expense as "category | description | $amount | date".
func (e Expense) String() string {
	return fmt.Sprintf("%s | %s | %s | %s", e.Category, e.Description, FormatAmount(e.Amount), FormatDate(e.Date))
}

func FormatAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
