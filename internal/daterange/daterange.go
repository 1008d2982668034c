package daterange

import (
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/budget_ledger/customErrors"
	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
	"github.com/fatali-fataliyev/budget_ledger/internal/parser"
	"github.com/shopspring/decimal"
)

const MsgInvalidMonth = "Invalid month. Please use MM-YYYY, e.g. 03-2025."

// Range is an inclusive interval of calendar days.
type Range struct {
	From time.Time
	To   time.Time
}

// New orders the two dates so that From is never after To.
func New(a, b time.Time) Range {
	if a.After(b) {
		a, b = b, a
	}
	return Range{From: a, To: b}
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// Month validates an MM-YYYY token by anchoring it to the first day of the
// month, and returns the range from the first to the last day of that month.
func Month(token string) (Range, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Range{}, appErrors.New(appErrors.InvalidDateFormat, MsgInvalidMonth)
	}

	first, err := parser.ValidateDate("01-" + token)
	if err != nil {
		if appErrors.KindOf(err) == appErrors.InvalidYearLength {
			return Range{}, err
		}
		return Range{}, appErrors.New(appErrors.InvalidDateFormat, MsgInvalidMonth)
	}

	return Range{From: first, To: LastDayOfMonth(first)}, nil
}

func FirstDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func LastDayOfMonth(t time.Time) time.Time {
	return FirstDayOfMonth(t).AddDate(0, 1, -1)
}

// Total sums the amounts of the records dated inside r. An empty range yields zero.
func Total[T ledger.Record](records []T, r Range) decimal.Decimal {
	total := decimal.Zero
	for _, record := range records {
		if r.Contains(record.GetDate()) {
			total = total.Add(record.GetAmount())
		}
	}
	return total
}
