package daterange

import (
	"testing"
	"time"

	appErrors "github.com/fatali-fataliyev/budget_ledger/customErrors"
	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func day(d, m, y int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestMonth(t *testing.T) {
	tests := []struct {
		token    string
		from     time.Time
		to       time.Time
		wantKind appErrors.Kind
	}{
		{token: "03-2025", from: day(1, 3, 2025), to: day(31, 3, 2025)},
		{token: "04-2025", from: day(1, 4, 2025), to: day(30, 4, 2025)},
		{token: "02-2024", from: day(1, 2, 2024), to: day(29, 2, 2024)},
		{token: "02-2023", from: day(1, 2, 2023), to: day(28, 2, 2023)},
		{token: "12-2025", from: day(1, 12, 2025), to: day(31, 12, 2025)},
		{token: "13-2025", wantKind: appErrors.InvalidDateFormat},
		{token: "3-2025", wantKind: appErrors.InvalidDateFormat},
		{token: "March", wantKind: appErrors.InvalidDateFormat},
		{token: "", wantKind: appErrors.InvalidDateFormat},
		{token: "03-25", wantKind: appErrors.InvalidYearLength},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			r, err := Month(tt.token)
			if tt.wantKind != appErrors.Internal {
				require.Error(t, err)
				require.Equal(t, tt.wantKind, appErrors.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.True(t, tt.from.Equal(r.From))
			require.True(t, tt.to.Equal(r.To))
		})
	}
}

func TestRangeIsOrderIndependent(t *testing.T) {
	a := New(day(1, 3, 2025), day(10, 3, 2025))
	b := New(day(10, 3, 2025), day(1, 3, 2025))
	require.Equal(t, a, b)

	require.True(t, a.Contains(day(1, 3, 2025)))
	require.True(t, a.Contains(day(10, 3, 2025)))
	require.False(t, a.Contains(day(11, 3, 2025)))
	require.False(t, a.Contains(day(28, 2, 2025)))
}

func TestTotal(t *testing.T) {
	expenses := []ledger.Expense{
		{Category: "Food", Description: "A", Amount: decimal.RequireFromString("100"), Date: day(15, 3, 2025)},
		{Category: "Food", Description: "B", Amount: decimal.RequireFromString("500"), Date: day(15, 4, 2025)},
		{Category: "Food", Description: "C", Amount: decimal.RequireFromString("0.50"), Date: day(31, 3, 2025)},
	}

	march, err := Month("03-2025")
	require.NoError(t, err)
	require.Equal(t, "100.50", Total(expenses, march).StringFixed(2))

	may, err := Month("05-2025")
	require.NoError(t, err)
	require.Equal(t, "0.00", Total(expenses, may).StringFixed(2))
}
