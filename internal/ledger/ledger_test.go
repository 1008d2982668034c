package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(d, m, y int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestListRunningTotal(t *testing.T) {
	l := NewList([]Income{
		{Category: "Salary", Amount: amount("2500"), Date: day(1, 3, 2025)},
		{Category: "Gift", Amount: amount("500"), Date: day(2, 3, 2025)},
	})
	require.True(t, l.Total().Equal(amount("3000")))

	l.Add(Income{Category: "Refund", Amount: amount("100.25"), Date: day(3, 3, 2025)})
	require.True(t, l.Total().Equal(amount("3100.25")))

	old, ok := l.Replace(0, Income{Category: "Salary", Amount: amount("2000"), Date: day(1, 3, 2025)})
	require.True(t, ok)
	require.True(t, old.Amount.Equal(amount("2500")))
	require.True(t, l.Total().Equal(amount("2600.25")))

	removed, ok := l.Remove(1)
	require.True(t, ok)
	require.Equal(t, "Gift", removed.Category)
	require.True(t, l.Total().Equal(amount("2100.25")))
	require.Equal(t, 2, l.Len())
}

func TestListOutOfRange(t *testing.T) {
	l := NewList[Expense](nil)

	_, ok := l.Remove(0)
	require.False(t, ok)
	_, ok = l.Replace(-1, Expense{})
	require.False(t, ok)
	require.True(t, l.Total().IsZero())
}

func TestItemsIsACopy(t *testing.T) {
	l := NewList([]Expense{{Category: "Food", Amount: amount("10")}})
	items := l.Items()
	items[0].Category = "Changed"

	got, _ := l.Get(0)
	require.Equal(t, "Food", got.Category)
}

func TestRecordString(t *testing.T) {
	e := Expense{Category: "Dining", Description: "DinnerWithFriends", Amount: amount("45.75"), Date: day(15, 3, 2025)}
	require.Equal(t, "Dining | DinnerWithFriends | $45.75 | 15-03-2025", e.String())

	i := Income{Category: "Salary", Amount: amount("2500"), Date: day(1, 3, 2025)}
	require.Equal(t, "Salary | $2500.00 | 01-03-2025", i.String())
}

func TestBalanceAndSavingsProgress(t *testing.T) {
	l := New(
		[]Income{{Category: "Salary", Amount: amount("1000")}},
		[]Expense{{Category: "Rent", Description: "March", Amount: amount("400")}},
	)
	require.True(t, l.Balance().Equal(amount("600")))

	var goal SavingsGoal
	require.True(t, goal.Progress(l.Balance()).IsZero())

	goal.Set(amount("1200"))
	require.True(t, goal.Progress(l.Balance()).Equal(amount("50")))

	goal.Set(amount("300"))
	require.True(t, goal.Progress(l.Balance()).Equal(amount("100")))
}
