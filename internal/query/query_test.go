package query

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

func expense(category, desc, amount string, date time.Time) ledger.Expense {
	return ledger.Expense{
		Category:    category,
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Date:        date,
	}
}

var sample = []ledger.Expense{
	expense("Food", "LunchWithTeam", "12.50", day(15, 3, 2025)),
	expense("Transport", "Taxi", "30", day(16, 3, 2025)),
	expense("Food", "Dinner", "45.75", day(1, 4, 2025)),
	expense("Rent", "April", "1200", day(1, 4, 2025)),
}

func descriptions(expenses []ledger.Expense) []string {
	out := make([]string, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, e.Description)
	}
	return out
}

func TestRunMatches(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		keyword string
		want    []string
	}{
		{name: "desc substring", tag: TagDescription, keyword: "Lunch", want: []string{"LunchWithTeam"}},
		{name: "desc is case sensitive", tag: TagDescription, keyword: "lunch", want: []string{}},
		{name: "category substring", tag: TagCategory, keyword: "Foo", want: []string{"LunchWithTeam", "Dinner"}},
		{name: "exact date", tag: TagDate, keyword: "01-04-2025", want: []string{"Dinner", "April"}},
		{name: "exact amount", tag: TagAmount, keyword: "12.50", want: []string{"LunchWithTeam"}},
		{name: "amount without decimals", tag: TagAmount, keyword: "30", want: []string{"Taxi"}},
		{name: "amount range inclusive", tag: TagAmountRange, keyword: "30 45.75", want: []string{"Taxi", "Dinner"}},
		{name: "reversed amount range", tag: TagAmountRange, keyword: "45.75 30", want: []string{}},
		{name: "date range", tag: TagDateRange, keyword: "16-03-2025 01-04-2025", want: []string{"Taxi", "Dinner", "April"}},
		{name: "reversed date range", tag: TagDateRange, keyword: "01-04-2025 16-03-2025", want: []string{"Taxi", "Dinner", "April"}},
		{name: "no match is not an error", tag: TagAmount, keyword: "99", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(tt.tag, tt.keyword, sample)
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Equal(t, tt.want, descriptions(got))
		})
	}
}

func TestRunAmountRangeOverIncomes(t *testing.T) {
	incomes := []ledger.Income{
		{Category: "Salary", Amount: decimal.RequireFromString("2500"), Date: day(1, 3, 2025)},
		{Category: "Bonus", Amount: decimal.RequireFromString("500"), Date: day(2, 3, 2025)},
		{Category: "Gift", Amount: decimal.RequireFromString("100"), Date: day(3, 3, 2025)},
	}

	got, err := Run(TagAmountRange, "500 3000", incomes)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Salary", got[0].Category)
	require.Equal(t, "Bonus", got[1].Category)

	got, err = Run(TagDescription, "Salary", incomes)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		keyword  string
		wantKind appErrors.Kind
	}{
		{name: "unknown tag", tag: "/note", keyword: "x", wantKind: appErrors.InvalidTag},
		{name: "tag without slash", tag: "desc", keyword: "x", wantKind: appErrors.InvalidTag},
		{name: "missing keyword", tag: TagDescription, keyword: "  ", wantKind: appErrors.MissingKeyword},
		{name: "bad date", tag: TagDate, keyword: "2025-03-15", wantKind: appErrors.InvalidKeywordFormat},
		{name: "two dates for /d", tag: TagDate, keyword: "15-03-2025 16-03-2025", wantKind: appErrors.InvalidKeywordFormat},
		{name: "amount too many digits", tag: TagAmount, keyword: "12345678", wantKind: appErrors.InvalidKeywordFormat},
		{name: "amount too many decimals", tag: TagAmount, keyword: "1.234", wantKind: appErrors.InvalidKeywordFormat},
		{name: "amount not numeric", tag: TagAmount, keyword: "abc", wantKind: appErrors.InvalidKeywordFormat},
		{name: "negative amount", tag: TagAmount, keyword: "-4", wantKind: appErrors.InvalidKeywordFormat},
		{name: "single amount for range", tag: TagAmountRange, keyword: "500", wantKind: appErrors.InvalidKeywordFormat},
		{name: "bad amount in range", tag: TagAmountRange, keyword: "500 lots", wantKind: appErrors.InvalidKeywordFormat},
		{name: "single date for range", tag: TagDateRange, keyword: "15-03-2025", wantKind: appErrors.InvalidKeywordFormat},
		{name: "invalid date in range", tag: TagDateRange, keyword: "15-03-2025 31-02-2025", wantKind: appErrors.InvalidKeywordFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(tt.tag, tt.keyword, sample)
			require.Nil(t, got)
			require.Error(t, err)
			require.Equal(t, tt.wantKind, appErrors.KindOf(err))
		})
	}
}

func TestInvalidTagListsValidTags(t *testing.T) {
	_, err := Run("/foo", "bar", sample)
	msg := appErrors.MessageOf(err)
	for _, tag := range ValidTags {
		require.Contains(t, msg, tag)
	}
}

func TestSplit(t *testing.T) {
	tag, keyword := Split("/amtrange  500 3000 ")
	require.Equal(t, TagAmountRange, tag)
	require.Equal(t, "500 3000", keyword)
}
