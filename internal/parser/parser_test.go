package parser

import (
	"strings"
	"testing"
	"time"

	appErrors "github.com/fatali-fataliyev/budget_ledger/customErrors"
	"github.com/stretchr/testify/require"
)

var expenseTags = []string{TagCategory, TagDescription, TagAmount, TagDate}

func TestExtractOrderInvariance(t *testing.T) {
	parts := []string{"category/Food", "desc/Lunch", "amt/12.50", "d/15-03-2025"}
	want := map[string]string{
		TagCategory:    "Food",
		TagDescription: "Lunch",
		TagAmount:      "12.50",
		TagDate:        "15-03-2025",
	}

	for _, perm := range permutations(parts) {
		body := strings.Join(perm, "   ")
		t.Run(body, func(t *testing.T) {
			fields := Extract(body, expenseTags...)
			require.Equal(t, 4, fields.Len())
			for tag, value := range want {
				got, ok := fields.Get(tag)
				require.True(t, ok, tag)
				require.Equal(t, value, got)
			}
		})
	}
}

func permutations(in []string) [][]string {
	if len(in) <= 1 {
		return [][]string{append([]string(nil), in...)}
	}
	var out [][]string
	for i := range in {
		rest := make([]string, 0, len(in)-1)
		rest = append(rest, in[:i]...)
		rest = append(rest, in[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]string{in[i]}, p...))
		}
	}
	return out
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		want        map[string]string
		absent      []string
		wantLeading string
	}{
		{
			name:   "absent tag has no entry",
			body:   "category/Food amt/3",
			want:   map[string]string{TagCategory: "Food", TagAmount: "3"},
			absent: []string{TagDescription, TagDate},
		},
		{
			name: "present empty tag",
			body: "category/ amt/3",
			want: map[string]string{TagCategory: "", TagAmount: "3"},
		},
		{
			name:   "unknown trailing tag is ignored",
			body:   "desc/Lunch amt/5 extra/parameter",
			want:   map[string]string{TagDescription: "Lunch", TagAmount: "5"},
			absent: []string{"extra"},
		},
		{
			name:   "unknown marker inside a value is kept as text",
			body:   "desc/Lunch w/bonus amt/5",
			want:   map[string]string{TagDescription: "Lunch w/bonus", TagAmount: "5"},
			absent: []string{"w"},
		},
		{
			name:        "unknown marker before the first tag stays in the leading text",
			body:        "2 w/x amt/10",
			want:        map[string]string{TagAmount: "10"},
			wantLeading: "2 w/x",
		},
		{
			name:        "only unknown markers end the leading text",
			body:        "2 extra/parameter",
			want:        map[string]string{},
			wantLeading: "2",
		},
		{
			name: "value keeps inner spaces",
			body: "category/Eating Out   desc/Team lunch",
			want: map[string]string{TagCategory: "Eating Out", TagDescription: "Team lunch"},
		},
		{
			name:        "leading text before first tag",
			body:        "2 amt/10",
			want:        map[string]string{TagAmount: "10"},
			wantLeading: "2",
		},
		{
			name: "first occurrence wins",
			body: "amt/1 amt/2",
			want: map[string]string{TagAmount: "1"},
		},
		{
			name:   "marker must start a token",
			body:   "desc/xamt/5",
			want:   map[string]string{TagDescription: "xamt/5"},
			absent: []string{TagAmount},
		},
		{
			name:        "no tags",
			body:        "hello world",
			want:        map[string]string{},
			wantLeading: "hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := Extract(tt.body, expenseTags...)
			require.Equal(t, len(tt.want), fields.Len())
			for tag, value := range tt.want {
				got, ok := fields.Get(tag)
				require.True(t, ok, tag)
				require.Equal(t, value, got)
			}
			for _, tag := range tt.absent {
				require.False(t, fields.Has(tag), tag)
			}
			require.Equal(t, tt.wantLeading, fields.Leading)
		})
	}
}

func TestSplitCommand(t *testing.T) {
	name, body := SplitCommand("  log-expense   category/Food amt/1 ")
	require.Equal(t, "log-expense", name)
	require.Equal(t, "category/Food amt/1", body)

	name, body = SplitCommand("list-income")
	require.Equal(t, "list-income", name)
	require.Equal(t, "", body)
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		input    string
		want     string
		wantKind appErrors.Kind
	}{
		{input: "12.50", want: "12.5"},
		{input: "1", want: "1"},
		{input: "9999999.99", want: "9999999.99"},
		{input: "0.01", want: "0.01"},
		{input: ".5", want: "0.5"},
		{input: "12.", want: "12"},
		{input: "+3", want: "3"},
		{input: "", wantKind: appErrors.MissingAmount},
		{input: "0", wantKind: appErrors.MissingAmount},
		{input: "0.00", wantKind: appErrors.MissingAmount},
		{input: "-5", wantKind: appErrors.MissingAmount},
		{input: "-12345678", wantKind: appErrors.MissingAmount},
		{input: "-1.005", wantKind: appErrors.MissingAmount},
		{input: "-abc", wantKind: appErrors.InvalidAmountFormat},
		{input: "abc", wantKind: appErrors.InvalidAmountFormat},
		{input: "1e5", wantKind: appErrors.InvalidAmountFormat},
		{input: "12,50", wantKind: appErrors.InvalidAmountFormat},
		{input: "12345678", wantKind: appErrors.AmountExceedsIntegerDigits},
		{input: "12.345", wantKind: appErrors.AmountExceedsDecimalDigits},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ValidateAmount(tt.input)
			if tt.want != "" {
				require.NoError(t, err)
				require.Equal(t, tt.want, got.String())
				return
			}
			require.Error(t, err)
			require.Equal(t, tt.wantKind, appErrors.KindOf(err))
		})
	}
}

func TestValidateAmountDigitLimitsProperty(t *testing.T) {
	for intLen := 1; intLen <= MAX_AMOUNT_INTEGER_DIGITS; intLen++ {
		for fracLen := 0; fracLen <= MAX_AMOUNT_DECIMAL_DIGITS; fracLen++ {
			value := strings.Repeat("9", intLen)
			if fracLen > 0 {
				value += "." + strings.Repeat("5", fracLen)
			}
			_, err := ValidateAmount(value)
			require.NoError(t, err, value)
		}
	}

	_, err := ValidateAmount(strings.Repeat("1", 8))
	require.Equal(t, MsgAmountExceedsIntegerDigits, appErrors.MessageOf(err))

	_, err = ValidateAmount("1.123")
	require.Equal(t, MsgAmountExceedsDecimalDigits, appErrors.MessageOf(err))
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		input    string
		want     time.Time
		wantKind appErrors.Kind
	}{
		{input: "15-03-2025", want: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)},
		{input: "29-02-2024", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{input: "", wantKind: appErrors.MissingDate},
		{input: "32-01-2024", wantKind: appErrors.InvalidDateValue},
		{input: "15-13-2024", wantKind: appErrors.InvalidDateValue},
		{input: "30-02-2024", wantKind: appErrors.InvalidDateValue},
		{input: "29-02-2023", wantKind: appErrors.InvalidDateValue},
		{input: "15-01-24", wantKind: appErrors.InvalidYearLength},
		{input: "15-01-20245", wantKind: appErrors.InvalidYearLength},
		{input: "2025-03-15", wantKind: appErrors.InvalidDateFormat},
		{input: "15/03/2025", wantKind: appErrors.InvalidDateFormat},
		{input: "5-3-2025", wantKind: appErrors.InvalidDateFormat},
		{input: "tomorrow", wantKind: appErrors.InvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ValidateDate(tt.input)
			if !tt.want.IsZero() {
				require.NoError(t, err)
				require.True(t, tt.want.Equal(got))
				return
			}
			require.Error(t, err)
			require.Equal(t, tt.wantKind, appErrors.KindOf(err))
		})
	}
}

func TestValidateCategoryAndDescription(t *testing.T) {
	got, err := ValidateCategory("  Food ", true)
	require.NoError(t, err)
	require.Equal(t, "Food", got)

	_, err = ValidateCategory("   ", true)
	require.Equal(t, appErrors.MissingCategory, appErrors.KindOf(err))

	for _, bad := range []string{"Fast Food", "Food!", "Café", "a-b"} {
		_, err = ValidateCategory(bad, true)
		require.Equal(t, appErrors.InvalidCategoryFormat, appErrors.KindOf(err), bad)

		_, err = ValidateDescription(bad, true)
		require.Equal(t, appErrors.InvalidDescriptionFormat, appErrors.KindOf(err), bad)
	}

	got, err = ValidateCategory("Fast Food", false)
	require.NoError(t, err)
	require.Equal(t, "Fast Food", got)

	_, err = ValidateDescription("", false)
	require.Equal(t, appErrors.MissingDescription, appErrors.KindOf(err))
}

func TestIndex(t *testing.T) {
	idx, err := ParseIndex(" 3 ")
	require.NoError(t, err)
	require.Equal(t, 3, idx)

	for _, bad := range []string{"", "abc", "-1", "1.5"} {
		_, err = ParseIndex(bad)
		require.Equal(t, appErrors.NonNumericIndex, appErrors.KindOf(err), bad)
	}

	pos, err := ResolveIndex(3, 3)
	require.NoError(t, err)
	require.Equal(t, 2, pos)

	for _, bad := range []int{0, 4} {
		_, err = ResolveIndex(bad, 3)
		require.Equal(t, appErrors.IndexOutOfRange, appErrors.KindOf(err))
	}

	_, err = ResolveIndex(1, 0)
	require.Equal(t, appErrors.IndexOutOfRange, appErrors.KindOf(err))
}
