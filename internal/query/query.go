// Package query filters ledger records by a tag selector and keyword.
package query

import (
	"fmt"
	"strings"

	appErrors "github.com/fatali-fataliyev/budget_ledger/customErrors"
	"github.com/fatali-fataliyev/budget_ledger/internal/daterange"
	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
	"github.com/fatali-fataliyev/budget_ledger/internal/parser"
	"github.com/shopspring/decimal"
)

const (
	TagDescription = "/desc"
	TagCategory    = "/category"
	TagDate        = "/d"
	TagAmount      = "/amt"
	TagAmountRange = "/amtrange"
	TagDateRange   = "/drange"
)

var ValidTags = []string{TagDescription, TagCategory, TagDate, TagAmount, TagAmountRange, TagDateRange}

var keywordHints = map[string]string{
	TagDate:        "a single date in DD-MM-YYYY format, e.g. 15-03-2025",
	TagAmount:      "an amount with up to 7 digits and 2 decimal places, e.g. 12.50",
	TagAmountRange: "two amounts separated by a space, e.g. 500 3000",
	TagDateRange:   "two dates in DD-MM-YYYY format separated by a space, e.g. 01-03-2025 31-03-2025",
}

type matcher func(ledger.Record) bool

// Run validates keyword for tag and returns the records that match, in their
// original order. No match yields an empty, non-nil slice.
func Run[T ledger.Record](tag string, keyword string, records []T) ([]T, error) {
	match, err := compile(tag, keyword)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0)
	for _, record := range records {
		if match(record) {
			out = append(out, record)
		}
	}
	return out, nil
}

// Validate checks tag and keyword without running the query.
func Validate(tag string, keyword string) error {
	_, err := compile(tag, keyword)
	return err
}

// Split separates a query body "<tag> <keyword...>" into tag and keyword.
func Split(body string) (tag string, keyword string) {
	return parser.SplitCommand(body)
}

func compile(tag string, keyword string) (matcher, error) {
	if !isValidTag(tag) {
		return nil, appErrors.Newf(appErrors.InvalidTag, "Invalid tag %q. Valid tags are: %s.", tag, strings.Join(ValidTags, ", "))
	}

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, appErrors.Newf(appErrors.MissingKeyword, "Please provide a keyword for tag %s.", tag)
	}

	switch tag {
	case TagDescription:
		return func(r ledger.Record) bool {
			return strings.Contains(r.GetDescription(), keyword)
		}, nil

	case TagCategory:
		return func(r ledger.Record) bool {
			return strings.Contains(r.GetCategory(), keyword)
		}, nil

	case TagDate:
		tokens := strings.Fields(keyword)
		if len(tokens) != 1 {
			return nil, keywordFormatError(tag)
		}
		date, err := parser.ValidateDate(tokens[0])
		if err != nil {
			return nil, keywordFormatError(tag)
		}
		return func(r ledger.Record) bool {
			return r.GetDate().Equal(date)
		}, nil

	case TagAmount:
		tokens := strings.Fields(keyword)
		if len(tokens) != 1 {
			return nil, keywordFormatError(tag)
		}
		amount, err := parseKeywordAmount(tokens[0])
		if err != nil {
			return nil, keywordFormatError(tag)
		}
		return func(r ledger.Record) bool {
			return r.GetAmount().Equal(amount)
		}, nil

	case TagAmountRange:
		tokens := strings.Fields(keyword)
		if len(tokens) != 2 {
			return nil, keywordFormatError(tag)
		}
		low, err := parseKeywordAmount(tokens[0])
		if err != nil {
			return nil, keywordFormatError(tag)
		}
		high, err := parseKeywordAmount(tokens[1])
		if err != nil {
			return nil, keywordFormatError(tag)
		}
		// Bounds are taken in the order given; a reversed pair matches nothing.
		return func(r ledger.Record) bool {
			amount := r.GetAmount()
			return amount.GreaterThanOrEqual(low) && amount.LessThanOrEqual(high)
		}, nil

	case TagDateRange:
		tokens := strings.Fields(keyword)
		if len(tokens) != 2 {
			return nil, keywordFormatError(tag)
		}
		first, err := parser.ValidateDate(tokens[0])
		if err != nil {
			return nil, keywordFormatError(tag)
		}
		second, err := parser.ValidateDate(tokens[1])
		if err != nil {
			return nil, keywordFormatError(tag)
		}
		span := daterange.New(first, second)
		return func(r ledger.Record) bool {
			return span.Contains(r.GetDate())
		}, nil
	}

	return nil, appErrors.Newf(appErrors.InvalidTag, "Invalid tag %q. Valid tags are: %s.", tag, strings.Join(ValidTags, ", "))
}

func parseKeywordAmount(token string) (decimal.Decimal, error) {
	amount, err := parser.ParseNumber(token)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %s", token)
	}
	return amount, nil
}

func keywordFormatError(tag string) error {
	return appErrors.Newf(appErrors.InvalidKeywordFormat, "Invalid keyword format for tag %s. Please provide %s.", tag, keywordHints[tag])
}

func isValidTag(tag string) bool {
	for _, valid := range ValidTags {
		if tag == valid {
			return true
		}
	}
	return false
}
