package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/budget_ledger/customErrors"
	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
	"github.com/shopspring/decimal"
)

const (
	MAX_AMOUNT_INTEGER_DIGITS = 7
	MAX_AMOUNT_DECIMAL_DIGITS = 2
	YEAR_LENGTH               = 4
)

const (
	MsgMissingCategory            = "Category is required. Please provide a category using category/."
	MsgInvalidCategoryFormat      = "Category must contain only letters and digits."
	MsgMissingDescription         = "Description is required. Please provide a description using desc/."
	MsgInvalidDescriptionFormat   = "Description must contain only letters and digits."
	MsgMissingAmount              = "Amount is required and must be greater than zero. Please provide an amount using amt/."
	MsgInvalidAmountFormat        = "Amount must be a valid number, e.g. amt/12.50."
	MsgAmountExceedsIntegerDigits = "Amount exceeds 7 digits. Please enter a number with up to 7 digits."
	MsgAmountExceedsDecimalDigits = "Amount exceeds 2 decimal places. Please enter a number with up to 2 decimal places."
	MsgMissingDate                = "Date is required. Please provide a date using d/DD-MM-YYYY."
	MsgInvalidDateFormat          = "Invalid date format. Please use DD-MM-YYYY."
	MsgInvalidDateValue           = "Invalid date. Please enter a real calendar date in DD-MM-YYYY format."
	MsgInvalidYearLength          = "Year must be 4 digits."
	MsgMissingIndex               = "Please provide the index of the entry."
	MsgNonNumericIndex            = "Index must be a positive whole number."
)

var (
	alphanumericRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	numberRegex       = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)
	dateRegex         = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	dateLikeRegex     = regexp.MustCompile(`^\d{1,2}-\d{1,2}-(\d+)$`)
	digitsRegex       = regexp.MustCompile(`^\d+$`)
)

func IsAlphanumeric(s string) bool {
	return alphanumericRegex.MatchString(s)
}

// ValidateCategory trims the value and rejects it when empty. With
// alphanumericOnly set, any character other than ASCII letters and digits is
// rejected as well.
func ValidateCategory(value string, alphanumericOnly bool) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", appErrors.New(appErrors.MissingCategory, MsgMissingCategory)
	}
	if alphanumericOnly && !IsAlphanumeric(value) {
		return "", appErrors.New(appErrors.InvalidCategoryFormat, MsgInvalidCategoryFormat)
	}
	return value, nil
}

func ValidateDescription(value string, alphanumericOnly bool) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", appErrors.New(appErrors.MissingDescription, MsgMissingDescription)
	}
	if alphanumericOnly && !IsAlphanumeric(value) {
		return "", appErrors.New(appErrors.InvalidDescriptionFormat, MsgInvalidDescriptionFormat)
	}
	return value, nil
}

// ValidateAmount parses a strictly positive amount with at most 7 integer
// digits and 2 decimal digits. Zero and negative values count as missing.
func ValidateAmount(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, appErrors.New(appErrors.MissingAmount, MsgMissingAmount)
	}
	if value[0] == '-' && numberRegex.MatchString(value) {
		return decimal.Zero, appErrors.New(appErrors.MissingAmount, MsgMissingAmount)
	}

	amount, err := ParseNumber(value)
	if err != nil {
		return decimal.Zero, err
	}
	if !amount.IsPositive() {
		return decimal.Zero, appErrors.New(appErrors.MissingAmount, MsgMissingAmount)
	}
	return amount, nil
}

// ParseNumber checks the numeric shape and digit limits of value without
// requiring it to be positive.
func ParseNumber(value string) (decimal.Decimal, error) {
	if !numberRegex.MatchString(value) {
		return decimal.Zero, appErrors.New(appErrors.InvalidAmountFormat, MsgInvalidAmountFormat)
	}

	sign := ""
	unsigned := value
	if value[0] == '+' || value[0] == '-' {
		sign = value[:1]
		unsigned = value[1:]
	}

	intPart, fracPart, _ := strings.Cut(unsigned, ".")
	if len(intPart) > MAX_AMOUNT_INTEGER_DIGITS {
		return decimal.Zero, appErrors.New(appErrors.AmountExceedsIntegerDigits, MsgAmountExceedsIntegerDigits)
	}
	if len(fracPart) > MAX_AMOUNT_DECIMAL_DIGITS {
		return decimal.Zero, appErrors.New(appErrors.AmountExceedsDecimalDigits, MsgAmountExceedsDecimalDigits)
	}

	if intPart == "" {
		intPart = "0"
	}
	normalized := intPart
	if fracPart != "" {
		normalized += "." + fracPart
	}
	if sign == "-" {
		normalized = sign + normalized
	}

	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, appErrors.New(appErrors.InvalidAmountFormat, MsgInvalidAmountFormat)
	}
	return amount, nil
}

// ValidateDate parses a DD-MM-YYYY calendar date.
//
// The checks run in this order: absent value, year length of a date-like
// token, literal pattern, calendar validity, and finally the year length again.
func ValidateDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, appErrors.New(appErrors.MissingDate, MsgMissingDate)
	}

	if m := dateLikeRegex.FindStringSubmatch(value); m != nil && len(m[1]) != YEAR_LENGTH {
		return time.Time{}, appErrors.New(appErrors.InvalidYearLength, MsgInvalidYearLength)
	}
	if !dateRegex.MatchString(value) {
		return time.Time{}, appErrors.New(appErrors.InvalidDateFormat, MsgInvalidDateFormat)
	}

	date, err := time.Parse(ledger.DateLayout, value)
	if err != nil {
		return time.Time{}, appErrors.New(appErrors.InvalidDateValue, MsgInvalidDateValue)
	}

	year := value[strings.LastIndexByte(value, '-')+1:]
	if len(year) != YEAR_LENGTH {
		return time.Time{}, appErrors.New(appErrors.InvalidYearLength, MsgInvalidYearLength)
	}
	return date, nil
}

// ParseIndex parses a 1-based entry index.
func ParseIndex(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, appErrors.New(appErrors.NonNumericIndex, MsgMissingIndex)
	}
	if !digitsRegex.MatchString(value) {
		return 0, appErrors.New(appErrors.NonNumericIndex, MsgNonNumericIndex)
	}
	index, err := strconv.Atoi(value)
	if err != nil {
		return 0, appErrors.New(appErrors.NonNumericIndex, MsgNonNumericIndex)
	}
	return index, nil
}

// ResolveIndex converts a 1-based index into a position within a list of size entries.
func ResolveIndex(index int, size int) (int, error) {
	if size == 0 {
		return 0, appErrors.New(appErrors.IndexOutOfRange, "There are no entries to select.")
	}
	if index < 1 || index > size {
		return 0, appErrors.Newf(appErrors.IndexOutOfRange, "Index out of range. Please enter a number between 1 and %d.", size)
	}
	return index - 1, nil
}
