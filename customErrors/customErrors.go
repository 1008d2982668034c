package customErrors

import (
	"errors"
	"fmt"
)

const (
	ErrNotFound     = "NOT FOUND"
	ErrInvalidInput = "INVALID INPUT"
	ErrAuth         = "UNAUTHORIZED"
	ErrInternal     = "INTERNAL"
)

// Kind identifies one failure of the ledger. Every rejected command or query
// carries exactly one Kind.
type Kind int

const (
	Internal Kind = iota
	EmptyCommand
	MissingCategory
	InvalidCategoryFormat
	MissingDescription
	InvalidDescriptionFormat
	MissingAmount
	InvalidAmountFormat
	AmountExceedsIntegerDigits
	AmountExceedsDecimalDigits
	MissingDate
	InvalidDateFormat
	InvalidDateValue
	InvalidYearLength
	MissingKeyword
	InvalidTag
	InvalidKeywordFormat
	EntryNotFound
	IndexOutOfRange
	NonNumericIndex
	Unauthorized
	UnknownCommand
)

var kindNames = map[Kind]string{
	Internal:                   "Internal",
	EmptyCommand:               "EmptyCommand",
	MissingCategory:            "MissingCategory",
	InvalidCategoryFormat:      "InvalidCategoryFormat",
	MissingDescription:         "MissingDescription",
	InvalidDescriptionFormat:   "InvalidDescriptionFormat",
	MissingAmount:              "MissingAmount",
	InvalidAmountFormat:        "InvalidAmountFormat",
	AmountExceedsIntegerDigits: "AmountExceedsIntegerDigits",
	AmountExceedsDecimalDigits: "AmountExceedsDecimalDigits",
	MissingDate:                "MissingDate",
	InvalidDateFormat:          "InvalidDateFormat",
	InvalidDateValue:           "InvalidDateValue",
	InvalidYearLength:          "InvalidYearLength",
	MissingKeyword:             "MissingKeyword",
	InvalidTag:                 "InvalidTag",
	InvalidKeywordFormat:       "InvalidKeywordFormat",
	EntryNotFound:              "EntryNotFound",
	IndexOutOfRange:            "IndexOutOfRange",
	NonNumericIndex:            "NonNumericIndex",
	Unauthorized:               "Unauthorized",
	UnknownCommand:             "UnknownCommand",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Code returns the transport level class of the kind.
func (k Kind) Code() string {
	switch k {
	case Internal:
		return ErrInternal
	case EntryNotFound, IndexOutOfRange:
		return ErrNotFound
	case Unauthorized:
		return ErrAuth
	default:
		return ErrInvalidInput
	}
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func New(kind Kind, message string) ErrorResponse {
	return ErrorResponse{
		Code:    kind.Code(),
		Kind:    kind,
		Message: message,
	}
}

func Newf(kind Kind, format string, args ...any) ErrorResponse {
	return New(kind, fmt.Sprintf(format, args...))
}

func (e ErrorResponse) Error() string {
	return fmt.Sprintf("code: %s, kind: %s, message: %s", e.Code, e.Kind, e.Message)
}

// Is reports a match when target is an ErrorResponse of the same Kind.
func (e ErrorResponse) Is(target error) bool {
	t, ok := target.(ErrorResponse)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the Kind carried by err, or Internal for foreign errors.
func KindOf(err error) Kind {
	var appErr ErrorResponse
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// MessageOf returns the user facing message of err.
func MessageOf(err error) string {
	var appErr ErrorResponse
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
