// Package command builds validated ledger commands from command lines and
// applies them to a ledger.
//
// Construction is fail-fast: the first invalid field aborts it with a single
// customErrors.ErrorResponse. Nothing touches the ledger until Execute, and
// Execute never leaves a partial mutation behind when it fails.
package command

import (
	"fmt"
	"regexp"
	"strings"

	appErrors "github.com/fatali-fataliyev/budget_ledger/customErrors"
	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
	"github.com/fatali-fataliyev/budget_ledger/internal/parser"
)

const (
	AddIncome       = "add-income"
	LogExpense      = "log-expense"
	UpdateIncome    = "update-income"
	UpdateExpense   = "update-expense"
	DeleteIncome    = "delete-income"
	DeleteExpense   = "delete-expense"
	ListIncome      = "list-income"
	ListExpense     = "list-expense"
	FindExpense     = "find-expense"
	FindIncome      = "find-income"
	CompareExpense  = "compare"
	Balance         = "balance"
	SetSavingsGoal  = "set-savings-goal"
	ViewSavingsGoal = "view-savings-goal"
)

var commandWordRegex = regexp.MustCompile(`(?i)^[a-z]+(-[a-z]+)+$`)

var names = []string{
	AddIncome, LogExpense, UpdateIncome, UpdateExpense, DeleteIncome, DeleteExpense,
	ListIncome, ListExpense, FindExpense, FindIncome, CompareExpense, Balance,
	SetSavingsGoal, ViewSavingsGoal,
}

// IsName reports whether word is one of the command names.
func IsName(word string) bool {
	for _, n := range names {
		if n == word {
			return true
		}
	}
	return false
}

// Effect tells the caller what state a successful Execute changed.
type Effect int

const (
	ReadOnly Effect = iota
	LedgerChanged
	GoalChanged
)

type Command interface {
	Name() string
	Execute(l *ledger.Ledger) (string, error)
	Effect() Effect
}

var usages = map[string]string{
	AddIncome:      "add-income category/CATEGORY amt/AMOUNT d/DD-MM-YYYY",
	LogExpense:     "log-expense category/CATEGORY desc/DESCRIPTION amt/AMOUNT d/DD-MM-YYYY",
	UpdateIncome:   "update-income INDEX [category/CATEGORY] [amt/AMOUNT] [d/DD-MM-YYYY]",
	UpdateExpense:  "update-expense INDEX [category/CATEGORY] [desc/DESCRIPTION] [amt/AMOUNT] [d/DD-MM-YYYY]",
	DeleteIncome:   "delete-income INDEX",
	DeleteExpense:  "delete-expense INDEX",
	FindExpense:    "find-expense TAG KEYWORD",
	FindIncome:     "find-income TAG KEYWORD",
	CompareExpense: "compare MM-YYYY MM-YYYY",
	SetSavingsGoal: "set-savings-goal amt/AMOUNT",
}

func Usage(name string) string {
	return usages[name]
}

// body strips the command word from input when present and rejects an empty
// body. A leading word shaped like a different command name is rejected.
func body(input string, name string) (string, error) {
	rest := strings.TrimSpace(input)
	word, tail := parser.SplitCommand(rest)
	if word == name {
		rest = tail
	} else if commandWordRegex.MatchString(word) {
		return "", appErrors.Newf(appErrors.UnknownCommand, "Unknown command %s. Usage: %s", word, usages[name])
	}
	if rest == "" {
		return "", appErrors.Newf(appErrors.EmptyCommand, "The %s command needs more details. Usage: %s", name, usages[name])
	}
	return rest, nil
}

func numbered[T ledger.Record](records []T) string {
	var sb strings.Builder
	for i, r := range records {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, r.String())
	}
	return sb.String()
}
