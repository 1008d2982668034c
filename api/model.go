package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	appErrors "github.com/fatali-fataliyev/budget_ledger/customErrors"
)

// REQUESTS START:
type CommandRequest struct {
	Command string `json:"command"`
}

//REQUESTS END:

//RESPONSES:

type MessageResponse struct {
	Message string `json:"message"`
}

type SummaryResponse struct {
	IncomeCount  int    `json:"income_count"`
	ExpenseCount int    `json:"expense_count"`
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	Balance      string `json:"balance"`
	StorageType  string `json:"storage_type"`
}

func httpStatusFromError(err error) int {
	var appErr appErrors.ErrorResponse
	if !errors.As(err, &appErr) {
		return 500 //internal error
	}
	switch appErr.Code {
	case appErrors.ErrNotFound:
		return 404 // not found
	case appErrors.ErrInvalidInput:
		return 400 // bad request
	case appErrors.ErrAuth:
		return 401 // unauthorized
	default:
		return 500 //internal error
	}
}

// readCommandLine takes the command line from the "command" query parameter,
// or from a JSON body when the parameter is absent. An empty result is allowed.
func readCommandLine(query string, body io.Reader) (string, error) {
	if strings.TrimSpace(query) != "" {
		return strings.TrimSpace(query), nil
	}
	if body == nil {
		return "", nil
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read request body: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return "", nil
	}

	var req CommandRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return "", fmt.Errorf("invalid request body: %w", err)
	}
	return strings.TrimSpace(req.Command), nil
}
