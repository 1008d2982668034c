package api

import (
	"fmt"
	"net/http"

	"github.com/0xcafe-io/iz"
	appErrors "github.com/fatali-fataliyev/budget_ledger/customErrors"
	"github.com/fatali-fataliyev/budget_ledger/internal/auth"
	"github.com/fatali-fataliyev/budget_ledger/internal/budget"
	"github.com/fatali-fataliyev/budget_ledger/internal/command"
	"github.com/fatali-fataliyev/budget_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/budget_ledger/internal/parser"
	"github.com/fatali-fataliyev/budget_ledger/logging"
)

const TraceIDHeader = "X-Trace-ID"

type Api struct {
	Service    *budget.BudgetTracker
	APIKeyHash string
}

func NewApi(service *budget.BudgetTracker, apiKeyHash string) *Api {
	return &Api{
		Service:    service,
		APIKeyHash: apiKeyHash,
	}
}

type builder func(line string) (command.Command, error)

// Register binds every ledger route to server.
func (api *Api) Register(server *http.ServeMux) {
	// INCOME ENDPOINTS.
	server.HandleFunc("POST /api/income", iz.Bind(api.commandHandler(command.AddIncome, 201, func(line string) (command.Command, error) {
		return command.NewAddIncome(line)
	})))
	server.HandleFunc("PUT /api/income", iz.Bind(api.commandHandler(command.UpdateIncome, 200, func(line string) (command.Command, error) {
		return command.NewUpdateIncome(line)
	})))
	server.HandleFunc("DELETE /api/income", iz.Bind(api.commandHandler(command.DeleteIncome, 200, func(line string) (command.Command, error) {
		return command.NewDeleteIncome(line)
	})))
	server.HandleFunc("GET /api/income", iz.Bind(api.commandHandler(command.ListIncome, 200, func(string) (command.Command, error) {
		return command.NewListIncome(), nil
	})))
	server.HandleFunc("GET /api/income/find", iz.Bind(api.commandHandler(command.FindIncome, 200, func(line string) (command.Command, error) {
		return command.NewFindIncome(line)
	})))

	// EXPENSE ENDPOINTS.
	server.HandleFunc("POST /api/expense", iz.Bind(api.commandHandler(command.LogExpense, 201, func(line string) (command.Command, error) {
		return command.NewLogExpense(line)
	})))
	server.HandleFunc("PUT /api/expense", iz.Bind(api.commandHandler(command.UpdateExpense, 200, func(line string) (command.Command, error) {
		return command.NewUpdateExpense(line)
	})))
	server.HandleFunc("DELETE /api/expense", iz.Bind(api.commandHandler(command.DeleteExpense, 200, func(line string) (command.Command, error) {
		return command.NewDeleteExpense(line)
	})))
	server.HandleFunc("GET /api/expense", iz.Bind(api.commandHandler(command.ListExpense, 200, func(string) (command.Command, error) {
		return command.NewListExpense(), nil
	})))
	server.HandleFunc("GET /api/expense/find", iz.Bind(api.commandHandler(command.FindExpense, 200, func(line string) (command.Command, error) {
		return command.NewFindExpense(line)
	})))
	server.HandleFunc("GET /api/expense/compare", iz.Bind(api.commandHandler(command.CompareExpense, 200, func(line string) (command.Command, error) {
		return command.NewCompare(line)
	})))

	// SUMMARY ENDPOINTS.
	server.HandleFunc("GET /api/balance", iz.Bind(api.commandHandler(command.Balance, 200, func(string) (command.Command, error) {
		return command.NewBalance(), nil
	})))
	server.HandleFunc("GET /api/summary", iz.Bind(api.SummaryHandler))

	// SAVINGS GOAL ENDPOINTS.
	server.HandleFunc("POST /api/savings-goal", iz.Bind(api.commandHandler(command.SetSavingsGoal, 200, func(line string) (command.Command, error) {
		return command.NewSetSavingsGoal(line, api.Service.Goal())
	})))
	server.HandleFunc("GET /api/savings-goal", iz.Bind(api.commandHandler(command.ViewSavingsGoal, 200, func(string) (command.Command, error) {
		return command.NewViewSavingsGoal(api.Service.Goal()), nil
	})))
}

// commandHandler serves one command kind. A command line naming a different
// command is refused.
func (api *Api) commandHandler(name string, successStatus int, build builder) func(r *iz.Request) iz.Responder {
	return func(r *iz.Request) iz.Responder {
		ctx := contextutil.WithTraceID(r.Context(), r.Header.Get(TraceIDHeader))
		traceID := contextutil.TraceIDFromContext(ctx)

		if err := api.authorize(r); err != nil {
			return iz.Respond().Status(httpStatusFromError(err)).Text(appErrors.MessageOf(err))
		}

		line, err := readCommandLine(r.URL.Query().Get("command"), r.Body)
		if err != nil {
			logging.Logger.Debugf("[TraceID=%s] | bad %s request | Error: %v", traceID, name, err)
			return iz.Respond().Status(400).Text(err.Error())
		}

		if word, _ := parser.SplitCommand(line); word != name && command.IsName(word) {
			msg := fmt.Sprintf("This endpoint only accepts the %s command, got %s.", name, word)
			return iz.Respond().Status(400).Text(msg)
		}

		cmd, err := build(line)
		if err != nil {
			return iz.Respond().Status(httpStatusFromError(err)).Text(appErrors.MessageOf(err))
		}

		msg, err := api.Service.Run(ctx, cmd)
		if err != nil {
			return iz.Respond().Status(httpStatusFromError(err)).Text(appErrors.MessageOf(err))
		}

		logging.Logger.Infof("[TraceID=%s] | %s succeeded", traceID, name)
		return iz.Respond().Status(successStatus).JSON(MessageResponse{Message: msg})
	}
}

func (api *Api) SummaryHandler(r *iz.Request) iz.Responder {
	if err := api.authorize(r); err != nil {
		return iz.Respond().Status(httpStatusFromError(err)).Text(appErrors.MessageOf(err))
	}

	summary := api.Service.Summary()
	return iz.Respond().Status(200).JSON(SummaryResponse{
		IncomeCount:  summary.IncomeCount,
		ExpenseCount: summary.ExpenseCount,
		TotalIncome:  summary.TotalIncome,
		TotalExpense: summary.TotalExpense,
		Balance:      summary.Balance,
		StorageType:  summary.StorageType,
	})
}

func (api *Api) authorize(r *iz.Request) error {
	if api.APIKeyHash == "" {
		return nil
	}
	key := auth.KeyFromHeader(r.Header.Get("Authorization"))
	if key == "" {
		return appErrors.New(appErrors.Unauthorized, "authorization failed: Authorization header is required.")
	}
	if !auth.CompareAPIKey(api.APIKeyHash, key) {
		return appErrors.New(appErrors.Unauthorized, "authorization failed: invalid API key.")
	}
	return nil
}
