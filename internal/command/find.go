package command

import (
	appErrors "github.com/fatali-fataliyev/budget_ledger/customErrors"
	"github.com/fatali-fataliyev/budget_ledger/internal/ledger"
	"github.com/fatali-fataliyev/budget_ledger/internal/query"
)

// FindCommand runs the tag query engine over expenses or incomes.
// The query is validated at construction; zero matches is reported as EntryNotFound.
type FindCommand struct {
	name    string
	tag     string
	keyword string
}

func NewFindExpense(input string) (*FindCommand, error) {
	return newFind(input, FindExpense)
}

func NewFindIncome(input string) (*FindCommand, error) {
	return newFind(input, FindIncome)
}

func newFind(input string, name string) (*FindCommand, error) {
	b, err := body(input, name)
	if err != nil {
		return nil, err
	}
	tag, keyword := query.Split(b)
	if err := query.Validate(tag, keyword); err != nil {
		return nil, err
	}
	return &FindCommand{name: name, tag: tag, keyword: keyword}, nil
}

func (c *FindCommand) Name() string   { return c.name }
func (c *FindCommand) Effect() Effect { return ReadOnly }

func (c *FindCommand) Execute(l *ledger.Ledger) (string, error) {
	if c.name == FindIncome {
		matches, err := query.Run(c.tag, c.keyword, l.Incomes.Items())
		if err != nil {
			return "", err
		}
		if len(matches) == 0 {
			return "", appErrors.New(appErrors.EntryNotFound, "No matching income entries found.")
		}
		return "Here are the matching income entries:\n" + numbered(matches), nil
	}

	matches, err := query.Run(c.tag, c.keyword, l.Expenses.Items())
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", appErrors.New(appErrors.EntryNotFound, "No matching expenses found.")
	}
	return "Here are the matching expenses:\n" + numbered(matches), nil
}
