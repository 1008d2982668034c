package ledger

import (
	"github.com/shopspring/decimal"
)

// List is an ordered sequence of records with a running total of their amounts.
// The total is adjusted once per insert, once per delete and once per replace.
type List[T Record] struct {
	items []T
	total decimal.Decimal
}

func NewList[T Record](items []T) *List[T] {
	l := &List[T]{}
	for _, item := range items {
		l.Add(item)
	}
	return l
}

func (l *List[T]) Add(item T) {
	l.items = append(l.items, item)
	l.total = l.total.Add(item.GetAmount())
}

// Get returns the item at the zero-based position pos.
func (l *List[T]) Get(pos int) (T, bool) {
	if pos < 0 || pos >= len(l.items) {
		var zero T
		return zero, false
	}
	return l.items[pos], true
}

func (l *List[T]) Replace(pos int, item T) (T, bool) {
	old, ok := l.Get(pos)
	if !ok {
		return old, false
	}
	l.items[pos] = item
	l.total = l.total.Sub(old.GetAmount()).Add(item.GetAmount())
	return old, true
}

func (l *List[T]) Remove(pos int) (T, bool) {
	old, ok := l.Get(pos)
	if !ok {
		return old, false
	}
	l.items = append(l.items[:pos], l.items[pos+1:]...)
	l.total = l.total.Sub(old.GetAmount())
	return old, true
}

// Items returns a copy; mutating it does not affect the list.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) Len() int {
	return len(l.items)
}

func (l *List[T]) Total() decimal.Decimal {
	return l.total
}

type Ledger struct {
	Incomes  *List[Income]
	Expenses *List[Expense]
}

func New(incomes []Income, expenses []Expense) *Ledger {
	return &Ledger{
		Incomes:  NewList(incomes),
		Expenses: NewList(expenses),
	}
}

// Balance is total income minus total expenses.
func (l *Ledger) Balance() decimal.Decimal {
	return l.Incomes.Total().Sub(l.Expenses.Total())
}
