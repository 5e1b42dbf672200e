package history

import (
	"context"

	"expense-approval-backend/internal/domain/expense"
)

type Repository interface {
	// Last returns the most recent entry for the claim, or nil when none
	// exists.
	Last(ctx context.Context, expenseID uint64) (*Entry, error)

	// Append writes the entry and the per-category snapshot rows keyed by
	// the new history id, in the surrounding transaction.
	Append(ctx context.Context, e *Entry, items expense.LineItems) error

	ListByExpense(ctx context.Context, expenseID uint64) ([]Entry, error)
	Snapshot(ctx context.Context, historyID uint64) (expense.LineItems, error)
}
