package expense

import "context"

type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByPublicID(ctx context.Context, publicID string) (*Expense, error)
	GetByPublicIDForUpdate(ctx context.Context, publicID string) (*Expense, error)
	Save(ctx context.Context, e *Expense) error

	// List applies the visibility scope server-side.
	List(ctx context.Context, scope ListScope) ([]Summary, error)

	// ReplaceLineItems swaps the whole owned child collection atomically
	// within the surrounding transaction (delete-and-reinsert per category).
	ReplaceLineItems(ctx context.Context, expenseID uint64, items LineItems) error
	LineItems(ctx context.Context, expenseID uint64) (LineItems, error)
}
