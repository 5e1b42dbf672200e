package historymock

import (
	"context"

	"expense-approval-backend/internal/domain/expense"
	domain "expense-approval-backend/internal/domain/history"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository. When no
// functions are set it behaves like an in-memory append log, which covers
// most usecase tests without wiring.
type Repo struct {
	LastFn          func(ctx context.Context, expenseID uint64) (*domain.Entry, error)
	AppendFn        func(ctx context.Context, e *domain.Entry, items expense.LineItems) error
	ListByExpenseFn func(ctx context.Context, expenseID uint64) ([]domain.Entry, error)
	SnapshotFn      func(ctx context.Context, historyID uint64) (expense.LineItems, error)

	Entries   []domain.Entry
	Snapshots map[uint64]expense.LineItems
}

func (m *Repo) Last(ctx context.Context, expenseID uint64) (*domain.Entry, error) {
	if m.LastFn != nil {
		return m.LastFn(ctx, expenseID)
	}
	for i := len(m.Entries) - 1; i >= 0; i-- {
		if m.Entries[i].ExpenseID == expenseID {
			e := m.Entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (m *Repo) Append(ctx context.Context, e *domain.Entry, items expense.LineItems) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e, items)
	}
	e.ID = uint64(len(m.Entries) + 1)
	m.Entries = append(m.Entries, *e)
	if m.Snapshots == nil {
		m.Snapshots = map[uint64]expense.LineItems{}
	}
	m.Snapshots[e.ID] = items
	return nil
}

func (m *Repo) ListByExpense(ctx context.Context, expenseID uint64) ([]domain.Entry, error) {
	if m.ListByExpenseFn != nil {
		return m.ListByExpenseFn(ctx, expenseID)
	}
	var out []domain.Entry
	for _, e := range m.Entries {
		if e.ExpenseID == expenseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Repo) Snapshot(ctx context.Context, historyID uint64) (expense.LineItems, error) {
	if m.SnapshotFn != nil {
		return m.SnapshotFn(ctx, historyID)
	}
	return m.Snapshots[historyID], nil
}
