package expensemock

import (
	"context"

	"gorm.io/gorm"

	domain "expense-approval-backend/internal/domain/expense"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only fill the fields a test needs; reads default to not-found, writes to ok.
type Repo struct {
	CreateFn                 func(ctx context.Context, e *domain.Expense) error
	GetByPublicIDFn          func(ctx context.Context, publicID string) (*domain.Expense, error)
	GetByPublicIDForUpdateFn func(ctx context.Context, publicID string) (*domain.Expense, error)
	SaveFn                   func(ctx context.Context, e *domain.Expense) error
	ListFn                   func(ctx context.Context, scope domain.ListScope) ([]domain.Summary, error)
	ReplaceLineItemsFn       func(ctx context.Context, expenseID uint64, items domain.LineItems) error
	LineItemsFn              func(ctx context.Context, expenseID uint64) (domain.LineItems, error)
}

func (m *Repo) Create(ctx context.Context, e *domain.Expense) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByPublicID(ctx context.Context, publicID string) (*domain.Expense, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, publicID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByPublicIDForUpdate(ctx context.Context, publicID string) (*domain.Expense, error) {
	if m.GetByPublicIDForUpdateFn != nil {
		return m.GetByPublicIDForUpdateFn(ctx, publicID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, e *domain.Expense) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, e)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, scope domain.ListScope) ([]domain.Summary, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, scope)
	}
	return nil, nil
}

func (m *Repo) ReplaceLineItems(ctx context.Context, expenseID uint64, items domain.LineItems) error {
	if m.ReplaceLineItemsFn != nil {
		return m.ReplaceLineItemsFn(ctx, expenseID, items)
	}
	return nil
}

func (m *Repo) LineItems(ctx context.Context, expenseID uint64) (domain.LineItems, error) {
	if m.LineItemsFn != nil {
		return m.LineItemsFn(ctx, expenseID)
	}
	return domain.LineItems{}, nil
}
