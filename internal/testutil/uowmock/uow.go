package uowmock

import (
	"context"
	"errors"

	"expense-approval-backend/internal/domain/expense"
	"expense-approval-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn        func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinExpenseTxFn func(ctx context.Context, publicID string, fn func(r uow.Repos, e *expense.Expense) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough wires both transaction styles straight through to fn against
// the given repos, with no transactional behavior. The expense for
// WithinExpenseTx is fetched through r.Expenses.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		},
		WithinExpenseTxFn: func(ctx context.Context, publicID string, fn func(uow.Repos, *expense.Expense) error) error {
			e, err := r.Expenses.GetByPublicIDForUpdate(ctx, publicID)
			if err != nil {
				return err
			}
			return fn(r, e)
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinExpenseTx(ctx context.Context, publicID string, fn func(r uow.Repos, e *expense.Expense) error) error {
	if m.WithinExpenseTxFn != nil {
		return m.WithinExpenseTxFn(ctx, publicID, fn)
	}
	return errUnimplemented
}
