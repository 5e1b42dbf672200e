package uow

import (
	"context"

	"expense-approval-backend/internal/domain/allowance"
	"expense-approval-backend/internal/domain/assignment"
	"expense-approval-backend/internal/domain/employee"
	"expense-approval-backend/internal/domain/expense"
	"expense-approval-backend/internal/domain/history"
	"expense-approval-backend/internal/domain/project"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Expenses    expense.Repository
	History     history.Repository
	Employees   employee.Repository
	Projects    project.Repository
	Assignments assignment.Repository
	Rates       allowance.Repository
}

// UnitOfWork scopes a claim mutation (submit, resubmit, review) into one
// all-or-nothing transaction: any error rolls back every write.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error

	// WithinExpenseTx locks the claim row first, then runs fn with it.
	WithinExpenseTx(ctx context.Context, publicID string, fn func(r Repos, e *expense.Expense) error) error
}
