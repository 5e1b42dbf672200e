package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"expense-approval-backend/internal/domain/expense"
	"expense-approval-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func bind(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Expenses:    &ExpenseRepository{db: tx},
		History:     &HistoryRepository{db: tx},
		Employees:   &EmployeeRepository{db: tx},
		Projects:    &ProjectRepository{db: tx},
		Assignments: &AssignmentRepository{db: tx},
		Rates:       &AllowanceRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bind(tx))
	})
}

func (u *GormUoW) WithinExpenseTx(ctx context.Context, publicID string, fn func(r uow.Repos, e *expense.Expense) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := bind(tx)
		// lock the claim row up-front to prevent races
		e, err := r.Expenses.GetByPublicIDForUpdate(ctx, publicID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &expense.NotFoundError{Resource: "expense"}
			}
			return err
		}
		return fn(r, e)
	})
}
