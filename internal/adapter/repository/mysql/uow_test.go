package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	project "expense-approval-backend/internal/domain/project"
	"expense-approval-backend/internal/domain/uow"
)

func TestWithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	err := u.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Projects.Create(ctx, &project.Project{ProjectCode: "PRJ-1", ProjectName: "Metro Bridge"}); err != nil {
			return err
		}
		return r.Expenses.Create(ctx, makeExpense(7, 1))
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	if _, err := NewProjectRepository(db).GetByCode(ctx, "PRJ-1"); err != nil {
		t.Fatalf("project must be visible after commit: %v", err)
	}
}

func TestWithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := u.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Projects.Create(ctx, &project.Project{ProjectCode: "PRJ-1", ProjectName: "Metro Bridge"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithinTx must surface the callback error, got %v", err)
	}

	_, err = NewProjectRepository(db).GetByCode(ctx, "PRJ-1")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("project must be gone after rollback, got %v", err)
	}
}
