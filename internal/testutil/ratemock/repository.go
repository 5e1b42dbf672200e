package ratemock

import (
	"context"

	"gorm.io/gorm"

	domain "expense-approval-backend/internal/domain/allowance"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	ListFn              func(ctx context.Context) ([]domain.Rate, error)
	ListByDesignationFn func(ctx context.Context, designationID uint64) ([]domain.Rate, error)
	CreateFn            func(ctx context.Context, r *domain.Rate) error
	SaveFn              func(ctx context.Context, r *domain.Rate) error
	DeleteFn            func(ctx context.Context, id uint64) error
}

func (m *Repo) List(ctx context.Context) ([]domain.Rate, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListByDesignation(ctx context.Context, designationID uint64) ([]domain.Rate, error) {
	if m.ListByDesignationFn != nil {
		return m.ListByDesignationFn(ctx, designationID)
	}
	return nil, nil
}

func (m *Repo) Create(ctx context.Context, r *domain.Rate) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Rate) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return gorm.ErrRecordNotFound
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return gorm.ErrRecordNotFound
}
