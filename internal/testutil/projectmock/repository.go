package projectmock

import (
	"context"

	"gorm.io/gorm"

	domain "expense-approval-backend/internal/domain/project"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	GetByCodeFn func(ctx context.Context, code string) (*domain.Project, error)
	GetByIDFn   func(ctx context.Context, projectID uint64) (*domain.Project, error)
	ListFn      func(ctx context.Context) ([]domain.Project, error)
	CreateFn    func(ctx context.Context, p *domain.Project) error
	SaveFn      func(ctx context.Context, p *domain.Project) error
	DeleteFn    func(ctx context.Context, projectID uint64) error
	InUseFn     func(ctx context.Context, projectID uint64) (bool, error)
}

func (m *Repo) GetByCode(ctx context.Context, code string) (*domain.Project, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByID(ctx context.Context, projectID uint64) (*domain.Project, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, projectID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.Project, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Create(ctx context.Context, p *domain.Project) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Project) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, projectID uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, projectID)
	}
	return nil
}

func (m *Repo) InUse(ctx context.Context, projectID uint64) (bool, error) {
	if m.InUseFn != nil {
		return m.InUseFn(ctx, projectID)
	}
	return false, nil
}
