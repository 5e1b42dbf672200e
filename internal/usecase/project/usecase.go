package project

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	expensedomain "expense-approval-backend/internal/domain/expense"
	domain "expense-approval-backend/internal/domain/project"
)

type Usecase struct {
	projects domain.Repository
}

func NewUsecase(projects domain.Repository) *Usecase {
	return &Usecase{projects: projects}
}

func (u *Usecase) List(ctx context.Context) ([]domain.Project, error) {
	return u.projects.List(ctx)
}

// Search filters the catalogue by code or name, case-insensitively. The
// catalogue is small enough that filtering in memory beats a dedicated query.
func (u *Usecase) Search(ctx context.Context, q string) ([]domain.Project, error) {
	all, err := u.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return all, nil
	}
	var out []domain.Project
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.ProjectCode), q) ||
			strings.Contains(strings.ToLower(p.ProjectName), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (u *Usecase) Create(ctx context.Context, in UpsertInput) (*domain.Project, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := in.toProject()
	if err := u.projects.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrCodeTaken) {
			return nil, expensedomain.Invalid("project code %q already exists", in.ProjectCode)
		}
		return nil, err
	}
	return p, nil
}

func (u *Usecase) Update(ctx context.Context, projectID uint64, in UpsertInput) (*domain.Project, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, notFound(err)
	}
	if p.ProjectCode == domain.GeneralCode && in.ProjectCode != domain.GeneralCode {
		return nil, expensedomain.Invalid("the general project code cannot be changed")
	}
	p.ProjectCode = in.ProjectCode
	p.ProjectName = in.ProjectName
	p.SiteLocation = optional(in.SiteLocation)
	p.SiteInchargeEmpCode = optional(in.SiteInchargeEmpCode)
	if err := u.projects.Save(ctx, p); err != nil {
		if errors.Is(err, domain.ErrCodeTaken) {
			return nil, expensedomain.Invalid("project code %q already exists", in.ProjectCode)
		}
		return nil, err
	}
	return p, nil
}

func (u *Usecase) Delete(ctx context.Context, projectID uint64) error {
	p, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		return notFound(err)
	}
	if p.ProjectCode == domain.GeneralCode {
		return expensedomain.Invalid("the general project cannot be deleted")
	}
	used, err := u.projects.InUse(ctx, projectID)
	if err != nil {
		return err
	}
	if used {
		return &expensedomain.ValidationError{Msg: domain.ErrInUse.Error()}
	}
	return u.projects.Delete(ctx, projectID)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &expensedomain.NotFoundError{Resource: "project"}
	}
	return err
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
