package project

import "context"

type Repository interface {
	GetByCode(ctx context.Context, code string) (*Project, error)
	GetByID(ctx context.Context, projectID uint64) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Create(ctx context.Context, p *Project) error
	Save(ctx context.Context, p *Project) error
	Delete(ctx context.Context, projectID uint64) error

	// InUse reports whether any expense references the project; such
	// projects cannot be deleted.
	InUse(ctx context.Context, projectID uint64) (bool, error)
}
