package allowance

import "context"

type Repository interface {
	List(ctx context.Context) ([]Rate, error)
	ListByDesignation(ctx context.Context, designationID uint64) ([]Rate, error)
	Create(ctx context.Context, r *Rate) error
	Save(ctx context.Context, r *Rate) error
	Delete(ctx context.Context, id uint64) error
}
