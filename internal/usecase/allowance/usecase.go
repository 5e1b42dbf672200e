package allowance

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "expense-approval-backend/internal/domain/allowance"
	expensedomain "expense-approval-backend/internal/domain/expense"
)

type UpsertInput struct {
	DesignationID uint64  `json:"designation_id" validate:"required"`
	Scope         string  `json:"scope" validate:"required"`
	Amount        float64 `json:"amount" validate:"gte=0"`
}

func (in UpsertInput) validate() error {
	if in.DesignationID == 0 {
		return expensedomain.Invalid("designation_id is required")
	}
	if in.Scope == "" {
		return expensedomain.Invalid("scope is required")
	}
	if in.Amount < 0 {
		return expensedomain.Invalid("amount must not be negative")
	}
	return nil
}

// Usecase manages the reference rate table. Rates are informational only:
// nothing here validates claim line items against them.
type Usecase struct {
	rates domain.Repository
}

func NewUsecase(rates domain.Repository) *Usecase {
	return &Usecase{rates: rates}
}

func (u *Usecase) List(ctx context.Context) ([]domain.Rate, error) {
	return u.rates.List(ctx)
}

func (u *Usecase) Create(ctx context.Context, in UpsertInput) (*domain.Rate, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	r := &domain.Rate{DesignationID: in.DesignationID, Scope: in.Scope, Amount: in.Amount}
	if err := u.rates.Create(ctx, r); err != nil {
		if errors.Is(err, domain.ErrRateExists) {
			return nil, &expensedomain.ValidationError{Msg: domain.ErrRateExists.Error()}
		}
		return nil, err
	}
	return r, nil
}

func (u *Usecase) Update(ctx context.Context, id uint64, in UpsertInput) (*domain.Rate, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	rates, err := u.rates.ListByDesignation(ctx, in.DesignationID)
	if err != nil {
		return nil, err
	}
	for _, existing := range rates {
		if existing.ID != id && existing.Scope == in.Scope {
			return nil, &expensedomain.ValidationError{Msg: domain.ErrRateExists.Error()}
		}
	}
	r := &domain.Rate{ID: id, DesignationID: in.DesignationID, Scope: in.Scope, Amount: in.Amount}
	if err := u.rates.Save(ctx, r); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &expensedomain.NotFoundError{Resource: "allowance rate"}
		}
		return nil, err
	}
	return r, nil
}

func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	if err := u.rates.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &expensedomain.NotFoundError{Resource: "allowance rate"}
		}
		return err
	}
	return nil
}
