package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "expense-approval-backend/internal/domain/allowance"
)

type AllowanceRepository struct{ db *gorm.DB }

func NewAllowanceRepository(db *gorm.DB) *AllowanceRepository { return &AllowanceRepository{db: db} }

func (r *AllowanceRepository) List(ctx context.Context) ([]domain.Rate, error) {
	var out []domain.Rate
	err := r.db.WithContext(ctx).Order("designation_id ASC, scope ASC").Find(&out).Error
	return out, err
}

func (r *AllowanceRepository) ListByDesignation(ctx context.Context, designationID uint64) ([]domain.Rate, error) {
	var out []domain.Rate
	err := r.db.WithContext(ctx).
		Where("designation_id = ?", designationID).
		Order("scope ASC").
		Find(&out).Error
	return out, err
}

func (r *AllowanceRepository) Create(ctx context.Context, rate *domain.Rate) error {
	return rateTaken(r.db.WithContext(ctx).Create(rate).Error)
}

func (r *AllowanceRepository) Save(ctx context.Context, rate *domain.Rate) error {
	res := r.db.WithContext(ctx).Model(&domain.Rate{}).
		Where("id = ?", rate.ID).
		Updates(map[string]any{
			"designation_id": rate.DesignationID,
			"scope":          rate.Scope,
			"amount":         rate.Amount,
		})
	if res.Error != nil {
		return rateTaken(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AllowanceRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Rate{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func rateTaken(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "duplicate") ||
		strings.Contains(err.Error(), "ux_rate_designation_scope") {
		return domain.ErrRateExists
	}
	return err
}
