package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"expense-approval-backend/internal/domain/expense"
	domain "expense-approval-backend/internal/domain/project"
)

type ProjectRepository struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) *ProjectRepository { return &ProjectRepository{db: db} }

func (r *ProjectRepository) GetByCode(ctx context.Context, code string) (*domain.Project, error) {
	var out domain.Project
	res := r.db.WithContext(ctx).Where("project_code = ?", code).First(&out)
	return &out, res.Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, projectID uint64) (*domain.Project, error) {
	var out domain.Project
	res := r.db.WithContext(ctx).Where("project_id = ?", projectID).First(&out)
	return &out, res.Error
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	var out []domain.Project
	err := r.db.WithContext(ctx).Order("project_code ASC").Find(&out).Error
	return out, err
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return codeTaken(r.db.WithContext(ctx).Create(p).Error)
}

func (r *ProjectRepository) Save(ctx context.Context, p *domain.Project) error {
	return codeTaken(r.db.WithContext(ctx).Save(p).Error)
}

func (r *ProjectRepository) Delete(ctx context.Context, projectID uint64) error {
	res := r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&domain.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProjectRepository) InUse(ctx context.Context, projectID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&expense.Expense{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count > 0, err
}

// codeTaken translates the unique index violation on project_code. Both the
// MySQL and sqlite drivers surface the index name in the error text.
func codeTaken(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "project_code") ||
		strings.Contains(strings.ToLower(err.Error()), "duplicate") {
		return domain.ErrCodeTaken
	}
	return err
}
