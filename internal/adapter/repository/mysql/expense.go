package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "expense-approval-backend/internal/domain/expense"
)

// Table names for the allowance and bill categories. The domain structs are
// shared per shape; the repository binds each to its table.
const (
	tableJourney = "journey_allowance"
	tableReturn  = "return_allowance"
	tableStay    = "stay_allowance"
	tableHotel   = "hotel_expenses"
	tableFood    = "food_expenses"
)

type ExpenseRepository struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository { return &ExpenseRepository{db: db} }

func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ExpenseRepository) Save(ctx context.Context, e *domain.Expense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *ExpenseRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Expense, error) {
	var out domain.Expense
	res := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&out)
	return &out, res.Error
}

func (r *ExpenseRepository) GetByPublicIDForUpdate(ctx context.Context, publicID string) (*domain.Expense, error) {
	var out domain.Expense
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("public_id = ?", publicID).
		First(&out)
	return &out, res.Error
}

// List filters server-side per the scope and joins the employee and project
// read models in follow-up batch queries, keeping the SQL portable.
func (r *ExpenseRepository) List(ctx context.Context, scope domain.ListScope) ([]domain.Summary, error) {
	q := r.db.WithContext(ctx).Model(&domain.Expense{})
	switch {
	case scope.All:
	case len(scope.DepartmentIDs) > 0:
		q = q.Where(
			"emp_id IN (?) OR emp_id = ?",
			r.db.Table("employees").Select("emp_id").Where("department_id IN ?", scope.DepartmentIDs),
			scope.OwnEmpID,
		)
	case scope.ReviewedStage != nil && *scope.ReviewedStage == domain.StageCoordinator:
		q = q.Where("coordinator_reviewed_by IS NOT NULL OR emp_id = ?", scope.OwnEmpID)
	case scope.ReviewedStage != nil && *scope.ReviewedStage == domain.StageHR:
		q = q.Where("hr_reviewed_by IS NOT NULL OR emp_id = ?", scope.OwnEmpID)
	default:
		q = q.Where("emp_id = ?", scope.OwnEmpID)
	}

	var expenses []domain.Expense
	if err := q.Order("created_at DESC, expense_id DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return []domain.Summary{}, nil
	}

	empIDs := make([]uint64, 0, len(expenses))
	projIDs := make([]uint64, 0, len(expenses))
	for _, e := range expenses {
		empIDs = append(empIDs, e.EmpID)
		projIDs = append(projIDs, e.ProjectID)
	}
	emps, err := r.employeeViews(ctx, empIDs)
	if err != nil {
		return nil, err
	}
	projs, err := r.projectViews(ctx, projIDs)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Summary, 0, len(expenses))
	for _, e := range expenses {
		s := domain.Summary{Expense: e}
		if ev, ok := emps[e.EmpID]; ok {
			s.EmployeeName = ev.fullName()
			s.EmpCode = ev.EmpCode
			s.DepartmentID = ev.DepartmentID
			s.DepartmentName = ev.DepartmentName
			s.DesignationName = ev.DesignationName
		}
		if pv, ok := projs[e.ProjectID]; ok {
			s.ProjectCode = pv.ProjectCode
			s.ProjectName = pv.ProjectName
		}
		out = append(out, s)
	}
	return out, nil
}

type employeeView struct {
	EmpID           uint64
	EmpCode         string
	FirstName       string
	MiddleName      *string
	LastName        string
	DepartmentID    *uint64
	DepartmentName  *string
	DesignationName *string
}

func (v employeeView) fullName() string {
	name := v.FirstName
	if v.MiddleName != nil && *v.MiddleName != "" {
		name += " " + *v.MiddleName
	}
	if v.LastName != "" {
		name += " " + v.LastName
	}
	return name
}

func (r *ExpenseRepository) employeeViews(ctx context.Context, empIDs []uint64) (map[uint64]employeeView, error) {
	var rows []employeeView
	err := r.db.WithContext(ctx).Table("employees").
		Select("employees.emp_id, employees.emp_code, employees.first_name, employees.middle_name, employees.last_name, employees.department_id, departments.department_name, designations.designation_name").
		Joins("LEFT JOIN departments ON departments.department_id = employees.department_id").
		Joins("LEFT JOIN designations ON designations.designation_id = employees.designation_id").
		Where("employees.emp_id IN ?", empIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint64]employeeView, len(rows))
	for _, row := range rows {
		out[row.EmpID] = row
	}
	return out, nil
}

type projectView struct {
	ProjectID   uint64
	ProjectCode string
	ProjectName string
}

func (r *ExpenseRepository) projectViews(ctx context.Context, projIDs []uint64) (map[uint64]projectView, error) {
	var rows []projectView
	err := r.db.WithContext(ctx).Table("projects").
		Select("project_id, project_code, project_name").
		Where("project_id IN ?", projIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint64]projectView, len(rows))
	for _, row := range rows {
		out[row.ProjectID] = row
	}
	return out, nil
}

// ReplaceLineItems swaps every child category: delete then reinsert. Meant
// to run inside the surrounding transaction.
func (r *ExpenseRepository) ReplaceLineItems(ctx context.Context, expenseID uint64, items domain.LineItems) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("expense_id = ?", expenseID).Delete(&domain.TravelSegment{}).Error; err != nil {
		return err
	}
	for _, table := range []string{tableJourney, tableReturn, tableStay, tableHotel, tableFood} {
		if err := db.Exec("DELETE FROM "+table+" WHERE expense_id = ?", expenseID).Error; err != nil {
			return err
		}
	}

	if len(items.Travel) > 0 {
		rows := make([]domain.TravelSegment, len(items.Travel))
		copy(rows, items.Travel)
		for i := range rows {
			rows[i].ID = 0
			rows[i].ExpenseID = expenseID
		}
		if err := db.Create(&rows).Error; err != nil {
			return err
		}
	}
	for _, batch := range []struct {
		table   string
		entries []domain.AllowanceEntry
	}{
		{tableJourney, items.Journey},
		{tableReturn, items.Return},
		{tableStay, items.Stay},
	} {
		if len(batch.entries) == 0 {
			continue
		}
		rows := make([]domain.AllowanceEntry, len(batch.entries))
		copy(rows, batch.entries)
		for i := range rows {
			rows[i].ID = 0
			rows[i].ExpenseID = expenseID
		}
		if err := db.Table(batch.table).Create(&rows).Error; err != nil {
			return err
		}
	}
	for _, batch := range []struct {
		table string
		bills []domain.StayBill
	}{
		{tableHotel, items.Hotel},
		{tableFood, items.Food},
	} {
		if len(batch.bills) == 0 {
			continue
		}
		rows := make([]domain.StayBill, len(batch.bills))
		copy(rows, batch.bills)
		for i := range rows {
			rows[i].ID = 0
			rows[i].ExpenseID = expenseID
		}
		if err := db.Table(batch.table).Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ExpenseRepository) LineItems(ctx context.Context, expenseID uint64) (domain.LineItems, error) {
	db := r.db.WithContext(ctx)
	var items domain.LineItems

	if err := db.Where("expense_id = ?", expenseID).Order("travel_id").Find(&items.Travel).Error; err != nil {
		return items, err
	}
	for _, batch := range []struct {
		table string
		dst   *[]domain.AllowanceEntry
	}{
		{tableJourney, &items.Journey},
		{tableReturn, &items.Return},
		{tableStay, &items.Stay},
	} {
		if err := db.Table(batch.table).Where("expense_id = ?", expenseID).Order("id").Find(batch.dst).Error; err != nil {
			return items, err
		}
	}
	for _, batch := range []struct {
		table string
		dst   *[]domain.StayBill
	}{
		{tableHotel, &items.Hotel},
		{tableFood, &items.Food},
	} {
		if err := db.Table(batch.table).Where("expense_id = ?", expenseID).Order("id").Find(batch.dst).Error; err != nil {
			return items, err
		}
	}
	return items, nil
}
