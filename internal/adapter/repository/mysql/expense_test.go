package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	domain "expense-approval-backend/internal/domain/expense"
	"expense-approval-backend/pkg/id"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type expenseSQLite struct {
	ID                  uint64  `gorm:"primaryKey;column:expense_id"`
	PublicID            string  `gorm:"size:32;column:public_id;uniqueIndex"`
	EmpID               uint64  `gorm:"column:emp_id"`
	ProjectID           uint64  `gorm:"column:project_id"`
	SiteLocation        *string `gorm:"column:site_location"`
	SiteInchargeEmpCode *string `gorm:"column:site_incharge_emp_code"`
	Status              string  `gorm:"type:text;column:status"` // ← no enum
	ClaimAmount         float64 `gorm:"column:claim_amount"`

	CoordinatorReviewedBy *uint64    `gorm:"column:coordinator_reviewed_by"`
	CoordinatorReviewedAt *time.Time `gorm:"column:coordinator_reviewed_at"`
	CoordinatorComment    *string    `gorm:"column:coordinator_comment"`
	HRReviewedBy          *uint64    `gorm:"column:hr_reviewed_by"`
	HRReviewedAt          *time.Time `gorm:"column:hr_reviewed_at"`
	HRComment             *string    `gorm:"column:hr_comment"`
	AccountsReviewedBy    *uint64    `gorm:"column:accounts_reviewed_by"`
	AccountsReviewedAt    *time.Time `gorm:"column:accounts_reviewed_at"`
	AccountsComment       *string    `gorm:"column:accounts_comment"`

	TravelReceiptPath   *string `gorm:"column:travel_receipt_path"`
	HotelReceiptPath    *string `gorm:"column:hotel_receipt_path"`
	FoodReceiptPath     *string `gorm:"column:food_receipt_path"`
	SpecialApprovalPath *string `gorm:"column:special_approval_path"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (expenseSQLite) TableName() string { return "expense_form" }

type travelSQLite struct {
	ID              uint64    `gorm:"primaryKey;column:travel_id"`
	ExpenseID       uint64    `gorm:"column:expense_id;index"`
	EmpID           uint64    `gorm:"column:emp_id"`
	TravelDate      time.Time `gorm:"column:travel_date"`
	FromLocation    string    `gorm:"column:from_location"`
	ToLocation      string    `gorm:"column:to_location"`
	ModeOfTransport string    `gorm:"column:mode_of_transport"`
	FareAmount      float64   `gorm:"column:fare_amount"`
}

func (travelSQLite) TableName() string { return "travel_data" }

type allowanceSQLite struct {
	ID        uint64     `gorm:"primaryKey;column:id"`
	ExpenseID uint64     `gorm:"column:expense_id;index"`
	EmpID     uint64     `gorm:"column:emp_id"`
	FromDate  *time.Time `gorm:"column:from_date"`
	ToDate    *time.Time `gorm:"column:to_date"`
	Scope     string     `gorm:"column:scope"`
	NoOfDays  int        `gorm:"column:no_of_days"`
	Amount    float64    `gorm:"column:amount"`
}

type billSQLite struct {
	ID         uint64     `gorm:"primaryKey;column:id"`
	ExpenseID  uint64     `gorm:"column:expense_id;index"`
	FromDate   *time.Time `gorm:"column:from_date"`
	ToDate     *time.Time `gorm:"column:to_date"`
	Sharing    int        `gorm:"column:sharing"`
	Location   string     `gorm:"column:location"`
	BillAmount float64    `gorm:"column:bill_amount"`
}

type historySQLite struct {
	ID             uint64    `gorm:"primaryKey;column:history_id"`
	ExpenseID      uint64    `gorm:"column:expense_id;index"`
	EmpID          uint64    `gorm:"column:emp_id"`
	Action         string    `gorm:"column:action"`
	PreviousStatus string    `gorm:"column:previous_status"`
	NewStatus      string    `gorm:"column:new_status"`
	Comment        *string   `gorm:"column:comment"`
	ActionBy       uint64    `gorm:"column:action_by"`
	ActionAt       time.Time `gorm:"column:action_at"`
}

func (historySQLite) TableName() string { return "expense_history" }

type employeeSQLite struct {
	EmpID              uint64     `gorm:"primaryKey;column:emp_id"`
	EmpCode            string     `gorm:"column:emp_code;uniqueIndex"`
	FirstName          string     `gorm:"column:first_name"`
	MiddleName         *string    `gorm:"column:middle_name"`
	LastName           string     `gorm:"column:last_name"`
	Email              string     `gorm:"column:email"`
	DepartmentID       *uint64    `gorm:"column:department_id"`
	DesignationID      *uint64    `gorm:"column:designation_id"`
	LastEmploymentDate *time.Time `gorm:"column:last_employment_date"`
}

func (employeeSQLite) TableName() string { return "employees" }

type departmentSQLite struct {
	DepartmentID   uint64 `gorm:"primaryKey;column:department_id"`
	DepartmentName string `gorm:"column:department_name"`
}

func (departmentSQLite) TableName() string { return "departments" }

type designationSQLite struct {
	DesignationID   uint64 `gorm:"primaryKey;column:designation_id"`
	DesignationName string `gorm:"column:designation_name"`
}

func (designationSQLite) TableName() string { return "designations" }

type userSQLite struct {
	UserID       uint64 `gorm:"primaryKey;column:user_id"`
	EmpID        uint64 `gorm:"column:emp_id;uniqueIndex"`
	Username     string `gorm:"column:username;uniqueIndex"`
	PasswordHash string `gorm:"column:password_hash"`
	Role         string `gorm:"column:role"`
	Status       string `gorm:"column:status"`
}

func (userSQLite) TableName() string { return "users" }

type projectSQLite struct {
	ProjectID           uint64  `gorm:"primaryKey;column:project_id"`
	ProjectCode         string  `gorm:"column:project_code;uniqueIndex"`
	ProjectName         string  `gorm:"column:project_name"`
	SiteLocation        *string `gorm:"column:site_location"`
	SiteInchargeEmpCode *string `gorm:"column:site_incharge_emp_code"`
}

func (projectSQLite) TableName() string { return "projects" }

type assignmentSQLite struct {
	ID               uint64 `gorm:"primaryKey;column:id"`
	CoordinatorEmpID uint64 `gorm:"column:coordinator_emp_id;uniqueIndex:ux_coordinator_department"`
	DepartmentID     uint64 `gorm:"column:department_id;uniqueIndex:ux_coordinator_department"`
}

func (assignmentSQLite) TableName() string { return "coordinator_departments" }

type rateSQLite struct {
	ID            uint64  `gorm:"primaryKey;column:id"`
	DesignationID uint64  `gorm:"column:designation_id;uniqueIndex:ux_rate_designation_scope"`
	Scope         string  `gorm:"column:scope;uniqueIndex:ux_rate_designation_scope"`
	Amount        float64 `gorm:"column:amount"`
}

func (rateSQLite) TableName() string { return "allowance_rates" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe
// schema. TranslateError matches the production gorm config so unique index
// violations surface as gorm.ErrDuplicatedKey here too.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// IMPORTANT: migrate the sqlite-safe models, NOT the domain models.
	if err := db.AutoMigrate(
		&expenseSQLite{},
		&travelSQLite{},
		&historySQLite{},
		&employeeSQLite{},
		&departmentSQLite{},
		&designationSQLite{},
		&userSQLite{},
		&projectSQLite{},
		&assignmentSQLite{},
		&rateSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	for _, table := range []string{tableJourney, tableReturn, tableStay} {
		if err := db.Table(table).AutoMigrate(&allowanceSQLite{}); err != nil {
			t.Fatalf("auto-migrate %s: %v", table, err)
		}
	}
	for _, table := range []string{tableHotel, tableFood} {
		if err := db.Table(table).AutoMigrate(&billSQLite{}); err != nil {
			t.Fatalf("auto-migrate %s: %v", table, err)
		}
	}
	for _, table := range []string{snapJourneyTable, snapReturnTable, snapStayTable} {
		if err := db.Table(table).AutoMigrate(&snapAllowance{}); err != nil {
			t.Fatalf("auto-migrate %s: %v", table, err)
		}
	}
	if err := db.Table(snapTravelTable).AutoMigrate(&snapTravel{}); err != nil {
		t.Fatalf("auto-migrate %s: %v", snapTravelTable, err)
	}
	for _, table := range []string{snapHotelTable, snapFoodTable} {
		if err := db.Table(table).AutoMigrate(&snapBill{}); err != nil {
			t.Fatalf("auto-migrate %s: %v", table, err)
		}
	}
	return db
}

func makeExpense(empID, projectID uint64) *domain.Expense {
	return &domain.Expense{
		PublicID:    id.NewID32(),
		EmpID:       empID,
		ProjectID:   projectID,
		Status:      domain.StatusPending,
		ClaimAmount: 1450,
	}
}

func makeItems(empID uint64) domain.LineItems {
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	return domain.LineItems{
		Travel: []domain.TravelSegment{{
			EmpID: empID, TravelDate: day,
			FromLocation: "Pune", ToLocation: "Mumbai",
			ModeOfTransport: "train", FareAmount: 450,
		}},
		Journey: []domain.AllowanceEntry{{
			EmpID: empID, FromDate: &day, ToDate: &day,
			Scope: "Daily Allowance Metro", NoOfDays: 2, Amount: 500,
		}},
		Hotel: []domain.StayBill{{
			FromDate: &day, ToDate: &day, Sharing: 1,
			Location: "Mumbai", BillAmount: 1800,
		}},
	}
}

func TestExpenseCreateAndGetByPublicID(t *testing.T) {
	db := openTestDB(t)
	repo := NewExpenseRepository(db)
	ctx := context.Background()

	e := makeExpense(7, 3)
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID == 0 {
		t.Fatal("Create did not set auto-increment ID")
	}

	got, err := repo.GetByPublicID(ctx, e.PublicID)
	if err != nil {
		t.Fatalf("GetByPublicID: %v", err)
	}
	if got.EmpID != 7 || got.Status != domain.StatusPending {
		t.Errorf("unexpected expense: %+v", got)
	}
}

func TestExpenseGetByPublicID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewExpenseRepository(db)

	_, err := repo.GetByPublicID(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestExpenseSave_PersistsReview(t *testing.T) {
	db := openTestDB(t)
	repo := NewExpenseRepository(db)
	ctx := context.Background()

	e := makeExpense(7, 3)
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("Create: %v", err)
	}

	reviewer := uint64(2)
	at := time.Now().UTC().Truncate(time.Second)
	comment := "ok"
	e.Status = domain.StatusCoordinatorApproved
	e.Coordinator = domain.StageReview{ReviewedBy: &reviewer, ReviewedAt: &at, Comment: &comment}
	if err := repo.Save(ctx, e); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByPublicID(ctx, e.PublicID)
	if err != nil {
		t.Fatalf("GetByPublicID: %v", err)
	}
	if got.Status != domain.StatusCoordinatorApproved {
		t.Errorf("status not updated: %v", got.Status)
	}
	if got.Coordinator.ReviewedBy == nil || *got.Coordinator.ReviewedBy != reviewer {
		t.Errorf("coordinator review not persisted: %+v", got.Coordinator)
	}
	if got.HR.ReviewedBy != nil || got.Accounts.ReviewedBy != nil {
		t.Errorf("other stages must stay NULL: %+v", got)
	}
}

func TestReplaceLineItems(t *testing.T) {
	db := openTestDB(t)
	repo := NewExpenseRepository(db)
	ctx := context.Background()

	e := makeExpense(7, 3)
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.ReplaceLineItems(ctx, e.ID, makeItems(7)); err != nil {
		t.Fatalf("ReplaceLineItems: %v", err)
	}

	// A second replace must fully supersede the first set.
	next := makeItems(7)
	next.Travel[0].FareAmount = 900
	next.Hotel = nil
	next.Food = []domain.StayBill{{Location: "Mumbai", BillAmount: 320}}
	if err := repo.ReplaceLineItems(ctx, e.ID, next); err != nil {
		t.Fatalf("ReplaceLineItems again: %v", err)
	}

	items, err := repo.LineItems(ctx, e.ID)
	if err != nil {
		t.Fatalf("LineItems: %v", err)
	}
	if len(items.Travel) != 1 || items.Travel[0].FareAmount != 900 {
		t.Errorf("travel: %+v", items.Travel)
	}
	if len(items.Journey) != 1 || items.Journey[0].NoOfDays != 2 {
		t.Errorf("journey: %+v", items.Journey)
	}
	if len(items.Hotel) != 0 {
		t.Errorf("hotel must be cleared: %+v", items.Hotel)
	}
	if len(items.Food) != 1 || items.Food[0].BillAmount != 320 {
		t.Errorf("food: %+v", items.Food)
	}
}

func TestList_Scopes(t *testing.T) {
	db := openTestDB(t)
	repo := NewExpenseRepository(db)
	ctx := context.Background()

	deptEng := uint64(4)
	deptOps := uint64(5)
	seedListFixtures(t, db, deptEng, deptOps)

	reviewer := uint64(2)
	mine := makeExpense(7, 3)      // submitter in engineering
	theirs := makeExpense(8, 3)    // submitter in operations
	reviewed := makeExpense(8, 3)  // coordinator already acted
	reviewed.Status = domain.StatusCoordinatorApproved
	reviewed.Coordinator.ReviewedBy = &reviewer
	for _, e := range []*domain.Expense{mine, theirs, reviewed} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	tests := []struct {
		name  string
		scope domain.ListScope
		want  int
	}{
		{"admin sees all", domain.ListScope{All: true}, 3},
		{"own claims only", domain.ListScope{OwnEmpID: 7}, 1},
		{"coordinator department scope", domain.ListScope{OwnEmpID: 2, DepartmentIDs: []uint64{deptOps}}, 2},
		{"hr sees coordinator-reviewed", domain.ListScope{OwnEmpID: 3, ReviewedStage: stagePtr(domain.StageCoordinator)}, 1},
		{"accounts sees nothing yet", domain.ListScope{OwnEmpID: 3, ReviewedStage: stagePtr(domain.StageHR)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := repo.List(ctx, tt.scope)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(out) != tt.want {
				t.Fatalf("got %d summaries, want %d: %+v", len(out), tt.want, out)
			}
		})
	}
}

func TestList_JoinsReadModel(t *testing.T) {
	db := openTestDB(t)
	repo := NewExpenseRepository(db)
	ctx := context.Background()

	seedListFixtures(t, db, 4, 5)
	if err := repo.Create(ctx, makeExpense(7, 3)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	out, err := repo.List(ctx, domain.ListScope{All: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("summaries: %+v", out)
	}
	s := out[0]
	if s.EmployeeName != "Asha Rao" || s.EmpCode != "E-7" {
		t.Errorf("employee join: %+v", s)
	}
	if s.DepartmentName == nil || *s.DepartmentName != "Engineering" {
		t.Errorf("department join: %+v", s.DepartmentName)
	}
	if s.ProjectCode != "PRJ-3" || s.ProjectName != "Metro Bridge" {
		t.Errorf("project join: %+v", s)
	}
}

func stagePtr(s domain.Stage) *domain.Stage { return &s }

func seedListFixtures(t *testing.T, db *gorm.DB, deptEng, deptOps uint64) {
	t.Helper()
	rows := []any{
		&departmentSQLite{DepartmentID: deptEng, DepartmentName: "Engineering"},
		&departmentSQLite{DepartmentID: deptOps, DepartmentName: "Operations"},
		&designationSQLite{DesignationID: 1, DesignationName: "Engineer"},
		&employeeSQLite{EmpID: 7, EmpCode: "E-7", FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", DepartmentID: &deptEng, DesignationID: uintPtr(1)},
		&employeeSQLite{EmpID: 8, EmpCode: "E-8", FirstName: "Vikram", LastName: "Iyer", Email: "vikram@example.com", DepartmentID: &deptOps},
		&projectSQLite{ProjectID: 3, ProjectCode: "PRJ-3", ProjectName: "Metro Bridge"},
	}
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func uintPtr(v uint64) *uint64 { return &v }
