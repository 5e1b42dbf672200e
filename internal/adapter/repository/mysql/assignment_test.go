package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	domain "expense-approval-backend/internal/domain/assignment"
)

func TestAssignmentListJoinsView(t *testing.T) {
	db := openTestDB(t)
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	seedListFixtures(t, db, 4, 5)
	seedCoordinator(t, db, 2, "E-2", "Mira", "Shah")

	if err := repo.Create(ctx, &domain.Assignment{CoordinatorEmpID: 2, DepartmentID: 4}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	out, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("views: %+v", out)
	}
	v := out[0]
	if v.CoordinatorName != "Mira Shah" || v.CoordinatorEmpCode != "E-2" || v.DepartmentName != "Engineering" {
		t.Errorf("joined view: %+v", v)
	}
}

func TestAssignmentReassign(t *testing.T) {
	db := openTestDB(t)
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	a := &domain.Assignment{CoordinatorEmpID: 2, DepartmentID: 4}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Reassign(ctx, a.ID, 3, 4); err != nil {
		t.Fatalf("Reassign: %v", err)
	}
	depts, err := repo.DepartmentsFor(ctx, 3)
	if err != nil || len(depts) != 1 || depts[0] != 4 {
		t.Fatalf("DepartmentsFor after reassign: %v %v", depts, err)
	}
	if depts, _ := repo.DepartmentsFor(ctx, 2); len(depts) != 0 {
		t.Fatalf("old coordinator must lose the department: %v", depts)
	}

	err = repo.Reassign(ctx, 999, 3, 4)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestAssignmentExists(t *testing.T) {
	db := openTestDB(t)
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.Assignment{CoordinatorEmpID: 2, DepartmentID: 4}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := repo.Exists(ctx, 2, 4)
	if err != nil || !ok {
		t.Fatalf("Exists(2,4): ok=%v err=%v", ok, err)
	}
	ok, err = repo.Exists(ctx, 2, 5)
	if err != nil || ok {
		t.Fatalf("Exists(2,5): ok=%v err=%v", ok, err)
	}
}

func TestCoordinatorsForDepartment(t *testing.T) {
	db := openTestDB(t)
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	seedListFixtures(t, db, 4, 5)
	seedCoordinator(t, db, 2, "E-2", "Mira", "Shah")
	seedCoordinator(t, db, 3, "E-3", "Dev", "Nair")

	for _, a := range []*domain.Assignment{
		{CoordinatorEmpID: 2, DepartmentID: 4},
		{CoordinatorEmpID: 3, DepartmentID: 5},
	} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.CoordinatorsForDepartment(ctx, 4)
	if err != nil {
		t.Fatalf("CoordinatorsForDepartment: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Mira Shah" {
		t.Fatalf("contacts: %+v", got)
	}
}

func seedCoordinator(t *testing.T, db *gorm.DB, empID uint64, code, first, last string) {
	t.Helper()
	err := db.Create(&employeeSQLite{
		EmpID:     empID,
		EmpCode:   code,
		FirstName: first,
		LastName:  last,
		Email:     code + "@example.com",
	}).Error
	if err != nil {
		t.Fatalf("seed coordinator: %v", err)
	}
}
