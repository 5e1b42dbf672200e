package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	domain "expense-approval-backend/internal/domain/assignment"
	"expense-approval-backend/internal/domain/authz"
	"expense-approval-backend/internal/domain/employee"
	"expense-approval-backend/internal/testutil/assignmentmock"
	"expense-approval-backend/internal/testutil/employeemock"
	ucassignment "expense-approval-backend/internal/usecase/assignment"
)

func assignmentHandler(assignments *assignmentmock.Repo) *AssignmentHandler {
	employees := &employeemock.Repo{
		GetByEmpIDFn: func(ctx context.Context, empID uint64) (*employee.Employee, error) {
			return &employee.Employee{EmpID: empID, EmpCode: "E-2", FirstName: "Mira", LastName: "Shah"}, nil
		},
		ContactsByRoleFn: func(ctx context.Context, role authz.Role) ([]employee.Contact, error) {
			return []employee.Contact{{EmpID: 2, Name: "Mira Shah", Email: "mira@example.com"}}, nil
		},
	}
	return NewAssignmentHandler(ucassignment.NewUsecase(assignments, employees))
}

func TestAssignmentCreate_Success(t *testing.T) {
	e := newEchoWithValidator()
	repo := &assignmentmock.Repo{
		CreateFn: func(ctx context.Context, a *domain.Assignment) error {
			a.ID = 5
			return nil
		},
	}
	h := assignmentHandler(repo)

	req := httptest.NewRequest(stdhttp.MethodPost, "/coordinator-departments", mustJSON(map[string]any{
		"coordinator_emp_id": 2,
		"department_id":      4,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}
	var got domain.Assignment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.ID != 5 || got.CoordinatorEmpID != 2 || got.DepartmentID != 4 {
		t.Fatalf("unexpected assignment: %+v", got)
	}
}

func TestAssignmentCreate_ValidationFailed(t *testing.T) {
	e := newEchoWithValidator()
	h := assignmentHandler(&assignmentmock.Repo{})

	req := httptest.NewRequest(stdhttp.MethodPost, "/coordinator-departments", mustJSON(map[string]any{
		"coordinator_emp_id": 2,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if er.Error != "validation failed" || !containsFieldMsg(er.Details, "DepartmentID", "is required") {
		t.Fatalf("unexpected response: %+v", er)
	}
}

func TestAssignmentCreate_DuplicateMapping(t *testing.T) {
	e := newEchoWithValidator()
	repo := &assignmentmock.Repo{
		ExistsFn: func(ctx context.Context, coordinatorEmpID, departmentID uint64) (bool, error) {
			return true, nil
		},
	}
	h := assignmentHandler(repo)

	req := httptest.NewRequest(stdhttp.MethodPost, "/coordinator-departments", mustJSON(map[string]any{
		"coordinator_emp_id": 2,
		"department_id":      4,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", rec.Code, rec.Body.String())
	}
}

func TestAssignmentReassign_BadPathID(t *testing.T) {
	e := newEchoWithValidator()
	h := assignmentHandler(&assignmentmock.Repo{})

	req := httptest.NewRequest(stdhttp.MethodPut, "/coordinator-departments/abc", mustJSON(map[string]any{
		"coordinator_emp_id": 2,
		"department_id":      4,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("assignment_id")
	c.SetParamValues("abc")

	if err := h.Reassign(c); err != nil {
		t.Fatalf("Reassign error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != "invalid assignment_id" {
		t.Fatalf("error = %q", er.Error)
	}
}

func TestAssignmentDelete_AlwaysRejected(t *testing.T) {
	e := echo.New()
	h := assignmentHandler(&assignmentmock.Repo{})

	req := httptest.NewRequest(stdhttp.MethodDelete, "/coordinator-departments/5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("assignment_id")
	c.SetParamValues("5")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != "direct delete is disabled, reassign the coordinator instead" {
		t.Fatalf("error = %q", er.Error)
	}
}
