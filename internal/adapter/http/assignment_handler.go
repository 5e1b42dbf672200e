package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	ucassignment "expense-approval-backend/internal/usecase/assignment"
)

type AssignmentHandler struct{ uc *ucassignment.Usecase }

func NewAssignmentHandler(uc *ucassignment.Usecase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

func (h *AssignmentHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AssignmentHandler) Create(c echo.Context) error {
	var req ucassignment.UpsertInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AssignmentHandler) Reassign(c echo.Context) error {
	id, err := pathID(c, "assignment_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid assignment_id"})
	}
	var req ucassignment.UpsertInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.Reassign(c.Request().Context(), id, req); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete always rejects: removing a mapping outright would leave its
// department without coordinator coverage.
func (h *AssignmentHandler) Delete(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: "direct delete is disabled, reassign the coordinator instead",
	})
}
