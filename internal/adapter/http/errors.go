package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"expense-approval-backend/internal/domain/expense"
	"expense-approval-backend/internal/usecase/auth"
)

// writeError maps domain errors onto the response contract: 400 for
// validation and transition failures, 401 for credentials, 403 for
// authorization, 404 for missing resources, 500 for everything else.
func writeError(c echo.Context, err error) error {
	var (
		ve  *expense.ValidationError
		ite *expense.InvalidTransitionError
		ae  *expense.AuthorizationError
		nfe *expense.NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Msg})
	case errors.As(err, &ite):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ite.Error()})
	case errors.Is(err, auth.ErrBadCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.As(err, &ae):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: ae.Msg})
	case errors.As(err, &nfe):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: nfe.Error()})
	}
	log.Printf("http: unexpected error: %v", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
