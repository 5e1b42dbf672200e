package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"expense-approval-backend/internal/domain/authz"
	"expense-approval-backend/internal/domain/employee"
	"expense-approval-backend/internal/usecase/auth"
)

const actorKey = "actor"

// Auth verifies the bearer token, confirms the account is still active and
// stores the actor on the request context.
func Auth(secret string, employees employee.Repository) echo.MiddlewareFunc {
	key := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			actor, err := auth.Parse(strings.TrimSpace(token), key)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}

			// Tokens outlive account changes, so disabled or departed users
			// are rechecked against the database per request.
			usr, err := employees.GetUserByID(c.Request().Context(), actor.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "account no longer exists"})
			}
			emp, _ := employees.GetByEmpID(c.Request().Context(), usr.EmpID)
			if !usr.Active(emp, time.Now().UTC()) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "account is disabled"})
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// Actor returns the authenticated user stored by Auth.
func Actor(c echo.Context) (authz.User, bool) {
	actor, ok := c.Get(actorKey).(authz.User)
	return actor, ok
}

// Require rejects requests whose role is not granted the permission in the
// policy table.
func Require(p authz.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := Actor(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			if !authz.Can(actor.Role, p) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
			}
			return next(c)
		}
	}
}
