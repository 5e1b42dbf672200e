package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"expense-approval-backend/internal/adapter/middleware"
	"expense-approval-backend/internal/domain/expense"
	"expense-approval-backend/internal/infrastructure/storage"
	ucexpense "expense-approval-backend/internal/usecase/expense"
)

type ExpenseHandler struct {
	uc    *ucexpense.Usecase
	files storage.Store
}

func NewExpenseHandler(uc *ucexpense.Usecase, files storage.Store) *ExpenseHandler {
	return &ExpenseHandler{uc: uc, files: files}
}

func (h *ExpenseHandler) List(c echo.Context) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}
	out, err := h.uc.List(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ExpenseHandler) Get(c echo.Context) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}
	out, err := h.uc.Get(c.Request().Context(), actor, c.Param("expense_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ExpenseHandler) Submit(c echo.Context) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}
	in, receipts, err := h.readClaimForm(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Submit(c.Request().Context(), actor, *in, *receipts)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ExpenseHandler) Resubmit(c echo.Context) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}
	in, receipts, err := h.readClaimForm(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Resubmit(c.Request().Context(), actor, c.Param("expense_id"), *in, *receipts)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type reviewReq struct {
	Action  string `json:"action" validate:"required,oneof=approve reject"`
	Comment string `json:"comment"`
}

func (h *ExpenseHandler) Review(c echo.Context) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	out, err := h.uc.Review(c.Request().Context(), actor, c.Param("expense_id"), ucexpense.ReviewInput{
		Action:  actionOf(req.Action),
		Comment: req.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ExpenseHandler) History(c echo.Context) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}
	out, err := h.uc.History(c.Request().Context(), actor, c.Param("expense_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ExpenseHandler) HistoryWithItems(c echo.Context) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}
	out, err := h.uc.HistoryWithItems(c.Request().Context(), actor, c.Param("expense_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// readClaimForm accepts either a plain JSON body or a multipart form whose
// "data" field carries the JSON payload next to the receipt files.
func (h *ExpenseHandler) readClaimForm(c echo.Context) (*ucexpense.SubmitInput, *ucexpense.Receipts, error) {
	var in ucexpense.SubmitInput
	receipts := &ucexpense.Receipts{}

	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		if err := json.NewDecoder(c.Request().Body).Decode(&in); err != nil {
			return nil, nil, expense.Invalid("invalid request body")
		}
		return &in, receipts, nil
	}

	raw := c.FormValue("data")
	if raw == "" {
		return nil, nil, expense.Invalid("missing data field in form")
	}
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, nil, expense.Invalid("invalid request body")
	}

	receipts.DeleteTravel = formFlag(c, "delete_travel_receipt")
	receipts.DeleteHotel = formFlag(c, "delete_hotel_receipt")
	receipts.DeleteFood = formFlag(c, "delete_food_receipt")
	receipts.DeleteSpecial = formFlag(c, "delete_special_approval")

	type upload struct {
		field  string
		subdir string
		dst    **string
		pdf    bool
	}
	for _, u := range []upload{
		{"travel_receipt", "travel", &receipts.Travel, false},
		{"hotel_receipt", "hotel", &receipts.Hotel, false},
		{"food_receipt", "food", &receipts.Food, false},
		{"special_approval", "special", &receipts.Special, true},
	} {
		fh, err := c.FormFile(u.field)
		if err != nil {
			continue
		}
		if u.pdf {
			if err := storage.RequirePDF(fh); err != nil {
				return nil, nil, err
			}
		}
		path, err := h.files.Save(fh, u.subdir)
		if err != nil {
			return nil, nil, err
		}
		*u.dst = &path
	}
	return &in, receipts, nil
}

func actionOf(s string) expense.Action {
	if s == "reject" {
		return expense.ActionReject
	}
	return expense.ActionApprove
}

func formFlag(c echo.Context, field string) bool {
	v := strings.ToLower(c.FormValue(field))
	return v == "true" || v == "1" || v == "yes"
}
