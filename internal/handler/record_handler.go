package handler

import (
	"net/http"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/middleware"
	"github.com/dafibh/finwise/finwise-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RecordHandler exposes CRUD for one record kind
type RecordHandler[T domain.Record] struct {
	service   *service.RecordService[T]
	newRecord func() T
}

// NewRecordHandler creates a new RecordHandler. newRecord returns an empty
// record to bind request bodies into.
func NewRecordHandler[T domain.Record](svc *service.RecordService[T], newRecord func() T) *RecordHandler[T] {
	return &RecordHandler[T]{service: svc, newRecord: newRecord}
}

// Register mounts the handler under /<kind> on the given group
func (h *RecordHandler[T]) Register(g *echo.Group) {
	path := "/" + string(h.service.Kind())
	g.POST(path, h.Create)
	g.GET(path, h.List)
	g.GET(path+"/:id", h.Get)
	g.PUT(path+"/:id", h.Update)
	g.DELETE(path+"/:id", h.Delete)
}

// Create godoc
// @Summary Create a record
// @Description Create a record of the given kind. Monthly amounts are derived from amount and frequency
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Record kind, e.g. incomes, loans, bills"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /records/{kind} [post]
func (h *RecordHandler[T]) Create(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	record := h.newRecord()
	if err := c.Bind(record); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	created, err := h.service.Create(c.Request().Context(), userID, record)
	if err != nil {
		return handleServiceError(c, err, "create "+string(h.service.Kind()))
	}
	return c.JSON(http.StatusCreated, created)
}

// List godoc
// @Summary List records
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Record kind, e.g. incomes, loans, bills"
// @Success 200 {array} map[string]interface{}
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /records/{kind} [get]
func (h *RecordHandler[T]) List(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	records, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "list "+string(h.service.Kind()))
	}
	if records == nil {
		records = []T{}
	}
	return c.JSON(http.StatusOK, records)
}

// Get handles GET /records/:kind/:id
func (h *RecordHandler[T]) Get(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid record ID", nil)
	}

	record, err := h.service.Get(c.Request().Context(), userID, id)
	if err != nil {
		return handleServiceError(c, err, "get "+string(h.service.Kind()))
	}
	return c.JSON(http.StatusOK, record)
}

// Update godoc
// @Summary Update a record
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Record kind, e.g. incomes, loans, bills"
// @Param id path string true "Record ID (UUID)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /records/{kind}/{id} [put]
func (h *RecordHandler[T]) Update(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid record ID", nil)
	}

	record := h.newRecord()
	if err := c.Bind(record); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	updated, err := h.service.Update(c.Request().Context(), userID, id, record)
	if err != nil {
		return handleServiceError(c, err, "update "+string(h.service.Kind()))
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a record
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Record kind, e.g. incomes, loans, bills"
// @Param id path string true "Record ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /records/{kind}/{id} [delete]
func (h *RecordHandler[T]) Delete(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid record ID", nil)
	}

	if err := h.service.Delete(c.Request().Context(), userID, id); err != nil {
		return handleServiceError(c, err, "delete "+string(h.service.Kind()))
	}
	return c.NoContent(http.StatusNoContent)
}

// RecordHandlers is the set of record handlers mounted under /records
type RecordHandlers struct {
	Accounts         *RecordHandler[*domain.BankAccount]
	Incomes          *RecordHandler[*domain.Income]
	Expenses         *RecordHandler[*domain.Expense]
	Loans            *RecordHandler[*domain.Loan]
	Bills            *RecordHandler[*domain.Bill]
	Goals            *RecordHandler[*domain.FinancialGoal]
	ExpectedPayments *RecordHandler[*domain.ExpectedPayment]
	BusinessEntries  *RecordHandler[*domain.BusinessEntry]
	DailyEntries     *RecordHandler[*domain.DailyEntry]
}

// NewRecordHandlers builds a handler for every user-editable kind
func NewRecordHandlers(s service.RecordServices) RecordHandlers {
	return RecordHandlers{
		Accounts:         NewRecordHandler(s.Accounts, func() *domain.BankAccount { return &domain.BankAccount{} }),
		Incomes:          NewRecordHandler(s.Incomes, func() *domain.Income { return &domain.Income{} }),
		Expenses:         NewRecordHandler(s.Expenses, func() *domain.Expense { return &domain.Expense{} }),
		Loans:            NewRecordHandler(s.Loans, func() *domain.Loan { return &domain.Loan{} }),
		Bills:            NewRecordHandler(s.Bills, func() *domain.Bill { return &domain.Bill{} }),
		Goals:            NewRecordHandler(s.Goals, func() *domain.FinancialGoal { return &domain.FinancialGoal{} }),
		ExpectedPayments: NewRecordHandler(s.ExpectedPayments, func() *domain.ExpectedPayment { return &domain.ExpectedPayment{} }),
		BusinessEntries:  NewRecordHandler(s.BusinessEntries, func() *domain.BusinessEntry { return &domain.BusinessEntry{} }),
		DailyEntries:     NewRecordHandler(s.DailyEntries, func() *domain.DailyEntry { return &domain.DailyEntry{} }),
	}
}

// Register mounts every record handler on the group
func (hs RecordHandlers) Register(g *echo.Group) {
	hs.Accounts.Register(g)
	hs.Incomes.Register(g)
	hs.Expenses.Register(g)
	hs.Loans.Register(g)
	hs.Bills.Register(g)
	hs.Goals.Register(g)
	hs.ExpectedPayments.Register(g)
	hs.BusinessEntries.Register(g)
	hs.DailyEntries.Register(g)
}
