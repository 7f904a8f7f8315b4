package handler

import (
	"net/http"
	"strconv"

	"github.com/dafibh/finwise/finwise-backend/internal/middleware"
	"github.com/dafibh/finwise/finwise-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// InsightHandler serves the derived views computed from a user's records
type InsightHandler struct {
	insightService *service.InsightService
}

// NewInsightHandler creates a new InsightHandler
func NewInsightHandler(insightService *service.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// GetDashboard godoc
// @Summary Get dashboard
// @Description Net worth, cash flow, health and allocation in one response
// @Tags insights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} finance.Dashboard
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /insights/dashboard [get]
func (h *InsightHandler) GetDashboard(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	dashboard, err := h.insightService.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "build dashboard")
	}
	return c.JSON(http.StatusOK, dashboard)
}

// GetHealth godoc
// @Summary Get financial health
// @Description Scores the user's records from 0 to 100 with a per-bucket breakdown
// @Tags insights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} finance.FinancialHealth
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /insights/health [get]
func (h *InsightHandler) GetHealth(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	health, err := h.insightService.Health(c.Request().Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "calculate financial health")
	}
	return c.JSON(http.StatusOK, health)
}

// GetGoals godoc
// @Summary Get goal progress
// @Tags insights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} finance.GoalProgress
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /insights/goals [get]
func (h *InsightHandler) GetGoals(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	goals, err := h.insightService.Goals(c.Request().Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "calculate goal progress")
	}
	return c.JSON(http.StatusOK, goals)
}

// GetDebts godoc
// @Summary Get debt payoff plan
// @Description Priority-ordered payoff plan. Account debt always comes first
// @Tags insights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param strategy query string false "Payoff strategy: avalanche, snowball, hybrid"
// @Param extra query string false "Extra monthly payment for the top priority debt"
// @Success 200 {object} finance.DebtPlan
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /insights/debts [get]
func (h *InsightHandler) GetDebts(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	query := service.DebtQuery{
		Strategy:     c.QueryParam("strategy"),
		ExtraPayment: decimal.Zero,
	}
	if extra := c.QueryParam("extra"); extra != "" {
		amount, err := decimal.NewFromString(extra)
		if err != nil {
			return NewValidationError(c, "Invalid extra payment", []ValidationError{{Field: "extra", Message: "Must be a decimal number"}})
		}
		query.ExtraPayment = amount
	}

	plan, err := h.insightService.Debts(c.Request().Context(), userID, query)
	if err != nil {
		return handleServiceError(c, err, "build debt plan")
	}
	return c.JSON(http.StatusOK, plan)
}

// GetDebtStrategy godoc
// @Summary Suggest a debt strategy
// @Tags insights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} finance.StrategySuggestion
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /insights/debts/strategy [get]
func (h *InsightHandler) GetDebtStrategy(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	suggestion, err := h.insightService.DebtStrategy(c.Request().Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "suggest debt strategy")
	}
	return c.JSON(http.StatusOK, suggestion)
}

// GetPaymentSuggestions godoc
// @Summary Get debt payment suggestions
// @Description Payoff plan for the saved debt strategy, funded by the allocation's debt share of surplus
// @Tags insights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} finance.DebtPlan
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /insights/debts/suggestions [get]
func (h *InsightHandler) GetPaymentSuggestions(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	plan, err := h.insightService.PaymentSuggestions(c.Request().Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "suggest debt payments")
	}
	return c.JSON(http.StatusOK, plan)
}

// GetAllocation godoc
// @Summary Get income allocation
// @Description Splits monthly income into debt, emergency, investment, wants and needs
// @Tags insights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} finance.AllocationBreakdown
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /insights/allocation [get]
func (h *InsightHandler) GetAllocation(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	allocation, err := h.insightService.Allocation(c.Request().Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "calculate allocation")
	}
	return c.JSON(http.StatusOK, allocation)
}

// GetAllowance godoc
// @Summary Get spending allowance
// @Tags insights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} finance.SpendingAllowance
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /insights/allowance [get]
func (h *InsightHandler) GetAllowance(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	allowance, err := h.insightService.Allowance(c.Request().Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "calculate spending allowance")
	}
	return c.JSON(http.StatusOK, allowance)
}

// GetForecast godoc
// @Summary Get cash forecast
// @Description Projects the cash position month by month
// @Tags insights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param months query int false "Months to project (1-24)" default(6)
// @Success 200 {array} finance.ForecastPoint
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /insights/forecast [get]
func (h *InsightHandler) GetForecast(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	months := service.DefaultForecastMonths
	if monthsStr := c.QueryParam("months"); monthsStr != "" {
		parsed, err := strconv.Atoi(monthsStr)
		if err != nil {
			return NewValidationError(c, "Invalid months format", []ValidationError{{Field: "months", Message: "Must be a valid integer"}})
		}
		months = parsed
	}

	points, err := h.insightService.Forecast(c.Request().Context(), userID, months)
	if err != nil {
		return handleServiceError(c, err, "build forecast")
	}
	return c.JSON(http.StatusOK, points)
}

// GetTrend handles GET /api/v1/insights/trend
func (h *InsightHandler) GetTrend(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	trend, err := h.insightService.Trend(c.Request().Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "load net worth trend")
	}
	return c.JSON(http.StatusOK, trend)
}
