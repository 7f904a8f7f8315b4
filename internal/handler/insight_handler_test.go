package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/finance"
	"github.com/dafibh/finwise/finwise-backend/internal/service"
	"github.com/dafibh/finwise/finwise-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInsightHandler(stores *testutil.MockStores) *InsightHandler {
	svc := service.NewInsightService(service.NewSnapshotService(stores.Stores()), stores.NetWorthHistory, testutil.NewMockPublisher())
	return NewInsightHandler(svc)
}

func seedInsightData(stores *testutil.MockStores, userID uuid.UUID) {
	stores.Accounts.Add(userID, &domain.BankAccount{Name: "Checking", Type: domain.AccountTypeChecking, Balance: decimal.NewFromInt(2500), IsActive: true})
	stores.Incomes.Add(userID, &domain.Income{Name: "Salary", Amount: decimal.NewFromInt(4000), Frequency: domain.FrequencyMonthly, MonthlyAmount: decimal.NewFromInt(4000)})
	stores.Loans.Add(userID, &domain.Loan{Name: "Car Loan", Principal: decimal.NewFromInt(5000), CurrentBalance: decimal.NewFromInt(2000), InterestRate: decimal.NewFromInt(1), MinimumPayment: decimal.NewFromInt(100)})
}

func TestGetDashboard(t *testing.T) {
	e := echo.New()
	stores := testutil.NewMockStores()
	userID := uuid.New()
	seedInsightData(stores, userID)
	handler := newInsightHandler(stores)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/insights/dashboard", "")
	setupAuthContextWithUser(c, "auth0|ins", "ins@example.com", "", userID)

	require.NoError(t, handler.GetDashboard(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "$500.00", body["netWorthDisplay"])
}

func TestGetHealth(t *testing.T) {
	e := echo.New()
	stores := testutil.NewMockStores()
	userID := uuid.New()
	seedInsightData(stores, userID)
	handler := newInsightHandler(stores)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/insights/health", "")
	setupAuthContextWithUser(c, "auth0|ins", "ins@example.com", "", userID)

	require.NoError(t, handler.GetHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var health finance.FinancialHealth
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.True(t, decimal.NewFromInt(500).Equal(health.NetWorth))
}

func TestGetDebts_Query(t *testing.T) {
	e := echo.New()
	stores := testutil.NewMockStores()
	userID := uuid.New()
	seedInsightData(stores, userID)
	handler := newInsightHandler(stores)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"default", "/api/v1/insights/debts", http.StatusOK},
		{"snowball with extra", "/api/v1/insights/debts?strategy=snowball&extra=50", http.StatusOK},
		{"unknown strategy", "/api/v1/insights/debts?strategy=fastest", http.StatusBadRequest},
		{"malformed extra", "/api/v1/insights/debts?extra=lots", http.StatusBadRequest},
		{"negative extra", "/api/v1/insights/debts?extra=-5", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(e, http.MethodGet, tt.target, "")
			setupAuthContextWithUser(c, "auth0|ins", "ins@example.com", "", userID)

			require.NoError(t, handler.GetDebts(c))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestGetPaymentSuggestions(t *testing.T) {
	e := echo.New()
	stores := testutil.NewMockStores()
	userID := uuid.New()
	seedInsightData(stores, userID)
	handler := newInsightHandler(stores)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/insights/debts/suggestions", "")
	setupAuthContextWithUser(c, "auth0|ins", "ins@example.com", "", userID)
	require.NoError(t, handler.GetPaymentSuggestions(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var plan finance.DebtPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	assert.Equal(t, domain.DebtAvalanche, plan.Strategy)
	assert.True(t, plan.ExtraPayment.IsPositive())
	require.Len(t, plan.Recommendations, 1)
	assert.Equal(t, "Car Loan", plan.Recommendations[0].Name)
	assert.True(t, plan.Recommendations[0].SuggestedPayment.GreaterThan(decimal.NewFromInt(100)))

	prefs := domain.DefaultPreferences()
	prefs.DebtStrategy = "fastest"
	require.NoError(t, stores.Preferences.Put(c.Request().Context(), userID, prefs))

	c, rec = newJSONContext(e, http.MethodGet, "/api/v1/insights/debts/suggestions", "")
	setupAuthContextWithUser(c, "auth0|ins", "ins@example.com", "", userID)
	require.NoError(t, handler.GetPaymentSuggestions(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetForecast_Months(t *testing.T) {
	e := echo.New()
	stores := testutil.NewMockStores()
	userID := uuid.New()
	seedInsightData(stores, userID)
	handler := newInsightHandler(stores)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/insights/forecast?months=4", "")
	setupAuthContextWithUser(c, "auth0|ins", "ins@example.com", "", userID)
	require.NoError(t, handler.GetForecast(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var points []finance.ForecastPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	assert.Len(t, points, 4)

	for _, months := range []string{"abc", "0", "25"} {
		c, rec := newJSONContext(e, http.MethodGet, "/api/v1/insights/forecast?months="+months, "")
		setupAuthContextWithUser(c, "auth0|ins", "ins@example.com", "", userID)
		require.NoError(t, handler.GetForecast(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "months=%s", months)
	}
}

func TestInsightEndpoints_OK(t *testing.T) {
	e := echo.New()
	stores := testutil.NewMockStores()
	userID := uuid.New()
	seedInsightData(stores, userID)
	handler := newInsightHandler(stores)

	endpoints := map[string]func(echo.Context) error{
		"goals":         handler.GetGoals,
		"debt strategy": handler.GetDebtStrategy,
		"allocation":    handler.GetAllocation,
		"allowance":     handler.GetAllowance,
		"trend":         handler.GetTrend,
	}
	for name, call := range endpoints {
		t.Run(name, func(t *testing.T) {
			c, rec := newJSONContext(e, http.MethodGet, "/api/v1/insights", "")
			setupAuthContextWithUser(c, "auth0|ins", "ins@example.com", "", userID)

			require.NoError(t, call(c))
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestInsight_StoreFailure(t *testing.T) {
	e := echo.New()
	stores := testutil.NewMockStores()
	stores.Accounts.ListErr = assert.AnError
	handler := newInsightHandler(stores)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/insights/dashboard", "")
	setupAuthContextWithUser(c, "auth0|ins", "ins@example.com", "", uuid.New())

	require.NoError(t, handler.GetDashboard(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestInsight_RequiresUser(t *testing.T) {
	e := echo.New()
	handler := newInsightHandler(testutil.NewMockStores())

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/insights/dashboard", "")
	setupAuthContext(c, "auth0|unregistered", "u@example.com", "")

	require.NoError(t, handler.GetDashboard(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
