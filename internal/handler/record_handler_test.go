package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/service"
	"github.com/dafibh/finwise/finwise-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIncomeHandler() (*RecordHandler[*domain.Income], *testutil.MockStores, *testutil.MockPublisher) {
	stores := testutil.NewMockStores()
	publisher := testutil.NewMockPublisher()
	handlers := NewRecordHandlers(service.NewRecordServices(stores.Stores(), publisher))
	return handlers.Incomes, stores, publisher
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRecordCreate(t *testing.T) {
	e := echo.New()
	handler, stores, publisher := newIncomeHandler()
	userID := uuid.New()

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/records/incomes",
		`{"name":"Salary","amount":"1000","frequency":"weekly"}`)
	setupAuthContextWithUser(c, "auth0|rec", "rec@example.com", "", userID)

	require.NoError(t, handler.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Income
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.True(t, decimal.NewFromInt(4330).Equal(created.MonthlyAmount))
	assert.Equal(t, []string{"record.created"}, publisher.Types())

	stored, err := stores.Incomes.List(c.Request().Context(), userID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestRecordCreate_Invalid(t *testing.T) {
	e := echo.New()
	handler, _, publisher := newIncomeHandler()

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/records/incomes",
		`{"name":"","amount":"10","frequency":"monthly"}`)
	setupAuthContextWithUser(c, "auth0|rec", "rec@example.com", "", uuid.New())

	require.NoError(t, handler.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, ErrorTypeValidation, problem.Type)
	assert.Contains(t, problem.Detail, "name is required")
	assert.Empty(t, publisher.Events)
}

func TestRecordCreate_BadBody(t *testing.T) {
	e := echo.New()
	handler, _, _ := newIncomeHandler()

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/records/incomes", `{"name":`)
	setupAuthContextWithUser(c, "auth0|rec", "rec@example.com", "", uuid.New())

	require.NoError(t, handler.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordHandlers_RequireUser(t *testing.T) {
	e := echo.New()
	handler, _, _ := newIncomeHandler()

	calls := map[string]func(echo.Context) error{
		"create": handler.Create,
		"list":   handler.List,
		"get":    handler.Get,
		"update": handler.Update,
		"delete": handler.Delete,
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			c, rec := newJSONContext(e, http.MethodGet, "/api/v1/records/incomes", "")
			setupAuthContext(c, "auth0|unregistered", "u@example.com", "")

			require.NoError(t, call(c))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRecordList_Empty(t *testing.T) {
	e := echo.New()
	handler, _, _ := newIncomeHandler()

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/records/incomes", "")
	setupAuthContextWithUser(c, "auth0|rec", "rec@example.com", "", uuid.New())

	require.NoError(t, handler.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestRecordGetUpdateDelete(t *testing.T) {
	e := echo.New()
	handler, stores, publisher := newIncomeHandler()
	userID := uuid.New()
	income := &domain.Income{Name: "Rent out", Amount: decimal.NewFromInt(500), Frequency: domain.FrequencyMonthly, MonthlyAmount: decimal.NewFromInt(500)}
	stores.Incomes.Add(userID, income)
	id := income.ID.String()

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/records/incomes/"+id, "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	setupAuthContextWithUser(c, "auth0|rec", "rec@example.com", "", userID)
	require.NoError(t, handler.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newJSONContext(e, http.MethodPut, "/api/v1/records/incomes/"+id,
		`{"name":"Rent out","amount":"520","frequency":"yearly"}`)
	c.SetParamNames("id")
	c.SetParamValues(id)
	setupAuthContextWithUser(c, "auth0|rec", "rec@example.com", "", userID)
	require.NoError(t, handler.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Income
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, income.ID, updated.ID)
	assert.True(t, decimal.RequireFromString("43.33").Equal(updated.MonthlyAmount.Round(2)))

	c, rec = newJSONContext(e, http.MethodDelete, "/api/v1/records/incomes/"+id, "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	setupAuthContextWithUser(c, "auth0|rec", "rec@example.com", "", userID)
	require.NoError(t, handler.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, []string{"record.updated", "record.deleted"}, publisher.Types())
}

func TestRecordGet_Errors(t *testing.T) {
	e := echo.New()
	handler, _, _ := newIncomeHandler()

	t.Run("invalid id", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodGet, "/api/v1/records/incomes/abc", "")
		c.SetParamNames("id")
		c.SetParamValues("abc")
		setupAuthContextWithUser(c, "auth0|rec", "rec@example.com", "", uuid.New())

		require.NoError(t, handler.Get(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		c, rec := newJSONContext(e, http.MethodGet, "/api/v1/records/incomes/"+id, "")
		c.SetParamNames("id")
		c.SetParamValues(id)
		setupAuthContextWithUser(c, "auth0|rec", "rec@example.com", "", uuid.New())

		require.NoError(t, handler.Get(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
