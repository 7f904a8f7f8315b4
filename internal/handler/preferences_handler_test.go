package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/service"
	"github.com/dafibh/finwise/finwise-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPreferences_Defaults(t *testing.T) {
	e := echo.New()
	handler := NewPreferencesHandler(service.NewPreferencesService(testutil.NewMockDocumentStore[domain.UserPreferences]()))

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/preferences", "")
	setupAuthContextWithUser(c, "auth0|pref", "pref@example.com", "", uuid.New())

	require.NoError(t, handler.GetPreferences(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var prefs domain.UserPreferences
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prefs))
	assert.Equal(t, domain.DefaultPreferences(), prefs)
}

func TestUpdatePreferences_Merges(t *testing.T) {
	e := echo.New()
	store := testutil.NewMockDocumentStore[domain.UserPreferences]()
	handler := NewPreferencesHandler(service.NewPreferencesService(store))
	userID := uuid.New()

	saved := domain.DefaultPreferences()
	saved.EmergencyFundMonths = 9
	require.NoError(t, store.Put(context.Background(), userID, saved))

	c, rec := newJSONContext(e, http.MethodPut, "/api/v1/preferences", `{"debtStrategy":"snowball","currency":"gbp"}`)
	setupAuthContextWithUser(c, "auth0|pref", "pref@example.com", "", userID)

	require.NoError(t, handler.UpdatePreferences(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	got, found, err := store.Get(context.Background(), userID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, domain.DebtSnowball, got.DebtStrategy)
	assert.Equal(t, "GBP", got.Currency)
	assert.Equal(t, 9, got.EmergencyFundMonths)
}

func TestUpdatePreferences_Invalid(t *testing.T) {
	e := echo.New()
	store := testutil.NewMockDocumentStore[domain.UserPreferences]()
	handler := NewPreferencesHandler(service.NewPreferencesService(store))
	userID := uuid.New()

	tests := []struct {
		name string
		body string
	}{
		{"bad strategy", `{"strategy":"yolo"}`},
		{"bad reminder time", `{"reminderTime":"25:00"}`},
		{"fund months", `{"emergencyFundMonths":0}`},
		{"malformed", `{"currency":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(e, http.MethodPut, "/api/v1/preferences", tt.body)
			setupAuthContextWithUser(c, "auth0|pref", "pref@example.com", "", userID)

			require.NoError(t, handler.UpdatePreferences(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	_, found, _ := store.Get(context.Background(), userID)
	assert.False(t, found)
}

func TestPreferences_RequireUser(t *testing.T) {
	e := echo.New()
	handler := NewPreferencesHandler(service.NewPreferencesService(testutil.NewMockDocumentStore[domain.UserPreferences]()))

	for _, call := range []func(echo.Context) error{handler.GetPreferences, handler.UpdatePreferences} {
		c, rec := newJSONContext(e, http.MethodGet, "/api/v1/preferences", "")
		setupAuthContext(c, "auth0|unregistered", "u@example.com", "")

		require.NoError(t, call(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}
