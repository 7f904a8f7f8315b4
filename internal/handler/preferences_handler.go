package handler

import (
	"net/http"

	"github.com/dafibh/finwise/finwise-backend/internal/middleware"
	"github.com/dafibh/finwise/finwise-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PreferencesHandler handles user preference requests
type PreferencesHandler struct {
	preferencesService *service.PreferencesService
}

// NewPreferencesHandler creates a new PreferencesHandler
func NewPreferencesHandler(preferencesService *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{preferencesService: preferencesService}
}

// GetPreferences handles GET /api/v1/preferences
func (h *PreferencesHandler) GetPreferences(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	prefs, err := h.preferencesService.Get(c.Request().Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "get preferences")
	}
	return c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences godoc
// @Summary Update preferences
// @Description Fields missing from the body keep their current values
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.UserPreferences true "Preference fields to change"
// @Success 200 {object} domain.UserPreferences
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /preferences [put]
func (h *PreferencesHandler) UpdatePreferences(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	prefs, err := h.preferencesService.Get(c.Request().Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "get preferences")
	}

	if err := c.Bind(&prefs); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	saved, err := h.preferencesService.Update(c.Request().Context(), userID, prefs)
	if err != nil {
		return handleServiceError(c, err, "update preferences")
	}
	return c.JSON(http.StatusOK, saved)
}
