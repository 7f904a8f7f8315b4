package handler

import (
	"net/http"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/dafibh/finwise/finwise-backend/internal/middleware"
	"github.com/dafibh/finwise/finwise-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ChallengeHandler handles challenge and progress requests
type ChallengeHandler struct {
	challengeService *service.ChallengeService
}

// NewChallengeHandler creates a new ChallengeHandler
func NewChallengeHandler(challengeService *service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// GetChallenges godoc
// @Summary List challenges
// @Description Pass live=true to hide completed and expired challenges
// @Tags challenges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param live query bool false "Only active challenges"
// @Success 200 {array} domain.Challenge
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /challenges [get]
func (h *ChallengeHandler) GetChallenges(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	liveOnly := c.QueryParam("live") == "true"
	challenges, err := h.challengeService.List(c.Request().Context(), userID, liveOnly)
	if err != nil {
		return handleServiceError(c, err, "list challenges")
	}
	if challenges == nil {
		challenges = []*domain.Challenge{}
	}
	return c.JSON(http.StatusOK, challenges)
}

// Refresh godoc
// @Summary Refresh challenges
// @Description Evaluates live challenges, awards points and generates new ones
// @Tags challenges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.RefreshResult
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /challenges/refresh [post]
func (h *ChallengeHandler) Refresh(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	result, err := h.challengeService.Refresh(c.Request().Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "refresh challenges")
	}
	return c.JSON(http.StatusOK, result)
}

// GetProgress handles GET /api/v1/progress
func (h *ChallengeHandler) GetProgress(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	progress, err := h.challengeService.Progress(c.Request().Context(), userID)
	if err != nil {
		return handleServiceError(c, err, "load progress")
	}
	return c.JSON(http.StatusOK, progress)
}
