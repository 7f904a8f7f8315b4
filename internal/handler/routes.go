package handler

import (
	"github.com/dafibh/finwise/finwise-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers bundles every API handler
type Handlers struct {
	Auth        *AuthHandler
	Records     RecordHandlers
	Insights    *InsightHandler
	Challenges  *ChallengeHandler
	Preferences *PreferencesHandler
	WebSocket   *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, h Handlers) {
	// WebSocket authenticates with a query token
	if h.WebSocket != nil {
		e.GET("/ws", h.WebSocket.HandleWS)
	}

	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	if rateLimiter != nil {
		api.Use(middleware.RateLimitMiddleware(rateLimiter))
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/callback", h.Auth.Callback)
	auth.GET("/me", h.Auth.Me)

	// Record CRUD, one collection per kind
	h.Records.Register(api.Group("/records"))

	// Derived views
	insights := api.Group("/insights")
	insights.GET("/dashboard", h.Insights.GetDashboard)
	insights.GET("/health", h.Insights.GetHealth)
	insights.GET("/goals", h.Insights.GetGoals)
	insights.GET("/debts", h.Insights.GetDebts)
	insights.GET("/debts/strategy", h.Insights.GetDebtStrategy)
	insights.GET("/debts/suggestions", h.Insights.GetPaymentSuggestions)
	insights.GET("/allocation", h.Insights.GetAllocation)
	insights.GET("/allowance", h.Insights.GetAllowance)
	insights.GET("/forecast", h.Insights.GetForecast)
	insights.GET("/trend", h.Insights.GetTrend)

	// Gamification
	challenges := api.Group("/challenges")
	challenges.GET("", h.Challenges.GetChallenges)
	challenges.POST("/refresh", h.Challenges.Refresh)
	api.GET("/progress", h.Challenges.GetProgress)

	// Preferences
	api.GET("/preferences", h.Preferences.GetPreferences)
	api.PUT("/preferences", h.Preferences.UpdatePreferences)
}
