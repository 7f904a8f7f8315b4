package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/finwise/finwise-backend/internal/config"
	"github.com/dafibh/finwise/finwise-backend/internal/handler"
	"github.com/dafibh/finwise/finwise-backend/internal/middleware"
	"github.com/dafibh/finwise/finwise-backend/internal/notify"
	"github.com/dafibh/finwise/finwise-backend/internal/repository/cache"
	"github.com/dafibh/finwise/finwise-backend/internal/repository/postgres"
	"github.com/dafibh/finwise/finwise-backend/internal/service"
	"github.com/dafibh/finwise/finwise-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	if err := postgres.Migrate(context.Background(), pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	stores := postgres.NewStores(pool)

	// Optional Redis read-through cache for record lists
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, running without record cache")
		} else {
			defer redisClient.Close()
			stores = cache.WrapStores(stores, redisClient, cfg.CacheTTL)
			log.Info().Dur("ttl", cfg.CacheTTL).Msg("Record cache enabled")
		}
	}

	// Initialize WebSocket hub
	hub := websocket.NewHub()

	var mailer notify.Mailer = notify.NoopMailer{}
	if cfg.SMTP.Enabled() {
		mailer = notify.NewSMTPMailer(cfg.SMTP)
		log.Info().Str("host", cfg.SMTP.Host).Msg("Email reminders enabled")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo)
	snapshotService := service.NewSnapshotService(stores)
	insightService := service.NewInsightService(snapshotService, stores.NetWorthHistory, hub)
	recordServices := service.NewRecordServices(stores, hub, insightService)
	challengeService := service.NewChallengeService(snapshotService, stores, hub)
	preferencesService := service.NewPreferencesService(stores.Preferences)
	reminderService := service.NewReminderService(snapshotService, hub, mailer)

	// Background jobs
	scheduler, err := service.NewScheduler(userRepo, challengeService, reminderService, insightService, log.Logger, service.SchedulerConfig{
		ReminderSchedule:  cfg.ReminderSchedule,
		ChallengeSchedule: cfg.ChallengeSchedule,
		SnapshotSchedule:  cfg.SnapshotSchedule,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	scheduler.Start()

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, authService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, authService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create WebSocket JWT validator")
	}

	// Initialize handlers
	handlers := handler.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Records:     handler.NewRecordHandlers(recordServices),
		Insights:    handler.NewInsightHandler(insightService),
		Challenges:  handler.NewChallengeHandler(challengeService),
		Preferences: handler.NewPreferencesHandler(preferencesService),
		WebSocket:   handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins).WithOnConnect(insightService.RecordsChanged),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"scheduler": scheduler.IsRunning(),
			"clients":   hub.TotalClientCount(),
		})
	})

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
