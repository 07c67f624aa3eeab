package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/finman-app/finman-backend/internal/config"
	"github.com/finman-app/finman-backend/internal/handler"
	"github.com/finman-app/finman-backend/internal/middleware"
	"github.com/finman-app/finman-backend/internal/repository/rest"
	"github.com/finman-app/finman-backend/internal/repository/storage"
	"github.com/finman-app/finman-backend/internal/service"
	"github.com/finman-app/finman-backend/internal/session"
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

	// REST backends. User-side collections and admin-side collections are
	// served by separate instances.
	userAPI := rest.NewClient(cfg.UserAPIBaseURL)
	adminAPI := rest.NewClient(cfg.AdminAPIBaseURL)
	log.Info().
		Str("user_api", cfg.UserAPIBaseURL).
		Str("admin_api", cfg.AdminAPIBaseURL).
		Msg("Using REST backends")

	// Initialize repositories
	userRepo := rest.NewUserRepository(userAPI)
	userCategoryRepo := rest.NewUserCategoryRepository(userAPI)
	transactionRepo := rest.NewTransactionRepository(userAPI)
	adminRepo := rest.NewAdminRepository(adminAPI)
	adminCategoryRepo := rest.NewAdminCategoryRepository(adminAPI)

	// Image host is optional; uploads report unavailable when it isn't
	// configured.
	imageRepo, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		log.Warn().Err(err).Msg("Image storage not configured, uploads disabled")
		imageRepo = nil
	}

	// Initialize services
	sessions := session.NewStore()
	authService := service.NewAuthService(userRepo, adminRepo, cfg.StrictPasswords)
	budgetService := service.NewBudgetService(userRepo, userCategoryRepo)
	transactionService := service.NewTransactionService(transactionRepo, userRepo, cfg.HistoryPageSize)
	adminUserService := service.NewAdminUserService(userRepo)
	adminCategoryService := service.NewAdminCategoryService(adminCategoryRepo)
	imageService := service.NewImageService(imageRepo)

	// Initialize middleware
	sessionAuth := middleware.NewSessionAuthMiddleware(sessions)
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessions)
	budgetHandler := handler.NewBudgetHandler(budgetService, transactionService, sessions)
	transactionHandler := handler.NewTransactionHandler(transactionService, sessions)
	adminUserHandler := handler.NewAdminUserHandler(adminUserService, sessions)
	adminCategoryHandler := handler.NewAdminCategoryHandler(adminCategoryService)
	imageHandler := handler.NewImageHandler(imageService)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
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
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, sessionAuth, rateLimiter, authHandler, budgetHandler, transactionHandler, adminUserHandler, adminCategoryHandler, imageHandler)

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
