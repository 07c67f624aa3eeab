package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/finman-app/finman-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, sessionAuth *middleware.SessionAuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, budgetHandler *BudgetHandler, transactionHandler *TransactionHandler, adminUserHandler *AdminUserHandler, adminCategoryHandler *AdminCategoryHandler, imageHandler *ImageHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/signin", authHandler.SignIn)

	// Auth routes (protected)
	authed := api.Group("/auth")
	authed.Use(sessionAuth.AuthenticateUser())
	authed.POST("/signout", authHandler.SignOut)
	authed.GET("/me", authHandler.Me)

	// Budget routes (protected)
	budget := api.Group("/budget")
	budget.Use(sessionAuth.AuthenticateUser(), middleware.RateLimitMiddleware(rateLimiter))
	budget.GET("/:month", budgetHandler.GetSummary)
	budget.PUT("/:month/total", budgetHandler.SetTotal)
	budget.POST("/:month/categories", budgetHandler.AddCategory)

	// Catalog routes (protected)
	categories := api.Group("/categories")
	categories.Use(sessionAuth.AuthenticateUser(), middleware.RateLimitMiddleware(rateLimiter))
	categories.GET("", budgetHandler.Categories)

	// Transaction routes (protected)
	transactions := api.Group("/transactions")
	transactions.Use(sessionAuth.AuthenticateUser(), middleware.RateLimitMiddleware(rateLimiter))
	transactions.POST("", transactionHandler.Record)
	transactions.GET("/:month", transactionHandler.List)
	transactions.DELETE("/:id", transactionHandler.Delete)

	// Admin auth routes
	admin := api.Group("/admin")
	admin.POST("/auth/login", authHandler.AdminLogin)

	// Admin routes (protected)
	adminAuthed := admin.Group("")
	adminAuthed.Use(sessionAuth.AuthenticateAdmin(), middleware.RateLimitMiddleware(rateLimiter))
	adminAuthed.POST("/auth/logout", authHandler.AdminLogout)
	adminAuthed.GET("/users", adminUserHandler.List)
	adminAuthed.PATCH("/users/:id/status", adminUserHandler.ToggleStatus)
	adminAuthed.GET("/categories", adminCategoryHandler.List)
	adminAuthed.POST("/categories", adminCategoryHandler.Create)
	adminAuthed.PATCH("/categories/:id/status", adminCategoryHandler.ToggleStatus)
	adminAuthed.POST("/images", imageHandler.Upload)
}
