package handler

import (
	"github.com/gfmachado/casaflow/casaflow-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, expenseHandler *ExpenseHandler, financingHandler *FinancingHandler, coupleHandler *CoupleHandler, loanHandler *LoanHandler, dashboardHandler *DashboardHandler, adviceHandler *AdviceHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/callback", authHandler.Callback)
	auth.GET("/me", authHandler.Me)

	// Person and expense tracker routes
	persons := api.Group("/persons")
	persons.POST("", expenseHandler.CreatePerson)
	persons.GET("", expenseHandler.GetPersons)
	persons.PUT("/:id", expenseHandler.RenamePerson)
	persons.DELETE("/:id", expenseHandler.DeletePerson)
	persons.GET("/:id/years/:year/months/:month", expenseHandler.GetMonth)
	persons.POST("/:id/items", expenseHandler.AddItem)
	persons.PUT("/:id/items/:itemId", expenseHandler.UpdateItem)
	persons.PATCH("/:id/items/:itemId/move", expenseHandler.MoveItem)
	persons.DELETE("/:id/items/:itemId", expenseHandler.DeleteItem)

	// Financing simulator routes
	financing := api.Group("/financing")
	financing.GET("", financingHandler.GetSimulation)
	financing.PUT("", financingHandler.SavePlan)
	financing.PATCH("/installments/:number", financingHandler.ToggleInstallment)

	// Couple finance routes
	couple := api.Group("/couple")
	couple.GET("/:year/:month", coupleHandler.GetMonth)
	couple.PUT("/:year/:month", coupleHandler.SaveMonth)
	couple.POST("/:year/:month/accounts", coupleHandler.AddAccount)
	couple.PUT("/:year/:month/accounts/:accountId", coupleHandler.UpdateAccount)
	couple.DELETE("/:year/:month/accounts/:accountId", coupleHandler.DeleteAccount)

	// Loan routes
	loans := api.Group("/loans")
	loans.POST("", loanHandler.CreateLoan)
	loans.GET("", loanHandler.GetLoans)
	loans.GET("/:id", loanHandler.GetLoan)
	loans.PATCH("/:id/payments/:number", loanHandler.TogglePayment)
	loans.GET("/:id/delete-stats", loanHandler.GetDeleteStats)
	loans.DELETE("/:id", loanHandler.DeleteLoan)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/persons/:personId/years/:year", dashboardHandler.GetYearOverview)
	dashboard.GET("/persons/:personId/years/:year/months/:month", dashboardHandler.GetMonthBreakdown)

	// AI advice
	api.POST("/advice", adviceHandler.GetAdvice)

	// WebSocket endpoint authenticates via query token, not the middleware
	e.GET("/ws", wsHandler.HandleWS)
}
