package server

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, rl *RateLimiter, loanHandler *LoanHandler, combinedHandler *CombinedHandler, quoteHandler *QuoteHandler) {
	// API version 1
	api := e.Group("/api/v1")
	if rl != nil {
		api.Use(RateLimitMiddleware(rl))
	}

	// Loan routes
	loans := api.Group("/loans")
	loans.POST("", loanHandler.CreateLoan)
	loans.GET("/:id", loanHandler.GetLoan)
	loans.GET("/:id/schedule", loanHandler.GetSchedule)
	loans.GET("/:id/comparison", loanHandler.GetComparison)
	loans.GET("/:id/prepayments", loanHandler.GetPrepayments)
	loans.POST("/:id/prepayments", loanHandler.AddPrepayment)
	loans.DELETE("/:id/prepayments", loanHandler.ClearPrepayments)
	loans.POST("/:id/preview", loanHandler.Preview)

	// Combined loan routes
	api.POST("/combined", combinedHandler.CreateCombined)

	// Quote routes
	api.POST("/quotes", quoteHandler.CreateQuote)
}
