package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/receiptwise/receiptwise-backend/internal/middleware"
)

// Handlers groups every API handler for registration
type Handlers struct {
	Auth         *AuthHandler
	Transaction  *TransactionHandler
	Budget       *BudgetHandler
	Goal         *GoalHandler
	CategoryRule *CategoryRuleHandler
	Receipt      *ReceiptHandler
	Advisor      *AdvisorHandler
	Dashboard    *DashboardHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, aiLimiter *middleware.RateLimiter, h Handlers) {
	api := e.Group("/api/v1")

	// The callback runs before the workspace exists
	auth := api.Group("/auth")
	auth.POST("/callback", h.Auth.Callback, authMiddleware.AuthenticateUser())
	auth.GET("/me", h.Auth.Me, authMiddleware.Authenticate())
	auth.POST("/logout", h.Auth.Logout, authMiddleware.AuthenticateUser())

	transactions := api.Group("/transactions")
	transactions.Use(authMiddleware.Authenticate())
	transactions.POST("", h.Transaction.CreateTransaction)
	transactions.GET("", h.Transaction.GetTransactions)
	transactions.GET("/summary", h.Transaction.GetSummary)
	transactions.GET("/charts", h.Dashboard.GetCharts)
	transactions.GET("/categories", h.Transaction.GetCategories)
	transactions.GET("/categories/expense", h.Transaction.GetExpenseCategories)
	transactions.GET("/categories/income", h.Transaction.GetIncomeCategories)
	transactions.DELETE("/category", h.Transaction.DeleteCategory)
	transactions.GET("/tags", h.Transaction.GetTags)
	transactions.GET("/export", h.Transaction.ExportTransactions)
	transactions.POST("/import", h.Transaction.ImportTransactions)
	transactions.DELETE("/bulk", h.Transaction.BulkDeleteTransactions)
	transactions.GET("/:id", h.Transaction.GetTransaction)
	transactions.PUT("/:id", h.Transaction.UpdateTransaction)
	transactions.DELETE("/:id", h.Transaction.DeleteTransaction)

	budgets := api.Group("/budgets")
	budgets.Use(authMiddleware.Authenticate())
	budgets.POST("", h.Budget.CreateBudget)
	budgets.GET("", h.Budget.GetBudgets)
	budgets.GET("/status", h.Budget.GetBudgetStatus)
	budgets.GET("/insights", h.Budget.GetInsights)
	budgets.GET("/:id", h.Budget.GetBudget)
	budgets.PUT("/:id", h.Budget.UpdateBudget)
	budgets.DELETE("/:id", h.Budget.DeleteBudget)

	goals := api.Group("/goals")
	goals.Use(authMiddleware.Authenticate())
	goals.POST("", h.Goal.CreateGoal)
	goals.GET("", h.Goal.GetGoals)
	goals.GET("/stats", h.Goal.GetStats)
	goals.GET("/:id", h.Goal.GetGoal)
	goals.PUT("/:id", h.Goal.UpdateGoal)
	goals.PATCH("/:id/progress", h.Goal.AddProgress)
	goals.DELETE("/:id", h.Goal.DeleteGoal)

	rules := api.Group("/category-rules")
	rules.Use(authMiddleware.Authenticate())
	rules.POST("", h.CategoryRule.CreateRule)
	rules.GET("", h.CategoryRule.GetRules)
	rules.PUT("/:id", h.CategoryRule.UpdateRule)
	rules.DELETE("/:id", h.CategoryRule.DeleteRule)

	receipts := api.Group("/receipts")
	receipts.Use(authMiddleware.Authenticate())
	receipts.POST("/upload", h.Receipt.UploadReceipt)
	receipts.POST("/scan", h.Receipt.ScanReceipt, middleware.RateLimit(aiLimiter))

	ai := api.Group("/ai")
	ai.Use(authMiddleware.Authenticate(), middleware.RateLimit(aiLimiter))
	ai.POST("/chat-with-receipt", h.Advisor.ChatWithReceipt)
	ai.POST("/budget-planner-chat", h.Advisor.BudgetPlannerChat)
	ai.POST("/budget-suggestions", h.Advisor.BudgetSuggestions)
}
