package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/middleware"
	"github.com/receiptwise/receiptwise-backend/internal/service"
)

// DashboardHandler serves the aggregated chart data
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type ChartPointResponse struct {
	Date  string `json:"date"`
	Total string `json:"total"`
}

// ChartsResponse holds daily series for the window From..To, both YYYY-MM-DD
type ChartsResponse struct {
	From               string                  `json:"from"`
	To                 string                  `json:"to"`
	ExpensesByCategory []CategoryTotalResponse `json:"expensesByCategory"`
	ExpensesOverTime   []ChartPointResponse    `json:"expensesOverTime"`
	IncomeOverTime     []ChartPointResponse    `json:"incomeOverTime"`
}

// GetCharts godoc
// @Summary Dashboard chart data
// @Description Expenses per category and daily expense and income totals over the last N UTC days, today included. Days without activity are omitted.
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window length in days (1-366, default 30)"
// @Success 200 {object} ChartsResponse
// @Failure 400 {object} ProblemDetails
// @Router /transactions/charts [get]
func (h *DashboardHandler) GetCharts(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	days := 0
	if s := c.QueryParam("days"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > domain.MaxChartDays {
			return NewValidationError(c, "Invalid days", []ValidationError{
				{Field: "days", Message: "Must be an integer between 1 and 366"},
			})
		}
		days = v
	}

	charts, err := h.dashboardService.GetCharts(c.Request().Context(), workspaceID, days)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "get chart data")
	}

	return c.JSON(http.StatusOK, toChartsResponse(charts))
}

func toChartsResponse(charts *domain.ChartData) ChartsResponse {
	byCategory := make([]CategoryTotalResponse, len(charts.ExpensesByCategory))
	for i, ct := range charts.ExpensesByCategory {
		byCategory[i] = CategoryTotalResponse{Category: ct.Category, Total: ct.Total.StringFixed(2)}
	}
	return ChartsResponse{
		From:               charts.Start.Format(dateLayout),
		To:                 charts.End.Format(dateLayout),
		ExpensesByCategory: byCategory,
		ExpensesOverTime:   toChartPoints(charts.ExpensesOverTime),
		IncomeOverTime:     toChartPoints(charts.IncomeOverTime),
	}
}

func toChartPoints(points []domain.ChartPoint) []ChartPointResponse {
	out := make([]ChartPointResponse, len(points))
	for i, p := range points {
		out[i] = ChartPointResponse{Date: p.Date, Total: p.Total.StringFixed(2)}
	}
	return out
}
