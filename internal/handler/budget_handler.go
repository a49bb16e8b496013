package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/middleware"
	"github.com/receiptwise/receiptwise-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler serves budget CRUD, the monthly status report and spending insights
type BudgetHandler struct {
	budgetService   *service.BudgetService
	insightsService *service.InsightsService
}

func NewBudgetHandler(budgetService *service.BudgetService, insightsService *service.InsightsService) *BudgetHandler {
	return &BudgetHandler{
		budgetService:   budgetService,
		insightsService: insightsService,
	}
}

type BudgetRequest struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`
}

type BudgetResponse struct {
	ID        int32  `json:"id"`
	Category  string `json:"category"`
	Amount    string `json:"amount"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// BudgetWithSpendingResponse is a budget plus what has been spent against it
type BudgetWithSpendingResponse struct {
	BudgetResponse
	Spent      string `json:"spent"`
	Remaining  string `json:"remaining"`
	Percentage string `json:"percentage"`
	Status     string `json:"status"`
}

type BudgetReportResponse struct {
	BudgetID        int32  `json:"budgetId"`
	Category        string `json:"category"`
	BudgetAmount    string `json:"budgetAmount"`
	SpentAmount     string `json:"spentAmount"`
	RemainingAmount string `json:"remainingAmount"`
	PercentageSpent string `json:"percentageSpent"`
	Status          string `json:"status"`
	Month           int    `json:"month"`
	Year            int    `json:"year"`
}

type SpendingInsightResponse struct {
	Category           string `json:"category"`
	CurrentMonthTotal  string `json:"currentMonthTotal"`
	PreviousMonthTotal string `json:"previousMonthTotal"`
	PercentChange      string `json:"percentChange"`
	ChangeDirection    string `json:"changeDirection"`
}

type InsightsResponse struct {
	Insights          []SpendingInsightResponse `json:"insights"`
	Alerts            []domain.Alert            `json:"alerts"`
	TotalCurrentMonth string                    `json:"totalCurrentMonth"`
	TotalLastMonth    string                    `json:"totalLastMonth"`
}

func (h *BudgetHandler) parseRequest(c echo.Context) (service.BudgetInput, error) {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return service.BudgetInput{}, invalidRequest("Invalid request body")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return service.BudgetInput{}, invalidRequest("Invalid amount",
			ValidationError{Field: "amount", Message: "Must be a valid decimal number"})
	}

	return service.BudgetInput{
		Category: req.Category,
		Amount:   amount,
		Month:    req.Month,
		Year:     req.Year,
	}, nil
}

// CreateBudget godoc
// @Summary Create a budget
// @Description Set a spending limit for one category in one month
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BudgetRequest true "Budget"
// @Success 201 {object} BudgetResponse
// @Failure 400 {object} ProblemDetails
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	input, err := h.parseRequest(c)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "create budget")
	}

	budget, err := h.budgetService.CreateBudget(c.Request().Context(), workspaceID, input)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "create budget")
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("budget_id", budget.ID).Str("category", budget.Category).Msg("Budget created")
	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetBudgets godoc
// @Summary List budgets
// @Description Every budget in the workspace with the amount spent in its month
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} BudgetWithSpendingResponse
// @Router /budgets [get]
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	budgets, err := h.budgetService.ListBudgets(c.Request().Context(), workspaceID)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "get budgets")
	}

	response := make([]BudgetWithSpendingResponse, len(budgets))
	for i, b := range budgets {
		response[i] = BudgetWithSpendingResponse{
			BudgetResponse: toBudgetResponse(b.Budget),
			Spent:          b.Spent.StringFixed(2),
			Remaining:      b.Remaining.String(),
			Percentage:     b.Percentage.StringFixed(2),
			Status:         string(b.Status),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetBudget godoc
// @Summary Get a budget
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Success 200 {object} BudgetResponse
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	budget, err := h.budgetService.GetBudget(c.Request().Context(), workspaceID, id)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "get budget")
	}
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// UpdateBudget godoc
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Param request body BudgetRequest true "Budget"
// @Success 200 {object} BudgetResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	input, err := h.parseRequest(c)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "update budget")
	}

	budget, err := h.budgetService.UpdateBudget(c.Request().Context(), workspaceID, id, input)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "update budget")
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("budget_id", budget.ID).Msg("Budget updated")
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DeleteBudget godoc
// @Summary Delete a budget
// @Tags budgets
// @Security BearerAuth
// @Param id path int true "Budget ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(c.Request().Context(), workspaceID, id); err != nil {
		return handleServiceError(c, err, workspaceID, "delete budget")
	}

	log.Info().Int32("workspace_id", workspaceID).Int32("budget_id", id).Msg("Budget deleted")
	return c.NoContent(http.StatusNoContent)
}

// GetBudgetStatus godoc
// @Summary Budget status for a month
// @Description Spent, remaining, percentage and status for every budget of the month. Defaults to the current UTC month.
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {array} BudgetReportResponse
// @Failure 400 {object} ProblemDetails
// @Router /budgets/status [get]
func (h *BudgetHandler) GetBudgetStatus(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	year, month := h.budgetService.CurrentPeriod()
	if err := parsePeriodQuery(c, &year, &month); err != nil {
		return handleServiceError(c, err, workspaceID, "get budget status")
	}

	reports, err := h.budgetService.GetBudgetStatus(c.Request().Context(), workspaceID, year, month)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "get budget status")
	}

	response := make([]BudgetReportResponse, len(reports))
	for i, r := range reports {
		response[i] = BudgetReportResponse{
			BudgetID:        r.BudgetID,
			Category:        r.Category,
			BudgetAmount:    r.BudgetAmount.StringFixed(2),
			SpentAmount:     r.SpentAmount.StringFixed(2),
			RemainingAmount: r.RemainingAmount.String(),
			PercentageSpent: r.PercentageSpent.StringFixed(2),
			Status:          string(r.Status),
			Month:           r.Month,
			Year:            r.Year,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetInsights godoc
// @Summary Month over month spending insights
// @Description Compares each category's spending with the previous month and flags increases over 50%. Defaults to the current UTC month.
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {object} InsightsResponse
// @Failure 400 {object} ProblemDetails
// @Router /budgets/insights [get]
func (h *BudgetHandler) GetInsights(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	year, month := h.budgetService.CurrentPeriod()
	if err := parsePeriodQuery(c, &year, &month); err != nil {
		return handleServiceError(c, err, workspaceID, "get spending insights")
	}

	report, err := h.insightsService.GetSpendingInsights(c.Request().Context(), workspaceID, year, month)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "get spending insights")
	}

	return c.JSON(http.StatusOK, toInsightsResponse(report))
}

// parsePeriodQuery overrides year and month from ?year=&month=. Both or neither must be given.
func parsePeriodQuery(c echo.Context, year, month *int) error {
	yearStr, monthStr := c.QueryParam("year"), c.QueryParam("month")
	if yearStr == "" && monthStr == "" {
		return nil
	}
	if yearStr == "" || monthStr == "" {
		return invalidRequest("year and month must be provided together")
	}

	y, err := strconv.Atoi(yearStr)
	if err != nil {
		return invalidRequest("Invalid year", ValidationError{Field: "year", Message: "Must be an integer"})
	}
	m, err := strconv.Atoi(monthStr)
	if err != nil {
		return invalidRequest("Invalid month", ValidationError{Field: "month", Message: "Must be an integer"})
	}
	*year, *month = y, m
	return nil
}

func toBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:        b.ID,
		Category:  b.Category,
		Amount:    b.Amount.StringFixed(2),
		Month:     b.Month,
		Year:      b.Year,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
}

func toInsightsResponse(report *domain.InsightsReport) InsightsResponse {
	resp := InsightsResponse{
		Insights:          make([]SpendingInsightResponse, len(report.Insights)),
		Alerts:            report.Alerts,
		TotalCurrentMonth: report.TotalCurrent.StringFixed(2),
		TotalLastMonth:    report.TotalPrevious.StringFixed(2),
	}
	if resp.Alerts == nil {
		resp.Alerts = []domain.Alert{}
	}
	for i, in := range report.Insights {
		resp.Insights[i] = SpendingInsightResponse{
			Category:           in.Category,
			CurrentMonthTotal:  in.CurrentMonthTotal.StringFixed(2),
			PreviousMonthTotal: in.PreviousMonthTotal.StringFixed(2),
			PercentChange:      in.PercentChange.StringFixed(2),
			ChangeDirection:    string(in.ChangeDirection),
		}
	}
	return resp
}
