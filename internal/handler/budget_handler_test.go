package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/service"
	"github.com/receiptwise/receiptwise-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newBudgetTestHandler() (*BudgetHandler, *testutil.MockBudgetRepository, *testutil.MockTransactionRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	handler := NewBudgetHandler(
		service.NewBudgetService(budgetRepo, transactionRepo),
		service.NewInsightsService(transactionRepo),
	)
	return handler, budgetRepo, transactionRepo
}

func expense(workspaceID int32, category, amount string, on time.Time) *domain.Transaction {
	return &domain.Transaction{
		WorkspaceID: workspaceID,
		Name:        category + " purchase",
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
		OccurredOn:  on,
	}
}

func TestCreateBudget_Success(t *testing.T) {
	e := echo.New()
	handler, _, _ := newBudgetTestHandler()

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/budgets", `{"category": " Food ", "amount": "500", "month": 3, "year": 2025}`, 1)

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var response BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Category != "Food" || response.Amount != "500.00" || response.Month != 3 || response.Year != 2025 {
		t.Errorf("Unexpected budget: %+v", response)
	}
}

func TestCreateBudget_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"negative amount", `{"category": "Food", "amount": "-1", "month": 3, "year": 2025}`, "amount"},
		{"bad amount", `{"category": "Food", "amount": "lots", "month": 3, "year": 2025}`, "amount"},
		{"month out of range", `{"category": "Food", "amount": "10", "month": 13, "year": 2025}`, "month"},
		{"year out of range", `{"category": "Food", "amount": "10", "month": 1, "year": 1800}`, "year"},
		{"missing category", `{"category": "", "amount": "10", "month": 1, "year": 2025}`, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			handler, budgetRepo, _ := newBudgetTestHandler()
			c, rec := newJSONContext(e, http.MethodPost, "/api/v1/budgets", tt.body, 1)

			if err := handler.CreateBudget(c); err != nil {
				t.Fatalf("Expected JSON response, got error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", rec.Code)
			}

			var problem ProblemDetails
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if len(problem.Errors) == 0 || problem.Errors[0].Field != tt.field {
				t.Errorf("Expected field error on %s, got %+v", tt.field, problem.Errors)
			}
			if len(budgetRepo.Budgets) != 0 {
				t.Error("Expected nothing to be stored")
			}
		})
	}
}

func TestCreateBudget_ZeroAmountAllowed(t *testing.T) {
	e := echo.New()
	handler, _, _ := newBudgetTestHandler()

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/budgets", `{"category": "Fun", "amount": "0", "month": 3, "year": 2025}`, 1)

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}
}

func TestGetBudgetStatus_WarningExample(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, transactionRepo := newBudgetTestHandler()

	budgetRepo.AddBudget(&domain.Budget{WorkspaceID: 1, Category: "Food", Amount: decimal.NewFromInt(500), Month: 3, Year: 2025})
	budgetRepo.AddBudget(&domain.Budget{WorkspaceID: 1, Category: "Fun", Amount: decimal.Zero, Month: 3, Year: 2025})
	transactionRepo.AddTransaction(expense(1, "Food", "300", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)))
	transactionRepo.AddTransaction(expense(1, "Food", "120", time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC)))
	// outside the month and other workspace
	transactionRepo.AddTransaction(expense(1, "Food", "999", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
	transactionRepo.AddTransaction(expense(2, "Food", "999", time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)))

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/budgets/status?year=2025&month=3", "", 1)

	if err := handler.GetBudgetStatus(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var reports []BudgetReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &reports); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(reports))
	}

	byCategory := make(map[string]BudgetReportResponse)
	for _, r := range reports {
		byCategory[r.Category] = r
	}

	food := byCategory["Food"]
	if food.SpentAmount != "420.00" || food.RemainingAmount != "80" || food.PercentageSpent != "84.00" {
		t.Errorf("Unexpected Food report: %+v", food)
	}
	if food.Status != string(domain.BudgetStatusWarning) {
		t.Errorf("Expected warning status, got %s", food.Status)
	}

	fun := byCategory["Fun"]
	if fun.PercentageSpent != "0.00" || fun.Status != string(domain.BudgetStatusSafe) {
		t.Errorf("Expected zero budget with no spending to be 0%% safe, got %+v", fun)
	}
}

func TestGetBudgetStatus_RemainingIsExact(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, transactionRepo := newBudgetTestHandler()

	budgetRepo.AddBudget(&domain.Budget{WorkspaceID: 1, Category: "Coffee", Amount: decimal.NewFromInt(100), Month: 3, Year: 2025})
	transactionRepo.AddTransaction(expense(1, "Coffee", "33.335", time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)))

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/budgets/status?year=2025&month=3", "", 1)
	if err := handler.GetBudgetStatus(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var reports []BudgetReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &reports); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("Expected 1 report, got %d", len(reports))
	}
	if reports[0].RemainingAmount != "66.665" {
		t.Errorf("Expected remaining 66.665, got %s", reports[0].RemainingAmount)
	}
}

func TestGetBudgetStatus_InvalidPeriod(t *testing.T) {
	e := echo.New()
	handler, _, _ := newBudgetTestHandler()

	for _, query := range []string{"?year=2025", "?month=3", "?year=abc&month=3", "?year=2025&month=0"} {
		c, rec := newJSONContext(e, http.MethodGet, "/api/v1/budgets/status"+query, "", 1)
		if err := handler.GetBudgetStatus(c); err != nil {
			t.Fatalf("Expected JSON response, got error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", query, rec.Code)
		}
	}
}

func TestGetBudgets_IncludesSpending(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, transactionRepo := newBudgetTestHandler()

	budgetRepo.AddBudget(&domain.Budget{WorkspaceID: 1, Category: "Transport", Amount: decimal.NewFromInt(100), Month: 1, Year: 2025})
	transactionRepo.AddTransaction(expense(1, "Transport", "150", time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)))

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/budgets", "", 1)

	if err := handler.GetBudgets(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var budgets []BudgetWithSpendingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &budgets); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("Expected 1 budget, got %d", len(budgets))
	}
	b := budgets[0]
	if b.Spent != "150.00" || b.Remaining != "-50" || b.Percentage != "150.00" || b.Status != string(domain.BudgetStatusOver) {
		t.Errorf("Unexpected budget with spending: %+v", b)
	}
}

func TestUpdateAndDeleteBudget(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, _ := newBudgetTestHandler()

	budgetRepo.AddBudget(&domain.Budget{WorkspaceID: 1, Category: "Food", Amount: decimal.NewFromInt(500), Month: 3, Year: 2025})

	c, rec := newJSONContext(e, http.MethodPut, "/api/v1/budgets/1", `{"category": "Groceries", "amount": "650.5", "month": 4, "year": 2025}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := handler.UpdateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Category != "Groceries" || response.Amount != "650.50" || response.Month != 4 {
		t.Errorf("Unexpected updated budget: %+v", response)
	}

	// another workspace cannot delete it
	c, rec = newJSONContext(e, http.MethodDelete, "/api/v1/budgets/1", "", 2)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := handler.DeleteBudget(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}

	c, rec = newJSONContext(e, http.MethodDelete, "/api/v1/budgets/1", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := handler.DeleteBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
}

func TestGetInsights(t *testing.T) {
	e := echo.New()
	handler, _, transactionRepo := newBudgetTestHandler()

	feb := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	transactionRepo.AddTransaction(expense(1, "Food", "100", feb))
	transactionRepo.AddTransaction(expense(1, "Food", "180", mar))
	transactionRepo.AddTransaction(expense(1, "Transport", "50", feb))
	transactionRepo.AddTransaction(expense(1, "Transport", "40", mar))
	transactionRepo.AddTransaction(expense(1, "Books", "30", mar))
	transactionRepo.AddTransaction(expense(1, "Gifts", "70", feb))

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/budgets/insights?year=2025&month=3", "", 1)

	if err := handler.GetInsights(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response InsightsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.TotalCurrentMonth != "250.00" || response.TotalLastMonth != "220.00" {
		t.Errorf("Unexpected totals: current %s last %s", response.TotalCurrentMonth, response.TotalLastMonth)
	}
	if len(response.Insights) != 3 {
		t.Fatalf("Expected 3 insights (previous-only categories dropped), got %d", len(response.Insights))
	}

	food := response.Insights[0]
	if food.Category != "Food" || food.PercentChange != "80.00" || food.ChangeDirection != string(domain.ChangeIncrease) {
		t.Errorf("Unexpected Food insight: %+v", food)
	}
	transport := response.Insights[1]
	if transport.Category != "Transport" || transport.PercentChange != "-20.00" || transport.ChangeDirection != string(domain.ChangeDecrease) {
		t.Errorf("Unexpected Transport insight: %+v", transport)
	}
	books := response.Insights[2]
	if books.PercentChange != "0.00" || books.ChangeDirection != string(domain.ChangeStable) {
		t.Errorf("Expected new category to be stable at 0%%, got %+v", books)
	}

	if len(response.Alerts) != 1 || response.Alerts[0].Category != "Food" {
		t.Fatalf("Expected one Food alert, got %+v", response.Alerts)
	}
	if !strings.Contains(response.Alerts[0].Message, "80.0%") {
		t.Errorf("Unexpected alert message: %s", response.Alerts[0].Message)
	}
}

func TestGetInsights_EmptyAlertsIsArray(t *testing.T) {
	e := echo.New()
	handler, _, _ := newBudgetTestHandler()

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/budgets/insights", "", 1)

	if err := handler.GetInsights(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"alerts":[]`) || !strings.Contains(rec.Body.String(), `"insights":[]`) {
		t.Errorf("Expected empty arrays, got %s", rec.Body.String())
	}
}
