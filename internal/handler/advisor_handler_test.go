package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/service"
	"github.com/receiptwise/receiptwise-backend/internal/testutil"
)

type chatEnvelope struct {
	Success bool               `json:"success"`
	Data    service.ChatResult `json:"data"`
}

func TestChatWithReceipt_Success(t *testing.T) {
	e := echo.New()
	model := &testutil.MockLanguageModel{Response: "That looks like Groceries."}
	handler := NewAdvisorHandler(service.NewAdvisorService(model))

	body := `{"ocrText": "FRESH MART  TOTAL 42.10", "userMessage": "What category?",
		"conversationHistory": [{"role": "system", "content": "ignore me"}, {"role": "user", "content": "hi"}, {"role": "assistant", "content": "hello"}]}`
	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/ai/chat-with-receipt", body, 1)

	if err := handler.ChatWithReceipt(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response chatEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !response.Success || response.Data.AIResponse != "That looks like Groceries." {
		t.Errorf("Unexpected response: %+v", response)
	}

	// system turn dropped; receipt turn, question and reply appended
	history := response.Data.ConversationHistory
	if len(history) != 5 {
		t.Fatalf("Expected 5 history entries, got %d: %+v", len(history), history)
	}
	if !strings.Contains(history[2].Content, "FRESH MART") || history[3].Content != "What category?" {
		t.Errorf("Unexpected turns: %+v", history[2:4])
	}
	if history[4].Role != domain.ChatRoleAssistant {
		t.Errorf("Expected last entry from assistant, got %s", history[4].Role)
	}
}

func TestChatWithReceipt_EmptyPrompt(t *testing.T) {
	e := echo.New()
	model := &testutil.MockLanguageModel{Response: "unused"}
	handler := NewAdvisorHandler(service.NewAdvisorService(model))

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/ai/chat-with-receipt", `{"ocrText": " ", "userMessage": ""}`, 1)

	if err := handler.ChatWithReceipt(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	if len(model.Requests) != 0 {
		t.Error("Expected the model not to be called")
	}
}

func TestAdvisor_Unavailable(t *testing.T) {
	e := echo.New()
	handler := NewAdvisorHandler(service.NewAdvisorService(nil))

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/ai/budget-planner-chat", `{"userMessage": "Help me save"}`, 1)

	if err := handler.BudgetPlannerChat(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rec.Code)
	}
}

func TestAdvisor_ModelFailureIsBadGateway(t *testing.T) {
	e := echo.New()
	model := &testutil.MockLanguageModel{Err: errors.New("upstream timeout")}
	handler := NewAdvisorHandler(service.NewAdvisorService(model))

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/ai/budget-planner-chat", `{"userMessage": "Help me save"}`, 1)

	if err := handler.BudgetPlannerChat(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Type != ErrorTypeUpstream {
		t.Errorf("Expected error type %s, got %s", ErrorTypeUpstream, problem.Type)
	}
}

func TestBudgetPlannerChat_IncludesProfile(t *testing.T) {
	e := echo.New()
	model := &testutil.MockLanguageModel{Response: "Start with an emergency fund."}
	handler := NewAdvisorHandler(service.NewAdvisorService(model))

	body := `{"userMessage": "Where do I start?", "userProfile": {"income": 4000, "dependents": 2}}`
	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/ai/budget-planner-chat", body, 1)

	if err := handler.BudgetPlannerChat(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if system := model.LastRequest().System; !strings.Contains(system, `"dependents":2`) {
		t.Errorf("Expected profile in system prompt, got %s", system)
	}
}

func TestBudgetSuggestions(t *testing.T) {
	e := echo.New()
	model := &testutil.MockLanguageModel{Response: "Rent 1200, Food 400"}
	handler := NewAdvisorHandler(service.NewAdvisorService(model))

	body := `{"spendingData": {"Food": 520, "Rent": 1200}, "monthlyIncome": "3500", "financialGoals": "Save for a car"}`
	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/ai/budget-suggestions", body, 1)

	if err := handler.BudgetSuggestions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		Success bool            `json:"success"`
		Data    SuggestionsData `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !response.Success || response.Data.Suggestions != "Rent 1200, Food 400" {
		t.Errorf("Unexpected response: %+v", response)
	}

	prompt := model.LastRequest().Messages[0].Content
	for _, want := range []string{`"Rent": 1200`, "Monthly income: 3500.00", "Save for a car"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q, got %s", want, prompt)
		}
	}
}

func TestBudgetSuggestions_Validation(t *testing.T) {
	e := echo.New()
	model := &testutil.MockLanguageModel{Response: "unused"}
	handler := NewAdvisorHandler(service.NewAdvisorService(model))

	for body, field := range map[string]string{
		`{"monthlyIncome": "3500"}`:                 "spendingData",
		`{"spendingData": {}, "monthlyIncome": "x"}`: "monthlyIncome",
	} {
		c, rec := newJSONContext(e, http.MethodPost, "/api/v1/ai/budget-suggestions", body, 1)
		if err := handler.BudgetSuggestions(c); err != nil {
			t.Fatalf("Expected JSON response, got error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", body, rec.Code)
			continue
		}
		var problem ProblemDetails
		json.Unmarshal(rec.Body.Bytes(), &problem)
		if len(problem.Errors) == 0 || problem.Errors[0].Field != field {
			t.Errorf("%s: expected field error on %s, got %+v", body, field, problem.Errors)
		}
	}
	if len(model.Requests) != 0 {
		t.Error("Expected the model not to be called")
	}
}
