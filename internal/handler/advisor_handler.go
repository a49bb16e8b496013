package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/middleware"
	"github.com/receiptwise/receiptwise-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AdvisorHandler serves the AI chat and budget suggestion endpoints
type AdvisorHandler struct {
	advisorService *service.AdvisorService
}

func NewAdvisorHandler(advisorService *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService}
}

type ChatWithReceiptRequest struct {
	OCRText             string               `json:"ocrText"`
	UserMessage         string               `json:"userMessage"`
	ConversationHistory []domain.ChatMessage `json:"conversationHistory"`
}

type BudgetPlannerChatRequest struct {
	UserMessage         string                 `json:"userMessage"`
	ConversationHistory []domain.ChatMessage   `json:"conversationHistory"`
	UserProfile         map[string]interface{} `json:"userProfile"`
}

type BudgetSuggestionsRequest struct {
	SpendingData   json.RawMessage `json:"spendingData"`
	MonthlyIncome  string          `json:"monthlyIncome"`
	FinancialGoals string          `json:"financialGoals"`
}

// AdvisorResponse wraps every successful advisor reply
type AdvisorResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type SuggestionsData struct {
	Suggestions string `json:"suggestions"`
}

// ChatWithReceipt godoc
// @Summary Chat about a receipt
// @Description Send receipt text and/or a question; at least one is required
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChatWithReceiptRequest true "Chat"
// @Success 200 {object} AdvisorResponse
// @Failure 400 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /ai/chat-with-receipt [post]
func (h *AdvisorHandler) ChatWithReceipt(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req ChatWithReceiptRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := h.advisorService.ChatWithReceipt(c.Request().Context(), workspaceID, req.OCRText, req.UserMessage, req.ConversationHistory)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyPrompt) {
			return NewValidationError(c, "Either ocrText or userMessage is required", []ValidationError{
				{Field: "userMessage", Message: "Provide receipt text or a message"},
			})
		}
		return h.advisorError(c, err, workspaceID)
	}

	return c.JSON(http.StatusOK, AdvisorResponse{Success: true, Data: result})
}

// BudgetPlannerChat godoc
// @Summary Budget planning conversation
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BudgetPlannerChatRequest true "Chat"
// @Success 200 {object} AdvisorResponse
// @Failure 400 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /ai/budget-planner-chat [post]
func (h *AdvisorHandler) BudgetPlannerChat(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req BudgetPlannerChatRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := h.advisorService.BudgetPlannerChat(c.Request().Context(), workspaceID, req.UserMessage, req.ConversationHistory, req.UserProfile)
	if err != nil {
		return h.advisorError(c, err, workspaceID)
	}

	return c.JSON(http.StatusOK, AdvisorResponse{Success: true, Data: result})
}

// BudgetSuggestions godoc
// @Summary Suggest a monthly budget
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BudgetSuggestionsRequest true "Spending data"
// @Success 200 {object} AdvisorResponse
// @Failure 400 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /ai/budget-suggestions [post]
func (h *AdvisorHandler) BudgetSuggestions(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req BudgetSuggestionsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.BudgetSuggestionsInput{
		SpendingData:   req.SpendingData,
		FinancialGoals: req.FinancialGoals,
	}
	if s := strings.TrimSpace(req.MonthlyIncome); s != "" {
		income, err := decimal.NewFromString(s)
		if err != nil {
			return NewValidationError(c, "Invalid monthlyIncome", []ValidationError{
				{Field: "monthlyIncome", Message: "Must be a valid decimal number"},
			})
		}
		input.MonthlyIncome = &income
	}

	suggestions, err := h.advisorService.GenerateBudgetSuggestions(c.Request().Context(), workspaceID, input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "spendingData", Message: "Spending data is required"},
			})
		}
		return h.advisorError(c, err, workspaceID)
	}

	return c.JSON(http.StatusOK, AdvisorResponse{Success: true, Data: SuggestionsData{Suggestions: suggestions}})
}

func (h *AdvisorHandler) advisorError(c echo.Context, err error, workspaceID int32) error {
	switch {
	case errors.Is(err, domain.ErrEmptyPrompt), errors.Is(err, domain.ErrAdvisorUnavailable):
		return handleServiceError(c, err, workspaceID, "generate reply")
	default:
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("AI advisor request failed")
		return NewUpstreamError(c, "The AI advisor could not answer right now")
	}
}
