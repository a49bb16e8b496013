package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MaxConversationHistory caps how many prior turns are sent back to the model
const MaxConversationHistory = 20

const receiptChatPrompt = `You are ReceiptWise AI, an assistant that reads receipts and helps people track expenses.
From receipt text, identify the store, the items with their prices, tax, the total and the date.
Place the expense in a common category (Food & Dining, Groceries, Transportation, Entertainment,
Shopping, Bills & Utilities, Health & Fitness) and suggest a budget when a pattern is visible.
Ask a clarifying question when the purchase is ambiguous. Keep answers short and conversational.`

const budgetPlannerPrompt = `You are the ReceiptWise budget planner, a personal finance coach.
You help with monthly and yearly budgets, spending optimizations, savings goals such as an
emergency fund, debt payoff plans and healthy money habits.
Give concrete, encouraging advice and ask follow-up questions when details are missing.`

const budgetSuggestionsPrompt = `You are a financial advisor. Propose a realistic monthly budget as a list of categories
with suggested amounts, based on the spending data provided. Keep the recommendations practical.`

// AdvisorService runs the AI chat and budget suggestion prompts
type AdvisorService struct {
	model domain.LanguageModel
}

func NewAdvisorService(model domain.LanguageModel) *AdvisorService {
	return &AdvisorService{model: model}
}

func (s *AdvisorService) Enabled() bool {
	return s != nil && s.model != nil
}

// ChatResult is the model reply plus the conversation to send back next turn
type ChatResult struct {
	AIResponse          string               `json:"aiResponse"`
	ConversationHistory []domain.ChatMessage `json:"conversationHistory"`
}

// sanitizeHistory keeps only user and assistant turns with content, capped to the most recent
func sanitizeHistory(history []domain.ChatMessage) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(history))
	for _, m := range history {
		if m.Role != domain.ChatRoleUser && m.Role != domain.ChatRoleAssistant {
			continue
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		out = append(out, m)
	}
	if len(out) > MaxConversationHistory {
		out = out[len(out)-MaxConversationHistory:]
	}
	return out
}

func (s *AdvisorService) converse(ctx context.Context, workspaceID int32, system string, history, turns []domain.ChatMessage, temperature float32, maxTokens int32) (*ChatResult, error) {
	if !s.Enabled() {
		return nil, domain.ErrAdvisorUnavailable
	}

	messages := append(sanitizeHistory(history), turns...)
	reply, err := s.model.Generate(ctx, domain.GenerateRequest{
		System:      system,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Advisor generation failed")
		return nil, err
	}

	return &ChatResult{
		AIResponse:          reply,
		ConversationHistory: append(messages, domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: reply}),
	}, nil
}

// ChatWithReceipt discusses receipt text and/or a free-form question. At least one is required.
func (s *AdvisorService) ChatWithReceipt(ctx context.Context, workspaceID int32, ocrText, userMessage string, history []domain.ChatMessage) (*ChatResult, error) {
	ocrText = strings.TrimSpace(ocrText)
	userMessage = strings.TrimSpace(userMessage)
	if ocrText == "" && userMessage == "" {
		return nil, domain.ErrEmptyPrompt
	}

	turns := make([]domain.ChatMessage, 0, 2)
	if ocrText != "" {
		turns = append(turns, domain.ChatMessage{
			Role:    domain.ChatRoleUser,
			Content: "Please analyze this receipt text and help me categorize the expense:\n" + ocrText,
		})
	}
	if userMessage != "" {
		turns = append(turns, domain.ChatMessage{Role: domain.ChatRoleUser, Content: userMessage})
	}

	return s.converse(ctx, workspaceID, receiptChatPrompt, history, turns, 0.3, 800)
}

// BudgetPlannerChat continues a budget planning conversation. userProfile is optional
// free-form context about the user.
func (s *AdvisorService) BudgetPlannerChat(ctx context.Context, workspaceID int32, userMessage string, history []domain.ChatMessage, userProfile map[string]interface{}) (*ChatResult, error) {
	userMessage = strings.TrimSpace(userMessage)
	if userMessage == "" {
		return nil, domain.ErrEmptyPrompt
	}

	system := budgetPlannerPrompt
	if len(userProfile) > 0 {
		profile, err := json.Marshal(userProfile)
		if err != nil {
			return nil, fmt.Errorf("marshal user profile: %w", err)
		}
		system += "\n\nUser profile: " + string(profile)
	}

	turns := []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: userMessage}}
	return s.converse(ctx, workspaceID, system, history, turns, 0.7, 1500)
}

type BudgetSuggestionsInput struct {
	SpendingData   json.RawMessage
	MonthlyIncome  *decimal.Decimal
	FinancialGoals string
}

// GenerateBudgetSuggestions proposes a monthly budget from the caller's spending data
func (s *AdvisorService) GenerateBudgetSuggestions(ctx context.Context, workspaceID int32, input BudgetSuggestionsInput) (string, error) {
	data := strings.TrimSpace(string(input.SpendingData))
	if data == "" || data == "null" {
		return "", domain.ErrInvalidInput
	}
	if !s.Enabled() {
		return "", domain.ErrAdvisorUnavailable
	}

	var prompt strings.Builder
	prompt.WriteString("Spending data: ")
	prompt.WriteString(data)
	if input.MonthlyIncome != nil && input.MonthlyIncome.IsPositive() {
		prompt.WriteString("\nMonthly income: ")
		prompt.WriteString(input.MonthlyIncome.StringFixed(2))
	}
	if goals := strings.TrimSpace(input.FinancialGoals); goals != "" {
		prompt.WriteString("\nFinancial goals: ")
		prompt.WriteString(goals)
	}
	prompt.WriteString("\nSuggest a monthly budget breakdown with categories and amounts.")

	reply, err := s.model.Generate(ctx, domain.GenerateRequest{
		System:      budgetSuggestionsPrompt,
		Messages:    []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: prompt.String()}},
		Temperature: 0.5,
		MaxTokens:   800,
	})
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Budget suggestions failed")
		return "", err
	}
	return reply, nil
}
