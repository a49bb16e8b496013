package service

import (
	"context"
	"strings"

	"github.com/receiptwise/receiptwise-backend/internal/domain"
)

// CategoryRuleService manages keyword rules that auto-assign transaction categories
type CategoryRuleService struct {
	ruleRepo domain.CategoryRuleRepository
}

func NewCategoryRuleService(ruleRepo domain.CategoryRuleRepository) *CategoryRuleService {
	return &CategoryRuleService{ruleRepo: ruleRepo}
}

type CategoryRuleInput struct {
	Keyword  string
	Category string
}

func (in CategoryRuleInput) normalize() (string, string, error) {
	keyword := domain.NormalizeKeyword(in.Keyword)
	if keyword == "" {
		return "", "", domain.ErrKeywordRequired
	}
	if len(keyword) > domain.MaxKeywordLength {
		return "", "", domain.ErrNameTooLong
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return "", "", domain.ErrCategoryRequired
	}
	if len(category) > domain.MaxCategoryLength {
		return "", "", domain.ErrNameTooLong
	}
	return keyword, category, nil
}

func (s *CategoryRuleService) CreateRule(ctx context.Context, workspaceID int32, input CategoryRuleInput) (*domain.CategoryRule, error) {
	keyword, category, err := input.normalize()
	if err != nil {
		return nil, err
	}
	return s.ruleRepo.Create(ctx, &domain.CategoryRule{
		WorkspaceID: workspaceID,
		Keyword:     keyword,
		Category:    category,
	})
}

func (s *CategoryRuleService) ListRules(ctx context.Context, workspaceID int32) ([]*domain.CategoryRule, error) {
	return s.ruleRepo.ListByWorkspace(ctx, workspaceID)
}

func (s *CategoryRuleService) UpdateRule(ctx context.Context, workspaceID, id int32, input CategoryRuleInput) (*domain.CategoryRule, error) {
	keyword, category, err := input.normalize()
	if err != nil {
		return nil, err
	}
	rule, err := s.ruleRepo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	rule.Keyword = keyword
	rule.Category = category
	return s.ruleRepo.Update(ctx, rule)
}

func (s *CategoryRuleService) DeleteRule(ctx context.Context, workspaceID, id int32) error {
	return s.ruleRepo.Delete(ctx, workspaceID, id)
}

// Categorize returns the category of the best matching rule for name, or "" when none match
func (s *CategoryRuleService) Categorize(ctx context.Context, workspaceID int32, name string) (string, error) {
	rules, err := s.ruleRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return "", err
	}
	if rule := domain.MatchCategoryRule(rules, name); rule != nil {
		return rule.Category, nil
	}
	return "", nil
}
