package domain

import (
	"context"
	"strings"
	"time"
)

// CategoryRule assigns Category to transactions whose name contains Keyword
type CategoryRule struct {
	ID          int32     `json:"id"`
	WorkspaceID int32     `json:"workspaceId"`
	Keyword     string    `json:"keyword"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NormalizeKeyword trims and lowercases a rule keyword
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// MatchCategoryRule returns the rule with the longest keyword contained in name.
// Ties keep the earliest rule in the slice.
func MatchCategoryRule(rules []*CategoryRule, name string) *CategoryRule {
	lower := strings.ToLower(name)
	var best *CategoryRule
	for _, r := range rules {
		if r.Keyword == "" || !strings.Contains(lower, r.Keyword) {
			continue
		}
		if best == nil || len(r.Keyword) > len(best.Keyword) {
			best = r
		}
	}
	return best
}

type CategoryRuleRepository interface {
	Create(ctx context.Context, rule *CategoryRule) (*CategoryRule, error)
	GetByID(ctx context.Context, workspaceID int32, id int32) (*CategoryRule, error)
	ListByWorkspace(ctx context.Context, workspaceID int32) ([]*CategoryRule, error)
	Update(ctx context.Context, rule *CategoryRule) (*CategoryRule, error)
	Delete(ctx context.Context, workspaceID int32, id int32) error
}
