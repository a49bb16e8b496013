package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultCategoryFor(t *testing.T) {
	if got := DefaultCategoryFor(false); got != "Miscellaneous" {
		t.Errorf("DefaultCategoryFor(false) = %s, want Miscellaneous", got)
	}
	if got := DefaultCategoryFor(true); got != "Other Income" {
		t.Errorf("DefaultCategoryFor(true) = %s, want Other Income", got)
	}
}

func TestTransactionFiltersPagination(t *testing.T) {
	tests := []struct {
		name         string
		filters      *TransactionFilters
		wantPage     int32
		wantPageSize int32
	}{
		{"nil filters", nil, 1, DefaultPageSize},
		{"zero values", &TransactionFilters{}, 1, DefaultPageSize},
		{"explicit", &TransactionFilters{Page: 3, PageSize: 50}, 3, 50},
		{"capped page size", &TransactionFilters{Page: 2, PageSize: 500}, 2, MaxPageSize},
		{"negative page", &TransactionFilters{Page: -1, PageSize: 10}, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := tt.filters.Pagination()
			if page != tt.wantPage || pageSize != tt.wantPageSize {
				t.Errorf("Pagination() = (%d, %d), want (%d, %d)", page, pageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestNewPaginatedTransactions_TotalPages(t *testing.T) {
	tests := []struct {
		totalItems int64
		pageSize   int32
		want       int32
	}{
		{0, 20, 0},
		{20, 20, 1},
		{21, 20, 2},
		{99, 10, 10},
	}

	for _, tt := range tests {
		result := NewPaginatedTransactions(nil, 1, tt.pageSize, tt.totalItems)
		if result.TotalPages != tt.want {
			t.Errorf("%d items / %d per page: TotalPages = %d, want %d", tt.totalItems, tt.pageSize, result.TotalPages, tt.want)
		}
	}
}

func TestMatchCategoryRule(t *testing.T) {
	rules := []*CategoryRule{
		{ID: 1, Keyword: "shell", Category: "Fuel"},
		{ID: 2, Keyword: "shell station cafe", Category: "Coffee"},
		{ID: 3, Keyword: "", Category: "Ignored"},
	}

	tests := []struct {
		name   string
		input  string
		wantID int32
	}{
		{"substring, case-insensitive", "SHELL #4410", 1},
		{"longest keyword wins", "Shell Station Cafe Downtown", 2},
		{"no match", "Corner Deli", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := MatchCategoryRule(rules, tt.input)
			if tt.wantID == 0 {
				if rule != nil {
					t.Errorf("Expected no match, got rule %d", rule.ID)
				}
				return
			}
			if rule == nil || rule.ID != tt.wantID {
				t.Errorf("Expected rule %d, got %+v", tt.wantID, rule)
			}
		})
	}
}

func TestNormalizeKeyword(t *testing.T) {
	if got := NormalizeKeyword("  NetFlix  "); got != "netflix" {
		t.Errorf("NormalizeKeyword = %q, want netflix", got)
	}
}

func TestGoalRefreshCompletion(t *testing.T) {
	goal := &Goal{TargetAmount: decimal.NewFromInt(100), CurrentAmount: decimal.NewFromInt(99)}
	goal.RefreshCompletion()
	if goal.IsCompleted {
		t.Fatal("Expected goal below target to stay active")
	}

	goal.CurrentAmount = decimal.NewFromInt(100)
	goal.RefreshCompletion()
	if !goal.IsCompleted {
		t.Fatal("Expected goal at target to complete")
	}

	goal.CurrentAmount = decimal.NewFromInt(10)
	goal.RefreshCompletion()
	if !goal.IsCompleted {
		t.Error("Expected completion to stick after a withdrawal")
	}
}
