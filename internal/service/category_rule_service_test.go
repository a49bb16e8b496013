package service

import (
	"context"
	"testing"

	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRule_NormalizesKeyword(t *testing.T) {
	svc := NewCategoryRuleService(testutil.NewMockCategoryRuleRepository())

	rule, err := svc.CreateRule(context.Background(), 1, CategoryRuleInput{Keyword: "  STARBUCKS ", Category: " Coffee "})
	require.NoError(t, err)
	assert.Equal(t, "starbucks", rule.Keyword)
	assert.Equal(t, "Coffee", rule.Category)
	assert.Equal(t, int32(1), rule.WorkspaceID)
}

func TestCreateRule_Validation(t *testing.T) {
	svc := NewCategoryRuleService(testutil.NewMockCategoryRuleRepository())

	tests := []struct {
		name    string
		input   CategoryRuleInput
		wantErr error
	}{
		{"blank keyword", CategoryRuleInput{Keyword: "   ", Category: "Food"}, domain.ErrKeywordRequired},
		{"blank category", CategoryRuleInput{Keyword: "uber", Category: ""}, domain.ErrCategoryRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRule(context.Background(), 1, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateRule_DuplicateKeyword(t *testing.T) {
	svc := NewCategoryRuleService(testutil.NewMockCategoryRuleRepository())
	ctx := context.Background()

	_, err := svc.CreateRule(ctx, 1, CategoryRuleInput{Keyword: "uber", Category: "Transport"})
	require.NoError(t, err)

	_, err = svc.CreateRule(ctx, 1, CategoryRuleInput{Keyword: "UBER", Category: "Rides"})
	assert.ErrorIs(t, err, domain.ErrCategoryRuleExists)

	// other workspaces are unaffected
	_, err = svc.CreateRule(ctx, 2, CategoryRuleInput{Keyword: "uber", Category: "Rides"})
	assert.NoError(t, err)
}

func TestUpdateRule(t *testing.T) {
	repo := testutil.NewMockCategoryRuleRepository()
	svc := NewCategoryRuleService(repo)
	repo.AddRule(&domain.CategoryRule{ID: 3, WorkspaceID: 1, Keyword: "shell", Category: "Fuel"})

	updated, err := svc.UpdateRule(context.Background(), 1, 3, CategoryRuleInput{Keyword: "Shell Station", Category: "Transport"})
	require.NoError(t, err)
	assert.Equal(t, "shell station", updated.Keyword)
	assert.Equal(t, "Transport", updated.Category)

	_, err = svc.UpdateRule(context.Background(), 2, 3, CategoryRuleInput{Keyword: "x", Category: "y"})
	assert.ErrorIs(t, err, domain.ErrCategoryRuleNotFound)
}

func TestDeleteRule_WrongWorkspace(t *testing.T) {
	repo := testutil.NewMockCategoryRuleRepository()
	svc := NewCategoryRuleService(repo)
	repo.AddRule(&domain.CategoryRule{ID: 1, WorkspaceID: 1, Keyword: "rent", Category: "Housing"})

	assert.ErrorIs(t, svc.DeleteRule(context.Background(), 2, 1), domain.ErrCategoryRuleNotFound)
	assert.NoError(t, svc.DeleteRule(context.Background(), 1, 1))
	assert.Empty(t, repo.Rules)
}

func TestCategorize_LongestKeywordWins(t *testing.T) {
	repo := testutil.NewMockCategoryRuleRepository()
	svc := NewCategoryRuleService(repo)
	repo.AddRule(&domain.CategoryRule{WorkspaceID: 1, Keyword: "uber", Category: "Transport"})
	repo.AddRule(&domain.CategoryRule{WorkspaceID: 1, Keyword: "uber eats", Category: "Food"})

	category, err := svc.Categorize(context.Background(), 1, "UBER EATS order #123")
	require.NoError(t, err)
	assert.Equal(t, "Food", category)

	category, err = svc.Categorize(context.Background(), 1, "Uber trip")
	require.NoError(t, err)
	assert.Equal(t, "Transport", category)

	category, err = svc.Categorize(context.Background(), 1, "Groceries")
	require.NoError(t, err)
	assert.Empty(t, category)
}
