package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a spending limit for one category in one calendar month.
// Several budgets may exist for the same category and month; they are never merged.
type Budget struct {
	ID          int32           `json:"id"`
	WorkspaceID int32           `json:"workspaceId"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type BudgetStatus string

const (
	BudgetStatusSafe    BudgetStatus = "safe"
	BudgetStatusCaution BudgetStatus = "caution"
	BudgetStatusWarning BudgetStatus = "warning"
	BudgetStatusOver    BudgetStatus = "over"
)

// BudgetReport compares a budget with the expenses recorded in its month
type BudgetReport struct {
	BudgetID        int32           `json:"budgetId"`
	Category        string          `json:"category"`
	BudgetAmount    decimal.Decimal `json:"budgetAmount"`
	SpentAmount     decimal.Decimal `json:"spentAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	PercentageSpent decimal.Decimal `json:"percentageSpent"`
	Status          BudgetStatus    `json:"status"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
}

type BudgetRepository interface {
	Create(ctx context.Context, budget *Budget) (*Budget, error)
	GetByID(ctx context.Context, workspaceID int32, id int32) (*Budget, error)
	// ListByWorkspace returns budgets newest period first
	ListByWorkspace(ctx context.Context, workspaceID int32) ([]*Budget, error)
	ListByMonth(ctx context.Context, workspaceID int32, year, month int) ([]*Budget, error)
	Update(ctx context.Context, budget *Budget) (*Budget, error)
	Delete(ctx context.Context, workspaceID int32, id int32) error
}
