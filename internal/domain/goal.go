package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target. Once completed it stays completed.
type Goal struct {
	ID            int32           `json:"id"`
	WorkspaceID   int32           `json:"workspaceId"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    *time.Time      `json:"targetDate,omitempty"`
	Description   *string         `json:"description,omitempty"`
	IsCompleted   bool            `json:"isCompleted"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// RefreshCompletion marks the goal completed when the target has been reached
func (g *Goal) RefreshCompletion() {
	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.IsCompleted = true
	}
}

type GoalStats struct {
	TotalGoals         int             `json:"totalGoals"`
	CompletedGoals     int             `json:"completedGoals"`
	ActiveGoals        int             `json:"activeGoals"`
	TotalTargetAmount  decimal.Decimal `json:"totalTargetAmount"`
	TotalCurrentAmount decimal.Decimal `json:"totalCurrentAmount"`
	AverageProgress    decimal.Decimal `json:"averageProgress"`
}

type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) (*Goal, error)
	GetByID(ctx context.Context, workspaceID int32, id int32) (*Goal, error)
	ListByWorkspace(ctx context.Context, workspaceID int32) ([]*Goal, error)
	Update(ctx context.Context, goal *Goal) (*Goal, error)
	Delete(ctx context.Context, workspaceID int32, id int32) error
}
