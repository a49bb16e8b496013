package service

import (
	"context"
	"strings"
	"time"

	"github.com/receiptwise/receiptwise-backend/internal/analytics"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// GoalService manages savings goals
type GoalService struct {
	goalRepo       domain.GoalRepository
	eventPublisher websocket.EventPublisher
}

func NewGoalService(goalRepo domain.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *GoalService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *GoalService) publishEvent(workspaceID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(workspaceID, event)
	}
}

type GoalInput struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
	Description   *string
}

func (in GoalInput) apply(g *domain.Goal) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return domain.ErrNameTooLong
	}
	if !in.TargetAmount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if in.CurrentAmount.IsNegative() {
		return domain.ErrInvalidAmount
	}

	var description *string
	if in.Description != nil {
		trimmed := strings.TrimSpace(*in.Description)
		if len(trimmed) > domain.MaxDescriptionLength {
			return domain.ErrInvalidInput
		}
		if trimmed != "" {
			description = &trimmed
		}
	}

	g.Name = name
	g.TargetAmount = in.TargetAmount
	g.CurrentAmount = in.CurrentAmount
	g.TargetDate = in.TargetDate
	g.Description = description
	g.RefreshCompletion()
	return nil
}

func (s *GoalService) CreateGoal(ctx context.Context, workspaceID int32, input GoalInput) (*domain.Goal, error) {
	goal := &domain.Goal{WorkspaceID: workspaceID}
	if err := input.apply(goal); err != nil {
		return nil, err
	}
	return s.goalRepo.Create(ctx, goal)
}

func (s *GoalService) GetGoals(ctx context.Context, workspaceID int32) ([]*domain.Goal, error) {
	return s.goalRepo.ListByWorkspace(ctx, workspaceID)
}

func (s *GoalService) GetGoal(ctx context.Context, workspaceID, id int32) (*domain.Goal, error) {
	return s.goalRepo.GetByID(ctx, workspaceID, id)
}

func (s *GoalService) UpdateGoal(ctx context.Context, workspaceID, id int32, input GoalInput) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	wasCompleted := goal.IsCompleted
	if err := input.apply(goal); err != nil {
		return nil, err
	}
	return s.save(ctx, goal, wasCompleted)
}

// AddProgress adds amount (which may be negative) to the goal's current amount.
// The result may not drop below zero.
func (s *GoalService) AddProgress(ctx context.Context, workspaceID, id int32, amount decimal.Decimal) (*domain.Goal, error) {
	if amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}

	goal, err := s.goalRepo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	current := goal.CurrentAmount.Add(amount)
	if current.IsNegative() {
		return nil, domain.ErrGoalProgressNegative
	}

	wasCompleted := goal.IsCompleted
	goal.CurrentAmount = current
	goal.RefreshCompletion()
	return s.save(ctx, goal, wasCompleted)
}

func (s *GoalService) save(ctx context.Context, goal *domain.Goal, wasCompleted bool) (*domain.Goal, error) {
	updated, err := s.goalRepo.Update(ctx, goal)
	if err != nil {
		return nil, err
	}

	if updated.IsCompleted && !wasCompleted {
		log.Info().Int32("workspace_id", updated.WorkspaceID).Int32("goal_id", updated.ID).Msg("Goal completed")
		s.publishEvent(updated.WorkspaceID, websocket.GoalCompleted(updated))
	} else {
		s.publishEvent(updated.WorkspaceID, websocket.GoalUpdated(updated))
	}
	return updated, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, workspaceID, id int32) error {
	return s.goalRepo.Delete(ctx, workspaceID, id)
}

// GetStats summarizes every goal in the workspace. AverageProgress is the mean
// of each goal's current/target percentage, rounded to two places.
func (s *GoalService) GetStats(ctx context.Context, workspaceID int32) (*domain.GoalStats, error) {
	goals, err := s.goalRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	stats := &domain.GoalStats{
		TotalGoals:         len(goals),
		TotalTargetAmount:  decimal.Zero,
		TotalCurrentAmount: decimal.Zero,
		AverageProgress:    decimal.Zero,
	}
	if len(goals) == 0 {
		return stats, nil
	}

	progress := decimal.Zero
	hundred := decimal.NewFromInt(100)
	for _, g := range goals {
		if g.IsCompleted {
			stats.CompletedGoals++
		}
		stats.TotalTargetAmount = stats.TotalTargetAmount.Add(g.TargetAmount)
		stats.TotalCurrentAmount = stats.TotalCurrentAmount.Add(g.CurrentAmount)
		if g.TargetAmount.IsPositive() {
			progress = progress.Add(g.CurrentAmount.Div(g.TargetAmount).Mul(hundred))
		}
	}
	stats.ActiveGoals = stats.TotalGoals - stats.CompletedGoals
	stats.AverageProgress = analytics.Round2(progress.Div(decimal.NewFromInt(int64(len(goals)))))
	return stats, nil
}
