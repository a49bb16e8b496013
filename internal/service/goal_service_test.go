package service

import (
	"context"
	"testing"

	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoalFixture() (*GoalService, *testutil.MockGoalRepository, *testutil.MockEventPublisher) {
	repo := testutil.NewMockGoalRepository()
	publisher := &testutil.MockEventPublisher{}
	svc := NewGoalService(repo)
	svc.SetEventPublisher(publisher)
	return svc, repo, publisher
}

func TestCreateGoal(t *testing.T) {
	svc, _, _ := newGoalFixture()

	goal, err := svc.CreateGoal(context.Background(), 1, GoalInput{Name: " Vacation ", TargetAmount: decimal.NewFromInt(2000), CurrentAmount: decimal.NewFromInt(250)})
	require.NoError(t, err)
	assert.Equal(t, "Vacation", goal.Name)
	assert.False(t, goal.IsCompleted)

	done, err := svc.CreateGoal(context.Background(), 1, GoalInput{Name: "Laptop", TargetAmount: decimal.NewFromInt(1000), CurrentAmount: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	assert.True(t, done.IsCompleted)
}

func TestCreateGoal_Validation(t *testing.T) {
	svc, _, _ := newGoalFixture()

	tests := []struct {
		name    string
		input   GoalInput
		wantErr error
	}{
		{"missing name", GoalInput{TargetAmount: decimal.NewFromInt(1)}, domain.ErrNameRequired},
		{"zero target", GoalInput{Name: "x", TargetAmount: decimal.Zero}, domain.ErrInvalidAmount},
		{"negative current", GoalInput{Name: "x", TargetAmount: decimal.NewFromInt(1), CurrentAmount: decimal.NewFromInt(-1)}, domain.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateGoal(context.Background(), 1, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAddProgress_CompletesGoal(t *testing.T) {
	svc, repo, publisher := newGoalFixture()
	repo.AddGoal(&domain.Goal{ID: 1, WorkspaceID: 1, Name: "Bike", TargetAmount: decimal.NewFromInt(500), CurrentAmount: decimal.NewFromInt(400)})

	goal, err := svc.AddProgress(context.Background(), 1, 1, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.False(t, goal.IsCompleted)

	goal, err = svc.AddProgress(context.Background(), 1, 1, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.True(t, goal.IsCompleted)
	assert.Equal(t, []string{"goal.updated", "goal.completed"}, publisher.Types())
}

func TestAddProgress_CompletionIsSticky(t *testing.T) {
	svc, repo, publisher := newGoalFixture()
	repo.AddGoal(&domain.Goal{ID: 1, WorkspaceID: 1, Name: "Bike", TargetAmount: decimal.NewFromInt(500), CurrentAmount: decimal.NewFromInt(500), IsCompleted: true})

	goal, err := svc.AddProgress(context.Background(), 1, 1, decimal.NewFromInt(-100))
	require.NoError(t, err)
	assert.True(t, goal.IsCompleted)
	assert.True(t, goal.CurrentAmount.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, []string{"goal.updated"}, publisher.Types())
}

func TestAddProgress_Rejections(t *testing.T) {
	svc, repo, _ := newGoalFixture()
	repo.AddGoal(&domain.Goal{ID: 1, WorkspaceID: 1, Name: "Bike", TargetAmount: decimal.NewFromInt(500), CurrentAmount: decimal.NewFromInt(20)})

	_, err := svc.AddProgress(context.Background(), 1, 1, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.AddProgress(context.Background(), 1, 1, decimal.NewFromInt(-21))
	assert.ErrorIs(t, err, domain.ErrGoalProgressNegative)

	_, err = svc.AddProgress(context.Background(), 2, 1, decimal.NewFromInt(5))
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)

	assert.True(t, repo.Goals[1].CurrentAmount.Equal(decimal.NewFromInt(20)))
}

func TestUpdateGoal(t *testing.T) {
	svc, repo, _ := newGoalFixture()
	repo.AddGoal(&domain.Goal{ID: 3, WorkspaceID: 1, Name: "Car", TargetAmount: decimal.NewFromInt(10000)})

	desc := "  used hatchback "
	goal, err := svc.UpdateGoal(context.Background(), 1, 3, GoalInput{Name: "Car fund", TargetAmount: decimal.NewFromInt(8000), CurrentAmount: decimal.NewFromInt(100), Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Car fund", goal.Name)
	assert.Equal(t, "used hatchback", *goal.Description)
}

func TestGetStats(t *testing.T) {
	svc, repo, _ := newGoalFixture()
	repo.AddGoal(&domain.Goal{WorkspaceID: 1, Name: "a", TargetAmount: decimal.NewFromInt(100), CurrentAmount: decimal.NewFromInt(100), IsCompleted: true})
	repo.AddGoal(&domain.Goal{WorkspaceID: 1, Name: "b", TargetAmount: decimal.NewFromInt(300), CurrentAmount: decimal.NewFromInt(100)})
	repo.AddGoal(&domain.Goal{WorkspaceID: 1, Name: "c", TargetAmount: decimal.NewFromInt(200), CurrentAmount: decimal.Zero})
	repo.AddGoal(&domain.Goal{WorkspaceID: 2, Name: "d", TargetAmount: decimal.NewFromInt(50), CurrentAmount: decimal.NewFromInt(50)})

	stats, err := svc.GetStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalGoals)
	assert.Equal(t, 1, stats.CompletedGoals)
	assert.Equal(t, 2, stats.ActiveGoals)
	assert.True(t, stats.TotalTargetAmount.Equal(decimal.NewFromInt(600)))
	assert.True(t, stats.TotalCurrentAmount.Equal(decimal.NewFromInt(200)))
	// (100 + 33.333... + 0) / 3
	assert.True(t, stats.AverageProgress.Equal(decimal.RequireFromString("44.44")), "got %s", stats.AverageProgress)
}

func TestGetStats_NoGoals(t *testing.T) {
	svc, _, _ := newGoalFixture()

	stats, err := svc.GetStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalGoals)
	assert.True(t, stats.AverageProgress.IsZero())
}
