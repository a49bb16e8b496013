package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAlertWorker(interval time.Duration) (*AlertWorker, *testutil.MockTransactionRepository, *testutil.MockWorkspaceRepository, *testutil.MockAlertNotifier) {
	transactionRepo := testutil.NewMockTransactionRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository()
	notifier := testutil.NewMockAlertNotifier()

	worker := NewAlertWorker(NewInsightsService(transactionRepo), workspaceRepo, notifier, zerolog.Nop(), AlertWorkerConfig{Interval: interval})
	worker.now = func() time.Time { return fixedNow }
	return worker, transactionRepo, workspaceRepo, notifier
}

func TestAlertWorker_DefaultConfig(t *testing.T) {
	assert.Equal(t, 6*time.Hour, DefaultAlertWorkerConfig().Interval)

	worker := NewAlertWorker(nil, nil, nil, zerolog.Nop(), AlertWorkerConfig{})
	assert.Equal(t, 6*time.Hour, worker.interval)
	assert.False(t, worker.IsRunning())
}

func TestAlertWorker_SweepNotifiesOnlyWorkspacesWithAlerts(t *testing.T) {
	worker, transactions, workspaces, notifier := setupAlertWorker(time.Hour)
	workspaces.AddWorkspace(&domain.Workspace{ID: 1, UserID: uuid.New()}, "")
	workspaces.AddWorkspace(&domain.Workspace{ID: 2, UserID: uuid.New()}, "")

	june := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	may := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
	expenseOn(transactions, 1, "Food", 150, june)
	expenseOn(transactions, 1, "Food", 90, may)
	expenseOn(transactions, 2, "Food", 100, june)
	expenseOn(transactions, 2, "Food", 95, may)

	result := worker.Sweep(context.Background())

	assert.Equal(t, SweepResult{Workspaces: 2, Alerts: 1}, result)
	require.Len(t, notifier.Calls[1], 1)
	assert.Equal(t, "Food", notifier.Calls[1][0].Category)
	assert.NotContains(t, notifier.Calls, int32(2))
}

func TestAlertWorker_SweepCountsErrors(t *testing.T) {
	worker, transactions, workspaces, notifier := setupAlertWorker(time.Hour)
	workspaces.AddWorkspace(&domain.Workspace{ID: 1, UserID: uuid.New()}, "")
	expenseOn(transactions, 1, "Food", 300, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
	expenseOn(transactions, 1, "Food", 100, time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC))
	notifier.Err = errors.New("broker unavailable")

	result := worker.Sweep(context.Background())
	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 0, result.Alerts)

	workspaces.ListErr = errors.New("db down")
	result = worker.Sweep(context.Background())
	assert.Equal(t, SweepResult{Errors: 1}, result)
}

func TestAlertWorker_StartStop(t *testing.T) {
	worker, _, workspaces, _ := setupAlertWorker(20 * time.Millisecond)
	workspaces.AddWorkspace(&domain.Workspace{ID: 1, UserID: uuid.New()}, "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	worker.Start(ctx)
	assert.True(t, worker.IsRunning())

	time.Sleep(60 * time.Millisecond)
	worker.Stop()
	assert.False(t, worker.IsRunning())

	// second stop is a no-op
	worker.Stop()
}

func TestAlertWorker_StopsOnContextCancel(t *testing.T) {
	worker, _, _, _ := setupAlertWorker(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)
	cancel()

	require.Eventually(t, func() bool { return !worker.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestAlertWorker_Restart(t *testing.T) {
	worker, _, workspaces, _ := setupAlertWorker(time.Hour)
	workspaces.AddWorkspace(&domain.Workspace{ID: 1, UserID: uuid.New()}, "")

	for i := 0; i < 3; i++ {
		worker.Start(context.Background())
		require.True(t, worker.IsRunning(), "start %d", i)
		assert.NotPanics(t, worker.Stop, "stop %d", i)
		assert.False(t, worker.IsRunning())
	}

	// a run ended by its context can also be restarted and stopped
	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)
	cancel()
	require.Eventually(t, func() bool { return !worker.IsRunning() }, time.Second, 10*time.Millisecond)

	worker.Start(context.Background())
	assert.True(t, worker.IsRunning())
	assert.NotPanics(t, worker.Stop)
}
