package service

import (
	"context"
	"fmt"
	"time"

	"github.com/receiptwise/receiptwise-backend/internal/analytics"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/util"
	"github.com/rs/zerolog/log"
)

// DashboardService builds the chart series shown on the dashboard
type DashboardService struct {
	transactionRepo domain.TransactionRepository
	now             func() time.Time
}

func NewDashboardService(transactionRepo domain.TransactionRepository) *DashboardService {
	return &DashboardService{transactionRepo: transactionRepo, now: time.Now}
}

// GetCharts aggregates a window of the given number of UTC days ending today.
// Zero means domain.DefaultChartDays.
func (s *DashboardService) GetCharts(ctx context.Context, workspaceID int32, days int) (*domain.ChartData, error) {
	if days == 0 {
		days = domain.DefaultChartDays
	}
	if days < 1 || days > domain.MaxChartDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", domain.ErrInvalidInput, domain.MaxChartDays)
	}

	start, end := util.TrailingDays(s.now(), days)
	transactions, err := s.transactionRepo.ListInRange(ctx, workspaceID, start, end)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int("days", days).Msg("Failed to load chart transactions")
		return nil, err
	}

	charts := analytics.ComputeCharts(transactions, start, end)
	return &charts, nil
}
