package service

import (
	"context"
	"time"

	"github.com/receiptwise/receiptwise-backend/internal/analytics"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/util"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// InsightsService compares a month's category spending with the month before
type InsightsService struct {
	transactionRepo domain.TransactionRepository
	now             func() time.Time
}

func NewInsightsService(transactionRepo domain.TransactionRepository) *InsightsService {
	return &InsightsService{transactionRepo: transactionRepo, now: time.Now}
}

// GetSpendingInsights loads expense totals for year/month and the previous month
// concurrently and runs them through the insights engine
func (s *InsightsService) GetSpendingInsights(ctx context.Context, workspaceID int32, year, month int) (*domain.InsightsReport, error) {
	if err := ValidatePeriod(year, month); err != nil {
		return nil, err
	}

	prevYear, prevMonth := util.PreviousMonth(year, month)
	curStart, curEnd := util.MonthBounds(year, month)
	prevStart, prevEnd := util.MonthBounds(prevYear, prevMonth)

	var current, previous []*domain.CategoryTotal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.transactionRepo.SumExpensesByCategory(gctx, workspaceID, curStart, curEnd)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.transactionRepo.SumExpensesByCategory(gctx, workspaceID, prevStart, prevEnd)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int("year", year).Int("month", month).Msg("Failed to load spending totals")
		return nil, err
	}

	report := analytics.ComputeInsights(analytics.TotalsByCategory(current), analytics.TotalsByCategory(previous))
	return &report, nil
}

// GetCurrentInsights runs GetSpendingInsights for the current UTC month
func (s *InsightsService) GetCurrentInsights(ctx context.Context, workspaceID int32) (*domain.InsightsReport, error) {
	year, month := util.CurrentYearMonth(s.now())
	return s.GetSpendingInsights(ctx, workspaceID, year, month)
}
