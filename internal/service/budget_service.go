package service

import (
	"context"
	"strings"
	"time"

	"github.com/receiptwise/receiptwise-backend/internal/analytics"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/util"
	"github.com/receiptwise/receiptwise-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	MinBudgetYear = 1900
	MaxBudgetYear = 2100
)

// BudgetService manages monthly category budgets and reports spending against them
type BudgetService struct {
	budgetRepo      domain.BudgetRepository
	transactionRepo domain.TransactionRepository
	eventPublisher  websocket.EventPublisher
	now             func() time.Time
}

func NewBudgetService(budgetRepo domain.BudgetRepository, transactionRepo domain.TransactionRepository) *BudgetService {
	return &BudgetService{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *BudgetService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *BudgetService) publishEvent(workspaceID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(workspaceID, event)
	}
}

type BudgetInput struct {
	Category string
	Amount   decimal.Decimal
	Month    int
	Year     int
}

func (in BudgetInput) validate() (string, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return "", domain.ErrCategoryRequired
	}
	if len(category) > domain.MaxCategoryLength {
		return "", domain.ErrNameTooLong
	}
	if in.Amount.IsNegative() {
		return "", domain.ErrInvalidAmount
	}
	if err := ValidatePeriod(in.Year, in.Month); err != nil {
		return "", err
	}
	return category, nil
}

// ValidatePeriod checks a month/year pair supplied by a client
func ValidatePeriod(year, month int) error {
	if month < 1 || month > 12 {
		return domain.ErrInvalidMonth
	}
	if year < MinBudgetYear || year > MaxBudgetYear {
		return domain.ErrInvalidYear
	}
	return nil
}

func (s *BudgetService) CreateBudget(ctx context.Context, workspaceID int32, input BudgetInput) (*domain.Budget, error) {
	category, err := input.validate()
	if err != nil {
		return nil, err
	}

	created, err := s.budgetRepo.Create(ctx, &domain.Budget{
		WorkspaceID: workspaceID,
		Category:    category,
		Amount:      input.Amount,
		Month:       input.Month,
		Year:        input.Year,
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.BudgetCreated(created))
	return created, nil
}

func (s *BudgetService) GetBudget(ctx context.Context, workspaceID, id int32) (*domain.Budget, error) {
	return s.budgetRepo.GetByID(ctx, workspaceID, id)
}

func (s *BudgetService) UpdateBudget(ctx context.Context, workspaceID, id int32, input BudgetInput) (*domain.Budget, error) {
	category, err := input.validate()
	if err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	budget.Category = category
	budget.Amount = input.Amount
	budget.Month = input.Month
	budget.Year = input.Year

	updated, err := s.budgetRepo.Update(ctx, budget)
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.BudgetUpdated(updated))
	return updated, nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, workspaceID, id int32) error {
	if err := s.budgetRepo.Delete(ctx, workspaceID, id); err != nil {
		return err
	}
	s.publishEvent(workspaceID, websocket.BudgetDeleted(map[string]int32{"id": id}))
	return nil
}

// BudgetWithSpending is a stored budget together with its report for its own month
type BudgetWithSpending struct {
	*domain.Budget
	Spent      decimal.Decimal     `json:"spent"`
	Remaining  decimal.Decimal     `json:"remaining"`
	Percentage decimal.Decimal     `json:"percentage"`
	Status     domain.BudgetStatus `json:"status"`
}

// ListBudgets returns every budget in the workspace with spent and remaining amounts
func (s *BudgetService) ListBudgets(ctx context.Context, workspaceID int32) ([]BudgetWithSpending, error) {
	budgets, err := s.budgetRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return []BudgetWithSpending{}, nil
	}

	// one expense query covering every budget month
	start, end := util.MonthBounds(budgets[0].Year, budgets[0].Month)
	for _, b := range budgets[1:] {
		bs, be := util.MonthBounds(b.Year, b.Month)
		if bs.Before(start) {
			start = bs
		}
		if be.After(end) {
			end = be
		}
	}

	transactions, err := s.transactionRepo.ListExpensesInRange(ctx, workspaceID, start, end)
	if err != nil {
		return nil, err
	}

	reports := analytics.ComputeBudgetReport(budgets, transactions)
	out := make([]BudgetWithSpending, len(budgets))
	for i, b := range budgets {
		out[i] = BudgetWithSpending{
			Budget:     b,
			Spent:      reports[i].SpentAmount,
			Remaining:  reports[i].RemainingAmount,
			Percentage: reports[i].PercentageSpent,
			Status:     reports[i].Status,
		}
	}
	return out, nil
}

// GetBudgetStatus reports every budget of year/month against that month's expenses.
// Budgets and transactions are loaded concurrently.
func (s *BudgetService) GetBudgetStatus(ctx context.Context, workspaceID int32, year, month int) ([]domain.BudgetReport, error) {
	if err := ValidatePeriod(year, month); err != nil {
		return nil, err
	}

	start, end := util.MonthBounds(year, month)

	var (
		budgets      []*domain.Budget
		transactions []*domain.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		budgets, err = s.budgetRepo.ListByMonth(gctx, workspaceID, year, month)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.transactionRepo.ListExpensesInRange(gctx, workspaceID, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int("year", year).Int("month", month).Msg("Failed to load budget status data")
		return nil, err
	}

	return analytics.ComputeBudgetReport(budgets, transactions), nil
}

// CurrentPeriod returns the UTC year and month of the service clock
func (s *BudgetService) CurrentPeriod() (int, int) {
	return util.CurrentYearMonth(s.now())
}
