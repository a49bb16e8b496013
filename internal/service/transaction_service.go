package service

import (
	"context"
	"strings"
	"time"

	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	rules           *CategoryRuleService
	eventPublisher  websocket.EventPublisher
	now             func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, rules *CategoryRuleService) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		rules:           rules,
		now:             time.Now,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *TransactionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *TransactionService) publishEvent(workspaceID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(workspaceID, event)
	}
}

// TransactionInput holds the fields accepted on create and update
type TransactionInput struct {
	Name       string
	Amount     decimal.Decimal
	Category   string
	IsIncome   bool
	OccurredOn *time.Time
	Tags       []string
	Notes      *string
}

// CreateTransaction validates the input and stores a new transaction.
// An empty category is resolved through the workspace's category rules.
func (s *TransactionService) CreateTransaction(ctx context.Context, workspaceID int32, input TransactionInput) (*domain.Transaction, error) {
	t := &domain.Transaction{WorkspaceID: workspaceID}
	if err := s.apply(ctx, t, input); err != nil {
		return nil, err
	}

	created, err := s.transactionRepo.Create(ctx, t)
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.TransactionCreated(created))
	return created, nil
}

func (s *TransactionService) apply(ctx context.Context, t *domain.Transaction, input TransactionInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return domain.ErrNameTooLong
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	tags, err := normalizeTags(input.Tags)
	if err != nil {
		return err
	}

	var notes *string
	if input.Notes != nil {
		trimmed := strings.TrimSpace(*input.Notes)
		if len(trimmed) > domain.MaxNotesLength {
			return domain.ErrInvalidInput
		}
		if trimmed != "" {
			notes = &trimmed
		}
	}

	category := strings.TrimSpace(input.Category)
	if len(category) > domain.MaxCategoryLength {
		return domain.ErrNameTooLong
	}
	if category == "" {
		category, err = s.resolveCategory(ctx, t.WorkspaceID, name, input.IsIncome)
		if err != nil {
			return err
		}
	}

	occurredOn := s.now().UTC()
	if input.OccurredOn != nil {
		occurredOn = input.OccurredOn.UTC()
	}

	t.Name = name
	t.Amount = input.Amount
	t.Category = category
	t.IsIncome = input.IsIncome
	t.OccurredOn = occurredOn
	t.Tags = tags
	t.Notes = notes
	return nil
}

// resolveCategory picks the rule-matched category for name, falling back to the default
func (s *TransactionService) resolveCategory(ctx context.Context, workspaceID int32, name string, isIncome bool) (string, error) {
	if s.rules != nil {
		category, err := s.rules.Categorize(ctx, workspaceID, name)
		if err != nil {
			return "", err
		}
		if category != "" {
			return category, nil
		}
	}
	return domain.DefaultCategoryFor(isIncome), nil
}

// normalizeTags trims, lowercases and de-duplicates tags, keeping first-seen order
func normalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		if len(tag) > domain.MaxTagLength {
			return nil, domain.ErrInvalidInput
		}
		seen[tag] = true
		out = append(out, tag)
	}
	if len(out) > domain.MaxTagsPerItem {
		return nil, domain.ErrInvalidInput
	}
	return out, nil
}

// GetTransactions retrieves transactions for a workspace with optional filters and pagination
func (s *TransactionService) GetTransactions(ctx context.Context, workspaceID int32, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	if filters != nil && filters.StartDate != nil && filters.EndDate != nil && filters.EndDate.Before(*filters.StartDate) {
		return nil, domain.ErrInvalidDate
	}
	return s.transactionRepo.List(ctx, workspaceID, filters)
}

func (s *TransactionService) GetTransactionByID(ctx context.Context, workspaceID, id int32) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, workspaceID, id)
}

// UpdateTransaction replaces every editable field of an existing transaction
func (s *TransactionService) UpdateTransaction(ctx context.Context, workspaceID, id int32, input TransactionInput) (*domain.Transaction, error) {
	existing, err := s.transactionRepo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	if input.OccurredOn == nil {
		occurredOn := existing.OccurredOn
		input.OccurredOn = &occurredOn
	}
	if err := s.apply(ctx, existing, input); err != nil {
		return nil, err
	}

	updated, err := s.transactionRepo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.TransactionUpdated(updated))
	return updated, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, workspaceID, id int32) error {
	if err := s.transactionRepo.Delete(ctx, workspaceID, id); err != nil {
		return err
	}
	s.publishEvent(workspaceID, websocket.TransactionDeleted(map[string]int32{"id": id}))
	return nil
}

// DeleteTransactions removes every listed transaction owned by the workspace and
// returns how many were deleted
func (s *TransactionService) DeleteTransactions(ctx context.Context, workspaceID int32, ids []int32) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.ErrInvalidInput
	}
	deleted, err := s.transactionRepo.DeleteMany(ctx, workspaceID, ids)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.publishEvent(workspaceID, websocket.TransactionsBulkDeleted(map[string]interface{}{
			"ids":     ids,
			"deleted": deleted,
		}))
	}
	return deleted, nil
}

// GetSummary returns lifetime totals together with the newest transactions
func (s *TransactionService) GetSummary(ctx context.Context, workspaceID int32) (*domain.TransactionSummary, error) {
	var summary *domain.TransactionSummary
	var recent *domain.PaginatedTransactions

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.transactionRepo.GetSummary(gctx, workspaceID)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.transactionRepo.List(gctx, workspaceID, &domain.TransactionFilters{
			Page:     1,
			PageSize: domain.RecentTransactionsLimit,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.RecentTransactions = recent.Data
	return summary, nil
}

// GetCategories lists distinct category names; isIncome nil means both directions
func (s *TransactionService) GetCategories(ctx context.Context, workspaceID int32, isIncome *bool) ([]string, error) {
	return s.transactionRepo.ListCategories(ctx, workspaceID, isIncome)
}

// DeleteCategory moves every transaction of category to Uncategorized
func (s *TransactionService) DeleteCategory(ctx context.Context, workspaceID int32, category string) (int64, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return 0, domain.ErrCategoryRequired
	}
	if category == domain.UncategorizedCategory {
		return 0, nil
	}

	moved, err := s.transactionRepo.ReassignCategory(ctx, workspaceID, category, domain.UncategorizedCategory)
	if err != nil {
		return 0, err
	}

	log.Info().Int32("workspace_id", workspaceID).Str("category", category).Int64("moved", moved).Msg("Category deleted")
	if moved > 0 {
		s.publishEvent(workspaceID, websocket.TransactionUpdated(map[string]interface{}{
			"category": category,
			"movedTo":  domain.UncategorizedCategory,
			"count":    moved,
		}))
	}
	return moved, nil
}

func (s *TransactionService) GetTags(ctx context.Context, workspaceID int32) ([]string, error) {
	return s.transactionRepo.ListTags(ctx, workspaceID)
}
