package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultExpenseCategory = "Miscellaneous"
	DefaultIncomeCategory  = "Other Income"
	UncategorizedCategory  = "Uncategorized"
)

// Transaction is a single income or expense entry. Amount is always non-negative;
// IsIncome carries the direction.
type Transaction struct {
	ID          int32           `json:"id"`
	WorkspaceID int32           `json:"workspaceId"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	IsIncome    bool            `json:"isIncome"`
	OccurredOn  time.Time       `json:"occurredOn"`
	Tags        []string        `json:"tags"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// DefaultCategoryFor returns the fallback category for the given direction
func DefaultCategoryFor(isIncome bool) string {
	if isIncome {
		return DefaultIncomeCategory
	}
	return DefaultExpenseCategory
}

type TransactionFilters struct {
	Category  *string
	IsIncome  *bool
	StartDate *time.Time
	EndDate   *time.Time
	Search    *string
	Tag       *string
	Page      int32
	PageSize  int32
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginatedTransactions struct {
	Data       []*Transaction `json:"data"`
	Page       int32          `json:"page"`
	PageSize   int32          `json:"pageSize"`
	TotalItems int64          `json:"totalItems"`
	TotalPages int32          `json:"totalPages"`
}

// RecentTransactionsLimit is how many of the newest transactions a summary carries
const RecentTransactionsLimit = 5

// TransactionSummary aggregates every transaction in a workspace
type TransactionSummary struct {
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	Balance            decimal.Decimal `json:"balance"`
	Count              int64           `json:"count"`
	RecentTransactions []*Transaction  `json:"recentTransactions"`
}

// CategoryTotal is the expense sum of one category over a date window
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) (*Transaction, error)
	CreateBatch(ctx context.Context, transactions []*Transaction) (int, error)
	GetByID(ctx context.Context, workspaceID int32, id int32) (*Transaction, error)
	List(ctx context.Context, workspaceID int32, filters *TransactionFilters) (*PaginatedTransactions, error)
	ListAll(ctx context.Context, workspaceID int32) ([]*Transaction, error)
	// ListExpensesInRange returns non-income transactions with start <= occurred_on <= end
	ListExpensesInRange(ctx context.Context, workspaceID int32, start, end time.Time) ([]*Transaction, error)
	// ListInRange is ListExpensesInRange for both directions
	ListInRange(ctx context.Context, workspaceID int32, start, end time.Time) ([]*Transaction, error)
	Update(ctx context.Context, transaction *Transaction) (*Transaction, error)
	Delete(ctx context.Context, workspaceID int32, id int32) error
	DeleteMany(ctx context.Context, workspaceID int32, ids []int32) (int64, error)
	SumExpensesByCategory(ctx context.Context, workspaceID int32, start, end time.Time) ([]*CategoryTotal, error)
	GetSummary(ctx context.Context, workspaceID int32) (*TransactionSummary, error)
	// ListCategories returns distinct category names. A nil isIncome means both directions.
	ListCategories(ctx context.Context, workspaceID int32, isIncome *bool) ([]string, error)
	ReassignCategory(ctx context.Context, workspaceID int32, from, to string) (int64, error)
	ListTags(ctx context.Context, workspaceID int32) ([]string, error)
}

// Pagination returns the effective page and page size, applying defaults and the size cap
func (f *TransactionFilters) Pagination() (int32, int32) {
	page := int32(1)
	pageSize := int32(DefaultPageSize)
	if f != nil {
		if f.Page > 0 {
			page = f.Page
		}
		if f.PageSize > 0 {
			pageSize = f.PageSize
			if pageSize > MaxPageSize {
				pageSize = MaxPageSize
			}
		}
	}
	return page, pageSize
}

// NewPaginatedTransactions wraps one page of results with its paging metadata
func NewPaginatedTransactions(data []*Transaction, page, pageSize int32, totalItems int64) *PaginatedTransactions {
	totalPages := int32(totalItems / int64(pageSize))
	if totalItems%int64(pageSize) > 0 {
		totalPages++
	}
	return &PaginatedTransactions{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
