package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
)

const budgetColumns = `id, workspace_id, category, amount, month, year, created_at, updated_at`

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

func (r *BudgetRepository) Create(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	amount, err := decimalToPgNumeric(b.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO budgets (workspace_id, category, amount, month, year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+budgetColumns,
		b.WorkspaceID, b.Category, amount, b.Month, b.Year)
	return scanBudget(row)
}

func (r *BudgetRepository) GetByID(ctx context.Context, workspaceID int32, id int32) (*domain.Budget, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	return scanBudget(row)
}

// ListByWorkspace returns every budget of a workspace, latest period first
func (r *BudgetRepository) ListByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.Budget, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+budgetColumns+` FROM budgets
		WHERE workspace_id = $1
		ORDER BY year DESC, month DESC, id`, workspaceID)
	if err != nil {
		return nil, err
	}
	return collectBudgets(rows)
}

// ListByMonth returns the budgets of one month in creation order
func (r *BudgetRepository) ListByMonth(ctx context.Context, workspaceID int32, year, month int) ([]*domain.Budget, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+budgetColumns+` FROM budgets
		WHERE workspace_id = $1 AND year = $2 AND month = $3
		ORDER BY id`, workspaceID, year, month)
	if err != nil {
		return nil, err
	}
	return collectBudgets(rows)
}

func (r *BudgetRepository) Update(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	amount, err := decimalToPgNumeric(b.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE budgets SET category = $3, amount = $4, month = $5, year = $6, updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2
		RETURNING `+budgetColumns,
		b.WorkspaceID, b.ID, b.Category, amount, b.Month, b.Year)
	return scanBudget(row)
}

func (r *BudgetRepository) Delete(ctx context.Context, workspaceID int32, id int32) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func collectBudgets(rows pgx.Rows) ([]*domain.Budget, error) {
	defer rows.Close()

	result := make([]*domain.Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func scanBudget(row rowScanner) (*domain.Budget, error) {
	var (
		b      domain.Budget
		amount pgtype.Numeric
		month  int16
		year   int16
	)
	if err := row.Scan(&b.ID, &b.WorkspaceID, &b.Category, &amount, &month, &year, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	b.Amount = pgNumericToDecimal(amount)
	b.Month = int(month)
	b.Year = int(year)
	return &b, nil
}
