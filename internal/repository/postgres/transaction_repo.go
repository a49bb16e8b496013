package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
)

const transactionColumns = `id, workspace_id, name, category, amount, is_income, occurred_on, tags, notes, created_at, updated_at`

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create creates a new transaction
func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	return r.insert(ctx, r.pool, t)
}

// CreateBatch inserts all transactions atomically and returns the number inserted
func (r *TransactionRepository) CreateBatch(ctx context.Context, transactions []*domain.Transaction) (int, error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	for _, t := range transactions {
		if _, err := r.insert(ctx, tx, t); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(transactions), nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *TransactionRepository) insert(ctx context.Context, q querier, t *domain.Transaction) (*domain.Transaction, error) {
	amount, err := decimalToPgNumeric(t.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := q.QueryRow(ctx, `
		INSERT INTO transactions (workspace_id, name, category, amount, is_income, occurred_on, tags, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+transactionColumns,
		t.WorkspaceID, t.Name, t.Category, amount, t.IsIncome, t.OccurredOn, tagsOrEmpty(t.Tags), stringPtrToPgText(t.Notes))
	return scanTransaction(row)
}

// GetByID retrieves a transaction by its ID within a workspace
func (r *TransactionRepository) GetByID(ctx context.Context, workspaceID int32, id int32) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	return scanTransaction(row)
}

// List retrieves one page of transactions matching the filters, newest first
func (r *TransactionRepository) List(ctx context.Context, workspaceID int32, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	page, pageSize := filters.Pagination()
	where, args := transactionWhere(workspaceID, filters)

	var totalItems int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE `+where, args...).Scan(&totalItems); err != nil {
		return nil, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s ORDER BY occurred_on DESC, id DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	data, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}

	return domain.NewPaginatedTransactions(data, page, pageSize, totalItems), nil
}

// transactionWhere builds the WHERE clause shared by the list and count queries
func transactionWhere(workspaceID int32, f *domain.TransactionFilters) (string, []any) {
	conds := []string{"workspace_id = $1"}
	args := []any{workspaceID}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f != nil {
		if f.Category != nil {
			add("category = $%d", *f.Category)
		}
		if f.IsIncome != nil {
			add("is_income = $%d", *f.IsIncome)
		}
		if f.StartDate != nil {
			add("occurred_on >= $%d", *f.StartDate)
		}
		if f.EndDate != nil {
			add("occurred_on <= $%d", *f.EndDate)
		}
		if f.Search != nil && *f.Search != "" {
			add("name ILIKE $%d", "%"+escapeLike(*f.Search)+"%")
		}
		if f.Tag != nil && *f.Tag != "" {
			add("$%d = ANY(tags)", *f.Tag)
		}
	}
	return strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListAll returns every transaction of a workspace, newest first
func (r *TransactionRepository) ListAll(ctx context.Context, workspaceID int32) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE workspace_id = $1 ORDER BY occurred_on DESC, id DESC`, workspaceID)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func (r *TransactionRepository) ListExpensesInRange(ctx context.Context, workspaceID int32, start, end time.Time) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE workspace_id = $1 AND is_income = FALSE AND occurred_on >= $2 AND occurred_on <= $3
		ORDER BY occurred_on`, workspaceID, start, end)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func (r *TransactionRepository) ListInRange(ctx context.Context, workspaceID int32, start, end time.Time) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE workspace_id = $1 AND occurred_on >= $2 AND occurred_on <= $3
		ORDER BY occurred_on`, workspaceID, start, end)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

// Update overwrites the editable fields of a transaction
func (r *TransactionRepository) Update(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	amount, err := decimalToPgNumeric(t.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE transactions SET
			name = $3, category = $4, amount = $5, is_income = $6, occurred_on = $7, tags = $8, notes = $9,
			updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2
		RETURNING `+transactionColumns,
		t.WorkspaceID, t.ID, t.Name, t.Category, amount, t.IsIncome, t.OccurredOn, tagsOrEmpty(t.Tags), stringPtrToPgText(t.Notes))
	return scanTransaction(row)
}

func (r *TransactionRepository) Delete(ctx context.Context, workspaceID int32, id int32) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// DeleteMany deletes the listed transactions and returns how many existed
func (r *TransactionRepository) DeleteMany(ctx context.Context, workspaceID int32, ids []int32) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE workspace_id = $1 AND id = ANY($2)`, workspaceID, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SumExpensesByCategory totals expenses per category inside [start, end], largest first
func (r *TransactionRepository) SumExpensesByCategory(ctx context.Context, workspaceID int32, start, end time.Time) ([]*domain.CategoryTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category, SUM(amount)
		FROM transactions
		WHERE workspace_id = $1 AND is_income = FALSE AND occurred_on >= $2 AND occurred_on <= $3
		GROUP BY category
		ORDER BY SUM(amount) DESC, category`, workspaceID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []*domain.CategoryTotal
	for rows.Next() {
		var (
			category string
			total    pgtype.Numeric
		)
		if err := rows.Scan(&category, &total); err != nil {
			return nil, err
		}
		totals = append(totals, &domain.CategoryTotal{Category: category, Total: pgNumericToDecimal(total)})
	}
	return totals, rows.Err()
}

func (r *TransactionRepository) GetSummary(ctx context.Context, workspaceID int32) (*domain.TransactionSummary, error) {
	var (
		income   pgtype.Numeric
		expenses pgtype.Numeric
		summary  domain.TransactionSummary
	)
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE is_income), 0),
			COALESCE(SUM(amount) FILTER (WHERE NOT is_income), 0),
			COUNT(*)
		FROM transactions
		WHERE workspace_id = $1`, workspaceID).Scan(&income, &expenses, &summary.Count)
	if err != nil {
		return nil, err
	}

	summary.TotalIncome = pgNumericToDecimal(income)
	summary.TotalExpenses = pgNumericToDecimal(expenses)
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpenses)
	return &summary, nil
}

func (r *TransactionRepository) ListCategories(ctx context.Context, workspaceID int32, isIncome *bool) ([]string, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if isIncome == nil {
		rows, err = r.pool.Query(ctx, `SELECT DISTINCT category FROM transactions WHERE workspace_id = $1 ORDER BY category`, workspaceID)
	} else {
		rows, err = r.pool.Query(ctx, `SELECT DISTINCT category FROM transactions WHERE workspace_id = $1 AND is_income = $2 ORDER BY category`, workspaceID, *isIncome)
	}
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// ReassignCategory moves every transaction in category from to category to
func (r *TransactionRepository) ReassignCategory(ctx context.Context, workspaceID int32, from, to string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE transactions SET category = $3, updated_at = NOW()
		WHERE workspace_id = $1 AND category = $2`, workspaceID, from, to)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *TransactionRepository) ListTags(ctx context.Context, workspaceID int32) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT tag
		FROM transactions, UNNEST(tags) AS tag
		WHERE workspace_id = $1
		ORDER BY tag`, workspaceID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	defer rows.Close()

	result := make([]*domain.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		t      domain.Transaction
		amount pgtype.Numeric
		notes  pgtype.Text
	)
	err := row.Scan(&t.ID, &t.WorkspaceID, &t.Name, &t.Category, &amount, &t.IsIncome, &t.OccurredOn, &t.Tags, &notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	t.Amount = pgNumericToDecimal(amount)
	t.Notes = pgTextToStringPtr(notes)
	t.OccurredOn = t.OccurredOn.UTC()
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return &t, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
