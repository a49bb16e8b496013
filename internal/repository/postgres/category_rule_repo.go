package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
)

const categoryRuleColumns = `id, workspace_id, keyword, category, created_at, updated_at`

// CategoryRuleRepository implements domain.CategoryRuleRepository using PostgreSQL
type CategoryRuleRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRuleRepository creates a new CategoryRuleRepository
func NewCategoryRuleRepository(pool *pgxpool.Pool) *CategoryRuleRepository {
	return &CategoryRuleRepository{pool: pool}
}

func (r *CategoryRuleRepository) Create(ctx context.Context, rule *domain.CategoryRule) (*domain.CategoryRule, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO category_rules (workspace_id, keyword, category)
		VALUES ($1, $2, $3)
		RETURNING `+categoryRuleColumns, rule.WorkspaceID, rule.Keyword, rule.Category)
	created, err := scanCategoryRule(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrCategoryRuleExists
		}
		return nil, err
	}
	return created, nil
}

func (r *CategoryRuleRepository) GetByID(ctx context.Context, workspaceID int32, id int32) (*domain.CategoryRule, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+categoryRuleColumns+` FROM category_rules WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	return scanCategoryRule(row)
}

// ListByWorkspace returns rules ordered by keyword
func (r *CategoryRuleRepository) ListByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.CategoryRule, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+categoryRuleColumns+` FROM category_rules WHERE workspace_id = $1 ORDER BY keyword`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*domain.CategoryRule, 0)
	for rows.Next() {
		rule, err := scanCategoryRule(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rule)
	}
	return result, rows.Err()
}

func (r *CategoryRuleRepository) Update(ctx context.Context, rule *domain.CategoryRule) (*domain.CategoryRule, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE category_rules SET keyword = $3, category = $4, updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2
		RETURNING `+categoryRuleColumns, rule.WorkspaceID, rule.ID, rule.Keyword, rule.Category)
	updated, err := scanCategoryRule(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrCategoryRuleExists
		}
		return nil, err
	}
	return updated, nil
}

func (r *CategoryRuleRepository) Delete(ctx context.Context, workspaceID int32, id int32) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM category_rules WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryRuleNotFound
	}
	return nil
}

func scanCategoryRule(row rowScanner) (*domain.CategoryRule, error) {
	var rule domain.CategoryRule
	if err := row.Scan(&rule.ID, &rule.WorkspaceID, &rule.Keyword, &rule.Category, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryRuleNotFound
		}
		return nil, err
	}
	return &rule, nil
}
