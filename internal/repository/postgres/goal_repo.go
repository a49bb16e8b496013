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

const goalColumns = `id, workspace_id, name, target_amount, current_amount, target_date, description, is_completed, created_at, updated_at`

// GoalRepository implements domain.GoalRepository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

func (r *GoalRepository) Create(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	target, current, err := goalAmounts(g)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO goals (workspace_id, name, target_amount, current_amount, target_date, description, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+goalColumns,
		g.WorkspaceID, g.Name, target, current, timePtrToPgDate(g), stringPtrToPgText(g.Description), g.IsCompleted)
	return scanGoal(row)
}

func (r *GoalRepository) GetByID(ctx context.Context, workspaceID int32, id int32) (*domain.Goal, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	return scanGoal(row)
}

// ListByWorkspace returns goals newest first
func (r *GoalRepository) ListByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.Goal, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+goalColumns+` FROM goals WHERE workspace_id = $1 ORDER BY created_at DESC, id DESC`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*domain.Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

func (r *GoalRepository) Update(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	target, current, err := goalAmounts(g)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE goals SET
			name = $3, target_amount = $4, current_amount = $5, target_date = $6, description = $7,
			is_completed = $8, updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2
		RETURNING `+goalColumns,
		g.WorkspaceID, g.ID, g.Name, target, current, timePtrToPgDate(g), stringPtrToPgText(g.Description), g.IsCompleted)
	return scanGoal(row)
}

func (r *GoalRepository) Delete(ctx context.Context, workspaceID int32, id int32) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func goalAmounts(g *domain.Goal) (pgtype.Numeric, pgtype.Numeric, error) {
	target, err := decimalToPgNumeric(g.TargetAmount)
	if err != nil {
		return pgtype.Numeric{}, pgtype.Numeric{}, fmt.Errorf("invalid target amount: %w", err)
	}
	current, err := decimalToPgNumeric(g.CurrentAmount)
	if err != nil {
		return pgtype.Numeric{}, pgtype.Numeric{}, fmt.Errorf("invalid current amount: %w", err)
	}
	return target, current, nil
}

func timePtrToPgDate(g *domain.Goal) pgtype.Date {
	if g.TargetDate == nil {
		return pgtype.Date{Valid: false}
	}
	return pgtype.Date{Time: *g.TargetDate, Valid: true}
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var (
		g           domain.Goal
		target      pgtype.Numeric
		current     pgtype.Numeric
		targetDate  pgtype.Date
		description pgtype.Text
	)
	err := row.Scan(&g.ID, &g.WorkspaceID, &g.Name, &target, &current, &targetDate, &description, &g.IsCompleted, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	g.TargetAmount = pgNumericToDecimal(target)
	g.CurrentAmount = pgNumericToDecimal(current)
	g.Description = pgTextToStringPtr(description)
	if targetDate.Valid {
		d := targetDate.Time
		g.TargetDate = &d
	}
	return &g, nil
}
