package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
)

const workspaceColumns = `w.id, w.user_id, w.name, w.created_at, w.updated_at`

// WorkspaceRepository implements domain.WorkspaceRepository using PostgreSQL
type WorkspaceRepository struct {
	pool *pgxpool.Pool
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(pool *pgxpool.Pool) *WorkspaceRepository {
	return &WorkspaceRepository{pool: pool}
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id int32) (*domain.Workspace, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+workspaceColumns+` FROM workspaces w WHERE w.id = $1`, id)
	return scanWorkspace(row)
}

func (r *WorkspaceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Workspace, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+workspaceColumns+` FROM workspaces w WHERE w.user_id = $1`, userID)
	return scanWorkspace(row)
}

func (r *WorkspaceRepository) GetByUserAuth0ID(ctx context.Context, auth0ID string) (*domain.Workspace, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+workspaceColumns+`
		FROM workspaces w
		JOIN users u ON u.id = w.user_id
		WHERE u.auth0_id = $1`, auth0ID)
	return scanWorkspace(row)
}

func (r *WorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) (*domain.Workspace, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO workspaces AS w (user_id, name) VALUES ($1, $2)
		RETURNING `+workspaceColumns, workspace.UserID, workspace.Name)
	ws, err := scanWorkspace(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return ws, nil
}

// ListIDs returns every workspace id in ascending order
func (r *WorkspaceRepository) ListIDs(ctx context.Context) ([]int32, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM workspaces ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int32])
}

func scanWorkspace(row rowScanner) (*domain.Workspace, error) {
	var w domain.Workspace
	if err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.CreatedAt, &w.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, err
	}
	return &w, nil
}
