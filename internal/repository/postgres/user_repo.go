package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
)

const userColumns = `id, auth0_id, email, name, picture_url, created_at, updated_at`

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by their UUID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return r.scan(row)
}

// GetByAuth0ID retrieves a user by their Auth0 subject
func (r *UserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE auth0_id = $1`, auth0ID)
	return r.scan(row)
}

// CreateOrGetByAuth0ID upserts the user on login, refreshing the profile fields
func (r *UserRepository) CreateOrGetByAuth0ID(ctx context.Context, auth0ID, email string, name, pictureURL *string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (auth0_id, email, name, picture_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (auth0_id) DO UPDATE SET
			email = EXCLUDED.email,
			name = COALESCE(users.name, EXCLUDED.name),
			picture_url = EXCLUDED.picture_url,
			updated_at = NOW()
		RETURNING `+userColumns,
		auth0ID, email, stringPtrToPgText(name), stringPtrToPgText(pictureURL))
	return r.scan(row)
}

func (r *UserRepository) scan(row rowScanner) (*domain.User, error) {
	var (
		u          domain.User
		name       pgtype.Text
		pictureURL pgtype.Text
	)
	if err := row.Scan(&u.ID, &u.Auth0ID, &u.Email, &name, &pictureURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u.Name = pgTextToStringPtr(name)
	u.PictureURL = pgTextToStringPtr(pictureURL)
	return &u, nil
}
