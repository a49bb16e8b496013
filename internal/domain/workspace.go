package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Workspace owns every transaction, budget, goal and rule. Each user has exactly one.
type Workspace struct {
	ID        int32     `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type WorkspaceRepository interface {
	GetByID(ctx context.Context, id int32) (*Workspace, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Workspace, error)
	GetByUserAuth0ID(ctx context.Context, auth0ID string) (*Workspace, error)
	Create(ctx context.Context, workspace *Workspace) (*Workspace, error)
	ListIDs(ctx context.Context) ([]int32, error)
}
