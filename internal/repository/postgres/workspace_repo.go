package postgres

import (
	"context"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkspaceRepository implements domain.WorkspaceRepository using PostgreSQL
type WorkspaceRepository struct {
	pool *pgxpool.Pool
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(pool *pgxpool.Pool) *WorkspaceRepository {
	return &WorkspaceRepository{pool: pool}
}

// GetByID retrieves a workspace by ID
func (r *WorkspaceRepository) GetByID(id int32) (*domain.Workspace, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM workspaces
		WHERE id = $1
	`

	return r.scanWorkspace(r.pool.QueryRow(context.Background(), query, id))
}

// GetByUserID retrieves the workspace owned by a user
func (r *WorkspaceRepository) GetByUserID(userID uuid.UUID) (*domain.Workspace, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM workspaces
		WHERE user_id = $1
	`

	return r.scanWorkspace(r.pool.QueryRow(context.Background(), query, userID))
}

// GetByUserAuth0ID retrieves the workspace owned by the user with the given
// Auth0 ID
func (r *WorkspaceRepository) GetByUserAuth0ID(auth0ID string) (*domain.Workspace, error) {
	query := `
		SELECT w.id, w.user_id, w.name, w.created_at
		FROM workspaces w
		JOIN users u ON u.id = w.user_id
		WHERE u.auth0_id = $1
	`

	return r.scanWorkspace(r.pool.QueryRow(context.Background(), query, auth0ID))
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(workspace *domain.Workspace) (*domain.Workspace, error) {
	query := `
		INSERT INTO workspaces (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name, created_at
	`

	var created domain.Workspace
	err := r.pool.QueryRow(context.Background(), query, workspace.UserID, workspace.Name).
		Scan(&created.ID, &created.UserID, &created.Name, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *WorkspaceRepository) scanWorkspace(row pgx.Row) (*domain.Workspace, error) {
	var workspace domain.Workspace
	err := row.Scan(&workspace.ID, &workspace.UserID, &workspace.Name, &workspace.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, err
	}
	return &workspace, nil
}
