package postgres

import (
	"context"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PersonRepository implements domain.PersonRepository using PostgreSQL
type PersonRepository struct {
	pool *pgxpool.Pool
}

// NewPersonRepository creates a new PersonRepository
func NewPersonRepository(pool *pgxpool.Pool) *PersonRepository {
	return &PersonRepository{pool: pool}
}

// Create creates a new person
func (r *PersonRepository) Create(person *domain.Person) (*domain.Person, error) {
	query := `
		INSERT INTO persons (workspace_id, name)
		VALUES ($1, $2)
		RETURNING id, workspace_id, name, created_at
	`

	var created domain.Person
	err := r.pool.QueryRow(context.Background(), query, person.WorkspaceID, person.Name).
		Scan(&created.ID, &created.WorkspaceID, &created.Name, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID retrieves a person scoped to a workspace
func (r *PersonRepository) GetByID(workspaceID, id int32) (*domain.Person, error) {
	query := `
		SELECT id, workspace_id, name, created_at
		FROM persons
		WHERE id = $1 AND workspace_id = $2
	`

	var person domain.Person
	err := r.pool.QueryRow(context.Background(), query, id, workspaceID).
		Scan(&person.ID, &person.WorkspaceID, &person.Name, &person.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrPersonNotFound
		}
		return nil, err
	}
	return &person, nil
}

// GetAllByWorkspace retrieves all persons of a workspace in creation order
func (r *PersonRepository) GetAllByWorkspace(workspaceID int32) ([]*domain.Person, error) {
	query := `
		SELECT id, workspace_id, name, created_at
		FROM persons
		WHERE workspace_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(context.Background(), query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var persons []*domain.Person
	for rows.Next() {
		var person domain.Person
		if err := rows.Scan(&person.ID, &person.WorkspaceID, &person.Name, &person.CreatedAt); err != nil {
			return nil, err
		}
		persons = append(persons, &person)
	}
	return persons, rows.Err()
}

// Rename updates a person's name
func (r *PersonRepository) Rename(workspaceID, id int32, name string) (*domain.Person, error) {
	query := `
		UPDATE persons
		SET name = $3
		WHERE id = $1 AND workspace_id = $2
		RETURNING id, workspace_id, name, created_at
	`

	var person domain.Person
	err := r.pool.QueryRow(context.Background(), query, id, workspaceID, name).
		Scan(&person.ID, &person.WorkspaceID, &person.Name, &person.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrPersonNotFound
		}
		return nil, err
	}
	return &person, nil
}

// Delete removes a person; their items cascade at the schema level
func (r *PersonRepository) Delete(workspaceID, id int32) error {
	query := `DELETE FROM persons WHERE id = $1 AND workspace_id = $2`

	tag, err := r.pool.Exec(context.Background(), query, id, workspaceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPersonNotFound
	}
	return nil
}
