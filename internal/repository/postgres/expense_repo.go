package postgres

import (
	"context"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseItemColumns = `id, person_id, year, month, bucket, label, amount, category, created_at, updated_at`

func scanExpenseItem(row pgx.Row) (*domain.ExpenseItem, error) {
	var item domain.ExpenseItem
	err := row.Scan(
		&item.ID, &item.PersonID, &item.Year, &item.Month, &item.Bucket,
		&item.Label, &item.Amount, &item.Category, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem creates a new expense item
func (r *ExpenseRepository) CreateItem(item *domain.ExpenseItem) (*domain.ExpenseItem, error) {
	query := `
		INSERT INTO expense_items (person_id, year, month, bucket, label, amount, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + expenseItemColumns

	return scanExpenseItem(r.pool.QueryRow(context.Background(), query,
		item.PersonID, item.Year, item.Month, item.Bucket, item.Label, item.Amount, item.Category,
	))
}

// GetItemByID retrieves an item scoped to a person
func (r *ExpenseRepository) GetItemByID(personID, id int32) (*domain.ExpenseItem, error) {
	query := `
		SELECT ` + expenseItemColumns + `
		FROM expense_items
		WHERE id = $1 AND person_id = $2
	`

	item, err := scanExpenseItem(r.pool.QueryRow(context.Background(), query, id, personID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// GetMonth retrieves one month's items grouped by bucket. A month with no
// rows is an empty record, never an error.
func (r *ExpenseRepository) GetMonth(personID int32, year, month int) (*domain.MonthRecord, error) {
	query := `
		SELECT ` + expenseItemColumns + `
		FROM expense_items
		WHERE person_id = $1 AND year = $2 AND month = $3
		ORDER BY id
	`

	rows, err := r.pool.Query(context.Background(), query, personID, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	record := &domain.MonthRecord{}
	for rows.Next() {
		item, err := scanExpenseItem(rows)
		if err != nil {
			return nil, err
		}
		appendToBucket(record, item)
	}
	return record, rows.Err()
}

// GetYear retrieves all months of a year that have items, keyed by month
func (r *ExpenseRepository) GetYear(personID int32, year int) (map[int]*domain.MonthRecord, error) {
	query := `
		SELECT ` + expenseItemColumns + `
		FROM expense_items
		WHERE person_id = $1 AND year = $2
		ORDER BY month, id
	`

	rows, err := r.pool.Query(context.Background(), query, personID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	months := make(map[int]*domain.MonthRecord)
	for rows.Next() {
		item, err := scanExpenseItem(rows)
		if err != nil {
			return nil, err
		}
		record, ok := months[item.Month]
		if !ok {
			record = &domain.MonthRecord{}
			months[item.Month] = record
		}
		appendToBucket(record, item)
	}
	return months, rows.Err()
}

func appendToBucket(record *domain.MonthRecord, item *domain.ExpenseItem) {
	switch item.Bucket {
	case domain.BucketIncome:
		record.Income = append(record.Income, *item)
	case domain.BucketEssential:
		record.Essential = append(record.Essential, *item)
	case domain.BucketNonEssential:
		record.NonEssential = append(record.NonEssential, *item)
	}
}

// UpdateItem edits an item's label, amount and category
func (r *ExpenseRepository) UpdateItem(item *domain.ExpenseItem) (*domain.ExpenseItem, error) {
	query := `
		UPDATE expense_items
		SET label = $3, amount = $4, category = $5, updated_at = NOW()
		WHERE id = $1 AND person_id = $2
		RETURNING ` + expenseItemColumns

	updated, err := scanExpenseItem(r.pool.QueryRow(context.Background(), query,
		item.ID, item.PersonID, item.Label, item.Amount, item.Category,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseItemNotFound
		}
		return nil, err
	}
	return updated, nil
}

// MoveItem reassigns an item to another bucket in a single UPDATE, so the
// item never disappears mid-move.
func (r *ExpenseRepository) MoveItem(personID, id int32, target domain.Bucket) (*domain.ExpenseItem, error) {
	query := `
		UPDATE expense_items
		SET bucket = $3, updated_at = NOW()
		WHERE id = $1 AND person_id = $2
		RETURNING ` + expenseItemColumns

	moved, err := scanExpenseItem(r.pool.QueryRow(context.Background(), query, id, personID, target))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseItemNotFound
		}
		return nil, err
	}
	return moved, nil
}

// DeleteItem removes an item
func (r *ExpenseRepository) DeleteItem(personID, id int32) error {
	query := `DELETE FROM expense_items WHERE id = $1 AND person_id = $2`

	tag, err := r.pool.Exec(context.Background(), query, id, personID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseItemNotFound
	}
	return nil
}
