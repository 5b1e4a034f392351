package postgres

import (
	"context"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// CoupleRepository implements domain.CoupleRepository using PostgreSQL.
// The month row carries incomes and savings; shared accounts reference the
// month row and are loaded with it.
type CoupleRepository struct {
	pool *pgxpool.Pool
}

// NewCoupleRepository creates a new CoupleRepository
func NewCoupleRepository(pool *pgxpool.Pool) *CoupleRepository {
	return &CoupleRepository{pool: pool}
}

// GetMonth retrieves a couple month record with its shared accounts
func (r *CoupleRepository) GetMonth(workspaceID int32, year, month int) (*domain.CoupleMonth, error) {
	query := `
		SELECT id, workspace_id, year, month, label_a, label_b, income_a, income_b,
		       savings_a, savings_b, updated_at
		FROM couple_months
		WHERE workspace_id = $1 AND year = $2 AND month = $3
	`

	var rowID int32
	var record domain.CoupleMonth
	err := r.pool.QueryRow(context.Background(), query, workspaceID, year, month).Scan(
		&rowID, &record.WorkspaceID, &record.Year, &record.Month,
		&record.LabelA, &record.LabelB, &record.IncomeA, &record.IncomeB,
		&record.SavingsA, &record.SavingsB, &record.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCoupleMonthNotFound
		}
		return nil, err
	}

	accounts, err := r.getAccounts(rowID)
	if err != nil {
		return nil, err
	}
	record.Accounts = accounts
	return &record, nil
}

func (r *CoupleRepository) getAccounts(monthRowID int32) ([]domain.SharedAccount, error) {
	query := `
		SELECT id, label, amount
		FROM shared_accounts
		WHERE couple_month_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(context.Background(), query, monthRowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []domain.SharedAccount{}
	for rows.Next() {
		var account domain.SharedAccount
		if err := rows.Scan(&account.ID, &account.Label, &account.Amount); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// UpsertMonth creates or replaces the month's incomes, savings and labels.
// Shared accounts are untouched.
func (r *CoupleRepository) UpsertMonth(month *domain.CoupleMonth) (*domain.CoupleMonth, error) {
	query := `
		INSERT INTO couple_months (workspace_id, year, month, label_a, label_b,
			income_a, income_b, savings_a, savings_b, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (workspace_id, year, month) DO UPDATE SET
			label_a = EXCLUDED.label_a,
			label_b = EXCLUDED.label_b,
			income_a = EXCLUDED.income_a,
			income_b = EXCLUDED.income_b,
			savings_a = EXCLUDED.savings_a,
			savings_b = EXCLUDED.savings_b,
			updated_at = NOW()
	`

	_, err := r.pool.Exec(context.Background(), query,
		month.WorkspaceID, month.Year, month.Month,
		month.LabelA, month.LabelB,
		month.IncomeA, month.IncomeB, month.SavingsA, month.SavingsB,
	)
	if err != nil {
		return nil, err
	}
	return r.GetMonth(month.WorkspaceID, month.Year, month.Month)
}

// monthRowID resolves the month row, creating an empty one when the first
// shared account arrives before any incomes were saved.
func (r *CoupleRepository) monthRowID(workspaceID int32, year, month int) (int32, error) {
	query := `
		INSERT INTO couple_months (workspace_id, year, month, label_a, label_b, updated_at)
		VALUES ($1, $2, $3, '', '', NOW())
		ON CONFLICT (workspace_id, year, month) DO UPDATE SET workspace_id = EXCLUDED.workspace_id
		RETURNING id
	`

	var id int32
	err := r.pool.QueryRow(context.Background(), query, workspaceID, year, month).Scan(&id)
	return id, err
}

// AddAccount adds one shared bill to the month
func (r *CoupleRepository) AddAccount(workspaceID int32, year, month int, label string, amount decimal.Decimal) (*domain.SharedAccount, error) {
	rowID, err := r.monthRowID(workspaceID, year, month)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO shared_accounts (couple_month_id, label, amount)
		VALUES ($1, $2, $3)
		RETURNING id, label, amount
	`

	var account domain.SharedAccount
	err = r.pool.QueryRow(context.Background(), query, rowID, label, amount).
		Scan(&account.ID, &account.Label, &account.Amount)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateAccount edits one shared bill, scoped to the workspace
func (r *CoupleRepository) UpdateAccount(workspaceID, id int32, label string, amount decimal.Decimal) (*domain.SharedAccount, error) {
	query := `
		UPDATE shared_accounts sa
		SET label = $3, amount = $4
		FROM couple_months cm
		WHERE sa.id = $1 AND sa.couple_month_id = cm.id AND cm.workspace_id = $2
		RETURNING sa.id, sa.label, sa.amount
	`

	var account domain.SharedAccount
	err := r.pool.QueryRow(context.Background(), query, id, workspaceID, label, amount).
		Scan(&account.ID, &account.Label, &account.Amount)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSharedAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// DeleteAccount removes one shared bill, scoped to the workspace
func (r *CoupleRepository) DeleteAccount(workspaceID, id int32) error {
	query := `
		DELETE FROM shared_accounts sa
		USING couple_months cm
		WHERE sa.id = $1 AND sa.couple_month_id = cm.id AND cm.workspace_id = $2
	`

	tag, err := r.pool.Exec(context.Background(), query, id, workspaceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSharedAccountNotFound
	}
	return nil
}
