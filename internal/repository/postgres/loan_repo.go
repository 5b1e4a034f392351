package postgres

import (
	"context"
	"time"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoanRepository implements domain.LoanRepository using PostgreSQL.
// Payments are created with the loan and only ever flipped, never added or
// removed individually.
type LoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new LoanRepository
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

// Create creates a loan and all its payments in one transaction
func (r *LoanRepository) Create(loan *domain.Loan) (*domain.Loan, error) {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO loans (workspace_id, name, total_value, installment_count)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	created := *loan
	err = tx.QueryRow(ctx, query, loan.WorkspaceID, loan.Name, loan.TotalValue, loan.InstallmentCount).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}

	for _, payment := range loan.Payments {
		_, err = tx.Exec(ctx,
			`INSERT INTO loan_payments (loan_id, number, amount) VALUES ($1, $2, $3)`,
			created.ID, payment.Number, payment.Amount)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID retrieves a loan with its payments, scoped to a workspace
func (r *LoanRepository) GetByID(workspaceID, id int32) (*domain.Loan, error) {
	query := `
		SELECT id, workspace_id, name, total_value, installment_count, created_at
		FROM loans
		WHERE id = $1 AND workspace_id = $2
	`

	var loan domain.Loan
	err := r.pool.QueryRow(context.Background(), query, id, workspaceID).Scan(
		&loan.ID, &loan.WorkspaceID, &loan.Name, &loan.TotalValue,
		&loan.InstallmentCount, &loan.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	payments, err := r.getPayments(loan.ID)
	if err != nil {
		return nil, err
	}
	loan.Payments = payments
	return &loan, nil
}

func (r *LoanRepository) getPayments(loanID int32) ([]domain.LoanPayment, error) {
	query := `
		SELECT number, amount, paid, paid_at
		FROM loan_payments
		WHERE loan_id = $1
		ORDER BY number
	`

	rows, err := r.pool.Query(context.Background(), query, loanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.LoanPayment
	for rows.Next() {
		var payment domain.LoanPayment
		if err := rows.Scan(&payment.Number, &payment.Amount, &payment.Paid, &payment.PaidAt); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// GetAllByWorkspace retrieves all loans of a workspace with their payments
func (r *LoanRepository) GetAllByWorkspace(workspaceID int32) ([]*domain.Loan, error) {
	query := `
		SELECT id, workspace_id, name, total_value, installment_count, created_at
		FROM loans
		WHERE workspace_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(context.Background(), query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []*domain.Loan
	for rows.Next() {
		var loan domain.Loan
		err := rows.Scan(&loan.ID, &loan.WorkspaceID, &loan.Name, &loan.TotalValue,
			&loan.InstallmentCount, &loan.CreatedAt)
		if err != nil {
			return nil, err
		}
		loans = append(loans, &loan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, loan := range loans {
		payments, err := r.getPayments(loan.ID)
		if err != nil {
			return nil, err
		}
		loan.Payments = payments
	}
	return loans, nil
}

// SetPaymentPaid flips one payment's flag and date, then returns the loan
func (r *LoanRepository) SetPaymentPaid(workspaceID, loanID int32, number int, paid bool, paidAt *time.Time) (*domain.Loan, error) {
	query := `
		UPDATE loan_payments lp
		SET paid = $4, paid_at = $5
		FROM loans l
		WHERE lp.loan_id = $1 AND lp.number = $3
		  AND l.id = lp.loan_id AND l.workspace_id = $2
	`

	tag, err := r.pool.Exec(context.Background(), query, loanID, workspaceID, number, paid, paidAt)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrLoanPaymentNotFound
	}
	return r.GetByID(workspaceID, loanID)
}

// Delete removes a loan; its payments cascade at the schema level
func (r *LoanRepository) Delete(workspaceID, id int32) error {
	query := `DELETE FROM loans WHERE id = $1 AND workspace_id = $2`

	tag, err := r.pool.Exec(context.Background(), query, id, workspaceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}
