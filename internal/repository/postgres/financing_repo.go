package postgres

import (
	"context"
	"time"

	"github.com/gfmachado/casaflow/casaflow-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FinancingRepository implements domain.FinancingRepository using PostgreSQL.
// The plan is one row per workspace; paid marks live in their own table so
// they survive plan replacements.
type FinancingRepository struct {
	pool *pgxpool.Pool
}

// NewFinancingRepository creates a new FinancingRepository
func NewFinancingRepository(pool *pgxpool.Pool) *FinancingRepository {
	return &FinancingRepository{pool: pool}
}

// GetPlan retrieves a workspace's financing plan
func (r *FinancingRepository) GetPlan(workspaceID int32) (*domain.FinancingPlan, error) {
	query := `
		SELECT workspace_id, price, down_payment_pct, installment_count, annual_rate_pct,
		       extra_monthly_principal, name_a, income_a, expenses_a, name_b, income_b,
		       expenses_b, updated_at
		FROM financing_plans
		WHERE workspace_id = $1
	`

	var plan domain.FinancingPlan
	err := r.pool.QueryRow(context.Background(), query, workspaceID).Scan(
		&plan.WorkspaceID, &plan.Config.Price, &plan.Config.DownPaymentPct,
		&plan.Config.InstallmentCount, &plan.Config.AnnualRatePct,
		&plan.Config.ExtraMonthlyPrincipal,
		&plan.NameA, &plan.IncomeA, &plan.ExpensesA,
		&plan.NameB, &plan.IncomeB, &plan.ExpensesB,
		&plan.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrFinancingPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// SavePlan replaces the workspace's plan as a whole
func (r *FinancingRepository) SavePlan(plan *domain.FinancingPlan) (*domain.FinancingPlan, error) {
	query := `
		INSERT INTO financing_plans (workspace_id, price, down_payment_pct, installment_count,
			annual_rate_pct, extra_monthly_principal, name_a, income_a, expenses_a,
			name_b, income_b, expenses_b, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (workspace_id) DO UPDATE SET
			price = EXCLUDED.price,
			down_payment_pct = EXCLUDED.down_payment_pct,
			installment_count = EXCLUDED.installment_count,
			annual_rate_pct = EXCLUDED.annual_rate_pct,
			extra_monthly_principal = EXCLUDED.extra_monthly_principal,
			name_a = EXCLUDED.name_a,
			income_a = EXCLUDED.income_a,
			expenses_a = EXCLUDED.expenses_a,
			name_b = EXCLUDED.name_b,
			income_b = EXCLUDED.income_b,
			expenses_b = EXCLUDED.expenses_b,
			updated_at = NOW()
		RETURNING updated_at
	`

	saved := *plan
	err := r.pool.QueryRow(context.Background(), query,
		plan.WorkspaceID, plan.Config.Price, plan.Config.DownPaymentPct,
		plan.Config.InstallmentCount, plan.Config.AnnualRatePct,
		plan.Config.ExtraMonthlyPrincipal,
		plan.NameA, plan.IncomeA, plan.ExpensesA,
		plan.NameB, plan.IncomeB, plan.ExpensesB,
	).Scan(&saved.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// GetMarks retrieves all paid installment marks of a workspace
func (r *FinancingRepository) GetMarks(workspaceID int32) ([]domain.InstallmentMark, error) {
	query := `
		SELECT number, paid_at
		FROM installment_marks
		WHERE workspace_id = $1
		ORDER BY number
	`

	rows, err := r.pool.Query(context.Background(), query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []domain.InstallmentMark
	for rows.Next() {
		var mark domain.InstallmentMark
		if err := rows.Scan(&mark.Number, &mark.PaidAt); err != nil {
			return nil, err
		}
		marks = append(marks, mark)
	}
	return marks, rows.Err()
}

// SetMark records or clears a paid installment mark. Marking an already
// marked installment keeps the original paid date.
func (r *FinancingRepository) SetMark(workspaceID int32, number int, paid bool, paidAt time.Time) error {
	if !paid {
		_, err := r.pool.Exec(context.Background(),
			`DELETE FROM installment_marks WHERE workspace_id = $1 AND number = $2`,
			workspaceID, number)
		return err
	}

	query := `
		INSERT INTO installment_marks (workspace_id, number, paid_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (workspace_id, number) DO NOTHING
	`
	_, err := r.pool.Exec(context.Background(), query, workspaceID, number, paidAt)
	return err
}
