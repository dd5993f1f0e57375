package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
)

const planColumns = `id, name, financed_amount, installment_value, total_installments, interest_rate,
	start_date, description, is_active, metadata, created_at, updated_at`

type installmentPlanRepository struct {
	db *sqlx.DB
}

func NewInstallmentPlanRepository(db *sqlx.DB) InstallmentPlanRepository {
	return &installmentPlanRepository{db: db}
}

func (r *installmentPlanRepository) Create(ctx context.Context, plan *domain.InstallmentPlan, installments []*domain.Installment) error {
	planQuery := `
		INSERT INTO installment_plans (id, name, financed_amount, installment_value, total_installments, interest_rate,
			start_date, description, is_active, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	installmentQuery := `
		INSERT INTO installments (id, installment_plan_id, installment_number, original_amount, paid_amount,
			discount_amount, due_date, paid_date, status, notes, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, planQuery,
		plan.ID,
		plan.Name,
		plan.FinancedAmount,
		plan.InstallmentValue,
		plan.TotalInstallments,
		plan.InterestRate,
		plan.StartDate,
		plan.Description,
		plan.IsActive,
		plan.Metadata,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for _, installment := range installments {
		_, err = tx.ExecContext(ctx, installmentQuery,
			installment.ID,
			installment.InstallmentPlanID,
			installment.InstallmentNumber,
			installment.OriginalAmount,
			installment.PaidAmount,
			installment.DiscountAmount,
			installment.DueDate,
			installment.PaidDate,
			installment.Status,
			installment.Notes,
			installment.Metadata,
			installment.CreatedAt,
			installment.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *installmentPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.InstallmentPlan, error) {
	query := `SELECT ` + planColumns + ` FROM installment_plans WHERE id = $1`

	var plan domain.InstallmentPlan
	err := r.db.GetContext(ctx, &plan, query, id)
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *installmentPlanRepository) List(ctx context.Context) ([]*domain.InstallmentPlan, error) {
	query := `SELECT ` + planColumns + ` FROM installment_plans ORDER BY created_at DESC, id`

	var plans []*domain.InstallmentPlan
	err := r.db.SelectContext(ctx, &plans, query)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

// ListActiveOverlapping keeps in step with domain.InstallmentPlan.Overlaps
func (r *installmentPlanRepository) ListActiveOverlapping(ctx context.Context, from, to domain.Date) ([]*domain.InstallmentPlan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM installment_plans
		WHERE is_active = TRUE
			AND start_date <= $2
			AND start_date + make_interval(months => total_installments) >= $1
		ORDER BY start_date, name
	`

	var plans []*domain.InstallmentPlan
	err := r.db.SelectContext(ctx, &plans, query, from, to)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *installmentPlanRepository) Update(ctx context.Context, plan *domain.InstallmentPlan) error {
	query := `
		UPDATE installment_plans
		SET name = $2, description = $3, is_active = $4, metadata = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		plan.ID,
		plan.Name,
		plan.Description,
		plan.IsActive,
		plan.Metadata,
		plan.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return expectAffected(result)
}

func (r *installmentPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM installment_plans WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return expectAffected(result)
}

// expectAffected turns an update that matched nothing into sql.ErrNoRows
func expectAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
