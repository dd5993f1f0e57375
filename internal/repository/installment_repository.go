package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const installmentColumns = `i.id, i.installment_plan_id, i.installment_number, i.original_amount, i.paid_amount,
	i.discount_amount, i.due_date, i.paid_date, i.status, i.notes, i.metadata, i.created_at, i.updated_at`

const installmentWithPlanColumns = installmentColumns + `, p.name AS plan_name, p.total_installments`

// openStatusList renders domain.OpenInstallmentStatuses for an IN clause
var openStatusList = func() string {
	quoted := make([]string, 0, len(domain.OpenInstallmentStatuses))
	for _, status := range domain.OpenInstallmentStatuses {
		quoted = append(quoted, "'"+string(status)+"'")
	}
	return strings.Join(quoted, ", ")
}()

type installmentRepository struct {
	db *sqlx.DB
}

func NewInstallmentRepository(db *sqlx.DB) InstallmentRepository {
	return &installmentRepository{db: db}
}

func (r *installmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments i WHERE i.id = $1`

	var installment domain.Installment
	err := r.db.GetContext(ctx, &installment, query, id)
	if err != nil {
		return nil, err
	}

	return &installment, nil
}

func (r *installmentRepository) ListByPlanID(ctx context.Context, planID uuid.UUID) ([]*domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments i
		WHERE i.installment_plan_id = $1
		ORDER BY i.installment_number
	`

	var installments []*domain.Installment
	err := r.db.SelectContext(ctx, &installments, query, planID)
	if err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *installmentRepository) ListByPlanIDs(ctx context.Context, planIDs []uuid.UUID) (map[uuid.UUID][]*domain.Installment, error) {
	grouped := make(map[uuid.UUID][]*domain.Installment, len(planIDs))
	if len(planIDs) == 0 {
		return grouped, nil
	}

	ids := make([]string, 0, len(planIDs))
	for _, id := range planIDs {
		ids = append(ids, id.String())
	}

	query := `
		SELECT ` + installmentColumns + `
		FROM installments i
		WHERE i.installment_plan_id = ANY($1::uuid[])
		ORDER BY i.installment_plan_id, i.installment_number
	`

	var installments []*domain.Installment
	err := r.db.SelectContext(ctx, &installments, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	for _, installment := range installments {
		grouped[installment.InstallmentPlanID] = append(grouped[installment.InstallmentPlanID], installment)
	}

	return grouped, nil
}

func (r *installmentRepository) CountPaidByPlanID(ctx context.Context, planID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM installments WHERE installment_plan_id = $1 AND status = 'paid'`

	var count int
	err := r.db.GetContext(ctx, &count, query, planID)
	return count, err
}

func (r *installmentRepository) Pay(ctx context.Context, payment PaymentUpdate) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	// serialize payments of the same plan so the last-open check below is exact
	var locked uuid.UUID
	err = tx.GetContext(ctx, &locked, `SELECT id FROM installment_plans WHERE id = $1 FOR UPDATE`, payment.PlanID)
	if err != nil {
		return false, err
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE installments
		SET paid_amount = $2, discount_amount = $3, paid_date = $4, status = 'paid',
			notes = COALESCE($5, notes), metadata = COALESCE($6, metadata), updated_at = $7
		WHERE id = $1 AND status IN (`+openStatusList+`)
	`,
		payment.InstallmentID,
		payment.PaidAmount,
		payment.DiscountAmount,
		payment.PaidDate,
		payment.Notes,
		payment.Metadata,
		payment.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	if err := expectAffected(result); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrInstallmentNotOpen
		}
		return false, err
	}

	var open int
	err = tx.GetContext(ctx, &open, `
		SELECT COUNT(*) FROM installments
		WHERE installment_plan_id = $1 AND status IN (`+openStatusList+`)
	`, payment.PlanID)
	if err != nil {
		return false, err
	}

	deactivated := false
	if open == 0 {
		_, err = tx.ExecContext(ctx, `UPDATE installment_plans SET is_active = FALSE, updated_at = $2 WHERE id = $1`,
			payment.PlanID, payment.UpdatedAt)
		if err != nil {
			return false, err
		}
		deactivated = true
	}

	return deactivated, tx.Commit()
}

func (r *installmentRepository) MarkOverdue(ctx context.Context, today domain.Date, now time.Time) (int64, error) {
	query := `
		UPDATE installments
		SET status = 'overdue', updated_at = $2
		WHERE status = 'pending' AND due_date < $1
	`

	result, err := r.db.ExecContext(ctx, query, today, now)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *installmentRepository) ListPendingDueBetween(ctx context.Context, from, to domain.Date) ([]*domain.InstallmentWithPlan, error) {
	query := `
		SELECT ` + installmentWithPlanColumns + `
		FROM installments i
		JOIN installment_plans p ON p.id = i.installment_plan_id
		WHERE i.status = 'pending' AND i.due_date BETWEEN $1 AND $2
		ORDER BY i.due_date, p.name
	`

	return r.selectWithPlan(ctx, query, from, to)
}

func (r *installmentRepository) ListDueBetween(ctx context.Context, from, to domain.Date) ([]*domain.InstallmentWithPlan, error) {
	query := `
		SELECT ` + installmentWithPlanColumns + `
		FROM installments i
		JOIN installment_plans p ON p.id = i.installment_plan_id
		WHERE i.due_date BETWEEN $1 AND $2
		ORDER BY i.due_date, p.name
	`

	return r.selectWithPlan(ctx, query, from, to)
}

func (r *installmentRepository) ListPaidBetween(ctx context.Context, from, to domain.Date) ([]*domain.InstallmentWithPlan, error) {
	query := `
		SELECT ` + installmentWithPlanColumns + `
		FROM installments i
		JOIN installment_plans p ON p.id = i.installment_plan_id
		WHERE i.status = 'paid' AND i.paid_date BETWEEN $1 AND $2
		ORDER BY i.paid_date DESC, p.name
	`

	return r.selectWithPlan(ctx, query, from, to)
}

func (r *installmentRepository) selectWithPlan(ctx context.Context, query string, args ...interface{}) ([]*domain.InstallmentWithPlan, error) {
	var items []*domain.InstallmentWithPlan
	err := r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		return nil, err
	}

	return items, nil
}
