package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
)

const transactionColumns = `t.id, t.amount, t.description, t.type, t.transaction_date, t.competency_period, t.category_id,
	t.notes, t.metadata, t.payment_status, t.paid_date, t.created_at, t.updated_at,
	c.name AS category_name, c.color AS category_color, c.icon AS category_icon`

type transactionRepository struct {
	db *sqlx.DB
}

func NewTransactionRepository(db *sqlx.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, amount, description, type, transaction_date, competency_period, category_id,
			notes, metadata, payment_status, paid_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		transaction.ID,
		transaction.Amount,
		transaction.Description,
		transaction.Type,
		transaction.TransactionDate,
		transaction.CompetencyPeriod,
		transaction.CategoryID,
		transaction.Notes,
		transaction.Metadata,
		transaction.PaymentStatus,
		transaction.PaidDate,
		transaction.CreatedAt,
		transaction.UpdatedAt,
	)

	return err
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1
	`

	var transaction domain.Transaction
	err := r.db.GetContext(ctx, &transaction, query, id)
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

func (r *transactionRepository) Update(ctx context.Context, transaction *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $2, description = $3, type = $4, transaction_date = $5, competency_period = $6,
			category_id = $7, notes = $8, metadata = $9, payment_status = $10, paid_date = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		transaction.ID,
		transaction.Amount,
		transaction.Description,
		transaction.Type,
		transaction.TransactionDate,
		transaction.CompetencyPeriod,
		transaction.CategoryID,
		transaction.Notes,
		transaction.Metadata,
		transaction.PaymentStatus,
		transaction.PaidDate,
		transaction.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return expectAffected(result)
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return expectAffected(result)
}

func (r *transactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, int, error) {
	where, args := transactionConditions(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions t` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, transactionColumns, where, filter.OrderBy(), len(args)+1, len(args)+2)

	var transactions []*domain.Transaction
	err := r.db.SelectContext(ctx, &transactions, query, append(args, filter.Limit, filter.Offset())...)
	if err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// transactionConditions builds the WHERE clause of a filtered listing
func transactionConditions(filter domain.TransactionFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	add := func(condition string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.Type != nil {
		add("t.type = $%d", *filter.Type)
	}
	if filter.PaymentStatus != nil {
		add("t.payment_status = $%d", *filter.PaymentStatus)
	}
	if filter.CategoryID != nil {
		add("t.category_id = $%d", *filter.CategoryID)
	}
	if filter.StartDate != nil {
		add("t.transaction_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("t.transaction_date <= $%d", *filter.EndDate)
	}
	if filter.CompetencyPeriod != "" {
		add("t.competency_period = $%d", filter.CompetencyPeriod)
	}
	if filter.Search != "" {
		add("t.description ILIKE $%d", "%"+escapeLike(filter.Search)+"%")
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *transactionRepository) MonthlyStats(ctx context.Context, competencyPeriod string) (*domain.MonthlyStats, error) {
	query := `
		SELECT
			$1::text AS competency_period,
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0) AS total_income,
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS total_expenses,
			COUNT(*) AS transaction_count
		FROM transactions
		WHERE competency_period = $1
	`

	var stats domain.MonthlyStats
	if err := r.db.GetContext(ctx, &stats, query, competencyPeriod); err != nil {
		return nil, err
	}
	stats.Balance = stats.TotalIncome.Sub(stats.TotalExpenses)

	return &stats, nil
}

func (r *transactionRepository) TopExpenseCategories(ctx context.Context, competencyPeriod string, limit int) ([]*domain.CategoryTotal, error) {
	query := `
		SELECT
			c.id,
			COALESCE(c.name, 'Sem categoria') AS name,
			COALESCE(c.color, '#808080') AS color,
			COALESCE(c.icon, 'category') AS icon,
			SUM(t.amount) AS total,
			COUNT(t.id) AS count
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.competency_period = $1 AND t.type = 'expense'
		GROUP BY c.id, c.name, c.color, c.icon
		ORDER BY total DESC
		LIMIT $2
	`

	var totals []*domain.CategoryTotal
	err := r.db.SelectContext(ctx, &totals, query, competencyPeriod, limit)
	if err != nil {
		return nil, err
	}

	return totals, nil
}
