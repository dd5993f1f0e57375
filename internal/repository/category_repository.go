package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
)

const categoryColumns = `c.id, c.name, c.description, c.type, c.color, c.icon, c.is_active, c.sort_order, c.created_at, c.updated_at`

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const insertCategoryQuery = `
	INSERT INTO categories (id, name, description, type, color, icon, is_active, sort_order, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

func categoryArgs(category *domain.Category) []interface{} {
	return []interface{}{
		category.ID,
		category.Name,
		category.Description,
		category.Type,
		category.Color,
		category.Icon,
		category.IsActive,
		category.SortOrder,
		category.CreatedAt,
		category.UpdatedAt,
	}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	_, err := r.db.ExecContext(ctx, insertCategoryQuery, categoryArgs(category)...)
	return err
}

func (r *categoryRepository) CreateMany(ctx context.Context, categories []*domain.Category) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, category := range categories {
		if _, err := tx.ExecContext(ctx, insertCategoryQuery, categoryArgs(category)...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *categoryRepository) NextSortOrder(ctx context.Context, categoryType domain.CategoryType) (int, error) {
	query := `SELECT COALESCE(MAX(sort_order), 0) + 1 FROM categories WHERE type = $1`

	var next int
	err := r.db.GetContext(ctx, &next, query, categoryType)
	return next, err
}

func (r *categoryRepository) List(ctx context.Context, categoryType *domain.CategoryType) ([]*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `, COUNT(t.id) AS transaction_count
		FROM categories c
		LEFT JOIN transactions t ON t.category_id = c.id
		WHERE c.is_active = TRUE AND ($1::text IS NULL OR c.type = $1)
		GROUP BY c.id
		ORDER BY c.sort_order, c.name
	`

	var filter *string
	if categoryType != nil {
		value := string(*categoryType)
		filter = &value
	}

	var categories []*domain.Category
	err := r.db.SelectContext(ctx, &categories, query, filter)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `,
			(SELECT COUNT(*) FROM transactions t WHERE t.category_id = c.id) AS transaction_count
		FROM categories c
		WHERE c.id = $1
	`

	var category domain.Category
	err := r.db.GetContext(ctx, &category, query, id)
	if err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, color = $4, icon = $5, is_active = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.Color,
		category.Icon,
		category.IsActive,
		category.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return expectAffected(result)
}

func (r *categoryRepository) CountTransactions(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM transactions WHERE category_id = $1`, id)
	return count, err
}

func (r *categoryRepository) Deactivate(ctx context.Context, id uuid.UUID, now time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE categories SET is_active = FALSE, updated_at = $2 WHERE id = $1`, id, now)
	if err != nil {
		return err
	}

	return expectAffected(result)
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return expectAffected(result)
}

func (r *categoryRepository) Reorder(ctx context.Context, orders []domain.CategoryOrder, now time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, order := range orders {
		result, err := tx.ExecContext(ctx, `UPDATE categories SET sort_order = $2, updated_at = $3 WHERE id = $1`,
			order.ID, order.SortOrder, now)
		if err != nil {
			return err
		}
		if err := expectAffected(result); err != nil {
			return err
		}
	}

	return tx.Commit()
}
