package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInstallmentNotOpen is returned when a payment targets an installment that
// is no longer pending or overdue
var ErrInstallmentNotOpen = errors.New("installment is not open for payment")

// InstallmentPlanRepository defines the interface for installment plan data operations
type InstallmentPlanRepository interface {
	// Create stores a plan together with its generated installments in one transaction
	Create(ctx context.Context, plan *domain.InstallmentPlan, installments []*domain.Installment) error

	// GetByID retrieves a plan by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InstallmentPlan, error)

	// List retrieves every plan, newest first
	List(ctx context.Context) ([]*domain.InstallmentPlan, error)

	// ListActiveOverlapping retrieves active plans whose term touches [from, to]
	ListActiveOverlapping(ctx context.Context, from, to domain.Date) ([]*domain.InstallmentPlan, error)

	// Update saves name, description, activity and metadata of a plan
	Update(ctx context.Context, plan *domain.InstallmentPlan) error

	// Delete removes a plan and, by cascade, its installments
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentUpdate is the state written when an installment is paid
type PaymentUpdate struct {
	InstallmentID  uuid.UUID
	PlanID         uuid.UUID
	PaidAmount     decimal.Decimal
	DiscountAmount decimal.Decimal
	PaidDate       domain.Date
	Notes          *string
	Metadata       domain.Metadata
	UpdatedAt      time.Time
}

// InstallmentRepository defines the interface for installment data operations
type InstallmentRepository interface {
	// GetByID retrieves an installment by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Installment, error)

	// ListByPlanID retrieves the installments of a plan ordered by number
	ListByPlanID(ctx context.Context, planID uuid.UUID) ([]*domain.Installment, error)

	// ListByPlanIDs retrieves the installments of several plans grouped by plan
	ListByPlanIDs(ctx context.Context, planIDs []uuid.UUID) (map[uuid.UUID][]*domain.Installment, error)

	// CountPaidByPlanID counts the paid installments of a plan
	CountPaidByPlanID(ctx context.Context, planID uuid.UUID) (int, error)

	// Pay marks an open installment as paid and deactivates the plan when it
	// was the last open one. It reports whether the plan was deactivated.
	Pay(ctx context.Context, payment PaymentUpdate) (bool, error)

	// MarkOverdue moves pending installments due before today to overdue
	MarkOverdue(ctx context.Context, today domain.Date, now time.Time) (int64, error)

	// ListPendingDueBetween retrieves pending installments due in [from, to]
	ListPendingDueBetween(ctx context.Context, from, to domain.Date) ([]*domain.InstallmentWithPlan, error)

	// ListDueBetween retrieves installments of any status due in [from, to]
	ListDueBetween(ctx context.Context, from, to domain.Date) ([]*domain.InstallmentWithPlan, error)

	// ListPaidBetween retrieves paid installments with a paid date in [from, to]
	ListPaidBetween(ctx context.Context, from, to domain.Date) ([]*domain.InstallmentWithPlan, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error

	// CreateMany stores several categories in one transaction
	CreateMany(ctx context.Context, categories []*domain.Category) error

	// NextSortOrder returns one past the highest sort order within a type
	NextSortOrder(ctx context.Context, categoryType domain.CategoryType) (int, error)

	// List retrieves active categories with their transaction counts
	List(ctx context.Context, categoryType *domain.CategoryType) ([]*domain.Category, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	Update(ctx context.Context, category *domain.Category) error

	// CountTransactions counts the transactions referencing a category
	CountTransactions(ctx context.Context, id uuid.UUID) (int, error)

	// Deactivate hides a category while keeping it for existing transactions
	Deactivate(ctx context.Context, id uuid.UUID, now time.Time) error

	Delete(ctx context.Context, id uuid.UUID) error

	// Reorder applies new sort orders in one transaction. An unknown ID
	// rolls back every change and returns sql.ErrNoRows.
	Reorder(ctx context.Context, orders []domain.CategoryOrder, now time.Time) error
}

// TransactionRepository defines the interface for transaction data operations
type TransactionRepository interface {
	Create(ctx context.Context, transaction *domain.Transaction) error

	// GetByID retrieves a transaction joined with its category
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)

	Update(ctx context.Context, transaction *domain.Transaction) error

	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves one page of transactions matching the filter and the total match count
	List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, int, error)

	// MonthlyStats totals income and expenses booked to a competency period
	MonthlyStats(ctx context.Context, competencyPeriod string) (*domain.MonthlyStats, error)

	// TopExpenseCategories ranks expense categories of a competency period by total
	TopExpenseCategories(ctx context.Context, competencyPeriod string, limit int) ([]*domain.CategoryTotal, error)
}
