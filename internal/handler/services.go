package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
)

// InstallmentService is the subset of installment operations exposed over HTTP
type InstallmentService interface {
	Preview(request domain.PreviewRequest) *domain.PreviewResponse
	CreatePlan(ctx context.Context, request *domain.CreateInstallmentPlanRequest) (*domain.InstallmentPlanResponse, error)
	ListPlans(ctx context.Context) ([]*domain.InstallmentPlanSummary, error)
	GetPlan(ctx context.Context, planID uuid.UUID) (*domain.InstallmentPlanResponse, error)
	UpdatePlan(ctx context.Context, planID uuid.UUID, request *domain.UpdateInstallmentPlanRequest) (*domain.InstallmentPlanResponse, error)
	DeletePlan(ctx context.Context, planID uuid.UUID) error
	PayInstallment(ctx context.Context, installmentID uuid.UUID, request *domain.PayInstallmentRequest) (*domain.InstallmentResponse, error)
	Upcoming(ctx context.Context, days int) ([]*domain.UpcomingPayment, error)
}

type CategoryService interface {
	Create(ctx context.Context, request *domain.CreateCategoryRequest) (*domain.Category, error)
	List(ctx context.Context, categoryType *domain.CategoryType) ([]*domain.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, request *domain.UpdateCategoryRequest) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, request *domain.ReorderCategoriesRequest) error
	SeedDefaults(ctx context.Context) ([]*domain.Category, error)
}

type TransactionService interface {
	Create(ctx context.Context, request *domain.CreateTransactionRequest) (*domain.Transaction, error)
	List(ctx context.Context, filter domain.TransactionFilter) (*domain.PaginatedTransactions, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	Update(ctx context.Context, id uuid.UUID, request *domain.UpdateTransactionRequest) (*domain.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DashboardService interface {
	Monthly(ctx context.Context, year int, month time.Month) (*domain.MonthlyDashboard, error)
}
