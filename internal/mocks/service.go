package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockInstallmentService struct {
	mock.Mock
}

func (m *MockInstallmentService) Preview(request domain.PreviewRequest) *domain.PreviewResponse {
	args := m.Called(request)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.PreviewResponse)
}

func (m *MockInstallmentService) CreatePlan(ctx context.Context, request *domain.CreateInstallmentPlanRequest) (*domain.InstallmentPlanResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentPlanResponse), args.Error(1)
}

func (m *MockInstallmentService) ListPlans(ctx context.Context) ([]*domain.InstallmentPlanSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InstallmentPlanSummary), args.Error(1)
}

func (m *MockInstallmentService) GetPlan(ctx context.Context, planID uuid.UUID) (*domain.InstallmentPlanResponse, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentPlanResponse), args.Error(1)
}

func (m *MockInstallmentService) UpdatePlan(ctx context.Context, planID uuid.UUID, request *domain.UpdateInstallmentPlanRequest) (*domain.InstallmentPlanResponse, error) {
	args := m.Called(ctx, planID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentPlanResponse), args.Error(1)
}

func (m *MockInstallmentService) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	args := m.Called(ctx, planID)
	return args.Error(0)
}

func (m *MockInstallmentService) PayInstallment(ctx context.Context, installmentID uuid.UUID, request *domain.PayInstallmentRequest) (*domain.InstallmentResponse, error) {
	args := m.Called(ctx, installmentID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentResponse), args.Error(1)
}

func (m *MockInstallmentService) Upcoming(ctx context.Context, days int) ([]*domain.UpcomingPayment, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UpcomingPayment), args.Error(1)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) Create(ctx context.Context, request *domain.CreateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) List(ctx context.Context, categoryType *domain.CategoryType) ([]*domain.Category, error) {
	args := m.Called(ctx, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id uuid.UUID, request *domain.UpdateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryService) Reorder(ctx context.Context, request *domain.ReorderCategoriesRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockCategoryService) SeedDefaults(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Create(ctx context.Context, request *domain.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) List(ctx context.Context, filter domain.TransactionFilter) (*domain.PaginatedTransactions, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaginatedTransactions), args.Error(1)
}

func (m *MockTransactionService) Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) Update(ctx context.Context, id uuid.UUID, request *domain.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Monthly(ctx context.Context, year int, month time.Month) (*domain.MonthlyDashboard, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyDashboard), args.Error(1)
}
