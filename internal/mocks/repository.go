package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/cache"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockInstallmentPlanRepository struct {
	mock.Mock
}

func (m *MockInstallmentPlanRepository) Create(ctx context.Context, plan *domain.InstallmentPlan, installments []*domain.Installment) error {
	args := m.Called(ctx, plan, installments)
	return args.Error(0)
}

func (m *MockInstallmentPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.InstallmentPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentPlan), args.Error(1)
}

func (m *MockInstallmentPlanRepository) List(ctx context.Context) ([]*domain.InstallmentPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InstallmentPlan), args.Error(1)
}

func (m *MockInstallmentPlanRepository) ListActiveOverlapping(ctx context.Context, from, to domain.Date) ([]*domain.InstallmentPlan, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InstallmentPlan), args.Error(1)
}

func (m *MockInstallmentPlanRepository) Update(ctx context.Context, plan *domain.InstallmentPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockInstallmentPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Installment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) ListByPlanID(ctx context.Context, planID uuid.UUID) ([]*domain.Installment, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) ListByPlanIDs(ctx context.Context, planIDs []uuid.UUID) (map[uuid.UUID][]*domain.Installment, error) {
	args := m.Called(ctx, planIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]*domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) CountPaidByPlanID(ctx context.Context, planID uuid.UUID) (int, error) {
	args := m.Called(ctx, planID)
	return args.Int(0), args.Error(1)
}

func (m *MockInstallmentRepository) Pay(ctx context.Context, payment repository.PaymentUpdate) (bool, error) {
	args := m.Called(ctx, payment)
	return args.Bool(0), args.Error(1)
}

func (m *MockInstallmentRepository) MarkOverdue(ctx context.Context, today domain.Date, now time.Time) (int64, error) {
	args := m.Called(ctx, today, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInstallmentRepository) ListPendingDueBetween(ctx context.Context, from, to domain.Date) ([]*domain.InstallmentWithPlan, error) {
	return m.withPlan(m.Called(ctx, from, to))
}

func (m *MockInstallmentRepository) ListDueBetween(ctx context.Context, from, to domain.Date) ([]*domain.InstallmentWithPlan, error) {
	return m.withPlan(m.Called(ctx, from, to))
}

func (m *MockInstallmentRepository) ListPaidBetween(ctx context.Context, from, to domain.Date) ([]*domain.InstallmentWithPlan, error) {
	return m.withPlan(m.Called(ctx, from, to))
}

func (m *MockInstallmentRepository) withPlan(args mock.Arguments) ([]*domain.InstallmentWithPlan, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InstallmentWithPlan), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) CreateMany(ctx context.Context, categories []*domain.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockCategoryRepository) NextSortOrder(ctx context.Context, categoryType domain.CategoryType) (int, error) {
	args := m.Called(ctx, categoryType)
	return args.Int(0), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, categoryType *domain.CategoryType) ([]*domain.Category, error) {
	args := m.Called(ctx, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) CountTransactions(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockCategoryRepository) Deactivate(ctx context.Context, id uuid.UUID, now time.Time) error {
	args := m.Called(ctx, id, now)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) Reorder(ctx context.Context, orders []domain.CategoryOrder, now time.Time) error {
	args := m.Called(ctx, orders, now)
	return args.Error(0)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Transaction), args.Int(1), args.Error(2)
}

func (m *MockTransactionRepository) MonthlyStats(ctx context.Context, competencyPeriod string) (*domain.MonthlyStats, error) {
	args := m.Called(ctx, competencyPeriod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyStats), args.Error(1)
}

func (m *MockTransactionRepository) TopExpenseCategories(ctx context.Context, competencyPeriod string, limit int) ([]*domain.CategoryTotal, error) {
	args := m.Called(ctx, competencyPeriod, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CategoryTotal), args.Error(1)
}

type MockPlanCache struct {
	mock.Mock
}

func (m *MockPlanCache) Get(ctx context.Context, planID uuid.UUID) (*cache.PlanSnapshot, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cache.PlanSnapshot), args.Error(1)
}

func (m *MockPlanCache) Generation(ctx context.Context, planID uuid.UUID) (int64, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlanCache) Set(ctx context.Context, snapshot *cache.PlanSnapshot, generation int64) error {
	args := m.Called(ctx, snapshot, generation)
	return args.Error(0)
}

func (m *MockPlanCache) Delete(ctx context.Context, planID uuid.UUID) error {
	args := m.Called(ctx, planID)
	return args.Error(0)
}
