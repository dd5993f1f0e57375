package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/mocks"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDashboardService() (*DashboardService, *mocks.MockTransactionRepository, *mocks.MockInstallmentPlanRepository, *mocks.MockInstallmentRepository) {
	transactionRepo := &mocks.MockTransactionRepository{}
	planRepo := &mocks.MockInstallmentPlanRepository{}
	installmentRepo := &mocks.MockInstallmentRepository{}
	svc := NewDashboardService(transactionRepo, planRepo, installmentRepo)
	svc.now = clock
	return svc, transactionRepo, planRepo, installmentRepo
}

func TestDashboardService_Monthly(t *testing.T) {
	from := domain.MustParseDate("2024-03-01")
	to := domain.MustParseDate("2024-03-31")

	plan := carPlan()
	installments := plan.GenerateInstallments(fixedNow)
	withPlan := func(installment *domain.Installment) *domain.InstallmentWithPlan {
		return &domain.InstallmentWithPlan{Installment: *installment, PlanName: plan.Name, TotalInstallments: plan.TotalInstallments}
	}
	march := withPlan(installments[2])

	t.Run("Success - gathers every section", func(t *testing.T) {
		// Arrange
		svc, transactionRepo, planRepo, installmentRepo := newDashboardService()

		transactionRepo.On("MonthlyStats", mock.Anything, "2024-03").Return(&domain.MonthlyStats{
			CompetencyPeriod: "2024-03",
			TotalIncome:      decimal.NewFromInt(8500),
			TotalExpenses:    decimal.NewFromInt(1800),
			Balance:          decimal.NewFromInt(6700),
		}, nil)
		transactionRepo.On("TopExpenseCategories", mock.Anything, "2024-03", 5).Return(nil, nil)
		planRepo.On("ListActiveOverlapping", mock.Anything, from, to).Return([]*domain.InstallmentPlan{plan}, nil)
		installmentRepo.On("ListByPlanIDs", mock.Anything, []uuid.UUID{plan.ID}).
			Return(map[uuid.UUID][]*domain.Installment{plan.ID: installments}, nil)
		installmentRepo.On("ListDueBetween", mock.Anything, from, to).Return([]*domain.InstallmentWithPlan{march}, nil)
		installmentRepo.On("ListPaidBetween", mock.Anything, from, to).Return([]*domain.InstallmentWithPlan{}, nil)
		installmentRepo.On("ListPendingDueBetween", mock.Anything, domain.NewDate(fixedNow), to).
			Return([]*domain.InstallmentWithPlan{march}, nil)

		// Act
		dashboard, err := svc.Monthly(context.Background(), 2024, time.March)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3, dashboard.Month)
		assert.NotNil(t, dashboard.TopCategories)
		assert.Equal(t, 1, dashboard.Installments.TotalPlans)
		require.Len(t, dashboard.Installments.UpcomingPayments, 1)
		assert.Equal(t, 26, dashboard.Installments.UpcomingPayments[0].DaysUntilDue)
		assert.Empty(t, dashboard.Installments.PaidInMonth)

		require.Len(t, dashboard.ExpenseBreakdown, 3)
		assert.Equal(t, domain.BreakdownTypeTransaction, dashboard.ExpenseBreakdown[0].Type)
		assert.Equal(t, "Carro", dashboard.ExpenseBreakdown[1].Name)
		assert.True(t, dashboard.ExpenseBreakdown[2].Amount.Equal(decimal.NewFromInt(3720)))

		transactionRepo.AssertExpectations(t)
		planRepo.AssertExpectations(t)
		installmentRepo.AssertExpectations(t)
	})

	t.Run("Success - past month has no upcoming payments", func(t *testing.T) {
		// Arrange
		svc, transactionRepo, planRepo, installmentRepo := newDashboardService()
		janFrom, janTo := domain.MustParseDate("2024-01-01"), domain.MustParseDate("2024-01-31")

		transactionRepo.On("MonthlyStats", mock.Anything, "2024-01").Return(&domain.MonthlyStats{CompetencyPeriod: "2024-01"}, nil)
		transactionRepo.On("TopExpenseCategories", mock.Anything, "2024-01", 5).Return([]*domain.CategoryTotal{}, nil)
		planRepo.On("ListActiveOverlapping", mock.Anything, janFrom, janTo).Return([]*domain.InstallmentPlan{}, nil)
		installmentRepo.On("ListByPlanIDs", mock.Anything, []uuid.UUID{}).Return(map[uuid.UUID][]*domain.Installment{}, nil)
		installmentRepo.On("ListDueBetween", mock.Anything, janFrom, janTo).Return(nil, nil)
		installmentRepo.On("ListPaidBetween", mock.Anything, janFrom, janTo).Return(nil, nil)

		// Act
		dashboard, err := svc.Monthly(context.Background(), 2024, time.January)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, dashboard.Installments.UpcomingPayments)
		assert.Empty(t, dashboard.ExpenseBreakdown)
		installmentRepo.AssertNotCalled(t, "ListPendingDueBetween", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - one read fails", func(t *testing.T) {
		// Arrange
		svc, transactionRepo, planRepo, installmentRepo := newDashboardService()
		transactionRepo.On("MonthlyStats", mock.Anything, "2024-03").Return(nil, errors.New("connection refused"))
		transactionRepo.On("TopExpenseCategories", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
		planRepo.On("ListActiveOverlapping", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
		installmentRepo.On("ListByPlanIDs", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
		installmentRepo.On("ListDueBetween", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
		installmentRepo.On("ListPaidBetween", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
		installmentRepo.On("ListPendingDueBetween", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()

		// Act
		dashboard, err := svc.Monthly(context.Background(), 2024, time.March)

		// Assert
		assert.Nil(t, dashboard)
		assert.Equal(t, 500, customError.HTTPStatus(err))
	})

	t.Run("Failure - month out of range", func(t *testing.T) {
		svc, _, _, _ := newDashboardService()

		_, err := svc.Monthly(context.Background(), 2024, time.Month(13))

		assert.ErrorIs(t, err, customError.ErrInvalidRequest)
	})
}
