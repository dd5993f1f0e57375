package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/mocks"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTransactionService() (*TransactionService, *mocks.MockTransactionRepository, *mocks.MockCategoryRepository) {
	transactionRepo := &mocks.MockTransactionRepository{}
	categoryRepo := &mocks.MockCategoryRepository{}
	svc := NewTransactionService(transactionRepo, categoryRepo)
	svc.now = clock
	return svc, transactionRepo, categoryRepo
}

func TestTransactionService_Create(t *testing.T) {
	categoryID := uuid.New()

	tests := []struct {
		name          string
		request       *domain.CreateTransactionRequest
		setupMocks    func(*mocks.MockTransactionRepository, *mocks.MockCategoryRepository)
		expectedError error
		validate      func(*testing.T, *domain.Transaction)
	}{
		{
			name: "Success - competency period defaults to the transaction month",
			request: &domain.CreateTransactionRequest{
				Amount:          decimal.RequireFromString("89.90"),
				Description:     "Mercado",
				Type:            domain.TransactionTypeExpense,
				TransactionDate: domain.MustParseDate("2024-02-28"),
			},
			setupMocks: func(transactionRepo *mocks.MockTransactionRepository, categoryRepo *mocks.MockCategoryRepository) {
				transactionRepo.On("Create", mock.Anything, mock.MatchedBy(func(transaction *domain.Transaction) bool {
					return transaction.CompetencyPeriod == "2024-02" &&
						transaction.PaymentStatus == domain.PaymentStatusPending &&
						transaction.PaidDate == nil
				})).Return(nil)
				transactionRepo.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Transaction{CompetencyPeriod: "2024-02"}, nil)
			},
			validate: func(t *testing.T, transaction *domain.Transaction) {
				assert.Equal(t, "2024-02", transaction.CompetencyPeriod)
			},
		},
		{
			name: "Success - paid without date is paid on the transaction date",
			request: &domain.CreateTransactionRequest{
				Amount:           decimal.NewFromInt(1200),
				Description:      "Aluguel",
				Type:             domain.TransactionTypeExpense,
				TransactionDate:  domain.MustParseDate("2024-02-28"),
				CompetencyPeriod: "2024-03",
				CategoryID:       &categoryID,
				PaymentStatus:    domain.PaymentStatusPaid,
			},
			setupMocks: func(transactionRepo *mocks.MockTransactionRepository, categoryRepo *mocks.MockCategoryRepository) {
				categoryRepo.On("GetByID", mock.Anything, categoryID).Return(&domain.Category{ID: categoryID}, nil)
				transactionRepo.On("Create", mock.Anything, mock.MatchedBy(func(transaction *domain.Transaction) bool {
					return transaction.CompetencyPeriod == "2024-03" &&
						transaction.PaidDate != nil && transaction.PaidDate.String() == "2024-02-28"
				})).Return(nil)
				transactionRepo.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Transaction{CompetencyPeriod: "2024-03"}, nil)
			},
			validate: func(t *testing.T, transaction *domain.Transaction) {
				assert.Equal(t, "2024-03", transaction.CompetencyPeriod)
			},
		},
		{
			name: "Failure - malformed competency period",
			request: &domain.CreateTransactionRequest{
				Amount:           decimal.NewFromInt(10),
				Description:      "Café",
				Type:             domain.TransactionTypeExpense,
				TransactionDate:  domain.MustParseDate("2024-02-28"),
				CompetencyPeriod: "2024-13",
			},
			setupMocks:    func(*mocks.MockTransactionRepository, *mocks.MockCategoryRepository) {},
			expectedError: customError.ErrInvalidCompetencyPeriod,
		},
		{
			name: "Failure - unknown category",
			request: &domain.CreateTransactionRequest{
				Amount:          decimal.NewFromInt(10),
				Description:     "Café",
				Type:            domain.TransactionTypeExpense,
				TransactionDate: domain.MustParseDate("2024-02-28"),
				CategoryID:      &categoryID,
			},
			setupMocks: func(transactionRepo *mocks.MockTransactionRepository, categoryRepo *mocks.MockCategoryRepository) {
				categoryRepo.On("GetByID", mock.Anything, categoryID).Return(nil, sql.ErrNoRows)
			},
			expectedError: customError.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			svc, transactionRepo, categoryRepo := newTransactionService()
			tt.setupMocks(transactionRepo, categoryRepo)

			// Act
			transaction, err := svc.Create(context.Background(), tt.request)

			// Assert
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, transaction)
			} else {
				require.NoError(t, err)
				tt.validate(t, transaction)
			}
			transactionRepo.AssertExpectations(t)
			categoryRepo.AssertExpectations(t)
		})
	}
}

func TestTransactionService_List(t *testing.T) {
	t.Run("Success - paginates", func(t *testing.T) {
		// Arrange
		svc, transactionRepo, _ := newTransactionService()
		filter := domain.NewTransactionFilter()
		transactionRepo.On("List", mock.Anything, filter).Return([]*domain.Transaction{{ID: uuid.New()}}, 21, nil)

		// Act
		page, err := svc.List(context.Background(), filter)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 21, page.Total)
		assert.Equal(t, 3, page.TotalPages)
		assert.Len(t, page.Data, 1)
	})

	t.Run("Failure - malformed competency period", func(t *testing.T) {
		svc, transactionRepo, _ := newTransactionService()
		filter := domain.NewTransactionFilter()
		filter.CompetencyPeriod = "03/2024"

		_, err := svc.List(context.Background(), filter)

		assert.ErrorIs(t, err, customError.ErrInvalidCompetencyPeriod)
		transactionRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestTransactionService_Update(t *testing.T) {
	id := uuid.New()
	pending := domain.PaymentStatusPending

	// Arrange
	svc, transactionRepo, _ := newTransactionService()
	paidDate := domain.MustParseDate("2024-02-28")
	existing := &domain.Transaction{
		ID:               id,
		Amount:           decimal.NewFromInt(1200),
		TransactionDate:  domain.MustParseDate("2024-02-28"),
		CompetencyPeriod: "2024-02",
		PaymentStatus:    domain.PaymentStatusPaid,
		PaidDate:         &paidDate,
	}
	transactionRepo.On("GetByID", mock.Anything, id).Return(existing, nil)
	transactionRepo.On("Update", mock.Anything, mock.MatchedBy(func(transaction *domain.Transaction) bool {
		return transaction.PaymentStatus == domain.PaymentStatusPending &&
			transaction.PaidDate == nil &&
			transaction.UpdatedAt.Equal(fixedNow)
	})).Return(nil)

	// Act
	_, err := svc.Update(context.Background(), id, &domain.UpdateTransactionRequest{PaymentStatus: &pending})

	// Assert
	require.NoError(t, err)
	transactionRepo.AssertExpectations(t)
}

func TestTransactionService_Delete(t *testing.T) {
	id := uuid.New()
	svc, transactionRepo, _ := newTransactionService()
	transactionRepo.On("Delete", mock.Anything, id).Return(sql.ErrNoRows)

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, customError.ErrTransactionNotFound)
}
