package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/pkg/utils"
)

type TransactionService struct {
	TransactionRepo repository.TransactionRepository
	CategoryRepo    repository.CategoryRepository
	now             func() time.Time
}

func NewTransactionService(transactionRepo repository.TransactionRepository, categoryRepo repository.CategoryRepository) *TransactionService {
	return &TransactionService{
		TransactionRepo: transactionRepo,
		CategoryRepo:    categoryRepo,
		now:             time.Now,
	}
}

// Create books a transaction. Without an explicit competency period it is
// booked to the month of the transaction date.
func (s *TransactionService) Create(ctx context.Context, request *domain.CreateTransactionRequest) (*domain.Transaction, error) {
	period := request.CompetencyPeriod
	if period == "" {
		period = request.TransactionDate.Period()
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, request.CategoryID); err != nil {
		return nil, err
	}

	status := request.PaymentStatus
	if status == "" {
		status = domain.PaymentStatusPending
	}

	now := s.now()
	transaction := &domain.Transaction{
		ID:               uuid.New(),
		Amount:           request.Amount,
		Description:      request.Description,
		Type:             request.Type,
		TransactionDate:  request.TransactionDate,
		CompetencyPeriod: period,
		CategoryID:       request.CategoryID,
		Notes:            request.Notes,
		Metadata:         request.Metadata,
		PaymentStatus:    status,
		PaidDate:         request.PaidDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	settlePaidDate(transaction)

	if err := s.TransactionRepo.Create(ctx, transaction); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return s.Get(ctx, transaction.ID)
}

func (s *TransactionService) List(ctx context.Context, filter domain.TransactionFilter) (*domain.PaginatedTransactions, error) {
	if filter.CompetencyPeriod != "" {
		if err := validatePeriod(filter.CompetencyPeriod); err != nil {
			return nil, err
		}
	}

	transactions, total, err := s.TransactionRepo.List(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return domain.NewPaginatedTransactions(transactions, total, filter), nil
}

func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	transaction, err := s.TransactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, transactionLookupError(id, err)
	}

	return transaction, nil
}

func (s *TransactionService) Update(ctx context.Context, id uuid.UUID, request *domain.UpdateTransactionRequest) (*domain.Transaction, error) {
	transaction, err := s.TransactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, transactionLookupError(id, err)
	}

	if request.CompetencyPeriod != nil {
		if err := validatePeriod(*request.CompetencyPeriod); err != nil {
			return nil, err
		}
	}
	if err := s.checkCategory(ctx, request.CategoryID); err != nil {
		return nil, err
	}

	request.Apply(transaction)
	transaction.UpdatedAt = s.now()
	settlePaidDate(transaction)

	if err := s.TransactionRepo.Update(ctx, transaction); err != nil {
		return nil, transactionLookupError(id, err)
	}

	return s.Get(ctx, id)
}

func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.TransactionRepo.Delete(ctx, id); err != nil {
		return transactionLookupError(id, err)
	}

	return nil
}

func (s *TransactionService) checkCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}

	if _, err := s.CategoryRepo.GetByID(ctx, *categoryID); err != nil {
		return categoryLookupError(*categoryID, err)
	}

	return nil
}

// settlePaidDate keeps the paid date in line with the payment status: a paid
// transaction without a date is paid on its transaction date, a pending one has none
func settlePaidDate(transaction *domain.Transaction) {
	switch transaction.PaymentStatus {
	case domain.PaymentStatusPaid:
		if transaction.PaidDate == nil || transaction.PaidDate.IsZero() {
			paid := transaction.TransactionDate
			transaction.PaidDate = &paid
		}
	case domain.PaymentStatusPending:
		transaction.PaidDate = nil
	}
}

func validatePeriod(period string) error {
	if _, err := utils.ParseCompetencyPeriod(period); err != nil {
		return customError.WrapInvalidCompetencyPeriod(period)
	}
	return nil
}

func transactionLookupError(id uuid.UUID, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return customError.WrapTransactionNotFound(id.String())
	}
	return customError.WrapDatabaseError(err)
}
