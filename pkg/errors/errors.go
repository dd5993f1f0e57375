package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrPlanNotFound            = errors.New("installment plan not found")
	ErrInstallmentNotFound     = errors.New("installment not found")
	ErrInstallmentAlreadyPaid  = errors.New("installment is already paid")
	ErrInstallmentCancelled    = errors.New("installment is cancelled")
	ErrPlanHasPaidInstallments = errors.New("installment plan has paid installments")
	ErrCategoryNotFound        = errors.New("category not found")
	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrInvalidCompetencyPeriod = errors.New("competency period must be in YYYY-MM format")
	ErrInvalidRequest          = errors.New("invalid request")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodePlanNotFound            = "PLAN_NOT_FOUND"
	ErrCodeInstallmentNotFound     = "INSTALLMENT_NOT_FOUND"
	ErrCodeInstallmentAlreadyPaid  = "INSTALLMENT_ALREADY_PAID"
	ErrCodeInstallmentCancelled    = "INSTALLMENT_CANCELLED"
	ErrCodePlanHasPaidInstallments = "PLAN_HAS_PAID_INSTALLMENTS"
	ErrCodeCategoryNotFound        = "CATEGORY_NOT_FOUND"
	ErrCodeTransactionNotFound     = "TRANSACTION_NOT_FOUND"
	ErrCodeInvalidCompetencyPeriod = "INVALID_COMPETENCY_PERIOD"
	ErrCodeValidation              = "VALIDATION_ERROR"
	ErrCodeDatabaseError           = "DATABASE_ERROR"
	ErrCodeCacheError              = "CACHE_ERROR"
)

var statusByCode = map[string]int{
	ErrCodePlanNotFound:            http.StatusNotFound,
	ErrCodeInstallmentNotFound:     http.StatusNotFound,
	ErrCodeCategoryNotFound:        http.StatusNotFound,
	ErrCodeTransactionNotFound:     http.StatusNotFound,
	ErrCodeInstallmentAlreadyPaid:  http.StatusBadRequest,
	ErrCodeInstallmentCancelled:    http.StatusBadRequest,
	ErrCodePlanHasPaidInstallments: http.StatusBadRequest,
	ErrCodeInvalidCompetencyPeriod: http.StatusBadRequest,
	ErrCodeValidation:              http.StatusBadRequest,
	ErrCodeDatabaseError:           http.StatusInternalServerError,
	ErrCodeCacheError:              http.StatusInternalServerError,
}

// HTTPStatus maps an error to the status code it should be answered with.
// Errors that are not business errors are internal errors.
func HTTPStatus(err error) int {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		if status, ok := statusByCode[businessErr.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// Wrap common errors with business context
func WrapPlanNotFound(planID string) *BusinessError {
	return NewBusinessError(
		ErrCodePlanNotFound,
		fmt.Sprintf("Installment plan with ID %s not found", planID),
		ErrPlanNotFound,
	)
}

func WrapInstallmentNotFound(installmentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeInstallmentNotFound,
		fmt.Sprintf("Installment with ID %s not found", installmentID),
		ErrInstallmentNotFound,
	)
}

func WrapInstallmentAlreadyPaid(installmentNumber int) *BusinessError {
	return NewBusinessError(
		ErrCodeInstallmentAlreadyPaid,
		fmt.Sprintf("Installment %d is already paid", installmentNumber),
		ErrInstallmentAlreadyPaid,
	)
}

func WrapInstallmentCancelled(installmentNumber int) *BusinessError {
	return NewBusinessError(
		ErrCodeInstallmentCancelled,
		fmt.Sprintf("Installment %d is cancelled and cannot be paid", installmentNumber),
		ErrInstallmentCancelled,
	)
}

func WrapPlanHasPaidInstallments(planID string) *BusinessError {
	return NewBusinessError(
		ErrCodePlanHasPaidInstallments,
		fmt.Sprintf("Installment plan %s cannot be deleted because it has paid installments", planID),
		ErrPlanHasPaidInstallments,
	)
}

func WrapCategoryNotFound(categoryID string) *BusinessError {
	return NewBusinessError(
		ErrCodeCategoryNotFound,
		fmt.Sprintf("Category with ID %s not found", categoryID),
		ErrCategoryNotFound,
	)
}

func WrapTransactionNotFound(transactionID string) *BusinessError {
	return NewBusinessError(
		ErrCodeTransactionNotFound,
		fmt.Sprintf("Transaction with ID %s not found", transactionID),
		ErrTransactionNotFound,
	)
}

func WrapInvalidCompetencyPeriod(period string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidCompetencyPeriod,
		fmt.Sprintf("Competency period %q must be in YYYY-MM format", period),
		ErrInvalidCompetencyPeriod,
	)
}

func WrapValidationError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		"request validation failed",
		errors.Join(ErrInvalidRequest, err),
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
