package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Transaction is a single income or expense entry booked to a competency period
type Transaction struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	Description      string          `json:"description" db:"description"`
	Type             TransactionType `json:"type" db:"type"`
	TransactionDate  Date            `json:"transaction_date" db:"transaction_date"`
	CompetencyPeriod string          `json:"competency_period" db:"competency_period"`
	CategoryID       *uuid.UUID      `json:"category_id,omitempty" db:"category_id"`
	Notes            *string         `json:"notes,omitempty" db:"notes"`
	Metadata         Metadata        `json:"metadata,omitempty" db:"metadata"`
	PaymentStatus    PaymentStatus   `json:"payment_status" db:"payment_status"`
	PaidDate         *Date           `json:"paid_date" db:"paid_date"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`

	// Populated from the joined category on reads
	CategoryName  *string `json:"category_name,omitempty" db:"category_name"`
	CategoryColor *string `json:"category_color,omitempty" db:"category_color"`
	CategoryIcon  *string `json:"category_icon,omitempty" db:"category_icon"`
}

// DTOs for requests and responses

type CreateTransactionRequest struct {
	Amount           decimal.Decimal `json:"amount" validate:"required,gt=0,lt=10000000000,money"`
	Description      string          `json:"description" validate:"required,max=255"`
	Type             TransactionType `json:"type" validate:"required,oneof=income expense"`
	TransactionDate  Date            `json:"transaction_date" validate:"required"`
	CompetencyPeriod string          `json:"competency_period" validate:"omitempty,len=7"`
	CategoryID       *uuid.UUID      `json:"category_id"`
	Notes            *string         `json:"notes" validate:"omitempty,max=1000"`
	Metadata         Metadata        `json:"metadata" validate:"omitempty,scalar_map"`
	PaymentStatus    PaymentStatus   `json:"payment_status" validate:"omitempty,oneof=pending paid"`
	PaidDate         *Date           `json:"paid_date"`
}

type UpdateTransactionRequest struct {
	Amount           *decimal.Decimal `json:"amount" validate:"omitempty,gt=0,lt=10000000000,money"`
	Description      *string          `json:"description" validate:"omitempty,min=1,max=255"`
	Type             *TransactionType `json:"type" validate:"omitempty,oneof=income expense"`
	TransactionDate  *Date            `json:"transaction_date"`
	CompetencyPeriod *string          `json:"competency_period" validate:"omitempty,len=7"`
	CategoryID       *uuid.UUID       `json:"category_id"`
	Notes            *string          `json:"notes" validate:"omitempty,max=1000"`
	Metadata         Metadata         `json:"metadata" validate:"omitempty,scalar_map"`
	PaymentStatus    *PaymentStatus   `json:"payment_status" validate:"omitempty,oneof=pending paid"`
	PaidDate         *Date            `json:"paid_date"`
}

// Apply copies the fields present in the request onto the transaction
func (r *UpdateTransactionRequest) Apply(transaction *Transaction) {
	if r.Amount != nil {
		transaction.Amount = *r.Amount
	}
	if r.Description != nil {
		transaction.Description = *r.Description
	}
	if r.Type != nil {
		transaction.Type = *r.Type
	}
	if r.TransactionDate != nil {
		transaction.TransactionDate = *r.TransactionDate
	}
	if r.CompetencyPeriod != nil {
		transaction.CompetencyPeriod = *r.CompetencyPeriod
	}
	if r.CategoryID != nil {
		transaction.CategoryID = r.CategoryID
	}
	if r.Notes != nil {
		transaction.Notes = r.Notes
	}
	if r.Metadata != nil {
		transaction.Metadata = r.Metadata
	}
	if r.PaymentStatus != nil {
		transaction.PaymentStatus = *r.PaymentStatus
	}
	if r.PaidDate != nil {
		transaction.PaidDate = r.PaidDate
	}
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxPage         = 100000
)

// transactionSortColumns whitelists the sortable fields
var transactionSortColumns = map[string]string{
	"transaction_date":  "t.transaction_date",
	"amount":            "t.amount",
	"description":       "t.description",
	"competency_period": "t.competency_period",
	"created_at":        "t.created_at",
}

type TransactionFilter struct {
	Type             *TransactionType `validate:"omitempty,oneof=income expense"`
	PaymentStatus    *PaymentStatus   `validate:"omitempty,oneof=pending paid"`
	CategoryID       *uuid.UUID
	StartDate        *Date
	EndDate          *Date
	CompetencyPeriod string `validate:"omitempty,len=7"`
	Search           string `validate:"omitempty,max=100"`
	Page             int    `validate:"gte=1,lte=100000"`
	Limit            int    `validate:"gte=1,lte=100"`
	SortBy           string
	SortOrder        string
}

// NewTransactionFilter returns a filter with the default paging and ordering
func NewTransactionFilter() TransactionFilter {
	return TransactionFilter{
		Page:      1,
		Limit:     DefaultPageSize,
		SortBy:    "transaction_date",
		SortOrder: "DESC",
	}
}

// OrderBy resolves the sort field and direction to a safe ORDER BY clause.
// Unknown fields fall back to the transaction date.
func (f TransactionFilter) OrderBy() string {
	column, ok := transactionSortColumns[f.SortBy]
	if !ok {
		column = transactionSortColumns["transaction_date"]
	}

	direction := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		direction = "ASC"
	}

	return column + " " + direction + ", t.id " + direction
}

func (f TransactionFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	page := min(f.Page, MaxPage)
	limit := min(max(f.Limit, 0), MaxPageSize)
	return (page - 1) * limit
}

type PaginatedTransactions struct {
	Data       []*Transaction `json:"data"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// NewPaginatedTransactions computes the page count for a result window
func NewPaginatedTransactions(data []*Transaction, total int, filter TransactionFilter) *PaginatedTransactions {
	if data == nil {
		data = []*Transaction{}
	}

	totalPages := 0
	if filter.Limit > 0 {
		totalPages = (total + filter.Limit - 1) / filter.Limit
	}

	return &PaginatedTransactions{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}
}
