package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionFilter_OrderBy(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		expected  string
	}{
		{"default", "transaction_date", "DESC", "t.transaction_date DESC, t.id DESC"},
		{"amount ascending", "amount", "asc", "t.amount ASC, t.id ASC"},
		{"unknown column falls back", "1; DROP TABLE transactions", "ASC", "t.transaction_date ASC, t.id ASC"},
		{"unknown direction is descending", "description", "sideways", "t.description DESC, t.id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := NewTransactionFilter()
			filter.SortBy = tt.sortBy
			filter.SortOrder = tt.sortOrder

			assert.Equal(t, tt.expected, filter.OrderBy())
		})
	}
}

func TestTransactionFilter_Offset(t *testing.T) {
	filter := NewTransactionFilter()
	assert.Equal(t, 0, filter.Offset())

	filter.Page = 3
	filter.Limit = 20
	assert.Equal(t, 40, filter.Offset())
}

func TestTransactionFilter_Offset_Clamped(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		expected int
	}{
		{name: "page beyond the maximum", page: math.MaxInt, limit: 100, expected: (MaxPage - 1) * 100},
		{name: "limit beyond the maximum", page: 2, limit: math.MaxInt, expected: MaxPageSize},
		{name: "negative page", page: math.MinInt, limit: 10, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := NewTransactionFilter()
			filter.Page = tt.page
			filter.Limit = tt.limit

			offset := filter.Offset()

			assert.Equal(t, tt.expected, offset)
			assert.GreaterOrEqual(t, offset, 0)
		})
	}
}

func TestNewPaginatedTransactions(t *testing.T) {
	filter := NewTransactionFilter()

	result := NewPaginatedTransactions(nil, 21, filter)

	assert.NotNil(t, result.Data)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
}

func TestUpdateTransactionRequest_Apply(t *testing.T) {
	transaction := &Transaction{Description: "Mercado", Amount: dec("10"), PaymentStatus: PaymentStatusPending}
	paid := PaymentStatusPaid
	amount := dec("12.50")

	req := &UpdateTransactionRequest{Amount: &amount, PaymentStatus: &paid, PaidDate: datePtr("2024-05-02")}
	req.Apply(transaction)

	assert.True(t, transaction.Amount.Equal(dec("12.5")))
	assert.Equal(t, "Mercado", transaction.Description)
	assert.Equal(t, PaymentStatusPaid, transaction.PaymentStatus)
	assert.Equal(t, "2024-05-02", transaction.PaidDate.String())
}

func TestDefaultCategories(t *testing.T) {
	categories := DefaultCategories()

	assert.Len(t, categories, 10)

	income := 0
	for i, category := range categories {
		assert.Equal(t, i+1, category.SortOrder)
		assert.True(t, category.IsActive)
		if category.Type == CategoryTypeIncome {
			income++
		}
	}
	assert.Equal(t, 3, income)
}
