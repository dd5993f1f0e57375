package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transactionRowColumns = []string{
	"id", "amount", "description", "type", "transaction_date", "competency_period", "category_id",
	"notes", "metadata", "payment_status", "paid_date", "created_at", "updated_at",
	"category_name", "category_color", "category_icon",
}

func TestTransactionConditions(t *testing.T) {
	expense := domain.TransactionTypeExpense
	categoryID := uuid.New()
	start := domain.MustParseDate("2024-03-01")

	tests := []struct {
		name          string
		filter        domain.TransactionFilter
		expectedWhere string
		expectedArgs  []interface{}
	}{
		{
			name:          "no filters",
			filter:        domain.NewTransactionFilter(),
			expectedWhere: "",
			expectedArgs:  nil,
		},
		{
			name: "placeholders follow the filter order",
			filter: domain.TransactionFilter{
				Type:             &expense,
				CategoryID:       &categoryID,
				StartDate:        &start,
				CompetencyPeriod: "2024-03",
				Search:           "50%_off",
			},
			expectedWhere: " WHERE t.type = $1 AND t.category_id = $2 AND t.transaction_date >= $3 AND t.competency_period = $4 AND t.description ILIKE $5",
			expectedArgs:  []interface{}{expense, categoryID, start, "2024-03", `%50\%\_off%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			where, args := transactionConditions(tt.filter)

			// Assert
			assert.Equal(t, tt.expectedWhere, where)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestTransactionRepository_List(t *testing.T) {
	// Arrange
	db, mock := newMockDB(t)
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	income := domain.TransactionTypeIncome

	filter := domain.NewTransactionFilter()
	filter.Type = &income
	filter.Page = 2
	filter.Limit = 1
	filter.SortBy = "amount"
	filter.SortOrder = "asc"

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM transactions t WHERE t.type = $1")).
		WithArgs("income").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	rows := sqlmock.NewRows(transactionRowColumns).AddRow(
		uuid.New().String(), "8500.00", "Salário", "income", "2024-03-05", "2024-03", nil,
		nil, nil, "paid", "2024-03-05", now, now, nil, nil, nil,
	)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY t.amount ASC, t.id ASC")).
		WithArgs("income", 1, 1).
		WillReturnRows(rows)
	repo := NewTransactionRepository(db)

	// Act
	transactions, total, err := repo.List(context.Background(), filter)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, transactions, 1)
	assert.True(t, transactions[0].Amount.Equal(decimal.NewFromInt(8500)))
	assert.Nil(t, transactions[0].CategoryID)
	assert.Nil(t, transactions[0].CategoryName)
	require.NotNil(t, transactions[0].PaidDate)
	assert.Equal(t, "2024-03-05", transactions[0].PaidDate.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_MonthlyStats(t *testing.T) {
	// Arrange
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE competency_period = $1")).
		WithArgs("2024-03").
		WillReturnRows(sqlmock.NewRows([]string{"competency_period", "total_income", "total_expenses", "transaction_count"}).
			AddRow("2024-03", "8500.00", "3200.50", 14))

	// Act
	stats, err := NewTransactionRepository(db).MonthlyStats(context.Background(), "2024-03")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2024-03", stats.CompetencyPeriod)
	assert.True(t, stats.Balance.Equal(decimal.RequireFromString("5299.50")))
	assert.Equal(t, 14, stats.TransactionCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_TopExpenseCategories(t *testing.T) {
	// Arrange
	db, mock := newMockDB(t)
	categoryID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY total DESC")).
		WithArgs("2024-03", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "color", "icon", "total", "count"}).
			AddRow(categoryID.String(), "Moradia", "#795548", "home", "1800.00", 2).
			AddRow(nil, "Sem categoria", "#808080", "category", "120.00", 1))

	// Act
	totals, err := NewTransactionRepository(db).TopExpenseCategories(context.Background(), "2024-03", 5)

	// Assert
	require.NoError(t, err)
	require.Len(t, totals, 2)
	require.NotNil(t, totals[0].ID)
	assert.Equal(t, categoryID, *totals[0].ID)
	assert.Nil(t, totals[1].ID)
	assert.Equal(t, "Sem categoria", totals[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
