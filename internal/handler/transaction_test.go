package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
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

func newTransactionHandler() (*TransactionHandler, *mocks.MockTransactionService) {
	svc := &mocks.MockTransactionService{}
	return NewTransactionHandler(svc, NewValidator()), svc
}

func TestParseTransactionFilter(t *testing.T) {
	categoryID := uuid.New()

	t.Run("defaults", func(t *testing.T) {
		filter, err := parseTransactionFilter(url.Values{})

		require.NoError(t, err)
		assert.Equal(t, domain.NewTransactionFilter(), filter)
	})

	t.Run("every parameter", func(t *testing.T) {
		query := url.Values{
			"type":              {"expense"},
			"payment_status":    {"paid"},
			"category_id":       {categoryID.String()},
			"start_date":        {"2024-03-01"},
			"end_date":          {"2024-03-31"},
			"competency_period": {"2024-03"},
			"search":            {"mercado"},
			"page":              {"2"},
			"limit":             {"50"},
			"sort_by":           {"amount"},
			"sort_order":        {"asc"},
		}

		filter, err := parseTransactionFilter(query)

		require.NoError(t, err)
		assert.Equal(t, domain.TransactionTypeExpense, *filter.Type)
		assert.Equal(t, domain.PaymentStatusPaid, *filter.PaymentStatus)
		assert.Equal(t, categoryID, *filter.CategoryID)
		assert.Equal(t, "2024-03-01", filter.StartDate.String())
		assert.Equal(t, "2024-03-31", filter.EndDate.String())
		assert.Equal(t, "2024-03", filter.CompetencyPeriod)
		assert.Equal(t, "mercado", filter.Search)
		assert.Equal(t, 2, filter.Page)
		assert.Equal(t, 50, filter.Limit)
		assert.Equal(t, "t.amount ASC, t.id ASC", filter.OrderBy())
	})

	for name, query := range map[string]url.Values{
		"malformed category":   {"category_id": {"food"}},
		"malformed start date": {"start_date": {"01/03/2024"}},
		"malformed page":       {"page": {"two"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseTransactionFilter(query)

			assert.Error(t, err)
		})
	}
}

func TestTransactionHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMocks     func(*mocks.MockTransactionService)
		expectedStatus int
	}{
		{
			name:  "Success",
			query: "?type=income&limit=5",
			setupMocks: func(svc *mocks.MockTransactionService) {
				svc.On("List", mock.Anything, mock.MatchedBy(func(filter domain.TransactionFilter) bool {
					return filter.Type != nil && *filter.Type == domain.TransactionTypeIncome && filter.Limit == 5
				})).Return(&domain.PaginatedTransactions{Data: []*domain.Transaction{}, Page: 1, Limit: 5}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Failure - limit above maximum",
			query:          "?limit=101",
			setupMocks:     func(*mocks.MockTransactionService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Failure - page above maximum",
			query:          "?page=9223372036854775807",
			setupMocks:     func(*mocks.MockTransactionService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Success - last allowed page",
			query: "?page=100000",
			setupMocks: func(svc *mocks.MockTransactionService) {
				svc.On("List", mock.Anything, mock.MatchedBy(func(filter domain.TransactionFilter) bool {
					return filter.Page == domain.MaxPage && filter.Offset() == (domain.MaxPage-1)*domain.DefaultPageSize
				})).Return(&domain.PaginatedTransactions{Data: []*domain.Transaction{}, Page: domain.MaxPage, Limit: domain.DefaultPageSize}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Failure - unknown type",
			query:          "?type=transfer",
			setupMocks:     func(*mocks.MockTransactionService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Failure - malformed date",
			query:          "?end_date=tomorrow",
			setupMocks:     func(*mocks.MockTransactionService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Failure - malformed competency period",
			query: "?competency_period=2024-13",
			setupMocks: func(svc *mocks.MockTransactionService) {
				svc.On("List", mock.Anything, mock.Anything).Return(nil, customError.WrapInvalidCompetencyPeriod("2024-13"))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			handler, svc := newTransactionHandler()
			tt.setupMocks(svc)
			rec := httptest.NewRecorder()

			// Act
			handler.List(rec, newRequest(http.MethodGet, "/api/v1/transactions"+tt.query, "", nil))

			// Assert
			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestTransactionHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockTransactionService)
		expectedStatus int
	}{
		{
			name: "Success",
			body: `{"amount":"89.90","description":"Mercado","type":"expense","transaction_date":"2024-03-02","metadata":{"store":"Atacadão"}}`,
			setupMocks: func(svc *mocks.MockTransactionService) {
				svc.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.CreateTransactionRequest) bool {
					return r.Amount.Equal(decimal.RequireFromString("89.90")) && r.Metadata["store"] == "Atacadão"
				})).Return(&domain.Transaction{ID: uuid.New(), Description: "Mercado"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Failure - missing description",
			body:           `{"amount":10,"type":"expense","transaction_date":"2024-03-02"}`,
			setupMocks:     func(*mocks.MockTransactionService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Failure - nested metadata",
			body:           `{"amount":10,"description":"Café","type":"expense","transaction_date":"2024-03-02","metadata":{"tags":["a"]}}`,
			setupMocks:     func(*mocks.MockTransactionService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Failure - unknown payment status",
			body:           `{"amount":10,"description":"Café","type":"expense","transaction_date":"2024-03-02","payment_status":"late"}`,
			setupMocks:     func(*mocks.MockTransactionService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			handler, svc := newTransactionHandler()
			tt.setupMocks(svc)
			rec := httptest.NewRecorder()

			// Act
			handler.Create(rec, newRequest(http.MethodPost, "/api/v1/transactions", tt.body, nil))

			// Assert
			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestTransactionHandler_Get(t *testing.T) {
	id := uuid.New()
	handler, svc := newTransactionHandler()
	svc.On("Get", mock.Anything, id).Return(nil, customError.WrapTransactionNotFound(id.String()))
	rec := httptest.NewRecorder()

	handler.Get(rec, newRequest(http.MethodGet, "/", "", map[string]string{"id": id.String()}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, customError.ErrCodeTransactionNotFound, decodeEnvelope(t, rec).Code)
}
