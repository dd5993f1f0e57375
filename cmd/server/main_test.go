package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/handler"
	"github.com/segyhp/finance-tracker/internal/middleware"
	"github.com/segyhp/finance-tracker/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type routeMocks struct {
	installment *mocks.MockInstallmentService
	category    *mocks.MockCategoryService
	transaction *mocks.MockTransactionService
	dashboard   *mocks.MockDashboardService
}

func newTestRouter(t *testing.T) (*mux.Router, routeMocks) {
	t.Helper()

	m := routeMocks{
		installment: &mocks.MockInstallmentService{},
		category:    &mocks.MockCategoryService{},
		transaction: &mocks.MockTransactionService{},
		dashboard:   &mocks.MockDashboardService{},
	}

	validate := handler.NewValidator()
	handlers := routeHandlers{
		installment: handler.NewInstallmentHandler(m.installment, validate),
		category:    handler.NewCategoryHandler(m.category, validate),
		transaction: handler.NewTransactionHandler(m.transaction, validate),
		dashboard:   handler.NewDashboardHandler(m.dashboard),
		health:      handler.NewHealthHandler(nil, nil, time.Second),
	}

	rateLimiter := middleware.NewRateLimiter(6000, 1000)
	t.Cleanup(rateLimiter.Stop)

	return setupRoutes(handlers, rateLimiter, middleware.NewMetrics("finance_tracker_test")), m
}

func TestSetupRoutes(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setupMocks     func(routeMocks)
		expectedStatus int
	}{
		{
			name:   "PATCH updates an installment plan",
			method: http.MethodPatch,
			path:   "/api/v1/installments/" + id.String(),
			body:   `{"name":"Carro"}`,
			setupMocks: func(m routeMocks) {
				m.installment.On("UpdatePlan", mock.Anything, id, mock.Anything).
					Return(&domain.InstallmentPlanResponse{InstallmentPlan: &domain.InstallmentPlan{ID: id}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "PUT is kept as an alias for plan updates",
			method: http.MethodPut,
			path:   "/api/v1/installments/" + id.String(),
			body:   `{"name":"Carro"}`,
			setupMocks: func(m routeMocks) {
				m.installment.On("UpdatePlan", mock.Anything, id, mock.Anything).
					Return(&domain.InstallmentPlanResponse{InstallmentPlan: &domain.InstallmentPlan{ID: id}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "PATCH updates a category",
			method: http.MethodPatch,
			path:   "/api/v1/categories/" + id.String(),
			body:   `{"name":"Mercado"}`,
			setupMocks: func(m routeMocks) {
				m.category.On("Update", mock.Anything, id, mock.Anything).Return(&domain.Category{ID: id}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "PATCH updates a transaction",
			method: http.MethodPatch,
			path:   "/api/v1/transactions/" + id.String(),
			body:   `{"description":"Feira"}`,
			setupMocks: func(m routeMocks) {
				m.transaction.On("Update", mock.Anything, id, mock.Anything).Return(&domain.Transaction{ID: id}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "preview is not captured by the id route",
			method: http.MethodPost,
			path:   "/api/v1/installments/preview",
			body:   `{"financed_amount":1000,"installment_value":110,"total_installments":10}`,
			setupMocks: func(m routeMocks) {
				m.installment.On("Preview", mock.Anything).Return(&domain.PreviewResponse{})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "upcoming is not captured by the id route",
			method: http.MethodGet,
			path:   "/api/v1/installments/upcoming",
			setupMocks: func(m routeMocks) {
				m.installment.On("Upcoming", mock.Anything, 7).Return([]*domain.UpcomingPayment{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "category defaults are not captured by the id route",
			method: http.MethodPost,
			path:   "/api/v1/categories/defaults",
			setupMocks: func(m routeMocks) {
				m.category.On("SeedDefaults", mock.Anything).Return([]*domain.Category{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "installment payment",
			method: http.MethodPost,
			path:   "/api/v1/installments/" + id.String() + "/pay",
			body:   `{"paid_amount":"1920.00"}`,
			setupMocks: func(m routeMocks) {
				m.installment.On("PayInstallment", mock.Anything, id, mock.Anything).
					Return(&domain.InstallmentResponse{Installment: &domain.Installment{ID: id}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unregistered verb on a known path",
			method:         http.MethodPost,
			path:           "/api/v1/transactions/" + id.String(),
			setupMocks:     func(routeMocks) {},
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "GET on preview falls through to the id route",
			method:         http.MethodGet,
			path:           "/api/v1/installments/preview",
			setupMocks:     func(routeMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown path",
			method:         http.MethodGet,
			path:           "/api/v1/loans",
			setupMocks:     func(routeMocks) {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "health",
			method:         http.MethodGet,
			path:           "/health",
			setupMocks:     func(routeMocks) {},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			router, m := newTestRouter(t)
			tt.setupMocks(m)
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			// Act
			router.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			m.installment.AssertExpectations(t)
			m.category.AssertExpectations(t)
			m.transaction.AssertExpectations(t)
			m.dashboard.AssertExpectations(t)
		})
	}
}
