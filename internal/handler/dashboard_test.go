package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/mocks"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDashboardHandler_Monthly(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMocks     func(*mocks.MockDashboardService)
		expectedStatus int
	}{
		{
			name:  "Success - defaults to the current month",
			query: "",
			setupMocks: func(svc *mocks.MockDashboardService) {
				svc.On("Monthly", mock.Anything, 2024, time.March).Return(&domain.MonthlyDashboard{Year: 2024, Month: 3}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "Success - explicit month",
			query: "?year=2023&month=12",
			setupMocks: func(svc *mocks.MockDashboardService) {
				svc.On("Monthly", mock.Anything, 2023, time.December).Return(&domain.MonthlyDashboard{Year: 2023, Month: 12}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Failure - month is not a number",
			query:          "?month=march",
			setupMocks:     func(*mocks.MockDashboardService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Failure - month out of range",
			query: "?month=13",
			setupMocks: func(svc *mocks.MockDashboardService) {
				svc.On("Monthly", mock.Anything, 2024, time.Month(13)).
					Return(nil, customError.WrapValidationError(assert.AnError))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			svc := &mocks.MockDashboardService{}
			tt.setupMocks(svc)
			handler := NewDashboardHandler(svc)
			handler.now = func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local) }
			rec := httptest.NewRecorder()

			// Act
			handler.Monthly(rec, newRequest(http.MethodGet, "/api/v1/dashboard/monthly"+tt.query, "", nil))

			// Assert
			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
