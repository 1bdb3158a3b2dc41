//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"fleetbook/internal/handler/api"
	resdto "fleetbook/internal/handler/dto/response"
	"fleetbook/internal/pkg/errs"
	"fleetbook/internal/usecase/queries"
	"fleetbook/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockFleetQueries struct {
	mock.Mock
}

func (m *mockFleetQueries) ListVehicles(ctx context.Context) ([]*queries.VehicleView, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*queries.VehicleView), args.Error(1)
	}
	return nil, args.Error(1)
}

type FleetHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockQueries *mockFleetQueries
}

func (s *FleetHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockQueries = new(mockFleetQueries)

	handler := api.NewFleetHandler(s.mockQueries)
	s.router.GET("/vehicles", handler.ListVehicles)
}

func (s *FleetHandlerTestSuite) TearDownTest() {
	s.mockQueries.AssertExpectations(s.T())
}

func TestFleetHandlerSuite(t *testing.T) {
	suite.Run(t, new(FleetHandlerTestSuite))
}

func (s *FleetHandlerTestSuite) TestListVehicles() {
	vehicles := []*queries.VehicleView{
		{
			ID:        uuid.New(),
			Plate:     "M-RX 1234",
			Model:     "Golf VIII",
			Category:  "compact",
			CreatedAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        uuid.New(),
			Plate:     "M-RX 5678",
			Model:     "Passat",
			Category:  "sedan",
			CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	s.Run("success: returns the fleet", func() {
		s.mockQueries.On("ListVehicles", mock.Anything).Return(vehicles, nil).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vehicles", nil, "")

		var resp []resdto.VehicleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 2)
		s.Equal("M-RX 1234", resp[0].Plate)
		s.Equal("sedan", resp[1].Category)
	})

	s.Run("store failure maps to 500", func() {
		s.mockQueries.On("ListVehicles", mock.Anything).
			Return(nil, errs.New("connection reset")).Once()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vehicles", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to load vehicles")
	})
}
