package routers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"nutrisha-service/internal/app/config"
	"nutrisha-service/internal/app/delivery/http/controllers"
	"nutrisha-service/internal/app/delivery/http/middlewares"
	"nutrisha-service/internal/pkg/constvars"
	"nutrisha-service/internal/pkg/dto/requests"
	"nutrisha-service/internal/pkg/dto/responses"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockNutritionUsecase struct {
	mock.Mock
}

func (m *MockNutritionUsecase) GenerateDiet(ctx context.Context, request *requests.GenerateDiet) (*responses.GenerateDiet, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.GenerateDiet), args.Error(1)
}

func (m *MockNutritionUsecase) AnalyzeImage(ctx context.Context, request *requests.AnalyzeImage) (*responses.AnalyzeImage, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.AnalyzeImage), args.Error(1)
}

func (m *MockNutritionUsecase) CalculateBodyMetrics(ctx context.Context, request *requests.BodyMetrics) (*responses.BodyMetrics, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.BodyMetrics), args.Error(1)
}

type MockPatientInfoUsecase struct {
	mock.Mock
}

func (m *MockPatientInfoUsecase) GetPatientInfo(ctx context.Context, request *requests.GetPatientInfo) (*responses.PatientInfo, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.PatientInfo), args.Error(1)
}

func setupTestRouter(nutritionUsecase *MockNutritionUsecase, patientInfoUsecase *MockPatientInfoUsecase) *chi.Mux {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:             "api",
			MaxRequests:                100,
			RequestBodyLimitInMegabyte: 1,
			RequestTimeoutInSeconds:    5,
			MealImageMaxUploadSizeInMB: 1,
		},
	}

	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig),
		&controllers.NutritionController{Log: logger, NutritionUsecase: nutritionUsecase, InternalConfig: internalConfig},
		&controllers.PatientController{Log: logger, PatientInfoUsecase: patientInfoUsecase, InternalConfig: internalConfig},
	)
	return router
}

func TestRouter_GenerateDietEndpoint(t *testing.T) {
	nutritionUsecase := new(MockNutritionUsecase)
	nutritionUsecase.On("GenerateDiet", mock.Anything, mock.MatchedBy(func(request *requests.GenerateDiet) bool {
		return request.Goal == "cut"
	})).Return(&responses.GenerateDiet{DietPlan: &responses.DietPlan{}}, nil)

	router := setupTestRouter(nutritionUsecase, new(MockPatientInfoUsecase))

	req := httptest.NewRequest(http.MethodPost, "/api/generate-diet", strings.NewReader(`{"goal":"cut"}`))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderXRequestID, "client-request")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "client-request", rr.Header().Get(constvars.HeaderXRequestID))
	nutritionUsecase.AssertExpectations(t)
}

func TestRouter_PatientInfoEndpoint(t *testing.T) {
	patientInfoUsecase := new(MockPatientInfoUsecase)
	patientInfoUsecase.On("GetPatientInfo", mock.Anything, &requests.GetPatientInfo{PatientID: "pat-1", Refresh: true}).
		Return(&responses.PatientInfo{}, nil)

	router := setupTestRouter(new(MockNutritionUsecase), patientInfoUsecase)

	req := httptest.NewRequest(http.MethodGet, "/api/patients/pat-1/info?refresh=true", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
	patientInfoUsecase.AssertExpectations(t)
}

func TestRouter_BodyTooLarge(t *testing.T) {
	nutritionUsecase := new(MockNutritionUsecase)
	router := setupTestRouter(nutritionUsecase, new(MockPatientInfoUsecase))

	body := `{"restrictions":["` + strings.Repeat("a", 1<<20) + `"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-diet", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	nutritionUsecase.AssertNotCalled(t, "GenerateDiet", mock.Anything, mock.Anything)
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := setupTestRouter(new(MockNutritionUsecase), new(MockPatientInfoUsecase))

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
