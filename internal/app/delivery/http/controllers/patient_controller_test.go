package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"nutrisha-service/internal/app/config"
	"nutrisha-service/internal/pkg/constvars"
	"nutrisha-service/internal/pkg/dto/requests"
	"nutrisha-service/internal/pkg/dto/responses"
	"nutrisha-service/internal/pkg/exceptions"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePatientInfoUsecase struct {
	request *requests.GetPatientInfo
	err     error
}

func (f *fakePatientInfoUsecase) GetPatientInfo(ctx context.Context, request *requests.GetPatientInfo) (*responses.PatientInfo, error) {
	f.request = request
	if f.err != nil {
		return nil, f.err
	}
	return &responses.PatientInfo{AllergyData: []string{"Peanuts"}}, nil
}

func serveGetPatientInfo(ctrl *PatientController, path, launchPatientID string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/patients/{patientID}/info", ctrl.GetPatientInfo)

	req := withRequestContext(httptest.NewRequest(http.MethodGet, path, nil), launchPatientID)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestPatientController_GetPatientInfo(t *testing.T) {
	tests := []struct {
		name            string
		path            string
		launchPatientID string
		usecaseErr      error
		expectedCode    int
		expectedRefresh bool
	}{
		{
			name:         "Success",
			path:         "/patients/pat-1/info",
			expectedCode: http.StatusOK,
		},
		{
			name:            "Refresh",
			path:            "/patients/pat-1/info?refresh=true",
			launchPatientID: "pat-1",
			expectedCode:    http.StatusOK,
			expectedRefresh: true,
		},
		{
			name:            "Launch Patient Mismatch",
			path:            "/patients/pat-2/info",
			launchPatientID: "pat-1",
			expectedCode:    http.StatusForbidden,
		},
		{
			name:         "Patient Not Found",
			path:         "/patients/missing/info",
			usecaseErr:   exceptions.ErrNoDataFHIRResource(nil, constvars.ResourcePatient),
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usecase := &fakePatientInfoUsecase{err: tt.usecaseErr}
			ctrl := &PatientController{
				Log:                zap.NewNop(),
				PatientInfoUsecase: usecase,
				InternalConfig:     &config.InternalConfig{},
			}

			rr := serveGetPatientInfo(ctrl, tt.path, tt.launchPatientID)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusForbidden {
				assert.Nil(t, usecase.request)
				return
			}
			require.NotNil(t, usecase.request)
			assert.Equal(t, tt.expectedRefresh, usecase.request.Refresh)
		})
	}
}

func TestPatientController_MissingRequestID(t *testing.T) {
	ctrl := &PatientController{
		Log:                zap.NewNop(),
		PatientInfoUsecase: &fakePatientInfoUsecase{},
		InternalConfig:     &config.InternalConfig{},
	}

	rr := httptest.NewRecorder()
	ctrl.GetPatientInfo(rr, httptest.NewRequest(http.MethodGet, "/patients/pat-1/info", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
