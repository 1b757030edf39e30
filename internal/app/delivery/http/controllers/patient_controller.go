package controllers

import (
	"net/http"
	"nutrisha-service/internal/app/config"
	"nutrisha-service/internal/app/contracts"
	"nutrisha-service/internal/pkg/constvars"
	"nutrisha-service/internal/pkg/dto/requests"
	"nutrisha-service/internal/pkg/exceptions"
	"nutrisha-service/internal/pkg/utils"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PatientController struct {
	Log                *zap.Logger
	PatientInfoUsecase contracts.PatientInfoUsecase
	InternalConfig     *config.InternalConfig
}

var (
	patientControllerInstance *PatientController
	oncePatientController     sync.Once
)

func NewPatientController(logger *zap.Logger, patientInfoUsecase contracts.PatientInfoUsecase, internalConfig *config.InternalConfig) *PatientController {
	oncePatientController.Do(func() {
		instance := &PatientController{
			Log:                logger,
			PatientInfoUsecase: patientInfoUsecase,
			InternalConfig:     internalConfig,
		}
		patientControllerInstance = instance
	})
	return patientControllerInstance
}

func (ctrl *PatientController) GetPatientInfo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())
	if requestID == "" {
		ctrl.Log.Error("Request ID missing from context",
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	patientID, err := resolvePatientID(r.Context(), patientID)
	if err != nil {
		utils.LogSecurityEvent(ctrl.Log, "patient_context_mismatch", requestID, "high",
			zap.String(constvars.LoggingPatientIDKey, chi.URLParam(r, constvars.URLParamPatientID)),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	refresh, _ := strconv.ParseBool(r.URL.Query().Get(constvars.URLQueryParamRefresh))
	request := &requests.GetPatientInfo{
		PatientID: patientID,
		Refresh:   refresh,
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.PatientInfoUsecase.GetPatientInfo(ctx, request)
	if err != nil {
		ctrl.Log.Error("Failed to get patient info",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, wrapContextError(err))
		return
	}

	ctrl.Log.Info("Patient info retrieved",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Bool("refresh", refresh),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientInfoSuccessMessage, response)
}
