package controllers

import (
	"errors"
	"io"
	"net/http"
	"nutrisha-service/internal/app/config"
	"nutrisha-service/internal/app/contracts"
	"nutrisha-service/internal/pkg/constvars"
	"nutrisha-service/internal/pkg/dto/requests"
	"nutrisha-service/internal/pkg/exceptions"
	"nutrisha-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// multipartMemoryOverhead covers the text fields sent alongside the image.
const multipartMemoryOverhead = 1 << 20

type NutritionController struct {
	Log              *zap.Logger
	NutritionUsecase contracts.NutritionUsecase
	InternalConfig   *config.InternalConfig
}

var (
	nutritionControllerInstance *NutritionController
	onceNutritionController     sync.Once
)

func NewNutritionController(logger *zap.Logger, nutritionUsecase contracts.NutritionUsecase, internalConfig *config.InternalConfig) *NutritionController {
	onceNutritionController.Do(func() {
		instance := &NutritionController{
			Log:              logger,
			NutritionUsecase: nutritionUsecase,
			InternalConfig:   internalConfig,
		}
		nutritionControllerInstance = instance
	})
	return nutritionControllerInstance
}

func (ctrl *NutritionController) GenerateDiet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Debug("Diet generation started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEndpointKey, r.URL.Path),
	)

	request := new(requests.GenerateDiet)
	err := decodeJSONBody(r, request)
	if err != nil {
		ctrl.Log.Error("Failed to parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "JSON parsing"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request.PatientID, err = resolvePatientID(r.Context(), request.PatientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.NutritionUsecase.GenerateDiet(ctx, request)
	if err != nil {
		ctrl.Log.Error("Failed to generate diet",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "usecase error"),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, wrapContextError(err))
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "diet_generated", requestID,
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GenerateDietSuccessMessage, response)
}

func (ctrl *NutritionController) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Debug("Meal image analysis started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEndpointKey, r.URL.Path),
	)

	request, err := ctrl.parseAnalyzeImageForm(r)
	if err != nil {
		ctrl.Log.Error("Failed to parse multipart form",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "multipart parsing"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request.PatientID, err = resolvePatientID(r.Context(), request.PatientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r, ctrl.InternalConfig)
	defer cancel()

	response, err := ctrl.NutritionUsecase.AnalyzeImage(ctx, request)
	if err != nil {
		ctrl.Log.Error("Failed to analyze meal image",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "usecase error"),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, wrapContextError(err))
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "meal_image_analyzed", requestID,
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.String(constvars.LoggingObjectNameKey, response.ImageObjectName),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AnalyzeImageSuccessMessage, response)
}

func (ctrl *NutritionController) CalculateBodyMetrics(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	request := new(requests.BodyMetrics)
	err := decodeJSONBody(r, request)
	if err != nil {
		ctrl.Log.Error("Failed to parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "JSON parsing"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response, err := ctrl.NutritionUsecase.CalculateBodyMetrics(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BodyMetricsSuccessMessage, response)
}

func (ctrl *NutritionController) parseAnalyzeImageForm(r *http.Request) (*requests.AnalyzeImage, error) {
	imageLimit := int64(ctrl.InternalConfig.App.MealImageMaxUploadSizeInMB) << 20

	err := r.ParseMultipartForm(imageLimit + multipartMemoryOverhead)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, exceptions.ErrRequestBodyTooLarge(err, maxBytesErr.Limit)
		}
		return nil, exceptions.ErrCannotParseMultipartForm(err)
	}

	file, fileHeader, err := r.FormFile(constvars.FormFieldImage)
	if err != nil {
		return nil, exceptions.ErrCannotReadMultipartFile(err, constvars.FormFieldImage)
	}
	defer file.Close()

	// One byte past the limit is enough for the usecase to reject the image.
	reader := io.Reader(file)
	if imageLimit > 0 {
		reader = io.LimitReader(file, imageLimit+1)
	}
	image, err := io.ReadAll(reader)
	if err != nil {
		return nil, exceptions.ErrCannotReadMultipartFile(err, constvars.FormFieldImage)
	}

	return &requests.AnalyzeImage{
		PatientID:     strings.TrimSpace(r.FormValue(constvars.FormFieldPatientID)),
		Allergies:     splitList(r.FormValue(constvars.FormFieldAllergies)),
		Image:         image,
		ImageFileName: fileHeader.Filename,
		SystemPrompt:  r.FormValue(constvars.FormFieldSystemPrompt),
		Diabetes: requests.DiabetesParameters{
			DiabetesType:       strings.TrimSpace(r.FormValue(constvars.FormFieldDiabetesType)),
			CurrentGlucose:     strings.TrimSpace(r.FormValue(constvars.FormFieldCurrentGlucose)),
			TargetGlucose:      strings.TrimSpace(r.FormValue(constvars.FormFieldTargetGlucose)),
			InsulinSensitivity: strings.TrimSpace(r.FormValue(constvars.FormFieldInsulinSensitivity)),
			InsulinRatio:       strings.TrimSpace(r.FormValue(constvars.FormFieldInsulinRatio)),
			InsulinType:        strings.TrimSpace(r.FormValue(constvars.FormFieldInsulinType)),
			FastingBloodSugar:  strings.TrimSpace(r.FormValue(constvars.FormFieldFastingBloodSugar)),
			HemoglobinA1c:      strings.TrimSpace(r.FormValue(constvars.FormFieldHemoglobinA1c)),
		},
	}, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
