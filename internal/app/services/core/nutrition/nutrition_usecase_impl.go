package nutrition

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"nutrisha-service/internal/app/config"
	"nutrisha-service/internal/app/contracts"
	"nutrisha-service/internal/pkg/constvars"
	"nutrisha-service/internal/pkg/dto/requests"
	"nutrisha-service/internal/pkg/dto/responses"
	"nutrisha-service/internal/pkg/exceptions"
	"nutrisha-service/internal/pkg/utils"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	DietSystemMessage      = "You are a nutritionist. Generate a balanced diet plan based on the user's preferences and goals."
	ImageAnalysisUserText  = "Analyze this meal image and respond with the report as JSON."
	dietSchemaDescription  = "A multi-day diet plan with timed meals and per-item nutrients"
	imageSchemaDescription = "A nutritional report of a meal photo"
)

var imageExtensions = map[string]string{
	constvars.MIMEImageJPEG: ".jpg",
	constvars.MIMEImagePNG:  ".png",
}

type nutritionUsecase struct {
	PatientInfoUsecase   contracts.PatientInfoUsecase
	ChatCompletionClient contracts.ChatCompletionClient
	Storage              contracts.Storage
	EventPublisher       contracts.EventPublisher
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
	Now                  func() time.Time
}

// NewNutritionUsecase accepts a nil storage and a nil eventPublisher; image
// archiving and event publishing are then skipped.
func NewNutritionUsecase(
	patientInfoUsecase contracts.PatientInfoUsecase,
	chatCompletionClient contracts.ChatCompletionClient,
	storage contracts.Storage,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.NutritionUsecase {
	return &nutritionUsecase{
		PatientInfoUsecase:   patientInfoUsecase,
		ChatCompletionClient: chatCompletionClient,
		Storage:              storage,
		EventPublisher:       eventPublisher,
		InternalConfig:       internalConfig,
		Log:                  logger,
		Now:                  time.Now,
	}
}

func (uc *nutritionUsecase) GenerateDiet(ctx context.Context, request *requests.GenerateDiet) (*responses.GenerateDiet, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("nutritionUsecase.GenerateDiet called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	prompt := request.DietDescription
	if prompt == "" {
		patientInfo, err := uc.resolvePatientInfo(ctx, request.PatientID)
		if err != nil {
			return nil, err
		}
		prompt = BuildDietPrompt(uc.dietPromptParams(ctx, request, patientInfo), patientInfo)
	}

	chatRequest := &requests.ChatCompletion{
		Messages: []requests.ChatMessage{
			{Role: requests.ChatRoleSystem, Content: DietSystemMessage},
			{Role: requests.ChatRoleUser, Content: prompt},
		},
		ResponseFormat: structuredOutput(DietPlanSchemaName, dietSchemaDescription, DietPlanSchema()),
	}

	uc.Log.Debug("nutritionUsecase.GenerateDiet sending prompt",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPromptLengthKey, len(prompt)),
	)

	completion, err := uc.ChatCompletionClient.CreateChatCompletion(ctx, chatRequest)
	if err != nil {
		return nil, mapCompletionError(err, exceptions.ErrGenerateDiet)
	}

	dietPlan := new(responses.DietPlan)
	err = decodeCompletion(completion, DietPlanSchemaName, dietPlan)
	if err != nil {
		uc.Log.Error("nutritionUsecase.GenerateDiet error decoding diet plan",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrGenerateDiet(err)
	}
	SummarizeDietPlan(dietPlan)

	uc.publish(ctx, constvars.EventTypeDietPlanGenerated, request.PatientID, completion, map[string]interface{}{
		"days":         len(dietPlan.Days),
		"legacyPrompt": request.DietDescription != "",
	})

	uc.Log.Info("nutritionUsecase.GenerateDiet succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDaysKey, len(dietPlan.Days)),
		zap.Int(constvars.LoggingPromptTokensKey, completion.Usage.PromptTokens),
		zap.Int(constvars.LoggingCompletionTokenKey, completion.Usage.CompletionTokens),
	)
	return &responses.GenerateDiet{DietPlan: dietPlan}, nil
}

func (uc *nutritionUsecase) AnalyzeImage(ctx context.Context, request *requests.AnalyzeImage) (*responses.AnalyzeImage, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("nutritionUsecase.AnalyzeImage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.Int(constvars.LoggingImageSizeKey, len(request.Image)),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	mimeType, err := uc.validateImage(request.Image)
	if err != nil {
		return nil, err
	}

	prompt := request.SystemPrompt
	if prompt == "" {
		patientInfo, err := uc.resolvePatientInfo(ctx, request.PatientID)
		if err != nil {
			return nil, err
		}
		allergies := mergeAllergies(request.Allergies, patientInfo)
		prompt = BuildFoodAnalysisPrompt(NewDiabetesParams(request.Diabetes), allergies)
	}

	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(request.Image)
	chatRequest := &requests.ChatCompletion{
		Messages: []requests.ChatMessage{
			{Role: requests.ChatRoleSystem, Content: prompt},
			{Role: requests.ChatRoleUser, Content: []requests.ChatContentPart{
				{Type: requests.ChatContentTypeText, Text: ImageAnalysisUserText},
				{Type: requests.ChatContentTypeImageURL, ImageURL: &requests.ImageURL{URL: dataURL}},
			}},
		},
		ResponseFormat: structuredOutput(ImageAnalysisSchemaName, imageSchemaDescription, ImageAnalysisSchema()),
	}

	completion, err := uc.ChatCompletionClient.CreateChatCompletion(ctx, chatRequest)
	if err != nil {
		return nil, mapCompletionError(err, exceptions.ErrAnalyzeImage)
	}

	analysis := new(responses.ImageAnalysis)
	err = decodeCompletion(completion, ImageAnalysisSchemaName, analysis)
	if err != nil {
		uc.Log.Error("nutritionUsecase.AnalyzeImage error decoding analysis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrAnalyzeImage(err)
	}

	response := &responses.AnalyzeImage{
		Analysis:        analysis,
		ImageObjectName: uc.archiveImage(ctx, request.Image, mimeType),
	}

	uc.publish(ctx, constvars.EventTypeMealImageAnalyzed, request.PatientID, completion, map[string]interface{}{
		"calories":        analysis.NutritionalBreakdown.Calories,
		"identifiedItems": len(analysis.IdentifiedItems),
		"imageObjectName": response.ImageObjectName,
	})

	uc.Log.Info("nutritionUsecase.AnalyzeImage succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingImageMimeTypeKey, mimeType),
		zap.Int(constvars.LoggingCountKey, len(analysis.IdentifiedItems)),
	)
	return response, nil
}

func (uc *nutritionUsecase) CalculateBodyMetrics(ctx context.Context, request *requests.BodyMetrics) (*responses.BodyMetrics, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("nutritionUsecase.CalculateBodyMetrics called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	response := new(responses.BodyMetrics)
	if request.Weight != nil {
		if bmi, ok := utils.CalculateBMI(*request.Weight, *request.Height); ok {
			response.BMI = &bmi
			response.BMICategory = utils.BMICategory(bmi)
		}
	}

	if request.Waist != nil || request.Neck != nil {
		bodyFat, err := utils.CalculateNavyBodyFat(request.Gender, *request.Height, valueOrZero(request.Waist), valueOrZero(request.Neck), valueOrZero(request.Hip))
		if err != nil {
			return nil, err
		}
		response.BodyFat = &bodyFat
	}

	return response, nil
}

func (uc *nutritionUsecase) resolvePatientInfo(ctx context.Context, patientID string) (*responses.PatientInfo, error) {
	if patientID == "" {
		return nil, nil
	}
	return uc.PatientInfoUsecase.GetPatientInfo(ctx, &requests.GetPatientInfo{PatientID: patientID})
}

// dietPromptParams falls back to the patient record for demographics and
// body measurements, and derives BMI and body fat when they are missing.
func (uc *nutritionUsecase) dietPromptParams(ctx context.Context, request *requests.GenerateDiet, patientInfo *responses.PatientInfo) DietPromptParams {
	params := DietPromptParams{
		Duration:       request.Duration,
		DietPace:       request.DietPace,
		Age:            request.Age,
		Gender:         request.Gender,
		Weight:         request.Weight,
		Height:         request.Height,
		BMI:            request.BMI,
		Waist:          request.Waist,
		Neck:           request.Neck,
		BodyFat:        request.BodyFat,
		ActivityLevel:  request.ActivityLevel,
		WorkoutType:    request.WorkoutType,
		Goal:           request.Goal,
		DesiredWeight:  request.DesiredWeight,
		MealQuantity:   request.MealQuantity,
		SelectedMeals:  request.SelectedMeals,
		ExoticAllowed:  request.ExoticAllowed,
		Budget:         request.Budget,
		LoveProducts:   request.LoveProducts,
		UnloveProducts: request.UnloveProducts,
		Restrictions:   request.Restrictions,
	}

	if patientInfo != nil {
		if patientData := patientInfo.PatientData; patientData != nil {
			if params.Age == nil {
				params.Age = patientData.Age
			}
			if params.Gender == "" && patientData.Gender != nil {
				params.Gender = *patientData.Gender
			}
		}
		if params.Weight == nil {
			params.Weight = measureNumber(patientInfo.MeasureData, responses.MeasureWeight)
		}
		if params.Height == nil {
			params.Height = measureNumber(patientInfo.MeasureData, responses.MeasureHeight)
		}
		if params.BMI == nil {
			params.BMI = measureNumber(patientInfo.MeasureData, responses.MeasureBMI)
		}
	}

	if params.BMI == nil && params.Weight != nil && params.Height != nil {
		if bmi, ok := utils.CalculateBMI(*params.Weight, *params.Height); ok {
			params.BMI = &bmi
		}
	}

	if params.BodyFat == nil && params.Waist != nil && params.Neck != nil && params.Height != nil {
		bodyFat, err := utils.CalculateNavyBodyFat(params.Gender, *params.Height, *params.Waist, *params.Neck, valueOrZero(request.Hip))
		if err != nil {
			uc.Log.Debug("nutritionUsecase.dietPromptParams body fat not computable",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.Error(err),
			)
		} else {
			params.BodyFat = &bodyFat
		}
	}

	return params
}

func (uc *nutritionUsecase) validateImage(image []byte) (string, error) {
	limit := int64(uc.InternalConfig.App.MealImageMaxUploadSizeInMB) << 20
	if limit > 0 && int64(len(image)) > limit {
		return "", exceptions.ErrImageTooLarge(nil, int64(len(image)), limit)
	}

	mimeType := http.DetectContentType(image)
	if _, ok := imageExtensions[mimeType]; !ok {
		return "", exceptions.ErrImageValidation(nil, mimeType)
	}
	return mimeType, nil
}

// archiveImage stores the photo in MinIO and returns its object name. Failures
// are logged and leave the name empty.
func (uc *nutritionUsecase) archiveImage(ctx context.Context, image []byte, mimeType string) string {
	if uc.Storage == nil || !uc.InternalConfig.App.MealImageArchiveEnabled {
		return ""
	}
	requestID := utils.GetRequestID(ctx)
	bucketName := uc.InternalConfig.Minio.BucketName

	objectName := utils.GenerateMealImageObjectName(uc.Now(), imageExtensions[mimeType])
	objectName, err := uc.Storage.UploadMealImage(ctx, image, mimeType, bucketName, objectName)
	if err != nil {
		uc.Log.Warn("nutritionUsecase.archiveImage error uploading meal image",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketNameKey, bucketName),
			zap.Error(err),
		)
		return ""
	}

	uc.Log.Info("nutritionUsecase.archiveImage uploaded meal image",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return objectName
}

func (uc *nutritionUsecase) publish(ctx context.Context, eventType, patientID string, completion *responses.ChatCompletion, attributes map[string]interface{}) {
	requestID := utils.GetRequestID(ctx)
	utils.LogBusinessEvent(uc.Log, eventType, requestID,
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingModelKey, completion.Model),
	)

	if uc.EventPublisher == nil {
		return
	}

	attributes["totalTokens"] = completion.Usage.TotalTokens
	event := &requests.NutritionEvent{
		ID:         utils.GenerateEventID(),
		Type:       eventType,
		RequestID:  requestID,
		PatientID:  patientID,
		Model:      completion.Model,
		OccurredAt: uc.Now().UTC(),
		Attributes: attributes,
	}

	err := uc.EventPublisher.Publish(ctx, event)
	if err != nil {
		uc.Log.Warn("nutritionUsecase.publish error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, eventType),
			zap.Error(err),
		)
	}
}

func structuredOutput(name, description string, schema *requests.JSONSchema) *requests.ResponseFormat {
	return &requests.ResponseFormat{
		Type: requests.ResponseFormatJSONSchema,
		JSONSchema: &requests.JSONSchemaFormat{
			Name:        name,
			Description: description,
			Schema:      schema,
			Strict:      true,
		},
	}
}

func decodeCompletion(completion *responses.ChatCompletion, schemaName string, out interface{}) error {
	if len(completion.Choices) == 0 {
		return exceptions.ErrLLMEmptyChoices(nil)
	}
	message := completion.Choices[0].Message
	if message.Refusal != "" {
		return exceptions.ErrLLMMalformedContent(errors.New(message.Refusal), schemaName)
	}

	err := json.Unmarshal([]byte(message.Content), out)
	if err != nil {
		return exceptions.ErrLLMMalformedContent(err, schemaName)
	}
	return nil
}

// mapCompletionError keeps deadline errors as 504, returns cancellations
// unchanged and reports everything else with the operation's client message.
func mapCompletionError(err error, wrap func(error) *exceptions.CustomError) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) && customErr.StatusCode == constvars.StatusGatewayTimeout {
			return err
		}
		return exceptions.ErrServerDeadlineExceeded(err)
	}
	return wrap(err)
}

func mergeAllergies(requested []string, patientInfo *responses.PatientInfo) []string {
	var recorded []string
	if patientInfo != nil {
		recorded = patientInfo.AllergyData
	}

	seen := make(map[string]bool)
	merged := make([]string, 0, len(requested)+len(recorded))
	for _, allergy := range append(append([]string{}, requested...), recorded...) {
		allergy = strings.TrimSpace(allergy)
		key := strings.ToLower(allergy)
		if allergy == "" || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, allergy)
	}
	return merged
}

// measureNumber reads the leading number of a rendered quantity such as
// "72.5 kg".
func measureNumber(measures responses.MeasureData, key string) *float64 {
	fields := strings.Fields(measures.Value(key))
	if len(fields) == 0 {
		return nil
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || value <= 0 {
		return nil
	}
	return &value
}

func valueOrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
