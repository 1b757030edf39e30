package nutrition

import (
	"bytes"
	"context"
	"errors"
	"nutrisha-service/internal/app/config"
	"nutrisha-service/internal/pkg/constvars"
	"nutrisha-service/internal/pkg/dto/requests"
	"nutrisha-service/internal/pkg/dto/responses"
	"nutrisha-service/internal/pkg/exceptions"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const dietPlanContent = `{"days":[{"day":"Day 1","daySummary":{"eatingWindow":"08:00-19:00","mealFrequency":2},
"meals":[
{"mealType":"Lunch","time":"12:30","items":[{"food":"Rice","quantity":"150 g","calories":195,"nutrients":{"carbs":42,"protein":4,"fat":0.5,"fiber":0.6,"glycemicIndex":70}}],"totalCalories":195,"carbsForInsulin":42,"preparation":"Boil"},
{"mealType":"Breakfast","time":"08:00","items":[{"food":"Eggs","quantity":"100 g","calories":155,"nutrients":{"carbs":1,"protein":13,"fat":11,"fiber":0,"glycemicIndex":0}}],"totalCalories":155,"carbsForInsulin":1,"preparation":"Scramble"}
],"dayTotal":350}]}`

const imageAnalysisContent = `{"nutritionalBreakdown":{"calories":520,"macronutrients":{"carbs":60,"proteins":30,"fats":15,"fiber":8},"micronutrients":["iron"]},
"identifiedItems":[{"name":"grilled chicken","weightG":120,"volumeMl":0,"confidence":90,"allergens":[]}],
"insulinRecommendation":{"suggestedDoseUnits":5,"timingAdvice":"15 minutes pre-meal","glucoseTrend":"moderate rise","requiredParameters":[]},
"mealAssessment":{"balanceScore":75,"healthyScore":80,"suggestions":["add leafy greens"],"warnings":[]},
"confidenceNotes":[],"disclaimers":["Not a substitute for medical advice"]}`

var (
	pngImage  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	jpegImage = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0}, 64)...)
)

type fakeChatCompletionClient struct {
	requests []*requests.ChatCompletion
	content  string
	err      error
}

func (f *fakeChatCompletionClient) CreateChatCompletion(ctx context.Context, request *requests.ChatCompletion) (*responses.ChatCompletion, error) {
	f.requests = append(f.requests, request)
	if f.err != nil {
		return nil, f.err
	}
	return &responses.ChatCompletion{
		Model: "gpt-4o-mini",
		Choices: []responses.ChatCompletionChoice{
			{Message: responses.ChatCompletionMessage{Role: "assistant", Content: f.content}},
		},
		Usage: responses.ChatCompletionUsage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
	}, nil
}

type fakePatientInfoUsecase struct {
	info  *responses.PatientInfo
	err   error
	calls int
}

func (f *fakePatientInfoUsecase) GetPatientInfo(ctx context.Context, request *requests.GetPatientInfo) (*responses.PatientInfo, error) {
	f.calls++
	return f.info, f.err
}

type fakeStorage struct {
	objectNames []string
	bucketName  string
	err         error
}

func (f *fakeStorage) UploadMealImage(ctx context.Context, image []byte, contentType, bucketName, objectName string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.bucketName = bucketName
	f.objectNames = append(f.objectNames, objectName)
	return objectName, nil
}

type fakePublisher struct {
	events []*requests.NutritionEvent
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, event *requests.NutritionEvent) error {
	f.events = append(f.events, event)
	return f.err
}

type usecaseFixture struct {
	usecase     *nutritionUsecase
	llm         *fakeChatCompletionClient
	patientInfo *fakePatientInfoUsecase
	storage     *fakeStorage
	publisher   *fakePublisher
}

func newUsecaseFixture() *usecaseFixture {
	f := &usecaseFixture{
		llm:         &fakeChatCompletionClient{},
		patientInfo: &fakePatientInfoUsecase{},
		storage:     &fakeStorage{},
		publisher:   &fakePublisher{},
	}
	internalConfig := &config.InternalConfig{
		App: config.App{
			MealImageMaxUploadSizeInMB: 1,
			MealImageArchiveEnabled:    true,
		},
		Minio: config.AppMinio{BucketName: "meals"},
	}
	f.usecase = &nutritionUsecase{
		PatientInfoUsecase:   f.patientInfo,
		ChatCompletionClient: f.llm,
		Storage:              f.storage,
		EventPublisher:       f.publisher,
		InternalConfig:       internalConfig,
		Log:                  zap.NewNop(),
		Now: func() time.Time {
			return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
		},
	}
	return f
}

func requireCustomError(t *testing.T, err error, statusCode int) *exceptions.CustomError {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected CustomError, got %v", err)
	assert.Equal(t, statusCode, customErr.StatusCode)
	return customErr
}

func TestNutritionUsecase_GenerateDiet(t *testing.T) {
	f := newUsecaseFixture()
	f.llm.content = dietPlanContent

	response, err := f.usecase.GenerateDiet(context.Background(), &requests.GenerateDiet{
		Gender:   "female",
		Weight:   floatPtr(70),
		Height:   floatPtr(175),
		DietPace: "slow",
	})
	require.NoError(t, err)

	require.Len(t, f.llm.requests, 1)
	sent := f.llm.requests[0]
	require.Len(t, sent.Messages, 2)
	assert.Equal(t, DietSystemMessage, sent.Messages[0].Content)
	userPrompt, ok := sent.Messages[1].Content.(string)
	require.True(t, ok)
	assert.Contains(t, userPrompt, "Generate a 1-days slow-paced diet plan for a unknown-year-old female based on:")
	assert.Contains(t, userPrompt, "- BMI: 22.9\n")
	assert.Equal(t, requests.ResponseFormatJSONSchema, sent.ResponseFormat.Type)
	assert.Equal(t, DietPlanSchemaName, sent.ResponseFormat.JSONSchema.Name)
	assert.True(t, sent.ResponseFormat.JSONSchema.Strict)
	assert.Equal(t, 0, f.patientInfo.calls)

	day := response.DietPlan.Days[0]
	assert.Equal(t, "Breakfast", day.Meals[0].MealType)
	assert.Equal(t, "Lunch", day.Meals[1].MealType)
	assert.InDelta(t, 29.4, day.Meals[1].Totals.GlycemicLoad, 1e-9)
	assert.InDelta(t, 17, day.Totals.Protein, 1e-9)

	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, constvars.EventTypeDietPlanGenerated, event.Type)
	assert.Equal(t, "gpt-4o-mini", event.Model)
	assert.Equal(t, 1, event.Attributes["days"])
}

func TestNutritionUsecase_GenerateDiet_UsesPatientInfo(t *testing.T) {
	f := newUsecaseFixture()
	f.llm.content = dietPlanContent
	f.patientInfo.info = &responses.PatientInfo{
		PatientData: &responses.PatientData{Age: intPtr(50), Gender: strPtr("male")},
		MeasureData: responses.MeasureData{
			responses.MeasureWeight: strPtr("90 kg"),
			responses.MeasureHeight: strPtr("180 cm"),
		},
		AllergyData: []string{"Shellfish"},
	}

	_, err := f.usecase.GenerateDiet(context.Background(), &requests.GenerateDiet{
		PatientID: "patient-1",
		Waist:     floatPtr(90),
		Neck:      floatPtr(40),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.patientInfo.calls)
	userPrompt := f.llm.requests[0].Messages[1].Content.(string)
	assert.Contains(t, userPrompt, "for a 50-year-old male based on:\n♂ Male Profile:\n")
	assert.Contains(t, userPrompt, "- Current Weight: 90 kg\n- Height: 180 cm\n- BMI: 27.8\n")
	assert.Contains(t, userPrompt, "- Body Fat: 18.4\n")
	assert.Contains(t, userPrompt, "Avoid: Shellfish\n")
	assert.Equal(t, "patient-1", f.publisher.events[0].PatientID)
}

func TestNutritionUsecase_GenerateDiet_LegacyDescription(t *testing.T) {
	f := newUsecaseFixture()
	f.llm.content = dietPlanContent

	_, err := f.usecase.GenerateDiet(context.Background(), &requests.GenerateDiet{
		PatientID:       "patient-1",
		DietDescription: "Generate a 3-days plan",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, f.patientInfo.calls)
	assert.Equal(t, "Generate a 3-days plan", f.llm.requests[0].Messages[1].Content)
	assert.Equal(t, true, f.publisher.events[0].Attributes["legacyPrompt"])
}

func TestNutritionUsecase_GenerateDiet_Errors(t *testing.T) {
	tests := []struct {
		name          string
		request       *requests.GenerateDiet
		content       string
		llmErr        error
		patientErr    error
		statusCode    int
		clientMessage string
	}{
		{
			name:       "invalid diet pace",
			request:    &requests.GenerateDiet{DietPace: "turbo"},
			statusCode: constvars.StatusBadRequest,
		},
		{
			name:          "llm failure",
			request:       &requests.GenerateDiet{},
			llmErr:        exceptions.ErrLLMUnexpectedStatus(nil, 500, "boom"),
			statusCode:    constvars.StatusBadGateway,
			clientMessage: constvars.ErrClientFailedToGenerateDiet,
		},
		{
			name:          "deadline exceeded",
			request:       &requests.GenerateDiet{},
			llmErr:        context.DeadlineExceeded,
			statusCode:    constvars.StatusGatewayTimeout,
			clientMessage: constvars.ErrClientServerLongRespond,
		},
		{
			name:          "deadline already mapped",
			request:       &requests.GenerateDiet{},
			llmErr:        exceptions.ErrServerDeadlineExceeded(context.DeadlineExceeded),
			statusCode:    constvars.StatusGatewayTimeout,
			clientMessage: constvars.ErrClientServerLongRespond,
		},
		{
			name:          "malformed content",
			request:       &requests.GenerateDiet{},
			content:       "not json",
			statusCode:    constvars.StatusBadGateway,
			clientMessage: constvars.ErrClientFailedToGenerateDiet,
		},
		{
			name:          "patient not found",
			request:       &requests.GenerateDiet{PatientID: "missing"},
			patientErr:    exceptions.ErrNoDataFHIRResource(nil, constvars.ResourcePatient),
			statusCode:    constvars.StatusNotFound,
			clientMessage: constvars.ErrClientPatientNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUsecaseFixture()
			f.llm.content = tt.content
			f.llm.err = tt.llmErr
			f.patientInfo.err = tt.patientErr

			response, err := f.usecase.GenerateDiet(context.Background(), tt.request)

			assert.Nil(t, response)
			customErr := requireCustomError(t, err, tt.statusCode)
			if tt.clientMessage != "" {
				assert.Equal(t, tt.clientMessage, customErr.ClientMessage)
			}
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestNutritionUsecase_GenerateDiet_CanceledCaller(t *testing.T) {
	f := newUsecaseFixture()
	f.llm.err = context.Canceled

	response, err := f.usecase.GenerateDiet(context.Background(), &requests.GenerateDiet{})

	assert.Nil(t, response)
	assert.ErrorIs(t, err, context.Canceled)
	var customErr *exceptions.CustomError
	assert.False(t, errors.As(err, &customErr))
}

func TestNutritionUsecase_AnalyzeImage(t *testing.T) {
	f := newUsecaseFixture()
	f.llm.content = imageAnalysisContent
	f.patientInfo.info = &responses.PatientInfo{AllergyData: []string{"Peanuts", "milk"}}

	response, err := f.usecase.AnalyzeImage(context.Background(), &requests.AnalyzeImage{
		PatientID: "patient-1",
		Allergies: []string{"Milk"},
		Diabetes:  requests.DiabetesParameters{InsulinType: "short"},
		Image:     pngImage,
	})
	require.NoError(t, err)

	assert.Equal(t, 520.0, response.Analysis.NutritionalBreakdown.Calories)
	assert.Equal(t, "grilled chicken", response.Analysis.IdentifiedItems[0].Name)
	assert.True(t, strings.HasPrefix(response.ImageObjectName, "meal-images/2024/06/15/"))
	assert.True(t, strings.HasSuffix(response.ImageObjectName, ".png"))
	assert.Equal(t, "meals", f.storage.bucketName)

	sent := f.llm.requests[0]
	systemPrompt := sent.Messages[0].Content.(string)
	assert.Contains(t, systemPrompt, "Patient has allergies to: Milk, Peanuts\n")
	assert.Contains(t, systemPrompt, "for short insulin")
	assert.Equal(t, ImageAnalysisSchemaName, sent.ResponseFormat.JSONSchema.Name)

	parts, ok := sent.Messages[1].Content.([]requests.ChatContentPart)
	require.True(t, ok)
	require.Len(t, parts, 2)
	assert.Equal(t, requests.ChatContentTypeText, parts[0].Type)
	assert.Equal(t, requests.ChatContentTypeImageURL, parts[1].Type)
	assert.True(t, strings.HasPrefix(parts[1].ImageURL.URL, "data:image/png;base64,iVBORw0KGgo"))

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, constvars.EventTypeMealImageAnalyzed, f.publisher.events[0].Type)
	assert.Equal(t, response.ImageObjectName, f.publisher.events[0].Attributes["imageObjectName"])
}

func TestNutritionUsecase_AnalyzeImage_SystemPromptOverride(t *testing.T) {
	f := newUsecaseFixture()
	f.llm.content = imageAnalysisContent
	f.usecase.Storage = nil
	f.usecase.EventPublisher = nil

	response, err := f.usecase.AnalyzeImage(context.Background(), &requests.AnalyzeImage{
		PatientID:    "patient-1",
		Image:        jpegImage,
		SystemPrompt: "custom prompt",
	})
	require.NoError(t, err)

	assert.Empty(t, response.ImageObjectName)
	assert.Equal(t, 0, f.patientInfo.calls)
	assert.Equal(t, "custom prompt", f.llm.requests[0].Messages[0].Content)
	parts := f.llm.requests[0].Messages[1].Content.([]requests.ChatContentPart)
	assert.True(t, strings.HasPrefix(parts[1].ImageURL.URL, "data:image/jpeg;base64,"))
}

func TestNutritionUsecase_AnalyzeImage_ArchiveFailureIsIgnored(t *testing.T) {
	f := newUsecaseFixture()
	f.llm.content = imageAnalysisContent
	f.storage.err = errors.New("minio down")
	f.publisher.err = errors.New("rabbitmq down")

	response, err := f.usecase.AnalyzeImage(context.Background(), &requests.AnalyzeImage{Image: pngImage})
	require.NoError(t, err)

	assert.Empty(t, response.ImageObjectName)
	assert.NotNil(t, response.Analysis)
}

func TestNutritionUsecase_AnalyzeImage_Errors(t *testing.T) {
	oversized := append(append([]byte{}, pngImage...), bytes.Repeat([]byte{0}, 1<<20)...)

	tests := []struct {
		name       string
		request    *requests.AnalyzeImage
		content    string
		llmErr     error
		statusCode int
	}{
		{
			name:       "missing image",
			request:    &requests.AnalyzeImage{},
			statusCode: constvars.StatusBadRequest,
		},
		{
			name:       "unsupported format",
			request:    &requests.AnalyzeImage{Image: []byte("GIF89a this is not allowed")},
			statusCode: constvars.StatusUnsupportedMediaType,
		},
		{
			name:       "too large",
			request:    &requests.AnalyzeImage{Image: oversized},
			statusCode: constvars.StatusRequestEntityTooLarge,
		},
		{
			name:       "invalid insulin type",
			request:    &requests.AnalyzeImage{Image: pngImage, Diabetes: requests.DiabetesParameters{InsulinType: "weekly"}},
			statusCode: constvars.StatusBadRequest,
		},
		{
			name:       "llm failure",
			request:    &requests.AnalyzeImage{Image: pngImage},
			llmErr:     errors.New("connection reset"),
			statusCode: constvars.StatusBadGateway,
		},
		{
			name:       "malformed content",
			request:    &requests.AnalyzeImage{Image: pngImage},
			content:    `{"nutritionalBreakdown": "lots"}`,
			statusCode: constvars.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUsecaseFixture()
			f.llm.content = tt.content
			f.llm.err = tt.llmErr

			response, err := f.usecase.AnalyzeImage(context.Background(), tt.request)

			assert.Nil(t, response)
			requireCustomError(t, err, tt.statusCode)
			assert.Empty(t, f.storage.objectNames)
		})
	}
}

func TestNutritionUsecase_CalculateBodyMetrics(t *testing.T) {
	tests := []struct {
		name        string
		request     *requests.BodyMetrics
		bmi         *float64
		category    string
		bodyFat     *float64
		errorStatus int
	}{
		{
			name:     "bmi only",
			request:  &requests.BodyMetrics{Weight: floatPtr(80), Height: floatPtr(180)},
			bmi:      floatPtr(24.7),
			category: "normal",
		},
		{
			name:     "male body fat",
			request:  &requests.BodyMetrics{Gender: "male", Weight: floatPtr(90), Height: floatPtr(180), Waist: floatPtr(90), Neck: floatPtr(40)},
			bmi:      floatPtr(27.8),
			category: "overweight",
			bodyFat:  floatPtr(18.4),
		},
		{
			name:        "female without hip",
			request:     &requests.BodyMetrics{Gender: "female", Height: floatPtr(165), Waist: floatPtr(75), Neck: floatPtr(33)},
			errorStatus: constvars.StatusBadRequest,
		},
		{
			name:        "missing height",
			request:     &requests.BodyMetrics{Weight: floatPtr(80)},
			errorStatus: constvars.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUsecaseFixture()

			response, err := f.usecase.CalculateBodyMetrics(context.Background(), tt.request)

			if tt.errorStatus != 0 {
				requireCustomError(t, err, tt.errorStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bmi, response.BMI)
			assert.Equal(t, tt.category, response.BMICategory)
			assert.Equal(t, tt.bodyFat, response.BodyFat)
		})
	}
}
