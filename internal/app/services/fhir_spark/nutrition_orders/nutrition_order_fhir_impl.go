package nutrition_orders

import (
	"context"
	"nutrisha-service/internal/app/contracts"
	"nutrisha-service/internal/app/services/fhir_spark/bundle"
	"nutrisha-service/internal/pkg/constvars"
	"nutrisha-service/internal/pkg/fhir_dto"
	"nutrisha-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

var (
	nutritionOrderFhirClientInstance contracts.NutritionOrderFhirClient
	onceNutritionOrderFhirClient     sync.Once
)

type nutritionOrderFhirClient struct {
	BaseUrl  string
	Searcher contracts.FhirSearcher
	Log      *zap.Logger
}

func NewNutritionOrderFhirClient(baseUrl string, searcher contracts.FhirSearcher, logger *zap.Logger) contracts.NutritionOrderFhirClient {
	onceNutritionOrderFhirClient.Do(func() {
		client := &nutritionOrderFhirClient{
			BaseUrl:  baseUrl,
			Searcher: searcher,
			Log:      logger,
		}
		nutritionOrderFhirClientInstance = client
	})
	return nutritionOrderFhirClientInstance
}

func (c *nutritionOrderFhirClient) FindNutritionOrdersByPatient(ctx context.Context, patientID string) ([]fhir_dto.NutritionOrder, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("nutritionOrderFhirClient.FindNutritionOrdersByPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	searchURL := bundle.SearchURL(c.BaseUrl, constvars.ResourceNutritionOrder, "patient", patientID, 0)
	resources, err := c.Searcher.Search(ctx, constvars.ResourceNutritionOrder, searchURL)
	if err != nil {
		return nil, err
	}

	results, err := bundle.Decode[fhir_dto.NutritionOrder](resources, constvars.ResourceNutritionOrder)
	if err != nil {
		c.Log.Error("nutritionOrderFhirClient.FindNutritionOrdersByPatient error decoding resources",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("nutritionOrderFhirClient.FindNutritionOrdersByPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(results)),
	)
	return results, nil
}
