package conditions

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
	conditionFhirClientInstance contracts.ConditionFhirClient
	onceConditionFhirClient     sync.Once
)

type conditionFhirClient struct {
	BaseUrl  string
	Searcher contracts.FhirSearcher
	Log      *zap.Logger
}

func NewConditionFhirClient(baseUrl string, searcher contracts.FhirSearcher, logger *zap.Logger) contracts.ConditionFhirClient {
	onceConditionFhirClient.Do(func() {
		client := &conditionFhirClient{
			BaseUrl:  baseUrl,
			Searcher: searcher,
			Log:      logger,
		}
		conditionFhirClientInstance = client
	})
	return conditionFhirClientInstance
}

func (c *conditionFhirClient) FindConditionsBySubject(ctx context.Context, patientID string) ([]fhir_dto.Condition, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("conditionFhirClient.FindConditionsBySubject called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	searchURL := bundle.SearchURL(c.BaseUrl, constvars.ResourceCondition, "subject", patientID, constvars.FhirSearchCount)
	resources, err := c.Searcher.Search(ctx, constvars.ResourceCondition, searchURL)
	if err != nil {
		return nil, err
	}

	results, err := bundle.Decode[fhir_dto.Condition](resources, constvars.ResourceCondition)
	if err != nil {
		c.Log.Error("conditionFhirClient.FindConditionsBySubject error decoding resources",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("conditionFhirClient.FindConditionsBySubject succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(results)),
	)
	return results, nil
}
