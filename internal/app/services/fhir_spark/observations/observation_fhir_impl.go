package observations

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
	observationFhirClientInstance contracts.ObservationFhirClient
	onceObservationFhirClient     sync.Once
)

type observationFhirClient struct {
	BaseUrl  string
	Searcher contracts.FhirSearcher
	Log      *zap.Logger
}

func NewObservationFhirClient(baseUrl string, searcher contracts.FhirSearcher, logger *zap.Logger) contracts.ObservationFhirClient {
	onceObservationFhirClient.Do(func() {
		client := &observationFhirClient{
			BaseUrl:  baseUrl,
			Searcher: searcher,
			Log:      logger,
		}
		observationFhirClientInstance = client
	})
	return observationFhirClientInstance
}

func (c *observationFhirClient) FindObservationsBySubject(ctx context.Context, patientID string) ([]fhir_dto.Observation, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("observationFhirClient.FindObservationsBySubject called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	searchURL := bundle.SearchURL(c.BaseUrl, constvars.ResourceObservation, "subject", patientID, constvars.FhirSearchCount)
	resources, err := c.Searcher.Search(ctx, constvars.ResourceObservation, searchURL)
	if err != nil {
		return nil, err
	}

	results, err := bundle.Decode[fhir_dto.Observation](resources, constvars.ResourceObservation)
	if err != nil {
		c.Log.Error("observationFhirClient.FindObservationsBySubject error decoding resources",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("observationFhirClient.FindObservationsBySubject succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(results)),
	)
	return results, nil
}
