package medication_requests

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
	medicationRequestFhirClientInstance contracts.MedicationRequestFhirClient
	onceMedicationRequestFhirClient     sync.Once
)

type medicationRequestFhirClient struct {
	BaseUrl  string
	Searcher contracts.FhirSearcher
	Log      *zap.Logger
}

func NewMedicationRequestFhirClient(baseUrl string, searcher contracts.FhirSearcher, logger *zap.Logger) contracts.MedicationRequestFhirClient {
	onceMedicationRequestFhirClient.Do(func() {
		client := &medicationRequestFhirClient{
			BaseUrl:  baseUrl,
			Searcher: searcher,
			Log:      logger,
		}
		medicationRequestFhirClientInstance = client
	})
	return medicationRequestFhirClientInstance
}

func (c *medicationRequestFhirClient) FindMedicationRequestsBySubject(ctx context.Context, patientID string) ([]fhir_dto.MedicationRequest, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("medicationRequestFhirClient.FindMedicationRequestsBySubject called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	searchURL := bundle.SearchURL(c.BaseUrl, constvars.ResourceMedicationRequest, "subject", patientID, constvars.FhirSearchCount)
	resources, err := c.Searcher.Search(ctx, constvars.ResourceMedicationRequest, searchURL)
	if err != nil {
		return nil, err
	}

	results, err := bundle.Decode[fhir_dto.MedicationRequest](resources, constvars.ResourceMedicationRequest)
	if err != nil {
		c.Log.Error("medicationRequestFhirClient.FindMedicationRequestsBySubject error decoding resources",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("medicationRequestFhirClient.FindMedicationRequestsBySubject succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(results)),
	)
	return results, nil
}
