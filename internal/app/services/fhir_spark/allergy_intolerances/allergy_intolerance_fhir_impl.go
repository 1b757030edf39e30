package allergy_intolerances

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
	allergyIntoleranceFhirClientInstance contracts.AllergyIntoleranceFhirClient
	onceAllergyIntoleranceFhirClient     sync.Once
)

type allergyIntoleranceFhirClient struct {
	BaseUrl  string
	Searcher contracts.FhirSearcher
	Log      *zap.Logger
}

func NewAllergyIntoleranceFhirClient(baseUrl string, searcher contracts.FhirSearcher, logger *zap.Logger) contracts.AllergyIntoleranceFhirClient {
	onceAllergyIntoleranceFhirClient.Do(func() {
		client := &allergyIntoleranceFhirClient{
			BaseUrl:  baseUrl,
			Searcher: searcher,
			Log:      logger,
		}
		allergyIntoleranceFhirClientInstance = client
	})
	return allergyIntoleranceFhirClientInstance
}

func (c *allergyIntoleranceFhirClient) FindAllergyIntolerancesByPatient(ctx context.Context, patientID string) ([]fhir_dto.AllergyIntolerance, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("allergyIntoleranceFhirClient.FindAllergyIntolerancesByPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	searchURL := bundle.SearchURL(c.BaseUrl, constvars.ResourceAllergyIntolerance, "patient", patientID, constvars.FhirSearchCount)
	resources, err := c.Searcher.Search(ctx, constvars.ResourceAllergyIntolerance, searchURL)
	if err != nil {
		return nil, err
	}

	results, err := bundle.Decode[fhir_dto.AllergyIntolerance](resources, constvars.ResourceAllergyIntolerance)
	if err != nil {
		c.Log.Error("allergyIntoleranceFhirClient.FindAllergyIntolerancesByPatient error decoding resources",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("allergyIntoleranceFhirClient.FindAllergyIntolerancesByPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(results)),
	)
	return results, nil
}
