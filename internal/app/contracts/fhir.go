package contracts

import (
	"context"
	"encoding/json"
	"nutrisha-service/internal/pkg/fhir_dto"
)

// FhirSearcher performs the raw HTTP exchange with the FHIR server.
type FhirSearcher interface {
	// Search follows the bundle's next links and returns every entry of resourceType.
	Search(ctx context.Context, resourceType, searchURL string) ([]json.RawMessage, error)
	Read(ctx context.Context, resourceType, resourceURL string, out interface{}) error
}

type PatientFhirClient interface {
	FindPatientByID(ctx context.Context, patientID string) (*fhir_dto.Patient, error)
}

type ObservationFhirClient interface {
	FindObservationsBySubject(ctx context.Context, patientID string) ([]fhir_dto.Observation, error)
}

type AllergyIntoleranceFhirClient interface {
	FindAllergyIntolerancesByPatient(ctx context.Context, patientID string) ([]fhir_dto.AllergyIntolerance, error)
}

type MedicationRequestFhirClient interface {
	FindMedicationRequestsBySubject(ctx context.Context, patientID string) ([]fhir_dto.MedicationRequest, error)
}

type ConditionFhirClient interface {
	FindConditionsBySubject(ctx context.Context, patientID string) ([]fhir_dto.Condition, error)
}

type NutritionOrderFhirClient interface {
	FindNutritionOrdersByPatient(ctx context.Context, patientID string) ([]fhir_dto.NutritionOrder, error)
}
