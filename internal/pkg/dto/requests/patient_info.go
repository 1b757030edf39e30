package requests

type GetPatientInfo struct {
	PatientID string `json:"patientId" validate:"required,fhir_id"`
	Refresh   bool   `json:"refresh"`
}
