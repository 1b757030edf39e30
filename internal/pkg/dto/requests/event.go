package requests

import "time"

type NutritionEvent struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	RequestID  string                 `json:"request_id"`
	PatientID  string                 `json:"patient_id,omitempty"`
	Model      string                 `json:"model"`
	OccurredAt time.Time              `json:"occurred_at"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}
