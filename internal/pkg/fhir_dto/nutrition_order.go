package fhir_dto

import "encoding/json"

// NutritionOrder keeps the order components as raw JSON; they are passed to
// the prompt verbatim. OrderType, Diet, ScheduledTime, IntakeType and
// PatientInstruction are portal extensions on top of R4.
type NutritionOrder struct {
	ResourceType       string           `json:"resourceType"`
	ID                 string           `json:"id,omitempty"`
	Status             string           `json:"status"`
	Intent             string           `json:"intent,omitempty"`
	Patient            Reference        `json:"patient"`
	DateTime           string           `json:"dateTime,omitempty"`
	OrderType          *CodeableConcept `json:"orderType,omitempty"`
	Diet               *CodeableConcept `json:"diet,omitempty"`
	Instruction        string           `json:"instruction,omitempty"`
	OralDiet           json.RawMessage  `json:"oralDiet,omitempty"`
	Supplement         json.RawMessage  `json:"supplement,omitempty"`
	EnteralFormula     json.RawMessage  `json:"enteralFormula,omitempty"`
	ScheduledTime      json.RawMessage  `json:"scheduledTime,omitempty"`
	IntakeType         json.RawMessage  `json:"intakeType,omitempty"`
	PatientInstruction string           `json:"patientInstruction,omitempty"`
}
