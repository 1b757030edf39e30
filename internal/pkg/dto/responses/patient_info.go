package responses

import "encoding/json"

type PatientInfo struct {
	PatientData    *PatientData       `json:"patientData"`
	MeasureData    MeasureData        `json:"measureData"`
	AllergyData    []string           `json:"allergyData"`
	MedicationData []PatientMedication `json:"medicationData"`
	ConditionData  []PatientCondition `json:"conditionData"`
	DietData       []PatientDietOrder `json:"dietData"`
}

type PatientData struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	FullName  *string `json:"fullName"`
	BirthDate *string `json:"birthDate"`
	Age       *int    `json:"age"`
	Gender    *string `json:"gender"`
}

// MeasureData maps a measure key (see the Measure* constants) to the latest
// observed value, or nil when the patient has no observation for it.
type MeasureData map[string]*string

// Value returns the measure or an empty string.
func (m MeasureData) Value(key string) string {
	if m == nil {
		return ""
	}
	if value := m[key]; value != nil {
		return *value
	}
	return ""
}

const (
	MeasureWeight           = "weight"
	MeasureHeight           = "height"
	MeasureBMI              = "bmi"
	MeasureSystolicBP       = "systolicBP"
	MeasureDiastolicBP      = "diastolicBP"
	MeasureFastingGlucose   = "fastingGlucose"
	MeasureHbA1c            = "hbA1c"
	MeasureLDL              = "ldl"
	MeasureHDL              = "hdl"
	MeasureTriglycerides    = "triglycerides"
	MeasureCreatinine       = "creatinine"
	MeasureBUN              = "bun"
	MeasureEGFR             = "egfr"
	MeasureSodium           = "sodium"
	MeasurePotassium        = "potassium"
	MeasureALT              = "alt"
	MeasureAST              = "ast"
	MeasureAlbumin          = "albumin"
	MeasurePrealbumin       = "prealbumin"
	MeasureINR              = "inr"
	MeasureVitaminD         = "vitaminD"
	MeasureVitaminB12       = "vitaminB12"
	MeasureIronStudies      = "ironStudies"
	MeasurePregnancyStatus  = "pregnancyStatus"
	MeasureSwallowingStatus = "swallowingStatus"
	MeasureFluidIntake      = "fluidIntake"
	MeasureUrineOutput      = "urineOutput"
	MeasureREE              = "ree"
)

type PatientMedication struct {
	Code *string `json:"code"`
	Name *string `json:"name"`
}

type PatientCondition struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type PatientDietOrder struct {
	OrderType          *string         `json:"orderType"`
	DietName           *string         `json:"dietName"`
	DietInstruction    *string         `json:"dietInstruction"`
	DateTime           *string         `json:"dateTime"`
	OralDiet           json.RawMessage `json:"oralDiet"`
	Supplement         json.RawMessage `json:"supplement"`
	EnteralFormula     json.RawMessage `json:"enteralFormula"`
	ScheduledTime      json.RawMessage `json:"scheduledTime"`
	IntakeType         json.RawMessage `json:"intakeType"`
	PatientInstruction *string         `json:"patientInstruction"`
}
