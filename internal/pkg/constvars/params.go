package constvars

const (
	URLParamPatientID = "patientID"
)

const (
	URLQueryParamRefresh = "refresh"
)

const (
	FormFieldImage              = "image"
	FormFieldPatientID          = "patientId"
	FormFieldAllergies          = "allergies"
	FormFieldSystemPrompt       = "systemPrompt"
	FormFieldDiabetesType       = "diabetesType"
	FormFieldCurrentGlucose     = "currentGlucose"
	FormFieldTargetGlucose      = "targetGlucose"
	FormFieldInsulinSensitivity = "insulinSensitivity"
	FormFieldInsulinRatio       = "insulinRatio"
	FormFieldInsulinType        = "insulinType"
	FormFieldFastingBloodSugar  = "fastingBloodSugar"
	FormFieldHemoglobinA1c      = "hemoglobinA1c"
)
