package constvars

const (
	ResourcePatient            = "Patient"
	ResourceObservation        = "Observation"
	ResourceCondition          = "Condition"
	ResourceAllergyIntolerance = "AllergyIntolerance"
	ResourceMedicationRequest  = "MedicationRequest"
	ResourceNutritionOrder     = "NutritionOrder"
	ResourceBundle             = "Bundle"
	ResourceOperationOutcome   = "OperationOutcome"
)

const (
	FhirSearchCount      = 1000
	FhirLinkRelationNext = "next"
)

const (
	FhirCodeSystemICD10Prefix = "http://hl7.org/fhir/sid/icd-10"
	FhirCodeSystemSNOMED      = "http://snomed.info/sct"
)

const (
	FhirConditionClinicalStatusActive     = "active"
	FhirConditionClinicalStatusRecurrence = "recurrence"
	FhirMedicationRequestStatusActive     = "active"
	FhirNutritionOrderStatusActive        = "active"
	FhirAllergyCategoryFood               = "food"
)

const (
	FhirGenderMale   = "male"
	FhirGenderFemale = "female"
)
