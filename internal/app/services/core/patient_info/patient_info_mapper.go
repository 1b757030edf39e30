package patient_info

import (
	"encoding/json"
	"nutrisha-service/internal/pkg/constvars"
	"nutrisha-service/internal/pkg/dto/responses"
	"nutrisha-service/internal/pkg/fhir_dto"
	"nutrisha-service/internal/pkg/utils"
	"strconv"
	"strings"
	"time"
)

type measureCode struct {
	Code string
	Key  string
}

// measureCodes is ordered the way the prompt groups the measures.
var measureCodes = []measureCode{
	// body
	{Code: "29463-7", Key: responses.MeasureWeight},
	{Code: "8302-2", Key: responses.MeasureHeight},
	{Code: "39156-5", Key: responses.MeasureBMI},
	// vital signs
	{Code: "8480-6", Key: responses.MeasureSystolicBP},
	{Code: "8462-4", Key: responses.MeasureDiastolicBP},
	// diabetes
	{Code: "1558-6", Key: responses.MeasureFastingGlucose},
	{Code: "4548-4", Key: responses.MeasureHbA1c},
	// lipids
	{Code: "18262-6", Key: responses.MeasureLDL},
	{Code: "2085-9", Key: responses.MeasureHDL},
	{Code: "2571-8", Key: responses.MeasureTriglycerides},
	// kidney
	{Code: "2160-0", Key: responses.MeasureCreatinine},
	{Code: "12966-8", Key: responses.MeasureBUN},
	{Code: "33914-3", Key: responses.MeasureEGFR},
	// electrolytes
	{Code: "2947-0", Key: responses.MeasureSodium},
	{Code: "6298-4", Key: responses.MeasurePotassium},
	// liver
	{Code: "1742-6", Key: responses.MeasureALT},
	{Code: "14409-7", Key: responses.MeasureAST},
	// nutritional status
	{Code: "1751-7", Key: responses.MeasureAlbumin},
	{Code: "1668-4", Key: responses.MeasurePrealbumin},
	{Code: "34714-6", Key: responses.MeasureINR},
	// nutritional markers
	{Code: "62238-1", Key: responses.MeasureVitaminD},
	{Code: "2132-9", Key: responses.MeasureVitaminB12},
	{Code: "2498-4", Key: responses.MeasureIronStudies},
	// special considerations
	{Code: "82810-3", Key: responses.MeasurePregnancyStatus},
	{Code: "24843006", Key: responses.MeasureSwallowingStatus},
	{Code: "62715-8", Key: responses.MeasureFluidIntake},
	{Code: "8281-5", Key: responses.MeasureUrineOutput},
	{Code: "80498-0", Key: responses.MeasureREE},
}

var measureKeyByCode = func() map[string]string {
	keys := make(map[string]string, len(measureCodes))
	for _, measure := range measureCodes {
		keys[measure.Code] = measure.Key
	}
	return keys
}()

var icd10Prefixes = toSet(
	"E10", "E11", "O24", "E66", "E03", "E04", "E70", "E74", "M10", "M80", "M81",
	"I10", "I11", "I50", "E78",
	"N18", "N19",
	"K90", "K50", "K51", "K58", "K21", "K74", "K76",
	"R13", "R64", "B20", "A05", "F50", "E73",
)

var snomedCodes = toSet(
	"46635009", "44054006", "237599001", "238136002", "162864005", "40930008", "80394007",
	"190687004", "190745006", "90560007", "64859006",
	"38341003", "84114007", "55822004",
	"723190009", "46177005",
	"396331005", "34000006", "64766004", "52702003", "235595009", "19943007", "50325005",
	"40739000", "240128005", "86406008", "87628006", "72366004", "25744000",
)

func toSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

// MapPatientInfo flattens the patient's FHIR resources into the nutrition
// summary. Sections with nothing to report are left nil.
func MapPatientInfo(
	now time.Time,
	patient *fhir_dto.Patient,
	observations []fhir_dto.Observation,
	allergies []fhir_dto.AllergyIntolerance,
	medications []fhir_dto.MedicationRequest,
	conditions []fhir_dto.Condition,
	nutritionOrders []fhir_dto.NutritionOrder,
) *responses.PatientInfo {
	return &responses.PatientInfo{
		PatientData:    mapPatientData(now, patient),
		MeasureData:    mapMeasureData(observations),
		AllergyData:    mapAllergyData(allergies),
		MedicationData: mapMedicationData(medications),
		ConditionData:  mapConditionData(conditions),
		DietData:       mapDietData(nutritionOrders),
	}
}

func mapPatientData(now time.Time, patient *fhir_dto.Patient) *responses.PatientData {
	if patient == nil {
		return nil
	}

	patientData := &responses.PatientData{
		BirthDate: stringOrNil(patient.BirthDate),
		Gender:    stringOrNil(patient.Gender),
	}

	if len(patient.Name) > 0 {
		name := patient.Name[0]
		patientData.FirstName = stringOrNil(strings.Join(name.Given, " "))
		patientData.LastName = stringOrNil(name.Family)
	}

	var nameParts []string
	for _, part := range []*string{patientData.FirstName, patientData.LastName} {
		if part != nil {
			nameParts = append(nameParts, *part)
		}
	}
	patientData.FullName = stringOrNil(strings.Join(nameParts, " "))

	if age, ok := utils.CalculateAge(patient.BirthDate, now); ok {
		patientData.Age = &age
	}
	return patientData
}

type latestMeasure struct {
	value *string
	date  string
}

func mapMeasureData(observations []fhir_dto.Observation) responses.MeasureData {
	if len(observations) == 0 {
		return nil
	}

	latest := make(map[string]latestMeasure)
	for _, observation := range observations {
		date := observation.EffectiveDateTime
		if date == "" {
			date = observation.Issued
		}

		for _, coding := range observation.Code.Coding {
			if _, ok := measureKeyByCode[coding.Code]; !ok {
				continue
			}
			current, exists := latest[coding.Code]
			if exists && !isNewer(date, current.date) {
				continue
			}
			latest[coding.Code] = latestMeasure{value: observationValue(observation), date: date}
		}
	}

	measureData := make(responses.MeasureData, len(measureCodes))
	for _, measure := range measureCodes {
		measureData[measure.Key] = latest[measure.Code].value
	}
	return measureData
}

// isNewer compares FHIR dateTimes lexically; a dated value beats an undated one.
func isNewer(candidate, current string) bool {
	if candidate == "" {
		return false
	}
	return current == "" || candidate > current
}

func observationValue(observation fhir_dto.Observation) *string {
	switch {
	case observation.ValueQuantity != nil:
		return stringOrNil(formatQuantity(observation.ValueQuantity))
	case observation.ValueCodeableConcept != nil:
		if observation.ValueCodeableConcept.Text != "" {
			return stringOrNil(observation.ValueCodeableConcept.Text)
		}
		return stringOrNil(observation.ValueCodeableConcept.FirstCoding().Display)
	case observation.ValueString != nil:
		return stringOrNil(*observation.ValueString)
	case observation.ValueBoolean != nil:
		value := strconv.FormatBool(*observation.ValueBoolean)
		return &value
	}
	return nil
}

func formatQuantity(quantity *fhir_dto.Quantity) string {
	var parts []string
	if quantity.Value != nil {
		parts = append(parts, strconv.FormatFloat(*quantity.Value, 'f', -1, 64))
	}
	if quantity.Unit != "" {
		parts = append(parts, quantity.Unit)
	}
	return strings.Join(parts, " ")
}

func mapAllergyData(allergies []fhir_dto.AllergyIntolerance) []string {
	var foodAllergies []string
	for _, allergy := range allergies {
		if !containsString(allergy.Category, constvars.FhirAllergyCategoryFood) {
			continue
		}
		if allergy.Code == nil || strings.TrimSpace(allergy.Code.Text) == "" {
			continue
		}
		foodAllergies = append(foodAllergies, allergy.Code.Text)
	}
	return foodAllergies
}

func mapMedicationData(medications []fhir_dto.MedicationRequest) []responses.PatientMedication {
	var medicationData []responses.PatientMedication
	for _, medication := range medications {
		if !strings.EqualFold(medication.Status, constvars.FhirMedicationRequestStatusActive) {
			continue
		}

		concept := medication.MedicationCodeableConcept
		coding := concept.FirstCoding()
		name := coding.Display
		if name == "" && concept != nil {
			name = concept.Text
		}

		medicationData = append(medicationData, responses.PatientMedication{
			Code: stringOrNil(coding.Code),
			Name: stringOrNil(name),
		})
	}
	return medicationData
}

func mapConditionData(conditions []fhir_dto.Condition) []responses.PatientCondition {
	var conditionData []responses.PatientCondition
	for _, condition := range conditions {
		clinicalStatus := condition.ClinicalStatus.FirstCoding().Code
		if clinicalStatus != constvars.FhirConditionClinicalStatusActive &&
			clinicalStatus != constvars.FhirConditionClinicalStatusRecurrence {
			continue
		}
		if condition.Code == nil || !isNutritionRelevant(condition.Code.Coding) {
			continue
		}

		conditionData = append(conditionData, responses.PatientCondition{
			Code:   condition.Code.FirstCoding().Code,
			Name:   condition.Code.Text,
			Status: clinicalStatus,
		})
	}
	return conditionData
}

func isNutritionRelevant(codings []fhir_dto.Coding) bool {
	for _, coding := range codings {
		switch {
		case strings.HasPrefix(coding.System, constvars.FhirCodeSystemICD10Prefix):
			category := strings.SplitN(coding.Code, ".", 2)[0]
			if _, ok := icd10Prefixes[category]; ok {
				return true
			}
		case coding.System == constvars.FhirCodeSystemSNOMED:
			if _, ok := snomedCodes[coding.Code]; ok {
				return true
			}
		}
	}
	return false
}

func mapDietData(nutritionOrders []fhir_dto.NutritionOrder) []responses.PatientDietOrder {
	var dietData []responses.PatientDietOrder
	for _, order := range nutritionOrders {
		if order.Status != constvars.FhirNutritionOrderStatusActive {
			continue
		}

		dietOrder := responses.PatientDietOrder{
			DietInstruction:    stringOrNil(order.Instruction),
			DateTime:           stringOrNil(order.DateTime),
			OralDiet:           rawOrNil(order.OralDiet),
			Supplement:         rawOrNil(order.Supplement),
			EnteralFormula:     rawOrNil(order.EnteralFormula),
			ScheduledTime:      rawOrNil(order.ScheduledTime),
			IntakeType:         rawOrNil(order.IntakeType),
			PatientInstruction: stringOrNil(order.PatientInstruction),
		}
		if order.OrderType != nil {
			dietOrder.OrderType = stringOrNil(order.OrderType.Text)
		}
		dietOrder.DietName = stringOrNil(order.Diet.FirstCoding().Display)

		dietData = append(dietData, dietOrder)
	}
	return dietData
}

func stringOrNil(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func rawOrNil(value json.RawMessage) json.RawMessage {
	if len(value) == 0 || string(value) == "null" {
		return nil
	}
	return value
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
