package patient_info

import (
	"encoding/json"
	"nutrisha-service/internal/pkg/dto/responses"
	"nutrisha-service/internal/pkg/fhir_dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mapperNow = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func quantity(value float64, unit string) *fhir_dto.Quantity {
	return &fhir_dto.Quantity{Value: &value, Unit: unit}
}

func loinc(code string) fhir_dto.CodeableConcept {
	return fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{System: "http://loinc.org", Code: code}}}
}

func TestMapPatientInfo_PatientData(t *testing.T) {
	t.Run("Full Patient", func(t *testing.T) {
		patient := &fhir_dto.Patient{
			Name:      []fhir_dto.HumanName{{Given: []string{"Anna", "Maria"}, Family: "Kowalska"}},
			Gender:    "female",
			BirthDate: "1990-06-16",
		}

		info := MapPatientInfo(mapperNow, patient, nil, nil, nil, nil, nil)
		require.NotNil(t, info.PatientData)
		assert.Equal(t, "Anna Maria", *info.PatientData.FirstName)
		assert.Equal(t, "Kowalska", *info.PatientData.LastName)
		assert.Equal(t, "Anna Maria Kowalska", *info.PatientData.FullName)
		assert.Equal(t, 33, *info.PatientData.Age)
		assert.Equal(t, "female", *info.PatientData.Gender)
	})

	t.Run("Missing Fields Are Nil", func(t *testing.T) {
		info := MapPatientInfo(mapperNow, &fhir_dto.Patient{Name: []fhir_dto.HumanName{{Family: "Nowak"}}}, nil, nil, nil, nil, nil)
		assert.Nil(t, info.PatientData.FirstName)
		assert.Equal(t, "Nowak", *info.PatientData.FullName)
		assert.Nil(t, info.PatientData.Age)
		assert.Nil(t, info.PatientData.BirthDate)
		assert.Nil(t, info.PatientData.Gender)
	})

	t.Run("Empty Sections Are Null In JSON", func(t *testing.T) {
		info := MapPatientInfo(mapperNow, &fhir_dto.Patient{}, nil, nil, nil, nil, nil)
		payload, err := json.Marshal(info)
		require.NoError(t, err)
		assert.Contains(t, string(payload), `"measureData":null`)
		assert.Contains(t, string(payload), `"allergyData":null`)
		assert.Contains(t, string(payload), `"dietData":null`)
	})
}

func TestMapPatientInfo_MeasureData(t *testing.T) {
	text := "not pregnant"
	yes := true
	observations := []fhir_dto.Observation{
		{Code: loinc("29463-7"), EffectiveDateTime: "2024-01-01", ValueQuantity: quantity(80, "kg")},
		{Code: loinc("29463-7"), EffectiveDateTime: "2024-03-01", ValueQuantity: quantity(78.5, "kg")},
		{Code: loinc("29463-7"), ValueQuantity: quantity(90, "kg")},
		{Code: loinc("8302-2"), ValueQuantity: quantity(170, "cm")},
		{Code: loinc("8302-2"), ValueQuantity: quantity(171, "cm")},
		{Code: loinc("4548-4"), Issued: "2024-02-01T10:00:00Z", ValueQuantity: quantity(6.1, "%")},
		{Code: loinc("82810-3"), ValueString: &text},
		{Code: loinc("24843006"), ValueBoolean: &yes},
		{Code: loinc("1558-6"), ValueCodeableConcept: &fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{Display: "elevated"}}}},
		{Code: loinc("99999-9"), ValueQuantity: quantity(1, "x")},
	}

	measures := MapPatientInfo(mapperNow, nil, observations, nil, nil, nil, nil).MeasureData
	require.Len(t, measures, 28)
	assert.Equal(t, "78.5 kg", measures.Value(responses.MeasureWeight))
	assert.Equal(t, "170 cm", measures.Value(responses.MeasureHeight))
	assert.Equal(t, "6.1 %", measures.Value(responses.MeasureHbA1c))
	assert.Equal(t, "not pregnant", measures.Value(responses.MeasurePregnancyStatus))
	assert.Equal(t, "true", measures.Value(responses.MeasureSwallowingStatus))
	assert.Equal(t, "elevated", measures.Value(responses.MeasureFastingGlucose))
	assert.Nil(t, measures[responses.MeasureLDL])
}

func TestMapPatientInfo_MeasureData_DatedReplacesUndated(t *testing.T) {
	observations := []fhir_dto.Observation{
		{Code: loinc("29463-7"), ValueQuantity: quantity(90, "kg")},
		{Code: loinc("29463-7"), EffectiveDateTime: "2023-06-01", ValueQuantity: quantity(82, "kg")},
	}

	measures := MapPatientInfo(mapperNow, nil, observations, nil, nil, nil, nil).MeasureData
	assert.Equal(t, "82 kg", measures.Value(responses.MeasureWeight))
}

func TestMapPatientInfo_Allergies(t *testing.T) {
	allergies := []fhir_dto.AllergyIntolerance{
		{Category: []string{"food"}, Code: &fhir_dto.CodeableConcept{Text: "Peanuts"}},
		{Category: []string{"medication"}, Code: &fhir_dto.CodeableConcept{Text: "Penicillin"}},
		{Category: []string{"food"}, Code: &fhir_dto.CodeableConcept{Text: ""}},
		{Category: []string{"environment", "food"}, Code: &fhir_dto.CodeableConcept{Text: "Shellfish"}},
	}

	info := MapPatientInfo(mapperNow, nil, nil, allergies, nil, nil, nil)
	assert.Equal(t, []string{"Peanuts", "Shellfish"}, info.AllergyData)
}

func TestMapPatientInfo_Medications(t *testing.T) {
	medications := []fhir_dto.MedicationRequest{
		{Status: "ACTIVE", MedicationCodeableConcept: &fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{Code: "860975", Display: "Metformin 500 MG"}}}},
		{Status: "active", MedicationCodeableConcept: &fhir_dto.CodeableConcept{Text: "Insulin glargine"}},
		{Status: "stopped", MedicationCodeableConcept: &fhir_dto.CodeableConcept{Text: "Aspirin"}},
	}

	info := MapPatientInfo(mapperNow, nil, nil, nil, medications, nil, nil)
	require.Len(t, info.MedicationData, 2)
	assert.Equal(t, "860975", *info.MedicationData[0].Code)
	assert.Equal(t, "Metformin 500 MG", *info.MedicationData[0].Name)
	assert.Nil(t, info.MedicationData[1].Code)
	assert.Equal(t, "Insulin glargine", *info.MedicationData[1].Name)
}

func TestMapPatientInfo_Conditions(t *testing.T) {
	active := &fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{Code: "active"}}}
	recurrence := &fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{Code: "recurrence"}}}
	resolved := &fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{Code: "resolved"}}}

	conditions := []fhir_dto.Condition{
		{ClinicalStatus: active, Code: &fhir_dto.CodeableConcept{Text: "Type 2 diabetes", Coding: []fhir_dto.Coding{{System: "http://hl7.org/fhir/sid/icd-10-cm", Code: "E11.9"}}}},
		{ClinicalStatus: recurrence, Code: &fhir_dto.CodeableConcept{Text: "Gout", Coding: []fhir_dto.Coding{{System: "http://snomed.info/sct", Code: "90560007"}}}},
		{ClinicalStatus: resolved, Code: &fhir_dto.CodeableConcept{Text: "Obesity", Coding: []fhir_dto.Coding{{System: "http://snomed.info/sct", Code: "238136002"}}}},
		{ClinicalStatus: active, Code: &fhir_dto.CodeableConcept{Text: "Sprained ankle", Coding: []fhir_dto.Coding{{System: "http://hl7.org/fhir/sid/icd-10", Code: "S93.4"}}}},
		{ClinicalStatus: active, Code: &fhir_dto.CodeableConcept{Text: "Unknown system", Coding: []fhir_dto.Coding{{System: "http://example.org", Code: "E11"}}}},
	}

	info := MapPatientInfo(mapperNow, nil, nil, nil, nil, conditions, nil)
	assert.Equal(t, []responses.PatientCondition{
		{Code: "E11.9", Name: "Type 2 diabetes", Status: "active"},
		{Code: "90560007", Name: "Gout", Status: "recurrence"},
	}, info.ConditionData)
}

func TestMapPatientInfo_DietOrders(t *testing.T) {
	orders := []fhir_dto.NutritionOrder{
		{
			Status:      "active",
			DateTime:    "2024-05-01T08:00:00Z",
			OrderType:   &fhir_dto.CodeableConcept{Text: "Therapeutic"},
			Diet:        &fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{Display: "Diabetic diet"}}},
			Instruction: "Limit simple sugars",
			OralDiet:    json.RawMessage(`{"type":[{"text":"Low carb"}]}`),
		},
		{Status: "completed", Instruction: "old"},
	}

	info := MapPatientInfo(mapperNow, nil, nil, nil, nil, nil, orders)
	require.Len(t, info.DietData, 1)
	order := info.DietData[0]
	assert.Equal(t, "Therapeutic", *order.OrderType)
	assert.Equal(t, "Diabetic diet", *order.DietName)
	assert.Equal(t, "Limit simple sugars", *order.DietInstruction)
	assert.JSONEq(t, `{"type":[{"text":"Low carb"}]}`, string(order.OralDiet))
	assert.Nil(t, order.Supplement)
	assert.Nil(t, order.PatientInstruction)
}
