package utils

import (
	"nutrisha-service/internal/pkg/dto/requests"
	"nutrisha-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {
	t.Run("Valid Diet Request", func(t *testing.T) {
		request := requests.GenerateDiet{
			PatientID:     "pat-123",
			DietPace:      "fast",
			MealQuantity:  3,
			SelectedMeals: []string{"Breakfast", "Dinner"},
		}
		assert.NoError(t, ValidateStruct(request))
	})

	t.Run("Invalid Meal Type Reports Json Name", func(t *testing.T) {
		request := requests.GenerateDiet{SelectedMeals: []string{"Elevenses"}}
		err := ValidateStruct(request)
		assert.Error(t, err)
		assert.Contains(t, exceptions.FormatFirstValidationError(err), "selectedMeals")
	})

	t.Run("Invalid Diet Pace", func(t *testing.T) {
		err := ValidateStruct(requests.GenerateDiet{DietPace: "rapid"})
		assert.Error(t, err)
		assert.Equal(t, "dietPace must be one of [slow, medium, fast]", exceptions.FormatFirstValidationError(err))
	})

	t.Run("Invalid Patient ID", func(t *testing.T) {
		err := ValidateStruct(requests.GetPatientInfo{PatientID: "../Patient"})
		assert.Error(t, err)
	})

	t.Run("Diabetes Parameters", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(requests.DiabetesParameters{DiabetesType: "2", TargetGlucose: "5.5", InsulinType: "basal"}))
		assert.Error(t, ValidateStruct(requests.DiabetesParameters{DiabetesType: "3"}))
		assert.Error(t, ValidateStruct(requests.DiabetesParameters{CurrentGlucose: "high"}))
	})
}
