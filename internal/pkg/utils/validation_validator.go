package utils

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var fhirIDPattern = regexp.MustCompile(`^[A-Za-z0-9\-.]{1,64}$`)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonTagName)
	validate.RegisterValidation("diet_pace", validateDietPace)
	validate.RegisterValidation("meal_type", validateMealType)
	validate.RegisterValidation("diabetes_type", validateDiabetesType)
	validate.RegisterValidation("insulin_type", validateInsulinType)
	validate.RegisterValidation("fhir_id", validateFhirID)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// jsonTagName reports fields by their json name so messages match the payload.
func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

func validateDietPace(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "slow", "medium", "fast":
		return true
	}
	return false
}

func validateMealType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Breakfast", "Lunch", "Dinner", "Brunch", "Snack", "Supper":
		return true
	}
	return false
}

func validateDiabetesType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "1" || value == "2"
}

func validateInsulinType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "short", "ultrashort", "basal":
		return true
	}
	return false
}

func validateFhirID(fl validator.FieldLevel) bool {
	return fhirIDPattern.MatchString(fl.Field().String())
}
