package utils

import (
	"errors"
	"math"
	"nutrisha-service/internal/pkg/constvars"
	"nutrisha-service/internal/pkg/exceptions"
	"time"
)

const (
	BMICategoryUnderweight = "underweight"
	BMICategoryNormal      = "normal"
	BMICategoryOverweight  = "overweight"
	BMICategoryObese       = "obese"
)

const birthDateLayout = "2006-01-02"

var errNonPositiveLogArgument = errors.New("circumference difference must be positive")

// CalculateBMI returns weight/(height in m)^2 rounded to one decimal.
func CalculateBMI(weightKg, heightCm float64) (float64, bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, false
	}
	heightM := heightCm / 100
	return RoundToOneDecimal(weightKg / (heightM * heightM)), true
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMICategoryUnderweight
	case bmi < 25:
		return BMICategoryNormal
	case bmi < 30:
		return BMICategoryOverweight
	default:
		return BMICategoryObese
	}
}

// CalculateNavyBodyFat applies the US Navy circumference method. hipCm is
// only used for females.
func CalculateNavyBodyFat(gender string, heightCm, waistCm, neckCm, hipCm float64) (float64, error) {
	if heightCm <= 0 || waistCm <= 0 || neckCm <= 0 {
		return 0, exceptions.ErrBodyFatMissingMeasurements(nil)
	}

	var density float64
	switch gender {
	case constvars.FhirGenderMale:
		if waistCm-neckCm <= 0 {
			return 0, exceptions.ErrBodyFatMissingMeasurements(errNonPositiveLogArgument)
		}
		density = 1.0324 - 0.19077*math.Log10(waistCm-neckCm) + 0.15456*math.Log10(heightCm)
	case constvars.FhirGenderFemale:
		if hipCm <= 0 {
			return 0, exceptions.ErrBodyFatMissingMeasurements(nil)
		}
		if waistCm+hipCm-neckCm <= 0 {
			return 0, exceptions.ErrBodyFatMissingMeasurements(errNonPositiveLogArgument)
		}
		density = 1.29579 - 0.35004*math.Log10(waistCm+hipCm-neckCm) + 0.22100*math.Log10(heightCm)
	default:
		return 0, exceptions.ErrBodyFatUnsupportedGender(nil, gender)
	}

	return RoundToOneDecimal(495/density - 450), nil
}

// CalculateAge returns whole years between a YYYY-MM-DD birth date and now.
func CalculateAge(birthDate string, now time.Time) (int, bool) {
	if birthDate == "" {
		return 0, false
	}

	dob, err := time.Parse(birthDateLayout, birthDate)
	if err != nil {
		// FHIR allows partial dates (YYYY or YYYY-MM).
		dob, err = parsePartialDate(birthDate)
		if err != nil {
			return 0, false
		}
	}

	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, true
}

func parsePartialDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01", value); err == nil {
		return t, nil
	}
	return time.Parse("2006", value)
}

func RoundToOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10
}
