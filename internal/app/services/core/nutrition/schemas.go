package nutrition

import (
	"nutrisha-service/internal/pkg/dto/requests"
	"sort"
)

const (
	DietPlanSchemaName      = "dietPlan"
	ImageAnalysisSchemaName = "imageAnalysis"
)

func stringSchema(description string) *requests.JSONSchema {
	return &requests.JSONSchema{Type: "string", Description: description}
}

func numberSchema(description string) *requests.JSONSchema {
	return &requests.JSONSchema{Type: "number", Description: description}
}

func arraySchema(items *requests.JSONSchema) *requests.JSONSchema {
	return &requests.JSONSchema{Type: "array", Items: items}
}

// objectSchema marks every property as required and closes the object, as
// strict structured output demands.
func objectSchema(properties map[string]*requests.JSONSchema) *requests.JSONSchema {
	required := make([]string, 0, len(properties))
	for name := range properties {
		required = append(required, name)
	}
	sort.Strings(required)

	closed := false
	return &requests.JSONSchema{
		Type:                 "object",
		Properties:           properties,
		Required:             required,
		AdditionalProperties: &closed,
	}
}

func DietPlanSchema() *requests.JSONSchema {
	nutrients := objectSchema(map[string]*requests.JSONSchema{
		"carbs":         numberSchema("grams"),
		"protein":       numberSchema("grams"),
		"fat":           numberSchema("grams"),
		"fiber":         numberSchema("grams"),
		"glycemicIndex": numberSchema("0-100"),
	})

	item := objectSchema(map[string]*requests.JSONSchema{
		"food":      stringSchema(""),
		"quantity":  stringSchema("exact amount in grams or milliliters"),
		"calories":  numberSchema("kcal"),
		"nutrients": nutrients,
	})

	meal := objectSchema(map[string]*requests.JSONSchema{
		"mealType":        stringSchema("Breakfast, Lunch, Dinner, Brunch, Snack or Supper"),
		"time":            stringSchema("HH:MM, 24-hour clock"),
		"items":           arraySchema(item),
		"totalCalories":   numberSchema("kcal"),
		"carbsForInsulin": numberSchema("grams of carbohydrates relevant for insulin dosing"),
		"preparation":     stringSchema(""),
	})

	day := objectSchema(map[string]*requests.JSONSchema{
		"day": stringSchema("e.g. Day 1"),
		"daySummary": objectSchema(map[string]*requests.JSONSchema{
			"eatingWindow":  stringSchema("e.g. 08:00-20:00"),
			"mealFrequency": {Type: "integer"},
		}),
		"meals":    arraySchema(meal),
		"dayTotal": numberSchema("kcal for the whole day"),
	})

	return objectSchema(map[string]*requests.JSONSchema{
		"days": arraySchema(day),
	})
}

func ImageAnalysisSchema() *requests.JSONSchema {
	stringList := arraySchema(stringSchema(""))

	return objectSchema(map[string]*requests.JSONSchema{
		"nutritionalBreakdown": objectSchema(map[string]*requests.JSONSchema{
			"calories": numberSchema("kcal"),
			"macronutrients": objectSchema(map[string]*requests.JSONSchema{
				"carbs":    numberSchema("grams"),
				"proteins": numberSchema("grams"),
				"fats":     numberSchema("grams"),
				"fiber":    numberSchema("grams"),
			}),
			"micronutrients": stringList,
		}),
		"identifiedItems": arraySchema(objectSchema(map[string]*requests.JSONSchema{
			"name":       stringSchema(""),
			"weightG":    numberSchema("grams"),
			"volumeMl":   numberSchema("milliliters, 0 for solids"),
			"confidence": numberSchema("0-100"),
			"allergens":  stringList,
		})),
		"insulinRecommendation": objectSchema(map[string]*requests.JSONSchema{
			"suggestedDoseUnits": numberSchema("units"),
			"timingAdvice":       stringSchema("pre-meal or post-meal guidance"),
			"glucoseTrend":       stringSchema("expected glucose trend after the meal"),
			"requiredParameters": stringList,
		}),
		"mealAssessment": objectSchema(map[string]*requests.JSONSchema{
			"balanceScore": numberSchema("0-100"),
			"healthyScore": numberSchema("0-100"),
			"suggestions":  stringList,
			"warnings":     stringList,
		}),
		"confidenceNotes": stringList,
		"disclaimers":     stringList,
	})
}
