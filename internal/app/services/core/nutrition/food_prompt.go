package nutrition

import (
	"nutrisha-service/internal/pkg/dto/requests"
	"strings"
)

const (
	defaultDiabetesType  = "1"
	defaultTargetGlucose = "5.5"
	defaultInsulinType   = "ultrashort"
)

type DiabetesParams struct {
	DiabetesType       string
	CurrentGlucose     string
	TargetGlucose      string
	InsulinSensitivity string
	InsulinRatio       string
	InsulinType        string
	FastingBloodSugar  string
	HemoglobinA1c      string
}

func NewDiabetesParams(request requests.DiabetesParameters) DiabetesParams {
	params := DiabetesParams{
		DiabetesType:       request.DiabetesType,
		CurrentGlucose:     request.CurrentGlucose,
		TargetGlucose:      request.TargetGlucose,
		InsulinSensitivity: request.InsulinSensitivity,
		InsulinRatio:       request.InsulinRatio,
		InsulinType:        request.InsulinType,
		FastingBloodSugar:  request.FastingBloodSugar,
		HemoglobinA1c:      request.HemoglobinA1c,
	}
	if params.DiabetesType == "" {
		params.DiabetesType = defaultDiabetesType
	}
	if params.TargetGlucose == "" {
		params.TargetGlucose = defaultTargetGlucose
	}
	if params.InsulinType == "" {
		params.InsulinType = defaultInsulinType
	}
	return params
}

// BuildFoodAnalysisPrompt renders the meal image report request.
func BuildFoodAnalysisPrompt(params DiabetesParams, allergies []string) string {
	allergyList := strings.Join(nonEmptyLines(allergies...), ", ")

	var b strings.Builder
	b.WriteString("Analyze the provided meal image and generate a detailed report with the following structure:\n\n")

	b.WriteString("### Nutritional Breakdown\n")
	b.WriteString("- **Macronutrients**:\n")
	b.WriteString("  - Carbohydrates (g)\n")
	b.WriteString("  - Proteins (g)\n")
	b.WriteString("  - Fats (g)\n")
	b.WriteString("  - Fiber (g)\n")
	b.WriteString("- **Calories**: Total (kcal)\n")
	b.WriteString("- **Micronutrients**: Highlight key vitamins/minerals (e.g., iron, vitamin C) if detectable.\n\n")

	b.WriteString("### Food Identification\n")
	b.WriteString("- List all identifiable items (e.g., \"grilled chicken\", \"basmati rice\")\n")
	b.WriteString("- **Portion estimates**:\n")
	b.WriteString("  - Weight (grams) per item\n")
	b.WriteString("  - Volume (ml) for liquids/sauces\n")
	b.WriteString("- **Confidence levels**: 0-100% for each identification\n\n")

	b.WriteString("### Insulin Calculation\n")
	b.WriteString("- **Patient Parameters**:\n")
	b.WriteString("  - Diabetes Type: " + params.DiabetesType + "\n")
	b.WriteString("  - Current Glucose: " + params.CurrentGlucose + " mmol/L\n")
	b.WriteString("  - Target Glucose: " + params.TargetGlucose + " mmol/L\n")
	b.WriteString("  - Insulin Sensitivity: " + params.InsulinSensitivity + " mmol/L per 1 unit\n")
	b.WriteString("  - Insulin Ratio: " + params.InsulinRatio + " units/10-12g carbs\n")
	b.WriteString("  - Insulin Type: " + params.InsulinType + "\n")
	b.WriteString("  - Fasting Blood Sugar: " + params.FastingBloodSugar + " mmol/L\n")
	b.WriteString("  - Hemoglobin A1c: " + params.HemoglobinA1c + "%\n")
	b.WriteString("- **Recommendations**:\n")
	b.WriteString("  - Suggested insulin dose (units)\n")
	b.WriteString("  - Timing recommendations (pre-meal/post-meal)\n")
	b.WriteString("  - Glucose trend prediction based on meal composition\n\n")

	b.WriteString("### Meal Balance Assessment\n")
	b.WriteString("- **Balance score**: 0-100 based on WHO/National Guidelines\n")
	b.WriteString("- **Suggestions**:\n")
	if allergyList != "" {
		b.WriteString("  - **Allergy Alert**: Patient has allergies to: " + allergyList + "\n")
	}
	b.WriteString("  - Missing food groups (e.g., \"add leafy greens\")\n")
	b.WriteString("  - Excess components (e.g., \"reduce saturated fats\")\n")
	b.WriteString("  - Alternative suggestions for diabetic-friendly substitutions\n")
	b.WriteString("  - Glycemic index impact estimation\n\n")

	if allergyList == "" {
		allergyList = "None detected"
	}
	b.WriteString("### Requirements:\n")
	b.WriteString("- Use metric units only (grams, milliliters, kcal)\n")
	b.WriteString("- Highlight potential allergy conflicts using: " + allergyList + "\n")
	b.WriteString("- Include safety disclaimers:\n")
	b.WriteString("  - \"Consult a healthcare professional before making dietary changes\"\n")
	b.WriteString("  - \"Estimates may vary by ±15% due to image quality\"\n")
	b.WriteString("  - \"Not a substitute for medical advice\"\n")
	b.WriteString("  - \"Consider insulin onset/duration for " + params.InsulinType + " insulin\"\n")
	b.WriteString("- For confidence <70%, add: \"Low confidence: verify manually\"\n")
	b.WriteString("- Flag ingredients with high glycemic index (>70)")

	return b.String()
}
