package responses

type AnalyzeImage struct {
	Analysis        *ImageAnalysis `json:"analysis"`
	ImageObjectName string         `json:"imageObjectName,omitempty"`
}

type ImageAnalysis struct {
	NutritionalBreakdown  NutritionalBreakdown  `json:"nutritionalBreakdown"`
	IdentifiedItems       []IdentifiedItem      `json:"identifiedItems"`
	InsulinRecommendation InsulinRecommendation `json:"insulinRecommendation"`
	MealAssessment        MealAssessment        `json:"mealAssessment"`
	ConfidenceNotes       []string              `json:"confidenceNotes"`
	Disclaimers           []string              `json:"disclaimers"`
}

type NutritionalBreakdown struct {
	Calories       float64        `json:"calories"`
	Macronutrients Macronutrients `json:"macronutrients"`
	Micronutrients []string       `json:"micronutrients"`
}

type Macronutrients struct {
	Carbs    float64 `json:"carbs"`
	Proteins float64 `json:"proteins"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
}

type IdentifiedItem struct {
	Name       string   `json:"name"`
	WeightG    float64  `json:"weightG"`
	VolumeMl   float64  `json:"volumeMl"`
	Confidence float64  `json:"confidence"`
	Allergens  []string `json:"allergens"`
}

type InsulinRecommendation struct {
	SuggestedDoseUnits float64  `json:"suggestedDoseUnits"`
	TimingAdvice       string   `json:"timingAdvice"`
	GlucoseTrend       string   `json:"glucoseTrend"`
	RequiredParameters []string `json:"requiredParameters"`
}

type MealAssessment struct {
	BalanceScore float64  `json:"balanceScore"`
	HealthyScore float64  `json:"healthyScore"`
	Suggestions  []string `json:"suggestions"`
	Warnings     []string `json:"warnings"`
}
