package responses

type GenerateDiet struct {
	DietPlan *DietPlan `json:"dietPlan"`
}

type DietPlan struct {
	Days []DietDay `json:"days"`
}

type DietDay struct {
	Day        string         `json:"day"`
	DaySummary DaySummary     `json:"daySummary"`
	Meals      []DietMeal     `json:"meals"`
	DayTotal   float64        `json:"dayTotal"`
	Totals     DayNutrientSum `json:"totals"`
}

type DaySummary struct {
	EatingWindow  string `json:"eatingWindow"`
	MealFrequency int    `json:"mealFrequency"`
}

type DietMeal struct {
	MealType        string          `json:"mealType"`
	Time            string          `json:"time"`
	Items           []DietMealItem  `json:"items"`
	TotalCalories   float64         `json:"totalCalories"`
	CarbsForInsulin float64         `json:"carbsForInsulin"`
	Preparation     string          `json:"preparation"`
	Totals          MealNutrientSum `json:"totals"`
}

type DietMealItem struct {
	Food      string        `json:"food"`
	Quantity  string        `json:"quantity"`
	Calories  float64       `json:"calories"`
	Nutrients ItemNutrients `json:"nutrients"`
}

type ItemNutrients struct {
	Carbs         float64 `json:"carbs"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	GlycemicIndex float64 `json:"glycemicIndex"`
}

// MealNutrientSum is computed by the service, not by the model.
type MealNutrientSum struct {
	Carbs        float64 `json:"carbs"`
	Fiber        float64 `json:"fiber"`
	GlycemicLoad float64 `json:"glycemicLoad"`
}

// DayNutrientSum is computed by the service, not by the model.
type DayNutrientSum struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber"`
}
