package nutrition

import (
	"nutrisha-service/internal/pkg/dto/responses"
	"sort"
)

// SummarizeDietPlan fills in meal and day totals and orders each day's meals
// by time. Meals without a time come first.
func SummarizeDietPlan(plan *responses.DietPlan) {
	if plan == nil {
		return
	}

	for d := range plan.Days {
		day := &plan.Days[d]
		sort.SliceStable(day.Meals, func(i, j int) bool {
			return day.Meals[i].Time < day.Meals[j].Time
		})

		var dayTotals responses.DayNutrientSum
		for m := range day.Meals {
			meal := &day.Meals[m]

			var mealTotals responses.MealNutrientSum
			for _, item := range meal.Items {
				mealTotals.Carbs += item.Nutrients.Carbs
				mealTotals.Fiber += item.Nutrients.Fiber
				mealTotals.GlycemicLoad += item.Nutrients.GlycemicIndex * item.Nutrients.Carbs / 100

				dayTotals.Protein += item.Nutrients.Protein
				dayTotals.Carbs += item.Nutrients.Carbs
				dayTotals.Fat += item.Nutrients.Fat
				dayTotals.Fiber += item.Nutrients.Fiber
			}
			meal.Totals = mealTotals
		}
		day.Totals = dayTotals
	}
}
