package routers

import (
	"nutrisha-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachNutritionRoutes(router chi.Router, nutritionController *controllers.NutritionController) {
	router.Post("/generate-diet", nutritionController.GenerateDiet)
	router.Post("/analyze-image", nutritionController.AnalyzeImage)
	router.Post("/body-metrics", nutritionController.CalculateBodyMetrics)
}
