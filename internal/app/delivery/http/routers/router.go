package routers

import (
	"fmt"
	"nutrisha-service/internal/app/config"
	"nutrisha-service/internal/app/delivery/http/controllers"
	"nutrisha-service/internal/app/delivery/http/middlewares"
	"nutrisha-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	nutritionController *controllers.NutritionController,
	patientController *controllers.PatientController,
) {
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderLink, constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RateLimit())
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Use(middlewares.LaunchContext)

		attachNutritionRoutes(r, nutritionController)

		r.Route("/patients", func(r chi.Router) {
			attachPatientRoutes(r, patientController)
		})
	})
}
