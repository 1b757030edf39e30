package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"nutrisha-service/internal/app/config"
	"nutrisha-service/internal/app/contracts"
	"nutrisha-service/internal/app/delivery/http/controllers"
	"nutrisha-service/internal/app/delivery/http/middlewares"
	"nutrisha-service/internal/app/delivery/http/routers"
	"nutrisha-service/internal/app/drivers/database"
	"nutrisha-service/internal/app/drivers/logger"
	"nutrisha-service/internal/app/drivers/messaging"
	"nutrisha-service/internal/app/drivers/storage"
	"nutrisha-service/internal/app/services/core/nutrition"
	"nutrisha-service/internal/app/services/core/patient_info"
	"nutrisha-service/internal/app/services/fhir_spark/allergy_intolerances"
	"nutrisha-service/internal/app/services/fhir_spark/bundle"
	"nutrisha-service/internal/app/services/fhir_spark/conditions"
	"nutrisha-service/internal/app/services/fhir_spark/medication_requests"
	"nutrisha-service/internal/app/services/fhir_spark/nutrition_orders"
	"nutrisha-service/internal/app/services/fhir_spark/observations"
	"nutrisha-service/internal/app/services/fhir_spark/patients"
	"nutrisha-service/internal/app/services/shared/events"
	"nutrisha-service/internal/app/services/shared/llm"
	"nutrisha-service/internal/app/services/shared/redis"
	sharedStorage "nutrisha-service/internal/app/services/shared/storage"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	if internalConfig.App.RequireLaunchToken && internalConfig.JWT.Secret == "" {
		log.Fatalf("JWT_SECRET must be set when APP_REQUIRE_LAUNCH_TOKEN is enabled")
	}

	bootstrap := config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	if internalConfig.App.PatientInfoCacheTTLInSeconds > 0 {
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	}
	if internalConfig.App.MealImageArchiveEnabled {
		bootstrap.Minio = storage.NewMinio(driverConfig, internalConfig.Minio.BucketName)
	}
	if internalConfig.RabbitMQ.NutritionEventQueue != "" {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server is starting", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error while closing drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) error {
	// Optional infrastructure. Interfaces stay nil when the driver is off.
	var redisRepository contracts.RedisRepository
	if bootstrap.Redis != nil {
		redisRepository = redis.NewRedisRepository(bootstrap.Redis)
	}

	var mealImageStorage contracts.Storage
	if bootstrap.Minio != nil {
		mealImageStorage = sharedStorage.NewMinioStorage(bootstrap.Minio)
	}

	var eventPublisher contracts.EventPublisher
	if bootstrap.RabbitMQ != nil {
		publisher, err := events.NewRabbitMQPublisher(
			bootstrap.RabbitMQ,
			bootstrap.InternalConfig.RabbitMQ.NutritionEventQueue,
			bootstrap.Logger,
		)
		if err != nil {
			return err
		}
		eventPublisher = publisher
	}

	// FHIR
	fhirBaseUrl := bootstrap.InternalConfig.FHIR.BaseUrl
	fhirSearcher := bundle.NewSearcher(bootstrap.InternalConfig, bootstrap.Logger)
	patientFhirClient := patients.NewPatientFhirClient(fhirBaseUrl, fhirSearcher, bootstrap.Logger)
	observationFhirClient := observations.NewObservationFhirClient(fhirBaseUrl, fhirSearcher, bootstrap.Logger)
	allergyIntoleranceFhirClient := allergy_intolerances.NewAllergyIntoleranceFhirClient(fhirBaseUrl, fhirSearcher, bootstrap.Logger)
	medicationRequestFhirClient := medication_requests.NewMedicationRequestFhirClient(fhirBaseUrl, fhirSearcher, bootstrap.Logger)
	conditionFhirClient := conditions.NewConditionFhirClient(fhirBaseUrl, fhirSearcher, bootstrap.Logger)
	nutritionOrderFhirClient := nutrition_orders.NewNutritionOrderFhirClient(fhirBaseUrl, fhirSearcher, bootstrap.Logger)

	// Patient info
	patientInfoUsecase := patient_info.NewPatientInfoUsecase(
		patientFhirClient,
		observationFhirClient,
		allergyIntoleranceFhirClient,
		medicationRequestFhirClient,
		conditionFhirClient,
		nutritionOrderFhirClient,
		redisRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	patientController := controllers.NewPatientController(bootstrap.Logger, patientInfoUsecase, bootstrap.InternalConfig)

	// Nutrition
	chatCompletionClient := llm.NewChatCompletionClient(bootstrap.InternalConfig, bootstrap.Logger)
	nutritionUsecase := nutrition.NewNutritionUsecase(
		patientInfoUsecase,
		chatCompletionClient,
		mealImageStorage,
		eventPublisher,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	nutritionController := controllers.NewNutritionController(bootstrap.Logger, nutritionUsecase, bootstrap.InternalConfig)

	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, nutritionController, patientController)
	return nil
}
