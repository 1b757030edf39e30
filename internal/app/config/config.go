package config

import (
	"nutrisha-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                          utils.GetEnvString("APP_ENV", "development"),
			Port:                         utils.GetEnvString("APP_PORT", "8080"),
			Timezone:                     utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:               utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                  utils.GetEnvInt("APP_MAX_REQUESTS", 10),
			ShutdownTimeoutInSeconds:     utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte:   utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 12),
			RequestTimeoutInSeconds:      utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 120),
			MealImageMaxUploadSizeInMB:   utils.GetEnvInt("APP_MEAL_IMAGE_MAX_UPLOAD_SIZE_IN_MB", 10),
			MealImageArchiveEnabled:      utils.GetEnvBool("APP_MEAL_IMAGE_ARCHIVE_ENABLED", false),
			PatientInfoCacheTTLInSeconds: utils.GetEnvInt("APP_PATIENT_INFO_CACHE_TTL_IN_SECONDS", 0),
			RequireLaunchToken:           utils.GetEnvBool("APP_REQUIRE_LAUNCH_TOKEN", false),
		},
		FHIR: AppFHIR{
			BaseUrl:                 utils.GetEnvString("FHIR_BASE_URL", "http://localhost:8080/fhir"),
			MaxPages:                utils.GetEnvInt("FHIR_MAX_PAGES", 10),
			RequestTimeoutInSeconds: utils.GetEnvInt("FHIR_REQUEST_TIMEOUT_IN_SECONDS", 30),
			ForwardAuthorization:    utils.GetEnvBool("FHIR_FORWARD_AUTHORIZATION", true),
		},
		LLM: AppLLM{
			BaseUrl:                      utils.GetEnvString("LLM_BASE_URL", "https://api.openai.com/v1"),
			APIKey:                       utils.GetEnvString("LLM_API_KEY", utils.GetEnvString("OPENAI_API_KEY", "")),
			Model:                        utils.GetEnvString("LLM_MODEL", "gpt-4o-mini"),
			MaxRetries:                   utils.GetEnvInt("LLM_MAX_RETRIES", 3),
			InitialBackoffInMilliseconds: utils.GetEnvInt("LLM_INITIAL_BACKOFF_IN_MILLISECONDS", 500),
			RequestTimeoutInSeconds:      utils.GetEnvInt("LLM_REQUEST_TIMEOUT_IN_SECONDS", 90),
			RequestsPerSecond:            utils.GetEnvFloat("LLM_REQUESTS_PER_SECOND", 5),
		},
		JWT: AppJWT{
			Secret: utils.GetEnvString("JWT_SECRET", ""),
		},
		Minio: AppMinio{
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "nutrisha"),
		},
		RabbitMQ: AppRabbitMQ{
			NutritionEventQueue: utils.GetEnvString("APP_RABBITMQ_NUTRITION_EVENT_QUEUE", ""),
		},
	}
}
