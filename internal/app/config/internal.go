package config

type InternalConfig struct {
	App      App         `mapstructure:"app"`
	FHIR     AppFHIR     `mapstructure:"fhir"`
	LLM      AppLLM      `mapstructure:"llm"`
	JWT      AppJWT      `mapstructure:"jwt"`
	Minio    AppMinio    `mapstructure:"minio"`
	RabbitMQ AppRabbitMQ `mapstructure:"rabbitmq"`
}

type App struct {
	Env                          string `mapstructure:"env"`
	Port                         string `mapstructure:"port"`
	Timezone                     string `mapstructure:"timezone"`
	EndpointPrefix               string `mapstructure:"endpoint_prefix"`
	MaxRequests                  int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds     int    `mapstructure:"shutdown_timeout_in_seconds"`
	RequestBodyLimitInMegabyte   int    `mapstructure:"request_body_limit_in_megabyte"`
	RequestTimeoutInSeconds      int    `mapstructure:"request_timeout_in_seconds"`
	MealImageMaxUploadSizeInMB   int    `mapstructure:"meal_image_max_upload_size_in_mb"`
	MealImageArchiveEnabled      bool   `mapstructure:"meal_image_archive_enabled"`
	PatientInfoCacheTTLInSeconds int    `mapstructure:"patient_info_cache_ttl_in_seconds"`
	// RequireLaunchToken rejects requests without a signed launch token.
	RequireLaunchToken bool `mapstructure:"require_launch_token"`
}

type AppFHIR struct {
	BaseUrl                 string `mapstructure:"base_url"`
	MaxPages                int    `mapstructure:"max_pages"`
	RequestTimeoutInSeconds int    `mapstructure:"request_timeout_in_seconds"`
	ForwardAuthorization    bool   `mapstructure:"forward_authorization"`
}

type AppLLM struct {
	BaseUrl                      string  `mapstructure:"base_url"`
	APIKey                       string  `mapstructure:"api_key"`
	Model                        string  `mapstructure:"model"`
	MaxRetries                   int     `mapstructure:"max_retries"`
	InitialBackoffInMilliseconds int     `mapstructure:"initial_backoff_in_milliseconds"`
	RequestTimeoutInSeconds      int     `mapstructure:"request_timeout_in_seconds"`
	RequestsPerSecond            float64 `mapstructure:"requests_per_second"`
}

type AppJWT struct {
	Secret string `mapstructure:"secret"`
}

type AppMinio struct {
	BucketName string `mapstructure:"bucket_name"`
}

type AppRabbitMQ struct {
	// NutritionEventQueue disables event publishing when empty.
	NutritionEventQueue string `mapstructure:"nutrition_event_queue"`
}
