package constvars

type ContextKey string

const (
	ResourceGenerateDiet = "generate-diet"
	ResourceAnalyzeImage = "analyze-image"
	ResourcePatients     = "patients"
	ResourceBodyMetrics  = "body-metrics"
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_FHIR_AUTHORIZATION_KEY   ContextKey = "fhir_authorization"
	CONTEXT_LAUNCH_PATIENT_ID_KEY    ContextKey = "launch_patient_id"
)

const (
	REQUEST_ID_PREFIX = "NTRSH_SVC_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	LaunchTokenPatientClaim = "patient"
)

const (
	CacheKeyPatientInfoFormat = "patient_info:%s"
)

const (
	MealImageObjectNameFormat = "meal-images/%s/%s%s"
	MealImageObjectDateFormat = "2006/01/02"
)

const (
	EventTypeDietPlanGenerated = "diet_plan.generated"
	EventTypeMealImageAnalyzed = "meal_image.analyzed"
)
