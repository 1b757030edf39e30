package constvars

// Custom validation error messages
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"min":           "must be at least %s",
	"max":           "must be at most %s",
	"gt":            "must be greater than %s",
	"gte":           "must be greater than or equal to %s",
	"lt":            "must be less than %s",
	"lte":           "must be less than or equal to %s",
	"oneof":         "must be one of [%s]",
	"numeric":       "must be a number",
	"dive":          "contains an invalid value",
	"diet_pace":     "must be one of [slow, medium, fast]",
	"meal_type":     "must be one of [Breakfast, Lunch, Dinner, Brunch, Snack, Supper]",
	"diabetes_type": "must be one of [1, 2]",
	"insulin_type":  "must be one of [short, ultrashort, basal]",
	"fhir_id":       "must be a valid FHIR resource id",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please open the app from the portal again"
	ErrClientPatientNotFound               = "patient not found"
	ErrClientFailedToGenerateDiet          = "Failed to generate diet."
	ErrClientFailedToAnalyzeImage          = "Failed to analyze image"
	ErrClientInvalidImageFormat            = "the image you uploaded must be a JPEG or PNG"
	ErrClientImageTooLarge                 = "the image you uploaded is too large"
	ErrClientRequestBodyTooLarge           = "the request body is too large"
	ErrClientBodyFatMissingMeasurements    = "body fat needs height, waist and neck measurements (and hip for females)"
	ErrClientBodyFatUnsupportedGender      = "body fat can only be calculated for male or female"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevCannotParseJSON            = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON          = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseMultipartForm   = "cannot parse multipart form body"
	ErrDevCannotReadMultipartFile    = "cannot read multipart file %s"
	ErrDevMissingRequestID           = "request id missing from context"
	ErrDevCreateHTTPRequest          = "failed to create HTTP request"
	ErrDevSendHTTPRequest            = "failed to send HTTP request"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevValidationFailed           = "validation failed"
	ErrDevImageValidationFailed      = "image validation failed, detected content type %s"
	ErrDevImageTooLarge              = "image size %d bytes exceeds the limit of %d bytes"
	ErrDevURLParamIDValidationFailed = "parameter %s validation failed"
	ErrDevRequestBodyTooLarge        = "request body exceeds the limit of %d bytes"
	ErrDevBodyFatMissingMeasurements = "missing or inconsistent circumference measurements"
	ErrDevBodyFatUnsupportedGender   = "unsupported gender %q for navy body fat formula"
)

// FHIR error messages for developers
const (
	ErrDevSparkGetFHIRResource            = "failed to get FHIR %s from FHIR server"
	ErrDevSparkNoDataFHIRResource         = "no data found from FHIR %s"
	ErrDevSparkDecodeFHIRResourceResponse = "failed to decode FHIR %s response from FHIR server"
)

// LLM error messages for developers
const (
	ErrDevLLMRequestFailed      = "chat completion request failed after %d attempt(s)"
	ErrDevLLMUnexpectedStatus   = "chat completion returned status %d: %s"
	ErrDevLLMEmptyChoices       = "chat completion returned no choices"
	ErrDevLLMMalformedContent   = "chat completion content is not valid %s JSON"
	ErrDevLLMRateLimiterWaiting = "waiting for chat completion rate limiter"
)

// Auth error messages for developers
const (
	ErrDevAuthSigningMethod          = "unexpected signing method"
	ErrDevAuthTokenInvalid           = "invalid or expired launch token"
	ErrDevAuthTokenMissing           = "launch token missing"
	ErrDevAuthPatientClaimMissing    = "launch token has no patient claim"
	ErrDevAuthPatientContextMismatch = "requested patient %s does not match launch context patient %s"
)

// Infrastructure error messages for developers
const (
	ErrDevRedisSet            = "failed to set data to redis"
	ErrDevRedisGet            = "failed to get data from redis for key %s"
	ErrDevRedisDelete         = "failed to delete data from redis"
	ErrDevMinioCreateObject   = "failed to create object in bucket %s"
	ErrDevRabbitMQOpenChannel = "failed to open rabbitmq channel"
	ErrDevRabbitMQPublish     = "failed to publish message to queue %s"
)
