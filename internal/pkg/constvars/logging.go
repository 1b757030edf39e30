package constvars

const (
	LoggingRequestIDKey       = "request_id"
	LoggingPatientIDKey       = "patient_id"
	LoggingResourceTypeKey    = "resource_type"
	LoggingURLKey             = "url"
	LoggingPageKey            = "page"
	LoggingCountKey           = "count"
	LoggingMethodKey          = "method"
	LoggingEndpointKey        = "endpoint"
	LoggingRemoteAddrKey      = "remote_addr"
	LoggingUserAgentKey       = "user_agent"
	LoggingQueryKey           = "query"
	LoggingStatusCodeKey      = "status_code"
	LoggingDurationKey        = "duration"
	LoggingSuccessKey         = "success"
	LoggingErrorTypeKey       = "error_type"
	LoggingErrorCodeKey       = "error_code"
	LoggingErrorMessageKey    = "error_message"
	LoggingOperationKey       = "operation"
	LoggingCacheKey           = "cache_key"
	LoggingCacheHitKey        = "cache_hit"
	LoggingModelKey           = "model"
	LoggingAttemptKey         = "attempt"
	LoggingBackoffKey         = "backoff"
	LoggingPromptLengthKey    = "prompt_length"
	LoggingImageSizeKey       = "image_size"
	LoggingImageMimeTypeKey   = "image_mime_type"
	LoggingObjectNameKey      = "object_name"
	LoggingBucketNameKey      = "bucket_name"
	LoggingQueueKey           = "queue"
	LoggingEventTypeKey       = "event_type"
	LoggingPromptTokensKey    = "prompt_tokens"
	LoggingCompletionTokenKey = "completion_tokens"
	LoggingDaysKey            = "days"
)
