package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingEndpointKey       = "endpoint"
	LoggingMethodKey         = "method"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingErrorTypeKey      = "error_type"
	LoggingErrorCodeKey      = "error_code"
	LoggingErrorMessageKey   = "error_message"
	LoggingOperationKey      = "operation"
	LoggingUIDKey            = "uid"
	LoggingRoleKey           = "role"
	LoggingTableKey          = "table"
	LoggingBackendURLKey     = "backend_url"
	LoggingQueryParamsKey    = "query_params"
	LoggingResultCountKey    = "result_count"
	LoggingTotalKey          = "total"
	LoggingPatientIDKey      = "patient_id"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingSurveySlugKey     = "survey_slug"
	LoggingSubmissionIDKey   = "submission_id"
	LoggingStatusFromKey     = "status_from"
	LoggingStatusToKey       = "status_to"
	LoggingCacheKey          = "cache_key"
	LoggingCacheHitKey       = "cache_hit"
	LoggingCacheNamespaceKey = "cache_namespace"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingQueueNameKey      = "queue_name"
	LoggingEventKey          = "event"
	LoggingBucketNameKey     = "bucket_name"
	LoggingObjectNameKey     = "object_name"
	LoggingCollectionKey     = "collection"
	LoggingEntityKey         = "entity"
	LoggingEntityIDKey       = "entity_id"
	LoggingReminderCountKey  = "reminder_count"
	LoggingWindowStartKey    = "window_start"
	LoggingWindowEndKey      = "window_end"
)
