package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":       "is required",
	"email":          "must be a valid email",
	"min":            "must be at least %s characters long",
	"max":            "maximum at %s characters long",
	"len":            "must be %s characters long",
	"oneof":          "must be one of [%s]",
	"gt":             "must be greater than %s",
	"gte":            "must be greater than or equal to %s",
	"lt":             "must be less than %s",
	"lte":            "must be less than or equal to %s",
	"uuid":           "must be a valid UUID",
	"datetime":       "must be a date in format %s",
	"patient_status": "must be a valid patient status",
	"phone_number":   "phone number must be in international format, e.g. +56912345678",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"len":      true,
	"oneof":    true,
	"gt":       true,
	"gte":      true,
	"lt":       true,
	"lte":      true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "something wrong with application, try again later"
	ErrClientNotAuthorized                 = "you are not authorized to access this resource"
	ErrClientNotLoggedIn                   = "you are not logged in, please login first"
	ErrClientServerLongRespond             = "server took too long to respond"
	ErrClientResourceNotFound              = "the requested %s was not found"
	ErrClientInvalidImageFormat            = "image must be a png, jpeg or webp file"
	ErrClientImageTooLarge                 = "image is larger than %d MB"
	ErrClientPatientStatusTransition       = "patient status cannot change from %s to %s"
	ErrClientAppointmentStatusTransition   = "appointment status cannot change from %s to %s"
	ErrClientPatientNotSchedulable         = "patient in status %s cannot receive new appointments"
	ErrClientSurveyInactive                = "survey %s is not accepting answers"
	ErrClientSurveyRequiredAnswer          = "question %s is required"
	ErrClientSurveyUnknownQuestion         = "question %s does not belong to this survey"
	ErrClientSurveyInvalidOption           = "answer for question %s must be one of [%s]"
	ErrClientSurveyInvalidNumber           = "answer for question %s must be a number"
	ErrClientTooManyRequests               = "too many requests, try again later"
	ErrClientStatusChangedConcurrently     = "the %s status changed while processing your request, reload and try again"
	ErrClientSurveyEmptySubmission         = "at least one question must be answered"
)

// Error messages for developers
const (
	ErrDevInvalidInput                = "invalid input"
	ErrDevValidationFailed            = "validation failed"
	ErrDevCannotParseJSON             = "cannot parse JSON"
	ErrDevCannotMarshalJSON           = "cannot marshal JSON"
	ErrDevCannotParseDate             = "cannot parse date"
	ErrDevCannotParseMultipartForm    = "cannot parse multipart form"
	ErrDevURLParamValidationFailed    = "URL param %s validation failed"
	ErrDevQueryParamValidationFailed  = "query param %s validation failed"
	ErrDevImageValidationFailed       = "image validation failed"
	ErrDevServerDeadlineExceeded      = "server deadline exceeded"
	ErrDevServerProcess               = "server failed to process request"
	ErrDevTooManyRequests             = "client exceeded request rate"
	ErrDevMissingRequestID            = "request id missing from context"
	ErrDevAuthTokenMissing            = "authorization token missing"
	ErrDevAuthTokenInvalidOrExpired   = "authorization token invalid or expired"
	ErrDevAuthProfileMissing          = "profile for authenticated user not found"
	ErrDevRoleNotPermitted            = "role %s is not permitted to %s %s"
	ErrDevCreateHTTPRequest           = "failed to create HTTP request"
	ErrDevSendHTTPRequest             = "failed to send HTTP request"
	ErrDevBackendQuery                = "backend query on %s failed"
	ErrDevBackendNotFound             = "backend returned no rows from %s"
	ErrDevBackendDecodeResponse       = "failed to decode backend response from %s"
	ErrDevBackendThrottled            = "backend client throttled"
	ErrDevBackendRejectedWrite        = "backend rejected write on %s"
	ErrDevStatusPreconditionFailed    = "no %s row matched id and expected status %s"
	ErrDevPatientStatusTransition     = "illegal patient status transition"
	ErrDevAppointmentStatusTransition = "illegal appointment status transition"
	ErrDevPatientNotSchedulable       = "patient status does not allow appointments"
	ErrDevSurveyAnswersInvalid        = "survey answers invalid"
	ErrDevRedisGetData                = "failed to get data from redis"
	ErrDevRedisGetNoData              = "no data found in redis for key %s"
	ErrDevRedisSetData                = "failed to set data to redis"
	ErrDevRedisDeleteData             = "failed to delete data from redis"
	ErrDevRedisIncrementValue         = "failed to increment value in redis"
	ErrDevRedisLockNotOwned           = "redis lock not owned by caller"
	ErrDevMongoDBInsertDocument       = "failed to insert document to mongo"
	ErrDevMongoDBFindDocument         = "failed to find document in mongo"
	ErrDevMongoDBIterateDocuments     = "failed to iterate documents from mongo"
	ErrDevMinioFailedToCreateObject   = "failed to create object in bucket %s"
	ErrDevMinioFailedToPresignObject  = "failed to presign object in bucket %s"
	ErrDevRabbitMQPublishMessage      = "failed to publish message to queue %s"
)
