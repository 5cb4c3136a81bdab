package constvars

const (
	MethodGet     = "GET"
	MethodHead    = "HEAD"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodOptions = "OPTIONS"
)

const (
	MIMEApplicationJSON     = "application/json"
	MIMEApplicationJSONUTF8 = "application/json; charset=utf-8"
	MIMEMultipartForm       = "multipart/form-data"
	MIMEImagePNG            = "image/png"
	MIMEImageJPEG           = "image/jpeg"
	MIMEImageWEBP           = "image/webp"
)

const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderAccept        = "Accept"
	HeaderAPIKey        = "apikey"
	HeaderPrefer        = "Prefer"
	HeaderContentRange  = "Content-Range"
	HeaderRange         = "Range"
	HeaderRangeUnit     = "Range-Unit"
)

const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusNoContent           = 204
	StatusPartialContent      = 206
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusRequestEntityTooBig = 413
	StatusUnprocessableEntity = 422
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
	StatusBadGateway          = 502
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

const (
	URLParamID          = "id"
	URLParamPatientID   = "patient_id"
	URLParamSurveySlug  = "slug"
	QueryParamPage      = "page"
	QueryParamPageSize  = "page_size"
	QueryParamStatus    = "status"
	QueryParamDoctorID  = "doctor_id"
	QueryParamPatientID = "patient_id"
	QueryParamSearch    = "search"
	QueryParamDateFrom  = "date_from"
	QueryParamDateTo    = "date_to"
	QueryParamDays      = "days"
	QueryParamLimit     = "limit"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
