package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_UID_KEY                  ContextKey = "uid"
	CONTEXT_ROLE_KEY                 ContextKey = "role"
	CONTEXT_EMAIL_KEY                ContextKey = "email"
)

const (
	REQUEST_ID_PREFIX = "CLNC_SVC_"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
	AppDateLayout          = "2006-01-02"
)

const (
	RoleAdmin     = "admin"
	RoleDoctor    = "doctor"
	RoleAssistant = "asistente"
)

var RoleLabels = map[string]string{
	RoleAdmin:     "Administrador",
	RoleDoctor:    "Doctor",
	RoleAssistant: "Asistente",
}

const RoleLabelUnknown = "Sin rol"

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)
