package constvars

const (
	CacheNamespaceDashboard = "dashboard"
	CacheNamespaceSurveys   = "surveys"
	CacheNamespaceAnswers   = "survey_answers"
	CacheNamespaceProfiles  = "profiles"
	CacheKeyPrefix          = "qc"
	CacheGenerationPrefix   = "qcgen"
)

const (
	RedisKeyReminderSent   = "reminder:sent:%s"
	RedisKeyReminderLeader = "reminder:leader"
	RedisKeyRateLimit      = "ratelimit:%s:%s:%d"
	RateLimitGroupSurvey   = "survey-submission"
)

const (
	EventPatientCreated           = "patient.created"
	EventPatientStatusChanged     = "patient.status_changed"
	EventAppointmentCreated       = "appointment.created"
	EventAppointmentRescheduled   = "appointment.rescheduled"
	EventAppointmentStatusChanged = "appointment.status_changed"
	EventAppointmentReminder      = "appointment.reminder"
	EventSurveySubmitted          = "survey.submitted"
)

const (
	MongoCollectionAuditEvents = "audit_events"
	AuditEntityPatient         = "patient"
	AuditEntityAppointment     = "appointment"
	AuditActionCreated         = "created"
	AuditActionStatusChanged   = "status_changed"
	AuditActionRescheduled     = "rescheduled"
	AuditActionDeleted         = "deleted"
)

const (
	MinioAvatarPrefix = "avatars"
)
