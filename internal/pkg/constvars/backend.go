package constvars

// Tables exposed by the hosted backend's REST API.
const (
	TablePatients           = "patients"
	TableAppointments       = "appointments"
	TableAppointmentHistory = "appointment_history"
	TableSurveys            = "surveys"
	TableSurveyAnswers      = "survey_answers"
	TableProfiles           = "profiles"
)

const (
	BackendRestPath         = "/rest/v1"
	BackendPreferReturnRep  = "return=representation"
	BackendPreferReturnMin  = "return=minimal"
	BackendPreferCountExact = "count=exact"
	BackendSelectAll        = "*"
	// BackendMaxRows is the most rows the backend returns for one request.
	BackendMaxRows = 1000
)

const (
	PatientStatusPotential     = "potencial"
	PatientStatusFollowUp      = "en_seguimiento"
	PatientStatusScheduled     = "programado"
	PatientStatusOperated      = "operado"
	PatientStatusNotInterested = "no_interesado"
	PatientStatusInactive      = "inactivo"
)

var PatientStatuses = []string{
	PatientStatusPotential,
	PatientStatusFollowUp,
	PatientStatusScheduled,
	PatientStatusOperated,
	PatientStatusNotInterested,
	PatientStatusInactive,
}

// TerminalPatientStatuses cannot be left once reached.
var TerminalPatientStatuses = []string{
	PatientStatusOperated,
	PatientStatusNotInterested,
	PatientStatusInactive,
}

var PatientStatusLabels = map[string]string{
	PatientStatusPotential:     "Potencial",
	PatientStatusFollowUp:      "En seguimiento",
	PatientStatusScheduled:     "Programado",
	PatientStatusOperated:      "Operado",
	PatientStatusNotInterested: "No interesado",
	PatientStatusInactive:      "Inactivo",
}

const (
	AppointmentStatusScheduled = "programada"
	AppointmentStatusConfirmed = "confirmada"
	AppointmentStatusCompleted = "completada"
	AppointmentStatusCancelled = "cancelada"
	AppointmentStatusNoShow    = "no_asistio"
)

var AppointmentStatuses = []string{
	AppointmentStatusScheduled,
	AppointmentStatusConfirmed,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
	AppointmentStatusNoShow,
}

var TerminalAppointmentStatuses = []string{
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
	AppointmentStatusNoShow,
}

const (
	AppointmentTypeConsultation = "consulta"
	AppointmentTypeEvaluation   = "evaluacion"
	AppointmentTypeControl      = "control"
	AppointmentTypeSurgery      = "cirugia"
)

const (
	SurveyQuestionTypeText   = "text"
	SurveyQuestionTypeNumber = "number"
	SurveyQuestionTypeChoice = "choice"
	SurveyQuestionTypeBool   = "boolean"
	SurveyQuestionTypeScale  = "scale"
)
