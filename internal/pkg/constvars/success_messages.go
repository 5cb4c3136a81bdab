package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"

	GetPatientsSuccessMessage          = "patients fetched successfully"
	GetPatientSuccessMessage           = "patient fetched successfully"
	CreatePatientSuccessMessage        = "patient created successfully"
	UpdatePatientSuccessMessage        = "patient updated successfully"
	DeletePatientSuccessMessage        = "patient deleted successfully"
	UpdatePatientStatusSuccessMessage  = "patient status updated successfully"
	GetPatientActivitySuccessMessage   = "patient activity fetched successfully"
	GetAppointmentsSuccessMessage      = "appointments fetched successfully"
	GetAppointmentSuccessMessage       = "appointment fetched successfully"
	CreateAppointmentSuccessMessage    = "appointment created successfully"
	UpdateAppointmentSuccessMessage    = "appointment updated successfully"
	UpdateAppointmentStatusSuccessMsg  = "appointment status updated successfully"
	GetAppointmentHistorySuccessMsg    = "appointment history fetched successfully"
	GetSurveysSuccessMessage           = "surveys fetched successfully"
	GetSurveySuccessMessage            = "survey fetched successfully"
	SubmitSurveyAnswersSuccessMessage  = "survey answers submitted successfully"
	GetSurveyResponsesSuccessMessage   = "survey responses fetched successfully"
	GetDashboardSummarySuccessMessage  = "dashboard summary fetched successfully"
	GetDashboardFollowUpsSuccessMsg    = "follow-up patients fetched successfully"
	GetDashboardUpcomingSuccessMessage = "upcoming appointments fetched successfully"
	GetProfileSuccessMessage           = "profile fetched successfully"
	UpdateProfileSuccessMessage        = "profile updated successfully"
	UploadAvatarSuccessMessage         = "avatar uploaded successfully"
	GetStaffSuccessMessage             = "staff fetched successfully"
)
