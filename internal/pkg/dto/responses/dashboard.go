package responses

type DashboardSummary struct {
	TotalPatients           int            `json:"total_patients"`
	PatientsByStatus        map[string]int `json:"patients_by_status"`
	FollowUpsPending        int            `json:"follow_ups_pending"`
	AppointmentsToday       int            `json:"appointments_today"`
	UpcomingAppointments    int            `json:"upcoming_appointments"`
	SurveySubmissionsRecent int            `json:"survey_submissions_recent"`
	GeneratedAt             string         `json:"generated_at"`
}
