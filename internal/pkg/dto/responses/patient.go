package responses

import "clinica-service/internal/app/models"

type Patient struct {
	models.Patient
	FullName       string `json:"full_name"`
	Initials       string `json:"initials"`
	StatusLabel    string `json:"status_label"`
	IsTerminal     bool   `json:"is_terminal"`
	CanSetFollowUp bool   `json:"can_set_follow_up"`
}

type PatientList struct {
	Patients []Patient
	Total    int
}
