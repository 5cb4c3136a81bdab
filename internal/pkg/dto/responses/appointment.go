package responses

import "clinica-service/internal/app/models"

type Appointment struct {
	models.Appointment
	PatientName string `json:"patient_name,omitempty"`
	IsTerminal  bool   `json:"is_terminal"`
}

type AppointmentList struct {
	Appointments []Appointment
	Total        int
}
