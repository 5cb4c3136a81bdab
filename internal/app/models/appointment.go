package models

import "time"

type Appointment struct {
	ID              string     `json:"id,omitempty"`
	PatientID       string     `json:"patient_id"`
	DoctorID        string     `json:"doctor_id,omitempty"`
	ScheduledAt     time.Time  `json:"scheduled_at"`
	DurationMinutes int        `json:"duration_minutes"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	Reason          string     `json:"reason,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// EndsAt is the scheduled end of the appointment.
func (a *Appointment) EndsAt() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// AppointmentHistory is one row of the "appointment_history" table.
type AppointmentHistory struct {
	ID                  string     `json:"id,omitempty"`
	AppointmentID       string     `json:"appointment_id"`
	PreviousStatus      string     `json:"previous_status,omitempty"`
	NewStatus           string     `json:"new_status,omitempty"`
	PreviousScheduledAt *time.Time `json:"previous_scheduled_at,omitempty"`
	NewScheduledAt      *time.Time `json:"new_scheduled_at,omitempty"`
	ChangedBy           string     `json:"changed_by,omitempty"`
	Note                string     `json:"note,omitempty"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
}
