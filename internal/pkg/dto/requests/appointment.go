package requests

import "time"

type CreateAppointment struct {
	PatientID       string    `json:"patient_id" validate:"required,uuid"`
	DoctorID        string    `json:"doctor_id" validate:"omitempty,uuid"`
	ScheduledAt     time.Time `json:"scheduled_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,gte=5,lte=720"`
	Type            string    `json:"type" validate:"required,oneof=consulta evaluacion control cirugia"`
	Reason          string    `json:"reason" validate:"omitempty,max=500"`
	Notes           string    `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateAppointment struct {
	DoctorID        *string    `json:"doctor_id,omitempty" validate:"omitempty,uuid"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty" validate:"omitempty,gte=5,lte=720"`
	Type            *string    `json:"type,omitempty" validate:"omitempty,oneof=consulta evaluacion control cirugia"`
	Reason          *string    `json:"reason,omitempty" validate:"omitempty,max=500"`
	Notes           *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Note            string     `json:"note,omitempty" validate:"omitempty,max=500"`
}

type ChangeAppointmentStatus struct {
	Status string `json:"status" validate:"required,oneof=programada confirmada completada cancelada no_asistio"`
	Note   string `json:"note" validate:"omitempty,max=500"`
}

type AppointmentFilter struct {
	Status     string
	DoctorID   string
	PatientID  string
	From       *time.Time
	To         *time.Time
	Statuses   []string
	Pagination *Pagination
}
