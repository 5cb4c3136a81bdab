package models

import "time"

// Patient mirrors a row of the backend "patients" table.
type Patient struct {
	ID             string     `json:"id,omitempty"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	DocumentNumber string     `json:"document_number,omitempty"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	BirthDate      string     `json:"birth_date,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	Status         string     `json:"status"`
	DoctorID       string     `json:"doctor_id,omitempty"`
	Procedure      string     `json:"procedure,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
