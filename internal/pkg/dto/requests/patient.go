package requests

type CreatePatient struct {
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	DocumentNumber string `json:"document_number" validate:"omitempty,max=30"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"omitempty,phone_number"`
	BirthDate      string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Gender         string `json:"gender" validate:"omitempty,oneof=femenino masculino otro"`
	Status         string `json:"status" validate:"omitempty,patient_status"`
	DoctorID       string `json:"doctor_id" validate:"omitempty,uuid"`
	Procedure      string `json:"procedure" validate:"omitempty,max=200"`
	Notes          string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdatePatient carries only the fields the client sent; nil pointers are not
// forwarded to the backend.
type UpdatePatient struct {
	FirstName      *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName       *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	DocumentNumber *string `json:"document_number,omitempty" validate:"omitempty,max=30"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,phone_number"`
	BirthDate      *string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender         *string `json:"gender,omitempty" validate:"omitempty,oneof=femenino masculino otro"`
	DoctorID       *string `json:"doctor_id,omitempty" validate:"omitempty,uuid"`
	Procedure      *string `json:"procedure,omitempty" validate:"omitempty,max=200"`
	Notes          *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type ChangePatientStatus struct {
	Status string `json:"status" validate:"required,patient_status"`
	Note   string `json:"note" validate:"omitempty,max=500"`
}

type PatientFilter struct {
	Status     string
	DoctorID   string
	Search     string
	Pagination *Pagination
}
