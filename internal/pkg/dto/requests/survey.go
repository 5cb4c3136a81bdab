package requests

type SubmitSurveyAnswers struct {
	PatientID     string            `json:"patient_id" validate:"required,uuid"`
	AppointmentID string            `json:"appointment_id" validate:"omitempty,uuid"`
	Answers       map[string]string `json:"answers" validate:"required,min=1"`
}
