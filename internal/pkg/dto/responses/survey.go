package responses

import "time"

type SurveySubmission struct {
	SubmissionID  string            `json:"submission_id"`
	SurveyID      string            `json:"survey_id"`
	PatientID     string            `json:"patient_id"`
	AppointmentID string            `json:"appointment_id,omitempty"`
	Answers       map[string]string `json:"answers"`
	SubmittedAt   *time.Time        `json:"submitted_at,omitempty"`
}
