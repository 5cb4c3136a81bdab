package models

import "time"

type Survey struct {
	ID          string           `json:"id"`
	Slug        string           `json:"slug"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Questions   []SurveyQuestion `json:"questions"`
	Active      bool             `json:"active"`
	CreatedAt   *time.Time       `json:"created_at,omitempty"`
}

type SurveyQuestion struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
}

// QuestionByKey returns the question with the given key, or nil.
func (s *Survey) QuestionByKey(key string) *SurveyQuestion {
	for i := range s.Questions {
		if s.Questions[i].Key == key {
			return &s.Questions[i]
		}
	}
	return nil
}

// SurveyAnswer is one answered question; rows from the same form submission
// share SubmissionID.
type SurveyAnswer struct {
	ID            string     `json:"id,omitempty"`
	SurveyID      string     `json:"survey_id"`
	PatientID     string     `json:"patient_id"`
	AppointmentID *string    `json:"appointment_id,omitempty"`
	SubmissionID  string     `json:"submission_id"`
	QuestionKey   string     `json:"question_key"`
	Answer        string     `json:"answer"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}
