package contracts

import (
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/dto/responses"
	"context"
	"time"
)

type SurveyUsecase interface {
	ListSurveys(ctx context.Context) ([]models.Survey, error)
	GetSurvey(ctx context.Context, slug string) (*models.Survey, error)
	SubmitAnswers(ctx context.Context, slug string, request *requests.SubmitSurveyAnswers) (*responses.SurveySubmission, error)
	ListResponses(ctx context.Context, slug, patientID string) ([]responses.SurveySubmission, error)
	ListPatientSubmissions(ctx context.Context, patientID string) ([]responses.SurveySubmission, error)
}

type SurveyBackendClient interface {
	FindActiveSurveys(ctx context.Context) ([]models.Survey, error)
	FindSurveyBySlug(ctx context.Context, slug string) (*models.Survey, error)
}

type SurveyAnswerBackendClient interface {
	CreateAnswers(ctx context.Context, answers []models.SurveyAnswer) ([]models.SurveyAnswer, error)
	FindAnswers(ctx context.Context, surveyID, patientID string) ([]models.SurveyAnswer, error)
	CountSubmissionsSince(ctx context.Context, since time.Time, doctorID string) (int, error)
}
