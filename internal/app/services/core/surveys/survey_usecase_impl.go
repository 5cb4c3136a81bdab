package surveys

import (
	"clinica-service/internal/app/config"
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/dto/responses"
	"clinica-service/internal/pkg/exceptions"
	"clinica-service/internal/pkg/utils"
	"context"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type surveyUsecase struct {
	SurveyBackendClient       contracts.SurveyBackendClient
	SurveyAnswerBackendClient contracts.SurveyAnswerBackendClient
	Notifier                  contracts.Notifier
	QueryCache                contracts.QueryCache
	ResourceLimiter           contracts.ResourceLimiter
	InternalConfig            *config.InternalConfig
	Log                       *zap.Logger
}

func NewSurveyUsecase(
	surveyBackendClient contracts.SurveyBackendClient,
	surveyAnswerBackendClient contracts.SurveyAnswerBackendClient,
	notifier contracts.Notifier,
	queryCache contracts.QueryCache,
	resourceLimiter contracts.ResourceLimiter,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.SurveyUsecase {
	return &surveyUsecase{
		SurveyBackendClient:       surveyBackendClient,
		SurveyAnswerBackendClient: surveyAnswerBackendClient,
		Notifier:                  notifier,
		QueryCache:                queryCache,
		ResourceLimiter:           resourceLimiter,
		InternalConfig:            internalConfig,
		Log:                       logger,
	}
}

func (uc *surveyUsecase) ListSurveys(ctx context.Context) ([]models.Survey, error) {
	surveys := []models.Survey{}
	err := uc.QueryCache.Fetch(ctx, constvars.CacheNamespaceSurveys, map[string]string{"scope": "active"}, uc.surveyTTL(), &surveys,
		func(ctx context.Context) error {
			found, err := uc.SurveyBackendClient.FindActiveSurveys(ctx)
			if err != nil {
				return err
			}
			surveys = found
			return nil
		})
	if err != nil {
		return nil, err
	}
	return surveys, nil
}

func (uc *surveyUsecase) GetSurvey(ctx context.Context, slug string) (*models.Survey, error) {
	survey := &models.Survey{}
	err := uc.QueryCache.Fetch(ctx, constvars.CacheNamespaceSurveys, map[string]string{"slug": slug}, uc.surveyTTL(), survey,
		func(ctx context.Context) error {
			found, err := uc.SurveyBackendClient.FindSurveyBySlug(ctx, slug)
			if err != nil {
				return err
			}
			*survey = *found
			return nil
		})
	if err != nil {
		return nil, err
	}
	return survey, nil
}

// SubmitAnswers validates a filled-in form against the survey definition and
// stores one row per answered question under a fresh submission id.
func (uc *surveyUsecase) SubmitAnswers(ctx context.Context, slug string, request *requests.SubmitSurveyAnswers) (*responses.SurveySubmission, error) {
	requestID := utils.GetRequestID(ctx)

	survey, err := uc.GetSurvey(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !survey.Active {
		return nil, exceptions.ErrSurveyInactive(nil, slug)
	}

	answers, err := ValidateAnswers(survey, request.Answers)
	if err != nil {
		uc.Log.Info("surveyUsecase.SubmitAnswers rejected answers",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSurveySlugKey, slug),
			zap.Error(err),
		)
		return nil, err
	}
	if len(answers) == 0 {
		uc.Log.Info("surveyUsecase.SubmitAnswers nothing answered",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSurveySlugKey, slug),
		)
		return nil, exceptions.ErrSurveyEmptySubmission(nil)
	}

	if err := uc.checkSubmissionQuota(ctx, slug, request.PatientID); err != nil {
		return nil, err
	}

	submissionID := uuid.NewString()
	var appointmentID *string
	if request.AppointmentID != "" {
		appointmentID = &request.AppointmentID
	}

	rows := make([]models.SurveyAnswer, 0, len(answers))
	for _, question := range survey.Questions {
		answer, ok := answers[question.Key]
		if !ok {
			continue
		}
		rows = append(rows, models.SurveyAnswer{
			SurveyID:      survey.ID,
			PatientID:     request.PatientID,
			AppointmentID: appointmentID,
			SubmissionID:  submissionID,
			QuestionKey:   question.Key,
			Answer:        answer,
		})
	}

	created, err := uc.SurveyAnswerBackendClient.CreateAnswers(ctx, rows)
	if err != nil {
		return nil, err
	}

	uc.QueryCache.Invalidate(ctx, constvars.CacheNamespaceAnswers, constvars.CacheNamespaceDashboard)
	if err := uc.Notifier.Publish(ctx, constvars.EventSurveySubmitted, map[string]string{
		"survey_id":     survey.ID,
		"survey_slug":   survey.Slug,
		"patient_id":    request.PatientID,
		"submission_id": submissionID,
	}); err != nil {
		uc.Log.Warn("surveyUsecase event publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventKey, constvars.EventSurveySubmitted),
			zap.Error(err),
		)
	}

	utils.LogBusinessEvent(uc.Log, "survey_submitted", requestID,
		zap.String(constvars.LoggingSurveySlugKey, slug),
		zap.String(constvars.LoggingSubmissionIDKey, submissionID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	submissions := groupSubmissions(created)
	if len(submissions) == 0 {
		now := time.Now().UTC()
		return &responses.SurveySubmission{
			SubmissionID:  submissionID,
			SurveyID:      survey.ID,
			PatientID:     request.PatientID,
			AppointmentID: request.AppointmentID,
			Answers:       answers,
			SubmittedAt:   &now,
		}, nil
	}
	return &submissions[0], nil
}

// checkSubmissionQuota caps how often one patient can answer the same
// survey. A limiter outage lets the submission through.
func (uc *surveyUsecase) checkSubmissionQuota(ctx context.Context, slug, patientID string) error {
	if uc.ResourceLimiter == nil {
		return nil
	}

	limits := uc.InternalConfig.Surveys
	window := time.Duration(limits.SubmissionWindowInMinutes) * time.Minute
	result, err := uc.ResourceLimiter.Allow(ctx, constvars.RateLimitGroupSurvey, slug+":"+patientID, window, limits.MaxSubmissionsPerWindow)
	if err != nil {
		uc.Log.Warn("surveyUsecase submission limiter unavailable",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil
	}
	if !result.Allowed {
		uc.Log.Info("surveyUsecase.SubmitAnswers quota exceeded",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingSurveySlugKey, slug),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Duration("retry_after", result.RetryAfter),
		)
		return exceptions.ErrTooManyRequests(nil)
	}
	return nil
}

func (uc *surveyUsecase) ListResponses(ctx context.Context, slug, patientID string) ([]responses.SurveySubmission, error) {
	survey, err := uc.GetSurvey(ctx, slug)
	if err != nil {
		return nil, err
	}

	params := map[string]string{"survey_id": survey.ID, "patient_id": patientID}
	return uc.fetchSubmissions(ctx, params, survey.ID, patientID)
}

func (uc *surveyUsecase) ListPatientSubmissions(ctx context.Context, patientID string) ([]responses.SurveySubmission, error) {
	return uc.fetchSubmissions(ctx, map[string]string{"patient_id": patientID}, "", patientID)
}

func (uc *surveyUsecase) fetchSubmissions(ctx context.Context, params map[string]string, surveyID, patientID string) ([]responses.SurveySubmission, error) {
	submissions := []responses.SurveySubmission{}
	ttl := time.Duration(uc.InternalConfig.Cache.AnswersTTLInSeconds) * time.Second
	err := uc.QueryCache.Fetch(ctx, constvars.CacheNamespaceAnswers, params, ttl, &submissions,
		func(ctx context.Context) error {
			answers, err := uc.SurveyAnswerBackendClient.FindAnswers(ctx, surveyID, patientID)
			if err != nil {
				return err
			}
			submissions = groupSubmissions(answers)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (uc *surveyUsecase) surveyTTL() time.Duration {
	return time.Duration(uc.InternalConfig.Cache.SurveyTTLInSeconds) * time.Second
}

// ValidateAnswers checks answers against the survey questions and returns
// the trimmed, non-empty answers keyed by question.
func ValidateAnswers(survey *models.Survey, answers map[string]string) (map[string]string, error) {
	keys := make([]string, 0, len(answers))
	for key := range answers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if survey.QuestionByKey(key) == nil {
			return nil, exceptions.ErrSurveyUnknownQuestion(nil, key)
		}
	}

	cleaned := make(map[string]string, len(answers))
	for _, question := range survey.Questions {
		answer := strings.TrimSpace(answers[question.Key])
		if answer == "" {
			if question.Required {
				return nil, exceptions.ErrSurveyAnswerRequired(nil, question.Key)
			}
			continue
		}

		switch question.Type {
		case constvars.SurveyQuestionTypeChoice:
			if !slices.Contains(question.Options, answer) {
				return nil, exceptions.ErrSurveyInvalidOption(nil, question.Key, question.Options)
			}
		case constvars.SurveyQuestionTypeNumber, constvars.SurveyQuestionTypeScale:
			value, err := strconv.ParseFloat(answer, 64)
			if err != nil {
				return nil, exceptions.ErrSurveyInvalidNumber(err, question.Key)
			}
			if (question.Min != nil && value < *question.Min) || (question.Max != nil && value > *question.Max) {
				return nil, exceptions.ErrSurveyInvalidNumber(nil, question.Key)
			}
		case constvars.SurveyQuestionTypeBool:
			value, err := strconv.ParseBool(answer)
			if err != nil {
				return nil, exceptions.ErrSurveyInvalidOption(err, question.Key, []string{"true", "false"})
			}
			answer = strconv.FormatBool(value)
		}
		cleaned[question.Key] = answer
	}
	return cleaned, nil
}

// groupSubmissions folds answer rows into submissions, newest first.
func groupSubmissions(answers []models.SurveyAnswer) []responses.SurveySubmission {
	index := map[string]int{}
	submissions := []responses.SurveySubmission{}
	for _, answer := range answers {
		i, ok := index[answer.SubmissionID]
		if !ok {
			submission := responses.SurveySubmission{
				SubmissionID: answer.SubmissionID,
				SurveyID:     answer.SurveyID,
				PatientID:    answer.PatientID,
				Answers:      map[string]string{},
				SubmittedAt:  answer.CreatedAt,
			}
			if answer.AppointmentID != nil {
				submission.AppointmentID = *answer.AppointmentID
			}
			submissions = append(submissions, submission)
			i = len(submissions) - 1
			index[answer.SubmissionID] = i
		}
		submissions[i].Answers[answer.QuestionKey] = answer.Answer
		if answer.CreatedAt != nil && (submissions[i].SubmittedAt == nil || answer.CreatedAt.After(*submissions[i].SubmittedAt)) {
			submissions[i].SubmittedAt = answer.CreatedAt
		}
	}

	sort.SliceStable(submissions, func(a, b int) bool {
		left, right := submissions[a].SubmittedAt, submissions[b].SubmittedAt
		if left == nil || right == nil {
			return left != nil
		}
		return left.After(*right)
	})
	return submissions
}
