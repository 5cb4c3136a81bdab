package survey_answers

import (
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/app/models"
	"clinica-service/internal/app/services/backend"
	"clinica-service/internal/pkg/constvars"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	surveyAnswerBackendClientInstance contracts.SurveyAnswerBackendClient
	onceSurveyAnswerBackendClient     sync.Once
)

type surveyAnswerBackendClient struct {
	Client *backend.Client
	Log    *zap.Logger
}

func NewSurveyAnswerBackendClient(client *backend.Client, logger *zap.Logger) contracts.SurveyAnswerBackendClient {
	onceSurveyAnswerBackendClient.Do(func() {
		surveyAnswerBackendClientInstance = &surveyAnswerBackendClient{
			Client: client,
			Log:    logger,
		}
	})
	return surveyAnswerBackendClientInstance
}

// CreateAnswers inserts every answer of a submission in one bulk request.
func (c *surveyAnswerBackendClient) CreateAnswers(ctx context.Context, answers []models.SurveyAnswer) ([]models.SurveyAnswer, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("surveyAnswerBackendClient.CreateAnswers called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(answers)),
	)

	created := []models.SurveyAnswer{}
	if err := c.Client.Insert(ctx, constvars.TableSurveyAnswers, answers, &created); err != nil {
		c.Log.Error("surveyAnswerBackendClient.CreateAnswers error inserting answers",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("surveyAnswerBackendClient.CreateAnswers succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(created)),
	)
	return created, nil
}

// FindAnswers lists answers newest first. Empty surveyID or patientID leave
// that filter out.
func (c *surveyAnswerBackendClient) FindAnswers(ctx context.Context, surveyID, patientID string) ([]models.SurveyAnswer, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("surveyAnswerBackendClient.FindAnswers called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	q := backend.NewQuery().
		Select(constvars.BackendSelectAll).
		Order("created_at", true).
		Order("question_key", false)
	if surveyID != "" {
		q.Eq("survey_id", surveyID)
	}
	if patientID != "" {
		q.Eq("patient_id", patientID)
	}

	answers := []models.SurveyAnswer{}
	if _, err := c.Client.Select(ctx, constvars.TableSurveyAnswers, q, &answers); err != nil {
		c.Log.Error("surveyAnswerBackendClient.FindAnswers error selecting answers",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("surveyAnswerBackendClient.FindAnswers succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(answers)),
	)
	return answers, nil
}

// CountSubmissionsSince counts distinct submissions created at or after
// since. A non-empty doctorID keeps only answers of that doctor's patients.
// Answer rows are read page by page until the Content-Range total is
// reached, since one submission spans several rows.
func (c *surveyAnswerBackendClient) CountSubmissionsSince(ctx context.Context, since time.Time, doctorID string) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("surveyAnswerBackendClient.CountSubmissionsSince called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Time(constvars.LoggingWindowStartKey, since),
	)

	seen := map[string]struct{}{}
	for offset := 0; ; offset += constvars.BackendMaxRows {
		q := backend.NewQuery().
			Gte("created_at", since.UTC().Format(time.RFC3339)).
			Order("submission_id", false).
			Order("id", false).
			Limit(constvars.BackendMaxRows).
			Offset(offset).
			CountExact()
		if doctorID != "" {
			q.Select("submission_id", "patients!inner(doctor_id)").Eq("patients.doctor_id", doctorID)
		} else {
			q.Select("submission_id")
		}

		var rows []struct {
			SubmissionID string `json:"submission_id"`
		}
		total, err := c.Client.Select(ctx, constvars.TableSurveyAnswers, q, &rows)
		if err != nil {
			c.Log.Error("surveyAnswerBackendClient.CountSubmissionsSince error selecting answers",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int("offset", offset),
				zap.Error(err),
			)
			return 0, err
		}
		for _, row := range rows {
			seen[row.SubmissionID] = struct{}{}
		}
		if len(rows) < constvars.BackendMaxRows || (total >= 0 && offset+len(rows) >= total) {
			break
		}
	}

	c.Log.Info("surveyAnswerBackendClient.CountSubmissionsSince succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingTotalKey, len(seen)),
	)
	return len(seen), nil
}
