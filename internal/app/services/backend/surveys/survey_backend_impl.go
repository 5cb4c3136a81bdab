package surveys

import (
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/app/models"
	"clinica-service/internal/app/services/backend"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/exceptions"
	"context"
	"sync"

	"go.uber.org/zap"
)

var (
	surveyBackendClientInstance contracts.SurveyBackendClient
	onceSurveyBackendClient     sync.Once
)

type surveyBackendClient struct {
	Client *backend.Client
	Log    *zap.Logger
}

func NewSurveyBackendClient(client *backend.Client, logger *zap.Logger) contracts.SurveyBackendClient {
	onceSurveyBackendClient.Do(func() {
		surveyBackendClientInstance = &surveyBackendClient{
			Client: client,
			Log:    logger,
		}
	})
	return surveyBackendClientInstance
}

func (c *surveyBackendClient) FindActiveSurveys(ctx context.Context) ([]models.Survey, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("surveyBackendClient.FindActiveSurveys called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	q := backend.NewQuery().
		Select(constvars.BackendSelectAll).
		Eq("active", "true").
		Order("title", false)

	surveys := []models.Survey{}
	if _, err := c.Client.Select(ctx, constvars.TableSurveys, q, &surveys); err != nil {
		c.Log.Error("surveyBackendClient.FindActiveSurveys error selecting surveys",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("surveyBackendClient.FindActiveSurveys succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(surveys)),
	)
	return surveys, nil
}

func (c *surveyBackendClient) FindSurveyBySlug(ctx context.Context, slug string) (*models.Survey, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("surveyBackendClient.FindSurveyBySlug called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSurveySlugKey, slug),
	)

	q := backend.NewQuery().Select(constvars.BackendSelectAll).Eq("slug", slug).Limit(1)
	var surveys []models.Survey
	if _, err := c.Client.Select(ctx, constvars.TableSurveys, q, &surveys); err != nil {
		c.Log.Error("surveyBackendClient.FindSurveyBySlug error selecting survey",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if len(surveys) == 0 {
		return nil, exceptions.ErrBackendNotFound(nil, constvars.TableSurveys, "survey")
	}

	c.Log.Info("surveyBackendClient.FindSurveyBySlug succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSurveySlugKey, slug),
	)
	return &surveys[0], nil
}
