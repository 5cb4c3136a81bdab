package profiles

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
	profileBackendClientInstance contracts.ProfileBackendClient
	onceProfileBackendClient     sync.Once
)

type profileBackendClient struct {
	Client *backend.Client
	Log    *zap.Logger
}

func NewProfileBackendClient(client *backend.Client, logger *zap.Logger) contracts.ProfileBackendClient {
	onceProfileBackendClient.Do(func() {
		profileBackendClientInstance = &profileBackendClient{
			Client: client,
			Log:    logger,
		}
	})
	return profileBackendClientInstance
}

func (c *profileBackendClient) FindProfileByID(ctx context.Context, profileID string) (*models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("profileBackendClient.FindProfileByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUIDKey, profileID),
	)

	q := backend.NewQuery().Select(constvars.BackendSelectAll).Eq("id", profileID).Limit(1)
	var profiles []models.Profile
	if _, err := c.Client.Select(ctx, constvars.TableProfiles, q, &profiles); err != nil {
		c.Log.Error("profileBackendClient.FindProfileByID error selecting profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, exceptions.ErrBackendNotFound(nil, constvars.TableProfiles, "profile")
	}

	c.Log.Info("profileBackendClient.FindProfileByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUIDKey, profileID),
	)
	return &profiles[0], nil
}

func (c *profileBackendClient) FindProfiles(ctx context.Context) ([]models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("profileBackendClient.FindProfiles called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	q := backend.NewQuery().Select(constvars.BackendSelectAll).Order("full_name", false)
	profiles := []models.Profile{}
	if _, err := c.Client.Select(ctx, constvars.TableProfiles, q, &profiles); err != nil {
		c.Log.Error("profileBackendClient.FindProfiles error selecting profiles",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("profileBackendClient.FindProfiles succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(profiles)),
	)
	return profiles, nil
}

func (c *profileBackendClient) UpdateProfile(ctx context.Context, profileID string, fields map[string]interface{}) (*models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("profileBackendClient.UpdateProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUIDKey, profileID),
	)

	q := backend.NewQuery().Eq("id", profileID)
	var updated []models.Profile
	if err := c.Client.Update(ctx, constvars.TableProfiles, q, fields, &updated); err != nil {
		c.Log.Error("profileBackendClient.UpdateProfile error updating profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if len(updated) == 0 {
		return nil, exceptions.ErrBackendNotFound(nil, constvars.TableProfiles, "profile")
	}

	c.Log.Info("profileBackendClient.UpdateProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUIDKey, profileID),
	)
	return &updated[0], nil
}
