package appointment_history

import (
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/app/models"
	"clinica-service/internal/app/services/backend"
	"clinica-service/internal/pkg/constvars"
	"context"
	"sync"

	"go.uber.org/zap"
)

var (
	appointmentHistoryBackendClientInstance contracts.AppointmentHistoryBackendClient
	onceAppointmentHistoryBackendClient     sync.Once
)

type appointmentHistoryBackendClient struct {
	Client *backend.Client
	Log    *zap.Logger
}

func NewAppointmentHistoryBackendClient(client *backend.Client, logger *zap.Logger) contracts.AppointmentHistoryBackendClient {
	onceAppointmentHistoryBackendClient.Do(func() {
		appointmentHistoryBackendClientInstance = &appointmentHistoryBackendClient{
			Client: client,
			Log:    logger,
		}
	})
	return appointmentHistoryBackendClientInstance
}

// FindHistoryByAppointmentID is a single select filtered on appointment_id,
// newest entry first.
func (c *appointmentHistoryBackendClient) FindHistoryByAppointmentID(ctx context.Context, appointmentID string) ([]models.AppointmentHistory, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("appointmentHistoryBackendClient.FindHistoryByAppointmentID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	q := backend.NewQuery().
		Select(constvars.BackendSelectAll).
		Eq("appointment_id", appointmentID).
		Order("created_at", true)

	history := []models.AppointmentHistory{}
	if _, err := c.Client.Select(ctx, constvars.TableAppointmentHistory, q, &history); err != nil {
		c.Log.Error("appointmentHistoryBackendClient.FindHistoryByAppointmentID error selecting history",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("appointmentHistoryBackendClient.FindHistoryByAppointmentID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(history)),
	)
	return history, nil
}

func (c *appointmentHistoryBackendClient) CreateHistory(ctx context.Context, entry *models.AppointmentHistory) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("appointmentHistoryBackendClient.CreateHistory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, entry.AppointmentID),
	)

	if err := c.Client.Insert(ctx, constvars.TableAppointmentHistory, entry, nil); err != nil {
		c.Log.Error("appointmentHistoryBackendClient.CreateHistory error inserting history",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	c.Log.Info("appointmentHistoryBackendClient.CreateHistory succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, entry.AppointmentID),
	)
	return nil
}
