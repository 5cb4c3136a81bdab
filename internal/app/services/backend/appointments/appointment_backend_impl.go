package appointments

import (
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/app/models"
	"clinica-service/internal/app/services/backend"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	appointmentBackendClientInstance contracts.AppointmentBackendClient
	onceAppointmentBackendClient     sync.Once
)

type appointmentBackendClient struct {
	Client *backend.Client
	Log    *zap.Logger
}

func NewAppointmentBackendClient(client *backend.Client, logger *zap.Logger) contracts.AppointmentBackendClient {
	onceAppointmentBackendClient.Do(func() {
		appointmentBackendClientInstance = &appointmentBackendClient{
			Client: client,
			Log:    logger,
		}
	})
	return appointmentBackendClientInstance
}

func (c *appointmentBackendClient) FindAppointments(ctx context.Context, filter *requests.AppointmentFilter) ([]models.Appointment, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("appointmentBackendClient.FindAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	q := applyFilter(backend.NewQuery().Select(constvars.BackendSelectAll), filter).
		Order("scheduled_at", false).
		CountExact()
	if filter != nil && filter.Pagination != nil {
		q.Limit(filter.Pagination.PageSize).Offset(filter.Pagination.Offset())
	}

	var appointments []models.Appointment
	total, err := c.Client.Select(ctx, constvars.TableAppointments, q, &appointments)
	if err != nil {
		c.Log.Error("appointmentBackendClient.FindAppointments error selecting appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}
	if total < 0 {
		total = len(appointments)
	}

	c.Log.Info("appointmentBackendClient.FindAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(appointments)),
		zap.Int(constvars.LoggingTotalKey, total),
	)
	return appointments, total, nil
}

func (c *appointmentBackendClient) CountAppointments(ctx context.Context, filter *requests.AppointmentFilter) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("appointmentBackendClient.CountAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	q := applyFilter(backend.NewQuery().Select("id"), filter).Limit(1).CountExact()

	var rows []struct {
		ID string `json:"id"`
	}
	total, err := c.Client.Select(ctx, constvars.TableAppointments, q, &rows)
	if err != nil {
		c.Log.Error("appointmentBackendClient.CountAppointments error counting appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, err
	}
	if total < 0 {
		total = len(rows)
	}

	c.Log.Info("appointmentBackendClient.CountAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingTotalKey, total),
	)
	return total, nil
}

func (c *appointmentBackendClient) FindAppointmentByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("appointmentBackendClient.FindAppointmentByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	q := backend.NewQuery().Select(constvars.BackendSelectAll).Eq("id", appointmentID).Limit(1)
	var appointments []models.Appointment
	if _, err := c.Client.Select(ctx, constvars.TableAppointments, q, &appointments); err != nil {
		c.Log.Error("appointmentBackendClient.FindAppointmentByID error selecting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, exceptions.ErrBackendNotFound(nil, constvars.TableAppointments, "appointment")
	}

	c.Log.Info("appointmentBackendClient.FindAppointmentByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return &appointments[0], nil
}

func (c *appointmentBackendClient) CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("appointmentBackendClient.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, appointment.PatientID),
	)

	var created []models.Appointment
	if err := c.Client.Insert(ctx, constvars.TableAppointments, appointment, &created); err != nil {
		c.Log.Error("appointmentBackendClient.CreateAppointment error inserting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if len(created) == 0 {
		return nil, exceptions.ErrBackendDecodeResponse(fmt.Errorf("insert returned no rows"), constvars.TableAppointments)
	}

	c.Log.Info("appointmentBackendClient.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, created[0].ID),
	)
	return &created[0], nil
}

// UpdateAppointment patches the row. A non-empty expectedStatus is added to the
// filter so the write only lands while the row still has that status; when
// nothing matches it fails with a conflict instead of not found.
func (c *appointmentBackendClient) UpdateAppointment(ctx context.Context, appointmentID, expectedStatus string, fields map[string]interface{}) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("appointmentBackendClient.UpdateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	q := backend.NewQuery().Eq("id", appointmentID)
	if expectedStatus != "" {
		q.Eq("status", expectedStatus)
	}
	var updated []models.Appointment
	if err := c.Client.Update(ctx, constvars.TableAppointments, q, fields, &updated); err != nil {
		c.Log.Error("appointmentBackendClient.UpdateAppointment error updating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if len(updated) == 0 && expectedStatus != "" {
		c.Log.Info("appointmentBackendClient.UpdateAppointment status precondition failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.String(constvars.LoggingStatusFromKey, expectedStatus),
		)
		return nil, exceptions.ErrStatusPreconditionFailed(nil, "appointment", expectedStatus)
	}
	if len(updated) == 0 {
		return nil, exceptions.ErrBackendNotFound(nil, constvars.TableAppointments, "appointment")
	}

	c.Log.Info("appointmentBackendClient.UpdateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return &updated[0], nil
}

func applyFilter(q *backend.Query, filter *requests.AppointmentFilter) *backend.Query {
	if filter == nil {
		return q
	}
	if filter.Status != "" {
		q.Eq("status", filter.Status)
	}
	if len(filter.Statuses) > 0 {
		q.In("status", filter.Statuses)
	}
	if filter.DoctorID != "" {
		q.Eq("doctor_id", filter.DoctorID)
	}
	if filter.PatientID != "" {
		q.Eq("patient_id", filter.PatientID)
	}
	if filter.From != nil {
		q.Gte("scheduled_at", filter.From.UTC().Format(time.RFC3339))
	}
	if filter.To != nil {
		q.Lt("scheduled_at", filter.To.UTC().Format(time.RFC3339))
	}
	return q
}
