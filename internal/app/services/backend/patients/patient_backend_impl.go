package patients

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

	"go.uber.org/zap"
)

var (
	patientBackendClientInstance contracts.PatientBackendClient
	oncePatientBackendClient     sync.Once
)

type patientBackendClient struct {
	Client *backend.Client
	Log    *zap.Logger
}

func NewPatientBackendClient(client *backend.Client, logger *zap.Logger) contracts.PatientBackendClient {
	oncePatientBackendClient.Do(func() {
		patientBackendClientInstance = &patientBackendClient{
			Client: client,
			Log:    logger,
		}
	})
	return patientBackendClientInstance
}

func (c *patientBackendClient) FindPatients(ctx context.Context, filter *requests.PatientFilter) ([]models.Patient, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientBackendClient.FindPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	q := backend.NewQuery().
		Select(constvars.BackendSelectAll).
		Order("created_at", true).
		CountExact()
	if filter != nil {
		if filter.Status != "" {
			q.Eq("status", filter.Status)
		}
		if filter.DoctorID != "" {
			q.Eq("doctor_id", filter.DoctorID)
		}
		if search := backend.SanitizePattern(filter.Search); search != "" {
			pattern := fmt.Sprintf("*%s*", search)
			q.Or(
				"first_name.ilike."+pattern,
				"last_name.ilike."+pattern,
				"document_number.ilike."+pattern,
			)
		}
		if filter.Pagination != nil {
			q.Limit(filter.Pagination.PageSize).Offset(filter.Pagination.Offset())
		}
	}

	var patients []models.Patient
	total, err := c.Client.Select(ctx, constvars.TablePatients, q, &patients)
	if err != nil {
		c.Log.Error("patientBackendClient.FindPatients error selecting patients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}
	if total < 0 {
		total = len(patients)
	}

	c.Log.Info("patientBackendClient.FindPatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(patients)),
		zap.Int(constvars.LoggingTotalKey, total),
	)
	return patients, total, nil
}

func (c *patientBackendClient) FindPatientByID(ctx context.Context, patientID string) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientBackendClient.FindPatientByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	q := backend.NewQuery().Select(constvars.BackendSelectAll).Eq("id", patientID).Limit(1)
	var patients []models.Patient
	if _, err := c.Client.Select(ctx, constvars.TablePatients, q, &patients); err != nil {
		c.Log.Error("patientBackendClient.FindPatientByID error selecting patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if len(patients) == 0 {
		c.Log.Info("patientBackendClient.FindPatientByID patient not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
		)
		return nil, exceptions.ErrBackendNotFound(nil, constvars.TablePatients, "patient")
	}

	c.Log.Info("patientBackendClient.FindPatientByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return &patients[0], nil
}

func (c *patientBackendClient) FindPatientsByIDs(ctx context.Context, patientIDs []string) ([]models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientBackendClient.FindPatientsByIDs called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(patientIDs)),
	)
	if len(patientIDs) == 0 {
		return []models.Patient{}, nil
	}

	q := backend.NewQuery().
		Select("id", "first_name", "last_name", "status").
		In("id", patientIDs)

	var patients []models.Patient
	if _, err := c.Client.Select(ctx, constvars.TablePatients, q, &patients); err != nil {
		c.Log.Error("patientBackendClient.FindPatientsByIDs error selecting patients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("patientBackendClient.FindPatientsByIDs succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(patients)),
	)
	return patients, nil
}

func (c *patientBackendClient) FindPatientsByStatus(ctx context.Context, status string, limit int) ([]models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientBackendClient.FindPatientsByStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStatusToKey, status),
	)

	// Oldest update first: the patients waiting longest for a follow-up
	// call come first.
	q := backend.NewQuery().
		Select(constvars.BackendSelectAll).
		Eq("status", status).
		Order("updated_at", false).
		Limit(limit)

	var patients []models.Patient
	if _, err := c.Client.Select(ctx, constvars.TablePatients, q, &patients); err != nil {
		c.Log.Error("patientBackendClient.FindPatientsByStatus error selecting patients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("patientBackendClient.FindPatientsByStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(patients)),
	)
	return patients, nil
}

// CountPatients returns the exact number of patients matching status and
// doctorID; empty values leave that filter out. Only the Content-Range total
// is read, so the backend's row cap does not apply.
func (c *patientBackendClient) CountPatients(ctx context.Context, status, doctorID string) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientBackendClient.CountPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStatusToKey, status),
	)

	q := backend.NewQuery().Select("id").Limit(1).CountExact()
	if status != "" {
		q.Eq("status", status)
	}
	if doctorID != "" {
		q.Eq("doctor_id", doctorID)
	}

	var rows []struct {
		ID string `json:"id"`
	}
	total, err := c.Client.Select(ctx, constvars.TablePatients, q, &rows)
	if err != nil {
		c.Log.Error("patientBackendClient.CountPatients error counting patients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, err
	}
	if total < 0 {
		total = len(rows)
	}

	c.Log.Info("patientBackendClient.CountPatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingTotalKey, total),
	)
	return total, nil
}

func (c *patientBackendClient) CreatePatient(ctx context.Context, patient *models.Patient) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientBackendClient.CreatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var created []models.Patient
	if err := c.Client.Insert(ctx, constvars.TablePatients, patient, &created); err != nil {
		c.Log.Error("patientBackendClient.CreatePatient error inserting patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if len(created) == 0 {
		return nil, exceptions.ErrBackendDecodeResponse(fmt.Errorf("insert returned no rows"), constvars.TablePatients)
	}

	c.Log.Info("patientBackendClient.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, created[0].ID),
	)
	return &created[0], nil
}

// UpdatePatient patches the row. A non-empty expectedStatus is added to the
// filter so the write only lands while the row still has that status; when
// nothing matches it fails with a conflict instead of not found.
func (c *patientBackendClient) UpdatePatient(ctx context.Context, patientID, expectedStatus string, fields map[string]interface{}) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientBackendClient.UpdatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	q := backend.NewQuery().Eq("id", patientID)
	if expectedStatus != "" {
		q.Eq("status", expectedStatus)
	}
	var updated []models.Patient
	if err := c.Client.Update(ctx, constvars.TablePatients, q, fields, &updated); err != nil {
		c.Log.Error("patientBackendClient.UpdatePatient error updating patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if len(updated) == 0 && expectedStatus != "" {
		c.Log.Info("patientBackendClient.UpdatePatient status precondition failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.String(constvars.LoggingStatusFromKey, expectedStatus),
		)
		return nil, exceptions.ErrStatusPreconditionFailed(nil, "patient", expectedStatus)
	}
	if len(updated) == 0 {
		return nil, exceptions.ErrBackendNotFound(nil, constvars.TablePatients, "patient")
	}

	c.Log.Info("patientBackendClient.UpdatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return &updated[0], nil
}

func (c *patientBackendClient) DeletePatient(ctx context.Context, patientID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientBackendClient.DeletePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	q := backend.NewQuery().Eq("id", patientID)
	if err := c.Client.Delete(ctx, constvars.TablePatients, q); err != nil {
		c.Log.Error("patientBackendClient.DeletePatient error deleting patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	c.Log.Info("patientBackendClient.DeletePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return nil
}
