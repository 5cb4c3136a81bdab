package patients

import (
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/dto/responses"
	"clinica-service/internal/pkg/exceptions"
	"clinica-service/internal/pkg/utils"
	"context"
	"time"

	"go.uber.org/zap"
)

type patientUsecase struct {
	PatientBackendClient contracts.PatientBackendClient
	AuditRepository      contracts.AuditRepository
	Notifier             contracts.Notifier
	QueryCache           contracts.QueryCache
	Log                  *zap.Logger
}

func NewPatientUsecase(
	patientBackendClient contracts.PatientBackendClient,
	auditRepository contracts.AuditRepository,
	notifier contracts.Notifier,
	queryCache contracts.QueryCache,
	logger *zap.Logger,
) contracts.PatientUsecase {
	return &patientUsecase{
		PatientBackendClient: patientBackendClient,
		AuditRepository:      auditRepository,
		Notifier:             notifier,
		QueryCache:           queryCache,
		Log:                  logger,
	}
}

func (uc *patientUsecase) ListPatients(ctx context.Context, filter *requests.PatientFilter) (*responses.PatientList, error) {
	patients, total, err := uc.PatientBackendClient.FindPatients(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &responses.PatientList{
		Patients: utils.BuildPatientResponses(patients),
		Total:    total,
	}, nil
}

func (uc *patientUsecase) GetPatient(ctx context.Context, patientID string) (*responses.Patient, error) {
	patient, err := uc.PatientBackendClient.FindPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	response := utils.BuildPatientResponse(*patient)
	return &response, nil
}

func (uc *patientUsecase) CreatePatient(ctx context.Context, request *requests.CreatePatient) (*responses.Patient, error) {
	requestID := utils.GetRequestID(ctx)

	status := request.Status
	if status == "" {
		status = constvars.PatientStatusPotential
	}

	created, err := uc.PatientBackendClient.CreatePatient(ctx, &models.Patient{
		FirstName:      request.FirstName,
		LastName:       request.LastName,
		DocumentNumber: request.DocumentNumber,
		Email:          request.Email,
		Phone:          request.Phone,
		BirthDate:      request.BirthDate,
		Gender:         request.Gender,
		Status:         status,
		DoctorID:       request.DoctorID,
		Procedure:      request.Procedure,
		Notes:          request.Notes,
	})
	if err != nil {
		return nil, err
	}

	uc.recordActivity(ctx, &models.AuditEvent{
		Entity:   constvars.AuditEntityPatient,
		EntityID: created.ID,
		Action:   constvars.AuditActionCreated,
		To:       created.Status,
	})
	uc.publish(ctx, constvars.EventPatientCreated, map[string]string{
		"patient_id": created.ID,
		"status":     created.Status,
	})
	uc.QueryCache.Invalidate(ctx, constvars.CacheNamespaceDashboard)

	uc.Log.Info("patientUsecase.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, created.ID),
	)

	response := utils.BuildPatientResponse(*created)
	return &response, nil
}

func (uc *patientUsecase) UpdatePatient(ctx context.Context, patientID string, request *requests.UpdatePatient) (*responses.Patient, error) {
	fields := buildPatientUpdateFields(request)
	if len(fields) == 0 {
		return uc.GetPatient(ctx, patientID)
	}
	fields["updated_at"] = time.Now().UTC()

	updated, err := uc.PatientBackendClient.UpdatePatient(ctx, patientID, "", fields)
	if err != nil {
		return nil, err
	}
	uc.QueryCache.Invalidate(ctx, constvars.CacheNamespaceDashboard)

	response := utils.BuildPatientResponse(*updated)
	return &response, nil
}

func (uc *patientUsecase) DeletePatient(ctx context.Context, patientID string) error {
	if err := uc.PatientBackendClient.DeletePatient(ctx, patientID); err != nil {
		return err
	}

	uc.recordActivity(ctx, &models.AuditEvent{
		Entity:   constvars.AuditEntityPatient,
		EntityID: patientID,
		Action:   constvars.AuditActionDeleted,
	})
	uc.QueryCache.Invalidate(ctx, constvars.CacheNamespaceDashboard)
	return nil
}

// ChangeStatus moves a patient to another status. Asking for the current
// status is accepted and leaves the patient untouched.
func (uc *patientUsecase) ChangeStatus(ctx context.Context, patientID string, request *requests.ChangePatientStatus) (*responses.Patient, error) {
	requestID := utils.GetRequestID(ctx)

	current, err := uc.PatientBackendClient.FindPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if err := utils.CanTransitionPatientStatus(current.Status, request.Status); err != nil {
		uc.Log.Info("patientUsecase.ChangeStatus rejected transition",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.String(constvars.LoggingStatusFromKey, current.Status),
			zap.String(constvars.LoggingStatusToKey, request.Status),
			zap.Error(err),
		)
		return nil, exceptions.ErrPatientStatusTransition(err, current.Status, request.Status)
	}
	if current.Status == request.Status {
		response := utils.BuildPatientResponse(*current)
		return &response, nil
	}

	return uc.applyStatus(ctx, current, request.Status, request.Note)
}

// SetFollowUp puts the patient into follow-up. A patient already in
// follow-up is touched again so it moves to the end of the follow-up queue.
func (uc *patientUsecase) SetFollowUp(ctx context.Context, patientID string) (*responses.Patient, error) {
	current, err := uc.PatientBackendClient.FindPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if !utils.CanSetFollowUpFrom(current.Status) {
		return nil, exceptions.ErrPatientStatusTransition(utils.ErrFollowUpNotAllowed, current.Status, constvars.PatientStatusFollowUp)
	}

	return uc.applyStatus(ctx, current, constvars.PatientStatusFollowUp, "")
}

func (uc *patientUsecase) ListActivity(ctx context.Context, patientID string, limit int) ([]models.AuditEvent, error) {
	if _, err := uc.PatientBackendClient.FindPatientByID(ctx, patientID); err != nil {
		return nil, err
	}
	return uc.AuditRepository.ListByEntity(ctx, constvars.AuditEntityPatient, patientID, limit)
}

func (uc *patientUsecase) applyStatus(ctx context.Context, current *models.Patient, status, note string) (*responses.Patient, error) {
	requestID := utils.GetRequestID(ctx)

	// Only lands while the patient still has the status checked above.
	updated, err := uc.PatientBackendClient.UpdatePatient(ctx, current.ID, current.Status, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	uc.recordActivity(ctx, &models.AuditEvent{
		Entity:   constvars.AuditEntityPatient,
		EntityID: current.ID,
		Action:   constvars.AuditActionStatusChanged,
		From:     current.Status,
		To:       status,
		Note:     note,
	})
	uc.publish(ctx, constvars.EventPatientStatusChanged, map[string]string{
		"patient_id": current.ID,
		"from":       current.Status,
		"to":         status,
	})
	uc.QueryCache.Invalidate(ctx, constvars.CacheNamespaceDashboard)

	utils.LogBusinessEvent(uc.Log, "patient_status_changed", requestID,
		zap.String(constvars.LoggingPatientIDKey, current.ID),
		zap.String(constvars.LoggingStatusFromKey, current.Status),
		zap.String(constvars.LoggingStatusToKey, status),
	)

	response := utils.BuildPatientResponse(*updated)
	return &response, nil
}

// recordActivity and publish run after the backend write succeeded; their
// failures are logged and do not fail the request.
func (uc *patientUsecase) recordActivity(ctx context.Context, event *models.AuditEvent) {
	event.ActorID = utils.GetUID(ctx)
	if err := uc.AuditRepository.Record(ctx, event); err != nil {
		uc.Log.Warn("patientUsecase audit record failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEntityIDKey, event.EntityID),
			zap.Error(err),
		)
	}
}

func (uc *patientUsecase) publish(ctx context.Context, event string, data interface{}) {
	if err := uc.Notifier.Publish(ctx, event, data); err != nil {
		uc.Log.Warn("patientUsecase event publish failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventKey, event),
			zap.Error(err),
		)
	}
}

func buildPatientUpdateFields(request *requests.UpdatePatient) map[string]interface{} {
	fields := map[string]interface{}{}
	if request == nil {
		return fields
	}
	setIfPresent(fields, "first_name", request.FirstName)
	setIfPresent(fields, "last_name", request.LastName)
	setIfPresent(fields, "document_number", request.DocumentNumber)
	setIfPresent(fields, "email", request.Email)
	setIfPresent(fields, "phone", request.Phone)
	setIfPresent(fields, "birth_date", request.BirthDate)
	setIfPresent(fields, "gender", request.Gender)
	setIfPresent(fields, "doctor_id", request.DoctorID)
	setIfPresent(fields, "procedure", request.Procedure)
	setIfPresent(fields, "notes", request.Notes)
	return fields
}

func setIfPresent(fields map[string]interface{}, column string, value *string) {
	if value != nil {
		fields[column] = *value
	}
}
