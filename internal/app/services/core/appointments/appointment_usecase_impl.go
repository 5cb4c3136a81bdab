package appointments

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

const defaultDurationMinutes = 30

type appointmentUsecase struct {
	AppointmentBackendClient        contracts.AppointmentBackendClient
	AppointmentHistoryBackendClient contracts.AppointmentHistoryBackendClient
	PatientBackendClient            contracts.PatientBackendClient
	AuditRepository                 contracts.AuditRepository
	Notifier                        contracts.Notifier
	QueryCache                      contracts.QueryCache
	Log                             *zap.Logger
}

func NewAppointmentUsecase(
	appointmentBackendClient contracts.AppointmentBackendClient,
	appointmentHistoryBackendClient contracts.AppointmentHistoryBackendClient,
	patientBackendClient contracts.PatientBackendClient,
	auditRepository contracts.AuditRepository,
	notifier contracts.Notifier,
	queryCache contracts.QueryCache,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentBackendClient:        appointmentBackendClient,
		AppointmentHistoryBackendClient: appointmentHistoryBackendClient,
		PatientBackendClient:            patientBackendClient,
		AuditRepository:                 auditRepository,
		Notifier:                        notifier,
		QueryCache:                      queryCache,
		Log:                             logger,
	}
}

func (uc *appointmentUsecase) ListAppointments(ctx context.Context, filter *requests.AppointmentFilter) (*responses.AppointmentList, error) {
	appointments, total, err := uc.AppointmentBackendClient.FindAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &responses.AppointmentList{
		Appointments: utils.BuildAppointmentResponses(appointments, uc.patientNames(ctx, appointments)),
		Total:        total,
	}, nil
}

func (uc *appointmentUsecase) GetAppointment(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	appointment, err := uc.AppointmentBackendClient.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	names := uc.patientNames(ctx, []models.Appointment{*appointment})
	response := utils.BuildAppointmentResponse(*appointment, names[appointment.PatientID])
	return &response, nil
}

// CreateAppointment books a new appointment. Patients in a terminal status
// only accept control visits.
func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)

	patient, err := uc.PatientBackendClient.FindPatientByID(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if utils.IsTerminalPatientStatus(patient.Status) && request.Type != constvars.AppointmentTypeControl {
		uc.Log.Info("appointmentUsecase.CreateAppointment patient not schedulable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
			zap.String(constvars.LoggingStatusFromKey, patient.Status),
		)
		return nil, exceptions.ErrPatientNotSchedulable(nil, patient.Status)
	}

	duration := request.DurationMinutes
	if duration == 0 {
		duration = defaultDurationMinutes
	}

	created, err := uc.AppointmentBackendClient.CreateAppointment(ctx, &models.Appointment{
		PatientID:       request.PatientID,
		DoctorID:        request.DoctorID,
		ScheduledAt:     request.ScheduledAt.UTC(),
		DurationMinutes: duration,
		Type:            request.Type,
		Status:          constvars.AppointmentStatusScheduled,
		Reason:          request.Reason,
		Notes:           request.Notes,
	})
	if err != nil {
		return nil, err
	}

	scheduledAt := created.ScheduledAt
	if err := uc.AppointmentHistoryBackendClient.CreateHistory(ctx, &models.AppointmentHistory{
		AppointmentID:  created.ID,
		NewStatus:      created.Status,
		NewScheduledAt: &scheduledAt,
		ChangedBy:      utils.GetUID(ctx),
	}); err != nil {
		return nil, err
	}

	uc.recordActivity(ctx, &models.AuditEvent{
		Entity:   constvars.AuditEntityAppointment,
		EntityID: created.ID,
		Action:   constvars.AuditActionCreated,
		To:       created.Status,
	})
	uc.publish(ctx, constvars.EventAppointmentCreated, map[string]interface{}{
		"appointment_id": created.ID,
		"patient_id":     created.PatientID,
		"scheduled_at":   created.ScheduledAt,
		"type":           created.Type,
	})
	uc.QueryCache.Invalidate(ctx, constvars.CacheNamespaceDashboard)

	utils.LogBusinessEvent(uc.Log, "appointment_created", requestID,
		zap.String(constvars.LoggingAppointmentIDKey, created.ID),
		zap.String(constvars.LoggingPatientIDKey, created.PatientID),
	)

	response := utils.BuildAppointmentResponse(*created, utils.FormatFullName(patient.FirstName, patient.LastName))
	return &response, nil
}

// UpdateAppointment edits an appointment. Moving ScheduledAt is a reschedule
// and is recorded in the appointment history; terminal appointments cannot
// be rescheduled.
func (uc *appointmentUsecase) UpdateAppointment(ctx context.Context, appointmentID string, request *requests.UpdateAppointment) (*responses.Appointment, error) {
	current, err := uc.AppointmentBackendClient.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	rescheduled := request.ScheduledAt != nil && !request.ScheduledAt.Equal(current.ScheduledAt)
	if rescheduled {
		if utils.IsTerminalAppointmentStatus(current.Status) {
			return nil, exceptions.ErrAppointmentStatusTransition(utils.ErrTerminalAppointmentStatus, current.Status, current.Status)
		}
		fields["scheduled_at"] = request.ScheduledAt.UTC()
	}
	if request.DoctorID != nil {
		fields["doctor_id"] = *request.DoctorID
	}
	if request.DurationMinutes != nil {
		fields["duration_minutes"] = *request.DurationMinutes
	}
	if request.Type != nil {
		fields["type"] = *request.Type
	}
	if request.Reason != nil {
		fields["reason"] = *request.Reason
	}
	if request.Notes != nil {
		fields["notes"] = *request.Notes
	}
	if len(fields) == 0 {
		return uc.GetAppointment(ctx, appointmentID)
	}
	fields["updated_at"] = time.Now().UTC()

	// Reschedules only land while the status checked above is unchanged.
	expectedStatus := ""
	if rescheduled {
		expectedStatus = current.Status
	}
	updated, err := uc.AppointmentBackendClient.UpdateAppointment(ctx, appointmentID, expectedStatus, fields)
	if err != nil {
		return nil, err
	}

	if rescheduled {
		previous := current.ScheduledAt
		next := updated.ScheduledAt
		if err := uc.AppointmentHistoryBackendClient.CreateHistory(ctx, &models.AppointmentHistory{
			AppointmentID:       appointmentID,
			PreviousStatus:      current.Status,
			NewStatus:           updated.Status,
			PreviousScheduledAt: &previous,
			NewScheduledAt:      &next,
			ChangedBy:           utils.GetUID(ctx),
			Note:                request.Note,
		}); err != nil {
			return nil, err
		}

		uc.recordActivity(ctx, &models.AuditEvent{
			Entity:   constvars.AuditEntityAppointment,
			EntityID: appointmentID,
			Action:   constvars.AuditActionRescheduled,
			From:     previous.Format(time.RFC3339),
			To:       next.Format(time.RFC3339),
			Note:     request.Note,
		})
		uc.publish(ctx, constvars.EventAppointmentRescheduled, map[string]interface{}{
			"appointment_id":        appointmentID,
			"patient_id":            updated.PatientID,
			"previous_scheduled_at": previous,
			"scheduled_at":          next,
		})
	}
	uc.QueryCache.Invalidate(ctx, constvars.CacheNamespaceDashboard)

	names := uc.patientNames(ctx, []models.Appointment{*updated})
	response := utils.BuildAppointmentResponse(*updated, names[updated.PatientID])
	return &response, nil
}

func (uc *appointmentUsecase) ChangeStatus(ctx context.Context, appointmentID string, request *requests.ChangeAppointmentStatus) (*responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)

	current, err := uc.AppointmentBackendClient.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := utils.CanTransitionAppointmentStatus(current.Status, request.Status); err != nil {
		uc.Log.Info("appointmentUsecase.ChangeStatus rejected transition",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.String(constvars.LoggingStatusFromKey, current.Status),
			zap.String(constvars.LoggingStatusToKey, request.Status),
			zap.Error(err),
		)
		return nil, exceptions.ErrAppointmentStatusTransition(err, current.Status, request.Status)
	}
	if current.Status == request.Status {
		names := uc.patientNames(ctx, []models.Appointment{*current})
		response := utils.BuildAppointmentResponse(*current, names[current.PatientID])
		return &response, nil
	}

	updated, err := uc.AppointmentBackendClient.UpdateAppointment(ctx, appointmentID, current.Status, map[string]interface{}{
		"status":     request.Status,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := uc.AppointmentHistoryBackendClient.CreateHistory(ctx, &models.AppointmentHistory{
		AppointmentID:  appointmentID,
		PreviousStatus: current.Status,
		NewStatus:      request.Status,
		ChangedBy:      utils.GetUID(ctx),
		Note:           request.Note,
	}); err != nil {
		return nil, err
	}

	uc.recordActivity(ctx, &models.AuditEvent{
		Entity:   constvars.AuditEntityAppointment,
		EntityID: appointmentID,
		Action:   constvars.AuditActionStatusChanged,
		From:     current.Status,
		To:       request.Status,
		Note:     request.Note,
	})
	uc.publish(ctx, constvars.EventAppointmentStatusChanged, map[string]string{
		"appointment_id": appointmentID,
		"patient_id":     updated.PatientID,
		"from":           current.Status,
		"to":             request.Status,
	})
	uc.QueryCache.Invalidate(ctx, constvars.CacheNamespaceDashboard)

	utils.LogBusinessEvent(uc.Log, "appointment_status_changed", requestID,
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingStatusFromKey, current.Status),
		zap.String(constvars.LoggingStatusToKey, request.Status),
	)

	names := uc.patientNames(ctx, []models.Appointment{*updated})
	response := utils.BuildAppointmentResponse(*updated, names[updated.PatientID])
	return &response, nil
}

func (uc *appointmentUsecase) GetHistory(ctx context.Context, appointmentID string) ([]models.AppointmentHistory, error) {
	return uc.AppointmentHistoryBackendClient.FindHistoryByAppointmentID(ctx, appointmentID)
}

// patientNames resolves display names for the patients of appointments in a
// single backend call. A failed lookup only leaves names empty.
func (uc *appointmentUsecase) patientNames(ctx context.Context, appointments []models.Appointment) map[string]string {
	names := map[string]string{}
	seen := map[string]struct{}{}
	var patientIDs []string
	for _, appointment := range appointments {
		if _, ok := seen[appointment.PatientID]; ok || appointment.PatientID == "" {
			continue
		}
		seen[appointment.PatientID] = struct{}{}
		patientIDs = append(patientIDs, appointment.PatientID)
	}
	if len(patientIDs) == 0 {
		return names
	}

	patients, err := uc.PatientBackendClient.FindPatientsByIDs(ctx, patientIDs)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.patientNames lookup failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return names
	}
	for _, patient := range patients {
		names[patient.ID] = utils.FormatFullName(patient.FirstName, patient.LastName)
	}
	return names
}

func (uc *appointmentUsecase) recordActivity(ctx context.Context, event *models.AuditEvent) {
	event.ActorID = utils.GetUID(ctx)
	if err := uc.AuditRepository.Record(ctx, event); err != nil {
		uc.Log.Warn("appointmentUsecase audit record failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEntityIDKey, event.EntityID),
			zap.Error(err),
		)
	}
}

func (uc *appointmentUsecase) publish(ctx context.Context, event string, data interface{}) {
	if err := uc.Notifier.Publish(ctx, event, data); err != nil {
		uc.Log.Warn("appointmentUsecase event publish failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventKey, event),
			zap.Error(err),
		)
	}
}
