package appointments

import (
	"clinica-service/internal/app/contracts/mocks"
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type appointmentUsecaseFixture struct {
	appointments *mocks.MockAppointmentBackendClient
	history      *mocks.MockAppointmentHistoryBackendClient
	patients     *mocks.MockPatientBackendClient
	audit        *mocks.MockAuditRepository
	notifier     *mocks.MockNotifier
	cache        *mocks.PassthroughQueryCache
	usecase      *appointmentUsecase
}

func newAppointmentUsecaseFixture() *appointmentUsecaseFixture {
	f := &appointmentUsecaseFixture{
		appointments: new(mocks.MockAppointmentBackendClient),
		history:      new(mocks.MockAppointmentHistoryBackendClient),
		patients:     new(mocks.MockPatientBackendClient),
		audit:        new(mocks.MockAuditRepository),
		notifier:     new(mocks.MockNotifier),
		cache:        &mocks.PassthroughQueryCache{},
	}
	f.audit.On("Record", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.notifier.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.usecase = &appointmentUsecase{
		AppointmentBackendClient:        f.appointments,
		AppointmentHistoryBackendClient: f.history,
		PatientBackendClient:            f.patients,
		AuditRepository:                 f.audit,
		Notifier:                        f.notifier,
		QueryCache:                      f.cache,
		Log:                             zap.NewNop(),
	}
	return f
}

func assertStatusCode(t *testing.T, err error, statusCode int) {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected a custom error, got %v", err)
	assert.Equal(t, statusCode, customErr.StatusCode)
}

func TestAppointmentUsecase_CreateAppointment(t *testing.T) {
	ctx := context.Background()
	scheduledAt := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("Creates a scheduled appointment with history", func(t *testing.T) {
		f := newAppointmentUsecaseFixture()
		f.patients.On("FindPatientByID", mock.Anything, "p-1").
			Return(&models.Patient{ID: "p-1", FirstName: "Ana", LastName: "Ruiz", Status: constvars.PatientStatusFollowUp}, nil)
		f.appointments.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(a *models.Appointment) bool {
			return a.Status == constvars.AppointmentStatusScheduled && a.DurationMinutes == defaultDurationMinutes
		})).Return(&models.Appointment{ID: "a-1", PatientID: "p-1", ScheduledAt: scheduledAt, DurationMinutes: 30, Type: constvars.AppointmentTypeConsultation, Status: constvars.AppointmentStatusScheduled}, nil)
		f.history.On("CreateHistory", mock.Anything, mock.MatchedBy(func(h *models.AppointmentHistory) bool {
			return h.AppointmentID == "a-1" && h.NewStatus == constvars.AppointmentStatusScheduled && h.PreviousStatus == ""
		})).Return(nil)

		appointment, err := f.usecase.CreateAppointment(ctx, &requests.CreateAppointment{
			PatientID:   "p-1",
			ScheduledAt: scheduledAt,
			Type:        constvars.AppointmentTypeConsultation,
		})

		require.NoError(t, err)
		assert.Equal(t, "a-1", appointment.ID)
		assert.Equal(t, "Ana Ruiz", appointment.PatientName)
		assert.Contains(t, f.cache.Invalidated, constvars.CacheNamespaceDashboard)
		f.appointments.AssertExpectations(t)
		f.history.AssertExpectations(t)
	})

	t.Run("Terminal patient only accepts control visits", func(t *testing.T) {
		f := newAppointmentUsecaseFixture()
		f.patients.On("FindPatientByID", mock.Anything, "p-1").
			Return(&models.Patient{ID: "p-1", Status: constvars.PatientStatusOperated}, nil)

		_, err := f.usecase.CreateAppointment(ctx, &requests.CreateAppointment{
			PatientID:   "p-1",
			ScheduledAt: scheduledAt,
			Type:        constvars.AppointmentTypeSurgery,
		})

		assertStatusCode(t, err, constvars.StatusUnprocessableEntity)
		f.appointments.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
	})

	t.Run("Terminal patient can book a control", func(t *testing.T) {
		f := newAppointmentUsecaseFixture()
		f.patients.On("FindPatientByID", mock.Anything, "p-1").
			Return(&models.Patient{ID: "p-1", Status: constvars.PatientStatusOperated}, nil)
		f.appointments.On("CreateAppointment", mock.Anything, mock.Anything).
			Return(&models.Appointment{ID: "a-2", PatientID: "p-1", ScheduledAt: scheduledAt, Type: constvars.AppointmentTypeControl, Status: constvars.AppointmentStatusScheduled}, nil)
		f.history.On("CreateHistory", mock.Anything, mock.Anything).Return(nil)

		appointment, err := f.usecase.CreateAppointment(ctx, &requests.CreateAppointment{
			PatientID:   "p-1",
			ScheduledAt: scheduledAt,
			Type:        constvars.AppointmentTypeControl,
		})

		require.NoError(t, err)
		assert.Equal(t, constvars.AppointmentTypeControl, appointment.Type)
	})
}

func TestAppointmentUsecase_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Confirmed cannot go back to scheduled", func(t *testing.T) {
		f := newAppointmentUsecaseFixture()
		f.appointments.On("FindAppointmentByID", mock.Anything, "a-1").
			Return(&models.Appointment{ID: "a-1", Status: constvars.AppointmentStatusConfirmed}, nil)

		_, err := f.usecase.ChangeStatus(ctx, "a-1", &requests.ChangeAppointmentStatus{Status: constvars.AppointmentStatusScheduled})

		assertStatusCode(t, err, constvars.StatusUnprocessableEntity)
		f.history.AssertNotCalled(t, "CreateHistory", mock.Anything, mock.Anything)
	})

	t.Run("Terminal appointment is locked", func(t *testing.T) {
		f := newAppointmentUsecaseFixture()
		f.appointments.On("FindAppointmentByID", mock.Anything, "a-1").
			Return(&models.Appointment{ID: "a-1", Status: constvars.AppointmentStatusCancelled}, nil)

		_, err := f.usecase.ChangeStatus(ctx, "a-1", &requests.ChangeAppointmentStatus{Status: constvars.AppointmentStatusConfirmed})

		assertStatusCode(t, err, constvars.StatusUnprocessableEntity)
	})

	t.Run("Valid change writes one history row", func(t *testing.T) {
		f := newAppointmentUsecaseFixture()
		f.appointments.On("FindAppointmentByID", mock.Anything, "a-1").
			Return(&models.Appointment{ID: "a-1", PatientID: "p-1", Status: constvars.AppointmentStatusScheduled}, nil)
		f.appointments.On("UpdateAppointment", mock.Anything, "a-1", constvars.AppointmentStatusScheduled, mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["status"] == constvars.AppointmentStatusConfirmed
		})).Return(&models.Appointment{ID: "a-1", PatientID: "p-1", Status: constvars.AppointmentStatusConfirmed}, nil)
		f.history.On("CreateHistory", mock.Anything, mock.MatchedBy(func(h *models.AppointmentHistory) bool {
			return h.PreviousStatus == constvars.AppointmentStatusScheduled && h.NewStatus == constvars.AppointmentStatusConfirmed && h.Note == "llamada"
		})).Return(nil).Once()
		f.patients.On("FindPatientsByIDs", mock.Anything, []string{"p-1"}).
			Return([]models.Patient{{ID: "p-1", FirstName: "Ana", LastName: "Ruiz"}}, nil)

		appointment, err := f.usecase.ChangeStatus(ctx, "a-1", &requests.ChangeAppointmentStatus{Status: constvars.AppointmentStatusConfirmed, Note: "llamada"})

		require.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusConfirmed, appointment.Status)
		assert.Equal(t, "Ana Ruiz", appointment.PatientName)
		f.history.AssertExpectations(t)
		f.notifier.AssertCalled(t, "Publish", mock.Anything, constvars.EventAppointmentStatusChanged, mock.Anything)
	})

	t.Run("Same status keeps the patient name", func(t *testing.T) {
		f := newAppointmentUsecaseFixture()
		f.appointments.On("FindAppointmentByID", mock.Anything, "a-1").
			Return(&models.Appointment{ID: "a-1", PatientID: "p-1", Status: constvars.AppointmentStatusConfirmed}, nil)
		f.patients.On("FindPatientsByIDs", mock.Anything, []string{"p-1"}).
			Return([]models.Patient{{ID: "p-1", FirstName: "Ana", LastName: "Ruiz"}}, nil)

		appointment, err := f.usecase.ChangeStatus(ctx, "a-1", &requests.ChangeAppointmentStatus{Status: constvars.AppointmentStatusConfirmed})

		require.NoError(t, err)
		assert.Equal(t, "Ana Ruiz", appointment.PatientName)
		f.appointments.AssertNotCalled(t, "UpdateAppointment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Concurrent status change is a conflict", func(t *testing.T) {
		f := newAppointmentUsecaseFixture()
		f.appointments.On("FindAppointmentByID", mock.Anything, "a-1").
			Return(&models.Appointment{ID: "a-1", PatientID: "p-1", Status: constvars.AppointmentStatusScheduled}, nil)
		f.appointments.On("UpdateAppointment", mock.Anything, "a-1", constvars.AppointmentStatusScheduled, mock.Anything).
			Return(nil, exceptions.ErrStatusPreconditionFailed(nil, "appointment", constvars.AppointmentStatusScheduled))

		_, err := f.usecase.ChangeStatus(ctx, "a-1", &requests.ChangeAppointmentStatus{Status: constvars.AppointmentStatusCancelled})

		assertStatusCode(t, err, constvars.StatusConflict)
		f.history.AssertNotCalled(t, "CreateHistory", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "Publish", mock.Anything, constvars.EventAppointmentStatusChanged, mock.Anything)
	})
}

func TestAppointmentUsecase_UpdateAppointment(t *testing.T) {
	ctx := context.Background()
	previous := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	next := previous.Add(48 * time.Hour)

	t.Run("Reschedule records previous and new time", func(t *testing.T) {
		f := newAppointmentUsecaseFixture()
		f.appointments.On("FindAppointmentByID", mock.Anything, "a-1").
			Return(&models.Appointment{ID: "a-1", PatientID: "p-1", ScheduledAt: previous, Status: constvars.AppointmentStatusConfirmed}, nil)
		f.appointments.On("UpdateAppointment", mock.Anything, "a-1", constvars.AppointmentStatusConfirmed, mock.Anything).
			Return(&models.Appointment{ID: "a-1", PatientID: "p-1", ScheduledAt: next, Status: constvars.AppointmentStatusConfirmed}, nil)
		f.history.On("CreateHistory", mock.Anything, mock.MatchedBy(func(h *models.AppointmentHistory) bool {
			return h.PreviousScheduledAt != nil && h.PreviousScheduledAt.Equal(previous) &&
				h.NewScheduledAt != nil && h.NewScheduledAt.Equal(next)
		})).Return(nil)
		f.patients.On("FindPatientsByIDs", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		appointment, err := f.usecase.UpdateAppointment(ctx, "a-1", &requests.UpdateAppointment{ScheduledAt: &next})

		require.NoError(t, err)
		assert.True(t, appointment.ScheduledAt.Equal(next))
		assert.Empty(t, appointment.PatientName)
		f.history.AssertExpectations(t)
		f.notifier.AssertCalled(t, "Publish", mock.Anything, constvars.EventAppointmentRescheduled, mock.Anything)
	})

	t.Run("Terminal appointment cannot be rescheduled", func(t *testing.T) {
		f := newAppointmentUsecaseFixture()
		f.appointments.On("FindAppointmentByID", mock.Anything, "a-1").
			Return(&models.Appointment{ID: "a-1", ScheduledAt: previous, Status: constvars.AppointmentStatusCompleted}, nil)

		_, err := f.usecase.UpdateAppointment(ctx, "a-1", &requests.UpdateAppointment{ScheduledAt: &next})

		assertStatusCode(t, err, constvars.StatusUnprocessableEntity)
		f.appointments.AssertNotCalled(t, "UpdateAppointment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAppointmentUsecase_GetHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns backend rows", func(t *testing.T) {
		f := newAppointmentUsecaseFixture()
		rows := []models.AppointmentHistory{{ID: "h-2", AppointmentID: "a-1"}, {ID: "h-1", AppointmentID: "a-1"}}
		f.history.On("FindHistoryByAppointmentID", mock.Anything, "a-1").Return(rows, nil)

		history, err := f.usecase.GetHistory(ctx, "a-1")

		require.NoError(t, err)
		assert.Equal(t, rows, history)
	})

	t.Run("Propagates backend error", func(t *testing.T) {
		f := newAppointmentUsecaseFixture()
		backendErr := exceptions.ErrBackendQuery(errors.New("400"), constvars.TableAppointmentHistory, "permission denied for table appointment_history")
		f.history.On("FindHistoryByAppointmentID", mock.Anything, "a-1").Return(nil, backendErr)

		_, err := f.usecase.GetHistory(ctx, "a-1")

		assertStatusCode(t, err, constvars.StatusInternalServerError)
		assert.Equal(t, "permission denied for table appointment_history", err.(*exceptions.CustomError).ClientMessage)
	})
}
