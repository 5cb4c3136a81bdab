package dashboard

import (
	"clinica-service/internal/app/config"
	"clinica-service/internal/app/contracts/mocks"
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/dto/responses"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type dashboardFixture struct {
	patients     *mocks.MockPatientBackendClient
	appointments *mocks.MockAppointmentBackendClient
	answers      *mocks.MockSurveyAnswerBackendClient
	appointmentU *mocks.MockAppointmentUsecase
	usecase      *dashboardUsecase
}

func newDashboardFixture(now time.Time) *dashboardFixture {
	f := &dashboardFixture{
		patients:     new(mocks.MockPatientBackendClient),
		appointments: new(mocks.MockAppointmentBackendClient),
		answers:      new(mocks.MockSurveyAnswerBackendClient),
		appointmentU: new(mocks.MockAppointmentUsecase),
	}
	f.usecase = &dashboardUsecase{
		PatientBackendClient:      f.patients,
		AppointmentBackendClient:  f.appointments,
		SurveyAnswerBackendClient: f.answers,
		AppointmentUsecase:        f.appointmentU,
		QueryCache:                &mocks.PassthroughQueryCache{},
		InternalConfig:            &config.InternalConfig{Cache: config.Cache{DashboardTTLInSeconds: 60}},
		Log:                       zap.NewNop(),
		now:                       func() time.Time { return now },
	}
	return f
}

func TestDashboardUsecase_GetSummary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 20, 14, 30, 0, 0, time.UTC)

	t.Run("Aggregates counters", func(t *testing.T) {
		f := newDashboardFixture(now)
		f.patients.On("CountPatients", mock.Anything, "", "d-1").Return(3450, nil)
		f.patients.On("CountPatients", mock.Anything, constvars.PatientStatusFollowUp, "d-1").Return(1200, nil)
		f.patients.On("CountPatients", mock.Anything, constvars.PatientStatusOperated, "d-1").Return(2250, nil)
		f.patients.On("CountPatients", mock.Anything, mock.Anything, "d-1").Return(0, nil)
		f.appointments.On("CountAppointments", mock.Anything, mock.MatchedBy(func(filter *requests.AppointmentFilter) bool {
			return filter.From != nil && filter.From.Hour() == 0 && len(filter.Statuses) == 4
		})).Return(5, nil)
		f.appointments.On("CountAppointments", mock.Anything, mock.MatchedBy(func(filter *requests.AppointmentFilter) bool {
			return filter.From != nil && filter.From.Equal(now) && filter.To.Equal(now.AddDate(0, 0, 7))
		})).Return(12, nil)
		f.answers.On("CountSubmissionsSince", mock.Anything, now.AddDate(0, 0, -30), "d-1").Return(1500, nil)

		summary, err := f.usecase.GetSummary(ctx, "d-1")

		require.NoError(t, err)
		assert.Equal(t, 3450, summary.TotalPatients)
		assert.Equal(t, 1200, summary.FollowUpsPending)
		assert.Equal(t, 0, summary.PatientsByStatus[constvars.PatientStatusPotential])
		assert.Equal(t, 2250, summary.PatientsByStatus[constvars.PatientStatusOperated])
		assert.Len(t, summary.PatientsByStatus, len(constvars.PatientStatuses))
		assert.Equal(t, 5, summary.AppointmentsToday)
		assert.Equal(t, 12, summary.UpcomingAppointments)
		assert.Equal(t, 1500, summary.SurveySubmissionsRecent)
		assert.Equal(t, "2026-05-20T14:30:00Z", summary.GeneratedAt)
	})

	t.Run("Backend failure fails the summary", func(t *testing.T) {
		f := newDashboardFixture(now)
		f.patients.On("CountPatients", mock.Anything, "", "").Return(0, errors.New("backend unavailable"))

		_, err := f.usecase.GetSummary(ctx, "")

		assert.EqualError(t, err, "backend unavailable")
		f.appointments.AssertNotCalled(t, "CountAppointments", mock.Anything, mock.Anything)
	})
}

func TestDashboardUsecase_GetFollowUps(t *testing.T) {
	t.Run("Limit is clamped", func(t *testing.T) {
		f := newDashboardFixture(time.Now())
		f.patients.On("FindPatientsByStatus", mock.Anything, constvars.PatientStatusFollowUp, constvars.MaxPageSize).
			Return([]models.Patient{{ID: "p-1", FirstName: "Ana", LastName: "Ruiz", Status: constvars.PatientStatusFollowUp}}, nil)

		patients, err := f.usecase.GetFollowUps(context.Background(), 5000)

		require.NoError(t, err)
		require.Len(t, patients, 1)
		assert.True(t, patients[0].CanSetFollowUp)
	})
}

func TestDashboardUsecase_GetUpcoming(t *testing.T) {
	now := time.Date(2026, 5, 20, 14, 30, 0, 0, time.UTC)

	t.Run("Lists scheduled and confirmed appointments in the window", func(t *testing.T) {
		f := newDashboardFixture(now)
		f.appointmentU.On("ListAppointments", mock.Anything, mock.MatchedBy(func(filter *requests.AppointmentFilter) bool {
			return filter.To.Equal(now.AddDate(0, 0, 3)) && len(filter.Statuses) == 2
		})).Return(&responses.AppointmentList{Appointments: []responses.Appointment{{PatientName: "Ana Ruiz"}}, Total: 1}, nil)

		appointments, err := f.usecase.GetUpcoming(context.Background(), 3)

		require.NoError(t, err)
		require.Len(t, appointments, 1)
		assert.Equal(t, "Ana Ruiz", appointments[0].PatientName)
	})
}
