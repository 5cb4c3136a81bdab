package patients

import (
	"clinica-service/internal/app/contracts/mocks"
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type patientUsecaseFixture struct {
	backend  *mocks.MockPatientBackendClient
	audit    *mocks.MockAuditRepository
	notifier *mocks.MockNotifier
	cache    *mocks.PassthroughQueryCache
	usecase  *patientUsecase
}

func newPatientUsecaseFixture() *patientUsecaseFixture {
	f := &patientUsecaseFixture{
		backend:  new(mocks.MockPatientBackendClient),
		audit:    new(mocks.MockAuditRepository),
		notifier: new(mocks.MockNotifier),
		cache:    &mocks.PassthroughQueryCache{},
	}
	f.usecase = &patientUsecase{
		PatientBackendClient: f.backend,
		AuditRepository:      f.audit,
		Notifier:             f.notifier,
		QueryCache:           f.cache,
		Log:                  zap.NewNop(),
	}
	return f
}

func TestPatientUsecase_CreatePatient(t *testing.T) {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")

	t.Run("Defaults status to potential", func(t *testing.T) {
		f := newPatientUsecaseFixture()
		f.backend.On("CreatePatient", mock.Anything, mock.MatchedBy(func(p *models.Patient) bool {
			return p.Status == constvars.PatientStatusPotential && p.FirstName == "Ana"
		})).Return(&models.Patient{ID: "p-1", FirstName: "Ana", LastName: "Ruiz", Status: constvars.PatientStatusPotential}, nil)
		f.audit.On("Record", mock.Anything, mock.Anything).Return(nil)
		f.notifier.On("Publish", mock.Anything, constvars.EventPatientCreated, mock.Anything).Return(nil)

		patient, err := f.usecase.CreatePatient(ctx, &requests.CreatePatient{FirstName: "Ana", LastName: "Ruiz"})

		require.NoError(t, err)
		assert.Equal(t, constvars.PatientStatusPotential, patient.Status)
		assert.Equal(t, "Ana Ruiz", patient.FullName)
		assert.Equal(t, []string{constvars.CacheNamespaceDashboard}, f.cache.Invalidated)
		f.backend.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("Side effect failures do not fail the request", func(t *testing.T) {
		f := newPatientUsecaseFixture()
		f.backend.On("CreatePatient", mock.Anything, mock.Anything).
			Return(&models.Patient{ID: "p-2", FirstName: "Luis", LastName: "Paz", Status: constvars.PatientStatusFollowUp}, nil)
		f.audit.On("Record", mock.Anything, mock.Anything).Return(errors.New("mongo down"))
		f.notifier.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

		patient, err := f.usecase.CreatePatient(ctx, &requests.CreatePatient{FirstName: "Luis", LastName: "Paz", Status: constvars.PatientStatusFollowUp})

		require.NoError(t, err)
		assert.Equal(t, constvars.PatientStatusFollowUp, patient.Status)
	})
}

func TestPatientUsecase_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Terminal patient cannot change status", func(t *testing.T) {
		f := newPatientUsecaseFixture()
		f.backend.On("FindPatientByID", mock.Anything, "p-1").
			Return(&models.Patient{ID: "p-1", Status: constvars.PatientStatusOperated}, nil)

		patient, err := f.usecase.ChangeStatus(ctx, "p-1", &requests.ChangePatientStatus{Status: constvars.PatientStatusFollowUp})

		assert.Nil(t, patient)
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
		f.backend.AssertNotCalled(t, "UpdatePatient", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Same status is a no-op", func(t *testing.T) {
		f := newPatientUsecaseFixture()
		f.backend.On("FindPatientByID", mock.Anything, "p-1").
			Return(&models.Patient{ID: "p-1", Status: constvars.PatientStatusScheduled}, nil)

		patient, err := f.usecase.ChangeStatus(ctx, "p-1", &requests.ChangePatientStatus{Status: constvars.PatientStatusScheduled})

		require.NoError(t, err)
		assert.Equal(t, constvars.PatientStatusScheduled, patient.Status)
		f.backend.AssertNotCalled(t, "UpdatePatient", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, f.cache.Invalidated)
	})

	t.Run("Valid transition updates and publishes", func(t *testing.T) {
		f := newPatientUsecaseFixture()
		f.backend.On("FindPatientByID", mock.Anything, "p-1").
			Return(&models.Patient{ID: "p-1", Status: constvars.PatientStatusPotential}, nil)
		f.backend.On("UpdatePatient", mock.Anything, "p-1", constvars.PatientStatusPotential, mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["status"] == constvars.PatientStatusScheduled
		})).Return(&models.Patient{ID: "p-1", Status: constvars.PatientStatusScheduled}, nil)
		f.audit.On("Record", mock.Anything, mock.MatchedBy(func(e *models.AuditEvent) bool {
			return e.From == constvars.PatientStatusPotential && e.To == constvars.PatientStatusScheduled
		})).Return(nil)
		f.notifier.On("Publish", mock.Anything, constvars.EventPatientStatusChanged, mock.Anything).Return(nil)

		patient, err := f.usecase.ChangeStatus(ctx, "p-1", &requests.ChangePatientStatus{Status: constvars.PatientStatusScheduled})

		require.NoError(t, err)
		assert.Equal(t, constvars.PatientStatusScheduled, patient.Status)
		f.backend.AssertExpectations(t)
		f.audit.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("Concurrent status change is a conflict", func(t *testing.T) {
		f := newPatientUsecaseFixture()
		f.backend.On("FindPatientByID", mock.Anything, "p-1").
			Return(&models.Patient{ID: "p-1", Status: constvars.PatientStatusPotential}, nil)
		f.backend.On("UpdatePatient", mock.Anything, "p-1", constvars.PatientStatusPotential, mock.Anything).
			Return(nil, exceptions.ErrStatusPreconditionFailed(nil, "patient", constvars.PatientStatusPotential))

		patient, err := f.usecase.ChangeStatus(ctx, "p-1", &requests.ChangePatientStatus{Status: constvars.PatientStatusFollowUp})

		assert.Nil(t, patient)
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		f.audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, f.cache.Invalidated)
	})
}

func TestPatientUsecase_SetFollowUp(t *testing.T) {
	ctx := context.Background()

	t.Run("Patient already in follow-up is touched again", func(t *testing.T) {
		f := newPatientUsecaseFixture()
		f.backend.On("FindPatientByID", mock.Anything, "p-1").
			Return(&models.Patient{ID: "p-1", Status: constvars.PatientStatusFollowUp}, nil)
		f.backend.On("UpdatePatient", mock.Anything, "p-1", constvars.PatientStatusFollowUp, mock.MatchedBy(func(fields map[string]interface{}) bool {
			_, touched := fields["updated_at"]
			return fields["status"] == constvars.PatientStatusFollowUp && touched
		})).Return(&models.Patient{ID: "p-1", Status: constvars.PatientStatusFollowUp}, nil)
		f.audit.On("Record", mock.Anything, mock.Anything).Return(nil)
		f.notifier.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		patient, err := f.usecase.SetFollowUp(ctx, "p-1")

		require.NoError(t, err)
		assert.Equal(t, constvars.PatientStatusFollowUp, patient.Status)
		f.backend.AssertExpectations(t)
	})

	t.Run("Terminal patient is rejected", func(t *testing.T) {
		f := newPatientUsecaseFixture()
		f.backend.On("FindPatientByID", mock.Anything, "p-1").
			Return(&models.Patient{ID: "p-1", Status: constvars.PatientStatusInactive}, nil)

		_, err := f.usecase.SetFollowUp(ctx, "p-1")

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
	})

	t.Run("Backend not found is returned as is", func(t *testing.T) {
		f := newPatientUsecaseFixture()
		notFound := exceptions.ErrBackendNotFound(nil, constvars.TablePatients, "patient")
		f.backend.On("FindPatientByID", mock.Anything, "missing").Return(nil, notFound)

		_, err := f.usecase.SetFollowUp(ctx, "missing")

		assert.Equal(t, notFound, err)
	})
}

func TestPatientUsecase_UpdatePatient(t *testing.T) {
	ctx := context.Background()

	t.Run("Only sent fields are forwarded", func(t *testing.T) {
		f := newPatientUsecaseFixture()
		phone := "+51999888777"
		f.backend.On("UpdatePatient", mock.Anything, "p-1", "", mock.MatchedBy(func(fields map[string]interface{}) bool {
			_, hasName := fields["first_name"]
			return fields["phone"] == phone && !hasName && len(fields) == 2
		})).Return(&models.Patient{ID: "p-1", Phone: phone, Status: constvars.PatientStatusPotential}, nil)

		patient, err := f.usecase.UpdatePatient(ctx, "p-1", &requests.UpdatePatient{Phone: &phone})

		require.NoError(t, err)
		assert.Equal(t, phone, patient.Phone)
		f.backend.AssertExpectations(t)
	})

	t.Run("Empty update reads the patient", func(t *testing.T) {
		f := newPatientUsecaseFixture()
		f.backend.On("FindPatientByID", mock.Anything, "p-1").
			Return(&models.Patient{ID: "p-1", Status: constvars.PatientStatusPotential}, nil)

		_, err := f.usecase.UpdatePatient(ctx, "p-1", &requests.UpdatePatient{})

		require.NoError(t, err)
		f.backend.AssertNotCalled(t, "UpdatePatient", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
