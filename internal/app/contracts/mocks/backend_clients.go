// Package mocks holds testify mocks of the contracts interfaces.
package mocks

import (
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/dto/requests"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockPatientBackendClient struct {
	mock.Mock
}

func (m *MockPatientBackendClient) FindPatients(ctx context.Context, filter *requests.PatientFilter) ([]models.Patient, int, error) {
	args := m.Called(ctx, filter)
	patients, _ := args.Get(0).([]models.Patient)
	return patients, args.Int(1), args.Error(2)
}

func (m *MockPatientBackendClient) FindPatientByID(ctx context.Context, patientID string) (*models.Patient, error) {
	args := m.Called(ctx, patientID)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientBackendClient) FindPatientsByIDs(ctx context.Context, patientIDs []string) ([]models.Patient, error) {
	args := m.Called(ctx, patientIDs)
	patients, _ := args.Get(0).([]models.Patient)
	return patients, args.Error(1)
}

func (m *MockPatientBackendClient) FindPatientsByStatus(ctx context.Context, status string, limit int) ([]models.Patient, error) {
	args := m.Called(ctx, status, limit)
	patients, _ := args.Get(0).([]models.Patient)
	return patients, args.Error(1)
}

func (m *MockPatientBackendClient) CountPatients(ctx context.Context, status, doctorID string) (int, error) {
	args := m.Called(ctx, status, doctorID)
	return args.Int(0), args.Error(1)
}

func (m *MockPatientBackendClient) CreatePatient(ctx context.Context, patient *models.Patient) (*models.Patient, error) {
	args := m.Called(ctx, patient)
	created, _ := args.Get(0).(*models.Patient)
	return created, args.Error(1)
}

func (m *MockPatientBackendClient) UpdatePatient(ctx context.Context, patientID, expectedStatus string, fields map[string]interface{}) (*models.Patient, error) {
	args := m.Called(ctx, patientID, expectedStatus, fields)
	updated, _ := args.Get(0).(*models.Patient)
	return updated, args.Error(1)
}

func (m *MockPatientBackendClient) DeletePatient(ctx context.Context, patientID string) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

type MockAppointmentBackendClient struct {
	mock.Mock
}

func (m *MockAppointmentBackendClient) FindAppointments(ctx context.Context, filter *requests.AppointmentFilter) ([]models.Appointment, int, error) {
	args := m.Called(ctx, filter)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Int(1), args.Error(2)
}

func (m *MockAppointmentBackendClient) CountAppointments(ctx context.Context, filter *requests.AppointmentFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockAppointmentBackendClient) FindAppointmentByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentBackendClient) CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	args := m.Called(ctx, appointment)
	created, _ := args.Get(0).(*models.Appointment)
	return created, args.Error(1)
}

func (m *MockAppointmentBackendClient) UpdateAppointment(ctx context.Context, appointmentID, expectedStatus string, fields map[string]interface{}) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID, expectedStatus, fields)
	updated, _ := args.Get(0).(*models.Appointment)
	return updated, args.Error(1)
}

type MockAppointmentHistoryBackendClient struct {
	mock.Mock
}

func (m *MockAppointmentHistoryBackendClient) FindHistoryByAppointmentID(ctx context.Context, appointmentID string) ([]models.AppointmentHistory, error) {
	args := m.Called(ctx, appointmentID)
	history, _ := args.Get(0).([]models.AppointmentHistory)
	return history, args.Error(1)
}

func (m *MockAppointmentHistoryBackendClient) CreateHistory(ctx context.Context, entry *models.AppointmentHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockSurveyBackendClient struct {
	mock.Mock
}

func (m *MockSurveyBackendClient) FindActiveSurveys(ctx context.Context) ([]models.Survey, error) {
	args := m.Called(ctx)
	surveys, _ := args.Get(0).([]models.Survey)
	return surveys, args.Error(1)
}

func (m *MockSurveyBackendClient) FindSurveyBySlug(ctx context.Context, slug string) (*models.Survey, error) {
	args := m.Called(ctx, slug)
	survey, _ := args.Get(0).(*models.Survey)
	return survey, args.Error(1)
}

type MockSurveyAnswerBackendClient struct {
	mock.Mock
}

func (m *MockSurveyAnswerBackendClient) CreateAnswers(ctx context.Context, answers []models.SurveyAnswer) ([]models.SurveyAnswer, error) {
	args := m.Called(ctx, answers)
	created, _ := args.Get(0).([]models.SurveyAnswer)
	return created, args.Error(1)
}

func (m *MockSurveyAnswerBackendClient) FindAnswers(ctx context.Context, surveyID, patientID string) ([]models.SurveyAnswer, error) {
	args := m.Called(ctx, surveyID, patientID)
	answers, _ := args.Get(0).([]models.SurveyAnswer)
	return answers, args.Error(1)
}

func (m *MockSurveyAnswerBackendClient) CountSubmissionsSince(ctx context.Context, since time.Time, doctorID string) (int, error) {
	args := m.Called(ctx, since, doctorID)
	return args.Int(0), args.Error(1)
}

type MockProfileBackendClient struct {
	mock.Mock
}

func (m *MockProfileBackendClient) FindProfileByID(ctx context.Context, profileID string) (*models.Profile, error) {
	args := m.Called(ctx, profileID)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}

func (m *MockProfileBackendClient) FindProfiles(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	profiles, _ := args.Get(0).([]models.Profile)
	return profiles, args.Error(1)
}

func (m *MockProfileBackendClient) UpdateProfile(ctx context.Context, profileID string, fields map[string]interface{}) (*models.Profile, error) {
	args := m.Called(ctx, profileID, fields)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}
