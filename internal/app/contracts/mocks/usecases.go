package mocks

import (
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/dto/responses"
	"context"
	"io"
	"mime/multipart"

	"github.com/stretchr/testify/mock"
)

type MockPatientUsecase struct {
	mock.Mock
}

func (m *MockPatientUsecase) ListPatients(ctx context.Context, filter *requests.PatientFilter) (*responses.PatientList, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).(*responses.PatientList)
	return list, args.Error(1)
}

func (m *MockPatientUsecase) GetPatient(ctx context.Context, patientID string) (*responses.Patient, error) {
	args := m.Called(ctx, patientID)
	patient, _ := args.Get(0).(*responses.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientUsecase) CreatePatient(ctx context.Context, request *requests.CreatePatient) (*responses.Patient, error) {
	args := m.Called(ctx, request)
	patient, _ := args.Get(0).(*responses.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientUsecase) UpdatePatient(ctx context.Context, patientID string, request *requests.UpdatePatient) (*responses.Patient, error) {
	args := m.Called(ctx, patientID, request)
	patient, _ := args.Get(0).(*responses.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientUsecase) DeletePatient(ctx context.Context, patientID string) error {
	return m.Called(ctx, patientID).Error(0)
}

func (m *MockPatientUsecase) ChangeStatus(ctx context.Context, patientID string, request *requests.ChangePatientStatus) (*responses.Patient, error) {
	args := m.Called(ctx, patientID, request)
	patient, _ := args.Get(0).(*responses.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientUsecase) SetFollowUp(ctx context.Context, patientID string) (*responses.Patient, error) {
	args := m.Called(ctx, patientID)
	patient, _ := args.Get(0).(*responses.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientUsecase) ListActivity(ctx context.Context, patientID string, limit int) ([]models.AuditEvent, error) {
	args := m.Called(ctx, patientID, limit)
	events, _ := args.Get(0).([]models.AuditEvent)
	return events, args.Error(1)
}

type MockAppointmentUsecase struct {
	mock.Mock
}

func (m *MockAppointmentUsecase) ListAppointments(ctx context.Context, filter *requests.AppointmentFilter) (*responses.AppointmentList, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).(*responses.AppointmentList)
	return list, args.Error(1)
}

func (m *MockAppointmentUsecase) GetAppointment(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	appointment, _ := args.Get(0).(*responses.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error) {
	args := m.Called(ctx, request)
	appointment, _ := args.Get(0).(*responses.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentUsecase) UpdateAppointment(ctx context.Context, appointmentID string, request *requests.UpdateAppointment) (*responses.Appointment, error) {
	args := m.Called(ctx, appointmentID, request)
	appointment, _ := args.Get(0).(*responses.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentUsecase) ChangeStatus(ctx context.Context, appointmentID string, request *requests.ChangeAppointmentStatus) (*responses.Appointment, error) {
	args := m.Called(ctx, appointmentID, request)
	appointment, _ := args.Get(0).(*responses.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentUsecase) GetHistory(ctx context.Context, appointmentID string) ([]models.AppointmentHistory, error) {
	args := m.Called(ctx, appointmentID)
	history, _ := args.Get(0).([]models.AppointmentHistory)
	return history, args.Error(1)
}

type MockSurveyUsecase struct {
	mock.Mock
}

func (m *MockSurveyUsecase) ListSurveys(ctx context.Context) ([]models.Survey, error) {
	args := m.Called(ctx)
	surveys, _ := args.Get(0).([]models.Survey)
	return surveys, args.Error(1)
}

func (m *MockSurveyUsecase) GetSurvey(ctx context.Context, slug string) (*models.Survey, error) {
	args := m.Called(ctx, slug)
	survey, _ := args.Get(0).(*models.Survey)
	return survey, args.Error(1)
}

func (m *MockSurveyUsecase) SubmitAnswers(ctx context.Context, slug string, request *requests.SubmitSurveyAnswers) (*responses.SurveySubmission, error) {
	args := m.Called(ctx, slug, request)
	submission, _ := args.Get(0).(*responses.SurveySubmission)
	return submission, args.Error(1)
}

func (m *MockSurveyUsecase) ListResponses(ctx context.Context, slug, patientID string) ([]responses.SurveySubmission, error) {
	args := m.Called(ctx, slug, patientID)
	submissions, _ := args.Get(0).([]responses.SurveySubmission)
	return submissions, args.Error(1)
}

func (m *MockSurveyUsecase) ListPatientSubmissions(ctx context.Context, patientID string) ([]responses.SurveySubmission, error) {
	args := m.Called(ctx, patientID)
	submissions, _ := args.Get(0).([]responses.SurveySubmission)
	return submissions, args.Error(1)
}

type MockDashboardUsecase struct {
	mock.Mock
}

func (m *MockDashboardUsecase) GetSummary(ctx context.Context, doctorID string) (*responses.DashboardSummary, error) {
	args := m.Called(ctx, doctorID)
	summary, _ := args.Get(0).(*responses.DashboardSummary)
	return summary, args.Error(1)
}

func (m *MockDashboardUsecase) GetFollowUps(ctx context.Context, limit int) ([]responses.Patient, error) {
	args := m.Called(ctx, limit)
	patients, _ := args.Get(0).([]responses.Patient)
	return patients, args.Error(1)
}

func (m *MockDashboardUsecase) GetUpcoming(ctx context.Context, days int) ([]responses.Appointment, error) {
	args := m.Called(ctx, days)
	appointments, _ := args.Get(0).([]responses.Appointment)
	return appointments, args.Error(1)
}

type MockProfileUsecase struct {
	mock.Mock
}

func (m *MockProfileUsecase) GetMe(ctx context.Context, uid string) (*responses.Profile, error) {
	args := m.Called(ctx, uid)
	profile, _ := args.Get(0).(*responses.Profile)
	return profile, args.Error(1)
}

func (m *MockProfileUsecase) UpdateMe(ctx context.Context, uid string, request *requests.UpdateProfile) (*responses.Profile, error) {
	args := m.Called(ctx, uid, request)
	profile, _ := args.Get(0).(*responses.Profile)
	return profile, args.Error(1)
}

func (m *MockProfileUsecase) UploadAvatar(ctx context.Context, uid string, file io.Reader, fileHeader *multipart.FileHeader) (*responses.Profile, error) {
	args := m.Called(ctx, uid, file, fileHeader)
	profile, _ := args.Get(0).(*responses.Profile)
	return profile, args.Error(1)
}

func (m *MockProfileUsecase) ListStaff(ctx context.Context) ([]responses.Profile, error) {
	args := m.Called(ctx)
	profiles, _ := args.Get(0).([]responses.Profile)
	return profiles, args.Error(1)
}

func (m *MockProfileUsecase) ResolveSessionProfile(ctx context.Context, uid string) (*models.Profile, error) {
	args := m.Called(ctx, uid)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}
