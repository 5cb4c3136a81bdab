package routers

import (
	"bytes"
	"clinica-service/internal/app/config"
	"clinica-service/internal/app/contracts/mocks"
	"clinica-service/internal/app/delivery/http/controllers"
	"clinica-service/internal/app/delivery/http/middlewares"
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/dto/responses"
	"clinica-service/internal/pkg/exceptions"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testAppointmentID = "5b0f8c1e-8a57-4c4c-9a0e-2f1c3d4e5f60"
	testPatientID     = "0d6a3c52-1f1e-4a8e-b2c7-8a4f0b7d9e11"
)

type responseBody struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) responseBody {
	t.Helper()
	var body responseBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestAppointmentRouter_History(t *testing.T) {
	logger := zap.NewNop()
	appointmentUsecase := new(mocks.MockAppointmentUsecase)
	appointmentController := &controllers.AppointmentController{Log: logger, AppointmentUsecase: appointmentUsecase}

	router := chi.NewRouter()
	router.Route("/appointments", func(r chi.Router) {
		attachAppointmentRoutes(r, appointmentController)
	})

	t.Run("Returns history rows", func(t *testing.T) {
		changedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		appointmentUsecase.On("GetHistory", mock.Anything, testAppointmentID).Return([]models.AppointmentHistory{
			{ID: "h2", AppointmentID: testAppointmentID, PreviousStatus: "programada", NewStatus: "confirmada", CreatedAt: &changedAt},
			{ID: "h1", AppointmentID: testAppointmentID, NewStatus: "programada"},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/appointments/"+testAppointmentID+"/history", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.True(t, body.Success)

		var rows []models.AppointmentHistory
		require.NoError(t, json.Unmarshal(body.Data, &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "confirmada", rows[0].NewStatus)
		assert.Equal(t, "programada", rows[0].PreviousStatus)
	})

	t.Run("Backend failure surfaces the backend message", func(t *testing.T) {
		backendErr := exceptions.ErrBackendQuery(errors.New("42501"), constvars.TableAppointmentHistory, "permission denied for table appointment_history")
		appointmentUsecase.On("GetHistory", mock.Anything, testAppointmentID).Return(nil, backendErr).Once()

		req := httptest.NewRequest(http.MethodGet, "/appointments/"+testAppointmentID+"/history", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		body := decodeBody(t, rr)
		assert.False(t, body.Success)
		assert.Equal(t, "permission denied for table appointment_history", body.Message)
	})

	t.Run("Malformed id is rejected before the usecase", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/appointments/not-a-uuid/history", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		appointmentUsecase.AssertNumberOfCalls(t, "GetHistory", 2)
	})
}

func TestAppointmentRouter_ChangeStatus(t *testing.T) {
	logger := zap.NewNop()
	appointmentUsecase := new(mocks.MockAppointmentUsecase)
	appointmentController := &controllers.AppointmentController{Log: logger, AppointmentUsecase: appointmentUsecase}

	router := chi.NewRouter()
	router.Route("/appointments", func(r chi.Router) {
		attachAppointmentRoutes(r, appointmentController)
	})

	t.Run("Illegal transition returns 422", func(t *testing.T) {
		appointmentUsecase.On("ChangeStatus", mock.Anything, testAppointmentID, mock.AnythingOfType("*requests.ChangeAppointmentStatus")).
			Return(nil, exceptions.ErrAppointmentStatusTransition(nil, "confirmada", "programada")).Once()

		payload, _ := json.Marshal(requests.ChangeAppointmentStatus{Status: "programada"})
		req := httptest.NewRequest(http.MethodPut, "/appointments/"+testAppointmentID+"/status", bytes.NewBuffer(payload))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		appointmentUsecase.AssertExpectations(t)
	})

	t.Run("Unknown status fails validation", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]string{"status": "pendiente"})
		req := httptest.NewRequest(http.MethodPut, "/appointments/"+testAppointmentID+"/status", bytes.NewBuffer(payload))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		appointmentUsecase.AssertNumberOfCalls(t, "ChangeStatus", 1)
	})

	t.Run("Invalid date filter is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/appointments?date_from=yesterday", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		appointmentUsecase.AssertNotCalled(t, "ListAppointments", mock.Anything, mock.Anything)
	})
}

func TestPatientRouter(t *testing.T) {
	logger := zap.NewNop()
	patientUsecase := new(mocks.MockPatientUsecase)
	surveyUsecase := new(mocks.MockSurveyUsecase)
	appointmentUsecase := new(mocks.MockAppointmentUsecase)
	patientController := &controllers.PatientController{Log: logger, PatientUsecase: patientUsecase}
	appointmentController := &controllers.AppointmentController{Log: logger, AppointmentUsecase: appointmentUsecase}
	surveyController := &controllers.SurveyController{Log: logger, SurveyUsecase: surveyUsecase}

	router := chi.NewRouter()
	router.Route("/patients", func(r chi.Router) {
		attachPatientRoutes(r, patientController, appointmentController, surveyController)
	})

	t.Run("Create returns 201", func(t *testing.T) {
		created := &responses.Patient{Patient: models.Patient{ID: testPatientID, FirstName: "Ana", LastName: "Rojas", Status: constvars.PatientStatusPotential}}
		patientUsecase.On("CreatePatient", mock.Anything, mock.MatchedBy(func(request *requests.CreatePatient) bool {
			return request.FirstName == "Ana" && request.LastName == "Rojas"
		})).Return(created, nil).Once()

		payload, _ := json.Marshal(map[string]string{"first_name": "Ana", "last_name": "Rojas"})
		req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewBuffer(payload))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		patientUsecase.AssertExpectations(t)
	})

	t.Run("Create with invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewBufferString("invalid json"))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		patientUsecase.AssertNumberOfCalls(t, "CreatePatient", 1)
	})

	t.Run("List rejects unknown status filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/patients?status=dormido", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		patientUsecase.AssertNotCalled(t, "ListPatients", mock.Anything, mock.Anything)
	})

	t.Run("Patient appointments are scoped by the path id", func(t *testing.T) {
		appointmentUsecase.On("ListAppointments", mock.Anything, mock.MatchedBy(func(filter *requests.AppointmentFilter) bool {
			return filter.PatientID == testPatientID && filter.Status == constvars.AppointmentStatusScheduled
		})).Return(&responses.AppointmentList{Total: 0}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/patients/"+testPatientID+"/appointments?status=programada", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		appointmentUsecase.AssertExpectations(t)
	})

	t.Run("Survey submissions are served from the survey usecase", func(t *testing.T) {
		surveyUsecase.On("ListPatientSubmissions", mock.Anything, testPatientID).Return([]responses.SurveySubmission{{SubmissionID: "s1"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/patients/"+testPatientID+"/survey-submissions", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		surveyUsecase.AssertExpectations(t)
	})
}

func TestSurveyAndDashboardRouters(t *testing.T) {
	logger := zap.NewNop()
	surveyUsecase := new(mocks.MockSurveyUsecase)
	dashboardUsecase := new(mocks.MockDashboardUsecase)

	router := chi.NewRouter()
	router.Route("/surveys", func(r chi.Router) {
		attachSurveyRoutes(r, &controllers.SurveyController{Log: logger, SurveyUsecase: surveyUsecase})
	})
	router.Route("/dashboard", func(r chi.Router) {
		attachDashboardRoutes(r, &controllers.DashboardController{Log: logger, DashboardUsecase: dashboardUsecase})
	})

	t.Run("Submit with malformed slug", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]interface{}{"patient_id": testPatientID, "answers": map[string]string{"q1": "si"}})
		req := httptest.NewRequest(http.MethodPost, "/surveys/Bad_Slug/responses", bytes.NewBuffer(payload))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		surveyUsecase.AssertNotCalled(t, "SubmitAnswers", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Submit returns 201", func(t *testing.T) {
		surveyUsecase.On("SubmitAnswers", mock.Anything, "post-op", mock.AnythingOfType("*requests.SubmitSurveyAnswers")).
			Return(&responses.SurveySubmission{SubmissionID: "sub-1"}, nil).Once()

		payload, _ := json.Marshal(map[string]interface{}{"patient_id": testPatientID, "answers": map[string]string{"q1": "si"}})
		req := httptest.NewRequest(http.MethodPost, "/surveys/post-op/responses", bytes.NewBuffer(payload))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		surveyUsecase.AssertExpectations(t)
	})

	t.Run("Follow-ups without limit delegate the default", func(t *testing.T) {
		dashboardUsecase.On("GetFollowUps", mock.Anything, 0).Return([]responses.Patient{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/dashboard/follow-ups", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		dashboardUsecase.AssertExpectations(t)
	})

	t.Run("Upcoming rejects a negative window", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/upcoming?days=-3", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		dashboardUsecase.AssertNotCalled(t, "GetUpcoming", mock.Anything, mock.Anything)
	})
}

func TestProfileRouter_UploadAvatar(t *testing.T) {
	logger := zap.NewNop()
	profileUsecase := new(mocks.MockProfileUsecase)
	profileController := &controllers.ProfileController{
		Log:            logger,
		ProfileUsecase: profileUsecase,
		InternalConfig: &config.InternalConfig{Minio: config.AppMinio{AvatarMaxUploadSizeInMB: 1}},
	}

	router := chi.NewRouter()
	attachProfileRoutes(router, nil, profileController)

	buildUpload := func(t *testing.T, field string, content []byte) *http.Request {
		t.Helper()
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile(field, "avatar.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPut, "/profile/me/avatar", &buf)
		req.Header.Set(constvars.HeaderContentType, writer.FormDataContentType())
		return req
	}

	t.Run("Uploads the avatar file", func(t *testing.T) {
		profileUsecase.On("UploadAvatar", mock.Anything, mock.Anything, mock.Anything, mock.MatchedBy(func(header *multipart.FileHeader) bool {
			return header.Filename == "avatar.png"
		})).Return(&responses.Profile{}, nil).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, buildUpload(t, "avatar", []byte("\x89PNG\r\n\x1a\n")))

		assert.Equal(t, http.StatusOK, rr.Code)
		profileUsecase.AssertExpectations(t)
	})

	t.Run("Missing file field", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, buildUpload(t, "picture", []byte("x")))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		profileUsecase.AssertNumberOfCalls(t, "UploadAvatar", 1)
	})

	t.Run("Body above the limit", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, buildUpload(t, "avatar", bytes.Repeat([]byte("a"), 3<<20)))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
		profileUsecase.AssertNumberOfCalls(t, "UploadAvatar", 1)
	})
}

func TestSetupRoutes_Health(t *testing.T) {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{EndpointPrefix: "api", Version: "v1", MaxRequests: 100},
	}
	middlewareInstance := &middlewares.Middlewares{Log: logger, InternalConfig: internalConfig}

	router := chi.NewRouter()
	SetupRoutes(router, internalConfig, middlewareInstance, nil,
		&controllers.PatientController{Log: logger},
		&controllers.AppointmentController{Log: logger},
		&controllers.SurveyController{Log: logger},
		&controllers.DashboardController{Log: logger},
		&controllers.ProfileController{Log: logger, InternalConfig: internalConfig},
	)

	t.Run("Health is public", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("API requires a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
