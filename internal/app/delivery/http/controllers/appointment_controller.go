package controllers

import (
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/exceptions"
	"clinica-service/internal/pkg/utils"
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

var (
	appointmentControllerInstance *AppointmentController
	onceAppointmentController     sync.Once
)

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	onceAppointmentController.Do(func() {
		appointmentControllerInstance = &AppointmentController{
			Log:                logger,
			AppointmentUsecase: appointmentUsecase,
		}
	})
	return appointmentControllerInstance
}

func (ctrl *AppointmentController) ListAppointments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	filter, err := buildAppointmentFilter(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.ListAppointments(ctx, filter)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "AppointmentController.ListAppointments", start, err)
		return
	}

	pagination := utils.BuildPaginationResponse(result.Total, filter.Pagination.Page, filter.Pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetAppointmentsSuccessMessage, pagination, result.Appointments)
}

// ListPatientAppointments is ListAppointments scoped to the {id} patient.
func (ctrl *AppointmentController) ListPatientAppointments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	patientID, err := idParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	filter, err := buildAppointmentFilter(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	filter.PatientID = patientID

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.ListAppointments(ctx, filter)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "AppointmentController.ListPatientAppointments", start, err)
		return
	}

	pagination := utils.BuildPaginationResponse(result.Total, filter.Pagination.Page, filter.Pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetAppointmentsSuccessMessage, pagination, result.Appointments)
}

func (ctrl *AppointmentController) GetAppointment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	appointmentID, err := idParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.GetAppointment(ctx, appointmentID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "AppointmentController.GetAppointment", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())

	request := new(requests.CreateAppointment)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.CreateAppointment(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "AppointmentController.CreateAppointment", start, err)
		return
	}

	ctrl.Log.Info("AppointmentController.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	appointmentID, err := idParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdateAppointment)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.UpdateAppointment(ctx, appointmentID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "AppointmentController.UpdateAppointment", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	appointmentID, err := idParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.ChangeAppointmentStatus)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.ChangeStatus(ctx, appointmentID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "AppointmentController.ChangeStatus", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateAppointmentStatusSuccessMsg, appointment)
}

// GetHistory returns the status and schedule changes of one appointment,
// newest first.
func (ctrl *AppointmentController) GetHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())

	appointmentID, err := idParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	history, err := ctrl.AppointmentUsecase.GetHistory(ctx, appointmentID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "AppointmentController.GetHistory", start, err)
		return
	}

	ctrl.Log.Info("AppointmentController.GetHistory succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.Int(constvars.LoggingResultCountKey, len(history)),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentHistorySuccessMsg, history)
}

func buildAppointmentFilter(r *http.Request) (*requests.AppointmentFilter, error) {
	query := r.URL.Query()
	filter := &requests.AppointmentFilter{
		Status:     query.Get(constvars.QueryParamStatus),
		DoctorID:   query.Get(constvars.QueryParamDoctorID),
		PatientID:  query.Get(constvars.QueryParamPatientID),
		Pagination: utils.BuildPaginationRequest(r),
	}
	if filter.Status != "" && !utils.IsValidAppointmentStatus(filter.Status) {
		return nil, exceptions.ErrQueryParamValidation(nil, constvars.QueryParamStatus)
	}
	if filter.DoctorID != "" {
		if err := utils.ValidateUrlParamID(filter.DoctorID); err != nil {
			return nil, exceptions.ErrQueryParamValidation(err, constvars.QueryParamDoctorID)
		}
	}
	if filter.PatientID != "" {
		if err := utils.ValidateUrlParamID(filter.PatientID); err != nil {
			return nil, exceptions.ErrQueryParamValidation(err, constvars.QueryParamPatientID)
		}
	}

	from, err := utils.ParseDateQueryParam(r, constvars.QueryParamDateFrom)
	if err != nil {
		return nil, exceptions.ErrQueryParamValidation(err, constvars.QueryParamDateFrom)
	}
	to, err := utils.ParseDateQueryParam(r, constvars.QueryParamDateTo)
	if err != nil {
		return nil, exceptions.ErrQueryParamValidation(err, constvars.QueryParamDateTo)
	}
	filter.From = from
	filter.To = to
	return filter, nil
}
