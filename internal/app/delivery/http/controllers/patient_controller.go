package controllers

import (
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/exceptions"
	"clinica-service/internal/pkg/utils"
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type PatientController struct {
	Log            *zap.Logger
	PatientUsecase contracts.PatientUsecase
}

var (
	patientControllerInstance *PatientController
	oncePatientController     sync.Once
)

func NewPatientController(logger *zap.Logger, patientUsecase contracts.PatientUsecase) *PatientController {
	oncePatientController.Do(func() {
		patientControllerInstance = &PatientController{
			Log:            logger,
			PatientUsecase: patientUsecase,
		}
	})
	return patientControllerInstance
}

func (ctrl *PatientController) ListPatients(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := r.URL.Query()

	filter := &requests.PatientFilter{
		Status:     query.Get(constvars.QueryParamStatus),
		DoctorID:   query.Get(constvars.QueryParamDoctorID),
		Search:     strings.TrimSpace(query.Get(constvars.QueryParamSearch)),
		Pagination: utils.BuildPaginationRequest(r),
	}
	if filter.Status != "" && !utils.IsValidPatientStatus(filter.Status) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamValidation(nil, constvars.QueryParamStatus))
		return
	}
	if filter.DoctorID != "" {
		if err := utils.ValidateUrlParamID(filter.DoctorID); err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamValidation(err, constvars.QueryParamDoctorID))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.PatientUsecase.ListPatients(ctx, filter)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "PatientController.ListPatients", start, err)
		return
	}

	pagination := utils.BuildPaginationResponse(result.Total, filter.Pagination.Page, filter.Pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetPatientsSuccessMessage, pagination, result.Patients)
}

func (ctrl *PatientController) GetPatient(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	patientID, err := idParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	patient, err := ctrl.PatientUsecase.GetPatient(ctx, patientID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "PatientController.GetPatient", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientSuccessMessage, patient)
}

func (ctrl *PatientController) CreatePatient(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())

	request := new(requests.CreatePatient)
	if err := decodeAndValidate(r, request); err != nil {
		ctrl.Log.Warn("PatientController.CreatePatient rejected request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	patient, err := ctrl.PatientUsecase.CreatePatient(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "PatientController.CreatePatient", start, err)
		return
	}

	ctrl.Log.Info("PatientController.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreatePatientSuccessMessage, patient)
}

func (ctrl *PatientController) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	patientID, err := idParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdatePatient)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	patient, err := ctrl.PatientUsecase.UpdatePatient(ctx, patientID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "PatientController.UpdatePatient", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdatePatientSuccessMessage, patient)
}

func (ctrl *PatientController) DeletePatient(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())

	patientID, err := idParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	if err := ctrl.PatientUsecase.DeletePatient(ctx, patientID); err != nil {
		writeUsecaseError(ctrl.Log, w, r, "PatientController.DeletePatient", start, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "patient_deleted", requestID,
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingUIDKey, utils.GetUID(r.Context())),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeletePatientSuccessMessage, nil)
}

func (ctrl *PatientController) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	patientID, err := idParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.ChangePatientStatus)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	patient, err := ctrl.PatientUsecase.ChangeStatus(ctx, patientID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "PatientController.ChangeStatus", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdatePatientStatusSuccessMessage, patient)
}

// SetFollowUp moves a patient into en_seguimiento.
func (ctrl *PatientController) SetFollowUp(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	patientID, err := idParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	patient, err := ctrl.PatientUsecase.SetFollowUp(ctx, patientID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "PatientController.SetFollowUp", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdatePatientStatusSuccessMessage, patient)
}

func (ctrl *PatientController) ListActivity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	patientID, err := idParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	limit := utils.ParseIntQueryParam(r, constvars.QueryParamLimit, constvars.DefaultPageSize, constvars.MaxPageSize)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	events, err := ctrl.PatientUsecase.ListActivity(ctx, patientID, limit)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "PatientController.ListActivity", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientActivitySuccessMessage, events)
}
