package controllers

import (
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/exceptions"
	"clinica-service/internal/pkg/utils"
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

type DashboardController struct {
	Log              *zap.Logger
	DashboardUsecase contracts.DashboardUsecase
}

var (
	dashboardControllerInstance *DashboardController
	onceDashboardController     sync.Once
)

func NewDashboardController(logger *zap.Logger, dashboardUsecase contracts.DashboardUsecase) *DashboardController {
	onceDashboardController.Do(func() {
		dashboardControllerInstance = &DashboardController{
			Log:              logger,
			DashboardUsecase: dashboardUsecase,
		}
	})
	return dashboardControllerInstance
}

// GetSummary aggregates patient and appointment counters. Doctors see
// their own numbers unless ?doctor_id= is given.
func (ctrl *DashboardController) GetSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	doctorID := r.URL.Query().Get(constvars.QueryParamDoctorID)
	if doctorID == "" && utils.GetRole(r.Context()) == constvars.RoleDoctor {
		doctorID = utils.GetUID(r.Context())
	}
	if doctorID != "" {
		if err := utils.ValidateUrlParamID(doctorID); err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamValidation(err, constvars.QueryParamDoctorID))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	summary, err := ctrl.DashboardUsecase.GetSummary(ctx, doctorID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "DashboardController.GetSummary", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDashboardSummarySuccessMessage, summary)
}

func (ctrl *DashboardController) GetFollowUps(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, err := optionalPositiveInt(r, constvars.QueryParamLimit)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	patients, err := ctrl.DashboardUsecase.GetFollowUps(ctx, limit)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "DashboardController.GetFollowUps", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDashboardFollowUpsSuccessMsg, patients)
}

func (ctrl *DashboardController) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	days, err := optionalPositiveInt(r, constvars.QueryParamDays)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	appointments, err := ctrl.DashboardUsecase.GetUpcoming(ctx, days)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "DashboardController.GetUpcoming", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDashboardUpcomingSuccessMessage, appointments)
}

// optionalPositiveInt returns 0 when the parameter is absent so the usecase
// applies its own default.
func optionalPositiveInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, exceptions.ErrQueryParamValidation(err, name)
	}
	return value, nil
}
