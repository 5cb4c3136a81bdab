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

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SurveyController struct {
	Log           *zap.Logger
	SurveyUsecase contracts.SurveyUsecase
}

var (
	surveyControllerInstance *SurveyController
	onceSurveyController     sync.Once
)

func NewSurveyController(logger *zap.Logger, surveyUsecase contracts.SurveyUsecase) *SurveyController {
	onceSurveyController.Do(func() {
		surveyControllerInstance = &SurveyController{
			Log:           logger,
			SurveyUsecase: surveyUsecase,
		}
	})
	return surveyControllerInstance
}

func (ctrl *SurveyController) ListSurveys(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	surveys, err := ctrl.SurveyUsecase.ListSurveys(ctx)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "SurveyController.ListSurveys", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSurveysSuccessMessage, surveys)
}

func (ctrl *SurveyController) GetSurvey(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	slug, err := slugParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	survey, err := ctrl.SurveyUsecase.GetSurvey(ctx, slug)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "SurveyController.GetSurvey", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSurveySuccessMessage, survey)
}

func (ctrl *SurveyController) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())

	slug, err := slugParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.SubmitSurveyAnswers)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	submission, err := ctrl.SurveyUsecase.SubmitAnswers(ctx, slug, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "SurveyController.SubmitAnswers", start, err)
		return
	}

	ctrl.Log.Info("SurveyController.SubmitAnswers succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSurveySlugKey, slug),
		zap.String(constvars.LoggingSubmissionIDKey, submission.SubmissionID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SubmitSurveyAnswersSuccessMessage, submission)
}

// ListResponses returns every submission of a survey, optionally narrowed
// to one patient with ?patient_id=.
func (ctrl *SurveyController) ListResponses(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	slug, err := slugParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	patientID := r.URL.Query().Get(constvars.QueryParamPatientID)
	if patientID != "" {
		if err := utils.ValidateUrlParamID(patientID); err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamValidation(err, constvars.QueryParamPatientID))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	submissions, err := ctrl.SurveyUsecase.ListResponses(ctx, slug, patientID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "SurveyController.ListResponses", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSurveyResponsesSuccessMessage, submissions)
}

func (ctrl *SurveyController) ListPatientSubmissions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	patientID, err := idParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	submissions, err := ctrl.SurveyUsecase.ListPatientSubmissions(ctx, patientID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "SurveyController.ListPatientSubmissions", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSurveyResponsesSuccessMessage, submissions)
}

func slugParam(r *http.Request) (string, error) {
	slug := chi.URLParam(r, constvars.URLParamSurveySlug)
	if err := utils.ValidateSlug(slug); err != nil {
		return "", exceptions.ErrURLParamValidation(err, constvars.URLParamSurveySlug)
	}
	return slug, nil
}
