package controllers

import (
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/exceptions"
	"clinica-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const usecaseTimeout = 10 * time.Second

// decodeAndValidate parses a JSON body into request and runs struct
// validation on it.
func decodeAndValidate(r *http.Request, request interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	if err := utils.ValidateStruct(request); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

// idParam reads and validates the {id} URL parameter.
func idParam(r *http.Request) (string, error) {
	id := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateUrlParamID(id); err != nil {
		return "", exceptions.ErrURLParamValidation(err, constvars.URLParamID)
	}
	return id, nil
}

// writeUsecaseError logs a failed usecase call and writes the error
// response, mapping an expired context to 504.
func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, r *http.Request, operation string, start time.Time, err error) {
	log.Error(operation+" failed",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
		zap.String(constvars.LoggingErrorTypeKey, "usecase error"),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
		zap.Error(err),
	)
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
