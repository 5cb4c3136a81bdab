package controllers

import (
	"clinica-service/internal/app/config"
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/exceptions"
	"clinica-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const avatarFormField = "avatar"

type ProfileController struct {
	Log            *zap.Logger
	ProfileUsecase contracts.ProfileUsecase
	InternalConfig *config.InternalConfig
}

var (
	profileControllerInstance *ProfileController
	onceProfileController     sync.Once
)

func NewProfileController(logger *zap.Logger, profileUsecase contracts.ProfileUsecase, internalConfig *config.InternalConfig) *ProfileController {
	onceProfileController.Do(func() {
		profileControllerInstance = &ProfileController{
			Log:            logger,
			ProfileUsecase: profileUsecase,
			InternalConfig: internalConfig,
		}
	})
	return profileControllerInstance
}

func (ctrl *ProfileController) GetMe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	profile, err := ctrl.ProfileUsecase.GetMe(ctx, utils.GetUID(r.Context()))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "ProfileController.GetMe", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetProfileSuccessMessage, profile)
}

func (ctrl *ProfileController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	request := new(requests.UpdateProfile)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	profile, err := ctrl.ProfileUsecase.UpdateMe(ctx, utils.GetUID(r.Context()), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "ProfileController.UpdateMe", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateProfileSuccessMessage, profile)
}

func (ctrl *ProfileController) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())
	maxSize := ctrl.InternalConfig.Minio.AvatarMaxUploadSizeInMB

	// one extra megabyte leaves room for the multipart envelope
	r.Body = http.MaxBytesReader(w, r.Body, (maxSize+1)<<20)
	if err := r.ParseMultipartForm(maxSize << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrImageTooLarge(err, maxSize))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	file, fileHeader, err := r.FormFile(avatarFormField)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	profile, err := ctrl.ProfileUsecase.UploadAvatar(ctx, utils.GetUID(r.Context()), file, fileHeader)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "ProfileController.UploadAvatar", start, err)
		return
	}

	ctrl.Log.Info("ProfileController.UploadAvatar succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64("size_bytes", fileHeader.Size),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UploadAvatarSuccessMessage, profile)
}

func (ctrl *ProfileController) ListStaff(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	staff, err := ctrl.ProfileUsecase.ListStaff(ctx)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, r, "ProfileController.ListStaff", start, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStaffSuccessMessage, staff)
}
