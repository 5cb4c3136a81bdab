package profiles

import (
	"clinica-service/internal/app/config"
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/dto/responses"
	"clinica-service/internal/pkg/exceptions"
	"clinica-service/internal/pkg/utils"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

type profileUsecase struct {
	ProfileBackendClient contracts.ProfileBackendClient
	Storage              contracts.Storage
	QueryCache           contracts.QueryCache
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
}

func NewProfileUsecase(
	profileBackendClient contracts.ProfileBackendClient,
	storage contracts.Storage,
	queryCache contracts.QueryCache,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ProfileUsecase {
	return &profileUsecase{
		ProfileBackendClient: profileBackendClient,
		Storage:              storage,
		QueryCache:           queryCache,
		InternalConfig:       internalConfig,
		Log:                  logger,
	}
}

func (uc *profileUsecase) GetMe(ctx context.Context, uid string) (*responses.Profile, error) {
	profile, err := uc.ProfileBackendClient.FindProfileByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return uc.buildResponse(ctx, profile), nil
}

func (uc *profileUsecase) UpdateMe(ctx context.Context, uid string, request *requests.UpdateProfile) (*responses.Profile, error) {
	updated, err := uc.ProfileBackendClient.UpdateProfile(ctx, uid, map[string]interface{}{
		"full_name":  strings.TrimSpace(request.FullName),
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	uc.QueryCache.Invalidate(ctx, constvars.CacheNamespaceProfiles)
	return uc.buildResponse(ctx, updated), nil
}

// UploadAvatar stores the image in the avatars bucket and points the
// profile at the new object.
func (uc *profileUsecase) UploadAvatar(ctx context.Context, uid string, file io.Reader, fileHeader *multipart.FileHeader) (*responses.Profile, error) {
	requestID := utils.GetRequestID(ctx)
	maxSize := uc.InternalConfig.Minio.AvatarMaxUploadSizeInMB

	if err := utils.ValidateImage(fileHeader, maxSize); err != nil {
		uc.Log.Info("profileUsecase.UploadAvatar rejected file",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUIDKey, uid),
			zap.Error(err),
		)
		if errors.Is(err, utils.ErrFileTooLarge) {
			return nil, exceptions.ErrImageTooLarge(err, maxSize)
		}
		return nil, exceptions.ErrImageValidation(err)
	}

	contentType := fileHeader.Header.Get(constvars.HeaderContentType)
	extension := strings.ToLower(filepath.Ext(fileHeader.Filename))
	objectName := utils.GenerateObjectName(constvars.MinioAvatarPrefix, uid, extension)

	stored, err := uc.Storage.UploadFile(ctx, file, fileHeader.Size, contentType, uc.InternalConfig.Minio.BucketName, objectName)
	if err != nil {
		return nil, err
	}

	updated, err := uc.ProfileBackendClient.UpdateProfile(ctx, uid, map[string]interface{}{
		"avatar_path": stored,
		"updated_at":  time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	uc.QueryCache.Invalidate(ctx, constvars.CacheNamespaceProfiles)

	uc.Log.Info("profileUsecase.UploadAvatar succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUIDKey, uid),
		zap.String(constvars.LoggingObjectNameKey, stored),
	)
	return uc.buildResponse(ctx, updated), nil
}

func (uc *profileUsecase) ListStaff(ctx context.Context) ([]responses.Profile, error) {
	profiles, err := uc.ProfileBackendClient.FindProfiles(ctx)
	if err != nil {
		return nil, err
	}

	staff := make([]responses.Profile, 0, len(profiles))
	for i := range profiles {
		staff = append(staff, *uc.buildResponse(ctx, &profiles[i]))
	}
	return staff, nil
}

func (uc *profileUsecase) ResolveSessionProfile(ctx context.Context, uid string) (*models.Profile, error) {
	profile := &models.Profile{}
	ttl := time.Duration(uc.InternalConfig.App.SessionExpiredTimeInMinute) * time.Minute
	err := uc.QueryCache.Fetch(ctx, constvars.CacheNamespaceProfiles, map[string]string{"uid": uid}, ttl, profile,
		func(ctx context.Context) error {
			found, err := uc.ProfileBackendClient.FindProfileByID(ctx, uid)
			if err != nil {
				return err
			}
			*profile = *found
			return nil
		})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// buildResponse attaches a presigned avatar URL. A presign failure is logged
// and the profile is returned without it.
func (uc *profileUsecase) buildResponse(ctx context.Context, profile *models.Profile) *responses.Profile {
	var avatarURL string
	if profile.AvatarPath != "" {
		expiry := time.Duration(uc.InternalConfig.Minio.PreSignedUrlExpiryTimeInMinutes) * time.Minute
		url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, uc.InternalConfig.Minio.BucketName, profile.AvatarPath, expiry)
		if err != nil {
			uc.Log.Warn("profileUsecase presign avatar failed",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingObjectNameKey, profile.AvatarPath),
				zap.Error(err),
			)
		} else {
			avatarURL = url
		}
	}

	response := utils.BuildProfileResponse(*profile, avatarURL)
	return &response
}
