package profiles

import (
	"bytes"
	"clinica-service/internal/app/config"
	"clinica-service/internal/app/contracts/mocks"
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/exceptions"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestProfileUsecase() (*profileUsecase, *mocks.MockProfileBackendClient, *mocks.MockStorage, *mocks.PassthroughQueryCache) {
	backendClient := new(mocks.MockProfileBackendClient)
	storage := new(mocks.MockStorage)
	cache := &mocks.PassthroughQueryCache{}
	uc := &profileUsecase{
		ProfileBackendClient: backendClient,
		Storage:              storage,
		QueryCache:           cache,
		InternalConfig: &config.InternalConfig{
			App: config.App{SessionExpiredTimeInMinute: 30},
			Minio: config.AppMinio{
				BucketName:                      "clinica",
				AvatarMaxUploadSizeInMB:         2,
				PreSignedUrlExpiryTimeInMinutes: 15,
			},
		},
		Log: zap.NewNop(),
	}
	return uc, backendClient, storage, cache
}

func imageHeader(filename, contentType string, size int64) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	header.Set(constvars.HeaderContentType, contentType)
	return &multipart.FileHeader{Filename: filename, Header: header, Size: size}
}

func TestProfileUsecase_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("Builds initials, role label and avatar url", func(t *testing.T) {
		uc, backendClient, storage, _ := newTestProfileUsecase()
		backendClient.On("FindProfileByID", mock.Anything, "u-1").
			Return(&models.Profile{ID: "u-1", FullName: "Juan Pérez", Role: constvars.RoleDoctor, AvatarPath: "avatars/u-1/a.png"}, nil)
		storage.On("GetObjectUrlWithExpiryTime", mock.Anything, "clinica", "avatars/u-1/a.png", 15*time.Minute).
			Return("https://minio.local/clinica/avatars/u-1/a.png?sig=1", nil)

		profile, err := uc.GetMe(ctx, "u-1")

		require.NoError(t, err)
		assert.Equal(t, "JP", profile.Initials)
		assert.Equal(t, "Doctor", profile.RoleLabel)
		assert.Contains(t, profile.AvatarURL, "sig=1")
	})

	t.Run("Presign failure leaves avatar url empty", func(t *testing.T) {
		uc, backendClient, storage, _ := newTestProfileUsecase()
		backendClient.On("FindProfileByID", mock.Anything, "u-1").
			Return(&models.Profile{ID: "u-1", FullName: "Ana", Role: constvars.RoleAssistant, AvatarPath: "avatars/u-1/a.png"}, nil)
		storage.On("GetObjectUrlWithExpiryTime", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("minio down"))

		profile, err := uc.GetMe(ctx, "u-1")

		require.NoError(t, err)
		assert.Empty(t, profile.AvatarURL)
	})
}

func TestProfileUsecase_UploadAvatar(t *testing.T) {
	ctx := context.Background()

	t.Run("Uploads and stores the object path", func(t *testing.T) {
		uc, backendClient, storage, cache := newTestProfileUsecase()
		storage.On("UploadFile", mock.Anything, mock.Anything, int64(1024), constvars.MIMEImagePNG, "clinica",
			mock.MatchedBy(func(name string) bool {
				return strings.HasPrefix(name, "avatars/u-1/") && strings.HasSuffix(name, ".png")
			})).Return("avatars/u-1/new.png", nil)
		backendClient.On("UpdateProfile", mock.Anything, "u-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["avatar_path"] == "avatars/u-1/new.png"
		})).Return(&models.Profile{ID: "u-1", FullName: "Ana", AvatarPath: "avatars/u-1/new.png"}, nil)
		storage.On("GetObjectUrlWithExpiryTime", mock.Anything, "clinica", "avatars/u-1/new.png", mock.Anything).Return("https://signed", nil)

		profile, err := uc.UploadAvatar(ctx, "u-1", bytes.NewReader(make([]byte, 1024)), imageHeader("me.PNG", constvars.MIMEImagePNG, 1024))

		require.NoError(t, err)
		assert.Equal(t, "https://signed", profile.AvatarURL)
		assert.Equal(t, []string{constvars.CacheNamespaceProfiles}, cache.Invalidated)
		storage.AssertExpectations(t)
	})

	t.Run("Rejects files over the limit", func(t *testing.T) {
		uc, _, storage, _ := newTestProfileUsecase()

		_, err := uc.UploadAvatar(ctx, "u-1", bytes.NewReader(nil), imageHeader("me.png", constvars.MIMEImagePNG, 3*1024*1024))

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusRequestEntityTooBig, customErr.StatusCode)
		storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rejects non image files", func(t *testing.T) {
		uc, _, _, _ := newTestProfileUsecase()

		_, err := uc.UploadAvatar(ctx, "u-1", bytes.NewReader(nil), imageHeader("cv.pdf", "application/pdf", 100))

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})
}

func TestProfileUsecase_ResolveSessionProfile(t *testing.T) {
	t.Run("Returns backend error", func(t *testing.T) {
		uc, backendClient, _, _ := newTestProfileUsecase()
		notFound := exceptions.ErrBackendNotFound(nil, constvars.TableProfiles, "profile")
		backendClient.On("FindProfileByID", mock.Anything, "ghost").Return(nil, notFound)

		_, err := uc.ResolveSessionProfile(context.Background(), "ghost")

		assert.Equal(t, notFound, err)
	})
}
