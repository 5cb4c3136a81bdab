package contracts

import (
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/dto/responses"
	"context"
	"io"
	"mime/multipart"
)

type ProfileUsecase interface {
	GetMe(ctx context.Context, uid string) (*responses.Profile, error)
	UpdateMe(ctx context.Context, uid string, request *requests.UpdateProfile) (*responses.Profile, error)
	UploadAvatar(ctx context.Context, uid string, file io.Reader, fileHeader *multipart.FileHeader) (*responses.Profile, error)
	ListStaff(ctx context.Context) ([]responses.Profile, error)
	// ResolveSessionProfile returns the profile behind an authenticated
	// user id, served from the session cache when possible.
	ResolveSessionProfile(ctx context.Context, uid string) (*models.Profile, error)
}

type ProfileBackendClient interface {
	FindProfileByID(ctx context.Context, profileID string) (*models.Profile, error)
	FindProfiles(ctx context.Context) ([]models.Profile, error)
	UpdateProfile(ctx context.Context, profileID string, fields map[string]interface{}) (*models.Profile, error)
}
