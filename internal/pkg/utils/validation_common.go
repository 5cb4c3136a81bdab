package utils

import (
	"clinica-service/internal/pkg/constvars"
	"errors"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrFileTooLarge        = errors.New("file size exceeds the maximum limit")
	ErrInvalidImageFormat  = errors.New("invalid image format")
	allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}
	allowedImageMIMETypes  = []string{constvars.MIMEImageJPEG, constvars.MIMEImagePNG, constvars.MIMEImageWEBP}
	slugPattern            = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

func ValidateUrlParamID(param string) error {
	if param == "" {
		return errors.New("parameter is missing from url path")
	}

	_, err := uuid.Parse(param)
	return err
}

func ValidateSlug(param string) error {
	if !slugPattern.MatchString(param) {
		return errors.New("slug must be lowercase words separated by hyphens")
	}
	return nil
}

// ValidateImage checks extension, declared content type and size of an
// uploaded image.
func ValidateImage(fileHeader *multipart.FileHeader, maxSizeInMegabytes int64) error {
	if fileHeader == nil {
		return ErrInvalidImageFormat
	}

	if fileHeader.Size > maxSizeInMegabytes*1024*1024 {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !slices.Contains(allowedImageExtensions, ext) {
		return ErrInvalidImageFormat
	}

	contentType := fileHeader.Header.Get(constvars.HeaderContentType)
	if contentType != "" && !slices.Contains(allowedImageMIMETypes, contentType) {
		return ErrInvalidImageFormat
	}
	return nil
}
