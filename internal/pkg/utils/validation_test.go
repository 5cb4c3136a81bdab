package utils

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func imageHeader(filename, contentType string, size int64) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{Filename: filename, Header: header, Size: size}
}

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage(imageHeader("avatar.png", "image/png", 1024), 2))
	assert.NoError(t, ValidateImage(imageHeader("AVATAR.JPG", "", 1024), 2))
	assert.ErrorIs(t, ValidateImage(imageHeader("avatar.png", "image/png", 3<<20), 2), ErrFileTooLarge)
	assert.ErrorIs(t, ValidateImage(imageHeader("cv.pdf", "application/pdf", 1024), 2), ErrInvalidImageFormat)
	assert.ErrorIs(t, ValidateImage(imageHeader("avatar.png", "text/plain", 1024), 2), ErrInvalidImageFormat)
	assert.ErrorIs(t, ValidateImage(nil, 2), ErrInvalidImageFormat)
}

func TestValidateParams(t *testing.T) {
	assert.NoError(t, ValidateUrlParamID("5b0f8c1e-8a57-4c4c-9a0e-2f1c3d4e5f60"))
	assert.Error(t, ValidateUrlParamID(""))
	assert.Error(t, ValidateUrlParamID("42"))

	assert.NoError(t, ValidateSlug("satisfaccion-post-op"))
	assert.Error(t, ValidateSlug("Post_Op"))
	assert.Error(t, ValidateSlug("-post"))
	assert.Error(t, ValidateSlug(""))
}

func TestValidateStruct(t *testing.T) {
	type contact struct {
		Phone  string `validate:"omitempty,phone_number"`
		Status string `validate:"omitempty,patient_status"`
	}

	assert.NoError(t, ValidateStruct(contact{Phone: "+56912345678", Status: "potencial"}))
	assert.Error(t, ValidateStruct(contact{Phone: "912345678"}))
	assert.Error(t, ValidateStruct(contact{Status: "dormido"}))
}
