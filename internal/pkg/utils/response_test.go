package utils

import (
	"clinica-service/internal/pkg/exceptions"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildPaginationResponse(t *testing.T) {
	t.Run("Middle page links both ways", func(t *testing.T) {
		pagination := BuildPaginationResponse(45, 2, 20, "/api/patients")
		assert.Equal(t, "/api/patients?page=3&page_size=20", pagination.NextURL)
		assert.Equal(t, "/api/patients?page=1&page_size=20", pagination.PrevURL)
	})

	t.Run("Last page has no next link", func(t *testing.T) {
		pagination := BuildPaginationResponse(45, 3, 20, "/api/patients")
		assert.Empty(t, pagination.NextURL)
	})
}

func TestBuildPaginationRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/patients?page=3&page_size=500", nil)
	pagination := BuildPaginationRequest(req)
	assert.Equal(t, 3, pagination.Page)
	assert.Equal(t, 100, pagination.PageSize)
	assert.Equal(t, 200, pagination.Offset())

	req = httptest.NewRequest(http.MethodGet, "/api/patients?page=-1", nil)
	pagination = BuildPaginationRequest(req)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
}

func TestParseDateQueryParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?from=2026-03-01&to=2026-03-02T10:00:00Z&bad=ayer", nil)

	from, err := ParseDateQueryParam(req, "from")
	require.NoError(t, err)
	assert.Equal(t, 1, from.Day())

	to, err := ParseDateQueryParam(req, "to")
	require.NoError(t, err)
	assert.Equal(t, 10, to.Hour())

	missing, err := ParseDateQueryParam(req, "missing")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	_, err = ParseDateQueryParam(req, "bad")
	assert.Error(t, err)
}

func TestBuildErrorResponse(t *testing.T) {
	t.Run("Custom error keeps status and client message", func(t *testing.T) {
		rr := httptest.NewRecorder()
		BuildErrorResponse(zap.NewNop(), rr, exceptions.ErrBackendQuery(errors.New("42501"), "appointment_history", "permission denied"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "permission denied", body["message"])
		assert.Equal(t, false, body["success"])
	})

	t.Run("Plain error becomes a generic 500", func(t *testing.T) {
		rr := httptest.NewRecorder()
		BuildErrorResponse(zap.NewNop(), rr, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "boom")
	})
}
