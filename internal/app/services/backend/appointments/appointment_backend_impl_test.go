package appointments

import (
	"clinica-service/internal/app/services/backend"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newTestClient(server *httptest.Server) *appointmentBackendClient {
	return &appointmentBackendClient{
		Client: &backend.Client{
			BaseUrl:    server.URL + constvars.BackendRestPath,
			ServiceKey: "service-key",
			HTTPClient: server.Client(),
			Limiter:    rate.NewLimiter(rate.Inf, 1),
			Log:        zap.NewNop(),
		},
		Log: zap.NewNop(),
	}
}

func TestUpdateAppointment(t *testing.T) {
	t.Run("Expected status is part of the filter", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/rest/v1/appointments", r.URL.Path)
			assert.Equal(t, "eq.a-1", r.URL.Query().Get("id"))
			assert.Equal(t, "eq.programada", r.URL.Query().Get("status"))
			w.Write([]byte(`[{"id":"a-1","status":"confirmada"}]`))
		}))
		defer server.Close()

		appointment, err := newTestClient(server).UpdateAppointment(context.Background(), "a-1", "programada", map[string]interface{}{"status": "confirmada"})

		require.NoError(t, err)
		assert.Equal(t, "confirmada", appointment.Status)
	})

	t.Run("Status changed underneath is a conflict", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		_, err := newTestClient(server).UpdateAppointment(context.Background(), "a-1", "programada", map[string]interface{}{"status": "cancelada"})

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusConflict, customErr.StatusCode)
	})

	t.Run("Missing row without expected status is not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.Query().Get("status"))
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		_, err := newTestClient(server).UpdateAppointment(context.Background(), "a-1", "", map[string]interface{}{"notes": "x"})

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusNotFound, customErr.StatusCode)
	})
}
