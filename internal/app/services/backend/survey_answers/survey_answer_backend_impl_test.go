package survey_answers

import (
	"clinica-service/internal/app/services/backend"
	"clinica-service/internal/pkg/constvars"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newTestClient(server *httptest.Server) *surveyAnswerBackendClient {
	return &surveyAnswerBackendClient{
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

// answerRows renders count answer rows, two per submission, starting at
// row index first.
func answerRows(first, count int) string {
	rows := make([]string, 0, count)
	for i := first; i < first+count; i++ {
		rows = append(rows, fmt.Sprintf(`{"submission_id":"s-%04d"}`, i/2))
	}
	return "[" + strings.Join(rows, ",") + "]"
}

func TestCountSubmissionsSince(t *testing.T) {
	since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Pages past the row cap and counts distinct submissions", func(t *testing.T) {
		const totalRows = 2500
		var offsets []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			assert.Equal(t, "submission_id", query.Get("select"))
			assert.Equal(t, "gte.2026-02-01T00:00:00Z", query.Get("created_at"))
			assert.Equal(t, "1000", query.Get("limit"))
			offsets = append(offsets, query.Get("offset"))

			offset, _ := strconv.Atoi(query.Get("offset"))
			count := constvars.BackendMaxRows
			if offset+count > totalRows {
				count = totalRows - offset
			}
			w.Header().Set(constvars.HeaderContentRange, fmt.Sprintf("%d-%d/%d", offset, offset+count-1, totalRows))
			w.Write([]byte(answerRows(offset, count)))
		}))
		defer server.Close()

		total, err := newTestClient(server).CountSubmissionsSince(context.Background(), since, "")

		require.NoError(t, err)
		assert.Equal(t, 1250, total)
		assert.Equal(t, []string{"", "1000", "2000"}, offsets)
	})

	t.Run("Doctor scope joins patients", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			assert.Equal(t, "submission_id,patients!inner(doctor_id)", query.Get("select"))
			assert.Equal(t, "eq.doc-1", query.Get("patients.doctor_id"))
			w.Header().Set(constvars.HeaderContentRange, "0-3/4")
			w.Write([]byte(answerRows(0, 4)))
		}))
		defer server.Close()

		total, err := newTestClient(server).CountSubmissionsSince(context.Background(), since, "doc-1")

		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("Backend failure is returned", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"boom"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server).CountSubmissionsSince(context.Background(), since, "")

		assert.Error(t, err)
	})
}
