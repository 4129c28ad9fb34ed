package doctor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthbridge/healthbridge/internal/platform/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(api.New(srv.URL, 5*time.Second, nil, zerolog.Nop()))
}

func TestSearchPatients_QueryEncoding(t *testing.T) {
	var gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`[]`))
	})

	_, err := client.SearchPatients(context.Background(), "asha patel")
	require.NoError(t, err)
	assert.Equal(t, "/api/doctor/patients/search", gotPath)
	assert.Equal(t, "asha patel", gotQuery)
}

func TestSearchPatients_RequiresQuery(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`[]`))
	})

	_, err := client.SearchPatients(context.Background(), "")
	require.Error(t, err)
	assert.False(t, called)
}

func TestPatientTimeline_DecodesPreJoinedAggregate(t *testing.T) {
	patientID := uuid.New()
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{
			"patient": map[string]any{
				"user_id":       patientID.String(),
				"first_name":    "Asha",
				"last_name":     "Patel",
				"date_of_birth": "1985-03-02",
				"gender":        "Female",
				"created_at":    "2024-01-10T08:00:00Z",
			},
			"encounters": []any{},
			"vitals_trend": map[string]any{
				"heart_rate": []int{70, 74, 72},
				"timestamps": []string{"2024-05-01T09:00:00Z", "2024-05-10T09:00:00Z", "2024-06-01T09:00:00Z"},
			},
		})
	})

	tl, err := client.PatientTimeline(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, "/api/doctor/patients/"+patientID.String()+"/timeline", gotPath)
	assert.Equal(t, "Asha", tl.Patient.FirstName)
	// The trend stays opaque; the client does not re-aggregate it.
	assert.Contains(t, string(tl.VitalsTrend), "heart_rate")
}

func TestStats_Endpoint(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(Stats{TotalPatients: 12, PendingReports: 4})
	})

	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/doctor/stats", gotPath)
	assert.Equal(t, 12, stats.TotalPatients)
	assert.Equal(t, 4, stats.PendingReports)
}
