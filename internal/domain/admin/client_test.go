package admin

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

	"github.com/healthbridge/healthbridge/internal/domain/identity"
	"github.com/healthbridge/healthbridge/internal/platform/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(api.New(srv.URL, 5*time.Second, nil, zerolog.Nop()))
}

func TestCreateDoctor_EndpointAndBody(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(identity.DoctorProfile{UserID: uuid.New(), FirstName: "Ravi"})
	})

	doc, err := client.CreateDoctor(context.Background(), DoctorInput{
		FirstName: "Ravi",
		LastName:  "Shah",
		Email:     "ravi@example.com",
		Phone:     "+91 90000 00001",
		Address:   "Civil Hospital Road",
		Specialty: "Cardiology",
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/admin/professionals/doctors", gotPath)
	assert.Equal(t, "Cardiology", gotBody["specialty"])
	assert.Equal(t, "Ravi", doc.FirstName)
}

func TestCreateDoctor_RequiresContact(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := client.CreateDoctor(context.Background(), DoctorInput{FirstName: "Ravi"})
	require.Error(t, err)
	assert.False(t, called)
}

func TestUsers_RoleFilter(t *testing.T) {
	var gotRole string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRole = r.URL.Query().Get("role")
		w.Write([]byte(`[]`))
	})

	_, err := client.Users(context.Background(), identity.RolePharmacy)
	require.NoError(t, err)
	assert.Equal(t, "PHARMACY", gotRole)
}

func TestUsers_RejectsUnknownRole(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	_, err := client.Users(context.Background(), identity.Role("SUPERUSER"))
	require.Error(t, err)
}

func TestActivateDeactivateDelete_Endpoints(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		json.NewEncoder(w).Encode(identity.User{})
	})
	id := uuid.New()

	_, err := client.Activate(context.Background(), id)
	require.NoError(t, err)
	_, err = client.Deactivate(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, client.Delete(context.Background(), id))

	assert.Equal(t, []string{
		"PATCH /api/admin/users/" + id.String() + "/activate",
		"PATCH /api/admin/users/" + id.String() + "/deactivate",
		"DELETE /api/admin/users/" + id.String(),
	}, calls)
}

func TestStats_Decoding(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SystemStats{TotalPatients: 120, PendingReports: 7})
	})

	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, stats.TotalPatients)
	assert.Equal(t, 7, stats.PendingReports)
}
