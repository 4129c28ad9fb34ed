package orders

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

type recordedCall struct {
	method string
	path   string
	body   map[string]any
}

func recordingServer(t *testing.T, respond any) (*api.Client, *[]recordedCall) {
	t.Helper()
	calls := &[]recordedCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := recordedCall{method: r.Method, path: r.URL.Path}
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&call.body)
		}
		*calls = append(*calls, call)
		json.NewEncoder(w).Encode(respond)
	}))
	t.Cleanup(srv.Close)
	return api.New(srv.URL, 5*time.Second, nil, zerolog.Nop()), calls
}

func TestCreateLabOrder_EndpointMapping(t *testing.T) {
	apiClient, calls := recordingServer(t, LabOrder{OrderID: uuid.New(), Status: StatusSent})
	client := NewClient(apiClient)
	encID, labID := uuid.New(), uuid.New()

	order, err := client.CreateLabOrder(context.Background(), encID, labID, "CBC and lipid panel")
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "/api/encounters/"+encID.String()+"/lab-orders", call.path)
	assert.Equal(t, labID.String(), call.body["lab_id"])
	assert.Equal(t, "CBC and lipid panel", call.body["instructions"])
	assert.Equal(t, StatusSent, order.Status)
}

func TestCreateLabOrder_RequiresInstructions(t *testing.T) {
	apiClient, calls := recordingServer(t, LabOrder{})
	client := NewClient(apiClient)

	_, err := client.CreateLabOrder(context.Background(), uuid.New(), uuid.New(), "")
	require.Error(t, err)
	assert.Empty(t, *calls, "validation failure must not reach the backend")
}

func TestCreatePrescription_EndpointMapping(t *testing.T) {
	apiClient, calls := recordingServer(t, Prescription{PrescriptionID: uuid.New(), Status: StatusSent})
	client := NewClient(apiClient)
	encID, pharmacyID := uuid.New(), uuid.New()

	_, err := client.CreatePrescription(context.Background(), encID, pharmacyID, "Amoxicillin 500mg, 3x daily")
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "/api/encounters/"+encID.String()+"/prescriptions", call.path)
	assert.Equal(t, pharmacyID.String(), call.body["pharmacy_id"])
}

func TestLabPortal_UpdateStatus_ForwardTransition(t *testing.T) {
	apiClient, calls := recordingServer(t, LabOrder{Status: StatusReceived})
	portal := NewLabPortal(apiClient)
	order := &LabOrder{OrderID: uuid.New(), Status: StatusSent}

	updated, err := portal.UpdateStatus(context.Background(), order, StatusReceived)
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPatch, call.method)
	assert.Equal(t, "/api/lab/orders/"+order.OrderID.String(), call.path)
	assert.Equal(t, "RECEIVED", call.body["status"])
	assert.Equal(t, StatusReceived, updated.Status)
}

func TestLabPortal_UpdateStatus_RejectsBackwardTransition(t *testing.T) {
	apiClient, calls := recordingServer(t, LabOrder{})
	portal := NewLabPortal(apiClient)
	order := &LabOrder{OrderID: uuid.New(), Status: StatusCompleted}

	_, err := portal.UpdateStatus(context.Background(), order, StatusSent)
	require.Error(t, err)
	assert.Empty(t, *calls)
}

func TestPharmacyPortal_PatientInfoEndpoint(t *testing.T) {
	apiClient, calls := recordingServer(t, PatientInfo{FirstName: "Asha", LastName: "Patel"})
	portal := NewPharmacyPortal(apiClient)
	rxID := uuid.New()

	info, err := portal.PatientInfo(context.Background(), rxID)
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodGet, (*calls)[0].method)
	assert.Equal(t, "/api/pharmacy/prescriptions/"+rxID.String()+"/patient-info", (*calls)[0].path)
	assert.Equal(t, "Asha", info.FirstName)
}

func TestLabPortal_Stats(t *testing.T) {
	apiClient, calls := recordingServer(t, Stats{TotalOrders: 5, Sent: 2, Received: 1, Completed: 2, Pending: 3})
	portal := NewLabPortal(apiClient)

	stats, err := portal.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/lab/stats", (*calls)[0].path)
	assert.Equal(t, 3, stats.Pending)
}
