package referral

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

func TestCreate_DefaultsPriority(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(Referral{ReferralID: uuid.New(), Status: StatusPending})
	})

	ref, err := client.Create(context.Background(), CreateInput{
		PatientID:          uuid.New(),
		ReferredToDoctorID: uuid.New(),
		Reason:             "needs a cardiologist",
	})
	require.NoError(t, err)
	assert.Equal(t, string(PriorityMedium), gotBody["priority"])
	assert.Equal(t, StatusPending, ref.Status)
}

func TestCreate_RequiresPartiesAndReason(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.Create(context.Background(), CreateInput{Reason: "x"})
	require.Error(t, err)
	_, err = client.Create(context.Background(), CreateInput{
		PatientID:          uuid.New(),
		ReferredToDoctorID: uuid.New(),
	})
	require.Error(t, err)
}

func TestListEndpoints(t *testing.T) {
	var gotPaths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		json.NewEncoder(w).Encode([]Referral{})
	})

	ctx := context.Background()
	_, err := client.Made(ctx)
	require.NoError(t, err)
	_, err = client.Received(ctx)
	require.NoError(t, err)
	_, err = client.Mine(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/api/referrals/my-referrals-made",
		"/api/referrals/my-referrals-received",
		"/api/referrals/my-referrals",
	}, gotPaths)
}

func TestAccept_QueryParamsAndRefetch(t *testing.T) {
	id := uuid.New()
	var methods []string
	var gotNotes string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		switch r.Method {
		case http.MethodPatch:
			gotNotes = r.URL.Query().Get("notes")
			json.NewEncoder(w).Encode(map[string]any{"message": "ok", "referral_id": id})
		default:
			json.NewEncoder(w).Encode(Referral{ReferralID: id, Status: StatusAccepted})
		}
	})

	ref, err := client.Accept(context.Background(), id, "bring prior ECGs")
	require.NoError(t, err)
	assert.Equal(t, []string{http.MethodPatch, http.MethodGet}, methods)
	assert.Equal(t, "bring prior ECGs", gotNotes)
	assert.Equal(t, StatusAccepted, ref.Status)
}

func TestDecline_RequiresReason(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	_, err := client.Decline(context.Background(), uuid.New(), "")
	require.Error(t, err)
}

func TestLinkAppointment_SendsEncounterAndTime(t *testing.T) {
	id := uuid.New()
	encID := uuid.New()
	when := time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			gotQuery = r.URL.Query()
			json.NewEncoder(w).Encode(map[string]any{"message": "ok", "referral_id": id})
			return
		}
		json.NewEncoder(w).Encode(Referral{ReferralID: id, Status: StatusAppointmentScheduled})
	})

	ref, err := client.LinkAppointment(context.Background(), id, encID, when)
	require.NoError(t, err)
	assert.Equal(t, encID.String(), gotQuery["encounter_id"][0])
	assert.Equal(t, "2026-09-14T10:30:00Z", gotQuery["scheduled_time"][0])
	assert.Equal(t, StatusAppointmentScheduled, ref.Status)
}

func TestStats_Endpoint(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(Stats{TotalPending: 2, UnreadCount: 1})
	})

	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/referrals/stats/summary", gotPath)
	assert.Equal(t, 2, stats.TotalPending)
	assert.Equal(t, 1, stats.UnreadCount)
}

func TestCanAdvance_Lifecycle(t *testing.T) {
	assert.True(t, CanAdvance(StatusPending, StatusAccepted))
	assert.True(t, CanAdvance(StatusPending, StatusDeclined))
	assert.True(t, CanAdvance(StatusAccepted, StatusAppointmentScheduled))
	assert.True(t, CanAdvance(StatusAccepted, StatusCompleted))
	assert.True(t, CanAdvance(StatusAppointmentScheduled, StatusCompleted))

	assert.False(t, CanAdvance(StatusDeclined, StatusAccepted))
	assert.False(t, CanAdvance(StatusCompleted, StatusPending))
	assert.False(t, CanAdvance(StatusAppointmentScheduled, StatusDeclined))
}
