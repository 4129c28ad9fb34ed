package encounter

import (
	"context"
	"encoding/json"
	"io"
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

type capture struct {
	method string
	path   string
	body   []byte
}

func captureServer(t *testing.T, respond any) (*Client, *capture) {
	t.Helper()
	rec := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.body, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(respond)
	}))
	t.Cleanup(srv.Close)
	return NewClient(api.New(srv.URL, 5*time.Second, nil, zerolog.Nop())), rec
}

func TestCreate_PostsToCollection(t *testing.T) {
	client, rec := captureServer(t, Encounter{EncounterID: uuid.New(), Type: TypeRemoteConsult})
	patientID := uuid.New()

	enc, err := client.Create(context.Background(), CreateInput{
		PatientID:   patientID,
		Type:        TypeRemoteConsult,
		InputMethod: InputVoice,
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/encounters/", rec.path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &body))
	assert.Equal(t, patientID.String(), body["patient_id"])
	assert.Equal(t, "REMOTE_CONSULT", body["encounter_type"])
	assert.Equal(t, "VOICE", body["input_method"])
	assert.Equal(t, TypeRemoteConsult, enc.Type)
}

func TestCreate_RequiresType(t *testing.T) {
	client, rec := captureServer(t, Encounter{})

	_, err := client.Create(context.Background(), CreateInput{PatientID: uuid.New()})
	require.Error(t, err)
	assert.Empty(t, rec.method, "validation failure must not reach the backend")
}

func TestAssignDoctor_PatchMapping(t *testing.T) {
	client, rec := captureServer(t, Encounter{})
	encID, docID := uuid.New(), uuid.New()

	_, err := client.AssignDoctor(context.Background(), encID, docID)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/api/encounters/"+encID.String()+"/assign-doctor", rec.path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &body))
	assert.Equal(t, docID.String(), body["doctor_id"])
}

func TestAddVitals_PostMapping(t *testing.T) {
	client, rec := captureServer(t, Vitals{VitalID: uuid.New()})
	encID := uuid.New()
	sys, dia := 120, 80

	_, err := client.AddVitals(context.Background(), encID, VitalsInput{
		BloodPressureSys: &sys,
		BloodPressureDia: &dia,
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/encounters/"+encID.String()+"/vitals", rec.path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &body))
	assert.EqualValues(t, 120, body["blood_pressure_sys"])
	_, hasHR := body["heart_rate"]
	assert.False(t, hasHR, "unset vitals must be omitted")
}

func TestAddLabResults_RequiresMetrics(t *testing.T) {
	client, rec := captureServer(t, LabResults{})

	_, err := client.AddLabResults(context.Background(), uuid.New(), Metrics{})
	require.Error(t, err)
	assert.Empty(t, rec.method)
}

func TestGet_ComprehensiveDecoding(t *testing.T) {
	encID := uuid.New()
	client, rec := captureServer(t, map[string]any{
		"encounter": map[string]any{
			"encounter_id":   encID.String(),
			"patient_id":     uuid.New().String(),
			"encounter_type": "LIVE_VISIT",
			"created_at":     "2024-06-15T10:00:00Z",
		},
		"vitals": []map[string]any{
			{"vital_id": uuid.New().String(), "encounter_id": encID.String(), "heart_rate": 72, "recorded_at": "2024-06-15T10:05:00Z"},
		},
		"summary_report": map[string]any{
			"report_id":    uuid.New().String(),
			"encounter_id": encID.String(),
			"status":       "PENDING_REVIEW",
			"content":      map[string]any{"symptoms": "cough", "diagnosis": "", "treatment": "", "next_steps": ""},
			"created_at":   "2024-06-15T10:10:00Z",
		},
	})

	comp, err := client.Get(context.Background(), encID)
	require.NoError(t, err)
	assert.Equal(t, "/api/encounters/"+encID.String(), rec.path)
	assert.Equal(t, TypeLiveVisit, comp.Encounter.Type)
	require.Len(t, comp.Vitals, 1)
	require.NotNil(t, comp.Vitals[0].HeartRate)
	assert.Equal(t, 72, *comp.Vitals[0].HeartRate)
	require.NotNil(t, comp.SummaryReport)
	assert.Equal(t, "cough", comp.SummaryReport.Content.Symptoms)
}

func TestTranscribe_EncodesAudio(t *testing.T) {
	client, rec := captureServer(t, Transcription{TranscribedText: "I have a headache"})

	out, err := client.Transcribe(context.Background(), nil, []byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, "/api/encounters/voice/transcribe", rec.path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &body))
	assert.Equal(t, "AQI=", body["audio_base64"])
	assert.Equal(t, "I have a headache", out.TranscribedText)
}
