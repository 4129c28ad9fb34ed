package encounter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthbridge/healthbridge/internal/domain/identity"
	"github.com/healthbridge/healthbridge/internal/platform/api"
)

// Client covers the encounter resource group: the aggregate itself plus its
// vitals, lab results, media, and the voice passthroughs. One network call
// per method; callers sequence and refetch.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// Create opens a new encounter.
func (c *Client) Create(ctx context.Context, in CreateInput) (*Encounter, error) {
	if in.Type == "" {
		return nil, fmt.Errorf("encounter type is required")
	}
	return api.Post[Encounter](ctx, c.api, "/api/encounters/", in)
}

// List returns the caller's encounters.
func (c *Client) List(ctx context.Context) ([]Encounter, error) {
	out, err := api.Get[[]Encounter](ctx, c.api, "/api/encounters/", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Get fetches the server-joined view of one encounter.
func (c *Client) Get(ctx context.Context, id uuid.UUID) (*Comprehensive, error) {
	return api.Get[Comprehensive](ctx, c.api, fmt.Sprintf("/api/encounters/%s", id), nil)
}

// AvailableDoctors lists doctors an encounter can be assigned to.
func (c *Client) AvailableDoctors(ctx context.Context) ([]identity.DoctorProfile, error) {
	out, err := api.Get[[]identity.DoctorProfile](ctx, c.api, "/api/encounters/available-doctors", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

type assignDoctorRequest struct {
	DoctorID uuid.UUID `json:"doctor_id"`
}

// AssignDoctor attaches a doctor to the encounter.
func (c *Client) AssignDoctor(ctx context.Context, encounterID, doctorID uuid.UUID) (*Encounter, error) {
	return api.Patch[Encounter](ctx, c.api, fmt.Sprintf("/api/encounters/%s/assign-doctor", encounterID), assignDoctorRequest{DoctorID: doctorID})
}

// AddVitals appends one vitals log entry to the encounter.
func (c *Client) AddVitals(ctx context.Context, encounterID uuid.UUID, in VitalsInput) (*Vitals, error) {
	return api.Post[Vitals](ctx, c.api, fmt.Sprintf("/api/encounters/%s/vitals", encounterID), in)
}

// ListVitals returns the encounter's vitals log, oldest first.
func (c *Client) ListVitals(ctx context.Context, encounterID uuid.UUID) ([]Vitals, error) {
	out, err := api.Get[[]Vitals](ctx, c.api, fmt.Sprintf("/api/encounters/%s/vitals", encounterID), nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

type labResultsRequest struct {
	Metrics Metrics `json:"metrics"`
}

// AddLabResults records structured lab metrics against the encounter.
func (c *Client) AddLabResults(ctx context.Context, encounterID uuid.UUID, metrics Metrics) (*LabResults, error) {
	if len(metrics) == 0 {
		return nil, fmt.Errorf("at least one metric is required")
	}
	return api.Post[LabResults](ctx, c.api, fmt.Sprintf("/api/encounters/%s/lab-results", encounterID), labResultsRequest{Metrics: metrics})
}

// ListLabResults returns the encounter's lab result entries.
func (c *Client) ListLabResults(ctx context.Context, encounterID uuid.UUID) ([]LabResults, error) {
	out, err := api.Get[[]LabResults](ctx, c.api, fmt.Sprintf("/api/encounters/%s/lab-results", encounterID), nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// UploadMedia attaches files to the encounter in one multipart request.
func (c *Client) UploadMedia(ctx context.Context, encounterID uuid.UUID, files []api.File) ([]MediaFile, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}
	out, err := api.Upload[[]MediaFile](ctx, c.api, fmt.Sprintf("/api/encounters/%s/media", encounterID), files)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// ListMedia returns the encounter's attachments.
func (c *Client) ListMedia(ctx context.Context, encounterID uuid.UUID) ([]MediaFile, error) {
	out, err := api.Get[[]MediaFile](ctx, c.api, fmt.Sprintf("/api/encounters/%s/media", encounterID), nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// FetchMedia downloads one attachment's bytes and content type.
func (c *Client) FetchMedia(ctx context.Context, encounterID, fileID uuid.UUID) ([]byte, string, error) {
	return c.api.GetRaw(ctx, fmt.Sprintf("/api/encounters/%s/media/%s", encounterID, fileID))
}

type transcribeRequest struct {
	EncounterID *uuid.UUID `json:"encounter_id,omitempty"`
	AudioBase64 string     `json:"audio_base64"`
}

// Transcribe sends recorded audio for backend speech-to-text.
func (c *Client) Transcribe(ctx context.Context, encounterID *uuid.UUID, audio []byte) (*Transcription, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("no audio to transcribe")
	}
	return api.Post[Transcription](ctx, c.api, "/api/encounters/voice/transcribe", transcribeRequest{
		EncounterID: encounterID,
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
	})
}

// GenerateSummary asks the backend to produce the encounter's AI summary
// report. The report itself comes back through the report client.
func (c *Client) GenerateSummary(ctx context.Context, encounterID uuid.UUID) (json.RawMessage, error) {
	out, err := api.Post[json.RawMessage](ctx, c.api, fmt.Sprintf("/api/encounters/%s/generate-summary", encounterID), nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// ProcessVoice runs the backend's voice-to-summary pipeline on the
// encounter's recording.
func (c *Client) ProcessVoice(ctx context.Context, encounterID uuid.UUID, audio []byte) (json.RawMessage, error) {
	out, err := api.Post[json.RawMessage](ctx, c.api, fmt.Sprintf("/api/encounters/%s/process-voice", encounterID), transcribeRequest{
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
	})
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// VitalsAnalysis returns the backend's AI reading of the encounter's
// vitals, opaquely.
func (c *Client) VitalsAnalysis(ctx context.Context, encounterID uuid.UUID) (json.RawMessage, error) {
	out, err := api.Get[json.RawMessage](ctx, c.api, fmt.Sprintf("/api/encounters/%s/vitals-analysis", encounterID), nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// ExtractReportFields pulls structured report fields out of a voice
// transcript, opaquely.
func (c *Client) ExtractReportFields(ctx context.Context, encounterID uuid.UUID, transcript string) (json.RawMessage, error) {
	out, err := api.Post[json.RawMessage](ctx, c.api, fmt.Sprintf("/api/encounters/%s/extract-report-fields", encounterID), map[string]string{
		"transcript": transcript,
	})
	if err != nil {
		return nil, err
	}
	return *out, nil
}
