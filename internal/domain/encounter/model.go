package encounter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/healthbridge/healthbridge/internal/domain/identity"
	"github.com/healthbridge/healthbridge/internal/domain/orders"
	"github.com/healthbridge/healthbridge/internal/domain/report"
)

// Type classifies how the encounter happened.
type Type string

const (
	TypeRemoteConsult Type = "REMOTE_CONSULT"
	TypeLiveVisit     Type = "LIVE_VISIT"
	TypeInitialLog    Type = "INITIAL_LOG"
)

// InputMethod records how the encounter data was captured.
type InputMethod string

const (
	InputVoice  InputMethod = "VOICE"
	InputManual InputMethod = "MANUAL"
)

// Encounter is one clinical interaction episode. It is the root every
// clinical artifact (vitals, results, reports, orders, media) hangs off.
type Encounter struct {
	EncounterID uuid.UUID   `json:"encounter_id"`
	PatientID   uuid.UUID   `json:"patient_id"`
	DoctorID    *uuid.UUID  `json:"doctor_id,omitempty"`
	Type        Type        `json:"encounter_type"`
	InputMethod InputMethod `json:"input_method,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// CreateInput is the payload for opening a new encounter.
type CreateInput struct {
	PatientID   uuid.UUID   `json:"patient_id"`
	DoctorID    *uuid.UUID  `json:"doctor_id,omitempty"`
	Type        Type        `json:"encounter_type"`
	InputMethod InputMethod `json:"input_method,omitempty"`
}

// Vitals is one timestamped set of physiological readings. All fields are
// optional; a log entry carries whatever was measured.
type Vitals struct {
	VitalID          uuid.UUID `json:"vital_id"`
	EncounterID      uuid.UUID `json:"encounter_id"`
	BloodPressureSys *int      `json:"blood_pressure_sys,omitempty"`
	BloodPressureDia *int      `json:"blood_pressure_dia,omitempty"`
	HeartRate        *int      `json:"heart_rate,omitempty"`
	OxygenLevel      *int      `json:"oxygen_level,omitempty"`
	Weight           *float64  `json:"weight,omitempty"`
	Temperature      *float64  `json:"temperature,omitempty"`
	RecordedAt       time.Time `json:"recorded_at"`
}

// VitalsInput is the append payload for a vitals log entry.
type VitalsInput struct {
	BloodPressureSys *int     `json:"blood_pressure_sys,omitempty"`
	BloodPressureDia *int     `json:"blood_pressure_dia,omitempty"`
	HeartRate        *int     `json:"heart_rate,omitempty"`
	OxygenLevel      *int     `json:"oxygen_level,omitempty"`
	Weight           *float64 `json:"weight,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
}

// MetricValue is one lab metric reading. The backend stores metrics as
// free-form JSON; on this side each value is pinned to either a number or a
// string at decode time, and anything else is rejected.
type MetricValue struct {
	Number *float64
	Text   *string
}

func NumberMetric(v float64) MetricValue { return MetricValue{Number: &v} }
func TextMetric(v string) MetricValue    { return MetricValue{Text: &v} }

func (m MetricValue) String() string {
	switch {
	case m.Number != nil:
		return fmt.Sprintf("%g", *m.Number)
	case m.Text != nil:
		return *m.Text
	}
	return ""
}

func (m MetricValue) MarshalJSON() ([]byte, error) {
	switch {
	case m.Number != nil:
		return json.Marshal(*m.Number)
	case m.Text != nil:
		return json.Marshal(*m.Text)
	}
	return []byte("null"), nil
}

func (m *MetricValue) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		m.Number = &num
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Text = &s
		return nil
	}
	return fmt.Errorf("encounter: metric value must be a number or string, got %s", data)
}

// Metrics is a named set of lab readings, e.g. {"LDL": 100, "HDL": 50}.
type Metrics map[string]MetricValue

// LabResults is one structured extraction from a lab report.
type LabResults struct {
	LogID       uuid.UUID `json:"log_id"`
	EncounterID uuid.UUID `json:"encounter_id"`
	Metrics     Metrics   `json:"metrics"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// MediaFile is one uploaded attachment. Immutable once uploaded.
type MediaFile struct {
	FileID      uuid.UUID `json:"file_id"`
	EncounterID uuid.UUID `json:"encounter_id"`
	FileType    string    `json:"file_type"`
	Filename    string    `json:"filename"`
	FilePath    string    `json:"file_path"`
	FileSize    int64     `json:"file_size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Comprehensive is the server-joined view of one encounter with everything
// attached. The client never assembles this itself.
type Comprehensive struct {
	Encounter     Encounter                 `json:"encounter"`
	Vitals        []Vitals                  `json:"vitals,omitempty"`
	LabResults    []LabResults              `json:"lab_results,omitempty"`
	SummaryReport *report.Report            `json:"summary_report,omitempty"`
	LabOrders     []orders.LabOrder         `json:"lab_orders,omitempty"`
	Prescriptions []orders.Prescription     `json:"prescriptions,omitempty"`
	MediaFiles    []MediaFile               `json:"media_files,omitempty"`
	PatientInfo   *identity.PatientProfile  `json:"patient_info,omitempty"`
	DoctorInfo    *identity.DoctorProfile   `json:"doctor_info,omitempty"`
}

// Transcription is the result of backend speech-to-text.
type Transcription struct {
	TranscribedText string   `json:"transcribed_text"`
	Confidence      *float64 `json:"confidence,omitempty"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
}
