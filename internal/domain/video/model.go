package video

import (
	"time"

	"github.com/google/uuid"
)

// Status is the consultation lifecycle.
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusWaiting    Status = "WAITING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

const (
	MinDurationMinutes     = 15
	MaxDurationMinutes     = 120
	DefaultDurationMinutes = 30
)

// Consultation is one scheduled video/voice session, linkable to an
// encounter.
type Consultation struct {
	ConsultationID     uuid.UUID  `json:"consultation_id"`
	EncounterID        uuid.UUID  `json:"encounter_id"`
	PatientID          uuid.UUID  `json:"patient_id"`
	DoctorID           *uuid.UUID `json:"doctor_id,omitempty"`
	ScheduledStartTime time.Time  `json:"scheduled_start_time"`
	ScheduledEndTime   *time.Time `json:"scheduled_end_time,omitempty"`
	DurationMinutes    int        `json:"duration_minutes"`
	Status             Status     `json:"status"`
	ChannelName        string     `json:"channel_name"`
	ActualStartTime    *time.Time `json:"actual_start_time,omitempty"`
	ActualEndTime      *time.Time `json:"actual_end_time,omitempty"`
	PatientJoinedAt    *time.Time `json:"patient_joined_at,omitempty"`
	DoctorJoinedAt     *time.Time `json:"doctor_joined_at,omitempty"`
	PatientNotes       string     `json:"patient_notes,omitempty"`
	DoctorNotes        string     `json:"doctor_notes,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// ListItem is the brief list rendering of a consultation.
type ListItem struct {
	ConsultationID     uuid.UUID  `json:"consultation_id"`
	EncounterID        uuid.UUID  `json:"encounter_id"`
	ScheduledStartTime time.Time  `json:"scheduled_start_time"`
	DurationMinutes    int        `json:"duration_minutes"`
	Status             Status     `json:"status"`
	DoctorID           *uuid.UUID `json:"doctor_id,omitempty"`
	DoctorName         string     `json:"doctor_name,omitempty"`
	PatientNotes       string     `json:"patient_notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// CallCredentials are the opaque join credentials handed to the RTC layer.
// The client never interprets them.
type CallCredentials struct {
	AppID          string    `json:"app_id"`
	ChannelName    string    `json:"channel_name"`
	Token          string    `json:"token"`
	UID            int       `json:"uid"`
	ConsultationID uuid.UUID `json:"consultation_id"`
	CallURL        string    `json:"call_url,omitempty"`
}

// Stats are the caller's consultation counters.
type Stats struct {
	TotalScheduled         int      `json:"total_scheduled"`
	TotalCompleted         int      `json:"total_completed"`
	TotalCancelled         int      `json:"total_cancelled"`
	TotalNoShow            int      `json:"total_no_show"`
	UpcomingCount          int      `json:"upcoming_count"`
	AverageDurationMinutes *float64 `json:"average_duration_minutes,omitempty"`
}

// ScheduleInput is the booking payload.
type ScheduleInput struct {
	DoctorID           uuid.UUID `json:"doctor_id"`
	ScheduledStartTime time.Time `json:"scheduled_start_time"`
	DurationMinutes    int       `json:"duration_minutes"`
	PatientNotes       string    `json:"patient_notes,omitempty"`
}
