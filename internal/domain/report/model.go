package report

import (
	"time"

	"github.com/google/uuid"
)

// Status is the summary report lifecycle. It only moves forward:
// GENERATED -> PENDING_REVIEW -> REVIEWED.
type Status string

const (
	StatusGenerated     Status = "GENERATED"
	StatusPendingReview Status = "PENDING_REVIEW"
	StatusReviewed      Status = "REVIEWED"
)

// CanAdvance reports whether a report may move from one status to another.
func CanAdvance(from, to Status) bool {
	switch from {
	case StatusGenerated:
		return to == StatusPendingReview || to == StatusReviewed
	case StatusPendingReview:
		return to == StatusReviewed
	default:
		return false
	}
}

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Content is the structured clinical text bundle of a summary report.
type Content struct {
	Symptoms     string `json:"symptoms"`
	Diagnosis    string `json:"diagnosis"`
	Treatment    string `json:"treatment"`
	Tests        string `json:"tests,omitempty"`
	Prescription string `json:"prescription,omitempty"`
	NextSteps    string `json:"next_steps"`
}

// Report is one summary report, one-to-one with an encounter.
type Report struct {
	ReportID    uuid.UUID  `json:"report_id"`
	EncounterID uuid.UUID  `json:"encounter_id"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority,omitempty"`
	Content     Content    `json:"content"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Translation pairs a translated rendering with the canonical content. The
// translated copy lives only in memory; it is never written back.
type Translation struct {
	TranslatedContent Content `json:"translated_content"`
	OriginalContent   Content `json:"original_content"`
}

// CreateInput is the payload for creating a report against an encounter.
type CreateInput struct {
	Status   Status   `json:"status"`
	Priority Priority `json:"priority,omitempty"`
	Content  Content  `json:"content"`
}

// UpdateInput is the doctor-edit payload. Zero fields are omitted so the
// backend patches only what changed.
type UpdateInput struct {
	Status   Status   `json:"status,omitempty"`
	Priority Priority `json:"priority,omitempty"`
	Content  *Content `json:"content,omitempty"`
}
