// Package referral covers doctor-to-doctor patient referrals: one doctor
// hands a patient to a colleague, who accepts or declines, books the
// follow-up appointment, and closes the loop.
package referral

import (
	"time"

	"github.com/google/uuid"
)

// Status is the referral lifecycle. PENDING forks into ACCEPTED or
// DECLINED; an accepted referral moves through APPOINTMENT_SCHEDULED to
// COMPLETED. DECLINED and COMPLETED are terminal.
type Status string

const (
	StatusPending              Status = "PENDING"
	StatusAccepted             Status = "ACCEPTED"
	StatusDeclined             Status = "DECLINED"
	StatusAppointmentScheduled Status = "APPOINTMENT_SCHEDULED"
	StatusCompleted            Status = "COMPLETED"
)

// CanAdvance reports whether a referral may move from one status to
// another. These are the only transitions the portal offers.
func CanAdvance(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusAccepted || to == StatusDeclined
	case StatusAccepted:
		return to == StatusAppointmentScheduled || to == StatusCompleted
	case StatusAppointmentScheduled:
		return to == StatusCompleted
	default:
		return false
	}
}

// Priority orders a colleague's inbox. Free-form on the wire but the
// portal only ever sends these three.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Referral is the server-joined view of one referral, with the names of
// all three parties already resolved.
type Referral struct {
	ReferralID               uuid.UUID  `json:"referral_id"`
	PatientID                uuid.UUID  `json:"patient_id"`
	PatientName              string     `json:"patient_name"`
	PatientPhone             string     `json:"patient_phone,omitempty"`
	ReferringDoctorID        uuid.UUID  `json:"referring_doctor_id"`
	ReferringDoctorName      string     `json:"referring_doctor_name"`
	ReferringDoctorSpecialty string     `json:"referring_doctor_specialty,omitempty"`
	ReferredToDoctorID       uuid.UUID  `json:"referred_to_doctor_id"`
	ReferredToDoctorName     string     `json:"referred_to_doctor_name"`
	Reason                   string     `json:"reason"`
	ClinicalNotes            string     `json:"clinical_notes,omitempty"`
	Priority                 Priority   `json:"priority"`
	SpecialtyNeeded          string     `json:"specialty_needed,omitempty"`
	Status                   Status     `json:"status"`
	AppointmentScheduledTime *time.Time `json:"appointment_scheduled_time,omitempty"`
	AppointmentCompletedTime *time.Time `json:"appointment_completed_time,omitempty"`
	ReferredDoctorNotes      string     `json:"referred_doctor_notes,omitempty"`
	DeclinedReason           string     `json:"declined_reason,omitempty"`
	PatientViewed            bool       `json:"patient_viewed"`
	ReferredDoctorViewed     bool       `json:"referred_doctor_viewed"`
	HasAppointment           bool       `json:"has_appointment"`
	AppointmentEncounterID   *uuid.UUID `json:"appointment_encounter_id,omitempty"`
	SourceEncounterID        *uuid.UUID `json:"source_encounter_id,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                *time.Time `json:"updated_at,omitempty"`
}

// Stats feeds the referral notification badge.
type Stats struct {
	TotalPending   int `json:"total_pending"`
	TotalAccepted  int `json:"total_accepted"`
	TotalCompleted int `json:"total_completed"`
	UnreadCount    int `json:"unread_count"`
}

// CreateInput is the payload a referring doctor sends.
type CreateInput struct {
	PatientID          uuid.UUID  `json:"patient_id"`
	ReferredToDoctorID uuid.UUID  `json:"referred_to_doctor_id"`
	Reason             string     `json:"reason"`
	ClinicalNotes      string     `json:"clinical_notes,omitempty"`
	Priority           Priority   `json:"priority,omitempty"`
	SpecialtyNeeded    string     `json:"specialty_needed,omitempty"`
	SourceEncounterID  *uuid.UUID `json:"source_encounter_id,omitempty"`
}
