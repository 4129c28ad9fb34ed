package orders

import (
	"time"

	"github.com/google/uuid"
)

// Status is the shared lifecycle of lab orders and prescriptions. It moves
// forward only: SENT -> RECEIVED -> COMPLETED.
type Status string

const (
	StatusSent      Status = "SENT"
	StatusReceived  Status = "RECEIVED"
	StatusCompleted Status = "COMPLETED"
)

// CanAdvance reports whether an order may move from one status to another.
// These are the only transitions the portals offer.
func CanAdvance(from, to Status) bool {
	switch from {
	case StatusSent:
		return to == StatusReceived || to == StatusCompleted
	case StatusReceived:
		return to == StatusCompleted
	default:
		return false
	}
}

// LabOrder links one encounter to one lab for test fulfillment.
type LabOrder struct {
	OrderID      uuid.UUID  `json:"order_id"`
	EncounterID  uuid.UUID  `json:"encounter_id"`
	LabID        uuid.UUID  `json:"lab_id"`
	Instructions string     `json:"instructions"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Prescription links one encounter to one pharmacy for medication
// fulfillment.
type Prescription struct {
	PrescriptionID uuid.UUID  `json:"prescription_id"`
	EncounterID    uuid.UUID  `json:"encounter_id"`
	PharmacyID     uuid.UUID  `json:"pharmacy_id"`
	Instructions   string     `json:"instructions"`
	Status         Status     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// Provider is one entry in the lab/pharmacy directory a doctor picks from.
type Provider struct {
	UserID       uuid.UUID `json:"user_id"`
	BusinessName string    `json:"business_name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
}

// PatientInfo is the demographics view a lab or pharmacy fetches to process
// an order.
type PatientInfo struct {
	PatientID         uuid.UUID `json:"patient_id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	DateOfBirth       string    `json:"date_of_birth"`
	Gender            string    `json:"gender"`
	OrderInstructions string    `json:"order_instructions"`
}

// Stats are the per-portal order counts by status.
type Stats struct {
	TotalOrders int `json:"total_orders"`
	Sent        int `json:"sent"`
	Received    int `json:"received"`
	Completed   int `json:"completed"`
	Pending     int `json:"pending"`
}
