package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthbridge/healthbridge/internal/domain/identity"
	"github.com/healthbridge/healthbridge/internal/platform/api"
)

// Client covers order placement (doctor side) and the provider directory.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// AvailableLabs lists the labs a doctor can send an order to.
func (c *Client) AvailableLabs(ctx context.Context) ([]Provider, error) {
	out, err := api.Get[[]Provider](ctx, c.api, "/api/encounters/labs", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// AvailablePharmacies lists the pharmacies a doctor can send a
// prescription to.
func (c *Client) AvailablePharmacies(ctx context.Context) ([]Provider, error) {
	out, err := api.Get[[]Provider](ctx, c.api, "/api/encounters/pharmacies", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

type labOrderRequest struct {
	LabID        uuid.UUID `json:"lab_id"`
	Instructions string    `json:"instructions"`
}

// CreateLabOrder sends a lab order for the encounter.
func (c *Client) CreateLabOrder(ctx context.Context, encounterID, labID uuid.UUID, instructions string) (*LabOrder, error) {
	if instructions == "" {
		return nil, fmt.Errorf("instructions are required")
	}
	return api.Post[LabOrder](ctx, c.api, fmt.Sprintf("/api/encounters/%s/lab-orders", encounterID), labOrderRequest{
		LabID:        labID,
		Instructions: instructions,
	})
}

type prescriptionRequest struct {
	PharmacyID   uuid.UUID `json:"pharmacy_id"`
	Instructions string    `json:"instructions"`
}

// CreatePrescription sends a prescription for the encounter.
func (c *Client) CreatePrescription(ctx context.Context, encounterID, pharmacyID uuid.UUID, instructions string) (*Prescription, error) {
	if instructions == "" {
		return nil, fmt.Errorf("instructions are required")
	}
	return api.Post[Prescription](ctx, c.api, fmt.Sprintf("/api/encounters/%s/prescriptions", encounterID), prescriptionRequest{
		PharmacyID:   pharmacyID,
		Instructions: instructions,
	})
}

// LabPortal covers the lab-role endpoints.
type LabPortal struct {
	api *api.Client
}

func NewLabPortal(apiClient *api.Client) *LabPortal {
	return &LabPortal{api: apiClient}
}

// Orders lists the lab's incoming orders.
func (p *LabPortal) Orders(ctx context.Context) ([]LabOrder, error) {
	out, err := api.Get[[]LabOrder](ctx, p.api, "/api/lab/orders", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Order fetches one order by id.
func (p *LabPortal) Order(ctx context.Context, orderID uuid.UUID) (*LabOrder, error) {
	return api.Get[LabOrder](ctx, p.api, fmt.Sprintf("/api/lab/orders/%s", orderID), nil)
}

type statusUpdate struct {
	Status Status `json:"status"`
}

// UpdateStatus advances an order. Transitions are forward-only; the check
// here mirrors what the backend enforces so invalid moves never go out.
func (p *LabPortal) UpdateStatus(ctx context.Context, order *LabOrder, to Status) (*LabOrder, error) {
	if !CanAdvance(order.Status, to) {
		return nil, fmt.Errorf("orders: cannot move %s order to %s", order.Status, to)
	}
	return api.Patch[LabOrder](ctx, p.api, fmt.Sprintf("/api/lab/orders/%s", order.OrderID), statusUpdate{Status: to})
}

// PatientInfo fetches the demographics for an order's patient.
func (p *LabPortal) PatientInfo(ctx context.Context, orderID uuid.UUID) (*PatientInfo, error) {
	return api.Get[PatientInfo](ctx, p.api, fmt.Sprintf("/api/lab/orders/%s/patient-info", orderID), nil)
}

// Stats returns the lab's order counts by status.
func (p *LabPortal) Stats(ctx context.Context) (*Stats, error) {
	return api.Get[Stats](ctx, p.api, "/api/lab/stats", nil)
}

// Profile fetches the lab's own business profile.
func (p *LabPortal) Profile(ctx context.Context) (*identity.LabProfile, error) {
	return api.Get[identity.LabProfile](ctx, p.api, "/api/lab/profile", nil)
}

// PharmacyPortal covers the pharmacy-role endpoints.
type PharmacyPortal struct {
	api *api.Client
}

func NewPharmacyPortal(apiClient *api.Client) *PharmacyPortal {
	return &PharmacyPortal{api: apiClient}
}

// Prescriptions lists the pharmacy's incoming prescriptions.
func (p *PharmacyPortal) Prescriptions(ctx context.Context) ([]Prescription, error) {
	out, err := api.Get[[]Prescription](ctx, p.api, "/api/pharmacy/prescriptions", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Prescription fetches one prescription by id.
func (p *PharmacyPortal) Prescription(ctx context.Context, prescriptionID uuid.UUID) (*Prescription, error) {
	return api.Get[Prescription](ctx, p.api, fmt.Sprintf("/api/pharmacy/prescriptions/%s", prescriptionID), nil)
}

// UpdateStatus advances a prescription, forward-only.
func (p *PharmacyPortal) UpdateStatus(ctx context.Context, rx *Prescription, to Status) (*Prescription, error) {
	if !CanAdvance(rx.Status, to) {
		return nil, fmt.Errorf("orders: cannot move %s prescription to %s", rx.Status, to)
	}
	return api.Patch[Prescription](ctx, p.api, fmt.Sprintf("/api/pharmacy/prescriptions/%s", rx.PrescriptionID), statusUpdate{Status: to})
}

// PatientInfo fetches the demographics for a prescription's patient.
func (p *PharmacyPortal) PatientInfo(ctx context.Context, prescriptionID uuid.UUID) (*PatientInfo, error) {
	return api.Get[PatientInfo](ctx, p.api, fmt.Sprintf("/api/pharmacy/prescriptions/%s/patient-info", prescriptionID), nil)
}

// Stats returns the pharmacy's prescription counts by status.
func (p *PharmacyPortal) Stats(ctx context.Context) (*Stats, error) {
	return api.Get[Stats](ctx, p.api, "/api/pharmacy/stats", nil)
}

// Profile fetches the pharmacy's own business profile.
func (p *PharmacyPortal) Profile(ctx context.Context) (*identity.PharmacyProfile, error) {
	return api.Get[identity.PharmacyProfile](ctx, p.api, "/api/pharmacy/profile", nil)
}
