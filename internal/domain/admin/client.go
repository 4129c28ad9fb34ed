// Package admin covers the admin-portal endpoints: professional onboarding,
// user lifecycle, and system statistics.
package admin

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/healthbridge/healthbridge/internal/domain/identity"
	"github.com/healthbridge/healthbridge/internal/platform/api"
)

// SystemStats is the platform-wide dashboard payload.
type SystemStats struct {
	TotalPatients   int `json:"total_patients"`
	TotalDoctors    int `json:"total_doctors"`
	TotalLabs       int `json:"total_labs"`
	TotalPharmacies int `json:"total_pharmacies"`
	TotalEncounters int `json:"total_encounters"`
	PendingReports  int `json:"pending_reports"`
	ReviewedReports int `json:"reviewed_reports"`
}

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// DoctorInput is the admin payload for onboarding a doctor.
type DoctorInput struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	HospitalName   string `json:"hospital_name,omitempty"`
	Specialty      string `json:"specialty,omitempty"`
	Degree         string `json:"degree,omitempty"`
	LastDegreeYear *int   `json:"last_degree_year,omitempty"`
}

// BusinessInput is the admin payload for onboarding a lab or pharmacy.
type BusinessInput struct {
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	LicenseYear  *int   `json:"license_year,omitempty"`
}

// CreateDoctor onboards a doctor account with its profile.
func (c *Client) CreateDoctor(ctx context.Context, in DoctorInput) (*identity.DoctorProfile, error) {
	if in.Email == "" || in.Phone == "" {
		return nil, fmt.Errorf("email and phone are required")
	}
	return api.Post[identity.DoctorProfile](ctx, c.api, "/api/admin/professionals/doctors", in)
}

// CreateLab onboards a lab account with its profile.
func (c *Client) CreateLab(ctx context.Context, in BusinessInput) (*identity.LabProfile, error) {
	if in.BusinessName == "" {
		return nil, fmt.Errorf("business name is required")
	}
	return api.Post[identity.LabProfile](ctx, c.api, "/api/admin/professionals/labs", in)
}

// CreatePharmacy onboards a pharmacy account with its profile.
func (c *Client) CreatePharmacy(ctx context.Context, in BusinessInput) (*identity.PharmacyProfile, error) {
	if in.BusinessName == "" {
		return nil, fmt.Errorf("business name is required")
	}
	return api.Post[identity.PharmacyProfile](ctx, c.api, "/api/admin/professionals/pharmacies", in)
}

// Users lists all users, optionally filtered by role.
func (c *Client) Users(ctx context.Context, role identity.Role) ([]identity.User, error) {
	var q url.Values
	if role != "" {
		if !role.Valid() {
			return nil, fmt.Errorf("unknown role %q", role)
		}
		q = url.Values{}
		q.Set("role", string(role))
	}
	out, err := api.Get[[]identity.User](ctx, c.api, "/api/admin/users", q)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Activate re-enables a user account.
func (c *Client) Activate(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
	return api.Patch[identity.User](ctx, c.api, fmt.Sprintf("/api/admin/users/%s/activate", userID), nil)
}

// Deactivate disables a user account without deleting its data.
func (c *Client) Deactivate(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
	return api.Patch[identity.User](ctx, c.api, fmt.Sprintf("/api/admin/users/%s/deactivate", userID), nil)
}

// Delete permanently removes a user account.
func (c *Client) Delete(ctx context.Context, userID uuid.UUID) error {
	return api.Delete(ctx, c.api, fmt.Sprintf("/api/admin/users/%s", userID))
}

// Stats fetches the system-wide counters.
func (c *Client) Stats(ctx context.Context) (*SystemStats, error) {
	return api.Get[SystemStats](ctx, c.api, "/api/admin/stats", nil)
}

// Doctors lists all onboarded doctors.
func (c *Client) Doctors(ctx context.Context) ([]identity.DoctorProfile, error) {
	out, err := api.Get[[]identity.DoctorProfile](ctx, c.api, "/api/admin/doctors", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Labs lists all onboarded labs.
func (c *Client) Labs(ctx context.Context) ([]identity.LabProfile, error) {
	out, err := api.Get[[]identity.LabProfile](ctx, c.api, "/api/admin/labs", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Pharmacies lists all onboarded pharmacies.
func (c *Client) Pharmacies(ctx context.Context) ([]identity.PharmacyProfile, error) {
	out, err := api.Get[[]identity.PharmacyProfile](ctx, c.api, "/api/admin/pharmacies", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}
