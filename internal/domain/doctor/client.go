// Package doctor covers the doctor-portal endpoints: the doctor's own
// profile, their patients, pre-joined patient timelines, and the report
// review queues.
package doctor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/healthbridge/healthbridge/internal/domain/encounter"
	"github.com/healthbridge/healthbridge/internal/domain/identity"
	"github.com/healthbridge/healthbridge/internal/domain/report"
	"github.com/healthbridge/healthbridge/internal/platform/api"
)

// Timeline is a patient's full history, joined server-side. VitalsTrend is
// a backend-computed series keyed by vital name; the client renders it
// without re-aggregating.
type Timeline struct {
	Patient     identity.PatientProfile   `json:"patient"`
	Encounters  []encounter.Comprehensive `json:"encounters"`
	VitalsTrend json.RawMessage           `json:"vitals_trend,omitempty"`
}

// Stats are the doctor's workload counters.
type Stats struct {
	TotalPatients   int `json:"total_patients"`
	Consultations   int `json:"consultations"`
	PendingReports  int `json:"pending_reports"`
	ReviewedReports int `json:"reviewed_reports"`
}

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// Profile fetches the logged-in doctor's profile.
func (c *Client) Profile(ctx context.Context) (*identity.DoctorProfile, error) {
	return api.Get[identity.DoctorProfile](ctx, c.api, "/api/doctor/profile/", nil)
}

// MyPatients lists patients this doctor has an established relationship
// with.
func (c *Client) MyPatients(ctx context.Context) ([]identity.PatientProfile, error) {
	out, err := api.Get[[]identity.PatientProfile](ctx, c.api, "/api/doctor/patients/my-patients", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// SearchPatients looks up patients by name or phone.
func (c *Client) SearchPatients(ctx context.Context, query string) ([]identity.PatientProfile, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	q := url.Values{}
	q.Set("q", query)
	out, err := api.Get[[]identity.PatientProfile](ctx, c.api, "/api/doctor/patients/search", q)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Patient fetches one patient's profile.
func (c *Client) Patient(ctx context.Context, patientID uuid.UUID) (*identity.PatientProfile, error) {
	return api.Get[identity.PatientProfile](ctx, c.api, fmt.Sprintf("/api/doctor/patients/%s", patientID), nil)
}

// PatientTimeline fetches a patient's full pre-joined history.
func (c *Client) PatientTimeline(ctx context.Context, patientID uuid.UUID) (*Timeline, error) {
	return api.Get[Timeline](ctx, c.api, fmt.Sprintf("/api/doctor/patients/%s/timeline", patientID), nil)
}

// PatientDocuments lists a patient's uploaded documents across encounters,
// joined server-side.
func (c *Client) PatientDocuments(ctx context.Context, patientID uuid.UUID) ([]encounter.MediaFile, error) {
	out, err := api.Get[[]encounter.MediaFile](ctx, c.api, fmt.Sprintf("/api/doctor/patients/%s/documents", patientID), nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// PendingReports lists reports waiting for this doctor's review.
func (c *Client) PendingReports(ctx context.Context) ([]report.Report, error) {
	out, err := api.Get[[]report.Report](ctx, c.api, "/api/doctor/reports/pending", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// ReviewedReports lists reports this doctor has already reviewed.
func (c *Client) ReviewedReports(ctx context.Context) ([]report.Report, error) {
	out, err := api.Get[[]report.Report](ctx, c.api, "/api/doctor/reports/my-reviewed", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Stats fetches the doctor's workload counters.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	return api.Get[Stats](ctx, c.api, "/api/doctor/stats", nil)
}
