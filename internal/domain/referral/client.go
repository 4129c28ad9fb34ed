package referral

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/healthbridge/healthbridge/internal/platform/api"
)

// Client talks to the referral endpoints. The backend answers status
// changes with a bare acknowledgement, so every mutation here refetches
// the referral before returning it.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

type ack struct {
	Message    string    `json:"message"`
	ReferralID uuid.UUID `json:"referral_id"`
}

// Create refers a patient to a colleague. Priority defaults to MEDIUM.
func (c *Client) Create(ctx context.Context, in CreateInput) (*Referral, error) {
	if in.PatientID == uuid.Nil || in.ReferredToDoctorID == uuid.Nil {
		return nil, fmt.Errorf("patient and referred-to doctor are required")
	}
	if in.Reason == "" {
		return nil, fmt.Errorf("referral reason is required")
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	return api.Post[Referral](ctx, c.api, "/api/referrals/", in)
}

// Made lists the referrals the logged-in doctor has sent, newest first.
func (c *Client) Made(ctx context.Context) ([]Referral, error) {
	out, err := api.Get[[]Referral](ctx, c.api, "/api/referrals/my-referrals-made", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Received lists the referrals sent to the logged-in doctor, newest first.
// Fetching the list marks it viewed on the server.
func (c *Client) Received(ctx context.Context) ([]Referral, error) {
	out, err := api.Get[[]Referral](ctx, c.api, "/api/referrals/my-referrals-received", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Mine lists the logged-in patient's own referrals, newest first. Fetching
// the list marks it viewed on the server.
func (c *Client) Mine(ctx context.Context) ([]Referral, error) {
	out, err := api.Get[[]Referral](ctx, c.api, "/api/referrals/my-referrals", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// ForPatient lists a patient's referrals visible to the logged-in doctor.
func (c *Client) ForPatient(ctx context.Context, patientID uuid.UUID) ([]Referral, error) {
	out, err := api.Get[[]Referral](ctx, c.api, fmt.Sprintf("/api/referrals/patient/%s", patientID), nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Get fetches one referral.
func (c *Client) Get(ctx context.Context, id uuid.UUID) (*Referral, error) {
	return api.Get[Referral](ctx, c.api, fmt.Sprintf("/api/referrals/%s", id), nil)
}

// Accept takes the referral as the referred-to doctor. Notes are optional.
// The backend takes the fields as query parameters.
func (c *Client) Accept(ctx context.Context, id uuid.UUID, notes string) (*Referral, error) {
	path := fmt.Sprintf("/api/referrals/%s/accept", id)
	if notes != "" {
		q := url.Values{}
		q.Set("notes", notes)
		path += "?" + q.Encode()
	}
	if _, err := api.Patch[ack](ctx, c.api, path, nil); err != nil {
		return nil, err
	}
	return c.Get(ctx, id)
}

// Decline turns the referral down with a reason.
func (c *Client) Decline(ctx context.Context, id uuid.UUID, reason string) (*Referral, error) {
	if reason == "" {
		return nil, fmt.Errorf("a decline reason is required")
	}
	q := url.Values{}
	q.Set("reason", reason)
	path := fmt.Sprintf("/api/referrals/%s/decline?%s", id, q.Encode())
	if _, err := api.Patch[ack](ctx, c.api, path, nil); err != nil {
		return nil, err
	}
	return c.Get(ctx, id)
}

// LinkAppointment attaches a booked encounter to an accepted referral.
func (c *Client) LinkAppointment(ctx context.Context, id, encounterID uuid.UUID, scheduled time.Time) (*Referral, error) {
	if scheduled.IsZero() {
		return nil, fmt.Errorf("a scheduled time is required")
	}
	q := url.Values{}
	q.Set("encounter_id", encounterID.String())
	q.Set("scheduled_time", scheduled.UTC().Format(time.RFC3339))
	path := fmt.Sprintf("/api/referrals/%s/link-appointment?%s", id, q.Encode())
	if _, err := api.Patch[ack](ctx, c.api, path, nil); err != nil {
		return nil, err
	}
	return c.Get(ctx, id)
}

// Complete closes the referral after the appointment happened.
func (c *Client) Complete(ctx context.Context, id uuid.UUID) (*Referral, error) {
	if _, err := api.Patch[ack](ctx, c.api, fmt.Sprintf("/api/referrals/%s/complete", id), nil); err != nil {
		return nil, err
	}
	return c.Get(ctx, id)
}

// Stats fetches the badge counters for the logged-in user.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	return api.Get[Stats](ctx, c.api, "/api/referrals/stats/summary", nil)
}
