package video

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/healthbridge/healthbridge/internal/platform/api"
)

// Client covers the video-consultation scheduling endpoints.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// Schedule books a consultation. Duration defaults to 30 minutes and is
// clamped to the backend's accepted range before the request goes out.
func (c *Client) Schedule(ctx context.Context, in ScheduleInput) (*Consultation, error) {
	if in.DoctorID == uuid.Nil {
		return nil, fmt.Errorf("doctor_id is required")
	}
	if in.ScheduledStartTime.IsZero() {
		return nil, fmt.Errorf("scheduled start time is required")
	}
	if in.DurationMinutes == 0 {
		in.DurationMinutes = DefaultDurationMinutes
	}
	if in.DurationMinutes < MinDurationMinutes || in.DurationMinutes > MaxDurationMinutes {
		return nil, fmt.Errorf("duration must be between %d and %d minutes", MinDurationMinutes, MaxDurationMinutes)
	}
	return api.Post[Consultation](ctx, c.api, "/api/video-consultations/", in)
}

// Mine lists the caller's consultations, optionally only upcoming ones.
func (c *Client) Mine(ctx context.Context, upcomingOnly bool) ([]ListItem, error) {
	var q url.Values
	if upcomingOnly {
		q = url.Values{}
		q.Set("upcoming_only", "true")
	}
	out, err := api.Get[[]ListItem](ctx, c.api, "/api/video-consultations/my-consultations", q)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Get fetches one consultation by id.
func (c *Client) Get(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	return api.Get[Consultation](ctx, c.api, fmt.Sprintf("/api/video-consultations/%s", id), nil)
}

type joinRequest struct {
	UserType string `json:"user_type"`
}

// Join requests call credentials for the consultation. userType is
// "patient" or "doctor".
func (c *Client) Join(ctx context.Context, id uuid.UUID, userType string) (*CallCredentials, error) {
	if userType != "patient" && userType != "doctor" {
		return nil, fmt.Errorf("user type must be patient or doctor")
	}
	return api.Post[CallCredentials](ctx, c.api, fmt.Sprintf("/api/video-consultations/%s/join", id), joinRequest{UserType: userType})
}

// End marks the consultation finished.
func (c *Client) End(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	return api.Post[Consultation](ctx, c.api, fmt.Sprintf("/api/video-consultations/%s/end", id), nil)
}

type cancelRequest struct {
	CancellationReason string `json:"cancellation_reason"`
}

// Cancel cancels the consultation with a reason.
func (c *Client) Cancel(ctx context.Context, id uuid.UUID, reason string) (*Consultation, error) {
	if len(reason) < 10 {
		return nil, fmt.Errorf("cancellation reason must be at least 10 characters")
	}
	return api.Post[Consultation](ctx, c.api, fmt.Sprintf("/api/video-consultations/%s/cancel", id), cancelRequest{CancellationReason: reason})
}

// MyStats fetches the caller's consultation counters.
func (c *Client) MyStats(ctx context.Context) (*Stats, error) {
	return api.Get[Stats](ctx, c.api, "/api/video-consultations/stats/my-stats", nil)
}
