package identity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/healthbridge/healthbridge/internal/platform/api"
)

// Client covers phone authentication and the patient's own profile.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

type sendCodeRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type verifyCodeRequest struct {
	PhoneNumber      string `json:"phone_number"`
	VerificationCode string `json:"verification_code"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// SendCode asks the backend to text a verification code to the phone.
func (c *Client) SendCode(ctx context.Context, phone string) error {
	if phone == "" {
		return fmt.Errorf("phone number is required")
	}
	_, err := api.Post[messageResponse](ctx, c.api, "/api/auth/phone/send-code", sendCodeRequest{PhoneNumber: phone})
	return err
}

// VerifyCode exchanges phone + code for a bearer token.
func (c *Client) VerifyCode(ctx context.Context, phone, code string) (*Token, error) {
	if phone == "" || code == "" {
		return nil, fmt.Errorf("phone number and verification code are required")
	}
	return api.Post[Token](ctx, c.api, "/api/auth/phone/verify", verifyCodeRequest{
		PhoneNumber:      phone,
		VerificationCode: code,
	})
}

// CreateProfile registers the logged-in patient's profile.
func (c *Client) CreateProfile(ctx context.Context, in PatientProfileInput) (*PatientProfile, error) {
	return api.Post[PatientProfile](ctx, c.api, "/api/profile/", in)
}

// Profile fetches the logged-in patient's profile.
func (c *Client) Profile(ctx context.Context) (*PatientProfile, error) {
	return api.Get[PatientProfile](ctx, c.api, "/api/profile/", nil)
}

// UpdateProfile patches the logged-in patient's profile.
func (c *Client) UpdateProfile(ctx context.Context, in PatientProfileInput) (*PatientProfile, error) {
	return api.Patch[PatientProfile](ctx, c.api, "/api/profile/", in)
}

// Timeline returns the patient's server-aggregated health timeline. The
// payload shape is backend-owned; it is passed through opaquely.
func (c *Client) Timeline(ctx context.Context) (json.RawMessage, error) {
	out, err := api.Get[json.RawMessage](ctx, c.api, "/api/profile/timeline", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Insights returns the patient's server-computed health insights, opaquely.
func (c *Client) Insights(ctx context.Context) (json.RawMessage, error) {
	out, err := api.Get[json.RawMessage](ctx, c.api, "/api/profile/insights", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}
