package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/healthbridge/healthbridge/internal/platform/api"
)

// Client covers the summary-report endpoints of an encounter. Translations
// are cached in memory beside the canonical copy and never persisted.
type Client struct {
	api *api.Client

	mu           sync.Mutex
	translations map[uuid.UUID]*Translation
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{
		api:          apiClient,
		translations: make(map[uuid.UUID]*Translation),
	}
}

// Create posts a new summary report for the encounter. An empty status
// defaults to GENERATED.
func (c *Client) Create(ctx context.Context, encounterID uuid.UUID, in CreateInput) (*Report, error) {
	if in.Status == "" {
		in.Status = StatusGenerated
	}
	return api.Post[Report](ctx, c.api, fmt.Sprintf("/api/encounters/%s/summary", encounterID), in)
}

// Get fetches the encounter's summary report.
func (c *Client) Get(ctx context.Context, encounterID uuid.UUID) (*Report, error) {
	return api.Get[Report](ctx, c.api, fmt.Sprintf("/api/encounters/%s/summary", encounterID), nil)
}

// Update patches the report (doctor edits).
func (c *Client) Update(ctx context.Context, encounterID uuid.UUID, in UpdateInput) (*Report, error) {
	return api.Patch[Report](ctx, c.api, fmt.Sprintf("/api/encounters/%s/summary", encounterID), in)
}

type symptomsUpdate struct {
	Symptoms string `json:"symptoms"`
}

// UpdateSymptoms patches only the patient-owned symptoms field.
func (c *Client) UpdateSymptoms(ctx context.Context, encounterID uuid.UUID, symptoms string) (*Report, error) {
	return api.Patch[Report](ctx, c.api, fmt.Sprintf("/api/encounters/%s/summary/symptoms", encounterID), symptomsUpdate{Symptoms: symptoms})
}

// Translate fetches (or returns the cached) translated rendering of the
// report alongside the canonical content.
func (c *Client) Translate(ctx context.Context, encounterID uuid.UUID) (*Translation, error) {
	c.mu.Lock()
	if t, ok := c.translations[encounterID]; ok {
		c.mu.Unlock()
		return t, nil
	}
	c.mu.Unlock()

	t, err := api.Get[Translation](ctx, c.api, fmt.Sprintf("/api/encounters/%s/translate-summary", encounterID), nil)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.translations[encounterID] = t
	c.mu.Unlock()
	return t, nil
}

// InvalidateTranslation drops the cached translation, forcing the next
// Translate call back to the backend. Called after the report is edited.
func (c *Client) InvalidateTranslation(encounterID uuid.UUID) {
	c.mu.Lock()
	delete(c.translations, encounterID)
	c.mu.Unlock()
}
