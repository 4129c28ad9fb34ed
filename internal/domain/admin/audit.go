package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/healthbridge/healthbridge/internal/platform/api"
)

// AuditAction is the kind of access a log entry records.
type AuditAction string

const (
	AuditView   AuditAction = "VIEW"
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// AuditLog is one compliance trail entry, with the acting user joined in.
type AuditLog struct {
	LogID        uuid.UUID       `json:"log_id"`
	UserID       uuid.UUID       `json:"user_id"`
	Action       AuditAction     `json:"action"`
	ResourceType string          `json:"resource_type,omitempty"`
	ResourceID   *uuid.UUID      `json:"resource_id,omitempty"`
	IPAddress    string          `json:"ip_address,omitempty"`
	UserAgent    string          `json:"user_agent,omitempty"`
	Details      json.RawMessage `json:"details,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
	UserEmail    string          `json:"user_email,omitempty"`
	UserPhone    string          `json:"user_phone,omitempty"`
	UserRole     string          `json:"user_role,omitempty"`
}

// AuditStats summarizes the audit trail for the compliance dashboard.
type AuditStats struct {
	TotalLogs    int               `json:"total_logs"`
	LogsLast24h  int               `json:"logs_last_24h"`
	LogsLast7d   int               `json:"logs_last_7d"`
	TopActions   []json.RawMessage `json:"top_actions"`
	TopUsers     []json.RawMessage `json:"top_users"`
	TopResources []json.RawMessage `json:"top_resources"`
}

// AuditFilter narrows an audit log listing. Zero values are not sent.
type AuditFilter struct {
	UserID       uuid.UUID
	Action       AuditAction
	ResourceType string
	Limit        int
	Offset       int
}

func (f AuditFilter) query() url.Values {
	q := url.Values{}
	if f.UserID != uuid.Nil {
		q.Set("user_id", f.UserID.String())
	}
	if f.Action != "" {
		q.Set("action", string(f.Action))
	}
	if f.ResourceType != "" {
		q.Set("resource_type", f.ResourceType)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

// AuditLogs lists audit entries, newest first. Admin only.
func (c *Client) AuditLogs(ctx context.Context, filter AuditFilter) ([]AuditLog, error) {
	out, err := api.Get[[]AuditLog](ctx, c.api, "/api/audit/logs", filter.query())
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// ResourceAuditLogs lists every access to one resource. Admin only.
func (c *Client) ResourceAuditLogs(ctx context.Context, resourceType string, resourceID uuid.UUID) ([]AuditLog, error) {
	if resourceType == "" {
		return nil, fmt.Errorf("resource type is required")
	}
	path := fmt.Sprintf("/api/audit/logs/resource/%s/%s", url.PathEscape(resourceType), resourceID)
	out, err := api.Get[[]AuditLog](ctx, c.api, path, nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// AuditStats fetches the audit trail summary. Admin only.
func (c *Client) AuditStats(ctx context.Context) (*AuditStats, error) {
	return api.Get[AuditStats](ctx, c.api, "/api/audit/stats", nil)
}

// MyAuditLogs lists the logged-in user's own trail. Any role may call it.
func (c *Client) MyAuditLogs(ctx context.Context, filter AuditFilter) ([]AuditLog, error) {
	out, err := api.Get[[]AuditLog](ctx, c.api, "/api/audit/my-logs", filter.query())
	if err != nil {
		return nil, err
	}
	return *out, nil
}
