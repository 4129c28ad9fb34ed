package messaging

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/healthbridge/healthbridge/internal/platform/api"
)

// Client covers the direct-messaging endpoints.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

type sendRequest struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Content     string    `json:"content"`
}

// Send delivers a message to another user.
func (c *Client) Send(ctx context.Context, recipientID uuid.UUID, content string) (*Message, error) {
	if recipientID == uuid.Nil {
		return nil, fmt.Errorf("recipient is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("message content is empty")
	}
	return api.Post[Message](ctx, c.api, "/api/messages/", sendRequest{RecipientID: recipientID, Content: content})
}

// Conversation returns up to limit messages exchanged with the other
// user, oldest first. limit <= 0 leaves the server default in place.
func (c *Client) Conversation(ctx context.Context, otherUserID uuid.UUID, limit int) ([]Message, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{}
		q.Set("limit", strconv.Itoa(limit))
	}
	out, err := api.Get[[]Message](ctx, c.api, fmt.Sprintf("/api/messages/conversation/%s", otherUserID), q)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// MarkRead marks every message from the other user as read.
func (c *Client) MarkRead(ctx context.Context, otherUserID uuid.UUID) error {
	_, err := api.Post[map[string]string](ctx, c.api, fmt.Sprintf("/api/messages/conversation/%s/mark-read", otherUserID), nil)
	return err
}

// Unread fetches the unread badge counts.
func (c *Client) Unread(ctx context.Context) (*UnreadCount, error) {
	return api.Get[UnreadCount](ctx, c.api, "/api/messages/unread-count", nil)
}

// Conversations lists the caller's conversations, most recent first.
func (c *Client) Conversations(ctx context.Context) ([]ConversationSummary, error) {
	out, err := api.Get[[]ConversationSummary](ctx, c.api, "/api/messages/conversations", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}
