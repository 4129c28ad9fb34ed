package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthbridge/healthbridge/internal/platform/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(api.New(srv.URL, 5*time.Second, nil, zerolog.Nop()))
}

func TestSend_EndpointAndBody(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(Message{MessageID: uuid.New(), Content: "hello"})
	})

	recipient := uuid.New()
	msg, err := client.Send(context.Background(), recipient, "hello")
	require.NoError(t, err)
	assert.Equal(t, "/api/messages/", gotPath)
	assert.Equal(t, recipient.String(), gotBody["recipient_id"])
	assert.Equal(t, "hello", msg.Content)
}

func TestSend_RejectsEmptyContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.Send(context.Background(), uuid.New(), "   ")
	require.Error(t, err)

	_, err = client.Send(context.Background(), uuid.Nil, "hello")
	require.Error(t, err)
}

func TestConversation_LimitQuery(t *testing.T) {
	var gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]Message{{Content: "first"}, {Content: "second"}})
	})

	other := uuid.New()
	msgs, err := client.Conversation(context.Background(), other, 20)
	require.NoError(t, err)
	assert.Equal(t, "/api/messages/conversation/"+other.String(), gotPath)
	assert.Equal(t, "limit=20", gotQuery)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Content)

	_, err = client.Conversation(context.Background(), other, 0)
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestMarkRead_Endpoint(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"message": "Conversation marked as read"})
	})

	other := uuid.New()
	require.NoError(t, client.MarkRead(context.Background(), other))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/messages/conversation/"+other.String()+"/mark-read", gotPath)
}

func TestUnreadAndConversations(t *testing.T) {
	sender := uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/messages/unread-count":
			json.NewEncoder(w).Encode(UnreadCount{
				TotalUnread:  3,
				UnreadByUser: []UnreadByUser{{UserID: sender, UserName: "Dr. Shah", UserRole: "DOCTOR", UnreadCount: 3}},
			})
		case "/api/messages/conversations":
			json.NewEncoder(w).Encode([]ConversationSummary{
				{UserID: sender, UserName: "Dr. Shah", LastMessage: "see you then", UnreadCount: 3},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	unread, err := client.Unread(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, unread.TotalUnread)
	require.Len(t, unread.UnreadByUser, 1)
	assert.Equal(t, sender, unread.UnreadByUser[0].UserID)

	convs, err := client.Conversations(context.Background())
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "see you then", convs[0].LastMessage)
}
