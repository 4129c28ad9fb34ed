package encounter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func TestInterview_TranscriptGrows(t *testing.T) {
	var gotHistories [][]InterviewMessage
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ConversationHistory []InterviewMessage `json:"conversation_history"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotHistories = append(gotHistories, req.ConversationHistory)
		if len(req.ConversationHistory) >= 3 {
			json.NewEncoder(w).Encode(InterviewStep{IsComplete: true, Summary: "Headache, two days, no fever."})
			return
		}
		json.NewEncoder(w).Encode(InterviewStep{NextQuestion: "How long has this been going on?"})
	})

	iv := NewInterview(client)
	ctx := context.Background()

	step, err := iv.Step(ctx, "")
	require.NoError(t, err)
	assert.False(t, step.IsComplete)
	assert.Empty(t, gotHistories[0])

	step, err = iv.Step(ctx, "About two days.")
	require.NoError(t, err)
	assert.False(t, step.IsComplete)
	// Second request carries the first question and the answer.
	require.Len(t, gotHistories[1], 2)
	assert.Equal(t, "assistant", gotHistories[1][0].Role)
	assert.Equal(t, "user", gotHistories[1][1].Role)
	assert.Equal(t, "About two days.", gotHistories[1][1].Content)

	step, err = iv.Step(ctx, "No fever.")
	require.NoError(t, err)
	assert.True(t, step.IsComplete)
	assert.True(t, iv.Done())
	assert.Equal(t, "Headache, two days, no fever.", iv.Summary())
}

func TestInterview_StepAfterCompleteFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(InterviewStep{IsComplete: true, Summary: "done"})
	})

	iv := NewInterview(client)
	_, err := iv.Step(context.Background(), "")
	require.NoError(t, err)

	_, err = iv.Step(context.Background(), "anything")
	require.Error(t, err)
}

func TestInterview_FailedStepKeepsTranscriptRetryable(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"detail": "assistant unavailable"})
			return
		}
		var req struct {
			ConversationHistory []InterviewMessage `json:"conversation_history"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if calls == 3 {
			// The retry must carry exactly one answer, not two.
			require.Len(t, req.ConversationHistory, 2)
		}
		json.NewEncoder(w).Encode(InterviewStep{NextQuestion: "Anything else?"})
	})

	iv := NewInterview(client)
	ctx := context.Background()
	_, err := iv.Step(ctx, "")
	require.NoError(t, err)

	_, err = iv.Step(ctx, "It hurts at night.")
	require.Error(t, err)

	_, err = iv.Step(ctx, "It hurts at night.")
	require.NoError(t, err)
}

func TestInterview_HistoryIsACopy(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(InterviewStep{NextQuestion: "What brings you in?"})
	})

	iv := NewInterview(client)
	_, err := iv.Step(context.Background(), "")
	require.NoError(t, err)

	hist := iv.History()
	require.Len(t, hist, 1)
	hist[0].Content = "mutated"
	assert.Equal(t, "What brings you in?", iv.History()[0].Content)
}
