package encounter

import (
	"context"
	"fmt"

	"github.com/healthbridge/healthbridge/internal/platform/api"
)

// InterviewMessage is one turn of the symptom interview. Role is
// "assistant" for questions and "user" for the patient's answers.
type InterviewMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type interviewRequest struct {
	ConversationHistory []InterviewMessage `json:"conversation_history"`
}

// InterviewStep is the backend's reply to one interview turn: either the
// next question, or the completed symptoms summary.
type InterviewStep struct {
	NextQuestion string `json:"next_question,omitempty"`
	IsComplete   bool   `json:"is_complete"`
	Summary      string `json:"summary,omitempty"`
}

// Interview runs the guided symptom interview. The questions come from the
// backend; this side only carries the transcript between turns. The
// finished summary is pasted into the encounter's symptoms by the caller.
type Interview struct {
	client  *Client
	history []InterviewMessage
	done    bool
	summary string
}

// NewInterview starts an empty interview session.
func NewInterview(client *Client) *Interview {
	return &Interview{client: client}
}

// Step sends the transcript and records the backend's reply. The first
// call, with an empty answer, fetches the opening question; later calls
// append the patient's answer first.
func (iv *Interview) Step(ctx context.Context, answer string) (*InterviewStep, error) {
	if iv.done {
		return nil, fmt.Errorf("interview already complete")
	}
	if answer != "" {
		iv.history = append(iv.history, InterviewMessage{Role: "user", Content: answer})
	}
	step, err := api.Post[InterviewStep](ctx, iv.client.api, "/api/health-assistant/interview", interviewRequest{
		ConversationHistory: iv.history,
	})
	if err != nil {
		if answer != "" {
			// Keep the transcript retryable: the unanswered question is
			// still the last assistant turn.
			iv.history = iv.history[:len(iv.history)-1]
		}
		return nil, err
	}
	if step.IsComplete {
		iv.done = true
		iv.summary = step.Summary
		return step, nil
	}
	iv.history = append(iv.history, InterviewMessage{Role: "assistant", Content: step.NextQuestion})
	return step, nil
}

// Done reports whether the interview has produced its summary.
func (iv *Interview) Done() bool { return iv.done }

// Summary returns the symptoms summary once the interview is complete.
func (iv *Interview) Summary() string { return iv.summary }

// History returns a copy of the transcript so far.
func (iv *Interview) History() []InterviewMessage {
	return append([]InterviewMessage(nil), iv.history...)
}
