package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthbridge/healthbridge/internal/platform/api"
)

type reviewBackend struct {
	report     Report
	patchCount int32
	lastPatch  UpdateInput
}

func (b *reviewBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(b.report)
		case http.MethodPatch:
			atomic.AddInt32(&b.patchCount, 1)
			json.NewDecoder(r.Body).Decode(&b.lastPatch)
			if b.lastPatch.Status != "" {
				b.report.Status = b.lastPatch.Status
			}
			if b.lastPatch.Content != nil {
				b.report.Content = *b.lastPatch.Content
			}
			json.NewEncoder(w).Encode(b.report)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func newReviewFixture(t *testing.T, rep Report) (*Client, *reviewBackend) {
	t.Helper()
	backend := &reviewBackend{report: rep}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	apiClient := api.New(srv.URL, 5*time.Second, nil, zerolog.Nop())
	return NewClient(apiClient), backend
}

func pendingReport() Report {
	return Report{
		ReportID:    uuid.New(),
		EncounterID: uuid.New(),
		Status:      StatusPendingReview,
		Content: Content{
			Symptoms:  "cough",
			NextSteps: "follow up in a week",
		},
	}
}

func TestReview_ValidationBlocksSaveWithoutNetworkCall(t *testing.T) {
	rep := pendingReport()
	client, backend := newReviewFixture(t, rep)

	rv, err := StartReview(context.Background(), client, rep.EncounterID)
	require.NoError(t, err)

	// Diagnosis and treatment are still empty.
	_, err = rv.Save(context.Background())
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Missing, "diagnosis")
	assert.Contains(t, verr.Missing, "treatment")
	assert.EqualValues(t, 0, backend.patchCount, "validation failure must not reach the backend")
}

func TestReview_SaveIssuesSingleReviewedPatch(t *testing.T) {
	rep := pendingReport()
	client, backend := newReviewFixture(t, rep)

	rv, err := StartReview(context.Background(), client, rep.EncounterID)
	require.NoError(t, err)

	rv.SetDiagnosis("bronchitis")
	rv.SetTreatment("rest and fluids")
	rv.SetPriority(PriorityMedium)

	updated, err := rv.Save(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 1, backend.patchCount)
	assert.Equal(t, StatusReviewed, backend.lastPatch.Status)
	require.NotNil(t, backend.lastPatch.Content)
	assert.Equal(t, "bronchitis", backend.lastPatch.Content.Diagnosis)
	assert.Equal(t, "cough", backend.lastPatch.Content.Symptoms)
	assert.Equal(t, StatusReviewed, updated.Status)
}

func TestReview_CancelDiscardsEditsWithoutNetworkCall(t *testing.T) {
	rep := pendingReport()
	client, backend := newReviewFixture(t, rep)

	rv, err := StartReview(context.Background(), client, rep.EncounterID)
	require.NoError(t, err)

	rv.SetDiagnosis("wrong direction")
	rv.Cancel()

	assert.Equal(t, rep.Content, rv.Draft())
	assert.EqualValues(t, 0, backend.patchCount)
}

func TestReview_AlreadyReviewed(t *testing.T) {
	rep := pendingReport()
	rep.Status = StatusReviewed
	client, _ := newReviewFixture(t, rep)

	_, err := StartReview(context.Background(), client, rep.EncounterID)
	assert.True(t, errors.Is(err, ErrAlreadyReviewed))
}

func TestCanAdvance(t *testing.T) {
	assert.True(t, CanAdvance(StatusGenerated, StatusPendingReview))
	assert.True(t, CanAdvance(StatusPendingReview, StatusReviewed))
	assert.True(t, CanAdvance(StatusGenerated, StatusReviewed))
	assert.False(t, CanAdvance(StatusReviewed, StatusPendingReview))
	assert.False(t, CanAdvance(StatusPendingReview, StatusGenerated))
}
