package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrAlreadyReviewed is returned when a review is started on a report that
// has already been through review.
var ErrAlreadyReviewed = errors.New("report: already reviewed")

// Review is the doctor's editing session over one report. Edits stay local
// until Save, which issues a single PATCH marking the report REVIEWED.
// Cancel discards the edits without any network call.
type Review struct {
	client      *Client
	encounterID uuid.UUID
	original    Report
	draft       Content
	priority    Priority
	saved       bool
}

// StartReview loads the report and opens an editing session on it.
func StartReview(ctx context.Context, client *Client, encounterID uuid.UUID) (*Review, error) {
	rep, err := client.Get(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	if rep.Status == StatusReviewed {
		return nil, ErrAlreadyReviewed
	}
	return &Review{
		client:      client,
		encounterID: encounterID,
		original:    *rep,
		draft:       rep.Content,
		priority:    rep.Priority,
	}, nil
}

// Draft returns the current edited content.
func (r *Review) Draft() Content { return r.draft }

// Original returns the report as it was loaded.
func (r *Review) Original() Report { return r.original }

func (r *Review) SetSymptoms(v string)     { r.draft.Symptoms = v }
func (r *Review) SetDiagnosis(v string)    { r.draft.Diagnosis = v }
func (r *Review) SetTreatment(v string)    { r.draft.Treatment = v }
func (r *Review) SetTests(v string)        { r.draft.Tests = v }
func (r *Review) SetPrescription(v string) { r.draft.Prescription = v }
func (r *Review) SetNextSteps(v string)    { r.draft.NextSteps = v }
func (r *Review) SetPriority(p Priority)   { r.priority = p }

// ValidationError names the fields a review cannot be saved without.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("report: required fields missing: %v", e.Missing)
}

// Validate checks the draft before any network call is made.
func (r *Review) Validate() error {
	var missing []string
	if r.draft.Symptoms == "" {
		missing = append(missing, "symptoms")
	}
	if r.draft.Diagnosis == "" {
		missing = append(missing, "diagnosis")
	}
	if r.draft.Treatment == "" {
		missing = append(missing, "treatment")
	}
	if r.draft.NextSteps == "" {
		missing = append(missing, "next_steps")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Save validates the draft, then issues exactly one PATCH marking the
// report REVIEWED with the edited content. On failure the draft is kept so
// the user can retry.
func (r *Review) Save(ctx context.Context) (*Report, error) {
	if r.saved {
		return nil, ErrAlreadyReviewed
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	content := r.draft
	updated, err := r.client.Update(ctx, r.encounterID, UpdateInput{
		Status:   StatusReviewed,
		Priority: r.priority,
		Content:  &content,
	})
	if err != nil {
		return nil, err
	}
	r.saved = true
	r.client.InvalidateTranslation(r.encounterID)
	return updated, nil
}

// Cancel discards the local edits. No network call is made.
func (r *Review) Cancel() {
	r.draft = r.original.Content
	r.priority = r.original.Priority
}
