package sandbox

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthbridge/healthbridge/internal/domain/identity"
	"github.com/healthbridge/healthbridge/internal/domain/referral"
)

// withNames fills the joined party names on a response copy. The store
// keeps only the ids.
func (h *handlers) withNames(r referral.Referral) referral.Referral {
	r.PatientName = h.displayName(r.PatientID)
	if u, ok := h.store.User(r.PatientID); ok {
		r.PatientPhone = u.PhoneNumber
	}
	r.ReferringDoctorName = h.displayName(r.ReferringDoctorID)
	if d, ok := h.store.DoctorProfile(r.ReferringDoctorID); ok {
		r.ReferringDoctorSpecialty = d.Specialty
	}
	r.ReferredToDoctorName = h.displayName(r.ReferredToDoctorID)
	r.HasAppointment = r.AppointmentEncounterID != nil
	return r
}

func (h *handlers) withNamesAll(refs []referral.Referral) []referral.Referral {
	out := make([]referral.Referral, 0, len(refs))
	for _, r := range refs {
		out = append(out, h.withNames(r))
	}
	return out
}

func (h *handlers) createReferral(c echo.Context) error {
	var in referral.CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.Reason == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reason is required")
	}
	patient, ok := h.store.User(in.PatientID)
	if !ok || patient.Role != identity.RolePatient {
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	}
	target, ok := h.store.User(in.ReferredToDoctorID)
	if !ok || target.Role != identity.RoleDoctor {
		return echo.NewHTTPError(http.StatusNotFound, "Referred-to doctor not found")
	}
	priority := in.Priority
	if priority == "" {
		priority = referral.PriorityMedium
	}
	created := h.store.CreateReferral(referral.Referral{
		PatientID:          in.PatientID,
		ReferringDoctorID:  currentUser(c).UserID,
		ReferredToDoctorID: in.ReferredToDoctorID,
		Reason:             in.Reason,
		ClinicalNotes:      in.ClinicalNotes,
		Priority:           priority,
		SpecialtyNeeded:    in.SpecialtyNeeded,
		SourceEncounterID:  in.SourceEncounterID,
	})
	return c.JSON(http.StatusCreated, h.withNames(created))
}

func (h *handlers) referralsMade(c echo.Context) error {
	me := currentUser(c).UserID
	refs := h.store.ReferralsWhere(func(r referral.Referral) bool {
		return r.ReferringDoctorID == me
	})
	return c.JSON(http.StatusOK, h.withNamesAll(refs))
}

func (h *handlers) referralsReceived(c echo.Context) error {
	me := currentUser(c).UserID
	refs := h.store.ReferralsWhere(func(r referral.Referral) bool {
		return r.ReferredToDoctorID == me
	})
	// Listing the inbox marks it viewed.
	for i, r := range refs {
		if !r.ReferredDoctorViewed {
			r.ReferredDoctorViewed = true
			h.store.PutReferral(r)
			refs[i] = r
		}
	}
	return c.JSON(http.StatusOK, h.withNamesAll(refs))
}

func (h *handlers) myReferrals(c echo.Context) error {
	me := currentUser(c).UserID
	refs := h.store.ReferralsWhere(func(r referral.Referral) bool {
		return r.PatientID == me
	})
	for i, r := range refs {
		if !r.PatientViewed {
			r.PatientViewed = true
			h.store.PutReferral(r)
			refs[i] = r
		}
	}
	return c.JSON(http.StatusOK, h.withNamesAll(refs))
}

func (h *handlers) patientReferrals(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	me := currentUser(c).UserID
	refs := h.store.ReferralsWhere(func(r referral.Referral) bool {
		return r.PatientID == patientID &&
			(r.ReferringDoctorID == me || r.ReferredToDoctorID == me)
	})
	return c.JSON(http.StatusOK, h.withNamesAll(refs))
}

func (h *handlers) referralFromParam(c echo.Context) (referral.Referral, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return referral.Referral{}, echo.NewHTTPError(http.StatusBadRequest, "invalid referral id")
	}
	r, ok := h.store.Referral(id)
	if !ok {
		return referral.Referral{}, echo.NewHTTPError(http.StatusNotFound, "Referral not found")
	}
	return r, nil
}

func (h *handlers) getReferral(c echo.Context) error {
	r, err := h.referralFromParam(c)
	if err != nil {
		return err
	}
	me := currentUser(c).UserID
	switch me {
	case r.PatientID:
		if !r.PatientViewed {
			r.PatientViewed = true
			h.store.PutReferral(r)
		}
	case r.ReferredToDoctorID:
		if !r.ReferredDoctorViewed {
			r.ReferredDoctorViewed = true
			h.store.PutReferral(r)
		}
	case r.ReferringDoctorID:
	default:
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}
	return c.JSON(http.StatusOK, h.withNames(r))
}

func referralAck(c echo.Context, msg string, id uuid.UUID) error {
	return c.JSON(http.StatusOK, map[string]any{"message": msg, "referral_id": id})
}

func (h *handlers) acceptReferral(c echo.Context) error {
	r, err := h.referralFromParam(c)
	if err != nil {
		return err
	}
	if r.ReferredToDoctorID != currentUser(c).UserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the referred-to doctor can accept this referral")
	}
	if !referral.CanAdvance(r.Status, referral.StatusAccepted) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status transition")
	}
	r.Status = referral.StatusAccepted
	if notes := c.QueryParam("notes"); notes != "" {
		r.ReferredDoctorNotes = notes
	}
	h.store.PutReferral(r)
	return referralAck(c, "Referral accepted successfully", r.ReferralID)
}

func (h *handlers) declineReferral(c echo.Context) error {
	r, err := h.referralFromParam(c)
	if err != nil {
		return err
	}
	if r.ReferredToDoctorID != currentUser(c).UserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the referred-to doctor can decline this referral")
	}
	reason := c.QueryParam("reason")
	if reason == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reason is required")
	}
	if !referral.CanAdvance(r.Status, referral.StatusDeclined) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status transition")
	}
	r.Status = referral.StatusDeclined
	r.DeclinedReason = reason
	h.store.PutReferral(r)
	return referralAck(c, "Referral declined", r.ReferralID)
}

func (h *handlers) linkReferralAppointment(c echo.Context) error {
	r, err := h.referralFromParam(c)
	if err != nil {
		return err
	}
	me := currentUser(c).UserID
	if me != r.PatientID && me != r.ReferredToDoctorID {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}
	encID, err := uuid.Parse(c.QueryParam("encounter_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid encounter id")
	}
	if _, ok := h.store.Encounter(encID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Encounter not found")
	}
	scheduled, err := time.Parse(time.RFC3339, c.QueryParam("scheduled_time"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid scheduled time")
	}
	if !referral.CanAdvance(r.Status, referral.StatusAppointmentScheduled) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status transition")
	}
	r.AppointmentEncounterID = &encID
	r.AppointmentScheduledTime = &scheduled
	r.Status = referral.StatusAppointmentScheduled
	h.store.PutReferral(r)
	return referralAck(c, "Appointment linked to referral", r.ReferralID)
}

func (h *handlers) completeReferral(c echo.Context) error {
	r, err := h.referralFromParam(c)
	if err != nil {
		return err
	}
	if r.ReferredToDoctorID != currentUser(c).UserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the referred-to doctor can complete this referral")
	}
	if !referral.CanAdvance(r.Status, referral.StatusCompleted) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status transition")
	}
	now := time.Now().UTC()
	r.Status = referral.StatusCompleted
	r.AppointmentCompletedTime = &now
	h.store.PutReferral(r)
	return referralAck(c, "Referral marked as completed", r.ReferralID)
}

func (h *handlers) referralStats(c echo.Context) error {
	u := currentUser(c)
	var stats referral.Stats
	switch u.Role {
	case identity.RoleDoctor:
		for _, r := range h.store.ReferralsWhere(func(r referral.Referral) bool {
			return r.ReferredToDoctorID == u.UserID
		}) {
			switch r.Status {
			case referral.StatusPending:
				stats.TotalPending++
			case referral.StatusAccepted, referral.StatusAppointmentScheduled:
				stats.TotalAccepted++
			case referral.StatusCompleted:
				stats.TotalCompleted++
			}
			if !r.ReferredDoctorViewed {
				stats.UnreadCount++
			}
		}
	case identity.RolePatient:
		for _, r := range h.store.ReferralsWhere(func(r referral.Referral) bool {
			return r.PatientID == u.UserID
		}) {
			if r.Status == referral.StatusPending {
				stats.TotalPending++
			}
			if !r.PatientViewed {
				stats.UnreadCount++
			}
		}
	}
	return c.JSON(http.StatusOK, stats)
}
