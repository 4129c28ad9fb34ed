package sandbox

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthbridge/healthbridge/internal/domain/doctor"
	"github.com/healthbridge/healthbridge/internal/domain/encounter"
	"github.com/healthbridge/healthbridge/internal/domain/identity"
	"github.com/healthbridge/healthbridge/internal/domain/orders"
	"github.com/healthbridge/healthbridge/internal/domain/report"
)

// -- Doctor portal --

func (h *handlers) doctorProfile(c echo.Context) error {
	d, ok := h.store.DoctorProfile(currentUser(c).UserID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Doctor profile not found")
	}
	return c.JSON(http.StatusOK, d)
}

// doctorPatients are the patients with at least one encounter assigned to
// this doctor.
func (h *handlers) doctorPatients(doctorID uuid.UUID) []identity.PatientProfile {
	seen := make(map[uuid.UUID]bool)
	var out []identity.PatientProfile
	for _, u := range h.store.UsersByRole(identity.RolePatient) {
		for _, e := range h.store.EncountersByPatient(u.UserID) {
			if e.DoctorID != nil && *e.DoctorID == doctorID && !seen[u.UserID] {
				seen[u.UserID] = true
				if p, ok := h.store.PatientProfile(u.UserID); ok {
					out = append(out, p)
				}
			}
		}
	}
	return out
}

func (h *handlers) doctorMyPatients(c echo.Context) error {
	patients := h.doctorPatients(currentUser(c).UserID)
	if patients == nil {
		patients = []identity.PatientProfile{}
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *handlers) doctorSearchPatients(c echo.Context) error {
	query := strings.ToLower(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	out := []identity.PatientProfile{}
	for _, u := range h.store.UsersByRole(identity.RolePatient) {
		p, ok := h.store.PatientProfile(u.UserID)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(p.FullName()), query) ||
			strings.Contains(u.PhoneNumber, c.QueryParam("q")) {
			out = append(out, p)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *handlers) doctorPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	p, ok := h.store.PatientProfile(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *handlers) doctorPatientTimeline(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	p, ok := h.store.PatientProfile(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	}
	encs := h.store.EncountersByPatient(id)
	joined := make([]encounter.Comprehensive, 0, len(encs))
	for _, e := range encs {
		joined = append(joined, h.comprehensive(e))
	}
	return c.JSON(http.StatusOK, doctor.Timeline{Patient: p, Encounters: joined})
}

func (h *handlers) doctorPatientDocuments(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	out := []encounter.MediaFile{}
	for _, e := range h.store.EncountersByPatient(id) {
		out = append(out, h.store.Media(e.EncounterID)...)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *handlers) doctorPendingReports(c echo.Context) error {
	reports := h.store.ReportsByStatus(currentUser(c).UserID, report.StatusGenerated, report.StatusPendingReview)
	if reports == nil {
		reports = []report.Report{}
	}
	return c.JSON(http.StatusOK, reports)
}

func (h *handlers) doctorReviewedReports(c echo.Context) error {
	reports := h.store.ReportsByStatus(currentUser(c).UserID, report.StatusReviewed)
	if reports == nil {
		reports = []report.Report{}
	}
	return c.JSON(http.StatusOK, reports)
}

func (h *handlers) doctorStats(c echo.Context) error {
	doctorID := currentUser(c).UserID
	pending := h.store.ReportsByStatus(doctorID, report.StatusGenerated, report.StatusPendingReview)
	reviewed := h.store.ReportsByStatus(doctorID, report.StatusReviewed)
	consultations := 0
	for _, p := range h.doctorPatients(doctorID) {
		for _, e := range h.store.EncountersByPatient(p.UserID) {
			if e.DoctorID != nil && *e.DoctorID == doctorID {
				consultations++
			}
		}
	}
	return c.JSON(http.StatusOK, doctor.Stats{
		TotalPatients:   len(h.doctorPatients(doctorID)),
		Consultations:   consultations,
		PendingReports:  len(pending),
		ReviewedReports: len(reviewed),
	})
}

// -- Lab portal --

func (h *handlers) labOrders(c echo.Context) error {
	out := h.store.LabOrdersFor(currentUser(c).UserID)
	if out == nil {
		out = []orders.LabOrder{}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *handlers) labOrderFromParam(c echo.Context) (orders.LabOrder, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return orders.LabOrder{}, echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	o, ok := h.store.LabOrder(id)
	if !ok || o.LabID != currentUser(c).UserID {
		return orders.LabOrder{}, echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}
	return o, nil
}

func (h *handlers) labOrder(c echo.Context) error {
	o, err := h.labOrderFromParam(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, o)
}

type statusUpdateRequest struct {
	Status orders.Status `json:"status"`
}

func (h *handlers) updateLabOrder(c echo.Context) error {
	o, err := h.labOrderFromParam(c)
	if err != nil {
		return err
	}
	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !orders.CanAdvance(o.Status, req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status transition")
	}
	o.Status = req.Status
	h.store.PutLabOrder(o)
	return c.JSON(http.StatusOK, o)
}

func (h *handlers) patientInfoFor(encounterID uuid.UUID, instructions string) (orders.PatientInfo, error) {
	e, ok := h.store.Encounter(encounterID)
	if !ok {
		return orders.PatientInfo{}, echo.NewHTTPError(http.StatusNotFound, "Encounter not found")
	}
	p, ok := h.store.PatientProfile(e.PatientID)
	if !ok {
		return orders.PatientInfo{}, echo.NewHTTPError(http.StatusNotFound, "Patient profile not found")
	}
	return orders.PatientInfo{
		PatientID:         p.UserID,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		DateOfBirth:       p.DateOfBirth,
		Gender:            string(p.Gender),
		OrderInstructions: instructions,
	}, nil
}

func (h *handlers) labOrderPatientInfo(c echo.Context) error {
	o, err := h.labOrderFromParam(c)
	if err != nil {
		return err
	}
	info, err := h.patientInfoFor(o.EncounterID, o.Instructions)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, info)
}

func orderStats(total, sent, received, completed int) orders.Stats {
	return orders.Stats{
		TotalOrders: total,
		Sent:        sent,
		Received:    received,
		Completed:   completed,
		Pending:     sent + received,
	}
}

func (h *handlers) labStats(c echo.Context) error {
	var sent, received, completed int
	all := h.store.LabOrdersFor(currentUser(c).UserID)
	for _, o := range all {
		switch o.Status {
		case orders.StatusSent:
			sent++
		case orders.StatusReceived:
			received++
		case orders.StatusCompleted:
			completed++
		}
	}
	return c.JSON(http.StatusOK, orderStats(len(all), sent, received, completed))
}

func (h *handlers) labProfile(c echo.Context) error {
	l, ok := h.store.LabProfile(currentUser(c).UserID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Lab profile not found")
	}
	return c.JSON(http.StatusOK, l)
}

// -- Pharmacy portal --

func (h *handlers) prescriptions(c echo.Context) error {
	out := h.store.PrescriptionsFor(currentUser(c).UserID)
	if out == nil {
		out = []orders.Prescription{}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *handlers) prescriptionFromParam(c echo.Context) (orders.Prescription, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return orders.Prescription{}, echo.NewHTTPError(http.StatusBadRequest, "invalid prescription id")
	}
	p, ok := h.store.Prescription(id)
	if !ok || p.PharmacyID != currentUser(c).UserID {
		return orders.Prescription{}, echo.NewHTTPError(http.StatusNotFound, "Prescription not found")
	}
	return p, nil
}

func (h *handlers) prescription(c echo.Context) error {
	p, err := h.prescriptionFromParam(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *handlers) updatePrescription(c echo.Context) error {
	p, err := h.prescriptionFromParam(c)
	if err != nil {
		return err
	}
	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !orders.CanAdvance(p.Status, req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status transition")
	}
	p.Status = req.Status
	h.store.PutPrescription(p)
	return c.JSON(http.StatusOK, p)
}

func (h *handlers) prescriptionPatientInfo(c echo.Context) error {
	p, err := h.prescriptionFromParam(c)
	if err != nil {
		return err
	}
	info, err := h.patientInfoFor(p.EncounterID, p.Instructions)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, info)
}

func (h *handlers) pharmacyStats(c echo.Context) error {
	var sent, received, completed int
	all := h.store.PrescriptionsFor(currentUser(c).UserID)
	for _, p := range all {
		switch p.Status {
		case orders.StatusSent:
			sent++
		case orders.StatusReceived:
			received++
		case orders.StatusCompleted:
			completed++
		}
	}
	return c.JSON(http.StatusOK, orderStats(len(all), sent, received, completed))
}

func (h *handlers) pharmacyProfile(c echo.Context) error {
	p, ok := h.store.PharmacyProfile(currentUser(c).UserID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Pharmacy profile not found")
	}
	return c.JSON(http.StatusOK, p)
}
