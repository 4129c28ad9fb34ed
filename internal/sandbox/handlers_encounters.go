package sandbox

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthbridge/healthbridge/internal/domain/encounter"
	"github.com/healthbridge/healthbridge/internal/domain/orders"
	"github.com/healthbridge/healthbridge/internal/domain/report"
)

func (h *handlers) encounterFromParam(c echo.Context) (encounter.Encounter, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return encounter.Encounter{}, echo.NewHTTPError(http.StatusBadRequest, "invalid encounter id")
	}
	e, ok := h.store.Encounter(id)
	if !ok {
		return encounter.Encounter{}, echo.NewHTTPError(http.StatusNotFound, "Encounter not found")
	}
	return e, nil
}

func (h *handlers) createEncounter(c echo.Context) error {
	var in encounter.CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.Type == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "encounter_type is required")
	}
	patientID := in.PatientID
	if patientID == uuid.Nil {
		patientID = currentUser(c).UserID
	}
	e := h.store.CreateEncounter(encounter.Encounter{
		PatientID:   patientID,
		DoctorID:    in.DoctorID,
		Type:        in.Type,
		InputMethod: in.InputMethod,
	})
	return c.JSON(http.StatusCreated, e)
}

func (h *handlers) listEncounters(c echo.Context) error {
	encs := h.store.EncountersByPatient(currentUser(c).UserID)
	if encs == nil {
		encs = []encounter.Encounter{}
	}
	return c.JSON(http.StatusOK, encs)
}

func (h *handlers) getEncounter(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.comprehensive(e))
}

// comprehensive joins everything hanging off the encounter, the way the
// production backend pre-joins it for clients.
func (h *handlers) comprehensive(e encounter.Encounter) encounter.Comprehensive {
	out := encounter.Comprehensive{
		Encounter:     e,
		Vitals:        h.store.Vitals(e.EncounterID),
		LabResults:    h.store.LabResults(e.EncounterID),
		LabOrders:     h.store.LabOrdersByEncounter(e.EncounterID),
		Prescriptions: h.store.PrescriptionsByEncounter(e.EncounterID),
		MediaFiles:    h.store.Media(e.EncounterID),
	}
	if r, ok := h.store.Report(e.EncounterID); ok {
		out.SummaryReport = &r
	}
	if p, ok := h.store.PatientProfile(e.PatientID); ok {
		out.PatientInfo = &p
	}
	if e.DoctorID != nil {
		if d, ok := h.store.DoctorProfile(*e.DoctorID); ok {
			out.DoctorInfo = &d
		}
	}
	return out
}

func (h *handlers) availableDoctors(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Doctors())
}

func (h *handlers) availableLabs(c echo.Context) error {
	labs := h.store.Labs()
	out := make([]orders.Provider, 0, len(labs))
	for _, l := range labs {
		out = append(out, orders.Provider{
			UserID:       l.UserID,
			BusinessName: l.BusinessName,
			Email:        l.Email,
			Phone:        l.Phone,
			Address:      l.Address,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *handlers) availablePharmacies(c echo.Context) error {
	pharmacies := h.store.Pharmacies()
	out := make([]orders.Provider, 0, len(pharmacies))
	for _, p := range pharmacies {
		out = append(out, orders.Provider{
			UserID:       p.UserID,
			BusinessName: p.BusinessName,
			Email:        p.Email,
			Phone:        p.Phone,
			Address:      p.Address,
		})
	}
	return c.JSON(http.StatusOK, out)
}

type assignDoctorRequest struct {
	DoctorID uuid.UUID `json:"doctor_id"`
}

func (h *handlers) assignDoctor(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	var req assignDoctorRequest
	if err := c.Bind(&req); err != nil || req.DoctorID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "doctor_id is required")
	}
	if _, ok := h.store.DoctorProfile(req.DoctorID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	}
	e.DoctorID = &req.DoctorID
	h.store.PutEncounter(e)
	return c.JSON(http.StatusOK, e)
}

func (h *handlers) addVitals(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	var in encounter.VitalsInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, h.store.AddVitals(e.EncounterID, in))
}

func (h *handlers) listVitals(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	vitals := h.store.Vitals(e.EncounterID)
	if vitals == nil {
		vitals = []encounter.Vitals{}
	}
	return c.JSON(http.StatusOK, vitals)
}

func (h *handlers) vitalsAnalysis(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"encounter_id": e.EncounterID,
		"analysis":     "Vitals are within expected ranges.",
		"entries":      len(h.store.Vitals(e.EncounterID)),
	})
}

type labResultsRequest struct {
	Metrics encounter.Metrics `json:"metrics"`
}

func (h *handlers) addLabResults(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	var req labResultsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Metrics) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "metrics are required")
	}
	return c.JSON(http.StatusCreated, h.store.AddLabResults(e.EncounterID, req.Metrics))
}

func (h *handlers) listLabResults(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	results := h.store.LabResults(e.EncounterID)
	if results == nil {
		results = []encounter.LabResults{}
	}
	return c.JSON(http.StatusOK, results)
}

func (h *handlers) uploadMedia(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form required")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no files uploaded")
	}
	var out []encounter.MediaFile
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "reading upload")
		}
		body, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "reading upload")
		}
		mime := fh.Header.Get("Content-Type")
		if mime == "" {
			mime = "application/octet-stream"
		}
		out = append(out, h.store.AddMedia(e.EncounterID, fh.Filename, mime, body))
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *handlers) listMedia(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	media := h.store.Media(e.EncounterID)
	if media == nil {
		media = []encounter.MediaFile{}
	}
	return c.JSON(http.StatusOK, media)
}

func (h *handlers) fetchMedia(c echo.Context) error {
	if _, err := h.encounterFromParam(c); err != nil {
		return err
	}
	fileID, err := uuid.Parse(c.Param("fileID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid file id")
	}
	body, mime, ok := h.store.MediaBody(fileID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "File not found")
	}
	return c.Blob(http.StatusOK, mime, body)
}

func (h *handlers) createReport(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	if _, exists := h.store.Report(e.EncounterID); exists {
		return echo.NewHTTPError(http.StatusBadRequest, "Summary report already exists")
	}
	var in report.CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.Status == "" {
		in.Status = report.StatusGenerated
	}
	r := h.store.PutReport(report.Report{
		EncounterID: e.EncounterID,
		Status:      in.Status,
		Priority:    in.Priority,
		Content:     in.Content,
	})
	return c.JSON(http.StatusCreated, r)
}

func (h *handlers) getReport(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	r, ok := h.store.Report(e.EncounterID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Summary report not found")
	}
	return c.JSON(http.StatusOK, r)
}

func (h *handlers) updateReport(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	r, ok := h.store.Report(e.EncounterID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Summary report not found")
	}
	var in report.UpdateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.Status != "" && in.Status != r.Status {
		if !report.CanAdvance(r.Status, in.Status) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status transition")
		}
		r.Status = in.Status
	}
	if in.Priority != "" {
		r.Priority = in.Priority
	}
	if in.Content != nil {
		r.Content = *in.Content
	}
	return c.JSON(http.StatusOK, h.store.PutReport(r))
}

type symptomsUpdate struct {
	Symptoms string `json:"symptoms"`
}

func (h *handlers) updateReportSymptoms(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	r, ok := h.store.Report(e.EncounterID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Summary report not found")
	}
	var req symptomsUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r.Content.Symptoms = req.Symptoms
	return c.JSON(http.StatusOK, h.store.PutReport(r))
}

// translateReport echoes the content back as its own translation. The
// sandbox carries no translation model.
func (h *handlers) translateReport(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	r, ok := h.store.Report(e.EncounterID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Summary report not found")
	}
	return c.JSON(http.StatusOK, report.Translation{
		TranslatedContent: r.Content,
		OriginalContent:   r.Content,
	})
}

// generateSummary stands in for the AI pipeline with a fixed draft.
func (h *handlers) generateSummary(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	r, ok := h.store.Report(e.EncounterID)
	if !ok {
		r = h.store.PutReport(report.Report{
			EncounterID: e.EncounterID,
			Status:      report.StatusGenerated,
			Priority:    report.PriorityMedium,
			Content: report.Content{
				Symptoms:  "Patient reports general discomfort.",
				Diagnosis: "Pending clinical review.",
				Treatment: "Rest and hydration.",
				NextSteps: "Follow up in one week.",
			},
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"encounter_id": e.EncounterID,
		"report":       r,
	})
}

type voiceRequest struct {
	EncounterID *uuid.UUID `json:"encounter_id,omitempty"`
	AudioBase64 string     `json:"audio_base64"`
}

func decodeAudio(c echo.Context) ([]byte, error) {
	var req voiceRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	audio, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil || len(audio) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "audio_base64 is required")
	}
	return audio, nil
}

func (h *handlers) transcribe(c echo.Context) error {
	if _, err := decodeAudio(c); err != nil {
		return err
	}
	conf := 0.92
	return c.JSON(http.StatusOK, encounter.Transcription{
		TranscribedText: "Patient describes mild headache for two days.",
		Confidence:      &conf,
	})
}

func (h *handlers) processVoice(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	if _, err := decodeAudio(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"encounter_id":     e.EncounterID,
		"transcribed_text": "Patient describes mild headache for two days.",
		"extracted_fields": map[string]string{
			"symptoms": "Mild headache, two days",
		},
	})
}

type extractRequest struct {
	Transcript string `json:"transcript"`
}

func (h *handlers) extractReportFields(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	var req extractRequest
	if err := c.Bind(&req); err != nil || req.Transcript == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "transcript is required")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"encounter_id": e.EncounterID,
		"fields": map[string]string{
			"symptoms": req.Transcript,
		},
	})
}

type labOrderRequest struct {
	LabID        uuid.UUID `json:"lab_id"`
	Instructions string    `json:"instructions"`
}

func (h *handlers) createLabOrder(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	var req labOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Instructions == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "instructions are required")
	}
	if _, ok := h.store.LabProfile(req.LabID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Lab not found")
	}
	o := h.store.CreateLabOrder(orders.LabOrder{
		EncounterID:  e.EncounterID,
		LabID:        req.LabID,
		Instructions: req.Instructions,
	})
	return c.JSON(http.StatusCreated, o)
}

type prescriptionRequest struct {
	PharmacyID   uuid.UUID `json:"pharmacy_id"`
	Instructions string    `json:"instructions"`
}

func (h *handlers) createPrescription(c echo.Context) error {
	e, err := h.encounterFromParam(c)
	if err != nil {
		return err
	}
	var req prescriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Instructions == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "instructions are required")
	}
	if _, ok := h.store.PharmacyProfile(req.PharmacyID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Pharmacy not found")
	}
	p := h.store.CreatePrescription(orders.Prescription{
		EncounterID:  e.EncounterID,
		PharmacyID:   req.PharmacyID,
		Instructions: req.Instructions,
	})
	return c.JSON(http.StatusCreated, p)
}

// interviewQuestions is the canned symptom interview. The production
// backend generates these dynamically; the sandbox walks a fixed script
// and summarizes the answers.
var interviewQuestions = []string{
	"What symptom is bothering you the most right now?",
	"When did it start, and has it changed since?",
	"How severe is it on a scale of one to ten?",
	"Have you taken anything for it, or does anything make it better?",
}

func (h *handlers) healthAssistantInterview(c echo.Context) error {
	var req struct {
		ConversationHistory []encounter.InterviewMessage `json:"conversation_history"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var answers []string
	for _, m := range req.ConversationHistory {
		if m.Role == "user" {
			answers = append(answers, m.Content)
		}
	}
	if len(answers) >= len(interviewQuestions) {
		return c.JSON(http.StatusOK, encounter.InterviewStep{
			IsComplete: true,
			Summary:    "Patient reports: " + strings.Join(answers, " "),
		})
	}
	return c.JSON(http.StatusOK, encounter.InterviewStep{
		NextQuestion: interviewQuestions[len(answers)],
	})
}
