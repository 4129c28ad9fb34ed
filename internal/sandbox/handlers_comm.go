package sandbox

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthbridge/healthbridge/internal/domain/encounter"
	"github.com/healthbridge/healthbridge/internal/domain/messaging"
	"github.com/healthbridge/healthbridge/internal/domain/video"
)

// Every consultation hangs off its own remote-consult encounter.
func encounterForConsultation(patientID, doctorID uuid.UUID) encounter.Encounter {
	return encounter.Encounter{
		PatientID: patientID,
		DoctorID:  &doctorID,
		Type:      encounter.TypeRemoteConsult,
	}
}

// displayName resolves a user's human-readable name across the profile
// tables.
func (h *handlers) displayName(userID uuid.UUID) string {
	if p, ok := h.store.PatientProfile(userID); ok {
		return p.FullName()
	}
	if d, ok := h.store.DoctorProfile(userID); ok {
		return d.FullName()
	}
	if l, ok := h.store.LabProfile(userID); ok {
		return l.BusinessName
	}
	if p, ok := h.store.PharmacyProfile(userID); ok {
		return p.BusinessName
	}
	if u, ok := h.store.User(userID); ok {
		if u.Email != "" {
			return u.Email
		}
		return u.PhoneNumber
	}
	return "Unknown"
}

func (h *handlers) messageResponse(m storedMessage) messaging.Message {
	return messaging.Message{
		MessageID:     m.MessageID,
		SenderID:      m.SenderID,
		RecipientID:   m.RecipientID,
		SenderName:    h.displayName(m.SenderID),
		RecipientName: h.displayName(m.RecipientID),
		Content:       m.Content,
		IsRead:        m.IsRead,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
}

type sendMessageRequest struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Content     string    `json:"content"`
}

func (h *handlers) sendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Content) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}
	if _, ok := h.store.User(req.RecipientID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Recipient not found")
	}
	m := h.store.AddMessage(currentUser(c).UserID, req.RecipientID, req.Content)
	return c.JSON(http.StatusOK, h.messageResponse(m))
}

func (h *handlers) conversation(c echo.Context) error {
	otherID, err := uuid.Parse(c.Param("otherID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if _, ok := h.store.User(otherID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	msgs := h.store.ConversationBetween(currentUser(c).UserID, otherID, limit)
	out := make([]messaging.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, h.messageResponse(m))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *handlers) markConversationRead(c echo.Context) error {
	otherID, err := uuid.Parse(c.Param("otherID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	h.store.MarkConversationRead(currentUser(c).UserID, otherID)
	return c.JSON(http.StatusOK, map[string]string{"message": "Conversation marked as read"})
}

func (h *handlers) unreadCount(c echo.Context) error {
	unread := h.store.UnreadFor(currentUser(c).UserID)
	bySender := make(map[uuid.UUID]int)
	for _, m := range unread {
		bySender[m.SenderID]++
	}
	byUser := make([]messaging.UnreadByUser, 0, len(bySender))
	for senderID, n := range bySender {
		role := ""
		if u, ok := h.store.User(senderID); ok {
			role = string(u.Role)
		}
		byUser = append(byUser, messaging.UnreadByUser{
			UserID:      senderID,
			UserName:    h.displayName(senderID),
			UserRole:    role,
			UnreadCount: n,
		})
	}
	return c.JSON(http.StatusOK, messaging.UnreadCount{
		TotalUnread:  len(unread),
		UnreadByUser: byUser,
	})
}

func (h *handlers) conversations(c echo.Context) error {
	me := currentUser(c).UserID
	latest := make(map[uuid.UUID]storedMessage)
	unread := make(map[uuid.UUID]int)
	for _, m := range h.store.MessagesInvolving(me) {
		other := m.SenderID
		if other == me {
			other = m.RecipientID
		}
		if prev, ok := latest[other]; !ok || m.CreatedAt.After(prev.CreatedAt) {
			latest[other] = m
		}
		if m.RecipientID == me && !m.IsRead {
			unread[m.SenderID]++
		}
	}
	out := make([]messaging.ConversationSummary, 0, len(latest))
	for other, m := range latest {
		role := ""
		if u, ok := h.store.User(other); ok {
			role = string(u.Role)
		}
		out = append(out, messaging.ConversationSummary{
			UserID:          other,
			UserName:        h.displayName(other),
			UserRole:        role,
			LastMessage:     m.Content,
			LastMessageTime: m.CreatedAt.Format(time.RFC3339),
			UnreadCount:     unread[other],
		})
	}
	// Most recent conversation first.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].LastMessageTime > out[i].LastMessageTime {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return c.JSON(http.StatusOK, out)
}

// -- Video consultations --

func (h *handlers) scheduleConsultation(c echo.Context) error {
	var in video.ScheduleInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.DoctorID == uuid.Nil || in.ScheduledStartTime.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "doctor_id and scheduled_start_time are required")
	}
	if _, ok := h.store.DoctorProfile(in.DoctorID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	}
	duration := in.DurationMinutes
	if duration == 0 {
		duration = video.DefaultDurationMinutes
	}
	if duration < video.MinDurationMinutes || duration > video.MaxDurationMinutes {
		return echo.NewHTTPError(http.StatusBadRequest, "duration_minutes out of range")
	}
	patientID := currentUser(c).UserID
	enc := h.store.CreateEncounter(encounterForConsultation(patientID, in.DoctorID))
	end := in.ScheduledStartTime.Add(time.Duration(duration) * time.Minute)
	consult := h.store.CreateConsultation(video.Consultation{
		EncounterID:        enc.EncounterID,
		PatientID:          patientID,
		DoctorID:           &in.DoctorID,
		ScheduledStartTime: in.ScheduledStartTime,
		ScheduledEndTime:   &end,
		DurationMinutes:    duration,
		Status:             video.StatusScheduled,
		PatientNotes:       in.PatientNotes,
	})
	consult.ChannelName = "consult-" + consult.ConsultationID.String()[:8]
	h.store.PutConsultation(consult)
	return c.JSON(http.StatusCreated, consult)
}

func (h *handlers) myConsultations(c echo.Context) error {
	upcomingOnly := c.QueryParam("upcoming_only") == "true"
	all := h.store.ConsultationsFor(currentUser(c).UserID)
	out := make([]video.ListItem, 0, len(all))
	now := time.Now()
	for _, consult := range all {
		if upcomingOnly {
			if consult.Status == video.StatusCompleted || consult.Status == video.StatusCancelled {
				continue
			}
			if consult.ScheduledStartTime.Before(now) {
				continue
			}
		}
		item := video.ListItem{
			ConsultationID:     consult.ConsultationID,
			EncounterID:        consult.EncounterID,
			ScheduledStartTime: consult.ScheduledStartTime,
			DurationMinutes:    consult.DurationMinutes,
			Status:             consult.Status,
			DoctorID:           consult.DoctorID,
			PatientNotes:       consult.PatientNotes,
			CreatedAt:          consult.CreatedAt,
		}
		if consult.DoctorID != nil {
			item.DoctorName = h.displayName(*consult.DoctorID)
		}
		out = append(out, item)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *handlers) consultationFromParam(c echo.Context) (video.Consultation, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return video.Consultation{}, echo.NewHTTPError(http.StatusBadRequest, "invalid consultation id")
	}
	consult, ok := h.store.Consultation(id)
	if !ok {
		return video.Consultation{}, echo.NewHTTPError(http.StatusNotFound, "Consultation not found")
	}
	return consult, nil
}

func (h *handlers) getConsultation(c echo.Context) error {
	consult, err := h.consultationFromParam(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, consult)
}

type joinConsultationRequest struct {
	UserType string `json:"user_type"`
}

func (h *handlers) joinConsultation(c echo.Context) error {
	consult, err := h.consultationFromParam(c)
	if err != nil {
		return err
	}
	var req joinConsultationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if consult.Status == video.StatusCompleted || consult.Status == video.StatusCancelled {
		return echo.NewHTTPError(http.StatusBadRequest, "Consultation is no longer joinable")
	}
	now := time.Now().UTC()
	switch req.UserType {
	case "patient":
		consult.PatientJoinedAt = &now
	case "doctor":
		consult.DoctorJoinedAt = &now
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "user_type must be patient or doctor")
	}
	if consult.PatientJoinedAt != nil && consult.DoctorJoinedAt != nil {
		consult.Status = video.StatusInProgress
		if consult.ActualStartTime == nil {
			consult.ActualStartTime = &now
		}
	} else {
		consult.Status = video.StatusWaiting
	}
	h.store.PutConsultation(consult)
	return c.JSON(http.StatusOK, video.CallCredentials{
		AppID:          "sandbox",
		ChannelName:    consult.ChannelName,
		Token:          uuid.NewString(),
		UID:            int(now.Unix() % 100000),
		ConsultationID: consult.ConsultationID,
	})
}

func (h *handlers) endConsultation(c echo.Context) error {
	consult, err := h.consultationFromParam(c)
	if err != nil {
		return err
	}
	if consult.Status == video.StatusCancelled {
		return echo.NewHTTPError(http.StatusBadRequest, "Consultation was cancelled")
	}
	now := time.Now().UTC()
	consult.Status = video.StatusCompleted
	consult.ActualEndTime = &now
	h.store.PutConsultation(consult)
	return c.JSON(http.StatusOK, consult)
}

type cancelConsultationRequest struct {
	CancellationReason string `json:"cancellation_reason"`
}

func (h *handlers) cancelConsultation(c echo.Context) error {
	consult, err := h.consultationFromParam(c)
	if err != nil {
		return err
	}
	var req cancelConsultationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.CancellationReason) < 10 {
		return echo.NewHTTPError(http.StatusBadRequest, "cancellation_reason must be at least 10 characters")
	}
	if consult.Status == video.StatusCompleted {
		return echo.NewHTTPError(http.StatusBadRequest, "Consultation already completed")
	}
	consult.Status = video.StatusCancelled
	consult.CancellationReason = req.CancellationReason
	h.store.PutConsultation(consult)
	return c.JSON(http.StatusOK, consult)
}

func (h *handlers) consultationStats(c echo.Context) error {
	all := h.store.ConsultationsFor(currentUser(c).UserID)
	var stats video.Stats
	var totalMinutes, completedWithTimes int
	now := time.Now()
	for _, consult := range all {
		switch consult.Status {
		case video.StatusScheduled, video.StatusWaiting:
			stats.TotalScheduled++
			if consult.ScheduledStartTime.After(now) {
				stats.UpcomingCount++
			}
		case video.StatusCompleted:
			stats.TotalCompleted++
			if consult.ActualStartTime != nil && consult.ActualEndTime != nil {
				totalMinutes += int(consult.ActualEndTime.Sub(*consult.ActualStartTime).Minutes())
				completedWithTimes++
			}
		case video.StatusCancelled:
			stats.TotalCancelled++
		}
	}
	if completedWithTimes > 0 {
		avg := float64(totalMinutes) / float64(completedWithTimes)
		stats.AverageDurationMinutes = &avg
	}
	return c.JSON(http.StatusOK, stats)
}
