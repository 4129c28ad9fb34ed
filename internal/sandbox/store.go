// Package sandbox is an in-memory stand-in for the production backend. It
// serves the same routes and payload shapes so the CLI and the client
// packages can run end to end on a laptop with no external services.
package sandbox

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healthbridge/healthbridge/internal/domain/admin"
	"github.com/healthbridge/healthbridge/internal/domain/encounter"
	"github.com/healthbridge/healthbridge/internal/domain/identity"
	"github.com/healthbridge/healthbridge/internal/domain/orders"
	"github.com/healthbridge/healthbridge/internal/domain/referral"
	"github.com/healthbridge/healthbridge/internal/domain/report"
	"github.com/healthbridge/healthbridge/internal/domain/video"
)

type storedMessage struct {
	MessageID   uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Content     string
	IsRead      bool
	CreatedAt   time.Time
}

// Store holds all sandbox state behind one mutex. Volume is tiny, so a
// single lock is simpler than per-collection locking.
type Store struct {
	mu sync.Mutex

	users      map[uuid.UUID]identity.User
	patients   map[uuid.UUID]identity.PatientProfile
	doctors    map[uuid.UUID]identity.DoctorProfile
	labs       map[uuid.UUID]identity.LabProfile
	pharmacies map[uuid.UUID]identity.PharmacyProfile
	byPhone    map[string]uuid.UUID

	encounters    map[uuid.UUID]encounter.Encounter
	vitals        map[uuid.UUID][]encounter.Vitals
	labResults    map[uuid.UUID][]encounter.LabResults
	media         map[uuid.UUID][]encounter.MediaFile
	mediaBody     map[uuid.UUID][]byte
	mediaMIME     map[uuid.UUID]string
	reports       map[uuid.UUID]report.Report
	labOrders     map[uuid.UUID]orders.LabOrder
	prescriptions map[uuid.UUID]orders.Prescription
	messages      []storedMessage
	consultations map[uuid.UUID]video.Consultation
	referrals     map[uuid.UUID]referral.Referral
	audits        []admin.AuditLog
}

func NewStore() *Store {
	return &Store{
		users:         make(map[uuid.UUID]identity.User),
		patients:      make(map[uuid.UUID]identity.PatientProfile),
		doctors:       make(map[uuid.UUID]identity.DoctorProfile),
		labs:          make(map[uuid.UUID]identity.LabProfile),
		pharmacies:    make(map[uuid.UUID]identity.PharmacyProfile),
		byPhone:       make(map[string]uuid.UUID),
		encounters:    make(map[uuid.UUID]encounter.Encounter),
		vitals:        make(map[uuid.UUID][]encounter.Vitals),
		labResults:    make(map[uuid.UUID][]encounter.LabResults),
		media:         make(map[uuid.UUID][]encounter.MediaFile),
		mediaBody:     make(map[uuid.UUID][]byte),
		mediaMIME:     make(map[uuid.UUID]string),
		reports:       make(map[uuid.UUID]report.Report),
		labOrders:     make(map[uuid.UUID]orders.LabOrder),
		prescriptions: make(map[uuid.UUID]orders.Prescription),
		consultations: make(map[uuid.UUID]video.Consultation),
		referrals:     make(map[uuid.UUID]referral.Referral),
	}
}

// Seed loads a small fixed roster so every portal has something to show
// right after boot.
func (s *Store) Seed() {
	degree := 2012
	doc := s.CreateUser("", "+91 98000 00001", identity.RoleDoctor)
	s.mu.Lock()
	s.doctors[doc.UserID] = identity.DoctorProfile{
		UserID:         doc.UserID,
		FirstName:      "Asha",
		LastName:       "Patel",
		Email:          "asha.patel@healthbridge.test",
		Phone:          doc.PhoneNumber,
		Address:        "12 Ring Road, Surat",
		HospitalName:   "Civil Hospital",
		Specialty:      "General Medicine",
		Degree:         "MD",
		LastDegreeYear: &degree,
		CreatedAt:      doc.CreatedAt,
	}
	s.mu.Unlock()

	lab := s.CreateUser("", "+91 98000 00002", identity.RoleLab)
	s.mu.Lock()
	s.labs[lab.UserID] = identity.LabProfile{
		UserID:       lab.UserID,
		BusinessName: "Sunrise Diagnostics",
		Email:        "lab@healthbridge.test",
		Phone:        lab.PhoneNumber,
		Address:      "4 Station Road, Surat",
		CreatedAt:    lab.CreatedAt,
	}
	s.mu.Unlock()

	rx := s.CreateUser("", "+91 98000 00003", identity.RolePharmacy)
	s.mu.Lock()
	s.pharmacies[rx.UserID] = identity.PharmacyProfile{
		UserID:       rx.UserID,
		BusinessName: "Apollo Pharmacy",
		Email:        "pharmacy@healthbridge.test",
		Phone:        rx.PhoneNumber,
		Address:      "9 Market Street, Surat",
		CreatedAt:    rx.CreatedAt,
	}
	s.mu.Unlock()

	s.CreateUser("admin@healthbridge.test", "+91 98000 00004", identity.RoleAdmin)
}

func (s *Store) CreateUser(email, phone string, role identity.Role) identity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := identity.User{
		UserID:      uuid.New(),
		Email:       email,
		PhoneNumber: phone,
		Role:        role,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	s.users[u.UserID] = u
	if phone != "" {
		s.byPhone[phone] = u.UserID
	}
	return u
}

// UserByPhone finds an existing account or registers a new patient. Phone
// login is the only self-service signup path.
func (s *Store) UserByPhone(phone string) identity.User {
	s.mu.Lock()
	id, ok := s.byPhone[phone]
	s.mu.Unlock()
	if ok {
		u, _ := s.User(id)
		return u
	}
	return s.CreateUser("", phone, identity.RolePatient)
}

func (s *Store) User(id uuid.UUID) (identity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *Store) SetUserActive(id uuid.UUID, active bool) (identity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return identity.User{}, false
	}
	u.IsActive = active
	now := time.Now().UTC()
	u.UpdatedAt = &now
	s.users[id] = u
	return u, true
}

func (s *Store) DeleteUser(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return false
	}
	delete(s.users, id)
	delete(s.byPhone, u.PhoneNumber)
	delete(s.patients, id)
	delete(s.doctors, id)
	delete(s.labs, id)
	delete(s.pharmacies, id)
	return true
}

func (s *Store) UsersByRole(role identity.Role) []identity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []identity.User
	for _, u := range s.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) PatientProfile(userID uuid.UUID) (identity.PatientProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients[userID]
	return p, ok
}

func (s *Store) PutPatientProfile(p identity.PatientProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patients[p.UserID] = p
}

func (s *Store) DoctorProfile(userID uuid.UUID) (identity.DoctorProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.doctors[userID]
	return d, ok
}

func (s *Store) PutDoctorProfile(d identity.DoctorProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doctors[d.UserID] = d
}

func (s *Store) LabProfile(userID uuid.UUID) (identity.LabProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.labs[userID]
	return l, ok
}

func (s *Store) PutLabProfile(l identity.LabProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labs[l.UserID] = l
}

func (s *Store) PharmacyProfile(userID uuid.UUID) (identity.PharmacyProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pharmacies[userID]
	return p, ok
}

func (s *Store) PutPharmacyProfile(p identity.PharmacyProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pharmacies[p.UserID] = p
}

func (s *Store) Doctors() []identity.DoctorProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]identity.DoctorProfile, 0, len(s.doctors))
	for _, d := range s.doctors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) Labs() []identity.LabProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]identity.LabProfile, 0, len(s.labs))
	for _, l := range s.labs {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) Pharmacies() []identity.PharmacyProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]identity.PharmacyProfile, 0, len(s.pharmacies))
	for _, p := range s.pharmacies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) CreateEncounter(e encounter.Encounter) encounter.Encounter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.EncounterID == uuid.Nil {
		e.EncounterID = uuid.New()
	}
	e.CreatedAt = time.Now().UTC()
	s.encounters[e.EncounterID] = e
	return e
}

func (s *Store) Encounter(id uuid.UUID) (encounter.Encounter, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.encounters[id]
	return e, ok
}

func (s *Store) PutEncounter(e encounter.Encounter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.encounters[e.EncounterID] = e
}

func (s *Store) EncountersByPatient(patientID uuid.UUID) []encounter.Encounter {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []encounter.Encounter
	for _, e := range s.encounters {
		if e.PatientID == patientID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) EncounterCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.encounters)
}

func (s *Store) AddVitals(encounterID uuid.UUID, in encounter.VitalsInput) encounter.Vitals {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := encounter.Vitals{
		VitalID:          uuid.New(),
		EncounterID:      encounterID,
		BloodPressureSys: in.BloodPressureSys,
		BloodPressureDia: in.BloodPressureDia,
		HeartRate:        in.HeartRate,
		OxygenLevel:      in.OxygenLevel,
		Weight:           in.Weight,
		Temperature:      in.Temperature,
		RecordedAt:       time.Now().UTC(),
	}
	s.vitals[encounterID] = append(s.vitals[encounterID], v)
	return v
}

func (s *Store) Vitals(encounterID uuid.UUID) []encounter.Vitals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]encounter.Vitals(nil), s.vitals[encounterID]...)
}

func (s *Store) AddLabResults(encounterID uuid.UUID, metrics encounter.Metrics) encounter.LabResults {
	s.mu.Lock()
	defer s.mu.Unlock()
	lr := encounter.LabResults{
		LogID:       uuid.New(),
		EncounterID: encounterID,
		Metrics:     metrics,
		RecordedAt:  time.Now().UTC(),
	}
	s.labResults[encounterID] = append(s.labResults[encounterID], lr)
	return lr
}

func (s *Store) LabResults(encounterID uuid.UUID) []encounter.LabResults {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]encounter.LabResults(nil), s.labResults[encounterID]...)
}

func (s *Store) AddMedia(encounterID uuid.UUID, filename, mime string, body []byte) encounter.MediaFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := encounter.MediaFile{
		FileID:      uuid.New(),
		EncounterID: encounterID,
		FileType:    fileType(filename),
		Filename:    filename,
		FilePath:    fmt.Sprintf("sandbox://%s/%s", encounterID, filename),
		FileSize:    int64(len(body)),
		UploadedAt:  time.Now().UTC(),
	}
	s.media[encounterID] = append(s.media[encounterID], f)
	s.mediaBody[f.FileID] = body
	s.mediaMIME[f.FileID] = mime
	return f
}

func (s *Store) Media(encounterID uuid.UUID) []encounter.MediaFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]encounter.MediaFile(nil), s.media[encounterID]...)
}

func (s *Store) MediaBody(fileID uuid.UUID) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.mediaBody[fileID]
	return body, s.mediaMIME[fileID], ok
}

func fileType(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".pdf"):
		return "document"
	case strings.HasSuffix(filename, ".png"), strings.HasSuffix(filename, ".jpg"), strings.HasSuffix(filename, ".jpeg"):
		return "image"
	case strings.HasSuffix(filename, ".m4a"), strings.HasSuffix(filename, ".wav"), strings.HasSuffix(filename, ".mp3"):
		return "audio"
	}
	return "other"
}

func (s *Store) Report(encounterID uuid.UUID) (report.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[encounterID]
	return r, ok
}

func (s *Store) PutReport(r report.Report) report.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ReportID == uuid.Nil {
		r.ReportID = uuid.New()
		r.CreatedAt = time.Now().UTC()
	} else {
		now := time.Now().UTC()
		r.UpdatedAt = &now
	}
	s.reports[r.EncounterID] = r
	return r
}

// ReportsByStatus returns reports whose encounter belongs to the doctor,
// filtered by status.
func (s *Store) ReportsByStatus(doctorID uuid.UUID, statuses ...report.Status) []report.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []report.Report
	for encID, r := range s.reports {
		e, ok := s.encounters[encID]
		if !ok || e.DoctorID == nil || *e.DoctorID != doctorID {
			continue
		}
		for _, st := range statuses {
			if r.Status == st {
				out = append(out, r)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) ReportCounts() (pending, reviewed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reports {
		switch r.Status {
		case report.StatusReviewed:
			reviewed++
		default:
			pending++
		}
	}
	return pending, reviewed
}

func (s *Store) CreateLabOrder(o orders.LabOrder) orders.LabOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.OrderID = uuid.New()
	o.Status = orders.StatusSent
	o.CreatedAt = time.Now().UTC()
	s.labOrders[o.OrderID] = o
	return o
}

func (s *Store) LabOrder(id uuid.UUID) (orders.LabOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.labOrders[id]
	return o, ok
}

func (s *Store) PutLabOrder(o orders.LabOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labOrders[o.OrderID] = o
}

func (s *Store) LabOrdersFor(labID uuid.UUID) []orders.LabOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []orders.LabOrder
	for _, o := range s.labOrders {
		if o.LabID == labID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) LabOrdersByEncounter(encounterID uuid.UUID) []orders.LabOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []orders.LabOrder
	for _, o := range s.labOrders {
		if o.EncounterID == encounterID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) CreatePrescription(p orders.Prescription) orders.Prescription {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.PrescriptionID = uuid.New()
	p.Status = orders.StatusSent
	p.CreatedAt = time.Now().UTC()
	s.prescriptions[p.PrescriptionID] = p
	return p
}

func (s *Store) Prescription(id uuid.UUID) (orders.Prescription, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.prescriptions[id]
	return p, ok
}

func (s *Store) PutPrescription(p orders.Prescription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prescriptions[p.PrescriptionID] = p
}

func (s *Store) PrescriptionsFor(pharmacyID uuid.UUID) []orders.Prescription {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []orders.Prescription
	for _, p := range s.prescriptions {
		if p.PharmacyID == pharmacyID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) PrescriptionsByEncounter(encounterID uuid.UUID) []orders.Prescription {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []orders.Prescription
	for _, p := range s.prescriptions {
		if p.EncounterID == encounterID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) AddMessage(senderID, recipientID uuid.UUID, content string) storedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := storedMessage{
		MessageID:   uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   time.Now().UTC(),
	}
	s.messages = append(s.messages, m)
	return m
}

// ConversationBetween returns the newest limit messages between two users,
// oldest first.
func (s *Store) ConversationBetween(a, b uuid.UUID, limit int) []storedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []storedMessage
	for _, m := range s.messages {
		if (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a) {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

func (s *Store) MarkConversationRead(recipientID, senderID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.messages {
		if m.SenderID == senderID && m.RecipientID == recipientID {
			s.messages[i].IsRead = true
		}
	}
}

func (s *Store) UnreadFor(recipientID uuid.UUID) []storedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []storedMessage
	for _, m := range s.messages {
		if m.RecipientID == recipientID && !m.IsRead {
			out = append(out, m)
		}
	}
	return out
}

func (s *Store) MessagesInvolving(userID uuid.UUID) []storedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []storedMessage
	for _, m := range s.messages {
		if m.SenderID == userID || m.RecipientID == userID {
			out = append(out, m)
		}
	}
	return out
}

func (s *Store) CreateConsultation(c video.Consultation) video.Consultation {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ConsultationID = uuid.New()
	c.CreatedAt = time.Now().UTC()
	s.consultations[c.ConsultationID] = c
	return c
}

func (s *Store) Consultation(id uuid.UUID) (video.Consultation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.consultations[id]
	return c, ok
}

func (s *Store) PutConsultation(c video.Consultation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	c.UpdatedAt = &now
	s.consultations[c.ConsultationID] = c
}

func (s *Store) ConsultationsFor(userID uuid.UUID) []video.Consultation {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []video.Consultation
	for _, c := range s.consultations {
		if c.PatientID == userID || (c.DoctorID != nil && *c.DoctorID == userID) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledStartTime.Before(out[j].ScheduledStartTime)
	})
	return out
}

func (s *Store) CreateReferral(r referral.Referral) referral.Referral {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ReferralID = uuid.New()
	r.Status = referral.StatusPending
	r.CreatedAt = time.Now().UTC()
	s.referrals[r.ReferralID] = r
	return r
}

func (s *Store) Referral(id uuid.UUID) (referral.Referral, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.referrals[id]
	return r, ok
}

func (s *Store) PutReferral(r referral.Referral) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	r.UpdatedAt = &now
	s.referrals[r.ReferralID] = r
}

// ReferralsWhere returns matching referrals, newest first.
func (s *Store) ReferralsWhere(match func(referral.Referral) bool) []referral.Referral {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []referral.Referral
	for _, r := range s.referrals {
		if match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) RecordAudit(e admin.AuditLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.LogID = uuid.New()
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	s.audits = append(s.audits, e)
}

// AuditLogs returns a copy of the trail, newest first.
func (s *Store) AuditLogs() []admin.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]admin.AuditLog, len(s.audits))
	copy(out, s.audits)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}
