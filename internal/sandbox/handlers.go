package sandbox

import (
	"github.com/labstack/echo/v4"

	"github.com/healthbridge/healthbridge/internal/domain/identity"
)

type handlers struct {
	store *Store
	auth  *authenticator
}

func (h *handlers) register(e *echo.Echo) {
	e.POST("/api/auth/phone/send-code", h.sendCode)
	e.POST("/api/auth/phone/verify", h.verifyCode)

	authed := h.auth.middleware(h.store)

	profile := e.Group("/api/profile", authed, requireRole(identity.RolePatient))
	profile.POST("/", h.createProfile)
	profile.GET("/", h.getProfile)
	profile.PATCH("/", h.updateProfile)
	profile.GET("/timeline", h.profileTimeline)
	profile.GET("/insights", h.profileInsights)

	enc := e.Group("/api/encounters", authed)
	enc.POST("/", h.createEncounter)
	enc.GET("/", h.listEncounters)
	enc.GET("/available-doctors", h.availableDoctors)
	enc.GET("/labs", h.availableLabs)
	enc.GET("/pharmacies", h.availablePharmacies)
	enc.POST("/voice/transcribe", h.transcribe)
	enc.GET("/:id", h.getEncounter)
	enc.PATCH("/:id/assign-doctor", h.assignDoctor)
	enc.POST("/:id/vitals", h.addVitals)
	enc.GET("/:id/vitals", h.listVitals)
	enc.GET("/:id/vitals-analysis", h.vitalsAnalysis)
	enc.POST("/:id/lab-results", h.addLabResults)
	enc.GET("/:id/lab-results", h.listLabResults)
	enc.POST("/:id/media", h.uploadMedia)
	enc.GET("/:id/media", h.listMedia)
	enc.GET("/:id/media/:fileID", h.fetchMedia)
	enc.POST("/:id/summary", h.createReport)
	enc.GET("/:id/summary", h.getReport)
	enc.PATCH("/:id/summary", h.updateReport)
	enc.PATCH("/:id/summary/symptoms", h.updateReportSymptoms)
	enc.GET("/:id/translate-summary", h.translateReport)
	enc.POST("/:id/generate-summary", h.generateSummary)
	enc.POST("/:id/process-voice", h.processVoice)
	enc.POST("/:id/extract-report-fields", h.extractReportFields)
	enc.POST("/:id/lab-orders", h.createLabOrder)
	enc.POST("/:id/prescriptions", h.createPrescription)

	doc := e.Group("/api/doctor", authed, requireRole(identity.RoleDoctor))
	doc.GET("/profile/", h.doctorProfile)
	doc.GET("/patients/my-patients", h.doctorMyPatients)
	doc.GET("/patients/search", h.doctorSearchPatients)
	doc.GET("/patients/:id", h.doctorPatient)
	doc.GET("/patients/:id/timeline", h.doctorPatientTimeline)
	doc.GET("/patients/:id/documents", h.doctorPatientDocuments)
	doc.GET("/reports/pending", h.doctorPendingReports)
	doc.GET("/reports/my-reviewed", h.doctorReviewedReports)
	doc.GET("/stats", h.doctorStats)

	lab := e.Group("/api/lab", authed, requireRole(identity.RoleLab))
	lab.GET("/orders", h.labOrders)
	lab.GET("/orders/:id", h.labOrder)
	lab.PATCH("/orders/:id", h.updateLabOrder)
	lab.GET("/orders/:id/patient-info", h.labOrderPatientInfo)
	lab.GET("/stats", h.labStats)
	lab.GET("/profile", h.labProfile)

	rx := e.Group("/api/pharmacy", authed, requireRole(identity.RolePharmacy))
	rx.GET("/prescriptions", h.prescriptions)
	rx.GET("/prescriptions/:id", h.prescription)
	rx.PATCH("/prescriptions/:id", h.updatePrescription)
	rx.GET("/prescriptions/:id/patient-info", h.prescriptionPatientInfo)
	rx.GET("/stats", h.pharmacyStats)
	rx.GET("/profile", h.pharmacyProfile)

	adm := e.Group("/api/admin", authed, requireRole(identity.RoleAdmin))
	adm.POST("/professionals/doctors", h.adminCreateDoctor)
	adm.POST("/professionals/labs", h.adminCreateLab)
	adm.POST("/professionals/pharmacies", h.adminCreatePharmacy)
	adm.GET("/users", h.adminUsers)
	adm.DELETE("/users/:id", h.adminDeleteUser)
	adm.PATCH("/users/:id/activate", h.adminActivateUser)
	adm.PATCH("/users/:id/deactivate", h.adminDeactivateUser)
	adm.GET("/stats", h.adminStats)
	adm.GET("/doctors", h.adminDoctors)
	adm.GET("/labs", h.adminLabs)
	adm.GET("/pharmacies", h.adminPharmacies)

	msg := e.Group("/api/messages", authed)
	msg.POST("/", h.sendMessage)
	msg.GET("/conversation/:otherID", h.conversation)
	msg.POST("/conversation/:otherID/mark-read", h.markConversationRead)
	msg.GET("/unread-count", h.unreadCount)
	msg.GET("/conversations", h.conversations)

	vc := e.Group("/api/video-consultations", authed)
	vc.POST("/", h.scheduleConsultation)
	vc.GET("/my-consultations", h.myConsultations)
	vc.GET("/stats/my-stats", h.consultationStats)
	vc.GET("/:id", h.getConsultation)
	vc.POST("/:id/join", h.joinConsultation)
	vc.POST("/:id/end", h.endConsultation)
	vc.POST("/:id/cancel", h.cancelConsultation)

	ref := e.Group("/api/referrals", authed)
	ref.POST("/", h.createReferral, requireRole(identity.RoleDoctor))
	ref.GET("/my-referrals-made", h.referralsMade, requireRole(identity.RoleDoctor))
	ref.GET("/my-referrals-received", h.referralsReceived, requireRole(identity.RoleDoctor))
	ref.GET("/my-referrals", h.myReferrals, requireRole(identity.RolePatient))
	ref.GET("/patient/:id", h.patientReferrals, requireRole(identity.RoleDoctor))
	ref.GET("/stats/summary", h.referralStats)
	ref.GET("/:id", h.getReferral)
	ref.PATCH("/:id/accept", h.acceptReferral, requireRole(identity.RoleDoctor))
	ref.PATCH("/:id/decline", h.declineReferral, requireRole(identity.RoleDoctor))
	ref.PATCH("/:id/link-appointment", h.linkReferralAppointment)
	ref.PATCH("/:id/complete", h.completeReferral, requireRole(identity.RoleDoctor))

	e.POST("/api/health-assistant/interview", h.healthAssistantInterview, authed, requireRole(identity.RolePatient))

	audit := e.Group("/api/audit", authed)
	audit.GET("/logs", h.auditLogs, requireRole(identity.RoleAdmin))
	audit.GET("/logs/resource/:resourceType/:resourceID", h.resourceAuditLogs, requireRole(identity.RoleAdmin))
	audit.GET("/stats", h.auditStats, requireRole(identity.RoleAdmin))
	audit.GET("/my-logs", h.myAuditLogs)
}
