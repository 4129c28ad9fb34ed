package sandbox

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthbridge/healthbridge/internal/domain/identity"
)

type sendCodeRequest struct {
	PhoneNumber string `json:"phone_number"`
}

func (h *handlers) sendCode(c echo.Context) error {
	var req sendCodeRequest
	if err := c.Bind(&req); err != nil || req.PhoneNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phone_number is required")
	}
	// No SMS leaves the sandbox. Any phone verifies with the dev code.
	return c.JSON(http.StatusOK, map[string]string{"message": "Verification code sent"})
}

type verifyCodeRequest struct {
	PhoneNumber      string `json:"phone_number"`
	VerificationCode string `json:"verification_code"`
}

func (h *handlers) verifyCode(c echo.Context) error {
	var req verifyCodeRequest
	if err := c.Bind(&req); err != nil || req.PhoneNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phone_number is required")
	}
	if req.VerificationCode != DevVerificationCode {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid verification code")
	}
	u := h.store.UserByPhone(req.PhoneNumber)
	if !u.IsActive {
		return echo.NewHTTPError(http.StatusForbidden, "Account is deactivated")
	}
	token, err := h.auth.issue(u)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "issuing token")
	}
	return c.JSON(http.StatusOK, identity.Token{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      u.UserID,
		Role:        u.Role,
	})
}

func (h *handlers) createProfile(c echo.Context) error {
	u := currentUser(c)
	if _, exists := h.store.PatientProfile(u.UserID); exists {
		return echo.NewHTTPError(http.StatusBadRequest, "Profile already exists")
	}
	var in identity.PatientProfileInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.FirstName == "" || in.LastName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "first_name and last_name are required")
	}
	p := identity.PatientProfile{
		UserID:              u.UserID,
		FirstName:           in.FirstName,
		LastName:            in.LastName,
		DateOfBirth:         in.DateOfBirth,
		Gender:              in.Gender,
		GeneralHealthIssues: in.GeneralHealthIssues,
		PrimaryDoctorID:     in.PrimaryDoctorID,
		Notes:               in.Notes,
		CreatedAt:           time.Now().UTC(),
	}
	h.fillPrimaryDoctorName(&p)
	h.store.PutPatientProfile(p)
	return c.JSON(http.StatusCreated, p)
}

func (h *handlers) getProfile(c echo.Context) error {
	p, ok := h.store.PatientProfile(currentUser(c).UserID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *handlers) updateProfile(c echo.Context) error {
	p, ok := h.store.PatientProfile(currentUser(c).UserID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
	}
	var in identity.PatientProfileInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.FirstName != "" {
		p.FirstName = in.FirstName
	}
	if in.LastName != "" {
		p.LastName = in.LastName
	}
	if in.DateOfBirth != "" {
		p.DateOfBirth = in.DateOfBirth
	}
	if in.Gender != "" {
		p.Gender = in.Gender
	}
	if in.GeneralHealthIssues != "" {
		p.GeneralHealthIssues = in.GeneralHealthIssues
	}
	if in.PrimaryDoctorID != nil {
		p.PrimaryDoctorID = in.PrimaryDoctorID
		h.fillPrimaryDoctorName(&p)
	}
	if in.Notes != "" {
		p.Notes = in.Notes
	}
	now := time.Now().UTC()
	p.UpdatedAt = &now
	h.store.PutPatientProfile(p)
	return c.JSON(http.StatusOK, p)
}

func (h *handlers) fillPrimaryDoctorName(p *identity.PatientProfile) {
	if p.PrimaryDoctorID == nil {
		return
	}
	if d, ok := h.store.DoctorProfile(*p.PrimaryDoctorID); ok {
		p.PrimaryDoctorName = d.FullName()
	}
}

// profileTimeline mirrors the production aggregation shape without the
// analytics behind it.
func (h *handlers) profileTimeline(c echo.Context) error {
	u := currentUser(c)
	encs := h.store.EncountersByPatient(u.UserID)
	items := make([]map[string]any, 0, len(encs))
	for _, e := range encs {
		items = append(items, map[string]any{
			"encounter_id":   e.EncounterID,
			"encounter_type": e.Type,
			"created_at":     e.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"timeline": items})
}

func (h *handlers) profileInsights(c echo.Context) error {
	u := currentUser(c)
	return c.JSON(http.StatusOK, map[string]any{
		"total_encounters": len(h.store.EncountersByPatient(u.UserID)),
		"insights":         []string{"Keep logging your vitals regularly."},
	})
}
