package sandbox

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthbridge/healthbridge/internal/domain/admin"
	"github.com/healthbridge/healthbridge/internal/domain/identity"
)

func (h *handlers) adminCreateDoctor(c echo.Context) error {
	var in admin.DoctorInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.Email == "" || in.Phone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and phone are required")
	}
	u := h.store.CreateUser(in.Email, in.Phone, identity.RoleDoctor)
	d := identity.DoctorProfile{
		UserID:         u.UserID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		HospitalName:   in.HospitalName,
		Specialty:      in.Specialty,
		Degree:         in.Degree,
		LastDegreeYear: in.LastDegreeYear,
		CreatedAt:      time.Now().UTC(),
	}
	h.store.PutDoctorProfile(d)
	return c.JSON(http.StatusCreated, d)
}

func (h *handlers) adminCreateLab(c echo.Context) error {
	var in admin.BusinessInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.BusinessName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "business_name is required")
	}
	u := h.store.CreateUser(in.Email, in.Phone, identity.RoleLab)
	l := identity.LabProfile{
		UserID:       u.UserID,
		BusinessName: in.BusinessName,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		LicenseYear:  in.LicenseYear,
		CreatedAt:    time.Now().UTC(),
	}
	h.store.PutLabProfile(l)
	return c.JSON(http.StatusCreated, l)
}

func (h *handlers) adminCreatePharmacy(c echo.Context) error {
	var in admin.BusinessInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.BusinessName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "business_name is required")
	}
	u := h.store.CreateUser(in.Email, in.Phone, identity.RolePharmacy)
	p := identity.PharmacyProfile{
		UserID:       u.UserID,
		BusinessName: in.BusinessName,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		LicenseYear:  in.LicenseYear,
		CreatedAt:    time.Now().UTC(),
	}
	h.store.PutPharmacyProfile(p)
	return c.JSON(http.StatusCreated, p)
}

func (h *handlers) adminUsers(c echo.Context) error {
	role := identity.Role(c.QueryParam("role"))
	if role != "" && !role.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}
	users := h.store.UsersByRole(role)
	if users == nil {
		users = []identity.User{}
	}
	return c.JSON(http.StatusOK, users)
}

func (h *handlers) adminDeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if !h.store.DeleteUser(id) {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handlers) adminActivateUser(c echo.Context) error {
	return h.setUserActive(c, true)
}

func (h *handlers) adminDeactivateUser(c echo.Context) error {
	return h.setUserActive(c, false)
}

func (h *handlers) setUserActive(c echo.Context, active bool) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	u, ok := h.store.SetUserActive(id, active)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *handlers) adminStats(c echo.Context) error {
	pending, reviewed := h.store.ReportCounts()
	return c.JSON(http.StatusOK, admin.SystemStats{
		TotalPatients:   len(h.store.UsersByRole(identity.RolePatient)),
		TotalDoctors:    len(h.store.UsersByRole(identity.RoleDoctor)),
		TotalLabs:       len(h.store.UsersByRole(identity.RoleLab)),
		TotalPharmacies: len(h.store.UsersByRole(identity.RolePharmacy)),
		TotalEncounters: h.store.EncounterCount(),
		PendingReports:  pending,
		ReviewedReports: reviewed,
	})
}

func (h *handlers) adminDoctors(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Doctors())
}

func (h *handlers) adminLabs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Labs())
}

func (h *handlers) adminPharmacies(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Pharmacies())
}

func auditFilterFromQuery(c echo.Context) (match func(admin.AuditLog) bool, limit, offset int) {
	var userID uuid.UUID
	if raw := c.QueryParam("user_id"); raw != "" {
		userID, _ = uuid.Parse(raw)
	}
	action := c.QueryParam("action")
	resourceType := c.QueryParam("resource_type")
	limit = 100
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			offset = n
		}
	}
	match = func(e admin.AuditLog) bool {
		if userID != uuid.Nil && e.UserID != userID {
			return false
		}
		if action != "" && string(e.Action) != action {
			return false
		}
		if resourceType != "" && e.ResourceType != resourceType {
			return false
		}
		return true
	}
	return match, limit, offset
}

func page(logs []admin.AuditLog, limit, offset int) []admin.AuditLog {
	if offset >= len(logs) {
		return []admin.AuditLog{}
	}
	logs = logs[offset:]
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs
}

func (h *handlers) auditLogs(c echo.Context) error {
	match, limit, offset := auditFilterFromQuery(c)
	var out []admin.AuditLog
	for _, e := range h.store.AuditLogs() {
		if match(e) {
			out = append(out, e)
		}
	}
	return c.JSON(http.StatusOK, page(out, limit, offset))
}

func (h *handlers) resourceAuditLogs(c echo.Context) error {
	resourceID, err := uuid.Parse(c.Param("resourceID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid resource id")
	}
	resourceType := strings.ToUpper(c.Param("resourceType"))
	var out []admin.AuditLog
	for _, e := range h.store.AuditLogs() {
		if e.ResourceType == resourceType && e.ResourceID != nil && *e.ResourceID == resourceID {
			out = append(out, e)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *handlers) myAuditLogs(c echo.Context) error {
	me := currentUser(c).UserID
	match, limit, offset := auditFilterFromQuery(c)
	var out []admin.AuditLog
	for _, e := range h.store.AuditLogs() {
		if e.UserID == me && match(e) {
			out = append(out, e)
		}
	}
	return c.JSON(http.StatusOK, page(out, limit, offset))
}

func (h *handlers) auditStats(c echo.Context) error {
	logs := h.store.AuditLogs()
	now := time.Now().UTC()
	stats := struct {
		TotalLogs    int              `json:"total_logs"`
		LogsLast24h  int              `json:"logs_last_24h"`
		LogsLast7d   int              `json:"logs_last_7d"`
		TopActions   []map[string]any `json:"top_actions"`
		TopUsers     []map[string]any `json:"top_users"`
		TopResources []map[string]any `json:"top_resources"`
	}{TotalLogs: len(logs)}

	actionCounts := map[admin.AuditAction]int{}
	userCounts := map[uuid.UUID]int{}
	resourceCounts := map[string]int{}
	for _, e := range logs {
		if now.Sub(e.Timestamp) <= 24*time.Hour {
			stats.LogsLast24h++
		}
		if now.Sub(e.Timestamp) <= 7*24*time.Hour {
			stats.LogsLast7d++
		}
		actionCounts[e.Action]++
		userCounts[e.UserID]++
		if e.ResourceType != "" {
			resourceCounts[e.ResourceType]++
		}
	}
	for action, count := range actionCounts {
		stats.TopActions = append(stats.TopActions, map[string]any{"action": action, "count": count})
	}
	for userID, count := range userCounts {
		stats.TopUsers = append(stats.TopUsers, map[string]any{"user_id": userID, "count": count})
	}
	for resource, count := range resourceCounts {
		stats.TopResources = append(stats.TopResources, map[string]any{"resource_type": resource, "count": count})
	}
	return c.JSON(http.StatusOK, stats)
}
