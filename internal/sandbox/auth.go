package sandbox

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthbridge/healthbridge/internal/domain/admin"
	"github.com/healthbridge/healthbridge/internal/domain/identity"
)

// DevVerificationCode is accepted for every phone number. The sandbox
// never sends SMS.
const DevVerificationCode = "000000"

const tokenTTL = 24 * time.Hour

type claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type authenticator struct {
	secret []byte
}

func (a *authenticator) issue(u identity.User) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		Role: string(u.Role),
	})
	return tok.SignedString(a.secret)
}

func (a *authenticator) parse(raw string) (uuid.UUID, identity.Role, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, "", fmt.Errorf("invalid token")
	}
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid token subject")
	}
	return id, identity.Role(c.Role), nil
}

// middleware authenticates the bearer token and stashes the user on the
// echo context. Inactive accounts are rejected even with a valid token.
func (a *authenticator) middleware(store *Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			id, _, err := a.parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
			}
			u, found := store.User(id)
			if !found {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}
			if !u.IsActive {
				return echo.NewHTTPError(http.StatusForbidden, "Account is deactivated")
			}
			c.Set("user", u)
			recordAccess(store, u, c)
			return next(c)
		}
	}
}

// recordAccess appends one audit entry per authenticated request. Reads of
// the audit trail itself are not recorded, or viewing the log would grow it.
func recordAccess(store *Store, u identity.User, c echo.Context) {
	segs := strings.Split(strings.Trim(c.Request().URL.Path, "/"), "/")
	if len(segs) < 2 || segs[1] == "audit" {
		return
	}
	entry := admin.AuditLog{
		UserID:       u.UserID,
		Action:       auditAction(c.Request().Method),
		ResourceType: strings.TrimSuffix(strings.ToUpper(strings.ReplaceAll(segs[1], "-", "_")), "S"),
		IPAddress:    c.RealIP(),
		UserAgent:    c.Request().UserAgent(),
		UserEmail:    u.Email,
		UserPhone:    u.PhoneNumber,
		UserRole:     string(u.Role),
	}
	if id, err := uuid.Parse(c.Param("id")); err == nil {
		entry.ResourceID = &id
	}
	store.RecordAudit(entry)
}

func auditAction(method string) admin.AuditAction {
	switch method {
	case http.MethodPost:
		return admin.AuditCreate
	case http.MethodPatch, http.MethodPut:
		return admin.AuditUpdate
	case http.MethodDelete:
		return admin.AuditDelete
	default:
		return admin.AuditView
	}
}

// requireRole gates a route group to the given roles.
func requireRole(roles ...identity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := currentUser(c)
			for _, r := range roles {
				if u.Role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "Access denied")
		}
	}
}

func currentUser(c echo.Context) identity.User {
	u, _ := c.Get("user").(identity.User)
	return u
}
