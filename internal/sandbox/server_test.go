package sandbox

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthbridge/healthbridge/internal/domain/identity"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(Options{JWTSecret: "test-secret", Logger: zerolog.Nop(), Seed: true})
	ts := httptest.NewServer(srv.Echo)
	t.Cleanup(ts.Close)
	return srv, ts
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func login(t *testing.T, baseURL, phone string) identity.Token {
	t.Helper()
	resp := doJSON(t, http.MethodPost, baseURL+"/api/auth/phone/verify", "", map[string]string{
		"phone_number":      phone,
		"verification_code": DevVerificationCode,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tok identity.Token
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tok))
	return tok
}

func TestPhoneLogin_NewPatientAndSeededRoles(t *testing.T) {
	_, ts := newTestServer(t)

	patient := login(t, ts.URL, "+91 70000 00001")
	assert.Equal(t, identity.RolePatient, patient.Role)
	assert.NotEmpty(t, patient.AccessToken)

	// The seeded doctor keeps its role on login.
	doc := login(t, ts.URL, "+91 98000 00001")
	assert.Equal(t, identity.RoleDoctor, doc.Role)
}

func TestPhoneLogin_RejectsWrongCode(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/phone/verify", "", map[string]string{
		"phone_number":      "+91 70000 00002",
		"verification_code": "111111",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Contains(t, payload, "detail")
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/profile/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleGate_PatientCannotUseDoctorPortal(t *testing.T) {
	_, ts := newTestServer(t)
	patient := login(t, ts.URL, "+91 70000 00003")

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/doctor/stats", patient.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDeactivatedUser_LockedOut(t *testing.T) {
	srv, ts := newTestServer(t)
	patient := login(t, ts.URL, "+91 70000 00004")

	_, ok := srv.Store.SetUserActive(patient.UserID, false)
	require.True(t, ok)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/profile/", patient.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProfileLifecycle(t *testing.T) {
	_, ts := newTestServer(t)
	patient := login(t, ts.URL, "+91 70000 00005")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/profile/", patient.AccessToken, map[string]string{
		"first_name":    "Meena",
		"last_name":     "Iyer",
		"date_of_birth": "1990-04-12",
		"gender":        "Female",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPatch, ts.URL+"/api/profile/", patient.AccessToken, map[string]string{
		"notes": "allergic to penicillin",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var p identity.PatientProfile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.Equal(t, "Meena", p.FirstName)
	assert.Equal(t, "allergic to penicillin", p.Notes)
	assert.NotNil(t, p.UpdatedAt)
}

func TestErrorShape_NotFound(t *testing.T) {
	_, ts := newTestServer(t)
	patient := login(t, ts.URL, "+91 70000 00006")

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/profile/", patient.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "Profile not found", payload["detail"])
}
