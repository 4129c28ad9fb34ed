package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthbridge/healthbridge/internal/platform/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(api.New(srv.URL, 5*time.Second, nil, zerolog.Nop()))
}

func TestSendCode_RequiresPhone(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	err := client.SendCode(context.Background(), "")
	require.Error(t, err)
}

func TestVerifyCode_DecodesToken(t *testing.T) {
	userID := uuid.New()
	var gotPath string
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(Token{AccessToken: "jwt-token", TokenType: "bearer", UserID: userID, Role: RolePatient})
	})

	tok, err := client.VerifyCode(context.Background(), "+91 98000 00001", "000000")
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/phone/verify", gotPath)
	assert.Equal(t, "+91 98000 00001", gotBody["phone_number"])
	assert.Equal(t, "000000", gotBody["verification_code"])
	assert.Equal(t, "jwt-token", tok.AccessToken)
	assert.Equal(t, userID, tok.UserID)
	assert.Equal(t, RolePatient, tok.Role)
}

func TestVerifyCode_RequiresPhoneAndCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	_, err := client.VerifyCode(context.Background(), "+91 98000 00001", "")
	require.Error(t, err)
}

func TestVerifyCode_BackendRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid verification code"})
	})

	_, err := client.VerifyCode(context.Background(), "+91 98000 00001", "999999")
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid verification code", apiErr.Message)
}

func TestProfileEndpoints(t *testing.T) {
	var gotMethods []string
	var gotPaths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethods = append(gotMethods, r.Method)
		gotPaths = append(gotPaths, r.URL.Path)
		json.NewEncoder(w).Encode(PatientProfile{FirstName: "Meena"})
	})

	ctx := context.Background()
	_, err := client.CreateProfile(ctx, PatientProfileInput{FirstName: "Meena", LastName: "Iyer"})
	require.NoError(t, err)
	p, err := client.Profile(ctx)
	require.NoError(t, err)
	_, err = client.UpdateProfile(ctx, PatientProfileInput{Notes: "allergic to penicillin"})
	require.NoError(t, err)

	assert.Equal(t, []string{http.MethodPost, http.MethodGet, http.MethodPatch}, gotMethods)
	assert.Equal(t, []string{"/api/profile/", "/api/profile/", "/api/profile/"}, gotPaths)
	assert.Equal(t, "Meena", p.FirstName)
}

func TestTimelinePassthrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"encounters":[],"report_count":0}`))
	})

	raw, err := client.Timeline(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"encounters":[],"report_count":0}`, string(raw))
}
