package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoPayload struct {
	Name string `json:"name"`
}

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, StaticToken("tok-123"), zerolog.Nop())
}

func TestGet_InjectsBearerToken(t *testing.T) {
	var gotAuth string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(echoPayload{Name: "ok"})
	})

	out, err := Get[echoPayload](context.Background(), c, "/api/profile/", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Name)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestGet_QueryEncoding(t *testing.T) {
	var gotQuery url.Values
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	})

	q := url.Values{}
	q.Set("q", "apollo pharmacy")
	q.Set("role", "PHARMACY")
	_, err := Get[echoPayload](context.Background(), c, "/api/admin/users", q)
	require.NoError(t, err)
	assert.Equal(t, "apollo pharmacy", gotQuery.Get("q"))
	assert.Equal(t, "PHARMACY", gotQuery.Get("role"))
}

func TestPost_SendsJSONBody(t *testing.T) {
	var gotBody map[string]any
	var gotMethod string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"name":"created"}`))
	})

	out, err := Post[echoPayload](context.Background(), c, "/api/encounters/", map[string]string{"encounter_type": "REMOTE_CONSULT"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "REMOTE_CONSULT", gotBody["encounter_type"])
	assert.Equal(t, "created", out.Name)
}

func TestPatch_UsesPatchVerb(t *testing.T) {
	var gotMethod string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Write([]byte(`{}`))
	})

	_, err := Patch[echoPayload](context.Background(), c, "/api/lab/orders/abc", map[string]string{"status": "RECEIVED"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
}

func TestDelete_NoBody(t *testing.T) {
	var gotMethod, gotPath string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"message":"deleted"}`))
	})

	err := Delete(context.Background(), c, "/api/admin/users/u1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/admin/users/u1", gotPath)
}

func TestUpload_Multipart(t *testing.T) {
	var gotContentType string
	var gotFilename string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, hdr, err := r.FormFile("files")
		require.NoError(t, err)
		gotFilename = hdr.Filename
		w.Write([]byte(`{"name":"uploaded"}`))
	})

	out, err := Upload[echoPayload](context.Background(), c, "/api/encounters/e1/media", []File{
		{Field: "files", Name: "scan.pdf", Contents: []byte("%PDF-1.4")},
	})
	require.NoError(t, err)
	assert.Contains(t, gotContentType, "multipart/form-data")
	assert.Equal(t, "scan.pdf", gotFilename)
	assert.Equal(t, "uploaded", out.Name)
}

func TestError_BackendDetailSurfaced(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Encounter not found"}`))
	})

	_, err := Get[echoPayload](context.Background(), c, "/api/encounters/nope", nil)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "Encounter not found", apiErr.Message)
	assert.True(t, apiErr.IsNotFound())
}

func TestError_FallbackMessageWhenBodyUnparseable(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`<html>denied</html>`))
	})

	_, err := Get[echoPayload](context.Background(), c, "/api/doctor/stats", nil)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 403, apiErr.Status)
	assert.Equal(t, "access denied", apiErr.Message)
}

func TestError_TransportFailureHasZeroStatus(t *testing.T) {
	c := New("http://127.0.0.1:1", 500*time.Millisecond, nil, zerolog.Nop())

	_, err := Get[echoPayload](context.Background(), c, "/api/profile/", nil)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
}

func TestGet_ContextCancellation(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Get[echoPayload](ctx, c, "/api/messages/unread-count", nil)
	require.Error(t, err)
}
